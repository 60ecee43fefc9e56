// Package botcheck verifies reCAPTCHA tokens that gate public
// reservation creation.
package botcheck

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const siteVerifyURL = "https://www.google.com/recaptcha/api/siteverify"

// ErrRejected is returned when the verification service rejects the
// token.  ErrLowScore is returned when the token verifies but scores
// below the configured trust threshold.  Callers treat both the same as
// an input validation failure.
var (
	ErrRejected = errors.New("bot-check rejected")
	ErrLowScore = errors.New("bot-check score below threshold")
)

// Verifier checks tokens against the reCAPTCHA siteverify endpoint.
type Verifier struct {
	Secret   string
	MinScore float64
	Endpoint string       // overridable in tests
	Client   *http.Client // bounded by a default timeout
}

// New constructs a Verifier for the given secret and minimum score.
func New(secret string, minScore float64) *Verifier {
	return &Verifier{
		Secret:   secret,
		MinScore: minScore,
		Endpoint: siteVerifyURL,
		Client:   &http.Client{Timeout: 10 * time.Second},
	}
}

type verifyResponse struct {
	Success    bool     `json:"success"`
	Score      float64  `json:"score"`
	ErrorCodes []string `json:"error-codes"`
}

// Verify posts the token to the verification endpoint and returns nil
// only when the token is accepted with a sufficient score.  Transport and
// decoding failures surface as-is so the caller can distinguish an
// unreachable verifier from a rejected token.
func (v *Verifier) Verify(ctx context.Context, token string) error {
	form := url.Values{}
	form.Set("secret", v.Secret)
	form.Set("response", token)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, v.Endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := v.Client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	var body verifyResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return err
	}
	if !body.Success {
		return ErrRejected
	}
	if body.Score < v.MinScore {
		return ErrLowScore
	}
	return nil
}
