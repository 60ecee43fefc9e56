package botcheck

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestVerifier(t *testing.T, handler http.HandlerFunc) *Verifier {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	v := New("test-secret", 0.5)
	v.Endpoint = srv.URL
	return v
}

func TestVerify_Accepted(t *testing.T) {
	v := newTestVerifier(t, func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseForm())
		assert.Equal(t, "test-secret", r.PostForm.Get("secret"))
		assert.Equal(t, "tok", r.PostForm.Get("response"))
		w.Write([]byte(`{"success":true,"score":0.9}`))
	})

	assert.NoError(t, v.Verify(context.Background(), "tok"))
}

func TestVerify_Rejected(t *testing.T) {
	v := newTestVerifier(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"success":false,"error-codes":["invalid-input-response"]}`))
	})

	assert.ErrorIs(t, v.Verify(context.Background(), "tok"), ErrRejected)
}

func TestVerify_LowScore(t *testing.T) {
	v := newTestVerifier(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"success":true,"score":0.3}`))
	})

	assert.ErrorIs(t, v.Verify(context.Background(), "tok"), ErrLowScore)
}

func TestVerify_ThresholdIsInclusive(t *testing.T) {
	v := newTestVerifier(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"success":true,"score":0.5}`))
	})

	assert.NoError(t, v.Verify(context.Background(), "tok"))
}

func TestVerify_TransportError(t *testing.T) {
	v := New("test-secret", 0.5)
	v.Endpoint = "http://127.0.0.1:1" // nothing listens here

	err := v.Verify(context.Background(), "tok")
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrRejected)
	assert.NotErrorIs(t, err, ErrLowScore)
}
