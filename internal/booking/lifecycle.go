// Package booking implements the reservation lifecycle: validated
// creation from the public API and the admin status transitions, each
// with its guest notification.  This is the only component that moves a
// reservation through its states and the only trigger point for emails.
package booking

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/athenesolijf/reservation-api/internal/model"
	"github.com/athenesolijf/reservation-api/internal/queue"
	"github.com/athenesolijf/reservation-api/internal/utils"
)

// ValidationError marks a missing or malformed client input.  Handlers
// map it to a 400 response.  Reason overrides the default "is required"
// message for inputs that are present but unusable.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	if e.Reason != "" {
		return e.Reason
	}
	return e.Field + " is required"
}

// BotCheckError marks a failed bot-check verification, whether the token
// was rejected, scored too low, or could not be verified at all.  It is
// treated identically to a validation error.
type BotCheckError struct {
	Err error
}

func (e *BotCheckError) Error() string {
	return fmt.Sprintf("bot-check failed: %v", e.Err)
}

func (e *BotCheckError) Unwrap() error { return e.Err }

// ErrInvalidTransition is returned when a confirm or cancel is attempted
// on a reservation that is no longer pending.
var ErrInvalidTransition = fmt.Errorf("reservation is not pending")

// Guest-facing status wording used in notifications.
const (
	wordConfirmed = "bevestigd"
	wordCancelled = "geannuleerd"
)

// ReservationStore is the subset of the reservation repository the
// manager needs.
type ReservationStore interface {
	Create(ctx context.Context, res *model.Reservation) error
	GetByID(ctx context.Context, id uint64) (*model.Reservation, error)
	Update(ctx context.Context, res *model.Reservation) error
	UpdateStatus(ctx context.Context, id uint64, status string) error
	Delete(ctx context.Context, id uint64) error
}

// TokenVerifier checks a bot-check token.  A nil error means the request
// is trusted enough to create a reservation.
type TokenVerifier interface {
	Verify(ctx context.Context, token string) error
}

// Notifier hands a notification event to the background mail pipeline.
type Notifier interface {
	PublishReservationNotify(ctx context.Context, event queue.ReservationNotifyEvent) error
}

// Manager applies the reservation state machine.  Notification failures
// are logged and swallowed by contract: they never delay a response nor
// roll back the transition they were attached to.
type Manager struct {
	Store  ReservationStore
	Bots   TokenVerifier
	Notify Notifier
}

// NewManager constructs a Manager and panics when a dependency is nil.
func NewManager(store ReservationStore, bots TokenVerifier, notify Notifier) *Manager {
	if store == nil || bots == nil || notify == nil {
		panic("nil dependency passed to NewManager")
	}
	return &Manager{Store: store, Bots: bots, Notify: notify}
}

// CreateRequest is a public reservation submission.  Date and Block are
// local wall-clock values in the restaurant timezone.
type CreateRequest struct {
	Date        string
	Block       string
	Name        string
	Phone       string
	Email       string
	PeopleCount int
	Token       string
}

// Create validates a public submission, verifies its bot-check token and
// inserts a pending reservation.  No write happens unless every required
// field is present and the token passes.  On success a "received" notice
// is queued for the guest.
func (m *Manager) Create(ctx context.Context, req CreateRequest) (*model.Reservation, error) {
	for field, val := range map[string]string{
		"date":  req.Date,
		"block": req.Block,
		"name":  req.Name,
		"phone": req.Phone,
		"email": req.Email,
	} {
		if val == "" {
			return nil, &ValidationError{Field: field}
		}
	}
	if req.PeopleCount <= 0 {
		return nil, &ValidationError{Field: "peopleCount"}
	}
	if req.Token == "" {
		return nil, &ValidationError{Field: "recaptchaToken"}
	}
	if err := m.Bots.Verify(ctx, req.Token); err != nil {
		return nil, &BotCheckError{Err: err}
	}

	instant, err := utils.CombineDateBlock(req.Date, req.Block)
	if err != nil {
		return nil, &ValidationError{Field: "date", Reason: "date or block is invalid"}
	}

	res := &model.Reservation{
		GuestName:       req.Name,
		GuestEmail:      req.Email,
		GuestPhone:      req.Phone,
		ReservationTime: instant,
		PeopleCount:     req.PeopleCount,
		Status:          model.StatusPending,
	}
	if err := m.Store.Create(ctx, res); err != nil {
		return nil, err
	}

	m.publish(ctx, res, "", false)
	return res, nil
}

// Get loads one reservation.
func (m *Manager) Get(ctx context.Context, id uint64) (*model.Reservation, error) {
	return m.Store.GetByID(ctx, id)
}

// Confirm moves a pending reservation to confirmed and queues exactly
// one confirmation email.  The persisted status is never updated
// optimistically: a store failure aborts before any notification.
func (m *Manager) Confirm(ctx context.Context, id uint64) (*model.Reservation, error) {
	return m.transition(ctx, id, model.StatusConfirmed, wordConfirmed)
}

// Cancel moves a pending reservation to cancelled and queues exactly one
// cancellation email.
func (m *Manager) Cancel(ctx context.Context, id uint64) (*model.Reservation, error) {
	return m.transition(ctx, id, model.StatusCancelled, wordCancelled)
}

func (m *Manager) transition(ctx context.Context, id uint64, status, wording string) (*model.Reservation, error) {
	res, err := m.Store.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if res.Status != model.StatusPending {
		return nil, ErrInvalidTransition
	}
	if err := m.Store.UpdateStatus(ctx, id, status); err != nil {
		return nil, err
	}
	res.Status = status
	m.publish(ctx, res, wording, true)
	return res, nil
}

// EditRequest holds the admin-editable fields of a reservation.
type EditRequest struct {
	Name            string
	Phone           string
	Email           string
	ReservationTime time.Time
	PeopleCount     int
	Status          string
}

// Edit rewrites a reservation's fields.  When the status changes and the
// new status is confirmed or cancelled, one notification with the new
// status is queued; an edit that leaves the status untouched sends
// nothing.
func (m *Manager) Edit(ctx context.Context, id uint64, req EditRequest) (*model.Reservation, error) {
	if !model.ValidStatus(req.Status) {
		return nil, &ValidationError{Field: "status"}
	}
	res, err := m.Store.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	statusChanged := res.Status != req.Status

	res.GuestName = req.Name
	res.GuestPhone = req.Phone
	res.GuestEmail = req.Email
	res.ReservationTime = req.ReservationTime.UTC()
	res.PeopleCount = req.PeopleCount
	res.Status = req.Status
	if err := m.Store.Update(ctx, res); err != nil {
		return nil, err
	}

	if statusChanged {
		switch req.Status {
		case model.StatusConfirmed:
			m.publish(ctx, res, wordConfirmed, true)
		case model.StatusCancelled:
			m.publish(ctx, res, wordCancelled, true)
		}
	}
	return res, nil
}

// Delete permanently removes a reservation after a best-effort
// cancellation notice.  A failed notification never blocks the delete.
func (m *Manager) Delete(ctx context.Context, id uint64) error {
	res, err := m.Store.GetByID(ctx, id)
	if err != nil {
		return err
	}
	m.publish(ctx, res, wordCancelled, true)
	return m.Store.Delete(ctx, id)
}

// publish queues one guest notification.  Failures are logged and
// swallowed; there is no retry and no completion tracking.
func (m *Manager) publish(ctx context.Context, res *model.Reservation, wording string, isConfirmation bool) {
	ev := queue.ReservationNotifyEvent{
		To:              res.GuestEmail,
		GuestName:       res.GuestName,
		ReservationTime: utils.FormatDutch(res.ReservationTime),
		Status:          wording,
		IsConfirmation:  isConfirmation,
	}
	if err := m.Notify.PublishReservationNotify(ctx, ev); err != nil {
		log.Printf("booking: notification publish failed for reservation %d: %v", res.ID, err)
	}
}
