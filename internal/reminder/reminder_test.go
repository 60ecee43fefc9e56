package reminder

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/athenesolijf/reservation-api/internal/model"
	"github.com/athenesolijf/reservation-api/internal/queue"
)

type fakeLister struct {
	rows    []model.Reservation
	listErr error

	gotStatus string
	gotFrom   time.Time
	gotTo     time.Time
}

func (f *fakeLister) ListByInstantRange(ctx context.Context, status string, from, to time.Time) ([]model.Reservation, error) {
	f.gotStatus = status
	f.gotFrom = from
	f.gotTo = to
	if f.listErr != nil {
		return nil, f.listErr
	}
	return f.rows, nil
}

type fakeNotifier struct {
	events []queue.ReservationNotifyEvent
	failTo string // publishing to this address fails
}

func (f *fakeNotifier) PublishReservationNotify(ctx context.Context, ev queue.ReservationNotifyEvent) error {
	f.events = append(f.events, ev)
	if ev.To == f.failTo {
		return errors.New("broker unavailable")
	}
	return nil
}

func confirmedAt(id uint64, email, name string, at time.Time) model.Reservation {
	return model.Reservation{
		ID:              id,
		GuestName:       name,
		GuestEmail:      email,
		ReservationTime: at,
		PeopleCount:     2,
		Status:          model.StatusConfirmed,
	}
}

func TestRemindFor_QueriesConfirmedWithinLocalDay(t *testing.T) {
	lister := &fakeLister{}
	notify := &fakeNotifier{}
	New(lister, notify).remindFor(context.Background(), "2024-06-01")

	assert.Equal(t, model.StatusConfirmed, lister.gotStatus)
	// Amsterdam summer time is UTC+2, so the local day starts at 22:00Z
	// the previous evening.
	assert.Equal(t, time.Date(2024, 5, 31, 22, 0, 0, 0, time.UTC), lister.gotFrom)
	assert.Equal(t, time.Date(2024, 6, 1, 22, 0, 0, 0, time.UTC), lister.gotTo)
	assert.Empty(t, notify.events)
}

func TestRemindFor_OneReminderPerReservation(t *testing.T) {
	lister := &fakeLister{rows: []model.Reservation{
		confirmedAt(1, "jan@example.com", "Jan de Vries", time.Date(2024, 6, 1, 17, 0, 0, 0, time.UTC)),
		confirmedAt(2, "anna@example.com", "Anna Bakker", time.Date(2024, 6, 1, 18, 30, 0, 0, time.UTC)),
	}}
	notify := &fakeNotifier{}
	New(lister, notify).remindFor(context.Background(), "2024-06-01")

	require.Len(t, notify.events, 2)
	for _, ev := range notify.events {
		assert.Equal(t, "herinnering", ev.Status)
		assert.True(t, ev.IsConfirmation)
	}
	assert.Equal(t, "jan@example.com", notify.events[0].To)
	assert.Equal(t, "1 juni 2024 om 19:00", notify.events[0].ReservationTime)
	assert.Equal(t, "anna@example.com", notify.events[1].To)
	assert.Equal(t, "1 juni 2024 om 20:30", notify.events[1].ReservationTime)
}

func TestRemindFor_PublishFailureDoesNotAbortTheLoop(t *testing.T) {
	lister := &fakeLister{rows: []model.Reservation{
		confirmedAt(1, "fails@example.com", "Jan de Vries", time.Date(2024, 6, 1, 17, 0, 0, 0, time.UTC)),
		confirmedAt(2, "anna@example.com", "Anna Bakker", time.Date(2024, 6, 1, 18, 30, 0, 0, time.UTC)),
	}}
	notify := &fakeNotifier{failTo: "fails@example.com"}
	New(lister, notify).remindFor(context.Background(), "2024-06-01")

	// The failed publish is skipped; the second guest still gets theirs.
	require.Len(t, notify.events, 2)
	assert.Equal(t, "anna@example.com", notify.events[1].To)
}

func TestRemindFor_BadDateAndListFailureSendNothing(t *testing.T) {
	t.Run("bad date", func(t *testing.T) {
		notify := &fakeNotifier{}
		New(&fakeLister{}, notify).remindFor(context.Background(), "not-a-date")
		assert.Empty(t, notify.events)
	})
	t.Run("list failure", func(t *testing.T) {
		notify := &fakeNotifier{}
		New(&fakeLister{listErr: errors.New("db down")}, notify).remindFor(context.Background(), "2024-06-01")
		assert.Empty(t, notify.events)
	})
}
