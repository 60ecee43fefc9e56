package booking

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/athenesolijf/reservation-api/internal/model"
	"github.com/athenesolijf/reservation-api/internal/queue"
	"github.com/athenesolijf/reservation-api/internal/repository"
)

type fakeStore struct {
	rows      map[uint64]*model.Reservation
	nextID    uint64
	createErr error
	updateErr error
}

func newFakeStore() *fakeStore {
	return &fakeStore{rows: map[uint64]*model.Reservation{}, nextID: 1}
}

func (f *fakeStore) Create(_ context.Context, res *model.Reservation) error {
	if f.createErr != nil {
		return f.createErr
	}
	res.ID = f.nextID
	f.nextID++
	cp := *res
	f.rows[res.ID] = &cp
	return nil
}

func (f *fakeStore) GetByID(_ context.Context, id uint64) (*model.Reservation, error) {
	r, ok := f.rows[id]
	if !ok {
		return nil, repository.ErrReservationNotFound
	}
	cp := *r
	return &cp, nil
}

func (f *fakeStore) Update(_ context.Context, res *model.Reservation) error {
	if f.updateErr != nil {
		return f.updateErr
	}
	if _, ok := f.rows[res.ID]; !ok {
		return repository.ErrReservationNotFound
	}
	cp := *res
	f.rows[res.ID] = &cp
	return nil
}

func (f *fakeStore) UpdateStatus(_ context.Context, id uint64, status string) error {
	if f.updateErr != nil {
		return f.updateErr
	}
	r, ok := f.rows[id]
	if !ok {
		return repository.ErrReservationNotFound
	}
	r.Status = status
	return nil
}

func (f *fakeStore) Delete(_ context.Context, id uint64) error {
	if _, ok := f.rows[id]; !ok {
		return repository.ErrReservationNotFound
	}
	delete(f.rows, id)
	return nil
}

type fakeVerifier struct{ err error }

func (f *fakeVerifier) Verify(context.Context, string) error { return f.err }

type fakeNotifier struct {
	events []queue.ReservationNotifyEvent
	err    error
}

func (f *fakeNotifier) PublishReservationNotify(_ context.Context, ev queue.ReservationNotifyEvent) error {
	if f.err != nil {
		return f.err
	}
	f.events = append(f.events, ev)
	return nil
}

func validCreate() CreateRequest {
	return CreateRequest{
		Date:        "2024-06-01",
		Block:       "19:00",
		Name:        "Jan de Vries",
		Phone:       "+31612345678",
		Email:       "jan@example.com",
		PeopleCount: 4,
		Token:       "captcha-token",
	}
}

func TestCreate_Success(t *testing.T) {
	store := newFakeStore()
	notify := &fakeNotifier{}
	m := NewManager(store, &fakeVerifier{}, notify)

	res, err := m.Create(context.Background(), validCreate())
	require.NoError(t, err)
	assert.Equal(t, model.StatusPending, res.Status)
	// Amsterdam summer time is UTC+2, so 19:00 local stores as 17:00Z.
	assert.Equal(t, time.Date(2024, 6, 1, 17, 0, 0, 0, time.UTC), res.ReservationTime)
	assert.Len(t, store.rows, 1)

	require.Len(t, notify.events, 1)
	ev := notify.events[0]
	assert.Equal(t, "jan@example.com", ev.To)
	assert.False(t, ev.IsConfirmation)
	assert.Equal(t, "1 juni 2024 om 19:00", ev.ReservationTime)
}

func TestCreate_MissingFields(t *testing.T) {
	mutations := map[string]func(*CreateRequest){
		"date":        func(r *CreateRequest) { r.Date = "" },
		"block":       func(r *CreateRequest) { r.Block = "" },
		"name":        func(r *CreateRequest) { r.Name = "" },
		"phone":       func(r *CreateRequest) { r.Phone = "" },
		"email":       func(r *CreateRequest) { r.Email = "" },
		"peopleCount": func(r *CreateRequest) { r.PeopleCount = 0 },
		"token":       func(r *CreateRequest) { r.Token = "" },
	}
	for name, mutate := range mutations {
		t.Run(name, func(t *testing.T) {
			store := newFakeStore()
			notify := &fakeNotifier{}
			m := NewManager(store, &fakeVerifier{}, notify)

			req := validCreate()
			mutate(&req)
			_, err := m.Create(context.Background(), req)

			var verr *ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Empty(t, store.rows, "no row may be written")
			assert.Empty(t, notify.events, "no notification may be queued")
		})
	}
}

func TestCreate_MalformedDateOrBlock(t *testing.T) {
	mutations := map[string]func(*CreateRequest){
		"bad date":  func(r *CreateRequest) { r.Date = "01-06-2024" },
		"bad block": func(r *CreateRequest) { r.Block = "7pm" },
	}
	for name, mutate := range mutations {
		t.Run(name, func(t *testing.T) {
			store := newFakeStore()
			notify := &fakeNotifier{}
			m := NewManager(store, &fakeVerifier{}, notify)

			req := validCreate()
			mutate(&req)
			_, err := m.Create(context.Background(), req)

			var verr *ValidationError
			require.ErrorAs(t, err, &verr)
			// A present-but-broken value must not read like a missing one.
			assert.Equal(t, "date or block is invalid", verr.Error())
			assert.Empty(t, store.rows)
			assert.Empty(t, notify.events)
		})
	}
}

func TestCreate_BotCheckFailure(t *testing.T) {
	store := newFakeStore()
	m := NewManager(store, &fakeVerifier{err: errors.New("score too low")}, &fakeNotifier{})

	_, err := m.Create(context.Background(), validCreate())

	var berr *BotCheckError
	require.ErrorAs(t, err, &berr)
	assert.Empty(t, store.rows)
}

func TestCreate_StoreFailure(t *testing.T) {
	store := newFakeStore()
	store.createErr = errors.New("insert failed")
	notify := &fakeNotifier{}
	m := NewManager(store, &fakeVerifier{}, notify)

	_, err := m.Create(context.Background(), validCreate())
	require.Error(t, err)
	assert.Empty(t, notify.events)
}

func TestCreate_NotifyFailureDoesNotFailCreate(t *testing.T) {
	store := newFakeStore()
	m := NewManager(store, &fakeVerifier{}, &fakeNotifier{err: errors.New("broker down")})

	res, err := m.Create(context.Background(), validCreate())
	require.NoError(t, err)
	assert.Len(t, store.rows, 1)
	assert.Equal(t, model.StatusPending, res.Status)
}

func seedPending(store *fakeStore) uint64 {
	res := &model.Reservation{
		GuestName:       "Jan de Vries",
		GuestEmail:      "jan@example.com",
		GuestPhone:      "+31612345678",
		ReservationTime: time.Date(2024, 6, 1, 17, 0, 0, 0, time.UTC),
		PeopleCount:     4,
		Status:          model.StatusPending,
	}
	_ = store.Create(context.Background(), res)
	return res.ID
}

func TestConfirm(t *testing.T) {
	store := newFakeStore()
	notify := &fakeNotifier{}
	m := NewManager(store, &fakeVerifier{}, notify)
	id := seedPending(store)

	res, err := m.Confirm(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, model.StatusConfirmed, res.Status)
	assert.Equal(t, model.StatusConfirmed, store.rows[id].Status)

	require.Len(t, notify.events, 1)
	assert.Equal(t, "bevestigd", notify.events[0].Status)
	assert.True(t, notify.events[0].IsConfirmation)
}

func TestCancel(t *testing.T) {
	store := newFakeStore()
	notify := &fakeNotifier{}
	m := NewManager(store, &fakeVerifier{}, notify)
	id := seedPending(store)

	res, err := m.Cancel(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, model.StatusCancelled, res.Status)

	require.Len(t, notify.events, 1)
	assert.Equal(t, "geannuleerd", notify.events[0].Status)
}

func TestConfirm_NotPending(t *testing.T) {
	store := newFakeStore()
	notify := &fakeNotifier{}
	m := NewManager(store, &fakeVerifier{}, notify)
	id := seedPending(store)
	store.rows[id].Status = model.StatusCancelled

	_, err := m.Confirm(context.Background(), id)
	assert.ErrorIs(t, err, ErrInvalidTransition)
	assert.Empty(t, notify.events)
}

func TestConfirm_StoreFailureIsNotOptimistic(t *testing.T) {
	store := newFakeStore()
	notify := &fakeNotifier{}
	m := NewManager(store, &fakeVerifier{}, notify)
	id := seedPending(store)
	store.updateErr = errors.New("write failed")

	_, err := m.Confirm(context.Background(), id)
	require.Error(t, err)
	assert.Equal(t, model.StatusPending, store.rows[id].Status)
	assert.Empty(t, notify.events, "no notification without a persisted transition")
}

func editFor(res *model.Reservation) EditRequest {
	return EditRequest{
		Name:            res.GuestName,
		Phone:           res.GuestPhone,
		Email:           res.GuestEmail,
		ReservationTime: res.ReservationTime,
		PeopleCount:     res.PeopleCount,
		Status:          res.Status,
	}
}

func TestEdit_StatusChangeNotifies(t *testing.T) {
	store := newFakeStore()
	notify := &fakeNotifier{}
	m := NewManager(store, &fakeVerifier{}, notify)
	id := seedPending(store)

	req := editFor(store.rows[id])
	req.Status = model.StatusConfirmed
	res, err := m.Edit(context.Background(), id, req)
	require.NoError(t, err)
	assert.Equal(t, model.StatusConfirmed, res.Status)

	require.Len(t, notify.events, 1)
	assert.Equal(t, "bevestigd", notify.events[0].Status)
}

func TestEdit_UnchangedStatusSendsNothing(t *testing.T) {
	store := newFakeStore()
	notify := &fakeNotifier{}
	m := NewManager(store, &fakeVerifier{}, notify)
	id := seedPending(store)

	req := editFor(store.rows[id])
	req.Name = "Piet Jansen"
	_, err := m.Edit(context.Background(), id, req)
	require.NoError(t, err)

	assert.Equal(t, "Piet Jansen", store.rows[id].GuestName)
	assert.Empty(t, notify.events)
}

func TestEdit_BackToPendingSendsNothing(t *testing.T) {
	store := newFakeStore()
	notify := &fakeNotifier{}
	m := NewManager(store, &fakeVerifier{}, notify)
	id := seedPending(store)
	store.rows[id].Status = model.StatusConfirmed

	req := editFor(store.rows[id])
	req.Status = model.StatusPending
	_, err := m.Edit(context.Background(), id, req)
	require.NoError(t, err)
	assert.Empty(t, notify.events)
}

func TestEdit_InvalidStatus(t *testing.T) {
	store := newFakeStore()
	m := NewManager(store, &fakeVerifier{}, &fakeNotifier{})
	id := seedPending(store)

	req := editFor(store.rows[id])
	req.Status = "archived"
	_, err := m.Edit(context.Background(), id, req)

	var verr *ValidationError
	assert.ErrorAs(t, err, &verr)
}

func TestDelete_NotifiesThenRemoves(t *testing.T) {
	store := newFakeStore()
	notify := &fakeNotifier{}
	m := NewManager(store, &fakeVerifier{}, notify)
	id := seedPending(store)

	require.NoError(t, m.Delete(context.Background(), id))
	assert.Empty(t, store.rows)

	require.Len(t, notify.events, 1)
	assert.Equal(t, "geannuleerd", notify.events[0].Status)
}

func TestDelete_NotifyFailureDoesNotBlock(t *testing.T) {
	store := newFakeStore()
	m := NewManager(store, &fakeVerifier{}, &fakeNotifier{err: errors.New("broker down")})
	id := seedPending(store)

	require.NoError(t, m.Delete(context.Background(), id))
	assert.Empty(t, store.rows)
}

func TestDelete_NotFound(t *testing.T) {
	store := newFakeStore()
	notify := &fakeNotifier{}
	m := NewManager(store, &fakeVerifier{}, notify)

	err := m.Delete(context.Background(), 99)
	assert.ErrorIs(t, err, repository.ErrReservationNotFound)
	assert.Empty(t, notify.events)
}
