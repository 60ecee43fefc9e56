package schedule

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/athenesolijf/reservation-api/internal/model"
	"github.com/athenesolijf/reservation-api/internal/repository"
)

type fakeDayStore struct {
	days  map[string]*model.Day
	slots map[uint64][]repository.DaySlot
	err   error
}

func (f *fakeDayStore) GetByDate(_ context.Context, date string) (*model.Day, error) {
	if f.err != nil {
		return nil, f.err
	}
	d, ok := f.days[date]
	if !ok {
		return nil, repository.ErrDayNotFound
	}
	return d, nil
}

func (f *fakeDayStore) SlotsForDay(_ context.Context, dayID uint64) ([]repository.DaySlot, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.slots[dayID], nil
}

type fakeTemplateStore struct {
	templates []model.TimeSlotTemplate
	err       error
}

func (f *fakeTemplateStore) List(_ context.Context) ([]model.TimeSlotTemplate, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.templates, nil
}

func standardTemplates() *fakeTemplateStore {
	return &fakeTemplateStore{templates: []model.TimeSlotTemplate{
		{ID: 1, SlotTime: "12:00", MaxReservations: 10},
		{ID: 2, SlotTime: "18:00", MaxReservations: 12},
	}}
}

func TestBlocks_OverrideDayWins(t *testing.T) {
	days := &fakeDayStore{
		days: map[string]*model.Day{"2024-12-31": {ID: 7, Date: "2024-12-31"}},
		slots: map[uint64][]repository.DaySlot{
			7: {
				{ID: 41, TemplateID: 2, SlotTime: "18:00"},
				{ID: 42, TemplateID: 3, SlotTime: "21:00"},
			},
		},
	}
	r := NewResolver(days, standardTemplates())

	blocks, err := r.Blocks(context.Background(), "2024-12-31")
	require.NoError(t, err)
	assert.Equal(t, []Block{{ID: 41, Label: "18:00"}, {ID: 42, Label: "21:00"}}, blocks)
}

func TestBlocks_NoDayRowFallsBack(t *testing.T) {
	r := NewResolver(&fakeDayStore{}, standardTemplates())

	blocks, err := r.Blocks(context.Background(), "2024-06-01")
	require.NoError(t, err)
	assert.Equal(t, []Block{{ID: 1, Label: "12:00"}, {ID: 2, Label: "18:00"}}, blocks)
}

func TestBlocks_DayWithoutSlotsFallsBack(t *testing.T) {
	// A holiday marker without override slots still serves the standard
	// templates, never an empty list.
	days := &fakeDayStore{
		days: map[string]*model.Day{"2024-12-25": {ID: 3, Date: "2024-12-25", IsHoliday: true}},
	}
	r := NewResolver(days, standardTemplates())

	blocks, err := r.Blocks(context.Background(), "2024-12-25")
	require.NoError(t, err)
	assert.Equal(t, []Block{{ID: 1, Label: "12:00"}, {ID: 2, Label: "18:00"}}, blocks)
}

func TestBlocks_MissingDate(t *testing.T) {
	days := &fakeDayStore{err: errors.New("store must not be touched")}
	r := NewResolver(days, standardTemplates())

	_, err := r.Blocks(context.Background(), "")
	assert.ErrorIs(t, err, ErrInvalidDate)
}

func TestBlocks_MalformedDate(t *testing.T) {
	r := NewResolver(&fakeDayStore{}, standardTemplates())

	_, err := r.Blocks(context.Background(), "31-12-2024")
	assert.ErrorIs(t, err, ErrInvalidDate)
}

func TestBlocks_StoreErrorSurfaces(t *testing.T) {
	boom := errors.New("connection refused")
	r := NewResolver(&fakeDayStore{err: boom}, standardTemplates())

	_, err := r.Blocks(context.Background(), "2024-06-01")
	assert.ErrorIs(t, err, boom)
}

func TestBlocks_TemplateErrorSurfaces(t *testing.T) {
	boom := errors.New("connection refused")
	r := NewResolver(&fakeDayStore{}, &fakeTemplateStore{err: boom})

	_, err := r.Blocks(context.Background(), "2024-06-01")
	assert.ErrorIs(t, err, boom)
}
