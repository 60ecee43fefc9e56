// Package schedule resolves which bookable time blocks apply to a
// calendar date.  A date with an override slot set offers exactly those
// slots; every other date offers the standard weekly templates.
package schedule

import (
	"context"
	"errors"
	"time"

	"github.com/athenesolijf/reservation-api/internal/model"
	"github.com/athenesolijf/reservation-api/internal/repository"
	"github.com/athenesolijf/reservation-api/internal/utils"
)

// ErrInvalidDate is returned for a missing or malformed date before any
// store lookup happens.  Handlers map it to a 400 response.
var ErrInvalidDate = errors.New("invalid date")

// Block is one bookable option surfaced to the guest.  For an override
// day the ID is the day_time_slots row id; otherwise it is the template
// id.  The label is always the slot's time of day.
type Block struct {
	ID    uint64 `json:"id"`
	Label string `json:"label"`
}

// DayStore is the subset of the day repository the resolver needs.
type DayStore interface {
	GetByDate(ctx context.Context, date string) (*model.Day, error)
	SlotsForDay(ctx context.Context, dayID uint64) ([]repository.DaySlot, error)
}

// TemplateStore is the subset of the template repository the resolver needs.
type TemplateStore interface {
	List(ctx context.Context) ([]model.TimeSlotTemplate, error)
}

// Resolver answers "which blocks can be booked on this date".
type Resolver struct {
	Days      DayStore
	Templates TemplateStore
}

// NewResolver constructs a Resolver and panics if a store is nil.
func NewResolver(days DayStore, templates TemplateStore) *Resolver {
	if days == nil || templates == nil {
		panic("nil store passed to NewResolver")
	}
	return &Resolver{Days: days, Templates: templates}
}

// Blocks returns the ordered bookable blocks for a calendar date.
//
// A day row with at least one override slot wins outright: the standard
// templates are not offered even when the override set looks incomplete.
// A day row with zero slots is treated the same as no day row at all, so
// a date can carry just its holiday flag without losing the standard
// schedule.  The holiday flag itself never suppresses blocks.
func (r *Resolver) Blocks(ctx context.Context, date string) ([]Block, error) {
	if date == "" {
		return nil, ErrInvalidDate
	}
	if _, err := time.Parse(utils.DateLayout, date); err != nil {
		return nil, ErrInvalidDate
	}

	day, err := r.Days.GetByDate(ctx, date)
	if err != nil && !errors.Is(err, repository.ErrDayNotFound) {
		return nil, err
	}
	if day != nil {
		slots, err := r.Days.SlotsForDay(ctx, day.ID)
		if err != nil {
			return nil, err
		}
		if len(slots) > 0 {
			blocks := make([]Block, 0, len(slots))
			for _, s := range slots {
				blocks = append(blocks, Block{ID: s.ID, Label: s.SlotTime})
			}
			return blocks, nil
		}
	}

	templates, err := r.Templates.List(ctx)
	if err != nil {
		return nil, err
	}
	blocks := make([]Block, 0, len(templates))
	for _, t := range templates {
		blocks = append(blocks, Block{ID: t.ID, Label: t.SlotTime})
	}
	return blocks, nil
}
