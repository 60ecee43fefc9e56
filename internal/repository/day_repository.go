package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/athenesolijf/reservation-api/internal/model"
)

const dateLayout = "2006-01-02"

// DaySlot is one override slot for a day, joined with its template so the
// caller gets the bookable label without a second query.
type DaySlot struct {
	ID         uint64 // day_time_slots.id
	TemplateID uint64 // day_time_slots.time_slot_template_id
	SlotTime   string // time_slot_templates.slot_time
}

// DayRepo manages persistence for override days and their slot sets.
type DayRepo struct {
	db *sql.DB
}

// NewDayRepo constructs a DayRepo with the given DB handle.
func NewDayRepo(db *sql.DB) *DayRepo {
	return &DayRepo{db: db}
}

// GetByDate looks up the override day for an exact calendar date.  It
// returns ErrDayNotFound when the date has no Day row.
func (r *DayRepo) GetByDate(ctx context.Context, date string) (*model.Day, error) {
	const q = `SELECT id, day_date, is_holiday, created_at FROM days WHERE day_date = ?`
	return r.scanDay(r.db.QueryRowContext(ctx, q, date))
}

// GetByID retrieves one override day.  It returns ErrDayNotFound when no
// matching row exists.
func (r *DayRepo) GetByID(ctx context.Context, id uint64) (*model.Day, error) {
	const q = `SELECT id, day_date, is_holiday, created_at FROM days WHERE id = ?`
	return r.scanDay(r.db.QueryRowContext(ctx, q, id))
}

func (r *DayRepo) scanDay(row *sql.Row) (*model.Day, error) {
	var (
		d       model.Day
		dayDate time.Time
	)
	err := row.Scan(&d.ID, &dayDate, &d.IsHoliday, &d.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrDayNotFound
		}
		return nil, err
	}
	d.Date = dayDate.Format(dateLayout)
	return &d, nil
}

// List returns all override days ordered by date ascending.
func (r *DayRepo) List(ctx context.Context) ([]model.Day, error) {
	const q = `SELECT id, day_date, is_holiday, created_at FROM days ORDER BY day_date ASC`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	result := []model.Day{}
	for rows.Next() {
		var (
			d       model.Day
			dayDate time.Time
		)
		if err := rows.Scan(&d.ID, &dayDate, &d.IsHoliday, &d.CreatedAt); err != nil {
			return nil, err
		}
		d.Date = dayDate.Format(dateLayout)
		result = append(result, d)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

// UpsertByDate creates the Day row for a date or updates its holiday flag
// when one already exists.  day_date carries a unique key, so at most one
// row per calendar date can exist.  The (possibly pre-existing) row is
// read back and returned.
func (r *DayRepo) UpsertByDate(ctx context.Context, date string, isHoliday bool) (*model.Day, error) {
	const q = `INSERT INTO days (day_date, is_holiday) VALUES (?, ?)
               ON DUPLICATE KEY UPDATE is_holiday = VALUES(is_holiday)`
	if _, err := r.db.ExecContext(ctx, q, date, isHoliday); err != nil {
		return nil, err
	}
	return r.GetByDate(ctx, date)
}

// Update rewrites a day's date and holiday flag.  Moving a day onto a date
// that already has its own row violates the unique key and is reported as
// ErrConflict.
func (r *DayRepo) Update(ctx context.Context, d *model.Day) error {
	const q = `UPDATE days SET day_date = ?, is_holiday = ? WHERE id = ?`
	out, err := r.db.ExecContext(ctx, q, d.Date, d.IsHoliday, d.ID)
	if err != nil {
		if strings.Contains(err.Error(), "1062") {
			return ErrConflict
		}
		return err
	}
	if n, _ := out.RowsAffected(); n == 0 {
		var one int
		if err := r.db.QueryRowContext(ctx, `SELECT 1 FROM days WHERE id = ? LIMIT 1`, d.ID).Scan(&one); err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return ErrDayNotFound
			}
			return err
		}
	}
	return nil
}

// Delete removes an override day together with its slot set.  The slot
// rows go first so the day delete cannot leave orphans behind.
func (r *DayRepo) Delete(ctx context.Context, id uint64) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM day_time_slots WHERE day_id = ?`, id); err != nil {
		return err
	}
	out, err := r.db.ExecContext(ctx, `DELETE FROM days WHERE id = ?`, id)
	if err != nil {
		return err
	}
	if n, _ := out.RowsAffected(); n == 0 {
		return ErrDayNotFound
	}
	return nil
}

// SlotsForDay returns the override slots for a day joined with their
// templates, ordered ascending by time of day.  An empty slice means the
// day has no override set and callers fall back to the templates.
func (r *DayRepo) SlotsForDay(ctx context.Context, dayID uint64) ([]DaySlot, error) {
	const q = `SELECT dts.id, dts.time_slot_template_id, t.slot_time
               FROM day_time_slots dts
               JOIN time_slot_templates t ON t.id = dts.time_slot_template_id
               WHERE dts.day_id = ?
               ORDER BY t.slot_time ASC`
	rows, err := r.db.QueryContext(ctx, q, dayID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	result := []DaySlot{}
	for rows.Next() {
		var s DaySlot
		if err := rows.Scan(&s.ID, &s.TemplateID, &s.SlotTime); err != nil {
			return nil, err
		}
		result = append(result, s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

// ReplaceSlots swaps a day's override set for the given template ids.
// The swap is delete-all-then-insert in two statements; a concurrent
// reader can observe the brief window with zero override rows, in which
// case the resolver serves the standard templates.
func (r *DayRepo) ReplaceSlots(ctx context.Context, dayID uint64, templateIDs []uint64) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM day_time_slots WHERE day_id = ?`, dayID); err != nil {
		return err
	}
	return r.InsertSlots(ctx, dayID, templateIDs)
}

// InsertSlots bulk-inserts override rows for a day.  An empty id list is
// a no-op: a day may exist with just its holiday flag.
func (r *DayRepo) InsertSlots(ctx context.Context, dayID uint64, templateIDs []uint64) error {
	if len(templateIDs) == 0 {
		return nil
	}
	q := `INSERT INTO day_time_slots (day_id, time_slot_template_id) VALUES `
	args := make([]interface{}, 0, len(templateIDs)*2)
	for i, tid := range templateIDs {
		if i > 0 {
			q += ", "
		}
		q += "(?, ?)"
		args = append(args, dayID, tid)
	}
	_, err := r.db.ExecContext(ctx, q, args...)
	return err
}
