package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/athenesolijf/reservation-api/internal/model"
)

// SlotTemplateRepo manages persistence for the standard time slot
// templates.  Slot times are stored as "HH:MM" strings; ordering by the
// column therefore matches ordering by time of day.
type SlotTemplateRepo struct {
	db *sql.DB
}

// NewSlotTemplateRepo constructs a SlotTemplateRepo with the given DB handle.
func NewSlotTemplateRepo(db *sql.DB) *SlotTemplateRepo {
	return &SlotTemplateRepo{db: db}
}

// List returns every template ordered ascending by time of day.  When no
// templates exist it returns an empty slice and nil error.
func (r *SlotTemplateRepo) List(ctx context.Context) ([]model.TimeSlotTemplate, error) {
	const q = `SELECT id, slot_time, max_reservations, created_at
               FROM time_slot_templates ORDER BY slot_time ASC`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	result := []model.TimeSlotTemplate{}
	for rows.Next() {
		var t model.TimeSlotTemplate
		if err := rows.Scan(&t.ID, &t.SlotTime, &t.MaxReservations, &t.CreatedAt); err != nil {
			return nil, err
		}
		result = append(result, t)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

// GetByID retrieves one template.  It returns ErrTemplateNotFound when no
// matching row exists.
func (r *SlotTemplateRepo) GetByID(ctx context.Context, id uint64) (*model.TimeSlotTemplate, error) {
	const q = `SELECT id, slot_time, max_reservations, created_at
               FROM time_slot_templates WHERE id = ?`
	var t model.TimeSlotTemplate
	err := r.db.QueryRowContext(ctx, q, id).Scan(&t.ID, &t.SlotTime, &t.MaxReservations, &t.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrTemplateNotFound
		}
		return nil, err
	}
	return &t, nil
}

// Create inserts a template and assigns the generated ID back, then reads
// the row back to populate created_at.
func (r *SlotTemplateRepo) Create(ctx context.Context, t *model.TimeSlotTemplate) error {
	const q = `INSERT INTO time_slot_templates (slot_time, max_reservations) VALUES (?, ?)`
	out, err := r.db.ExecContext(ctx, q, t.SlotTime, t.MaxReservations)
	if err != nil {
		return err
	}
	id, err := out.LastInsertId()
	if err != nil {
		return err
	}
	t.ID = uint64(id)
	const sel = `SELECT id, slot_time, max_reservations, created_at FROM time_slot_templates WHERE id = ?`
	return r.db.QueryRowContext(ctx, sel, t.ID).Scan(&t.ID, &t.SlotTime, &t.MaxReservations, &t.CreatedAt)
}

// Update rewrites a template's slot time and capacity.  It returns
// ErrTemplateNotFound when the row does not exist.
func (r *SlotTemplateRepo) Update(ctx context.Context, t *model.TimeSlotTemplate) error {
	const q = `UPDATE time_slot_templates SET slot_time = ?, max_reservations = ? WHERE id = ?`
	out, err := r.db.ExecContext(ctx, q, t.SlotTime, t.MaxReservations, t.ID)
	if err != nil {
		return err
	}
	if n, _ := out.RowsAffected(); n == 0 {
		var one int
		if err := r.db.QueryRowContext(ctx, `SELECT 1 FROM time_slot_templates WHERE id = ? LIMIT 1`, t.ID).Scan(&one); err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return ErrTemplateNotFound
			}
			return err
		}
	}
	return nil
}

// Delete removes a template.  Override days referencing it keep the
// database from deleting the row; that surfaces as ErrConflict so the
// admin can detach the template from its days first.
func (r *SlotTemplateRepo) Delete(ctx context.Context, id uint64) error {
	out, err := r.db.ExecContext(ctx, `DELETE FROM time_slot_templates WHERE id = ?`, id)
	if err != nil {
		// MySQL error 1451: row is referenced by a foreign key.
		if strings.Contains(err.Error(), "1451") {
			return ErrConflict
		}
		return err
	}
	if n, _ := out.RowsAffected(); n == 0 {
		return ErrTemplateNotFound
	}
	return nil
}
