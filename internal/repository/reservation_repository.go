// Package repository contains data access logic for the reservation
// tables. Reservations store the resolved UTC instant only; they carry no
// reference to the slot definition the guest picked.
package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/athenesolijf/reservation-api/internal/model"
)

// ReservationRepo manages persistence for reservations.
type ReservationRepo struct {
	db *sql.DB
}

// NewReservationRepo constructs a ReservationRepo with the given DB handle.
func NewReservationRepo(db *sql.DB) *ReservationRepo {
	return &ReservationRepo{db: db}
}

// DB exposes the underlying sql.DB for callers that need transaction
// control spanning multiple repositories.
func (r *ReservationRepo) DB() *sql.DB {
	return r.db
}

// Create inserts a new reservation and assigns the generated ID back to
// the struct.  Status must be set by the caller; creation from the public
// API always uses pending.  After the insert the row is read back so DB
// defaults (created_at, updated_at) are populated.
func (r *ReservationRepo) Create(ctx context.Context, res *model.Reservation) error {
	const q = `INSERT INTO reservations (guest_name, guest_email, guest_phone, reservation_time, people_count, status)
               VALUES (?, ?, ?, ?, ?, ?)`
	out, err := r.db.ExecContext(ctx, q,
		res.GuestName, res.GuestEmail, res.GuestPhone, res.ReservationTime.UTC(), res.PeopleCount, res.Status)
	if err != nil {
		return err
	}
	id, err := out.LastInsertId()
	if err != nil {
		return err
	}
	res.ID = uint64(id)
	const sel = `SELECT id, guest_name, guest_email, guest_phone, reservation_time, people_count, status, created_at, updated_at
                 FROM reservations WHERE id = ?`
	return r.db.QueryRowContext(ctx, sel, res.ID).Scan(
		&res.ID, &res.GuestName, &res.GuestEmail, &res.GuestPhone,
		&res.ReservationTime, &res.PeopleCount, &res.Status, &res.CreatedAt, &res.UpdatedAt,
	)
}

// GetByID retrieves a reservation by its ID.  It returns
// ErrReservationNotFound when no matching row exists.
func (r *ReservationRepo) GetByID(ctx context.Context, id uint64) (*model.Reservation, error) {
	const q = `SELECT id, guest_name, guest_email, guest_phone, reservation_time, people_count, status, created_at, updated_at
               FROM reservations WHERE id = ?`
	var res model.Reservation
	err := r.db.QueryRowContext(ctx, q, id).Scan(
		&res.ID, &res.GuestName, &res.GuestEmail, &res.GuestPhone,
		&res.ReservationTime, &res.PeopleCount, &res.Status, &res.CreatedAt, &res.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrReservationNotFound
		}
		return nil, err
	}
	return &res, nil
}

// ListFilter narrows the admin reservation listing.  Zero values mean
// "no constraint".  From/To bound the reservation instant and are
// expected in UTC; the handler derives them from a local calendar date.
type ListFilter struct {
	Status string
	Name   string
	From   time.Time
	To     time.Time
}

// List returns reservations matching the filter, newest instant first.
// When nothing matches it returns an empty slice and nil error.
func (r *ReservationRepo) List(ctx context.Context, f ListFilter) ([]model.Reservation, error) {
	q := `SELECT id, guest_name, guest_email, guest_phone, reservation_time, people_count, status, created_at, updated_at
          FROM reservations WHERE 1=1`
	args := make([]interface{}, 0, 4)
	if f.Status != "" {
		q += ` AND status = ?`
		args = append(args, f.Status)
	}
	if f.Name != "" {
		q += ` AND guest_name LIKE ?`
		args = append(args, "%"+f.Name+"%")
	}
	if !f.From.IsZero() {
		q += ` AND reservation_time >= ?`
		args = append(args, f.From.UTC())
	}
	if !f.To.IsZero() {
		q += ` AND reservation_time < ?`
		args = append(args, f.To.UTC())
	}
	q += ` ORDER BY reservation_time DESC`
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	result := []model.Reservation{}
	for rows.Next() {
		var res model.Reservation
		if err := rows.Scan(
			&res.ID, &res.GuestName, &res.GuestEmail, &res.GuestPhone,
			&res.ReservationTime, &res.PeopleCount, &res.Status, &res.CreatedAt, &res.UpdatedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, res)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

// ListByInstantRange returns confirmed reservations whose instant falls in
// [from, to).  Used by the reminder job to find next-day guests.
func (r *ReservationRepo) ListByInstantRange(ctx context.Context, status string, from, to time.Time) ([]model.Reservation, error) {
	return r.List(ctx, ListFilter{Status: status, From: from, To: to})
}

// Update rewrites all guest-editable fields of a reservation.  It returns
// ErrReservationNotFound when the row does not exist.  A write that leaves
// every field unchanged is still reported as success.
func (r *ReservationRepo) Update(ctx context.Context, res *model.Reservation) error {
	const q = `UPDATE reservations
               SET guest_name = ?, guest_email = ?, guest_phone = ?, reservation_time = ?, people_count = ?, status = ?, updated_at = CURRENT_TIMESTAMP
               WHERE id = ?`
	out, err := r.db.ExecContext(ctx, q,
		res.GuestName, res.GuestEmail, res.GuestPhone, res.ReservationTime.UTC(), res.PeopleCount, res.Status, res.ID)
	if err != nil {
		return err
	}
	if n, _ := out.RowsAffected(); n == 0 {
		// RowsAffected is 0 both for a missing row and for a no-op write.
		var one int
		if err := r.db.QueryRowContext(ctx, `SELECT 1 FROM reservations WHERE id = ? LIMIT 1`, res.ID).Scan(&one); err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return ErrReservationNotFound
			}
			return err
		}
	}
	return nil
}

// UpdateStatus sets only the status column.  It returns
// ErrReservationNotFound when the row does not exist.
func (r *ReservationRepo) UpdateStatus(ctx context.Context, id uint64, status string) error {
	const q = `UPDATE reservations SET status = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?`
	out, err := r.db.ExecContext(ctx, q, status, id)
	if err != nil {
		return err
	}
	if n, _ := out.RowsAffected(); n == 0 {
		var one int
		if err := r.db.QueryRowContext(ctx, `SELECT 1 FROM reservations WHERE id = ? LIMIT 1`, id).Scan(&one); err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return ErrReservationNotFound
			}
			return err
		}
	}
	return nil
}

// Delete permanently removes a reservation.  There is no soft-delete.
func (r *ReservationRepo) Delete(ctx context.Context, id uint64) error {
	out, err := r.db.ExecContext(ctx, `DELETE FROM reservations WHERE id = ?`, id)
	if err != nil {
		return err
	}
	if n, _ := out.RowsAffected(); n == 0 {
		return ErrReservationNotFound
	}
	return nil
}
