package model

import "time"

// Reservation statuses. A reservation starts as pending and is moved to
// confirmed or cancelled by an administrator.
const (
	StatusPending   = "pending"
	StatusConfirmed = "confirmed"
	StatusCancelled = "cancelled"
)

// ValidStatus reports whether s is one of the known reservation statuses.
func ValidStatus(s string) bool {
	return s == StatusPending || s == StatusConfirmed || s == StatusCancelled
}

// Reservation records a guest's request to dine at a specific instant.
// The instant is always stored in UTC; it is derived from the local
// wall-clock date and block the guest picked, interpreted in the
// restaurant's timezone.
//
// Fields:
//  ID              – primary key identifier.
//  GuestName       – name the reservation was made under.
//  GuestEmail      – address notifications are sent to.
//  GuestPhone      – contact number.
//  ReservationTime – absolute UTC instant of the reservation.
//  PeopleCount     – party size.
//  Status          – pending, confirmed or cancelled.
//  CreatedAt       – creation timestamp.
//  UpdatedAt       – last update timestamp.
type Reservation struct {
	ID              uint64    `json:"id"`               // reservations.id
	GuestName       string    `json:"guest_name"`       // reservations.guest_name
	GuestEmail      string    `json:"guest_email"`      // reservations.guest_email
	GuestPhone      string    `json:"guest_phone"`      // reservations.guest_phone
	ReservationTime time.Time `json:"reservation_time"` // reservations.reservation_time (UTC)
	PeopleCount     int       `json:"people_count"`     // reservations.people_count
	Status          string    `json:"status"`           // reservations.status
	CreatedAt       time.Time `json:"created_at"`       // reservations.created_at
	UpdatedAt       time.Time `json:"updated_at"`       // reservations.updated_at
}
