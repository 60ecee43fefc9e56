// Package repository defines sentinel errors shared across repositories.
// Handlers use these to translate persistence failures into HTTP
// responses (404 for the not-found values, 409 for ErrConflict).
package repository

import "errors"

// ErrReservationNotFound indicates the reservation row does not exist.
var ErrReservationNotFound = errors.New("reservation not found")

// ErrTemplateNotFound indicates the time slot template row does not exist.
var ErrTemplateNotFound = errors.New("time slot template not found")

// ErrDayNotFound indicates no override day exists for the given id or date.
var ErrDayNotFound = errors.New("day not found")

// ErrConflict is returned when a delete or update cannot proceed because
// of conflicting state, such as removing a template that is still used by
// an override day.
var ErrConflict = errors.New("conflict")
