package model

import "time"

// TimeSlotTemplate is a standard, recurring bookable time of day.  The
// slot time carries no date component; whether a template applies to a
// given date is decided by the slot resolver.
//
// Fields:
//  ID              – primary key identifier.
//  SlotTime        – wall-clock time of day, "HH:MM".
//  MaxReservations – advisory capacity shown to administrators.
//  CreatedAt       – creation timestamp.
type TimeSlotTemplate struct {
	ID              uint64    `json:"id"`               // time_slot_templates.id
	SlotTime        string    `json:"slot_time"`        // time_slot_templates.slot_time
	MaxReservations int       `json:"max_reservations"` // time_slot_templates.max_reservations
	CreatedAt       time.Time `json:"created_at"`       // time_slot_templates.created_at
}

// Day is a calendar date singled out for an override slot configuration.
// Most dates have no Day row; at most one row exists per date.
//
// Fields:
//  ID        – primary key identifier.
//  Date      – calendar date, "2006-01-02".
//  IsHoliday – informational holiday marker; does not suppress booking.
//  CreatedAt – creation timestamp.
type Day struct {
	ID        uint64    `json:"id"`         // days.id
	Date      string    `json:"day_date"`   // days.day_date
	IsHoliday bool      `json:"is_holiday"` // days.is_holiday
	CreatedAt time.Time `json:"created_at"` // days.created_at
}

// DayTimeSlot links a Day to one TimeSlotTemplate, meaning "this specific
// date offers this slot".  The presence of any row for a date replaces the
// standard template list for that date entirely.
//
// Fields:
//  ID                 – primary key identifier.
//  DayID              – owning day.
//  TimeSlotTemplateID – referenced template.
type DayTimeSlot struct {
	ID                 uint64 `json:"id"`                    // day_time_slots.id
	DayID              uint64 `json:"day_id"`                // day_time_slots.day_id
	TimeSlotTemplateID uint64 `json:"time_slot_template_id"` // day_time_slots.time_slot_template_id
}
