// Package queue defines message payloads exchanged over the message broker.
package queue

// NotifyQueueName is the durable queue carrying guest notification jobs.
// Publishing to it is the only way any part of the system triggers an
// email; the consumer is the only place mail is actually sent.
const NotifyQueueName = "reservation.notify"

// ReservationNotifyEvent asks the mail worker to send one guest email.
// ReservationTime is pre-formatted in the restaurant's locale so the
// worker needs no timezone knowledge.  Status holds the guest-facing
// status wording ("bevestigd", "geannuleerd", "herinnering"); it is empty
// for the initial received notice, where IsConfirmation is false.
type ReservationNotifyEvent struct {
	ID              string `json:"id"`
	To              string `json:"to"`
	GuestName       string `json:"guest_name"`
	ReservationTime string `json:"reservation_time"`
	Status          string `json:"status"`
	IsConfirmation  bool   `json:"is_confirmation"`
	QueuedAt        string `json:"queued_at"`
}
