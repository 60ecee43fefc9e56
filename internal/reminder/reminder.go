// Package reminder runs the daily job that emails confirmed guests one
// day ahead of their reservation.
package reminder

import (
	"context"
	"log"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/athenesolijf/reservation-api/internal/booking"
	"github.com/athenesolijf/reservation-api/internal/model"
	"github.com/athenesolijf/reservation-api/internal/queue"
	"github.com/athenesolijf/reservation-api/internal/utils"
)

// ReservationLister is the subset of the reservation repository the
// reminder job needs.
type ReservationLister interface {
	ListByInstantRange(ctx context.Context, status string, from, to time.Time) ([]model.Reservation, error)
}

// Service publishes reminder notifications for next-day confirmed
// reservations.  Like all notifications, failures are logged and
// swallowed; a missed reminder is never retried.
type Service struct {
	Reservations ReservationLister
	Notify       booking.Notifier
}

// New constructs a Service.
func New(reservations ReservationLister, notify booking.Notifier) *Service {
	return &Service{Reservations: reservations, Notify: notify}
}

// StartScheduler runs the reminder job every day at 09:00 restaurant
// time and returns the running cron so the caller can stop it.
func (s *Service) StartScheduler() *cron.Cron {
	c := cron.New(cron.WithLocation(utils.RestaurantLocation()))

	if _, err := c.AddFunc("0 9 * * *", s.SendDailyReminders); err != nil {
		log.Printf("reminder: schedule failed: %v", err)
		return c
	}

	c.Start()
	log.Println("reminder scheduler started")
	return c
}

// SendDailyReminders publishes one reminder per confirmed reservation
// falling on the next local calendar day.
func (s *Service) SendDailyReminders() {
	tomorrow := time.Now().In(utils.RestaurantLocation()).AddDate(0, 0, 1).Format(utils.DateLayout)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	s.remindFor(ctx, tomorrow)
}

// remindFor queues reminders for every confirmed reservation on one
// local calendar date.
func (s *Service) remindFor(ctx context.Context, date string) {
	from, to, err := utils.DayBounds(date)
	if err != nil {
		log.Printf("reminder: resolve day bounds: %v", err)
		return
	}

	reservations, err := s.Reservations.ListByInstantRange(ctx, model.StatusConfirmed, from, to)
	if err != nil {
		log.Printf("reminder: list reservations for %s: %v", date, err)
		return
	}

	sent := 0
	for _, res := range reservations {
		ev := queue.ReservationNotifyEvent{
			To:              res.GuestEmail,
			GuestName:       res.GuestName,
			ReservationTime: utils.FormatDutch(res.ReservationTime),
			Status:          "herinnering",
			IsConfirmation:  true,
		}
		if err := s.Notify.PublishReservationNotify(ctx, ev); err != nil {
			log.Printf("reminder: publish for reservation %d failed: %v", res.ID, err)
			continue
		}
		sent++
	}
	log.Printf("reminder: queued %d reminders for %s", sent, date)
}
