package main

import (
	"log"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"

	"github.com/athenesolijf/reservation-api/internal/booking"
	"github.com/athenesolijf/reservation-api/internal/botcheck"
	"github.com/athenesolijf/reservation-api/internal/config"
	"github.com/athenesolijf/reservation-api/internal/database"
	"github.com/athenesolijf/reservation-api/internal/handler"
	"github.com/athenesolijf/reservation-api/internal/mailer"
	"github.com/athenesolijf/reservation-api/internal/queue"
	"github.com/athenesolijf/reservation-api/internal/reminder"
	"github.com/athenesolijf/reservation-api/internal/repository"
	"github.com/athenesolijf/reservation-api/internal/router"
	"github.com/athenesolijf/reservation-api/internal/schedule"
	queue_publisher "github.com/athenesolijf/reservation-api/internal/service"
)

func main() {
	_ = godotenv.Load()
	cfg := config.Load()

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	defer db.Close()

	rdb := config.NewRedisClient() // nil when Redis is unreachable; middlewares pass through

	reservations := repository.NewReservationRepo(db)
	slots := repository.NewSlotTemplateRepo(db)
	days := repository.NewDayRepo(db)
	users := repository.NewUserRepo(db)
	tokens := repository.NewTokenRepo(db)

	resolver := schedule.NewResolver(days, slots)
	verifier := botcheck.New(cfg.CaptchaSecret, cfg.CaptchaMin)
	publisher := queue_publisher.New()
	bookings := booking.NewManager(reservations, verifier, publisher)

	mail := mailer.New(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPass, cfg.MailFrom, cfg.ContactEmail)
	go func() {
		if err := queue.StartNotifyConsumer(mail); err != nil {
			log.Printf("notify consumer stopped: %v", err)
		}
	}()

	reminders := reminder.New(reservations, publisher)
	cronJob := reminders.StartScheduler()
	defer cronJob.Stop()

	e := echo.New()
	router.RegisterRoutes(e)
	router.RegisterPublic(e, handler.NewPublicHandler(resolver, bookings), cfg, rdb)
	router.RegisterAuth(e, handler.NewAuthHandler(cfg, users, tokens), cfg.JWTSecret)
	router.RegisterAdmin(e, cfg.JWTSecret,
		handler.NewAdminReservationHandler(reservations, bookings),
		handler.NewAdminSlotHandler(slots),
		handler.NewAdminDayHandler(days),
		handler.NewNotificationHandler(mail),
	)

	addr := ":" + cfg.Port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env)
	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}
