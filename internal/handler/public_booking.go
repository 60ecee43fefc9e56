package handler

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/athenesolijf/reservation-api/internal/booking"
	"github.com/athenesolijf/reservation-api/internal/schedule"
)

// PublicHandler serves the guest-facing endpoints: listing the bookable
// blocks for a date and submitting a reservation.
type PublicHandler struct {
	Resolver *schedule.Resolver
	Bookings *booking.Manager
}

func NewPublicHandler(r *schedule.Resolver, b *booking.Manager) *PublicHandler {
	return &PublicHandler{Resolver: r, Bookings: b}
}

type blocksResp struct {
	TimeSlots []schedule.Block `json:"timeSlots"`
}

// Blocks returns the bookable time blocks for ?date=YYYY-MM-DD.
func (h *PublicHandler) Blocks(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	blocks, err := h.Resolver.Blocks(ctx, c.QueryParam("date"))
	if err != nil {
		if errors.Is(err, schedule.ErrInvalidDate) {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "date is required"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load time slots"})
	}
	return c.JSON(http.StatusOK, blocksResp{TimeSlots: blocks})
}

type createReservationReq struct {
	Date           string `json:"date"`
	Block          string `json:"block"`
	Name           string `json:"name"`
	Phone          string `json:"phone"`
	Email          string `json:"email"`
	PeopleCount    int    `json:"peopleCount"`
	RecaptchaToken string `json:"recaptchaToken"`
}

// CreateReservation accepts a guest booking.  Validation and bot-check
// failures answer 400 with the offending reason; the guest never learns
// whether a failure was the captcha or a field.
func (h *PublicHandler) CreateReservation(c echo.Context) error {
	var req createReservationReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 10*time.Second)
	defer cancel()

	_, err := h.Bookings.Create(ctx, booking.CreateRequest{
		Date:        req.Date,
		Block:       req.Block,
		Name:        req.Name,
		Phone:       req.Phone,
		Email:       req.Email,
		PeopleCount: req.PeopleCount,
		Token:       req.RecaptchaToken,
	})
	if err != nil {
		var ve *booking.ValidationError
		if errors.As(err, &ve) {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": ve.Error()})
		}
		var be *booking.BotCheckError
		if errors.As(err, &be) {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "verification failed"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to create reservation"})
	}

	return c.JSON(http.StatusOK, echo.Map{"message": "reservation received"})
}
