package handler

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/athenesolijf/reservation-api/internal/booking"
	"github.com/athenesolijf/reservation-api/internal/model"
	"github.com/athenesolijf/reservation-api/internal/repository"
	"github.com/athenesolijf/reservation-api/internal/utils"
)

// AdminReservationHandler serves the reservation management endpoints.
// Listing and manual creation go straight to the repository; everything
// that moves a reservation through its lifecycle goes through the
// booking manager so notifications fire consistently.
type AdminReservationHandler struct {
	Repo     *repository.ReservationRepo
	Bookings *booking.Manager
}

func NewAdminReservationHandler(r *repository.ReservationRepo, b *booking.Manager) *AdminReservationHandler {
	return &AdminReservationHandler{Repo: r, Bookings: b}
}

func reservationID(c echo.Context) (uint64, error) {
	return strconv.ParseUint(c.Param("id"), 10, 64)
}

// List returns reservations, optionally filtered by status, guest name
// (?q=) and a calendar date in the restaurant timezone (?date=).
func (h *AdminReservationHandler) List(c echo.Context) error {
	filter := repository.ListFilter{
		Status: c.QueryParam("status"),
		Name:   c.QueryParam("q"),
	}
	if filter.Status != "" && !model.ValidStatus(filter.Status) {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "unknown status"})
	}
	if date := c.QueryParam("date"); date != "" {
		from, to, err := utils.DayBounds(date)
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid date"})
		}
		filter.From, filter.To = from, to
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	list, err := h.Repo.List(ctx, filter)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to list reservations"})
	}
	return c.JSON(http.StatusOK, echo.Map{"reservations": list})
}

type adminReservationReq struct {
	Date        string `json:"date"`
	Block       string `json:"block"`
	Name        string `json:"name"`
	Phone       string `json:"phone"`
	Email       string `json:"email"`
	PeopleCount int    `json:"peopleCount"`
	Status      string `json:"status"`
}

// Create inserts a reservation on behalf of a guest, e.g. one who called
// by phone.  No captcha applies and no notification is sent; the admin
// confirms explicitly when the guest should hear about it.
func (h *AdminReservationHandler) Create(c echo.Context) error {
	var req adminReservationReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if req.Name == "" || req.Email == "" || req.PeopleCount <= 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "name, email and peopleCount are required"})
	}
	status := req.Status
	if status == "" {
		status = model.StatusPending
	}
	if !model.ValidStatus(status) {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "unknown status"})
	}
	instant, err := utils.CombineDateBlock(req.Date, req.Block)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid date or block"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	res := &model.Reservation{
		GuestName:       req.Name,
		GuestEmail:      req.Email,
		GuestPhone:      req.Phone,
		ReservationTime: instant,
		PeopleCount:     req.PeopleCount,
		Status:          status,
	}
	if err := h.Repo.Create(ctx, res); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to create reservation"})
	}
	return c.JSON(http.StatusCreated, res)
}

// Get returns one reservation.
func (h *AdminReservationHandler) Get(c echo.Context) error {
	id, err := reservationID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	res, err := h.Bookings.Get(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrReservationNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "reservation not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load reservation"})
	}
	return c.JSON(http.StatusOK, res)
}

// Update rewrites a reservation.  A status change to confirmed or
// cancelled queues the matching guest notification.
func (h *AdminReservationHandler) Update(c echo.Context) error {
	id, err := reservationID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	var req adminReservationReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	instant, err := utils.CombineDateBlock(req.Date, req.Block)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid date or block"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 10*time.Second)
	defer cancel()

	res, err := h.Bookings.Edit(ctx, id, booking.EditRequest{
		Name:            req.Name,
		Phone:           req.Phone,
		Email:           req.Email,
		ReservationTime: instant,
		PeopleCount:     req.PeopleCount,
		Status:          req.Status,
	})
	if err != nil {
		var ve *booking.ValidationError
		if errors.As(err, &ve) {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": ve.Error()})
		}
		if errors.Is(err, repository.ErrReservationNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "reservation not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to update reservation"})
	}
	return c.JSON(http.StatusOK, res)
}

// Confirm moves a pending reservation to confirmed.
func (h *AdminReservationHandler) Confirm(c echo.Context) error {
	return h.transition(c, h.Bookings.Confirm)
}

// Cancel moves a pending reservation to cancelled.
func (h *AdminReservationHandler) Cancel(c echo.Context) error {
	return h.transition(c, h.Bookings.Cancel)
}

func (h *AdminReservationHandler) transition(c echo.Context, fn func(context.Context, uint64) (*model.Reservation, error)) error {
	id, err := reservationID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 10*time.Second)
	defer cancel()

	res, err := fn(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrReservationNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "reservation not found"})
		}
		if errors.Is(err, booking.ErrInvalidTransition) {
			return c.JSON(http.StatusConflict, echo.Map{"error": "reservation is not pending"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to update reservation"})
	}
	return c.JSON(http.StatusOK, res)
}

// Delete removes a reservation after a best-effort cancellation notice.
func (h *AdminReservationHandler) Delete(c echo.Context) error {
	id, err := reservationID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 10*time.Second)
	defer cancel()

	if err := h.Bookings.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrReservationNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "reservation not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to delete reservation"})
	}
	return c.NoContent(http.StatusNoContent)
}
