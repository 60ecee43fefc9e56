package handler

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/athenesolijf/reservation-api/internal/model"
	"github.com/athenesolijf/reservation-api/internal/repository"
	"github.com/athenesolijf/reservation-api/internal/utils"
)

// AdminSlotHandler manages the standard time slot templates.
type AdminSlotHandler struct {
	Repo *repository.SlotTemplateRepo
}

func NewAdminSlotHandler(r *repository.SlotTemplateRepo) *AdminSlotHandler {
	return &AdminSlotHandler{Repo: r}
}

type slotReq struct {
	SlotTime        string `json:"slot_time"`
	MaxReservations int    `json:"max_reservations"`
}

func (r slotReq) validate() error {
	if _, err := time.Parse(utils.BlockLayout, r.SlotTime); err != nil {
		return errors.New("slot_time must be HH:MM")
	}
	if r.MaxReservations < 0 {
		return errors.New("max_reservations must not be negative")
	}
	return nil
}

// List returns every template ordered by time of day.
func (h *AdminSlotHandler) List(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	list, err := h.Repo.List(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to list time slots"})
	}
	return c.JSON(http.StatusOK, echo.Map{"time_slots": list})
}

// Get returns one template.
func (h *AdminSlotHandler) Get(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	t, err := h.Repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrTemplateNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "time slot not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load time slot"})
	}
	return c.JSON(http.StatusOK, t)
}

// Create adds a template.
func (h *AdminSlotHandler) Create(c echo.Context) error {
	var req slotReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if err := req.validate(); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	t := &model.TimeSlotTemplate{SlotTime: req.SlotTime, MaxReservations: req.MaxReservations}
	if err := h.Repo.Create(ctx, t); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to create time slot"})
	}
	return c.JSON(http.StatusCreated, t)
}

// Update rewrites a template.
func (h *AdminSlotHandler) Update(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	var req slotReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if err := req.validate(); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	t := &model.TimeSlotTemplate{ID: id, SlotTime: req.SlotTime, MaxReservations: req.MaxReservations}
	if err := h.Repo.Update(ctx, t); err != nil {
		if errors.Is(err, repository.ErrTemplateNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "time slot not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to update time slot"})
	}
	return c.JSON(http.StatusOK, t)
}

// Delete removes a template.  A template still attached to an override
// day answers 409 so the admin can detach it first.
func (h *AdminSlotHandler) Delete(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if err := h.Repo.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrTemplateNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "time slot not found"})
		}
		if errors.Is(err, repository.ErrConflict) {
			return c.JSON(http.StatusConflict, echo.Map{"error": "time slot is in use by an override day"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to delete time slot"})
	}
	return c.NoContent(http.StatusNoContent)
}
