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

// AdminDayHandler manages override days: calendar dates that replace the
// standard slot templates with their own slot set, or that just carry a
// holiday marker.
type AdminDayHandler struct {
	Repo *repository.DayRepo
}

func NewAdminDayHandler(r *repository.DayRepo) *AdminDayHandler {
	return &AdminDayHandler{Repo: r}
}

type dayReq struct {
	Date        string   `json:"day_date"`
	IsHoliday   bool     `json:"is_holiday"`
	TemplateIDs []uint64 `json:"time_slot_template_ids"`
}

type dayResp struct {
	Day   *model.Day           `json:"day"`
	Slots []repository.DaySlot `json:"slots"`
}

func (h *AdminDayHandler) withSlots(ctx context.Context, d *model.Day) (dayResp, error) {
	slots, err := h.Repo.SlotsForDay(ctx, d.ID)
	if err != nil {
		return dayResp{}, err
	}
	return dayResp{Day: d, Slots: slots}, nil
}

// List returns all override days ordered by date.
func (h *AdminDayHandler) List(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	days, err := h.Repo.List(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to list days"})
	}
	return c.JSON(http.StatusOK, echo.Map{"days": days})
}

// Get returns one override day together with its slot set.
func (h *AdminDayHandler) Get(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	d, err := h.Repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrDayNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "day not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load day"})
	}
	resp, err := h.withSlots(ctx, d)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load day slots"})
	}
	return c.JSON(http.StatusOK, resp)
}

// Create upserts the day for a date and appends the given template ids to
// its slot set.  Posting the same date twice updates the holiday flag
// instead of failing, matching how the admin calendar saves a day.
func (h *AdminDayHandler) Create(c echo.Context) error {
	var req dayReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if _, err := time.Parse(utils.DateLayout, req.Date); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "day_date must be YYYY-MM-DD"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	d, err := h.Repo.UpsertByDate(ctx, req.Date, req.IsHoliday)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to save day"})
	}
	if err := h.Repo.InsertSlots(ctx, d.ID, req.TemplateIDs); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to save day slots"})
	}
	resp, err := h.withSlots(ctx, d)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load day slots"})
	}
	return c.JSON(http.StatusCreated, resp)
}

// Update rewrites a day and replaces its slot set with the given template
// ids.  An empty list clears the override so the date falls back to the
// standard templates.
func (h *AdminDayHandler) Update(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	var req dayReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if _, err := time.Parse(utils.DateLayout, req.Date); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "day_date must be YYYY-MM-DD"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	d := &model.Day{ID: id, Date: req.Date, IsHoliday: req.IsHoliday}
	if err := h.Repo.Update(ctx, d); err != nil {
		if errors.Is(err, repository.ErrDayNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "day not found"})
		}
		if errors.Is(err, repository.ErrConflict) {
			return c.JSON(http.StatusConflict, echo.Map{"error": "another day already uses that date"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to update day"})
	}
	if err := h.Repo.ReplaceSlots(ctx, id, req.TemplateIDs); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to save day slots"})
	}
	resp, err := h.withSlots(ctx, d)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load day slots"})
	}
	return c.JSON(http.StatusOK, resp)
}

// Delete removes an override day and its slot set.
func (h *AdminDayHandler) Delete(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if err := h.Repo.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrDayNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "day not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to delete day"})
	}
	return c.NoContent(http.StatusNoContent)
}
