package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/athenesolijf/reservation-api/internal/mailer"
)

// NotificationHandler sends a guest email directly, bypassing the queue.
// Admins use it to resend a notice or to send one for a reservation that
// was handled outside the normal flow.  The SMTP result is surfaced so
// the admin sees delivery failures immediately.
type NotificationHandler struct {
	Mail *mailer.Mailer
}

func NewNotificationHandler(m *mailer.Mailer) *NotificationHandler {
	return &NotificationHandler{Mail: m}
}

type notificationReq struct {
	To              string `json:"to"`
	GuestName       string `json:"guestName"`
	ReservationTime string `json:"reservationTime"`
	Status          string `json:"status"`
	IsConfirmation  bool   `json:"isConfirmation"`
}

// Send delivers one email synchronously.
func (h *NotificationHandler) Send(c echo.Context) error {
	var req notificationReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if req.To == "" || req.GuestName == "" || req.ReservationTime == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "to, guestName and reservationTime are required"})
	}

	err := h.Mail.Send(mailer.Message{
		To:              req.To,
		GuestName:       req.GuestName,
		ReservationTime: req.ReservationTime,
		Status:          req.Status,
		IsConfirmation:  req.IsConfirmation,
	})
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to send email"})
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "email sent"})
}
