package router

import (
	"github.com/labstack/echo/v4"

	"github.com/athenesolijf/reservation-api/internal/handler"
	"github.com/athenesolijf/reservation-api/internal/middleware"
)

// RegisterAdmin registers the management surface under /v1/admin.  Every
// route requires a valid access token with the ADMIN role.
func RegisterAdmin(
	e *echo.Echo,
	jwtSecret string,
	res *handler.AdminReservationHandler,
	slots *handler.AdminSlotHandler,
	days *handler.AdminDayHandler,
	notify *handler.NotificationHandler,
) {
	g := e.Group("/v1/admin")
	g.Use(middleware.JWTAuth(jwtSecret))
	g.Use(middleware.RequireRole("ADMIN"))

	g.GET("/reservations", res.List)
	g.POST("/reservations", res.Create)
	g.GET("/reservations/:id", res.Get)
	g.PUT("/reservations/:id", res.Update)
	g.DELETE("/reservations/:id", res.Delete)
	g.POST("/reservations/:id/confirm", res.Confirm)
	g.POST("/reservations/:id/cancel", res.Cancel)

	g.GET("/time-slots", slots.List)
	g.POST("/time-slots", slots.Create)
	g.GET("/time-slots/:id", slots.Get)
	g.PUT("/time-slots/:id", slots.Update)
	g.DELETE("/time-slots/:id", slots.Delete)

	g.GET("/days", days.List)
	g.POST("/days", days.Create)
	g.GET("/days/:id", days.Get)
	g.PUT("/days/:id", days.Update)
	g.DELETE("/days/:id", days.Delete)

	g.POST("/notifications", notify.Send)
}
