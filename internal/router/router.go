package router

import (
	"net/http"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"

	"github.com/athenesolijf/reservation-api/internal/config"
	"github.com/athenesolijf/reservation-api/internal/handler"
	"github.com/athenesolijf/reservation-api/internal/middleware"
)

// RegisterRoutes registers the unauthenticated service routes.
func RegisterRoutes(e *echo.Echo) {
	e.GET("/healthz", handler.Health)
}

// RegisterPublic registers the guest-facing endpoints.  They are the only
// routes open to the booking website, so CORS is pinned to that single
// origin here rather than globally.  Availability responses are cached;
// reservation submissions are rate-limited per client IP.
func RegisterPublic(e *echo.Echo, p *handler.PublicHandler, cfg config.Config, rdb *redis.Client) {
	g := e.Group("/v1")
	g.Use(echomw.CORSWithConfig(echomw.CORSConfig{
		AllowOrigins: []string{cfg.CORSOrigin},
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowHeaders: []string{echo.HeaderContentType},
	}))

	cache := middleware.NewRedisCache(config.LoadCacheConfig(), rdb)
	g.GET("/blocks", p.Blocks, cache)

	limit := middleware.NewTokenBucket(config.LoadRateLimitConfig(), rdb)
	g.POST("/reservations", p.CreateReservation, limit)
}

// RegisterAuth registers the admin session endpoints.  Login, refresh and
// logout work without a valid access token; /v1/me requires one.
func RegisterAuth(e *echo.Echo, a *handler.AuthHandler, jwtSecret string) {
	g := e.Group("/v1/auth")
	g.POST("/login", a.Login)
	g.POST("/refresh", a.Refresh)
	g.POST("/refresh-access", a.RefreshAccess)
	g.POST("/logout", a.Logout)

	auth := e.Group("/v1")
	auth.Use(middleware.JWTAuth(jwtSecret))
	auth.GET("/me", a.Me)
}
