package main

import (
	"net/http"
	"strings"

	"github.com/Eursukkul/hotel-booking-service/config"
	"github.com/Eursukkul/hotel-booking-service/internal/handler"
	"github.com/Eursukkul/hotel-booking-service/internal/middleware"
	"github.com/Eursukkul/hotel-booking-service/pkg/metrics"
	"github.com/labstack/echo/v4"
	echoMw "github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"
)

type routeRegistrar interface {
	RegisterRoutes(api *echo.Group)
}

// newRouter builds the HTTP surface: /health, /metrics and everything under /api.
// API paths are normalised to a trailing slash before routing.
func newRouter(cfg *config.Config, log *zap.Logger, m *metrics.Metrics, tokens middleware.TokenValidator, handlers ...routeRegistrar) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HTTPErrorHandler = middleware.NewErrorHandler(log)
	e.Validator = handler.NewRequestValidator()

	e.Pre(echoMw.AddTrailingSlashWithConfig(echoMw.TrailingSlashConfig{
		Skipper: func(c echo.Context) bool {
			return !strings.HasPrefix(c.Request().URL.Path, "/api/")
		},
	}))
	e.Use(middleware.RequestID(log))
	e.Use(middleware.Metrics(m))
	e.Use(middleware.RequestLogger(log))
	e.Use(echoMw.Recover())
	e.Use(echoMw.CORSWithConfig(echoMw.CORSConfig{
		AllowOrigins:     cfg.CORSOrigins,
		AllowHeaders:     []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderAuthorization},
		AllowCredentials: true,
	}))
	e.Use(middleware.Authenticate(tokens))

	e.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "ok", "service": "hotel-booking-service"})
	})
	e.GET("/metrics", echo.WrapHandler(m.Handler()))

	api := e.Group("/api")
	for _, h := range handlers {
		h.RegisterRoutes(api)
	}
	return e
}
