package middleware

import (
	"github.com/Eursukkul/hotel-booking-service/pkg/logger"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// RequestID reuses an incoming X-Request-ID or generates one, echoes it on
// the response and stores a logger carrying it on the context.
func RequestID(base *zap.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			requestID := c.Request().Header.Get(echo.HeaderXRequestID)
			if requestID == "" {
				requestID = uuid.New().String()
				c.Request().Header.Set(echo.HeaderXRequestID, requestID)
			}
			c.Response().Header().Set(echo.HeaderXRequestID, requestID)

			c.Set(logger.ContextKey, base.With(zap.String("request_id", requestID)))
			return next(c)
		}
	}
}
