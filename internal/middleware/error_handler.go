package middleware

import (
	"net/http"

	"github.com/Eursukkul/hotel-booking-service/internal/dto"
	"github.com/Eursukkul/hotel-booking-service/pkg/logger"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// NewErrorHandler renders every error as {"message": ...}, adding "fields"
// for validation errors. Server errors are logged and their detail hidden.
func NewErrorHandler(log *zap.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		code := http.StatusInternalServerError
		resp := dto.ErrorResponse{Message: http.StatusText(code)}

		if he, ok := err.(*echo.HTTPError); ok {
			code = he.Code
			switch m := he.Message.(type) {
			case string:
				resp.Message = m
			case dto.ErrorResponse:
				resp = m
			default:
				resp.Message = http.StatusText(code)
			}
		}

		if code >= http.StatusInternalServerError {
			logger.FromContext(c, log).Error("request failed",
				zap.String("method", c.Request().Method),
				zap.String("path", c.Request().URL.Path),
				zap.Int("status", code),
				zap.Error(err))
			resp = dto.ErrorResponse{Message: http.StatusText(code)}
		}

		if c.Request().Method == http.MethodHead {
			_ = c.NoContent(code)
			return
		}
		_ = c.JSON(code, resp)
	}
}
