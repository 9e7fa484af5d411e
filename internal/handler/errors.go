package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/Eursukkul/hotel-booking-service/internal/dto"
	"github.com/Eursukkul/hotel-booking-service/internal/policy"
	"github.com/Eursukkul/hotel-booking-service/internal/service"
	"github.com/labstack/echo/v4"
)

// toHTTPError maps service and policy errors onto status codes.
func toHTTPError(err error) error {
	var verr *service.ValidationError
	if errors.As(err, &verr) {
		return echo.NewHTTPError(http.StatusBadRequest, dto.ErrorResponse{
			Message: verr.Error(),
			Fields:  verr.Fields,
		})
	}

	switch {
	case errors.Is(err, service.ErrInvalidInput):
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	case errors.Is(err, policy.ErrUnauthorized):
		return echo.NewHTTPError(http.StatusUnauthorized, err.Error())
	case errors.Is(err, service.ErrInvalidCredentials):
		return echo.NewHTTPError(http.StatusUnauthorized, service.ErrInvalidCredentials.Error())
	case errors.Is(err, service.ErrInvalidToken):
		return echo.NewHTTPError(http.StatusUnauthorized, service.ErrInvalidToken.Error())
	case errors.Is(err, policy.ErrForbidden):
		return echo.NewHTTPError(http.StatusForbidden, err.Error())
	case errors.Is(err, service.ErrHotelNotFound),
		errors.Is(err, service.ErrRoomNotFound),
		errors.Is(err, service.ErrBookingNotFound):
		return echo.NewHTTPError(http.StatusNotFound, err.Error())
	case errors.Is(err, service.ErrRoomUnavailable):
		return echo.NewHTTPError(http.StatusConflict, err.Error())
	default:
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error()).SetInternal(err)
	}
}

func parseID(c echo.Context, what string) (uint, error) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		return 0, echo.NewHTTPError(http.StatusBadRequest, "invalid "+what+" id")
	}
	return uint(id), nil
}

func isPartial(c echo.Context) bool {
	return c.Request().Method == http.MethodPatch
}
