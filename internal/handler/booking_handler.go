package handler

import (
	"net/http"

	"github.com/Eursukkul/hotel-booking-service/internal/dto"
	"github.com/Eursukkul/hotel-booking-service/internal/middleware"
	"github.com/Eursukkul/hotel-booking-service/internal/service"
	"github.com/labstack/echo/v4"
)

type BookingHandler struct {
	svc service.BookingService
}

func NewBookingHandler(svc service.BookingService) *BookingHandler {
	return &BookingHandler{svc: svc}
}

func (h *BookingHandler) RegisterRoutes(api *echo.Group) {
	bookings := api.Group("/bookings")
	bookings.GET("/", h.ListBookings)
	bookings.POST("/", h.CreateBooking)
	bookings.GET("/:id/", h.GetBooking)
	bookings.PUT("/:id/", h.UpdateBooking)
	bookings.DELETE("/:id/", h.CancelBooking)
}

func toBookingInput(req dto.CreateBookingRequest) service.BookingInput {
	return service.BookingInput{
		RoomID:       req.Room,
		CheckInDate:  req.CheckInDate,
		CheckOutDate: req.CheckOutDate,
		NumGuests:    req.NumGuests,
	}
}

func (h *BookingHandler) CreateBooking(c echo.Context) error {
	var req dto.CreateBookingRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	booking, err := h.svc.CreateBooking(c.Request().Context(), middleware.ActorFrom(c), toBookingInput(req))
	if err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusCreated, dto.ToBookingResponse(booking))
}

func (h *BookingHandler) UpdateBooking(c echo.Context) error {
	id, err := parseID(c, "booking")
	if err != nil {
		return err
	}

	var req dto.CreateBookingRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	booking, err := h.svc.UpdateBooking(c.Request().Context(), middleware.ActorFrom(c), id, toBookingInput(req))
	if err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusOK, dto.ToBookingResponse(booking))
}

func (h *BookingHandler) CancelBooking(c echo.Context) error {
	id, err := parseID(c, "booking")
	if err != nil {
		return err
	}

	if err := h.svc.CancelBooking(c.Request().Context(), middleware.ActorFrom(c), id); err != nil {
		return toHTTPError(err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *BookingHandler) GetBooking(c echo.Context) error {
	id, err := parseID(c, "booking")
	if err != nil {
		return err
	}

	booking, err := h.svc.GetBooking(c.Request().Context(), middleware.ActorFrom(c), id)
	if err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusOK, dto.ToBookingResponse(booking))
}

func (h *BookingHandler) ListBookings(c echo.Context) error {
	bookings, err := h.svc.ListBookings(c.Request().Context(), middleware.ActorFrom(c))
	if err != nil {
		return toHTTPError(err)
	}

	resp := make([]dto.BookingResponse, len(bookings))
	for i := range bookings {
		resp[i] = dto.ToBookingResponse(&bookings[i])
	}
	return c.JSON(http.StatusOK, resp)
}
