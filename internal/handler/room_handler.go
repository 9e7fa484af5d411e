package handler

import (
	"net/http"

	"github.com/Eursukkul/hotel-booking-service/internal/dto"
	"github.com/Eursukkul/hotel-booking-service/internal/middleware"
	"github.com/Eursukkul/hotel-booking-service/internal/service"
	"github.com/labstack/echo/v4"
)

type RoomHandler struct {
	svc service.RoomService
}

func NewRoomHandler(svc service.RoomService) *RoomHandler {
	return &RoomHandler{svc: svc}
}

func (h *RoomHandler) RegisterRoutes(api *echo.Group) {
	rooms := api.Group("/rooms")
	rooms.GET("/", h.ListRooms)
	rooms.POST("/", h.CreateRoom)
	rooms.GET("/:id/", h.GetRoom)
	rooms.PUT("/:id/", h.UpdateRoom)
	rooms.PATCH("/:id/", h.UpdateRoom)
	rooms.DELETE("/:id/", h.DeleteRoom)
}

func toRoomInput(req dto.RoomRequest) service.RoomInput {
	return service.RoomInput{
		HotelID:              req.Hotel,
		RoomType:             req.RoomType,
		PricePerNight:        req.PricePerNight,
		MaxGuests:            req.MaxGuests,
		TotalRoomsOfThisType: req.TotalRoomsOfThisType,
	}
}

func (h *RoomHandler) ListRooms(c echo.Context) error {
	rooms, err := h.svc.ListRooms(c.Request().Context())
	if err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusOK, dto.ToRoomResponses(rooms))
}

func (h *RoomHandler) GetRoom(c echo.Context) error {
	id, err := parseID(c, "room")
	if err != nil {
		return err
	}

	room, err := h.svc.GetRoom(c.Request().Context(), id)
	if err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusOK, dto.ToRoomResponse(room))
}

func (h *RoomHandler) CreateRoom(c echo.Context) error {
	var req dto.RoomRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	room, err := h.svc.CreateRoom(c.Request().Context(), middleware.ActorFrom(c), toRoomInput(req))
	if err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusCreated, dto.ToRoomResponse(room))
}

func (h *RoomHandler) UpdateRoom(c echo.Context) error {
	id, err := parseID(c, "room")
	if err != nil {
		return err
	}

	var req dto.RoomRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	room, err := h.svc.UpdateRoom(c.Request().Context(), middleware.ActorFrom(c), id, toRoomInput(req), isPartial(c))
	if err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusOK, dto.ToRoomResponse(room))
}

func (h *RoomHandler) DeleteRoom(c echo.Context) error {
	id, err := parseID(c, "room")
	if err != nil {
		return err
	}

	if err := h.svc.DeleteRoom(c.Request().Context(), middleware.ActorFrom(c), id); err != nil {
		return toHTTPError(err)
	}
	return c.NoContent(http.StatusNoContent)
}
