package handler

import (
	"net/http"

	"github.com/Eursukkul/hotel-booking-service/internal/dto"
	"github.com/Eursukkul/hotel-booking-service/internal/middleware"
	"github.com/Eursukkul/hotel-booking-service/internal/service"
	"github.com/labstack/echo/v4"
)

type HotelHandler struct {
	svc   service.HotelService
	avail service.AvailabilityService
}

func NewHotelHandler(svc service.HotelService, avail service.AvailabilityService) *HotelHandler {
	return &HotelHandler{svc: svc, avail: avail}
}

func (h *HotelHandler) RegisterRoutes(api *echo.Group) {
	hotels := api.Group("/hotels")
	hotels.GET("/", h.ListHotels)
	hotels.GET("/search/", h.SearchAvailability)
	hotels.GET("/my_hotel/", h.GetManagedHotel)
	hotels.GET("/:id/", h.GetHotel)
	hotels.PUT("/:id/", h.UpdateHotel)
	hotels.PATCH("/:id/", h.UpdateHotel)
}

func (h *HotelHandler) ListHotels(c echo.Context) error {
	hotels, err := h.svc.ListHotels(c.Request().Context())
	if err != nil {
		return toHTTPError(err)
	}

	resp := make([]dto.HotelResponse, len(hotels))
	for i := range hotels {
		resp[i] = dto.ToHotelResponse(&hotels[i])
	}
	return c.JSON(http.StatusOK, resp)
}

func (h *HotelHandler) GetHotel(c echo.Context) error {
	id, err := parseID(c, "hotel")
	if err != nil {
		return err
	}

	hotel, err := h.svc.GetHotel(c.Request().Context(), id)
	if err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusOK, dto.ToHotelResponse(hotel))
}

func (h *HotelHandler) GetManagedHotel(c echo.Context) error {
	hotel, err := h.svc.GetManagedHotel(c.Request().Context(), middleware.ActorFrom(c))
	if err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusOK, dto.ToHotelResponse(hotel))
}

func (h *HotelHandler) UpdateHotel(c echo.Context) error {
	id, err := parseID(c, "hotel")
	if err != nil {
		return err
	}

	var req dto.HotelRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	hotel, err := h.svc.UpdateHotel(c.Request().Context(), middleware.ActorFrom(c), id, service.HotelInput{
		Name:        req.Name,
		City:        req.City,
		Address:     req.Address,
		Description: req.Description,
		MainImage:   req.MainImage,
	}, isPartial(c))
	if err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusOK, dto.ToHotelResponse(hotel))
}

// SearchAvailability handles GET /hotels/search/?check_in=&check_out=&city=
// and returns rooms, not hotels.
func (h *HotelHandler) SearchAvailability(c echo.Context) error {
	var q dto.SearchQuery
	if err := (&echo.DefaultBinder{}).BindQueryParams(c, &q); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid query parameters")
	}

	rooms, err := h.avail.SearchAvailableRooms(c.Request().Context(), service.AvailabilityQuery{
		CheckIn:  q.CheckIn,
		CheckOut: q.CheckOut,
		City:     q.City,
	})
	if err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusOK, dto.ToRoomResponses(rooms))
}
