package dto

import (
	"time"

	"github.com/Eursukkul/hotel-booking-service/internal/models"
)

type RoomResponse struct {
	ID                   uint            `json:"id"`
	Hotel                uint            `json:"hotel"`
	RoomType             models.RoomType `json:"room_type"`
	PricePerNight        string          `json:"price_per_night"`
	MaxGuests            int             `json:"max_guests"`
	TotalRoomsOfThisType int             `json:"total_rooms_of_this_type"`
}

type HotelResponse struct {
	ID          uint           `json:"id"`
	Name        string         `json:"name"`
	City        string         `json:"city"`
	Address     string         `json:"address"`
	Description string         `json:"description"`
	MainImage   *string        `json:"main_image"`
	Rooms       []RoomResponse `json:"rooms"`
}

type BookingResponse struct {
	ID           uint      `json:"id"`
	User         string    `json:"user"`
	Room         uint      `json:"room"`
	CheckInDate  string    `json:"check_in_date"`
	CheckOutDate string    `json:"check_out_date"`
	NumGuests    int       `json:"num_guests"`
	TotalPrice   string    `json:"total_price"`
	BookedAt     time.Time `json:"booked_at"`
}

type MessageResponse struct {
	Message string `json:"message"`
}

type ErrorResponse struct {
	Message string            `json:"message"`
	Fields  map[string]string `json:"fields,omitempty"`
}

type TokenResponse struct {
	Access  string `json:"access"`
	Refresh string `json:"refresh,omitempty"`
}

func ToRoomResponse(r *models.Room) RoomResponse {
	return RoomResponse{
		ID:                   r.ID,
		Hotel:                r.HotelID,
		RoomType:             r.RoomType,
		PricePerNight:        r.PricePerNight.StringFixed(2),
		MaxGuests:            r.MaxGuests,
		TotalRoomsOfThisType: r.TotalRoomsOfThisType,
	}
}

func ToRoomResponses(rooms []models.Room) []RoomResponse {
	resp := make([]RoomResponse, len(rooms))
	for i := range rooms {
		resp[i] = ToRoomResponse(&rooms[i])
	}
	return resp
}

func ToHotelResponse(h *models.Hotel) HotelResponse {
	return HotelResponse{
		ID:          h.ID,
		Name:        h.Name,
		City:        h.City,
		Address:     h.Address,
		Description: h.Description,
		MainImage:   h.MainImage,
		Rooms:       ToRoomResponses(h.Rooms),
	}
}

func ToBookingResponse(b *models.Booking) BookingResponse {
	stay := b.Stay()
	resp := BookingResponse{
		ID:           b.ID,
		Room:         b.RoomID,
		CheckInDate:  stay.CheckInString(),
		CheckOutDate: stay.CheckOutString(),
		NumGuests:    b.NumGuests,
		TotalPrice:   b.TotalPrice.StringFixed(2),
		BookedAt:     b.BookedAt,
	}
	if b.User != nil {
		resp.User = b.User.Username
	}
	return resp
}
