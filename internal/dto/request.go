package dto

import "github.com/shopspring/decimal"

// CreateBookingRequest is also used for full updates. Any "user" or
// "total_price" sent by the client is ignored.
type CreateBookingRequest struct {
	Room         uint   `json:"room"`
	CheckInDate  string `json:"check_in_date"`
	CheckOutDate string `json:"check_out_date"`
	NumGuests    int    `json:"num_guests"`
}

type RoomRequest struct {
	Hotel                *uint            `json:"hotel"`
	RoomType             *string          `json:"room_type"`
	PricePerNight        *decimal.Decimal `json:"price_per_night"`
	MaxGuests            *int             `json:"max_guests"`
	TotalRoomsOfThisType *int             `json:"total_rooms_of_this_type"`
}

type HotelRequest struct {
	Name        *string `json:"name"`
	City        *string `json:"city"`
	Address     *string `json:"address"`
	Description *string `json:"description"`
	MainImage   *string `json:"main_image"`
}

type SearchQuery struct {
	CheckIn  string `query:"check_in"`
	CheckOut string `query:"check_out"`
	City     string `query:"city"`
}

type RegisterRequest struct {
	Username  string `json:"username"`
	Email     string `json:"email"`
	Password  string `json:"password"`
	Password2 string `json:"password2"`
}

type TokenRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type RefreshRequest struct {
	Refresh string `json:"refresh" validate:"required"`
}
