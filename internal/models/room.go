package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type RoomType string

const (
	RoomSingle RoomType = "single"
	RoomDouble RoomType = "double"
	RoomSuite  RoomType = "suite"
	RoomDeluxe RoomType = "deluxe"
)

func (t RoomType) Valid() bool {
	switch t {
	case RoomSingle, RoomDouble, RoomSuite, RoomDeluxe:
		return true
	}
	return false
}

type Room struct {
	ID                   uint            `gorm:"primaryKey" json:"id"`
	HotelID              uint            `gorm:"not null;index" json:"hotel_id"`
	RoomType             RoomType        `gorm:"type:varchar(20);not null" json:"room_type"`
	PricePerNight        decimal.Decimal `gorm:"type:decimal(8,2);not null" json:"price_per_night"`
	MaxGuests            int             `gorm:"not null;default:2" json:"max_guests"`
	TotalRoomsOfThisType int             `gorm:"not null;default:1" json:"total_rooms_of_this_type"`
	CreatedAt            time.Time       `json:"created_at"`
	UpdatedAt            time.Time       `json:"updated_at"`

	Hotel *Hotel `gorm:"foreignKey:HotelID" json:"hotel,omitempty"`
}

// Capacity is the number of concurrently bookable units, never below one.
func (r *Room) Capacity() int {
	if r.TotalRoomsOfThisType < 1 {
		return 1
	}
	return r.TotalRoomsOfThisType
}
