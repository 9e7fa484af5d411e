package models

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
)

type Booking struct {
	ID           uint            `gorm:"primaryKey" json:"id"`
	UserID       uint            `gorm:"not null;index" json:"user_id"`
	RoomID       uint            `gorm:"not null;index:idx_booking_room_stay,priority:1" json:"room_id"`
	CheckInDate  datatypes.Date  `gorm:"not null;index:idx_booking_room_stay,priority:2" json:"check_in_date"`
	CheckOutDate datatypes.Date  `gorm:"not null;index:idx_booking_room_stay,priority:3;check:chk_bookings_stay,check_out_date > check_in_date" json:"check_out_date"`
	NumGuests    int             `gorm:"not null;default:1" json:"num_guests"`
	TotalPrice   decimal.Decimal `gorm:"type:decimal(8,2);not null" json:"total_price"`
	BookedAt     time.Time       `gorm:"not null;autoCreateTime" json:"booked_at"`

	User *User `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"user,omitempty"`
	Room *Room `gorm:"foreignKey:RoomID;constraint:OnDelete:CASCADE" json:"room,omitempty"`
}

// Stay returns the booked interval.
func (b *Booking) Stay() Stay {
	return Stay{CheckIn: time.Time(b.CheckInDate), CheckOut: time.Time(b.CheckOutDate)}
}

// SetStay copies the interval into the date columns.
func (b *Booking) SetStay(s Stay) {
	b.CheckInDate = datatypes.Date(s.CheckIn)
	b.CheckOutDate = datatypes.Date(s.CheckOut)
}
