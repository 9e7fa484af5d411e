package service

import (
	"context"
	"time"

	"github.com/Eursukkul/hotel-booking-service/internal/models"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

const (
	RoutingBookingCreated   = "booking.created"
	RoutingBookingUpdated   = "booking.updated"
	RoutingBookingCancelled = "booking.cancelled"
)

// EventPublisher is satisfied by *rabbitmq.Publisher.
type EventPublisher interface {
	Publish(ctx context.Context, routingKey string, payload any) error
}

type BookingEvent struct {
	BookingID    uint            `json:"booking_id"`
	UserID       uint            `json:"user_id"`
	RoomID       uint            `json:"room_id"`
	CheckInDate  string          `json:"check_in_date"`
	CheckOutDate string          `json:"check_out_date"`
	NumGuests    int             `json:"num_guests"`
	TotalPrice   decimal.Decimal `json:"total_price"`
	OccurredAt   time.Time       `json:"occurred_at"`
}

func newBookingEvent(b *models.Booking) BookingEvent {
	stay := b.Stay()
	return BookingEvent{
		BookingID:    b.ID,
		UserID:       b.UserID,
		RoomID:       b.RoomID,
		CheckInDate:  stay.CheckInString(),
		CheckOutDate: stay.CheckOutString(),
		NumGuests:    b.NumGuests,
		TotalPrice:   b.TotalPrice,
		OccurredAt:   time.Now().UTC(),
	}
}

// publish is best effort: a broker failure is logged and never fails the
// request that already committed.
func publish(ctx context.Context, p EventPublisher, log *zap.Logger, routingKey string, b *models.Booking) {
	if p == nil {
		return
	}
	if err := p.Publish(ctx, routingKey, newBookingEvent(b)); err != nil {
		log.Warn("failed to publish booking event",
			zap.String("routing_key", routingKey),
			zap.Uint("booking_id", b.ID),
			zap.Error(err))
	}
}
