package consumer

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/Eursukkul/hotel-booking-service/internal/models"
	"github.com/Eursukkul/hotel-booking-service/internal/repository"
	"github.com/Eursukkul/hotel-booking-service/pkg/metrics"
	amqp "github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const (
	HotelsQueue      = "booking-api.hotels"
	HotelsBindingKey = "hotel.*"

	RoutingHotelUpserted = "hotel.upserted"
	RoutingHotelDeleted  = "hotel.deleted"
)

const handleTimeout = 10 * time.Second

// HotelUpserted is published by the catalog administrator whenever a hotel
// is created or edited.
type HotelUpserted struct {
	ID          uint    `json:"id"`
	Name        string  `json:"name"`
	City        string  `json:"city"`
	Address     string  `json:"address"`
	Description string  `json:"description"`
	MainImage   *string `json:"main_image"`
	ManagerID   *uint   `json:"manager_id"`
}

type HotelDeleted struct {
	ID uint `json:"id"`
}

var errMalformed = errors.New("malformed hotel message")

// permanent marks store errors that redelivery cannot fix, such as a
// manager_id naming a missing user or one who already manages a hotel.
func permanent(err error) error {
	if errors.Is(err, gorm.ErrForeignKeyViolated) || errors.Is(err, gorm.ErrDuplicatedKey) {
		return errors.Join(errMalformed, err)
	}
	return err
}

// HotelConsumer keeps the local hotel table in sync with the catalog.
type HotelConsumer struct {
	hotels  repository.HotelRepository
	metrics *metrics.Metrics
	log     *zap.Logger
}

func NewHotelConsumer(hotels repository.HotelRepository, m *metrics.Metrics, log *zap.Logger) *HotelConsumer {
	return &HotelConsumer{hotels: hotels, metrics: m, log: log}
}

// Start drains msgs in a single goroutine. The returned channel is closed
// once msgs is closed and the last delivery has been settled.
func (hc *HotelConsumer) Start(msgs <-chan amqp.Delivery) <-chan struct{} {
	done := make(chan struct{})
	go func() {
		defer close(done)
		for msg := range msgs {
			hc.handleMessage(msg)
		}
		hc.log.Info("hotel consumer channel closed")
	}()
	return done
}

func (hc *HotelConsumer) handleMessage(msg amqp.Delivery) {
	ctx, cancel := context.WithTimeout(context.Background(), handleTimeout)
	defer cancel()

	log := hc.log.With(zap.String("routing_key", msg.RoutingKey))

	err := hc.apply(ctx, msg.RoutingKey, msg.Body)
	switch {
	case err == nil:
		hc.metrics.RecordConsumed(msg.RoutingKey, "ok")
		if ackErr := msg.Ack(false); ackErr != nil {
			log.Warn("ack failed", zap.Error(ackErr))
		}
	case errors.Is(err, errMalformed):
		log.Warn("dropping hotel message", zap.Error(err))
		hc.metrics.RecordConsumed(msg.RoutingKey, "dropped")
		_ = msg.Nack(false, false)
	default:
		log.Error("failed to apply hotel message", zap.Error(err))
		hc.metrics.RecordConsumed(msg.RoutingKey, "requeued")
		_ = msg.Nack(false, true)
	}
}

func (hc *HotelConsumer) apply(ctx context.Context, routingKey string, body []byte) error {
	switch routingKey {
	case RoutingHotelUpserted:
		var ev HotelUpserted
		if err := json.Unmarshal(body, &ev); err != nil {
			return errors.Join(errMalformed, err)
		}
		if ev.ID == 0 || ev.Name == "" || ev.City == "" {
			return errors.Join(errMalformed, errors.New("id, name and city are required"))
		}
		if err := hc.hotels.Upsert(ctx, &models.Hotel{
			ID:          ev.ID,
			Name:        ev.Name,
			City:        ev.City,
			Address:     ev.Address,
			Description: ev.Description,
			MainImage:   ev.MainImage,
			ManagerID:   ev.ManagerID,
		}); err != nil {
			return permanent(err)
		}
		hc.log.Info("hotel synced", zap.Uint("hotel_id", ev.ID), zap.String("name", ev.Name))
		return nil

	case RoutingHotelDeleted:
		var ev HotelDeleted
		if err := json.Unmarshal(body, &ev); err != nil {
			return errors.Join(errMalformed, err)
		}
		if ev.ID == 0 {
			return errors.Join(errMalformed, errors.New("id is required"))
		}
		if err := hc.hotels.Delete(ctx, ev.ID); err != nil {
			return permanent(err)
		}
		hc.log.Info("hotel removed", zap.Uint("hotel_id", ev.ID))
		return nil

	default:
		return errors.Join(errMalformed, errors.New("unknown routing key "+routingKey))
	}
}
