package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Eursukkul/hotel-booking-service/internal/models"
	"github.com/Eursukkul/hotel-booking-service/internal/policy"
	"github.com/Eursukkul/hotel-booking-service/internal/repository"
	"github.com/Eursukkul/hotel-booking-service/pkg/metrics"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// BookingInput is the client-writable part of a booking. The owner is
// always the acting user and the total price is computed here.
type BookingInput struct {
	RoomID       uint
	CheckInDate  string
	CheckOutDate string
	NumGuests    int
}

type BookingService interface {
	CreateBooking(ctx context.Context, actor *policy.Actor, in BookingInput) (*models.Booking, error)
	UpdateBooking(ctx context.Context, actor *policy.Actor, id uint, in BookingInput) (*models.Booking, error)
	CancelBooking(ctx context.Context, actor *policy.Actor, id uint) error
	GetBooking(ctx context.Context, actor *policy.Actor, id uint) (*models.Booking, error)
	ListBookings(ctx context.Context, actor *policy.Actor) ([]models.Booking, error)
}

type bookingService struct {
	bookingRepo repository.BookingRepository
	roomRepo    repository.RoomRepository
	publisher   EventPublisher
	mode        AvailabilityMode
	metrics     *metrics.Metrics
	log         *zap.Logger

	// transaction runs fn inside a database transaction.
	transaction func(ctx context.Context, fn func(tx *gorm.DB) error) error
}

func NewBookingService(
	bookingRepo repository.BookingRepository,
	roomRepo repository.RoomRepository,
	publisher EventPublisher,
	mode AvailabilityMode,
	m *metrics.Metrics,
	log *zap.Logger,
) BookingService {
	s := &bookingService{
		bookingRepo: bookingRepo,
		roomRepo:    roomRepo,
		publisher:   publisher,
		mode:        mode,
		metrics:     m,
		log:         log,
	}
	s.transaction = func(ctx context.Context, fn func(tx *gorm.DB) error) error {
		return s.bookingRepo.GetDB().WithContext(ctx).Transaction(fn)
	}
	return s
}

// validateInput checks everything that does not need the database.
func validateInput(in BookingInput) (models.Stay, error) {
	verr := &ValidationError{}
	if in.RoomID == 0 {
		verr.add("room", "This field is required.")
	}
	if in.NumGuests < 1 {
		verr.add("num_guests", "Ensure this value is greater than or equal to 1.")
	}

	stay, err := ParseStay(in.CheckInDate, in.CheckOutDate)
	if err != nil {
		var ie *InputError
		if errors.As(err, &ie) {
			field := "check_out_date"
			if _, perr := time.Parse(models.DateLayout, in.CheckInDate); perr != nil {
				field = "check_in_date"
			}
			verr.add(field, ie.Message)
		} else {
			return models.Stay{}, err
		}
	}
	return stay, verr.orNil()
}

// reserve locks the room, re-checks guests and availability, and returns the
// room so the caller can price the stay. excludeID skips the booking being
// updated.
func (s *bookingService) reserve(ctx context.Context, tx *gorm.DB, in BookingInput, stay models.Stay, excludeID uint) (*models.Room, error) {
	// Lock the room row so concurrent bookings on it serialize here.
	room, err := s.roomRepo.FindByIDForUpdate(ctx, tx, in.RoomID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, newValidationError("room", fmt.Sprintf("Invalid pk \"%d\" - object does not exist.", in.RoomID))
		}
		return nil, err
	}

	if in.NumGuests > room.MaxGuests {
		return nil, newValidationError("num_guests", fmt.Sprintf("This room allows at most %d guests.", room.MaxGuests))
	}

	overlapping, err := s.bookingRepo.CountOverlapping(ctx, tx, room.ID, stay, excludeID)
	if err != nil {
		return nil, err
	}
	if !roomIsFree(s.mode, room, overlapping) {
		return nil, ErrRoomUnavailable
	}
	return room, nil
}

// maxTotalPrice is the first value that no longer fits decimal(8,2).
var maxTotalPrice = decimal.NewFromInt(1000000)

func totalPrice(room *models.Room, stay models.Stay) (decimal.Decimal, error) {
	total := room.PricePerNight.Mul(decimal.NewFromInt(int64(stay.Nights()))).Round(2)
	if total.GreaterThanOrEqual(maxTotalPrice) {
		return decimal.Zero, newValidationError("check_out_date",
			fmt.Sprintf("Stay too long: total price %s exceeds the maximum of 999999.99.", total.StringFixed(2)))
	}
	return total, nil
}

func (s *bookingService) CreateBooking(ctx context.Context, actor *policy.Actor, in BookingInput) (*models.Booking, error) {
	if err := policy.AuthorizeBooking(actor, nil, policy.Write); err != nil {
		return nil, err
	}
	stay, err := validateInput(in)
	if err != nil {
		return nil, err
	}

	var result *models.Booking
	err = s.transaction(ctx, func(tx *gorm.DB) error {
		room, err := s.reserve(ctx, tx, in, stay, 0)
		if err != nil {
			return err
		}
		total, err := totalPrice(room, stay)
		if err != nil {
			return err
		}

		booking := &models.Booking{
			UserID:     actor.UserID,
			RoomID:     room.ID,
			NumGuests:  in.NumGuests,
			TotalPrice: total,
		}
		booking.SetStay(stay)
		if err := s.bookingRepo.Create(ctx, tx, booking); err != nil {
			return fmt.Errorf("create booking: %w", err)
		}
		result = booking
		return nil
	})
	if err != nil {
		if errors.Is(err, ErrRoomUnavailable) {
			s.metrics.RecordConflict()
		}
		return nil, err
	}

	result.User = &models.User{ID: actor.UserID, Username: actor.Username}
	s.metrics.RecordBooking("created")
	s.log.Info("booking created",
		zap.Uint("booking_id", result.ID),
		zap.Uint("room_id", result.RoomID),
		zap.Uint("user_id", result.UserID))
	publish(ctx, s.publisher, s.log, RoutingBookingCreated, result)
	return result, nil
}

func (s *bookingService) UpdateBooking(ctx context.Context, actor *policy.Actor, id uint, in BookingInput) (*models.Booking, error) {
	if err := policy.AuthorizeBooking(actor, nil, policy.Write); err != nil {
		return nil, err
	}

	booking, err := s.findOwned(ctx, actor, id, policy.Write)
	if err != nil {
		return nil, err
	}
	stay, err := validateInput(in)
	if err != nil {
		return nil, err
	}

	err = s.transaction(ctx, func(tx *gorm.DB) error {
		room, err := s.reserve(ctx, tx, in, stay, booking.ID)
		if err != nil {
			return err
		}
		total, err := totalPrice(room, stay)
		if err != nil {
			return err
		}

		booking.RoomID = room.ID
		booking.NumGuests = in.NumGuests
		booking.TotalPrice = total
		booking.SetStay(stay)
		if err := s.bookingRepo.Save(ctx, tx, booking); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				// cancelled since findOwned
				return ErrBookingNotFound
			}
			return fmt.Errorf("update booking: %w", err)
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, ErrRoomUnavailable) {
			s.metrics.RecordConflict()
		}
		return nil, err
	}

	s.metrics.RecordBooking("updated")
	publish(ctx, s.publisher, s.log, RoutingBookingUpdated, booking)
	return booking, nil
}

func (s *bookingService) CancelBooking(ctx context.Context, actor *policy.Actor, id uint) error {
	if err := policy.AuthorizeBooking(actor, nil, policy.Write); err != nil {
		return err
	}

	booking, err := s.findOwned(ctx, actor, id, policy.Write)
	if err != nil {
		return err
	}

	if err := s.bookingRepo.Delete(ctx, s.bookingRepo.GetDB(), booking.ID); err != nil {
		return fmt.Errorf("delete booking: %w", err)
	}

	s.metrics.RecordBooking("cancelled")
	s.log.Info("booking cancelled", zap.Uint("booking_id", booking.ID), zap.Uint("user_id", actor.UserID))
	publish(ctx, s.publisher, s.log, RoutingBookingCancelled, booking)
	return nil
}

func (s *bookingService) GetBooking(ctx context.Context, actor *policy.Actor, id uint) (*models.Booking, error) {
	if err := policy.AuthorizeBooking(actor, nil, policy.Read); err != nil {
		return nil, err
	}
	return s.findOwned(ctx, actor, id, policy.Read)
}

// ListBookings returns the actor's bookings, newest first.
func (s *bookingService) ListBookings(ctx context.Context, actor *policy.Actor) ([]models.Booking, error) {
	if err := policy.AuthorizeBooking(actor, nil, policy.Read); err != nil {
		return nil, err
	}
	return s.bookingRepo.FindByUser(ctx, actor.UserID)
}

// findOwned loads a booking scoped to the actor and applies the ownership
// rule to the loaded row. Other users' bookings are indistinguishable from
// missing ones.
func (s *bookingService) findOwned(ctx context.Context, actor *policy.Actor, id uint, capability policy.Capability) (*models.Booking, error) {
	booking, err := s.bookingRepo.FindByIDForUser(ctx, id, actor.UserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBookingNotFound
		}
		return nil, err
	}
	if err := policy.AuthorizeBooking(actor, booking, capability); err != nil {
		if errors.Is(err, policy.ErrForbidden) {
			return nil, ErrBookingNotFound
		}
		return nil, err
	}
	return booking, nil
}
