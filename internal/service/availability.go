package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/Eursukkul/hotel-booking-service/internal/models"
	"github.com/Eursukkul/hotel-booking-service/internal/repository"
	"github.com/Eursukkul/hotel-booking-service/pkg/metrics"
	"go.uber.org/zap"
)

// AvailabilityMode decides when existing bookings make a room unavailable.
type AvailabilityMode string

const (
	// ModeExclusive treats any overlapping booking as blocking the room.
	ModeExclusive AvailabilityMode = "exclusive"
	// ModeCapacity blocks a room only once overlapping bookings reach
	// total_rooms_of_this_type.
	ModeCapacity AvailabilityMode = "capacity"
)

func ParseAvailabilityMode(s string) AvailabilityMode {
	if AvailabilityMode(strings.ToLower(s)) == ModeCapacity {
		return ModeCapacity
	}
	return ModeExclusive
}

// roomIsFree reports whether room can take one more booking given the
// number of bookings already overlapping the requested stay.
func roomIsFree(mode AvailabilityMode, room *models.Room, overlapping int64) bool {
	if mode == ModeCapacity {
		return overlapping < int64(room.Capacity())
	}
	return overlapping == 0
}

// ParseStay parses YYYY-MM-DD dates into a stay with check-out after check-in.
func ParseStay(checkIn, checkOut string) (models.Stay, error) {
	if checkIn == "" || checkOut == "" {
		return models.Stay{}, invalidInput("Check-in and check-out dates are required.")
	}
	in, err := time.Parse(models.DateLayout, checkIn)
	if err != nil {
		return models.Stay{}, invalidInput("Invalid check_in date %q, use YYYY-MM-DD.", checkIn)
	}
	out, err := time.Parse(models.DateLayout, checkOut)
	if err != nil {
		return models.Stay{}, invalidInput("Invalid check_out date %q, use YYYY-MM-DD.", checkOut)
	}

	stay := models.Stay{CheckIn: in, CheckOut: out}
	if !stay.Valid() {
		return models.Stay{}, invalidInput("Check-out date must be after check-in date.")
	}
	return stay, nil
}

type AvailabilityQuery struct {
	CheckIn  string
	CheckOut string
	City     string
}

type AvailabilityService interface {
	SearchAvailableRooms(ctx context.Context, q AvailabilityQuery) ([]models.Room, error)
}

type availabilityService struct {
	hotelRepo   repository.HotelRepository
	roomRepo    repository.RoomRepository
	bookingRepo repository.BookingRepository
	mode        AvailabilityMode
	metrics     *metrics.Metrics
	log         *zap.Logger
}

func NewAvailabilityService(
	hotelRepo repository.HotelRepository,
	roomRepo repository.RoomRepository,
	bookingRepo repository.BookingRepository,
	mode AvailabilityMode,
	m *metrics.Metrics,
	log *zap.Logger,
) AvailabilityService {
	return &availabilityService{
		hotelRepo:   hotelRepo,
		roomRepo:    roomRepo,
		bookingRepo: bookingRepo,
		mode:        mode,
		metrics:     m,
		log:         log,
	}
}

// SearchAvailableRooms returns the rooms of hotels matching the city filter
// that have no booking overlapping [CheckIn, CheckOut), ordered by id.
func (s *availabilityService) SearchAvailableRooms(ctx context.Context, q AvailabilityQuery) ([]models.Room, error) {
	stay, err := ParseStay(q.CheckIn, q.CheckOut)
	if err != nil {
		s.metrics.RecordSearch("invalid")
		return nil, err
	}

	hotelIDs, err := s.hotelRepo.FindIDsByCity(ctx, strings.TrimSpace(q.City))
	if err != nil {
		return nil, fmt.Errorf("find hotels: %w", err)
	}
	if len(hotelIDs) == 0 {
		s.metrics.RecordSearch("empty")
		return []models.Room{}, nil
	}

	var rooms []models.Room
	if s.mode == ModeCapacity {
		rooms, err = s.searchByCapacity(ctx, hotelIDs, stay)
	} else {
		rooms, err = s.searchExclusive(ctx, hotelIDs, stay)
	}
	if err != nil {
		return nil, err
	}

	if len(rooms) == 0 {
		s.metrics.RecordSearch("empty")
	} else {
		s.metrics.RecordSearch("ok")
	}
	s.log.Debug("availability search",
		zap.String("check_in", q.CheckIn),
		zap.String("check_out", q.CheckOut),
		zap.String("city", q.City),
		zap.Int("rooms", len(rooms)))
	return rooms, nil
}

func (s *availabilityService) searchExclusive(ctx context.Context, hotelIDs []uint, stay models.Stay) ([]models.Room, error) {
	booked, err := s.bookingRepo.FindOverlappingRoomIDs(ctx, stay)
	if err != nil {
		return nil, fmt.Errorf("find overlapping bookings: %w", err)
	}
	rooms, err := s.roomRepo.FindByHotelIDs(ctx, hotelIDs, booked)
	if err != nil {
		return nil, fmt.Errorf("find rooms: %w", err)
	}
	return rooms, nil
}

func (s *availabilityService) searchByCapacity(ctx context.Context, hotelIDs []uint, stay models.Stay) ([]models.Room, error) {
	counts, err := s.bookingRepo.CountOverlappingByRoom(ctx, stay)
	if err != nil {
		return nil, fmt.Errorf("count overlapping bookings: %w", err)
	}
	candidates, err := s.roomRepo.FindByHotelIDs(ctx, hotelIDs, nil)
	if err != nil {
		return nil, fmt.Errorf("find rooms: %w", err)
	}

	rooms := make([]models.Room, 0, len(candidates))
	for i := range candidates {
		if roomIsFree(ModeCapacity, &candidates[i], counts[candidates[i].ID]) {
			rooms = append(rooms, candidates[i])
		}
	}
	return rooms, nil
}
