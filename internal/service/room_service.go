package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/Eursukkul/hotel-booking-service/internal/models"
	"github.com/Eursukkul/hotel-booking-service/internal/policy"
	"github.com/Eursukkul/hotel-booking-service/internal/repository"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// RoomInput holds the writable room fields. With partial set, nil fields
// keep their stored value.
type RoomInput struct {
	HotelID              *uint
	RoomType             *string
	PricePerNight        *decimal.Decimal
	MaxGuests            *int
	TotalRoomsOfThisType *int
}

type RoomService interface {
	ListRooms(ctx context.Context) ([]models.Room, error)
	GetRoom(ctx context.Context, id uint) (*models.Room, error)
	CreateRoom(ctx context.Context, actor *policy.Actor, in RoomInput) (*models.Room, error)
	UpdateRoom(ctx context.Context, actor *policy.Actor, id uint, in RoomInput, partial bool) (*models.Room, error)
	DeleteRoom(ctx context.Context, actor *policy.Actor, id uint) error
}

type roomService struct {
	roomRepo  repository.RoomRepository
	hotelRepo repository.HotelRepository
	log       *zap.Logger
}

func NewRoomService(roomRepo repository.RoomRepository, hotelRepo repository.HotelRepository, log *zap.Logger) RoomService {
	return &roomService{roomRepo: roomRepo, hotelRepo: hotelRepo, log: log}
}

func (s *roomService) ListRooms(ctx context.Context) ([]models.Room, error) {
	return s.roomRepo.FindAll(ctx)
}

func (s *roomService) GetRoom(ctx context.Context, id uint) (*models.Room, error) {
	room, err := s.roomRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRoomNotFound
		}
		return nil, err
	}
	return room, nil
}

func (s *roomService) CreateRoom(ctx context.Context, actor *policy.Actor, in RoomInput) (*models.Room, error) {
	if err := policy.AuthorizeAuthenticated(actor); err != nil {
		return nil, err
	}

	room := &models.Room{MaxGuests: 2, TotalRoomsOfThisType: 1}
	if err := applyRoomInput(room, in, false); err != nil {
		return nil, err
	}

	hotel, err := s.targetHotel(ctx, room.HotelID)
	if err != nil {
		return nil, err
	}
	if err := policy.AuthorizeHotel(actor, hotel, policy.Write); err != nil {
		return nil, err
	}

	if err := s.roomRepo.Create(ctx, room); err != nil {
		return nil, fmt.Errorf("create room: %w", err)
	}
	s.log.Info("room created", zap.Uint("room_id", room.ID), zap.Uint("hotel_id", room.HotelID))
	return room, nil
}

func (s *roomService) UpdateRoom(ctx context.Context, actor *policy.Actor, id uint, in RoomInput, partial bool) (*models.Room, error) {
	if err := policy.AuthorizeAuthenticated(actor); err != nil {
		return nil, err
	}
	room, err := s.GetRoom(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := policy.AuthorizeRoom(actor, room, policy.Write); err != nil {
		return nil, err
	}

	if err := applyRoomInput(room, in, partial); err != nil {
		return nil, err
	}
	// Moving a room requires managing the destination hotel as well.
	if room.Hotel == nil || room.HotelID != room.Hotel.ID {
		hotel, err := s.targetHotel(ctx, room.HotelID)
		if err != nil {
			return nil, err
		}
		if !hotel.IsManagedBy(actor.UserID) {
			return nil, policy.ErrForbidden
		}
		room.Hotel = hotel
	}

	if err := s.roomRepo.Save(ctx, room); err != nil {
		return nil, fmt.Errorf("update room: %w", err)
	}
	return room, nil
}

func (s *roomService) DeleteRoom(ctx context.Context, actor *policy.Actor, id uint) error {
	if err := policy.AuthorizeAuthenticated(actor); err != nil {
		return err
	}
	room, err := s.GetRoom(ctx, id)
	if err != nil {
		return err
	}
	if err := policy.AuthorizeRoom(actor, room, policy.Write); err != nil {
		return err
	}

	if err := s.roomRepo.Delete(ctx, room.ID); err != nil {
		return fmt.Errorf("delete room: %w", err)
	}
	s.log.Info("room deleted", zap.Uint("room_id", room.ID), zap.Uint("hotel_id", room.HotelID))
	return nil
}

func (s *roomService) targetHotel(ctx context.Context, hotelID uint) (*models.Hotel, error) {
	hotel, err := s.hotelRepo.FindByID(ctx, hotelID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, newValidationError("hotel", fmt.Sprintf("Invalid pk \"%d\" - object does not exist.", hotelID))
		}
		return nil, err
	}
	return hotel, nil
}

func applyRoomInput(room *models.Room, in RoomInput, partial bool) error {
	verr := &ValidationError{}

	switch {
	case in.HotelID != nil && *in.HotelID != 0:
		room.HotelID = *in.HotelID
	case in.HotelID != nil || !partial:
		verr.add("hotel", "This field is required.")
	}

	if in.RoomType != nil {
		if rt := models.RoomType(*in.RoomType); rt.Valid() {
			room.RoomType = rt
		} else {
			verr.add("room_type", fmt.Sprintf("\"%s\" is not a valid choice.", *in.RoomType))
		}
	} else if !partial {
		verr.add("room_type", "This field is required.")
	}

	if in.PricePerNight != nil {
		if in.PricePerNight.IsNegative() {
			verr.add("price_per_night", "Ensure this value is greater than or equal to 0.")
		} else if in.PricePerNight.GreaterThanOrEqual(decimal.NewFromInt(1000000)) {
			verr.add("price_per_night", "Ensure that there are no more than 8 digits in total.")
		} else {
			room.PricePerNight = in.PricePerNight.Round(2)
		}
	} else if !partial {
		verr.add("price_per_night", "This field is required.")
	}

	if in.MaxGuests != nil {
		if *in.MaxGuests < 1 {
			verr.add("max_guests", "Ensure this value is greater than or equal to 1.")
		} else {
			room.MaxGuests = *in.MaxGuests
		}
	}
	if in.TotalRoomsOfThisType != nil {
		if *in.TotalRoomsOfThisType < 1 {
			verr.add("total_rooms_of_this_type", "Ensure this value is greater than or equal to 1.")
		} else {
			room.TotalRoomsOfThisType = *in.TotalRoomsOfThisType
		}
	}

	return verr.orNil()
}
