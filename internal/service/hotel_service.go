package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/Eursukkul/hotel-booking-service/internal/models"
	"github.com/Eursukkul/hotel-booking-service/internal/policy"
	"github.com/Eursukkul/hotel-booking-service/internal/repository"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// HotelInput holds the manager-editable hotel fields. With partial set, nil
// fields keep their stored value.
type HotelInput struct {
	Name        *string
	City        *string
	Address     *string
	Description *string
	MainImage   *string
}

type HotelService interface {
	ListHotels(ctx context.Context) ([]models.Hotel, error)
	GetHotel(ctx context.Context, id uint) (*models.Hotel, error)
	GetManagedHotel(ctx context.Context, actor *policy.Actor) (*models.Hotel, error)
	UpdateHotel(ctx context.Context, actor *policy.Actor, id uint, in HotelInput, partial bool) (*models.Hotel, error)
}

type hotelService struct {
	hotelRepo repository.HotelRepository
	log       *zap.Logger
}

func NewHotelService(hotelRepo repository.HotelRepository, log *zap.Logger) HotelService {
	return &hotelService{hotelRepo: hotelRepo, log: log}
}

func (s *hotelService) ListHotels(ctx context.Context) ([]models.Hotel, error) {
	return s.hotelRepo.FindAll(ctx)
}

func (s *hotelService) GetHotel(ctx context.Context, id uint) (*models.Hotel, error) {
	hotel, err := s.hotelRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrHotelNotFound
		}
		return nil, err
	}
	return hotel, nil
}

func (s *hotelService) GetManagedHotel(ctx context.Context, actor *policy.Actor) (*models.Hotel, error) {
	if err := policy.AuthorizeAuthenticated(actor); err != nil {
		return nil, err
	}
	hotel, err := s.hotelRepo.FindByManager(ctx, actor.UserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrHotelNotFound
		}
		return nil, err
	}
	return hotel, nil
}

func (s *hotelService) UpdateHotel(ctx context.Context, actor *policy.Actor, id uint, in HotelInput, partial bool) (*models.Hotel, error) {
	if err := policy.AuthorizeAuthenticated(actor); err != nil {
		return nil, err
	}
	hotel, err := s.GetHotel(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := policy.AuthorizeHotel(actor, hotel, policy.Write); err != nil {
		return nil, err
	}

	verr := &ValidationError{}
	applyRequired(verr, "name", in.Name, &hotel.Name, partial)
	applyRequired(verr, "city", in.City, &hotel.City, partial)
	applyRequired(verr, "address", in.Address, &hotel.Address, partial)
	if in.Description != nil || !partial {
		hotel.Description = deref(in.Description)
	}
	if in.MainImage != nil || !partial {
		hotel.MainImage = in.MainImage
	}
	if err := verr.orNil(); err != nil {
		return nil, err
	}

	if err := s.hotelRepo.Save(ctx, hotel); err != nil {
		return nil, fmt.Errorf("update hotel: %w", err)
	}
	s.log.Info("hotel updated", zap.Uint("hotel_id", hotel.ID), zap.Uint("manager_id", actor.UserID))
	return hotel, nil
}

// applyRequired copies a non-blank value into dst. A nil value is an error
// unless the update is partial.
func applyRequired(verr *ValidationError, field string, value *string, dst *string, partial bool) {
	if value == nil {
		if !partial {
			verr.add(field, "This field is required.")
		}
		return
	}
	if strings.TrimSpace(*value) == "" {
		verr.add(field, "This field may not be blank.")
		return
	}
	*dst = strings.TrimSpace(*value)
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
