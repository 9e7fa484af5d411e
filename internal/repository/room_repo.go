package repository

import (
	"context"

	"github.com/Eursukkul/hotel-booking-service/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type RoomRepository interface {
	FindAll(ctx context.Context) ([]models.Room, error)
	FindByID(ctx context.Context, id uint) (*models.Room, error)
	FindByIDForUpdate(ctx context.Context, tx *gorm.DB, id uint) (*models.Room, error)
	FindByHotelIDs(ctx context.Context, hotelIDs, excludeIDs []uint) ([]models.Room, error)
	Create(ctx context.Context, room *models.Room) error
	Save(ctx context.Context, room *models.Room) error
	Delete(ctx context.Context, id uint) error
}

type roomRepository struct {
	db *gorm.DB
}

func NewRoomRepository(db *gorm.DB) RoomRepository {
	return &roomRepository{db: db}
}

func (r *roomRepository) FindAll(ctx context.Context) ([]models.Room, error) {
	var rooms []models.Room
	if err := r.db.WithContext(ctx).Order("id ASC").Find(&rooms).Error; err != nil {
		return nil, err
	}
	return rooms, nil
}

// FindByID loads the room together with its hotel.
func (r *roomRepository) FindByID(ctx context.Context, id uint) (*models.Room, error) {
	var room models.Room
	if err := r.db.WithContext(ctx).Preload("Hotel").First(&room, id).Error; err != nil {
		return nil, err
	}
	return &room, nil
}

// FindByIDForUpdate acquires a row-level lock on the room within the given transaction.
func (r *roomRepository) FindByIDForUpdate(ctx context.Context, tx *gorm.DB, id uint) (*models.Room, error) {
	var room models.Room
	if err := tx.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&room, id).Error; err != nil {
		return nil, err
	}
	return &room, nil
}

// FindByHotelIDs returns rooms of the given hotels minus excludeIDs.
func (r *roomRepository) FindByHotelIDs(ctx context.Context, hotelIDs, excludeIDs []uint) ([]models.Room, error) {
	if len(hotelIDs) == 0 {
		return []models.Room{}, nil
	}

	q := r.db.WithContext(ctx).Where("hotel_id IN ?", hotelIDs)
	if len(excludeIDs) > 0 {
		q = q.Where("id NOT IN ?", excludeIDs)
	}

	var rooms []models.Room
	if err := q.Order("id ASC").Find(&rooms).Error; err != nil {
		return nil, err
	}
	return rooms, nil
}

func (r *roomRepository) Create(ctx context.Context, room *models.Room) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Create(room).Error
}

func (r *roomRepository) Save(ctx context.Context, room *models.Room) error {
	return r.db.WithContext(ctx).
		Model(&models.Room{ID: room.ID}).
		Select("hotel_id", "room_type", "price_per_night", "max_guests", "total_rooms_of_this_type").
		Updates(room).Error
}

func (r *roomRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&models.Room{}, id).Error
}
