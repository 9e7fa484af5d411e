package repository

import (
	"context"
	"strings"

	"github.com/Eursukkul/hotel-booking-service/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type HotelRepository interface {
	FindAll(ctx context.Context) ([]models.Hotel, error)
	FindByID(ctx context.Context, id uint) (*models.Hotel, error)
	FindByManager(ctx context.Context, userID uint) (*models.Hotel, error)
	FindIDsByCity(ctx context.Context, city string) ([]uint, error)
	Save(ctx context.Context, hotel *models.Hotel) error
	Upsert(ctx context.Context, hotel *models.Hotel) error
	Delete(ctx context.Context, id uint) error
}

type hotelRepository struct {
	db *gorm.DB
}

func NewHotelRepository(db *gorm.DB) HotelRepository {
	return &hotelRepository{db: db}
}

func withRooms(db *gorm.DB) *gorm.DB {
	return db.Preload("Rooms", func(db *gorm.DB) *gorm.DB {
		return db.Order("rooms.id ASC")
	})
}

func (r *hotelRepository) FindAll(ctx context.Context) ([]models.Hotel, error) {
	var hotels []models.Hotel
	if err := withRooms(r.db.WithContext(ctx)).Order("id ASC").Find(&hotels).Error; err != nil {
		return nil, err
	}
	return hotels, nil
}

func (r *hotelRepository) FindByID(ctx context.Context, id uint) (*models.Hotel, error) {
	var hotel models.Hotel
	if err := withRooms(r.db.WithContext(ctx)).First(&hotel, id).Error; err != nil {
		return nil, err
	}
	return &hotel, nil
}

func (r *hotelRepository) FindByManager(ctx context.Context, userID uint) (*models.Hotel, error) {
	var hotel models.Hotel
	if err := withRooms(r.db.WithContext(ctx)).Where("manager_id = ?", userID).First(&hotel).Error; err != nil {
		return nil, err
	}
	return &hotel, nil
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// FindIDsByCity matches city as a case-insensitive substring. An empty city
// matches every hotel.
func (r *hotelRepository) FindIDsByCity(ctx context.Context, city string) ([]uint, error) {
	q := r.db.WithContext(ctx).Model(&models.Hotel{})
	if city != "" {
		pattern := "%" + likeEscaper.Replace(strings.ToLower(city)) + "%"
		q = q.Where("LOWER(city) LIKE ?", pattern)
	}

	var ids []uint
	if err := q.Order("id ASC").Pluck("id", &ids).Error; err != nil {
		return nil, err
	}
	return ids, nil
}

func (r *hotelRepository) Save(ctx context.Context, hotel *models.Hotel) error {
	return r.db.WithContext(ctx).
		Model(&models.Hotel{ID: hotel.ID}).
		Select("name", "city", "address", "description", "main_image").
		Updates(hotel).Error
}

// Upsert inserts or replaces a hotel keyed by id.
func (r *hotelRepository) Upsert(ctx context.Context, hotel *models.Hotel) error {
	return r.db.WithContext(ctx).
		Omit(clause.Associations).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "id"}},
			DoUpdates: clause.AssignmentColumns([]string{"name", "city", "address", "description", "main_image", "manager_id", "updated_at"}),
		}).
		Create(hotel).Error
}

func (r *hotelRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&models.Hotel{}, id).Error
}
