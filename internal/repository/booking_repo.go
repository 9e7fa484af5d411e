package repository

import (
	"context"

	"github.com/Eursukkul/hotel-booking-service/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type BookingRepository interface {
	Create(ctx context.Context, tx *gorm.DB, booking *models.Booking) error
	Save(ctx context.Context, tx *gorm.DB, booking *models.Booking) error
	Delete(ctx context.Context, tx *gorm.DB, id uint) error
	FindByIDForUser(ctx context.Context, id, userID uint) (*models.Booking, error)
	FindByUser(ctx context.Context, userID uint) ([]models.Booking, error)
	FindOverlappingRoomIDs(ctx context.Context, stay models.Stay) ([]uint, error)
	CountOverlappingByRoom(ctx context.Context, stay models.Stay) (map[uint]int64, error)
	CountOverlapping(ctx context.Context, tx *gorm.DB, roomID uint, stay models.Stay, excludeID uint) (int64, error)
	GetDB() *gorm.DB
}

type bookingRepository struct {
	db *gorm.DB
}

func NewBookingRepository(db *gorm.DB) BookingRepository {
	return &bookingRepository{db: db}
}

func (r *bookingRepository) GetDB() *gorm.DB {
	return r.db
}

func (r *bookingRepository) Create(ctx context.Context, tx *gorm.DB, booking *models.Booking) error {
	return tx.WithContext(ctx).Omit(clause.Associations).Create(booking).Error
}

// Save updates the mutable columns. booked_at and user_id are never written.
// It returns gorm.ErrRecordNotFound when the row is gone.
func (r *bookingRepository) Save(ctx context.Context, tx *gorm.DB, booking *models.Booking) error {
	result := tx.WithContext(ctx).
		Model(&models.Booking{ID: booking.ID}).
		Select("room_id", "check_in_date", "check_out_date", "num_guests", "total_price").
		Updates(booking)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *bookingRepository) Delete(ctx context.Context, tx *gorm.DB, id uint) error {
	return tx.WithContext(ctx).Delete(&models.Booking{}, id).Error
}

func (r *bookingRepository) FindByIDForUser(ctx context.Context, id, userID uint) (*models.Booking, error) {
	var booking models.Booking
	if err := r.db.WithContext(ctx).
		Preload("User").
		Where("user_id = ?", userID).
		First(&booking, id).Error; err != nil {
		return nil, err
	}
	return &booking, nil
}

// FindByUser lists a user's bookings, newest first.
func (r *bookingRepository) FindByUser(ctx context.Context, userID uint) ([]models.Booking, error) {
	var bookings []models.Booking
	if err := r.db.WithContext(ctx).
		Preload("User").
		Where("user_id = ?", userID).
		Order("booked_at DESC, id DESC").
		Find(&bookings).Error; err != nil {
		return nil, err
	}
	return bookings, nil
}

// overlapping restricts q to bookings sharing a night with stay.
func overlapping(q *gorm.DB, stay models.Stay) *gorm.DB {
	return q.Where("check_in_date < ? AND check_out_date > ?", stay.CheckOutString(), stay.CheckInString())
}

func (r *bookingRepository) FindOverlappingRoomIDs(ctx context.Context, stay models.Stay) ([]uint, error) {
	var ids []uint
	err := overlapping(r.db.WithContext(ctx).Model(&models.Booking{}), stay).
		Distinct().
		Pluck("room_id", &ids).Error
	return ids, err
}

func (r *bookingRepository) CountOverlappingByRoom(ctx context.Context, stay models.Stay) (map[uint]int64, error) {
	var rows []struct {
		RoomID uint
		Count  int64
	}
	err := overlapping(r.db.WithContext(ctx).Model(&models.Booking{}), stay).
		Select("room_id, COUNT(*) AS count").
		Group("room_id").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	counts := make(map[uint]int64, len(rows))
	for _, row := range rows {
		counts[row.RoomID] = row.Count
	}
	return counts, nil
}

// CountOverlapping counts bookings on roomID sharing a night with stay,
// ignoring excludeID (zero excludes nothing).
func (r *bookingRepository) CountOverlapping(ctx context.Context, tx *gorm.DB, roomID uint, stay models.Stay, excludeID uint) (int64, error) {
	var count int64
	q := overlapping(tx.WithContext(ctx).Model(&models.Booking{}).Where("room_id = ?", roomID), stay)
	if excludeID != 0 {
		q = q.Where("id <> ?", excludeID)
	}
	err := q.Count(&count).Error
	return count, err
}
