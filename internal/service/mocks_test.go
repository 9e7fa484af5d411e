package service

import (
	"context"
	"sync"

	"github.com/Eursukkul/hotel-booking-service/internal/models"
	"github.com/Eursukkul/hotel-booking-service/pkg/jwtutil"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

var testLogger = zap.NewNop()

// --- Mock BookingRepository ---

type mockBookingRepo struct {
	createFn           func(ctx context.Context, tx *gorm.DB, b *models.Booking) error
	saveFn             func(ctx context.Context, tx *gorm.DB, b *models.Booking) error
	deleteFn           func(ctx context.Context, tx *gorm.DB, id uint) error
	findByIDForUserFn  func(ctx context.Context, id, userID uint) (*models.Booking, error)
	findByUserFn       func(ctx context.Context, userID uint) ([]models.Booking, error)
	overlappingIDsFn   func(ctx context.Context, stay models.Stay) ([]uint, error)
	countByRoomFn      func(ctx context.Context, stay models.Stay) (map[uint]int64, error)
	countOverlappingFn func(ctx context.Context, tx *gorm.DB, roomID uint, stay models.Stay, excludeID uint) (int64, error)
}

func (m *mockBookingRepo) Create(ctx context.Context, tx *gorm.DB, b *models.Booking) error {
	if m.createFn != nil {
		return m.createFn(ctx, tx, b)
	}
	b.ID = 1
	return nil
}
func (m *mockBookingRepo) Save(ctx context.Context, tx *gorm.DB, b *models.Booking) error {
	if m.saveFn != nil {
		return m.saveFn(ctx, tx, b)
	}
	return nil
}
func (m *mockBookingRepo) Delete(ctx context.Context, tx *gorm.DB, id uint) error {
	if m.deleteFn != nil {
		return m.deleteFn(ctx, tx, id)
	}
	return nil
}
func (m *mockBookingRepo) FindByIDForUser(ctx context.Context, id, userID uint) (*models.Booking, error) {
	return m.findByIDForUserFn(ctx, id, userID)
}
func (m *mockBookingRepo) FindByUser(ctx context.Context, userID uint) ([]models.Booking, error) {
	return m.findByUserFn(ctx, userID)
}
func (m *mockBookingRepo) FindOverlappingRoomIDs(ctx context.Context, stay models.Stay) ([]uint, error) {
	return m.overlappingIDsFn(ctx, stay)
}
func (m *mockBookingRepo) CountOverlappingByRoom(ctx context.Context, stay models.Stay) (map[uint]int64, error) {
	return m.countByRoomFn(ctx, stay)
}
func (m *mockBookingRepo) CountOverlapping(ctx context.Context, tx *gorm.DB, roomID uint, stay models.Stay, excludeID uint) (int64, error) {
	if m.countOverlappingFn != nil {
		return m.countOverlappingFn(ctx, tx, roomID, stay, excludeID)
	}
	return 0, nil
}
func (m *mockBookingRepo) GetDB() *gorm.DB { return nil }

// --- Mock RoomRepository ---

type mockRoomRepo struct {
	findAllFn       func(ctx context.Context) ([]models.Room, error)
	findByIDFn      func(ctx context.Context, id uint) (*models.Room, error)
	findForUpdateFn func(ctx context.Context, tx *gorm.DB, id uint) (*models.Room, error)
	findByHotelsFn  func(ctx context.Context, hotelIDs, excludeIDs []uint) ([]models.Room, error)
	createFn        func(ctx context.Context, room *models.Room) error
	saveFn          func(ctx context.Context, room *models.Room) error
	deleteFn        func(ctx context.Context, id uint) error
}

func (m *mockRoomRepo) FindAll(ctx context.Context) ([]models.Room, error) {
	return m.findAllFn(ctx)
}
func (m *mockRoomRepo) FindByID(ctx context.Context, id uint) (*models.Room, error) {
	return m.findByIDFn(ctx, id)
}
func (m *mockRoomRepo) FindByIDForUpdate(ctx context.Context, tx *gorm.DB, id uint) (*models.Room, error) {
	return m.findForUpdateFn(ctx, tx, id)
}
func (m *mockRoomRepo) FindByHotelIDs(ctx context.Context, hotelIDs, excludeIDs []uint) ([]models.Room, error) {
	return m.findByHotelsFn(ctx, hotelIDs, excludeIDs)
}
func (m *mockRoomRepo) Create(ctx context.Context, room *models.Room) error {
	if m.createFn != nil {
		return m.createFn(ctx, room)
	}
	room.ID = 1
	return nil
}
func (m *mockRoomRepo) Save(ctx context.Context, room *models.Room) error {
	if m.saveFn != nil {
		return m.saveFn(ctx, room)
	}
	return nil
}
func (m *mockRoomRepo) Delete(ctx context.Context, id uint) error {
	if m.deleteFn != nil {
		return m.deleteFn(ctx, id)
	}
	return nil
}

// --- Mock HotelRepository ---

type mockHotelRepo struct {
	findAllFn       func(ctx context.Context) ([]models.Hotel, error)
	findByIDFn      func(ctx context.Context, id uint) (*models.Hotel, error)
	findByManagerFn func(ctx context.Context, userID uint) (*models.Hotel, error)
	findIDsByCityFn func(ctx context.Context, city string) ([]uint, error)
	saveFn          func(ctx context.Context, hotel *models.Hotel) error
}

func (m *mockHotelRepo) FindAll(ctx context.Context) ([]models.Hotel, error) {
	return m.findAllFn(ctx)
}
func (m *mockHotelRepo) FindByID(ctx context.Context, id uint) (*models.Hotel, error) {
	return m.findByIDFn(ctx, id)
}
func (m *mockHotelRepo) FindByManager(ctx context.Context, userID uint) (*models.Hotel, error) {
	return m.findByManagerFn(ctx, userID)
}
func (m *mockHotelRepo) FindIDsByCity(ctx context.Context, city string) ([]uint, error) {
	return m.findIDsByCityFn(ctx, city)
}
func (m *mockHotelRepo) Save(ctx context.Context, hotel *models.Hotel) error {
	if m.saveFn != nil {
		return m.saveFn(ctx, hotel)
	}
	return nil
}
func (m *mockHotelRepo) Upsert(ctx context.Context, hotel *models.Hotel) error { return nil }
func (m *mockHotelRepo) Delete(ctx context.Context, id uint) error             { return nil }

// --- Mock UserRepository ---

type mockUserRepo struct {
	createFn         func(ctx context.Context, user *models.User) error
	findByUsernameFn func(ctx context.Context, username string) (*models.User, error)
	existsFn         func(ctx context.Context, username string) (bool, error)
}

func (m *mockUserRepo) Create(ctx context.Context, user *models.User) error {
	if m.createFn != nil {
		return m.createFn(ctx, user)
	}
	user.ID = 1
	return nil
}
func (m *mockUserRepo) FindByUsername(ctx context.Context, username string) (*models.User, error) {
	return m.findByUsernameFn(ctx, username)
}
func (m *mockUserRepo) ExistsByUsername(ctx context.Context, username string) (bool, error) {
	if m.existsFn != nil {
		return m.existsFn(ctx, username)
	}
	return false, nil
}

// --- Mock EventPublisher ---

type publishedEvent struct {
	routingKey string
	payload    any
}

type mockPublisher struct {
	mu     sync.Mutex
	events []publishedEvent
	err    error
}

func (m *mockPublisher) Publish(ctx context.Context, routingKey string, payload any) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.events = append(m.events, publishedEvent{routingKey: routingKey, payload: payload})
	return m.err
}

// --- Mock TokenIssuer ---

type mockTokens struct {
	validateFn func(tokenString, expectedType string) (*jwtutil.UserClaims, error)
}

func (m *mockTokens) GenerateAccess(userID uint, username string) (string, error) {
	return "access-" + username, nil
}
func (m *mockTokens) GenerateRefresh(userID uint, username string) (string, error) {
	return "refresh-" + username, nil
}
func (m *mockTokens) Validate(tokenString, expectedType string) (*jwtutil.UserClaims, error) {
	return m.validateFn(tokenString, expectedType)
}

// noTransaction runs fn directly with a nil transaction handle.
func noTransaction(ctx context.Context, fn func(tx *gorm.DB) error) error {
	return fn(nil)
}
