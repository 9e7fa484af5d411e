package handler

import (
	"context"
	"io"
	"net/http/httptest"

	"github.com/Eursukkul/hotel-booking-service/internal/middleware"
	"github.com/Eursukkul/hotel-booking-service/internal/models"
	"github.com/Eursukkul/hotel-booking-service/internal/policy"
	"github.com/Eursukkul/hotel-booking-service/internal/service"
	"github.com/labstack/echo/v4"
)

// --- Mock BookingService ---

type mockBookingService struct {
	createFn func(ctx context.Context, actor *policy.Actor, in service.BookingInput) (*models.Booking, error)
	updateFn func(ctx context.Context, actor *policy.Actor, id uint, in service.BookingInput) (*models.Booking, error)
	cancelFn func(ctx context.Context, actor *policy.Actor, id uint) error
	getFn    func(ctx context.Context, actor *policy.Actor, id uint) (*models.Booking, error)
	listFn   func(ctx context.Context, actor *policy.Actor) ([]models.Booking, error)
}

func (m *mockBookingService) CreateBooking(ctx context.Context, actor *policy.Actor, in service.BookingInput) (*models.Booking, error) {
	return m.createFn(ctx, actor, in)
}
func (m *mockBookingService) UpdateBooking(ctx context.Context, actor *policy.Actor, id uint, in service.BookingInput) (*models.Booking, error) {
	return m.updateFn(ctx, actor, id, in)
}
func (m *mockBookingService) CancelBooking(ctx context.Context, actor *policy.Actor, id uint) error {
	return m.cancelFn(ctx, actor, id)
}
func (m *mockBookingService) GetBooking(ctx context.Context, actor *policy.Actor, id uint) (*models.Booking, error) {
	return m.getFn(ctx, actor, id)
}
func (m *mockBookingService) ListBookings(ctx context.Context, actor *policy.Actor) ([]models.Booking, error) {
	return m.listFn(ctx, actor)
}

// --- Mock HotelService ---

type mockHotelService struct {
	listFn    func(ctx context.Context) ([]models.Hotel, error)
	getFn     func(ctx context.Context, id uint) (*models.Hotel, error)
	managedFn func(ctx context.Context, actor *policy.Actor) (*models.Hotel, error)
	updateFn  func(ctx context.Context, actor *policy.Actor, id uint, in service.HotelInput, partial bool) (*models.Hotel, error)
}

func (m *mockHotelService) ListHotels(ctx context.Context) ([]models.Hotel, error) {
	return m.listFn(ctx)
}
func (m *mockHotelService) GetHotel(ctx context.Context, id uint) (*models.Hotel, error) {
	return m.getFn(ctx, id)
}
func (m *mockHotelService) GetManagedHotel(ctx context.Context, actor *policy.Actor) (*models.Hotel, error) {
	return m.managedFn(ctx, actor)
}
func (m *mockHotelService) UpdateHotel(ctx context.Context, actor *policy.Actor, id uint, in service.HotelInput, partial bool) (*models.Hotel, error) {
	return m.updateFn(ctx, actor, id, in, partial)
}

// --- Mock AvailabilityService ---

type mockAvailabilityService struct {
	searchFn func(ctx context.Context, q service.AvailabilityQuery) ([]models.Room, error)
}

func (m *mockAvailabilityService) SearchAvailableRooms(ctx context.Context, q service.AvailabilityQuery) ([]models.Room, error) {
	return m.searchFn(ctx, q)
}

// --- Mock RoomService ---

type mockRoomService struct {
	listFn   func(ctx context.Context) ([]models.Room, error)
	getFn    func(ctx context.Context, id uint) (*models.Room, error)
	createFn func(ctx context.Context, actor *policy.Actor, in service.RoomInput) (*models.Room, error)
	updateFn func(ctx context.Context, actor *policy.Actor, id uint, in service.RoomInput, partial bool) (*models.Room, error)
	deleteFn func(ctx context.Context, actor *policy.Actor, id uint) error
}

func (m *mockRoomService) ListRooms(ctx context.Context) ([]models.Room, error) {
	return m.listFn(ctx)
}
func (m *mockRoomService) GetRoom(ctx context.Context, id uint) (*models.Room, error) {
	return m.getFn(ctx, id)
}
func (m *mockRoomService) CreateRoom(ctx context.Context, actor *policy.Actor, in service.RoomInput) (*models.Room, error) {
	return m.createFn(ctx, actor, in)
}
func (m *mockRoomService) UpdateRoom(ctx context.Context, actor *policy.Actor, id uint, in service.RoomInput, partial bool) (*models.Room, error) {
	return m.updateFn(ctx, actor, id, in, partial)
}
func (m *mockRoomService) DeleteRoom(ctx context.Context, actor *policy.Actor, id uint) error {
	return m.deleteFn(ctx, actor, id)
}

// --- Mock AuthService ---

type mockAuthService struct {
	registerFn func(ctx context.Context, in service.RegisterInput) (*models.User, error)
	loginFn    func(ctx context.Context, username, password string) (*service.TokenPair, error)
	refreshFn  func(ctx context.Context, refresh string) (string, error)
}

func (m *mockAuthService) Register(ctx context.Context, in service.RegisterInput) (*models.User, error) {
	return m.registerFn(ctx, in)
}
func (m *mockAuthService) Login(ctx context.Context, username, password string) (*service.TokenPair, error) {
	return m.loginFn(ctx, username, password)
}
func (m *mockAuthService) Refresh(ctx context.Context, refresh string) (string, error) {
	return m.refreshFn(ctx, refresh)
}

// --- helpers ---

// newContext builds a JSON request context, optionally authenticated as actor.
func newContext(method, target string, body io.Reader, actor *policy.Actor) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	e.Validator = NewRequestValidator()
	req := httptest.NewRequest(method, target, body)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if actor != nil {
		middleware.WithActor(c, actor)
	}
	return c, rec
}
