// Package policy decides whether an actor may perform a capability on a
// resource. Handlers and services call exactly one Authorize function per
// operation, after loading the resource and before touching it.
package policy

import (
	"errors"

	"github.com/Eursukkul/hotel-booking-service/internal/models"
)

var (
	ErrUnauthorized = errors.New("authentication credentials were not provided")
	ErrForbidden    = errors.New("you do not have permission to perform this action")
)

type Capability string

const (
	Read  Capability = "read"
	Write Capability = "write"
)

// Actor is the authenticated user behind a request. A nil *Actor is anonymous.
type Actor struct {
	UserID   uint
	Username string
}

func (a *Actor) Authenticated() bool {
	return a != nil && a.UserID != 0
}

// AuthorizeHotel lets anyone read. Writing requires the hotel's manager.
func AuthorizeHotel(actor *Actor, hotel *models.Hotel, capability Capability) error {
	if capability == Read {
		return nil
	}
	if !actor.Authenticated() {
		return ErrUnauthorized
	}
	if hotel == nil || !hotel.IsManagedBy(actor.UserID) {
		return ErrForbidden
	}
	return nil
}

// AuthorizeRoom applies the hotel rule to the room's owning hotel, which
// must be loaded for writes.
func AuthorizeRoom(actor *Actor, room *models.Room, capability Capability) error {
	if capability == Read {
		return nil
	}
	if room == nil {
		return AuthorizeHotel(actor, nil, capability)
	}
	return AuthorizeHotel(actor, room.Hotel, capability)
}

// AuthorizeBooking requires authentication for every capability and
// ownership once a concrete booking is given. A nil booking checks the
// collection (list, create).
func AuthorizeBooking(actor *Actor, booking *models.Booking, _ Capability) error {
	if !actor.Authenticated() {
		return ErrUnauthorized
	}
	if booking != nil && booking.UserID != actor.UserID {
		return ErrForbidden
	}
	return nil
}

// AuthorizeAuthenticated is the rule for endpoints that only need a logged
// in user.
func AuthorizeAuthenticated(actor *Actor) error {
	if !actor.Authenticated() {
		return ErrUnauthorized
	}
	return nil
}
