package usecase

import (
	"errors"
	"time"

	"fundihub/internal/domain/entity"

	"github.com/google/uuid"
)

var (
	ErrOnlyClientsBook        = errors.New("only clients can create bookings")
	ErrSelfBooking            = errors.New("cannot book your own service")
	ErrNotBookingWorker       = errors.New("only the assigned worker can confirm this booking")
	ErrNotBookingParty        = errors.New("you are not a party to this booking")
	ErrClientFieldsRestricted = errors.New("clients can only change start and end time")
	ErrBookingNotPending      = errors.New("operation only valid while booking is pending")
	ErrBookingTerminal        = errors.New("booking has reached a terminal status")
)

// Actor is the authenticated identity attempting a mutation
type Actor struct {
	ID   uuid.UUID
	Role entity.Role
}

// BookingChange is the enumerated field set an actor proposes to apply.
// TotalAmount is deliberately absent: it is always derived through the rate
// engine, never supplied. Validating field membership here, before any
// persistence call, is what makes the reject atomic: either every proposed
// field is allowed or the whole change is refused.
type BookingChange struct {
	ServiceID *uuid.UUID
	StartTime *time.Time
	EndTime   *time.Time
	Status    *entity.BookingStatus
}

// Empty reports whether the change proposes nothing
func (c *BookingChange) Empty() bool {
	return c.ServiceID == nil && c.StartTime == nil && c.EndTime == nil && c.Status == nil
}

// timeWindowOnly reports whether only start/end time are proposed
func (c *BookingChange) timeWindowOnly() bool {
	return c.ServiceID == nil && c.Status == nil
}

// CanCreateBooking decides whether the actor may create a booking against the
// given service. Admins pass unconditionally; otherwise only clients may book,
// and never their own service. Service status and time-window validity are
// lifecycle guards, not authorization, and are checked by the caller.
func CanCreateBooking(actor Actor, service *entity.Service) error {
	if actor.Role == entity.RoleAdmin {
		return nil
	}
	if actor.Role != entity.RoleClient {
		return ErrOnlyClientsBook
	}
	if service.WorkerID == actor.ID {
		return ErrSelfBooking
	}
	return nil
}

// CanConfirmBooking decides whether the actor may transition the booking from
// pending to confirmed. Only the assigned worker (or an admin) qualifies.
func CanConfirmBooking(actor Actor, booking *entity.Booking) error {
	if actor.Role == entity.RoleAdmin {
		return nil
	}
	if actor.Role != entity.RoleWorker || booking.WorkerID != actor.ID {
		return ErrNotBookingWorker
	}
	return nil
}

// CanUpdateBooking decides whether the actor may apply the proposed change.
// Admins may change anything. The booking's client may adjust the time window
// of a pending booking; a proposal touching any other field is rejected as a
// whole. Nobody else may update.
func CanUpdateBooking(actor Actor, booking *entity.Booking, change *BookingChange) error {
	if actor.Role == entity.RoleAdmin {
		return nil
	}
	if actor.Role != entity.RoleClient || booking.ClientID != actor.ID {
		return ErrNotBookingParty
	}
	if !booking.IsPending() {
		return ErrBookingNotPending
	}
	if !change.timeWindowOnly() {
		return ErrClientFieldsRestricted
	}
	return nil
}

// CanCancelBooking decides whether the actor may cancel the booking. Parties
// to the booking may cancel only while it is pending; admins may cancel at
// any status (subject to the lifecycle's terminal-state guard).
func CanCancelBooking(actor Actor, booking *entity.Booking) error {
	if actor.Role == entity.RoleAdmin {
		return nil
	}
	if !booking.IsParty(actor.ID) {
		return ErrNotBookingParty
	}
	if !booking.IsPending() {
		return ErrBookingNotPending
	}
	return nil
}
