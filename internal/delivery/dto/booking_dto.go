package dto

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Request DTOs

type CreateBookingRequest struct {
	ServiceID uuid.UUID `json:"service_id" validate:"required"`
	StartTime time.Time `json:"start_time" validate:"required"`
	EndTime   time.Time `json:"end_time" validate:"required"`
}

// UpdateBookingRequest is the explicit change-set for booking mutations.
// Which fields an actor may set is decided by the booking policy; a request
// containing a field the actor may not touch is rejected as a whole.
type UpdateBookingRequest struct {
	ServiceID *uuid.UUID `json:"service_id,omitempty"`
	StartTime *time.Time `json:"start_time,omitempty"`
	EndTime   *time.Time `json:"end_time,omitempty"`
	Status    *string    `json:"status,omitempty" validate:"omitempty,oneof=pending confirmed ongoing completed cancelled"`
}

// Response DTOs

type BookingResponse struct {
	ID          uuid.UUID        `json:"id"`
	ServiceID   uuid.UUID        `json:"service_id"`
	ClientID    uuid.UUID        `json:"client_id"`
	WorkerID    uuid.UUID        `json:"worker_id"`
	StartTime   time.Time        `json:"start_time"`
	EndTime     time.Time        `json:"end_time"`
	Status      string           `json:"status"`
	TotalAmount decimal.Decimal  `json:"total_amount"`
	Service     *ServiceResponse `json:"service,omitempty"`
	CreatedAt   time.Time        `json:"created_at"`
	UpdatedAt   time.Time        `json:"updated_at"`
}

type BookingListResponse struct {
	Bookings []BookingResponse `json:"bookings"`
	Total    int               `json:"total"`
}
