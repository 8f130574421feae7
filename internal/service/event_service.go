package service

import (
	"context"
	"time"

	"fundihub/internal/domain/entity"
	"fundihub/internal/infrastructure/mq"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// Routing keys for booking lifecycle events
const (
	EventBookingCreated       = "booking.created"
	EventBookingStatusChanged = "booking.status_changed"
)

// BookingEventPayload is the wire shape published for booking events
type BookingEventPayload struct {
	BookingID  uuid.UUID `json:"booking_id"`
	ServiceID  uuid.UUID `json:"service_id"`
	ClientID   uuid.UUID `json:"client_id"`
	WorkerID   uuid.UUID `json:"worker_id"`
	FromStatus string    `json:"from_status,omitempty"`
	ToStatus   string    `json:"to_status"`
	OccurredAt time.Time `json:"occurred_at"`
}

// BookingEvents publishes booking lifecycle notifications. Publishing is
// best-effort: a broker outage must never fail the booking mutation itself.
type BookingEvents interface {
	BookingCreated(ctx context.Context, booking *entity.Booking)
	BookingStatusChanged(ctx context.Context, booking *entity.Booking, from, to entity.BookingStatus)
}

type bookingEvents struct {
	publisher *mq.Publisher
	log       *logrus.Logger
}

func NewBookingEvents(publisher *mq.Publisher, log *logrus.Logger) BookingEvents {
	return &bookingEvents{
		publisher: publisher,
		log:       log,
	}
}

func (e *bookingEvents) BookingCreated(ctx context.Context, booking *entity.Booking) {
	e.publish(ctx, EventBookingCreated, &BookingEventPayload{
		BookingID:  booking.ID,
		ServiceID:  booking.ServiceID,
		ClientID:   booking.ClientID,
		WorkerID:   booking.WorkerID,
		ToStatus:   string(booking.Status),
		OccurredAt: time.Now().UTC(),
	})
}

func (e *bookingEvents) BookingStatusChanged(ctx context.Context, booking *entity.Booking, from, to entity.BookingStatus) {
	e.publish(ctx, EventBookingStatusChanged, &BookingEventPayload{
		BookingID:  booking.ID,
		ServiceID:  booking.ServiceID,
		ClientID:   booking.ClientID,
		WorkerID:   booking.WorkerID,
		FromStatus: string(from),
		ToStatus:   string(to),
		OccurredAt: time.Now().UTC(),
	})
}

func (e *bookingEvents) publish(ctx context.Context, key string, payload *BookingEventPayload) {
	if e.publisher == nil {
		return
	}
	if err := e.publisher.PublishJSON(ctx, key, payload); err != nil {
		e.log.Warnf("Failed to publish %s event for booking %s (non-fatal): %+v", key, payload.BookingID, err)
	}
}

// NoopBookingEvents is used when no broker is configured
type NoopBookingEvents struct{}

func (NoopBookingEvents) BookingCreated(ctx context.Context, booking *entity.Booking) {}
func (NoopBookingEvents) BookingStatusChanged(ctx context.Context, booking *entity.Booking, from, to entity.BookingStatus) {
}
