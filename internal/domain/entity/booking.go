package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// BookingStatus represents the lifecycle state of a booking
type BookingStatus string

const (
	BookingStatusPending   BookingStatus = "pending"
	BookingStatusConfirmed BookingStatus = "confirmed"
	BookingStatusOngoing   BookingStatus = "ongoing"
	BookingStatusCompleted BookingStatus = "completed"
	BookingStatusCancelled BookingStatus = "cancelled"
)

// Booking represents a client's reservation of a worker's service for a time window.
// WorkerID is copied from the service at creation time so later service edits
// do not rewrite history; it is only re-derived when a reschedule swaps the service.
type Booking struct {
	ID          uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	ServiceID   uuid.UUID       `gorm:"type:uuid;not null;index" json:"service_id"`
	ClientID    uuid.UUID       `gorm:"type:uuid;not null;index" json:"client_id"`
	WorkerID    uuid.UUID       `gorm:"type:uuid;not null;index" json:"worker_id"`
	StartTime   time.Time       `gorm:"not null;index" json:"start_time"`
	EndTime     time.Time       `gorm:"not null" json:"end_time"`
	Status      BookingStatus   `gorm:"type:varchar(20);not null;default:'pending';index" json:"status"`
	TotalAmount decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"total_amount"`
	Version     int64           `gorm:"not null;default:1" json:"version"`
	CreatedAt   time.Time       `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time       `gorm:"autoUpdateTime" json:"updated_at"`

	// Relationships
	Service Service `gorm:"foreignKey:ServiceID" json:"service,omitempty"`
	Client  User    `gorm:"foreignKey:ClientID" json:"client,omitempty"`
	Worker  User    `gorm:"foreignKey:WorkerID" json:"worker,omitempty"`
}

func (Booking) TableName() string {
	return "bookings"
}

// IsPending checks if booking is in pending status
func (b *Booking) IsPending() bool {
	return b.Status == BookingStatusPending
}

// IsTerminal checks if the booking reached a status with no further transitions
func (b *Booking) IsTerminal() bool {
	return b.Status == BookingStatusCompleted || b.Status == BookingStatusCancelled
}

// IsParty checks if the given user is the client or worker on this booking
func (b *Booking) IsParty(userID uuid.UUID) bool {
	return b.ClientID == userID || b.WorkerID == userID
}

// TimeDrivenStatus returns the status this booking should hold at the given
// instant, considering only clock-driven transitions. The second return value
// is false when no advancement is due. A confirmed booking whose window has
// already fully elapsed advances straight to completed so that repeating the
// evaluation with the same instant is a no-op.
func (b *Booking) TimeDrivenStatus(now time.Time) (BookingStatus, bool) {
	switch b.Status {
	case BookingStatusConfirmed:
		if !now.Before(b.EndTime) {
			return BookingStatusCompleted, true
		}
		if !now.Before(b.StartTime) {
			return BookingStatusOngoing, true
		}
	case BookingStatusOngoing:
		if !now.Before(b.EndTime) {
			return BookingStatusCompleted, true
		}
	}
	return b.Status, false
}
