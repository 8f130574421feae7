package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ServiceStatus represents the publication state of a service
type ServiceStatus string

const (
	ServiceStatusDraft    ServiceStatus = "draft"
	ServiceStatusActive   ServiceStatus = "active"
	ServiceStatusInactive ServiceStatus = "inactive"
)

// Service represents an offering a worker can be booked for.
// Price is the total price for a nominal DurationMinutes of work.
type Service struct {
	ID              uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	WorkerID        uuid.UUID       `gorm:"type:uuid;not null;index" json:"worker_id"`
	Title           string          `gorm:"type:varchar(255);not null" json:"title"`
	Description     string          `gorm:"type:text" json:"description,omitempty"`
	Category        string          `gorm:"type:varchar(100);not null;index" json:"category"`
	Price           decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"price"`
	DurationMinutes int             `gorm:"not null" json:"duration_minutes"`
	Status          ServiceStatus   `gorm:"type:varchar(20);not null;default:'draft';index" json:"status"`
	CreatedAt       time.Time       `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt       time.Time       `gorm:"autoUpdateTime" json:"updated_at"`

	// Relationships
	Worker   User      `gorm:"foreignKey:WorkerID" json:"worker,omitempty"`
	Bookings []Booking `gorm:"foreignKey:ServiceID" json:"bookings,omitempty"`
}

func (Service) TableName() string {
	return "services"
}

// IsActive checks if the service can currently be booked
func (s *Service) IsActive() bool {
	return s.Status == ServiceStatusActive
}
