package entity

import (
	"time"

	"github.com/google/uuid"
)

// Review represents a client's rating of a worker after a booking
type Review struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	BookingID  uuid.UUID `gorm:"type:uuid;not null;index" json:"booking_id"`
	ReviewerID uuid.UUID `gorm:"type:uuid;not null;index" json:"reviewer_id"`
	ReviewedID uuid.UUID `gorm:"type:uuid;not null;index" json:"reviewed_id"`
	Rating     int       `gorm:"not null" json:"rating"`
	Comment    string    `gorm:"type:text" json:"comment,omitempty"`
	CreatedAt  time.Time `gorm:"autoCreateTime;index" json:"created_at"`
	UpdatedAt  time.Time `gorm:"autoUpdateTime" json:"updated_at"`

	// Relationships
	Booking  Booking `gorm:"foreignKey:BookingID" json:"booking,omitempty"`
	Reviewer User    `gorm:"foreignKey:ReviewerID" json:"reviewer,omitempty"`
	Reviewed User    `gorm:"foreignKey:ReviewedID" json:"reviewed,omitempty"`
}

func (Review) TableName() string {
	return "reviews"
}
