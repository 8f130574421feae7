package entity

import (
	"time"

	"github.com/google/uuid"
)

// ClientProfile represents client-specific profile data
type ClientProfile struct {
	UserID    uuid.UUID `gorm:"type:uuid;primaryKey" json:"user_id"`
	Address   string    `gorm:"type:text;not null" json:"address"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`

	// Relationships
	User     User      `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Bookings []Booking `gorm:"foreignKey:ClientID;references:UserID" json:"bookings,omitempty"`
}

func (ClientProfile) TableName() string {
	return "client_profiles"
}
