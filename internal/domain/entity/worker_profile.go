package entity

import (
	"time"

	"github.com/google/uuid"
)

// SubscriptionStatus represents the state of a worker's platform subscription
type SubscriptionStatus string

const (
	SubscriptionStatusActive  SubscriptionStatus = "active"
	SubscriptionStatusExpired SubscriptionStatus = "expired"
)

// WorkerProfile represents worker-specific profile data.
// Workers need an active subscription before their services can go live.
type WorkerProfile struct {
	UserID                uuid.UUID          `gorm:"type:uuid;primaryKey" json:"user_id"`
	Profession            string             `gorm:"type:varchar(100);not null;index" json:"profession"`
	NationalID            string             `gorm:"type:varchar(50);uniqueIndex;not null" json:"national_id"`
	Experience            string             `gorm:"type:text" json:"experience,omitempty"`
	Address               string             `gorm:"type:text" json:"address,omitempty"`
	SubscriptionStatus    SubscriptionStatus `gorm:"type:varchar(20);not null;default:'active';index" json:"subscription_status"`
	SubscriptionExpiresAt *time.Time         `gorm:"index" json:"subscription_expires_at,omitempty"`
	CreatedAt             time.Time          `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt             time.Time          `gorm:"autoUpdateTime" json:"updated_at"`

	// Relationships
	User     User      `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Services []Service `gorm:"foreignKey:WorkerID;references:UserID" json:"services,omitempty"`
}

func (WorkerProfile) TableName() string {
	return "worker_profiles"
}

// HasActiveSubscription checks whether the worker can currently offer services
func (w *WorkerProfile) HasActiveSubscription() bool {
	return w.SubscriptionStatus == SubscriptionStatusActive
}

// SubscriptionLapsed checks whether the subscription expiry has passed
func (w *WorkerProfile) SubscriptionLapsed(now time.Time) bool {
	return w.SubscriptionExpiresAt != nil && now.After(*w.SubscriptionExpiresAt)
}
