package repository

import (
	"time"

	"fundihub/internal/domain/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ClientProfileRepository interface {
	Create(db *gorm.DB, profile *entity.ClientProfile) error
	FindByUserID(db *gorm.DB, userID uuid.UUID) (*entity.ClientProfile, error)
	FindAll(db *gorm.DB) ([]entity.ClientProfile, error)
	Update(db *gorm.DB, profile *entity.ClientProfile) error
	Count(db *gorm.DB) (int64, error)
}

type WorkerProfileRepository interface {
	Create(db *gorm.DB, profile *entity.WorkerProfile) error
	FindByUserID(db *gorm.DB, userID uuid.UUID) (*entity.WorkerProfile, error)
	FindAll(db *gorm.DB) ([]entity.WorkerProfile, error)
	Update(db *gorm.DB, profile *entity.WorkerProfile) error

	// ExpireLapsedSubscriptions flips every active subscription whose expiry
	// is before now to expired, returning the number of rows affected.
	ExpireLapsedSubscriptions(db *gorm.DB, now time.Time) (int64, error)

	CountBySubscriptionStatus(db *gorm.DB, status entity.SubscriptionStatus) (int64, error)
}
