package repository

import (
	"errors"
	"time"

	"fundihub/internal/domain/entity"
	domainRepo "fundihub/internal/domain/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type clientProfileRepository struct{}

func NewClientProfileRepository() domainRepo.ClientProfileRepository {
	return &clientProfileRepository{}
}

func (r *clientProfileRepository) Create(db *gorm.DB, profile *entity.ClientProfile) error {
	return db.Create(profile).Error
}

func (r *clientProfileRepository) FindByUserID(db *gorm.DB, userID uuid.UUID) (*entity.ClientProfile, error) {
	var profile entity.ClientProfile
	err := db.Preload("User").Where("user_id = ?", userID).First(&profile).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &profile, nil
}

func (r *clientProfileRepository) FindAll(db *gorm.DB) ([]entity.ClientProfile, error) {
	var profiles []entity.ClientProfile
	err := db.Preload("User").Order("created_at DESC").Find(&profiles).Error
	if err != nil {
		return nil, err
	}
	return profiles, nil
}

func (r *clientProfileRepository) Update(db *gorm.DB, profile *entity.ClientProfile) error {
	return db.Save(profile).Error
}

func (r *clientProfileRepository) Count(db *gorm.DB) (int64, error) {
	var count int64
	err := db.Model(&entity.ClientProfile{}).Count(&count).Error
	return count, err
}

type workerProfileRepository struct{}

func NewWorkerProfileRepository() domainRepo.WorkerProfileRepository {
	return &workerProfileRepository{}
}

func (r *workerProfileRepository) Create(db *gorm.DB, profile *entity.WorkerProfile) error {
	return db.Create(profile).Error
}

func (r *workerProfileRepository) FindByUserID(db *gorm.DB, userID uuid.UUID) (*entity.WorkerProfile, error) {
	var profile entity.WorkerProfile
	err := db.Preload("User").Where("user_id = ?", userID).First(&profile).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &profile, nil
}

func (r *workerProfileRepository) FindAll(db *gorm.DB) ([]entity.WorkerProfile, error) {
	var profiles []entity.WorkerProfile
	err := db.Preload("User").Order("created_at DESC").Find(&profiles).Error
	if err != nil {
		return nil, err
	}
	return profiles, nil
}

func (r *workerProfileRepository) Update(db *gorm.DB, profile *entity.WorkerProfile) error {
	return db.Save(profile).Error
}

// ExpireLapsedSubscriptions flips lapsed subscriptions in one conditional
// UPDATE so concurrent sweeps cannot double-apply.
func (r *workerProfileRepository) ExpireLapsedSubscriptions(db *gorm.DB, now time.Time) (int64, error) {
	result := db.Model(&entity.WorkerProfile{}).
		Where("subscription_status = ? AND subscription_expires_at IS NOT NULL AND subscription_expires_at < ?",
			entity.SubscriptionStatusActive, now).
		Update("subscription_status", entity.SubscriptionStatusExpired)
	return result.RowsAffected, result.Error
}

func (r *workerProfileRepository) CountBySubscriptionStatus(db *gorm.DB, status entity.SubscriptionStatus) (int64, error) {
	var count int64
	err := db.Model(&entity.WorkerProfile{}).
		Where("subscription_status = ?", status).
		Count(&count).Error
	return count, err
}
