package repository

import (
	"fundihub/internal/domain/entity"
	domainRepo "fundihub/internal/domain/repository"

	"gorm.io/gorm"
)

type adminActionRepository struct{}

func NewAdminActionRepository() domainRepo.AdminActionRepository {
	return &adminActionRepository{}
}

func (r *adminActionRepository) Create(db *gorm.DB, action *entity.AdminAction) error {
	return db.Create(action).Error
}

func (r *adminActionRepository) FindAll(db *gorm.DB, limit int) ([]entity.AdminAction, error) {
	var actions []entity.AdminAction
	query := db.Preload("Admin").Order("created_at DESC")
	if limit > 0 {
		query = query.Limit(limit)
	}
	err := query.Find(&actions).Error
	if err != nil {
		return nil, err
	}
	return actions, nil
}

func (r *adminActionRepository) Count(db *gorm.DB) (int64, error) {
	var count int64
	err := db.Model(&entity.AdminAction{}).Count(&count).Error
	return count, err
}
