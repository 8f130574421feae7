package repository

import (
	"fundihub/internal/domain/entity"

	"gorm.io/gorm"
)

type AdminActionRepository interface {
	Create(db *gorm.DB, action *entity.AdminAction) error
	FindAll(db *gorm.DB, limit int) ([]entity.AdminAction, error)
	Count(db *gorm.DB) (int64, error)
}
