package repository

import (
	"fundihub/internal/domain/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ServiceRepository interface {
	Create(db *gorm.DB, service *entity.Service) error
	FindByID(db *gorm.DB, id uuid.UUID) (*entity.Service, error)
	FindAll(db *gorm.DB, category string, status entity.ServiceStatus) ([]entity.Service, error)
	FindByWorkerID(db *gorm.DB, workerID uuid.UUID) ([]entity.Service, error)
	Update(db *gorm.DB, service *entity.Service) error
	Delete(db *gorm.DB, id uuid.UUID) error
	CountByStatus(db *gorm.DB, status entity.ServiceStatus) (int64, error)
}
