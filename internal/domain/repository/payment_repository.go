package repository

import (
	"fundihub/internal/domain/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type PaymentRepository interface {
	Create(db *gorm.DB, payment *entity.Payment) error
	FindByID(db *gorm.DB, id uuid.UUID) (*entity.Payment, error)
	FindByCheckoutRequestID(db *gorm.DB, checkoutRequestID string) (*entity.Payment, error)
	FindByUserID(db *gorm.DB, userID uuid.UUID) ([]entity.Payment, error)
	FindAll(db *gorm.DB) ([]entity.Payment, error)
	Update(db *gorm.DB, payment *entity.Payment) error
	CountByStatus(db *gorm.DB, status entity.PaymentStatus) (int64, error)
}
