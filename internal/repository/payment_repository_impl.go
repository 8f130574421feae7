package repository

import (
	"errors"

	"fundihub/internal/domain/entity"
	domainRepo "fundihub/internal/domain/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type paymentRepository struct{}

func NewPaymentRepository() domainRepo.PaymentRepository {
	return &paymentRepository{}
}

func (r *paymentRepository) Create(db *gorm.DB, payment *entity.Payment) error {
	return db.Create(payment).Error
}

func (r *paymentRepository) FindByID(db *gorm.DB, id uuid.UUID) (*entity.Payment, error) {
	var payment entity.Payment
	err := db.Preload("Booking").Where("id = ?", id).First(&payment).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &payment, nil
}

func (r *paymentRepository) FindByCheckoutRequestID(db *gorm.DB, checkoutRequestID string) (*entity.Payment, error) {
	var payment entity.Payment
	err := db.Where("checkout_request_id = ?", checkoutRequestID).First(&payment).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &payment, nil
}

func (r *paymentRepository) FindByUserID(db *gorm.DB, userID uuid.UUID) ([]entity.Payment, error) {
	var payments []entity.Payment
	err := db.Preload("Booking").
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&payments).Error
	if err != nil {
		return nil, err
	}
	return payments, nil
}

func (r *paymentRepository) FindAll(db *gorm.DB) ([]entity.Payment, error) {
	var payments []entity.Payment
	err := db.Preload("Booking").Preload("User").
		Order("created_at DESC").
		Find(&payments).Error
	if err != nil {
		return nil, err
	}
	return payments, nil
}

func (r *paymentRepository) Update(db *gorm.DB, payment *entity.Payment) error {
	return db.Save(payment).Error
}

func (r *paymentRepository) CountByStatus(db *gorm.DB, status entity.PaymentStatus) (int64, error) {
	var count int64
	err := db.Model(&entity.Payment{}).Where("status = ?", status).Count(&count).Error
	return count, err
}
