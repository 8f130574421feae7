package repository

import (
	"fundihub/internal/domain/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ReviewRepository interface {
	Create(db *gorm.DB, review *entity.Review) error
	FindAll(db *gorm.DB) ([]entity.Review, error)
	FindByReviewedID(db *gorm.DB, reviewedID uuid.UUID) ([]entity.Review, error)
	FindByBookingAndReviewer(db *gorm.DB, bookingID, reviewerID uuid.UUID) (*entity.Review, error)
	FindRecent(db *gorm.DB, limit int) ([]entity.Review, error)
	Delete(db *gorm.DB, id uuid.UUID) error
}
