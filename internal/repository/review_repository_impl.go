package repository

import (
	"errors"

	"fundihub/internal/domain/entity"
	domainRepo "fundihub/internal/domain/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type reviewRepository struct{}

func NewReviewRepository() domainRepo.ReviewRepository {
	return &reviewRepository{}
}

func (r *reviewRepository) Create(db *gorm.DB, review *entity.Review) error {
	return db.Create(review).Error
}

func (r *reviewRepository) FindAll(db *gorm.DB) ([]entity.Review, error) {
	var reviews []entity.Review
	err := db.Preload("Reviewer").Preload("Reviewed").
		Order("created_at DESC").
		Find(&reviews).Error
	if err != nil {
		return nil, err
	}
	return reviews, nil
}

func (r *reviewRepository) FindByReviewedID(db *gorm.DB, reviewedID uuid.UUID) ([]entity.Review, error) {
	var reviews []entity.Review
	err := db.Preload("Reviewer").
		Where("reviewed_id = ?", reviewedID).
		Order("created_at DESC").
		Find(&reviews).Error
	if err != nil {
		return nil, err
	}
	return reviews, nil
}

func (r *reviewRepository) FindByBookingAndReviewer(db *gorm.DB, bookingID, reviewerID uuid.UUID) (*entity.Review, error) {
	var review entity.Review
	err := db.Where("booking_id = ? AND reviewer_id = ?", bookingID, reviewerID).
		First(&review).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &review, nil
}

func (r *reviewRepository) FindRecent(db *gorm.DB, limit int) ([]entity.Review, error) {
	var reviews []entity.Review
	err := db.Preload("Reviewer").Preload("Reviewed").
		Order("created_at DESC").
		Limit(limit).
		Find(&reviews).Error
	if err != nil {
		return nil, err
	}
	return reviews, nil
}

func (r *reviewRepository) Delete(db *gorm.DB, id uuid.UUID) error {
	return db.Where("id = ?", id).Delete(&entity.Review{}).Error
}
