package usecase

import (
	"context"
	"errors"

	"fundihub/internal/converter"
	"fundihub/internal/delivery/dto"
	"fundihub/internal/domain/entity"
	"fundihub/internal/domain/repository"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

var (
	ErrBookingNotCompleted = errors.New("booking is not completed")
	ErrNotBookingClient    = errors.New("only the booking client can leave a review")
	ErrAlreadyReviewed     = errors.New("booking has already been reviewed")
	ErrReviewNotFound      = errors.New("review not found")
)

type ReviewUsecase interface {
	CreateReview(ctx context.Context, reviewerID uuid.UUID, req *dto.CreateReviewRequest) (*dto.ReviewResponse, error)
	ListWorkerReviews(ctx context.Context, workerID uuid.UUID) (*dto.ReviewListResponse, error)
	ListReviews(ctx context.Context) (*dto.ReviewListResponse, error)
	DeleteReview(ctx context.Context, actor Actor, id uuid.UUID) error
}

type reviewUsecase struct {
	db          *gorm.DB
	log         *logrus.Logger
	reviewRepo  repository.ReviewRepository
	bookingRepo repository.BookingRepository
}

func NewReviewUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	reviewRepo repository.ReviewRepository,
	bookingRepo repository.BookingRepository,
) ReviewUsecase {
	return &reviewUsecase{
		db:          db,
		log:         log,
		reviewRepo:  reviewRepo,
		bookingRepo: bookingRepo,
	}
}

func (u *reviewUsecase) CreateReview(ctx context.Context, reviewerID uuid.UUID, req *dto.CreateReviewRequest) (*dto.ReviewResponse, error) {
	db := u.db.WithContext(ctx)

	booking, err := u.bookingRepo.FindByID(db, req.BookingID)
	if err != nil {
		u.log.Warnf("Failed to find booking: %+v", err)
		return nil, err
	}
	if booking == nil {
		return nil, ErrBookingNotFound
	}
	if booking.ClientID != reviewerID {
		return nil, ErrNotBookingClient
	}
	if booking.Status != entity.BookingStatusCompleted {
		return nil, ErrBookingNotCompleted
	}

	existing, err := u.reviewRepo.FindByBookingAndReviewer(db, req.BookingID, reviewerID)
	if err != nil {
		u.log.Warnf("Failed to check existing review: %+v", err)
		return nil, err
	}
	if existing != nil {
		return nil, ErrAlreadyReviewed
	}

	review := &entity.Review{
		BookingID:  req.BookingID,
		ReviewerID: reviewerID,
		ReviewedID: booking.WorkerID,
		Rating:     req.Rating,
		Comment:    req.Comment,
	}
	if err := u.reviewRepo.Create(db, review); err != nil {
		u.log.Warnf("Failed to create review: %+v", err)
		return nil, err
	}

	return converter.ReviewToResponse(review), nil
}

func (u *reviewUsecase) ListWorkerReviews(ctx context.Context, workerID uuid.UUID) (*dto.ReviewListResponse, error) {
	reviews, err := u.reviewRepo.FindByReviewedID(u.db.WithContext(ctx), workerID)
	if err != nil {
		u.log.Warnf("Failed to list worker reviews: %+v", err)
		return nil, err
	}
	return &dto.ReviewListResponse{
		Reviews: converter.ReviewsToResponses(reviews),
		Total:   len(reviews),
	}, nil
}

func (u *reviewUsecase) ListReviews(ctx context.Context) (*dto.ReviewListResponse, error) {
	reviews, err := u.reviewRepo.FindAll(u.db.WithContext(ctx))
	if err != nil {
		u.log.Warnf("Failed to list reviews: %+v", err)
		return nil, err
	}
	return &dto.ReviewListResponse{
		Reviews: converter.ReviewsToResponses(reviews),
		Total:   len(reviews),
	}, nil
}

func (u *reviewUsecase) DeleteReview(ctx context.Context, actor Actor, id uuid.UUID) error {
	if actor.Role != entity.RoleAdmin {
		return ErrAdminOnly
	}
	if err := u.reviewRepo.Delete(u.db.WithContext(ctx), id); err != nil {
		u.log.Warnf("Failed to delete review: %+v", err)
		return err
	}
	return nil
}
