package usecase

import (
	"context"
	"errors"
	"time"

	"fundihub/internal/converter"
	"fundihub/internal/delivery/dto"
	"fundihub/internal/domain/entity"
	"fundihub/internal/domain/repository"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

var ErrExpiryInPast = errors.New("subscription expiry must be in the future")

type WorkerUsecase interface {
	GetProfile(ctx context.Context, userID uuid.UUID) (*dto.WorkerProfileResponse, error)
	UpdateProfile(ctx context.Context, userID uuid.UUID, req *dto.UpdateWorkerProfileRequest) (*dto.WorkerProfileResponse, error)
	ListWorkers(ctx context.Context) (*dto.WorkerProfileListResponse, error)
	RenewSubscription(ctx context.Context, userID uuid.UUID, req *dto.RenewSubscriptionRequest) (*dto.WorkerProfileResponse, error)

	// ExpireLapsedSubscriptions is invoked by the scheduler to flip lapsed
	// subscriptions to expired in bulk.
	ExpireLapsedSubscriptions(ctx context.Context, now time.Time) (int64, error)
}

type workerUsecase struct {
	db                *gorm.DB
	log               *logrus.Logger
	userRepo          repository.UserRepository
	workerProfileRepo repository.WorkerProfileRepository
}

func NewWorkerUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	userRepo repository.UserRepository,
	workerProfileRepo repository.WorkerProfileRepository,
) WorkerUsecase {
	return &workerUsecase{
		db:                db,
		log:               log,
		userRepo:          userRepo,
		workerProfileRepo: workerProfileRepo,
	}
}

func (u *workerUsecase) GetProfile(ctx context.Context, userID uuid.UUID) (*dto.WorkerProfileResponse, error) {
	profile, err := u.workerProfileRepo.FindByUserID(u.db.WithContext(ctx), userID)
	if err != nil {
		u.log.Warnf("Failed to find worker profile: %+v", err)
		return nil, err
	}
	if profile == nil {
		return nil, ErrWorkerProfileNotFound
	}
	return converter.WorkerProfileToResponse(profile), nil
}

func (u *workerUsecase) UpdateProfile(ctx context.Context, userID uuid.UUID, req *dto.UpdateWorkerProfileRequest) (*dto.WorkerProfileResponse, error) {
	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	profile, err := u.workerProfileRepo.FindByUserID(tx, userID)
	if err != nil {
		u.log.Warnf("Failed to find worker profile: %+v", err)
		return nil, err
	}
	if profile == nil {
		return nil, ErrWorkerProfileNotFound
	}

	if req.FullName != nil || req.Phone != nil {
		user, err := u.userRepo.FindByID(tx, userID)
		if err != nil {
			u.log.Warnf("Failed to find user: %+v", err)
			return nil, err
		}
		if user == nil {
			return nil, ErrUserNotFound
		}
		if req.FullName != nil {
			user.FullName = *req.FullName
		}
		if req.Phone != nil {
			user.Phone = *req.Phone
		}
		if err := u.userRepo.Update(tx, user); err != nil {
			u.log.Warnf("Failed to update user: %+v", err)
			return nil, err
		}
		profile.User = *user
	}

	if req.Profession != nil {
		profile.Profession = *req.Profession
	}
	if req.Experience != nil {
		profile.Experience = *req.Experience
	}
	if req.Address != nil {
		profile.Address = *req.Address
	}
	if err := u.workerProfileRepo.Update(tx, profile); err != nil {
		u.log.Warnf("Failed to update worker profile: %+v", err)
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	return converter.WorkerProfileToResponse(profile), nil
}

func (u *workerUsecase) ListWorkers(ctx context.Context) (*dto.WorkerProfileListResponse, error) {
	profiles, err := u.workerProfileRepo.FindAll(u.db.WithContext(ctx))
	if err != nil {
		u.log.Warnf("Failed to list worker profiles: %+v", err)
		return nil, err
	}
	return &dto.WorkerProfileListResponse{
		Workers: converter.WorkerProfilesToResponses(profiles),
		Total:   len(profiles),
	}, nil
}

func (u *workerUsecase) RenewSubscription(ctx context.Context, userID uuid.UUID, req *dto.RenewSubscriptionRequest) (*dto.WorkerProfileResponse, error) {
	if !req.ExpiresAt.After(time.Now()) {
		return nil, ErrExpiryInPast
	}

	db := u.db.WithContext(ctx)

	profile, err := u.workerProfileRepo.FindByUserID(db, userID)
	if err != nil {
		u.log.Warnf("Failed to find worker profile: %+v", err)
		return nil, err
	}
	if profile == nil {
		return nil, ErrWorkerProfileNotFound
	}

	expiresAt := req.ExpiresAt
	profile.SubscriptionStatus = entity.SubscriptionStatusActive
	profile.SubscriptionExpiresAt = &expiresAt

	if err := u.workerProfileRepo.Update(db, profile); err != nil {
		u.log.Warnf("Failed to renew subscription: %+v", err)
		return nil, err
	}

	return converter.WorkerProfileToResponse(profile), nil
}

func (u *workerUsecase) ExpireLapsedSubscriptions(ctx context.Context, now time.Time) (int64, error) {
	expired, err := u.workerProfileRepo.ExpireLapsedSubscriptions(u.db.WithContext(ctx), now)
	if err != nil {
		u.log.Warnf("Failed to expire lapsed subscriptions: %+v", err)
		return 0, err
	}
	if expired > 0 {
		u.log.Infof("Expired %d lapsed worker subscriptions", expired)
	}
	return expired, nil
}
