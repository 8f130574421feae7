package usecase

import (
	"context"
	"errors"

	"fundihub/internal/converter"
	"fundihub/internal/delivery/dto"
	"fundihub/internal/domain/repository"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

var ErrClientProfileNotFound = errors.New("client profile not found")

type ClientUsecase interface {
	GetProfile(ctx context.Context, userID uuid.UUID) (*dto.ClientProfileResponse, error)
	UpdateProfile(ctx context.Context, userID uuid.UUID, req *dto.UpdateClientProfileRequest) (*dto.ClientProfileResponse, error)
	ListClients(ctx context.Context) (*dto.ClientProfileListResponse, error)
}

type clientUsecase struct {
	db                *gorm.DB
	log               *logrus.Logger
	userRepo          repository.UserRepository
	clientProfileRepo repository.ClientProfileRepository
}

func NewClientUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	userRepo repository.UserRepository,
	clientProfileRepo repository.ClientProfileRepository,
) ClientUsecase {
	return &clientUsecase{
		db:                db,
		log:               log,
		userRepo:          userRepo,
		clientProfileRepo: clientProfileRepo,
	}
}

func (u *clientUsecase) GetProfile(ctx context.Context, userID uuid.UUID) (*dto.ClientProfileResponse, error) {
	profile, err := u.clientProfileRepo.FindByUserID(u.db.WithContext(ctx), userID)
	if err != nil {
		u.log.Warnf("Failed to find client profile: %+v", err)
		return nil, err
	}
	if profile == nil {
		return nil, ErrClientProfileNotFound
	}
	return converter.ClientProfileToResponse(profile), nil
}

func (u *clientUsecase) UpdateProfile(ctx context.Context, userID uuid.UUID, req *dto.UpdateClientProfileRequest) (*dto.ClientProfileResponse, error) {
	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	profile, err := u.clientProfileRepo.FindByUserID(tx, userID)
	if err != nil {
		u.log.Warnf("Failed to find client profile: %+v", err)
		return nil, err
	}
	if profile == nil {
		return nil, ErrClientProfileNotFound
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

	if req.Address != nil {
		profile.Address = *req.Address
	}
	if err := u.clientProfileRepo.Update(tx, profile); err != nil {
		u.log.Warnf("Failed to update client profile: %+v", err)
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	return converter.ClientProfileToResponse(profile), nil
}

func (u *clientUsecase) ListClients(ctx context.Context) (*dto.ClientProfileListResponse, error) {
	profiles, err := u.clientProfileRepo.FindAll(u.db.WithContext(ctx))
	if err != nil {
		u.log.Warnf("Failed to list client profiles: %+v", err)
		return nil, err
	}
	return &dto.ClientProfileListResponse{
		Clients: converter.ClientProfilesToResponses(profiles),
		Total:   len(profiles),
	}, nil
}
