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
	ErrServiceNotOwned       = errors.New("service does not belong to this worker")
	ErrSubscriptionInactive  = errors.New("worker subscription is not active")
	ErrServiceHasBookings    = errors.New("service has bookings and cannot be deleted")
	ErrWorkerProfileNotFound = errors.New("worker profile not found")
)

type ServiceUsecase interface {
	CreateService(ctx context.Context, workerID uuid.UUID, req *dto.CreateServiceRequest) (*dto.ServiceResponse, error)
	GetService(ctx context.Context, id uuid.UUID) (*dto.ServiceResponse, error)
	ListServices(ctx context.Context, category string, status entity.ServiceStatus) (*dto.ServiceListResponse, error)
	ListWorkerServices(ctx context.Context, workerID uuid.UUID) (*dto.ServiceListResponse, error)
	UpdateService(ctx context.Context, actor Actor, id uuid.UUID, req *dto.UpdateServiceRequest) (*dto.ServiceResponse, error)
	DeleteService(ctx context.Context, actor Actor, id uuid.UUID) error
}

type serviceUsecase struct {
	db                *gorm.DB
	log               *logrus.Logger
	serviceRepo       repository.ServiceRepository
	bookingRepo       repository.BookingRepository
	workerProfileRepo repository.WorkerProfileRepository
}

func NewServiceUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	serviceRepo repository.ServiceRepository,
	bookingRepo repository.BookingRepository,
	workerProfileRepo repository.WorkerProfileRepository,
) ServiceUsecase {
	return &serviceUsecase{
		db:                db,
		log:               log,
		serviceRepo:       serviceRepo,
		bookingRepo:       bookingRepo,
		workerProfileRepo: workerProfileRepo,
	}
}

func (u *serviceUsecase) CreateService(ctx context.Context, workerID uuid.UUID, req *dto.CreateServiceRequest) (*dto.ServiceResponse, error) {
	db := u.db.WithContext(ctx)

	service := &entity.Service{
		WorkerID:        workerID,
		Title:           req.Title,
		Description:     req.Description,
		Category:        req.Category,
		Price:           req.Price,
		DurationMinutes: req.DurationMinutes,
		Status:          entity.ServiceStatusDraft,
	}

	if err := u.serviceRepo.Create(db, service); err != nil {
		u.log.Warnf("Failed to create service: %+v", err)
		return nil, err
	}

	return converter.ServiceToResponse(service), nil
}

func (u *serviceUsecase) GetService(ctx context.Context, id uuid.UUID) (*dto.ServiceResponse, error) {
	service, err := u.serviceRepo.FindByID(u.db.WithContext(ctx), id)
	if err != nil {
		u.log.Warnf("Failed to find service: %+v", err)
		return nil, err
	}
	if service == nil {
		return nil, ErrServiceNotFound
	}
	return converter.ServiceToResponse(service), nil
}

func (u *serviceUsecase) ListServices(ctx context.Context, category string, status entity.ServiceStatus) (*dto.ServiceListResponse, error) {
	services, err := u.serviceRepo.FindAll(u.db.WithContext(ctx), category, status)
	if err != nil {
		u.log.Warnf("Failed to list services: %+v", err)
		return nil, err
	}
	return &dto.ServiceListResponse{
		Services: converter.ServicesToResponses(services),
		Total:    len(services),
	}, nil
}

func (u *serviceUsecase) ListWorkerServices(ctx context.Context, workerID uuid.UUID) (*dto.ServiceListResponse, error) {
	services, err := u.serviceRepo.FindByWorkerID(u.db.WithContext(ctx), workerID)
	if err != nil {
		u.log.Warnf("Failed to list worker services: %+v", err)
		return nil, err
	}
	return &dto.ServiceListResponse{
		Services: converter.ServicesToResponses(services),
		Total:    len(services),
	}, nil
}

func (u *serviceUsecase) UpdateService(ctx context.Context, actor Actor, id uuid.UUID, req *dto.UpdateServiceRequest) (*dto.ServiceResponse, error) {
	db := u.db.WithContext(ctx)

	service, err := u.serviceRepo.FindByID(db, id)
	if err != nil {
		u.log.Warnf("Failed to find service: %+v", err)
		return nil, err
	}
	if service == nil {
		return nil, ErrServiceNotFound
	}
	if actor.Role != entity.RoleAdmin && service.WorkerID != actor.ID {
		return nil, ErrServiceNotOwned
	}

	if req.Title != nil {
		service.Title = *req.Title
	}
	if req.Description != nil {
		service.Description = *req.Description
	}
	if req.Category != nil {
		service.Category = *req.Category
	}
	if req.Price != nil {
		service.Price = *req.Price
	}
	if req.DurationMinutes != nil {
		service.DurationMinutes = *req.DurationMinutes
	}
	if req.Status != nil {
		next := entity.ServiceStatus(*req.Status)
		// Going live requires an active subscription; admins can flip
		// status without one
		if next == entity.ServiceStatusActive && actor.Role != entity.RoleAdmin {
			if err := u.requireActiveSubscription(db, service.WorkerID); err != nil {
				return nil, err
			}
		}
		service.Status = next
	}

	if err := u.serviceRepo.Update(db, service); err != nil {
		u.log.Warnf("Failed to update service: %+v", err)
		return nil, err
	}

	return converter.ServiceToResponse(service), nil
}

func (u *serviceUsecase) DeleteService(ctx context.Context, actor Actor, id uuid.UUID) error {
	db := u.db.WithContext(ctx)

	service, err := u.serviceRepo.FindByID(db, id)
	if err != nil {
		u.log.Warnf("Failed to find service: %+v", err)
		return err
	}
	if service == nil {
		return ErrServiceNotFound
	}
	if actor.Role != entity.RoleAdmin && service.WorkerID != actor.ID {
		return ErrServiceNotOwned
	}

	bookings, err := u.bookingRepo.FindByServiceID(db, id)
	if err != nil {
		u.log.Warnf("Failed to check service bookings: %+v", err)
		return err
	}
	if len(bookings) > 0 {
		return ErrServiceHasBookings
	}

	if err := u.serviceRepo.Delete(db, id); err != nil {
		u.log.Warnf("Failed to delete service: %+v", err)
		return err
	}
	return nil
}

func (u *serviceUsecase) requireActiveSubscription(db *gorm.DB, workerID uuid.UUID) error {
	profile, err := u.workerProfileRepo.FindByUserID(db, workerID)
	if err != nil {
		u.log.Warnf("Failed to find worker profile: %+v", err)
		return err
	}
	if profile == nil {
		return ErrWorkerProfileNotFound
	}
	if !profile.HasActiveSubscription() {
		return ErrSubscriptionInactive
	}
	return nil
}
