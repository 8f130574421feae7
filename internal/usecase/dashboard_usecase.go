package usecase

import (
	"context"

	"fundihub/internal/converter"
	"fundihub/internal/delivery/dto"
	"fundihub/internal/domain/entity"
	"fundihub/internal/domain/repository"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

const recentItemsLimit = 5

type DashboardUsecase interface {
	GetDashboard(ctx context.Context) (*dto.DashboardResponse, error)
	ListAdminActions(ctx context.Context, limit int) (*dto.AdminActionListResponse, error)
}

type dashboardUsecase struct {
	db                *gorm.DB
	log               *logrus.Logger
	userRepo          repository.UserRepository
	clientProfileRepo repository.ClientProfileRepository
	workerProfileRepo repository.WorkerProfileRepository
	serviceRepo       repository.ServiceRepository
	bookingRepo       repository.BookingRepository
	paymentRepo       repository.PaymentRepository
	reviewRepo        repository.ReviewRepository
	adminActionRepo   repository.AdminActionRepository
}

func NewDashboardUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	userRepo repository.UserRepository,
	clientProfileRepo repository.ClientProfileRepository,
	workerProfileRepo repository.WorkerProfileRepository,
	serviceRepo repository.ServiceRepository,
	bookingRepo repository.BookingRepository,
	paymentRepo repository.PaymentRepository,
	reviewRepo repository.ReviewRepository,
	adminActionRepo repository.AdminActionRepository,
) DashboardUsecase {
	return &dashboardUsecase{
		db:                db,
		log:               log,
		userRepo:          userRepo,
		clientProfileRepo: clientProfileRepo,
		workerProfileRepo: workerProfileRepo,
		serviceRepo:       serviceRepo,
		bookingRepo:       bookingRepo,
		paymentRepo:       paymentRepo,
		reviewRepo:        reviewRepo,
		adminActionRepo:   adminActionRepo,
	}
}

func (u *dashboardUsecase) GetDashboard(ctx context.Context) (*dto.DashboardResponse, error) {
	db := u.db.WithContext(ctx)

	totalUsers, err := u.userRepo.Count(db)
	if err != nil {
		u.log.Warnf("Failed to count users: %+v", err)
		return nil, err
	}
	totalClients, err := u.clientProfileRepo.Count(db)
	if err != nil {
		u.log.Warnf("Failed to count clients: %+v", err)
		return nil, err
	}
	activeWorkers, err := u.workerProfileRepo.CountBySubscriptionStatus(db, entity.SubscriptionStatusActive)
	if err != nil {
		u.log.Warnf("Failed to count active workers: %+v", err)
		return nil, err
	}
	activeServices, err := u.serviceRepo.CountByStatus(db, entity.ServiceStatusActive)
	if err != nil {
		u.log.Warnf("Failed to count active services: %+v", err)
		return nil, err
	}
	totalBookings, err := u.bookingRepo.Count(db)
	if err != nil {
		u.log.Warnf("Failed to count bookings: %+v", err)
		return nil, err
	}
	pendingPayments, err := u.paymentRepo.CountByStatus(db, entity.PaymentStatusPending)
	if err != nil {
		u.log.Warnf("Failed to count pending payments: %+v", err)
		return nil, err
	}
	adminActions, err := u.adminActionRepo.Count(db)
	if err != nil {
		u.log.Warnf("Failed to count admin actions: %+v", err)
		return nil, err
	}
	statusCounts, err := u.bookingRepo.CountByStatus(db)
	if err != nil {
		u.log.Warnf("Failed to count bookings by status: %+v", err)
		return nil, err
	}
	recentBookings, err := u.bookingRepo.FindRecent(db, recentItemsLimit)
	if err != nil {
		u.log.Warnf("Failed to find recent bookings: %+v", err)
		return nil, err
	}
	recentReviews, err := u.reviewRepo.FindRecent(db, recentItemsLimit)
	if err != nil {
		u.log.Warnf("Failed to find recent reviews: %+v", err)
		return nil, err
	}

	bookingStatusCounts := make(map[string]int64, len(statusCounts))
	for status, count := range statusCounts {
		bookingStatusCounts[string(status)] = count
	}

	return &dto.DashboardResponse{
		TotalUsers:          totalUsers,
		TotalClients:        totalClients,
		ActiveWorkers:       activeWorkers,
		ActiveServices:      activeServices,
		TotalBookings:       totalBookings,
		PendingPayments:     pendingPayments,
		AdminActions:        adminActions,
		BookingStatusCounts: bookingStatusCounts,
		RecentBookings:      converter.BookingsToResponses(recentBookings),
		RecentReviews:       converter.ReviewsToResponses(recentReviews),
	}, nil
}

func (u *dashboardUsecase) ListAdminActions(ctx context.Context, limit int) (*dto.AdminActionListResponse, error) {
	actions, err := u.adminActionRepo.FindAll(u.db.WithContext(ctx), limit)
	if err != nil {
		u.log.Warnf("Failed to list admin actions: %+v", err)
		return nil, err
	}
	return &dto.AdminActionListResponse{
		Actions: converter.AdminActionsToResponses(actions),
		Total:   len(actions),
	}, nil
}
