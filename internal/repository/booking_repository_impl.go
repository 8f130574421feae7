package repository

import (
	"errors"

	"fundihub/internal/domain/entity"
	domainRepo "fundihub/internal/domain/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type bookingRepository struct{}

func NewBookingRepository() domainRepo.BookingRepository {
	return &bookingRepository{}
}

func (r *bookingRepository) Create(db *gorm.DB, booking *entity.Booking) error {
	return db.Create(booking).Error
}

func (r *bookingRepository) FindByID(db *gorm.DB, id uuid.UUID) (*entity.Booking, error) {
	var booking entity.Booking
	err := db.Preload("Service").Where("id = ?", id).First(&booking).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &booking, nil
}

func (r *bookingRepository) FindAll(db *gorm.DB) ([]entity.Booking, error) {
	var bookings []entity.Booking
	err := db.Preload("Service").Preload("Client").Preload("Worker").
		Order("created_at DESC").
		Find(&bookings).Error
	if err != nil {
		return nil, err
	}
	return bookings, nil
}

func (r *bookingRepository) FindByClientID(db *gorm.DB, clientID uuid.UUID) ([]entity.Booking, error) {
	var bookings []entity.Booking
	err := db.Preload("Service").Preload("Worker").
		Where("client_id = ?", clientID).
		Order("created_at DESC").
		Find(&bookings).Error
	if err != nil {
		return nil, err
	}
	return bookings, nil
}

func (r *bookingRepository) FindByWorkerID(db *gorm.DB, workerID uuid.UUID) ([]entity.Booking, error) {
	var bookings []entity.Booking
	err := db.Preload("Service").Preload("Client").
		Where("worker_id = ?", workerID).
		Order("created_at DESC").
		Find(&bookings).Error
	if err != nil {
		return nil, err
	}
	return bookings, nil
}

func (r *bookingRepository) FindByServiceID(db *gorm.DB, serviceID uuid.UUID) ([]entity.Booking, error) {
	var bookings []entity.Booking
	err := db.Where("service_id = ?", serviceID).
		Order("created_at DESC").
		Find(&bookings).Error
	if err != nil {
		return nil, err
	}
	return bookings, nil
}

func (r *bookingRepository) FindByStatuses(db *gorm.DB, statuses []entity.BookingStatus) ([]entity.Booking, error) {
	var bookings []entity.Booking
	err := db.Where("status IN ?", statuses).
		Order("start_time ASC").
		Find(&bookings).Error
	if err != nil {
		return nil, err
	}
	return bookings, nil
}

func (r *bookingRepository) FindRecent(db *gorm.DB, limit int) ([]entity.Booking, error) {
	var bookings []entity.Booking
	err := db.Preload("Service").Preload("Client").Preload("Worker").
		Order("created_at DESC").
		Limit(limit).
		Find(&bookings).Error
	if err != nil {
		return nil, err
	}
	return bookings, nil
}

// UpdateFieldsIfVersion applies changes with a version guard in a single
// UPDATE so a request-driven mutation cannot interleave with a concurrent
// sweeper advancement on the same booking.
func (r *bookingRepository) UpdateFieldsIfVersion(db *gorm.DB, id uuid.UUID, expectedVersion int64, changes map[string]interface{}) (int64, error) {
	updates := make(map[string]interface{}, len(changes)+1)
	for k, v := range changes {
		updates[k] = v
	}
	updates["version"] = expectedVersion + 1

	result := db.Model(&entity.Booking{}).
		Where("id = ? AND version = ?", id, expectedVersion).
		Updates(updates)
	return result.RowsAffected, result.Error
}

func (r *bookingRepository) Delete(db *gorm.DB, id uuid.UUID) error {
	return db.Where("id = ?", id).Delete(&entity.Booking{}).Error
}

func (r *bookingRepository) Count(db *gorm.DB) (int64, error) {
	var count int64
	err := db.Model(&entity.Booking{}).Count(&count).Error
	return count, err
}

func (r *bookingRepository) CountByStatus(db *gorm.DB) (map[entity.BookingStatus]int64, error) {
	var rows []struct {
		Status entity.BookingStatus
		Count  int64
	}
	err := db.Model(&entity.Booking{}).
		Select("status, count(*) as count").
		Group("status").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	counts := make(map[entity.BookingStatus]int64, len(rows))
	for _, row := range rows {
		counts[row.Status] = row.Count
	}
	return counts, nil
}
