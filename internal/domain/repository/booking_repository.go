package repository

import (
	"fundihub/internal/domain/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type BookingRepository interface {
	Create(db *gorm.DB, booking *entity.Booking) error
	FindByID(db *gorm.DB, id uuid.UUID) (*entity.Booking, error)
	FindAll(db *gorm.DB) ([]entity.Booking, error)
	FindByClientID(db *gorm.DB, clientID uuid.UUID) ([]entity.Booking, error)
	FindByWorkerID(db *gorm.DB, workerID uuid.UUID) ([]entity.Booking, error)
	FindByServiceID(db *gorm.DB, serviceID uuid.UUID) ([]entity.Booking, error)
	FindByStatuses(db *gorm.DB, statuses []entity.BookingStatus) ([]entity.Booking, error)
	FindRecent(db *gorm.DB, limit int) ([]entity.Booking, error)

	// UpdateFieldsIfVersion applies the given changes only when the stored
	// version still matches expectedVersion, bumping the version in the same
	// statement. Returns the number of rows affected: 1 = applied, 0 = lost
	// the race to a concurrent writer.
	UpdateFieldsIfVersion(db *gorm.DB, id uuid.UUID, expectedVersion int64, changes map[string]interface{}) (int64, error)

	Delete(db *gorm.DB, id uuid.UUID) error
	Count(db *gorm.DB) (int64, error)
	CountByStatus(db *gorm.DB) (map[entity.BookingStatus]int64, error)
}
