package repository

import (
	"fundihub/internal/domain/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type MessageRepository interface {
	Create(db *gorm.DB, message *entity.Message) error
	FindConversation(db *gorm.DB, userA, userB uuid.UUID) ([]entity.Message, error)
	FindByBookingID(db *gorm.DB, bookingID uuid.UUID) ([]entity.Message, error)
	MarkRead(db *gorm.DB, receiverID, senderID uuid.UUID) (int64, error)
	CountUnread(db *gorm.DB, receiverID uuid.UUID) (int64, error)
}
