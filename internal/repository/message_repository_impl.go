package repository

import (
	"fundihub/internal/domain/entity"
	domainRepo "fundihub/internal/domain/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type messageRepository struct{}

func NewMessageRepository() domainRepo.MessageRepository {
	return &messageRepository{}
}

func (r *messageRepository) Create(db *gorm.DB, message *entity.Message) error {
	return db.Create(message).Error
}

func (r *messageRepository) FindConversation(db *gorm.DB, userA, userB uuid.UUID) ([]entity.Message, error) {
	var messages []entity.Message
	err := db.Where(
		"(sender_id = ? AND receiver_id = ?) OR (sender_id = ? AND receiver_id = ?)",
		userA, userB, userB, userA,
	).
		Order("created_at ASC").
		Find(&messages).Error
	if err != nil {
		return nil, err
	}
	return messages, nil
}

func (r *messageRepository) FindByBookingID(db *gorm.DB, bookingID uuid.UUID) ([]entity.Message, error) {
	var messages []entity.Message
	err := db.Where("booking_id = ?", bookingID).
		Order("created_at ASC").
		Find(&messages).Error
	if err != nil {
		return nil, err
	}
	return messages, nil
}

func (r *messageRepository) MarkRead(db *gorm.DB, receiverID, senderID uuid.UUID) (int64, error) {
	result := db.Model(&entity.Message{}).
		Where("receiver_id = ? AND sender_id = ? AND is_read = ?", receiverID, senderID, false).
		Update("is_read", true)
	return result.RowsAffected, result.Error
}

func (r *messageRepository) CountUnread(db *gorm.DB, receiverID uuid.UUID) (int64, error) {
	var count int64
	err := db.Model(&entity.Message{}).
		Where("receiver_id = ? AND is_read = ?", receiverID, false).
		Count(&count).Error
	return count, err
}
