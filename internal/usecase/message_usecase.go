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
	ErrMessageSelf         = errors.New("cannot send a message to yourself")
	ErrReceiverNotFound    = errors.New("receiver not found")
	ErrNotBookingMessenger = errors.New("only booking parties can message on a booking")
)

type MessageUsecase interface {
	SendMessage(ctx context.Context, senderID uuid.UUID, req *dto.SendMessageRequest) (*dto.MessageResponse, error)
	GetConversation(ctx context.Context, userID, otherID uuid.UUID) (*dto.MessageListResponse, error)
	GetBookingMessages(ctx context.Context, actor Actor, bookingID uuid.UUID) (*dto.MessageListResponse, error)
	CountUnread(ctx context.Context, userID uuid.UUID) (*dto.UnreadCountResponse, error)
}

type messageUsecase struct {
	db          *gorm.DB
	log         *logrus.Logger
	messageRepo repository.MessageRepository
	userRepo    repository.UserRepository
	bookingRepo repository.BookingRepository
}

func NewMessageUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	messageRepo repository.MessageRepository,
	userRepo repository.UserRepository,
	bookingRepo repository.BookingRepository,
) MessageUsecase {
	return &messageUsecase{
		db:          db,
		log:         log,
		messageRepo: messageRepo,
		userRepo:    userRepo,
		bookingRepo: bookingRepo,
	}
}

func (u *messageUsecase) SendMessage(ctx context.Context, senderID uuid.UUID, req *dto.SendMessageRequest) (*dto.MessageResponse, error) {
	if req.ReceiverID == senderID {
		return nil, ErrMessageSelf
	}

	db := u.db.WithContext(ctx)

	receiver, err := u.userRepo.FindByID(db, req.ReceiverID)
	if err != nil {
		u.log.Warnf("Failed to find receiver: %+v", err)
		return nil, err
	}
	if receiver == nil {
		return nil, ErrReceiverNotFound
	}

	if req.BookingID != nil {
		booking, err := u.bookingRepo.FindByID(db, *req.BookingID)
		if err != nil {
			u.log.Warnf("Failed to find booking: %+v", err)
			return nil, err
		}
		if booking == nil {
			return nil, ErrBookingNotFound
		}
		if !booking.IsParty(senderID) || !booking.IsParty(req.ReceiverID) {
			return nil, ErrNotBookingMessenger
		}
	}

	message := &entity.Message{
		SenderID:   senderID,
		ReceiverID: req.ReceiverID,
		BookingID:  req.BookingID,
		Content:    req.Content,
	}
	if err := u.messageRepo.Create(db, message); err != nil {
		u.log.Warnf("Failed to create message: %+v", err)
		return nil, err
	}

	return converter.MessageToResponse(message), nil
}

func (u *messageUsecase) GetConversation(ctx context.Context, userID, otherID uuid.UUID) (*dto.MessageListResponse, error) {
	db := u.db.WithContext(ctx)

	messages, err := u.messageRepo.FindConversation(db, userID, otherID)
	if err != nil {
		u.log.Warnf("Failed to find conversation: %+v", err)
		return nil, err
	}

	// Opening a conversation marks the other party's messages as read
	if _, err := u.messageRepo.MarkRead(db, userID, otherID); err != nil {
		u.log.Warnf("Failed to mark messages read: %+v", err)
	}

	return &dto.MessageListResponse{
		Messages: converter.MessagesToResponses(messages),
		Total:    len(messages),
	}, nil
}

func (u *messageUsecase) GetBookingMessages(ctx context.Context, actor Actor, bookingID uuid.UUID) (*dto.MessageListResponse, error) {
	db := u.db.WithContext(ctx)

	booking, err := u.bookingRepo.FindByID(db, bookingID)
	if err != nil {
		u.log.Warnf("Failed to find booking: %+v", err)
		return nil, err
	}
	if booking == nil {
		return nil, ErrBookingNotFound
	}
	if actor.Role != entity.RoleAdmin && !booking.IsParty(actor.ID) {
		return nil, ErrNotBookingMessenger
	}

	messages, err := u.messageRepo.FindByBookingID(db, bookingID)
	if err != nil {
		u.log.Warnf("Failed to find booking messages: %+v", err)
		return nil, err
	}

	return &dto.MessageListResponse{
		Messages: converter.MessagesToResponses(messages),
		Total:    len(messages),
	}, nil
}

func (u *messageUsecase) CountUnread(ctx context.Context, userID uuid.UUID) (*dto.UnreadCountResponse, error) {
	count, err := u.messageRepo.CountUnread(u.db.WithContext(ctx), userID)
	if err != nil {
		u.log.Warnf("Failed to count unread messages: %+v", err)
		return nil, err
	}
	return &dto.UnreadCountResponse{Unread: count}, nil
}
