package dto

import (
	"time"

	"github.com/google/uuid"
)

// Request DTOs

type SendMessageRequest struct {
	ReceiverID uuid.UUID  `json:"receiver_id" validate:"required"`
	BookingID  *uuid.UUID `json:"booking_id,omitempty"`
	Content    string     `json:"content" validate:"required,max=5000"`
}

// Response DTOs

type MessageResponse struct {
	ID         uuid.UUID  `json:"id"`
	SenderID   uuid.UUID  `json:"sender_id"`
	ReceiverID uuid.UUID  `json:"receiver_id"`
	BookingID  *uuid.UUID `json:"booking_id,omitempty"`
	Content    string     `json:"content"`
	IsRead     bool       `json:"is_read"`
	CreatedAt  time.Time  `json:"created_at"`
}

type MessageListResponse struct {
	Messages []MessageResponse `json:"messages"`
	Total    int               `json:"total"`
}

type UnreadCountResponse struct {
	Unread int64 `json:"unread"`
}
