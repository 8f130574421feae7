package converter

import (
	"fundihub/internal/delivery/dto"
	"fundihub/internal/domain/entity"
)

// MessageToResponse converts a Message entity to MessageResponse DTO
func MessageToResponse(message *entity.Message) *dto.MessageResponse {
	if message == nil {
		return nil
	}

	return &dto.MessageResponse{
		ID:         message.ID,
		SenderID:   message.SenderID,
		ReceiverID: message.ReceiverID,
		BookingID:  message.BookingID,
		Content:    message.Content,
		IsRead:     message.IsRead,
		CreatedAt:  message.CreatedAt,
	}
}

// MessagesToResponses converts a slice of Message entities to MessageResponse DTOs
func MessagesToResponses(messages []entity.Message) []dto.MessageResponse {
	responses := make([]dto.MessageResponse, len(messages))
	for i, message := range messages {
		resp := MessageToResponse(&message)
		if resp != nil {
			responses[i] = *resp
		}
	}
	return responses
}
