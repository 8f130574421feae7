package handler

import (
	"encoding/json"
	"net/http"

	"fundihub/internal/delivery/dto"
	"fundihub/internal/delivery/http/middleware"
	"fundihub/internal/usecase"
	"fundihub/pkg/response"
	"fundihub/pkg/validator"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
)

type MessageHandler struct {
	messageUsecase usecase.MessageUsecase
	validator      *validator.CustomValidator
}

func NewMessageHandler(messageUsecase usecase.MessageUsecase, validator *validator.CustomValidator) *MessageHandler {
	return &MessageHandler{
		messageUsecase: messageUsecase,
		validator:      validator,
	}
}

// SendMessage handles sending a message to another user
func (h *MessageHandler) SendMessage(w http.ResponseWriter, r *http.Request) {
	senderID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Invalid token")
		return
	}

	var req dto.SendMessageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	message, err := h.messageUsecase.SendMessage(r.Context(), senderID, &req)
	if err != nil {
		switch err {
		case usecase.ErrMessageSelf:
			response.Error(w, http.StatusBadRequest, "Cannot send a message to yourself", nil)
		case usecase.ErrReceiverNotFound:
			response.NotFound(w, "Receiver not found")
		case usecase.ErrBookingNotFound:
			response.NotFound(w, "Booking not found")
		case usecase.ErrNotBookingMessenger:
			response.Forbidden(w, "Only booking parties can message on a booking")
		default:
			response.InternalServerError(w, "Failed to send message")
		}
		return
	}

	response.Success(w, http.StatusCreated, "Message sent successfully", message)
}

// GetConversation handles fetching the conversation with another user
func (h *MessageHandler) GetConversation(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Invalid token")
		return
	}

	otherID, err := uuid.Parse(mux.Vars(r)["user_id"])
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid user ID", nil)
		return
	}

	messages, err := h.messageUsecase.GetConversation(r.Context(), userID, otherID)
	if err != nil {
		response.InternalServerError(w, "Failed to get conversation")
		return
	}

	response.Success(w, http.StatusOK, "Conversation retrieved successfully", messages)
}

// GetBookingMessages handles fetching the messages attached to a booking
func (h *MessageHandler) GetBookingMessages(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFromRequest(r)
	if !ok {
		response.Unauthorized(w, "Invalid token")
		return
	}

	bookingID, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid booking ID", nil)
		return
	}

	messages, err := h.messageUsecase.GetBookingMessages(r.Context(), actor, bookingID)
	if err != nil {
		switch err {
		case usecase.ErrBookingNotFound:
			response.NotFound(w, "Booking not found")
		case usecase.ErrNotBookingMessenger:
			response.Forbidden(w, "Only booking parties can view booking messages")
		default:
			response.InternalServerError(w, "Failed to get booking messages")
		}
		return
	}

	response.Success(w, http.StatusOK, "Messages retrieved successfully", messages)
}

// CountUnread handles the unread message counter
func (h *MessageHandler) CountUnread(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Invalid token")
		return
	}

	count, err := h.messageUsecase.CountUnread(r.Context(), userID)
	if err != nil {
		response.InternalServerError(w, "Failed to count unread messages")
		return
	}

	response.Success(w, http.StatusOK, "Unread count retrieved successfully", count)
}
