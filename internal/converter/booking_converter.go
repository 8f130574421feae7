package converter

import (
	"fundihub/internal/delivery/dto"
	"fundihub/internal/domain/entity"

	"github.com/google/uuid"
)

// BookingToResponse converts a Booking entity to BookingResponse DTO
func BookingToResponse(booking *entity.Booking) *dto.BookingResponse {
	if booking == nil {
		return nil
	}

	response := &dto.BookingResponse{
		ID:          booking.ID,
		ServiceID:   booking.ServiceID,
		ClientID:    booking.ClientID,
		WorkerID:    booking.WorkerID,
		StartTime:   booking.StartTime,
		EndTime:     booking.EndTime,
		Status:      string(booking.Status),
		TotalAmount: booking.TotalAmount,
		CreatedAt:   booking.CreatedAt,
		UpdatedAt:   booking.UpdatedAt,
	}

	// Include service info if preloaded
	if booking.Service.ID != uuid.Nil {
		response.Service = ServiceToResponse(&booking.Service)
	}

	return response
}

// BookingsToResponses converts a slice of Booking entities to BookingResponse DTOs
func BookingsToResponses(bookings []entity.Booking) []dto.BookingResponse {
	responses := make([]dto.BookingResponse, len(bookings))
	for i, booking := range bookings {
		resp := BookingToResponse(&booking)
		if resp != nil {
			responses[i] = *resp
		}
	}
	return responses
}
