package converter

import (
	"fundihub/internal/delivery/dto"
	"fundihub/internal/domain/entity"
)

// PaymentToResponse converts a Payment entity to PaymentResponse DTO
func PaymentToResponse(payment *entity.Payment) *dto.PaymentResponse {
	if payment == nil {
		return nil
	}

	return &dto.PaymentResponse{
		ID:                 payment.ID,
		UserID:             payment.UserID,
		BookingID:          payment.BookingID,
		Amount:             payment.Amount,
		Status:             string(payment.Status),
		PhoneNumber:        payment.PhoneNumber,
		MpesaReceiptNumber: payment.MpesaReceiptNumber,
		CheckoutRequestID:  payment.CheckoutRequestID,
		TransactionDate:    payment.TransactionDate,
		ErrorMessage:       payment.ErrorMessage,
		CreatedAt:          payment.CreatedAt,
		UpdatedAt:          payment.UpdatedAt,
	}
}

// PaymentsToResponses converts a slice of Payment entities to PaymentResponse DTOs
func PaymentsToResponses(payments []entity.Payment) []dto.PaymentResponse {
	responses := make([]dto.PaymentResponse, len(payments))
	for i, payment := range payments {
		resp := PaymentToResponse(&payment)
		if resp != nil {
			responses[i] = *resp
		}
	}
	return responses
}
