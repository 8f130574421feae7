package dto

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Request DTOs

type InitiatePaymentRequest struct {
	BookingID   uuid.UUID `json:"booking_id" validate:"required"`
	PhoneNumber string    `json:"phone_number" validate:"required,msisdn"`
	Description string    `json:"description" validate:"max=100"`
}

// MpesaCallbackRequest mirrors the Daraja STK push callback envelope
type MpesaCallbackRequest struct {
	Body struct {
		StkCallback struct {
			MerchantRequestID string `json:"MerchantRequestID"`
			CheckoutRequestID string `json:"CheckoutRequestID"`
			ResultCode        int    `json:"ResultCode"`
			ResultDesc        string `json:"ResultDesc"`
			CallbackMetadata  struct {
				Item []MpesaCallbackItem `json:"Item"`
			} `json:"CallbackMetadata"`
		} `json:"stkCallback"`
	} `json:"Body"`
}

type MpesaCallbackItem struct {
	Name  string      `json:"Name"`
	Value interface{} `json:"Value,omitempty"`
}

// Response DTOs

type PaymentResponse struct {
	ID                 uuid.UUID       `json:"id"`
	UserID             uuid.UUID       `json:"user_id"`
	BookingID          *uuid.UUID      `json:"booking_id,omitempty"`
	Amount             decimal.Decimal `json:"amount"`
	Status             string          `json:"status"`
	PhoneNumber        string          `json:"phone_number"`
	MpesaReceiptNumber string          `json:"mpesa_receipt_number,omitempty"`
	CheckoutRequestID  string          `json:"checkout_request_id,omitempty"`
	TransactionDate    *time.Time      `json:"transaction_date,omitempty"`
	ErrorMessage       string          `json:"error_message,omitempty"`
	CreatedAt          time.Time       `json:"created_at"`
	UpdatedAt          time.Time       `json:"updated_at"`
}

type PaymentListResponse struct {
	Payments []PaymentResponse `json:"payments"`
	Total    int               `json:"total"`
}
