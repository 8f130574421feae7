package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// PaymentStatus represents the state of an M-Pesa payment
type PaymentStatus string

const (
	PaymentStatusPending   PaymentStatus = "pending"
	PaymentStatusCompleted PaymentStatus = "completed"
	PaymentStatusFailed    PaymentStatus = "failed"
)

// Payment represents an M-Pesa STK push transaction for a booking
type Payment struct {
	ID                 uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	UserID             uuid.UUID       `gorm:"type:uuid;not null;index" json:"user_id"`
	BookingID          *uuid.UUID      `gorm:"type:uuid;index" json:"booking_id,omitempty"`
	Amount             decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"amount"`
	Status             PaymentStatus   `gorm:"type:varchar(20);not null;default:'pending';index" json:"status"`
	PhoneNumber        string          `gorm:"type:varchar(20);not null" json:"phone_number"`
	MpesaReceiptNumber string          `gorm:"type:varchar(50)" json:"mpesa_receipt_number,omitempty"`
	MerchantRequestID  string          `gorm:"type:varchar(100);index" json:"merchant_request_id,omitempty"`
	CheckoutRequestID  string          `gorm:"type:varchar(100);uniqueIndex" json:"checkout_request_id,omitempty"`
	TransactionDate    *time.Time      `json:"transaction_date,omitempty"`
	ErrorMessage       string          `gorm:"type:text" json:"error_message,omitempty"`
	CreatedAt          time.Time       `gorm:"autoCreateTime;index" json:"created_at"`
	UpdatedAt          time.Time       `gorm:"autoUpdateTime" json:"updated_at"`

	// Relationships
	User    User     `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Booking *Booking `gorm:"foreignKey:BookingID" json:"booking,omitempty"`
}

func (Payment) TableName() string {
	return "payments"
}
