package dto

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Request DTOs

type CreateServiceRequest struct {
	Title           string          `json:"title" validate:"required,max=255"`
	Description     string          `json:"description"`
	Category        string          `json:"category" validate:"required,max=100"`
	Price           decimal.Decimal `json:"price" validate:"required"`
	DurationMinutes int             `json:"duration_minutes" validate:"required,min=1"`
}

type UpdateServiceRequest struct {
	Title           *string          `json:"title,omitempty" validate:"omitempty,max=255"`
	Description     *string          `json:"description,omitempty"`
	Category        *string          `json:"category,omitempty" validate:"omitempty,max=100"`
	Price           *decimal.Decimal `json:"price,omitempty"`
	DurationMinutes *int             `json:"duration_minutes,omitempty" validate:"omitempty,min=1"`
	Status          *string          `json:"status,omitempty" validate:"omitempty,oneof=draft active inactive"`
}

// Response DTOs

type ServiceResponse struct {
	ID              uuid.UUID       `json:"id"`
	WorkerID        uuid.UUID       `json:"worker_id"`
	Title           string          `json:"title"`
	Description     string          `json:"description,omitempty"`
	Category        string          `json:"category"`
	Price           decimal.Decimal `json:"price"`
	DurationMinutes int             `json:"duration_minutes"`
	Status          string          `json:"status"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
}

type ServiceListResponse struct {
	Services []ServiceResponse `json:"services"`
	Total    int               `json:"total"`
}
