package dto

import (
	"time"

	"github.com/google/uuid"
)

// Request DTOs

type UpdateClientProfileRequest struct {
	FullName *string `json:"full_name,omitempty" validate:"omitempty,max=255"`
	Phone    *string `json:"phone,omitempty" validate:"omitempty,max=20"`
	Address  *string `json:"address,omitempty"`
}

type UpdateWorkerProfileRequest struct {
	FullName   *string `json:"full_name,omitempty" validate:"omitempty,max=255"`
	Phone      *string `json:"phone,omitempty" validate:"omitempty,max=20"`
	Profession *string `json:"profession,omitempty" validate:"omitempty,max=100"`
	Experience *string `json:"experience,omitempty"`
	Address    *string `json:"address,omitempty"`
}

type RenewSubscriptionRequest struct {
	ExpiresAt time.Time `json:"expires_at" validate:"required"`
}

// Response DTOs

type ClientProfileResponse struct {
	UserID    uuid.UUID `json:"user_id"`
	FullName  string    `json:"full_name"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone,omitempty"`
	Address   string    `json:"address"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type WorkerProfileResponse struct {
	UserID                uuid.UUID  `json:"user_id"`
	FullName              string     `json:"full_name"`
	Email                 string     `json:"email"`
	Phone                 string     `json:"phone,omitempty"`
	Profession            string     `json:"profession"`
	NationalID            string     `json:"national_id"`
	Experience            string     `json:"experience,omitempty"`
	Address               string     `json:"address,omitempty"`
	SubscriptionStatus    string     `json:"subscription_status"`
	SubscriptionExpiresAt *time.Time `json:"subscription_expires_at,omitempty"`
	CreatedAt             time.Time  `json:"created_at"`
	UpdatedAt             time.Time  `json:"updated_at"`
}

type ClientProfileListResponse struct {
	Clients []ClientProfileResponse `json:"clients"`
	Total   int                     `json:"total"`
}

type WorkerProfileListResponse struct {
	Workers []WorkerProfileResponse `json:"workers"`
	Total   int                     `json:"total"`
}
