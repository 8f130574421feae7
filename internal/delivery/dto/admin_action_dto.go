package dto

import (
	"time"

	"github.com/google/uuid"
)

// Request DTOs

type CreateAdminActionRequest struct {
	ActionType string            `json:"action_type" validate:"required,oneof=approve_profile reject_profile ban_user resolve_dispute edit_service cancel_booking delete_booking"`
	TargetID   uuid.UUID         `json:"target_id" validate:"required"`
	Details    map[string]string `json:"details,omitempty"`
}

// Response DTOs

type AdminActionResponse struct {
	ID         int64                  `json:"id"`
	AdminID    uuid.UUID              `json:"admin_id"`
	ActionType string                 `json:"action_type"`
	TargetID   uuid.UUID              `json:"target_id"`
	Details    map[string]interface{} `json:"details,omitempty"`
	CreatedAt  time.Time              `json:"created_at"`
}

type AdminActionListResponse struct {
	Actions []AdminActionResponse `json:"actions"`
	Total   int                   `json:"total"`
}
