package converter

import (
	"fundihub/internal/delivery/dto"
	"fundihub/internal/domain/entity"
)

// AdminActionToResponse converts an AdminAction entity to AdminActionResponse DTO
func AdminActionToResponse(action *entity.AdminAction) *dto.AdminActionResponse {
	if action == nil {
		return nil
	}

	return &dto.AdminActionResponse{
		ID:         action.ID,
		AdminID:    action.AdminID,
		ActionType: string(action.ActionType),
		TargetID:   action.TargetID,
		Details:    action.Details,
		CreatedAt:  action.CreatedAt,
	}
}

// AdminActionsToResponses converts a slice of AdminAction entities to DTOs
func AdminActionsToResponses(actions []entity.AdminAction) []dto.AdminActionResponse {
	responses := make([]dto.AdminActionResponse, len(actions))
	for i, action := range actions {
		resp := AdminActionToResponse(&action)
		if resp != nil {
			responses[i] = *resp
		}
	}
	return responses
}
