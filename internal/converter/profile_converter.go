package converter

import (
	"fundihub/internal/delivery/dto"
	"fundihub/internal/domain/entity"
)

// ClientProfileToResponse converts a ClientProfile entity to ClientProfileResponse DTO
func ClientProfileToResponse(profile *entity.ClientProfile) *dto.ClientProfileResponse {
	if profile == nil {
		return nil
	}

	return &dto.ClientProfileResponse{
		UserID:    profile.UserID,
		FullName:  profile.User.FullName,
		Email:     profile.User.Email,
		Phone:     profile.User.Phone,
		Address:   profile.Address,
		CreatedAt: profile.CreatedAt,
		UpdatedAt: profile.UpdatedAt,
	}
}

// ClientProfilesToResponses converts a slice of ClientProfile entities to DTOs
func ClientProfilesToResponses(profiles []entity.ClientProfile) []dto.ClientProfileResponse {
	responses := make([]dto.ClientProfileResponse, len(profiles))
	for i, profile := range profiles {
		resp := ClientProfileToResponse(&profile)
		if resp != nil {
			responses[i] = *resp
		}
	}
	return responses
}

// WorkerProfileToResponse converts a WorkerProfile entity to WorkerProfileResponse DTO
func WorkerProfileToResponse(profile *entity.WorkerProfile) *dto.WorkerProfileResponse {
	if profile == nil {
		return nil
	}

	return &dto.WorkerProfileResponse{
		UserID:                profile.UserID,
		FullName:              profile.User.FullName,
		Email:                 profile.User.Email,
		Phone:                 profile.User.Phone,
		Profession:            profile.Profession,
		NationalID:            profile.NationalID,
		Experience:            profile.Experience,
		Address:               profile.Address,
		SubscriptionStatus:    string(profile.SubscriptionStatus),
		SubscriptionExpiresAt: profile.SubscriptionExpiresAt,
		CreatedAt:             profile.CreatedAt,
		UpdatedAt:             profile.UpdatedAt,
	}
}

// WorkerProfilesToResponses converts a slice of WorkerProfile entities to DTOs
func WorkerProfilesToResponses(profiles []entity.WorkerProfile) []dto.WorkerProfileResponse {
	responses := make([]dto.WorkerProfileResponse, len(profiles))
	for i, profile := range profiles {
		resp := WorkerProfileToResponse(&profile)
		if resp != nil {
			responses[i] = *resp
		}
	}
	return responses
}
