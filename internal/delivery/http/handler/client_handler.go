package handler

import (
	"encoding/json"
	"net/http"

	"fundihub/internal/delivery/dto"
	"fundihub/internal/delivery/http/middleware"
	"fundihub/internal/usecase"
	"fundihub/pkg/response"
	"fundihub/pkg/validator"
)

type ClientHandler struct {
	clientUsecase usecase.ClientUsecase
	validator     *validator.CustomValidator
}

func NewClientHandler(clientUsecase usecase.ClientUsecase, validator *validator.CustomValidator) *ClientHandler {
	return &ClientHandler{
		clientUsecase: clientUsecase,
		validator:     validator,
	}
}

// GetMyProfile handles fetching the calling client's profile
func (h *ClientHandler) GetMyProfile(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Invalid token")
		return
	}

	profile, err := h.clientUsecase.GetProfile(r.Context(), userID)
	if err != nil {
		switch err {
		case usecase.ErrClientProfileNotFound:
			response.NotFound(w, "Client profile not found")
		default:
			response.InternalServerError(w, "Failed to get profile")
		}
		return
	}

	response.Success(w, http.StatusOK, "Profile retrieved successfully", profile)
}

// UpdateMyProfile handles updating the calling client's profile
func (h *ClientHandler) UpdateMyProfile(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Invalid token")
		return
	}

	var req dto.UpdateClientProfileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	profile, err := h.clientUsecase.UpdateProfile(r.Context(), userID, &req)
	if err != nil {
		switch err {
		case usecase.ErrClientProfileNotFound:
			response.NotFound(w, "Client profile not found")
		default:
			response.InternalServerError(w, "Failed to update profile")
		}
		return
	}

	response.Success(w, http.StatusOK, "Profile updated successfully", profile)
}

// ListClients handles the admin listing of all client profiles
func (h *ClientHandler) ListClients(w http.ResponseWriter, r *http.Request) {
	clients, err := h.clientUsecase.ListClients(r.Context())
	if err != nil {
		response.InternalServerError(w, "Failed to list clients")
		return
	}

	response.Success(w, http.StatusOK, "Clients retrieved successfully", clients)
}
