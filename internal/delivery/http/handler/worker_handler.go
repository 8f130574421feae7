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

type WorkerHandler struct {
	workerUsecase usecase.WorkerUsecase
	validator     *validator.CustomValidator
}

func NewWorkerHandler(workerUsecase usecase.WorkerUsecase, validator *validator.CustomValidator) *WorkerHandler {
	return &WorkerHandler{
		workerUsecase: workerUsecase,
		validator:     validator,
	}
}

// GetMyProfile handles fetching the calling worker's profile
func (h *WorkerHandler) GetMyProfile(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Invalid token")
		return
	}

	profile, err := h.workerUsecase.GetProfile(r.Context(), userID)
	if err != nil {
		switch err {
		case usecase.ErrWorkerProfileNotFound:
			response.NotFound(w, "Worker profile not found")
		default:
			response.InternalServerError(w, "Failed to get profile")
		}
		return
	}

	response.Success(w, http.StatusOK, "Profile retrieved successfully", profile)
}

// UpdateMyProfile handles updating the calling worker's profile
func (h *WorkerHandler) UpdateMyProfile(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Invalid token")
		return
	}

	var req dto.UpdateWorkerProfileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	profile, err := h.workerUsecase.UpdateProfile(r.Context(), userID, &req)
	if err != nil {
		switch err {
		case usecase.ErrWorkerProfileNotFound:
			response.NotFound(w, "Worker profile not found")
		default:
			response.InternalServerError(w, "Failed to update profile")
		}
		return
	}

	response.Success(w, http.StatusOK, "Profile updated successfully", profile)
}

// ListWorkers handles listing all worker profiles
func (h *WorkerHandler) ListWorkers(w http.ResponseWriter, r *http.Request) {
	workers, err := h.workerUsecase.ListWorkers(r.Context())
	if err != nil {
		response.InternalServerError(w, "Failed to list workers")
		return
	}

	response.Success(w, http.StatusOK, "Workers retrieved successfully", workers)
}

// RenewSubscription handles renewing the calling worker's subscription
func (h *WorkerHandler) RenewSubscription(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Invalid token")
		return
	}

	var req dto.RenewSubscriptionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	profile, err := h.workerUsecase.RenewSubscription(r.Context(), userID, &req)
	if err != nil {
		switch err {
		case usecase.ErrWorkerProfileNotFound:
			response.NotFound(w, "Worker profile not found")
		case usecase.ErrExpiryInPast:
			response.Error(w, http.StatusBadRequest, "Subscription expiry must be in the future", nil)
		default:
			response.InternalServerError(w, "Failed to renew subscription")
		}
		return
	}

	response.Success(w, http.StatusOK, "Subscription renewed successfully", profile)
}
