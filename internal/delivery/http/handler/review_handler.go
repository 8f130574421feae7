package handler

import (
	"encoding/json"
	"net/http"

	"fundihub/internal/delivery/dto"
	"fundihub/internal/delivery/http/middleware"
	"fundihub/internal/usecase"
	"fundihub/pkg/response"
	"fundihub/pkg/validator"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
)

type ReviewHandler struct {
	reviewUsecase usecase.ReviewUsecase
	validator     *validator.CustomValidator
}

func NewReviewHandler(reviewUsecase usecase.ReviewUsecase, validator *validator.CustomValidator) *ReviewHandler {
	return &ReviewHandler{
		reviewUsecase: reviewUsecase,
		validator:     validator,
	}
}

// CreateReview handles a client reviewing a completed booking
func (h *ReviewHandler) CreateReview(w http.ResponseWriter, r *http.Request) {
	reviewerID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Invalid token")
		return
	}

	var req dto.CreateReviewRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	review, err := h.reviewUsecase.CreateReview(r.Context(), reviewerID, &req)
	if err != nil {
		switch err {
		case usecase.ErrBookingNotFound:
			response.NotFound(w, "Booking not found")
		case usecase.ErrNotBookingClient:
			response.Forbidden(w, "Only the booking client can leave a review")
		case usecase.ErrBookingNotCompleted:
			response.Error(w, http.StatusConflict, "Booking must be completed before reviewing", nil)
		case usecase.ErrAlreadyReviewed:
			response.Error(w, http.StatusConflict, "Booking has already been reviewed", nil)
		default:
			response.InternalServerError(w, "Failed to create review")
		}
		return
	}

	response.Success(w, http.StatusCreated, "Review created successfully", review)
}

// ListWorkerReviews handles listing the reviews of a worker
func (h *ReviewHandler) ListWorkerReviews(w http.ResponseWriter, r *http.Request) {
	workerID, err := uuid.Parse(mux.Vars(r)["worker_id"])
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid worker ID", nil)
		return
	}

	reviews, err := h.reviewUsecase.ListWorkerReviews(r.Context(), workerID)
	if err != nil {
		response.InternalServerError(w, "Failed to list reviews")
		return
	}

	response.Success(w, http.StatusOK, "Reviews retrieved successfully", reviews)
}

// ListReviews handles the admin listing of all reviews
func (h *ReviewHandler) ListReviews(w http.ResponseWriter, r *http.Request) {
	reviews, err := h.reviewUsecase.ListReviews(r.Context())
	if err != nil {
		response.InternalServerError(w, "Failed to list reviews")
		return
	}

	response.Success(w, http.StatusOK, "Reviews retrieved successfully", reviews)
}

// DeleteReview handles admin removal of a review
func (h *ReviewHandler) DeleteReview(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFromRequest(r)
	if !ok {
		response.Unauthorized(w, "Invalid token")
		return
	}

	reviewID, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid review ID", nil)
		return
	}

	if err := h.reviewUsecase.DeleteReview(r.Context(), actor, reviewID); err != nil {
		switch err {
		case usecase.ErrAdminOnly:
			response.Forbidden(w, "Admin privileges required")
		default:
			response.InternalServerError(w, "Failed to delete review")
		}
		return
	}

	response.Success(w, http.StatusOK, "Review deleted successfully", nil)
}
