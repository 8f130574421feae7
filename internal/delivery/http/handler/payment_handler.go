package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"fundihub/internal/delivery/dto"
	"fundihub/internal/delivery/http/middleware"
	"fundihub/internal/integrations/mpesa"
	"fundihub/internal/usecase"
	"fundihub/pkg/response"
	"fundihub/pkg/validator"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
)

type PaymentHandler struct {
	paymentUsecase usecase.PaymentUsecase
	validator      *validator.CustomValidator
}

func NewPaymentHandler(paymentUsecase usecase.PaymentUsecase, validator *validator.CustomValidator) *PaymentHandler {
	return &PaymentHandler{
		paymentUsecase: paymentUsecase,
		validator:      validator,
	}
}

// InitiatePayment handles starting an M-Pesa STK push for a booking
// @Summary Initiate a booking payment
// @Tags Payments
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body dto.InitiatePaymentRequest true "Initiate Payment Request"
// @Success 201 {object} response.Response
// @Failure 403 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /payments [post]
func (h *PaymentHandler) InitiatePayment(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Invalid token")
		return
	}

	var req dto.InitiatePaymentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	payment, err := h.paymentUsecase.InitiatePayment(r.Context(), userID, &req)
	if err != nil {
		switch {
		case err == usecase.ErrBookingNotFound:
			response.NotFound(w, "Booking not found")
		case err == usecase.ErrNotBookingClient:
			response.Forbidden(w, "Only the booking client can pay for it")
		case err == usecase.ErrBookingNotPayable:
			response.Error(w, http.StatusConflict, "Booking is not in a payable state", nil)
		case errors.Is(err, mpesa.ErrStkPushRejected):
			response.Error(w, http.StatusBadGateway, "Payment provider rejected the request", nil)
		case errors.Is(err, mpesa.ErrAuthFailed), errors.Is(err, mpesa.ErrInternal):
			response.Error(w, http.StatusBadGateway, "Payment provider unavailable", nil)
		default:
			response.InternalServerError(w, "Failed to initiate payment")
		}
		return
	}

	response.Success(w, http.StatusCreated, "Payment initiated, check your phone", payment)
}

// HandleCallback receives the asynchronous M-Pesa result. It always
// acknowledges with 200 so Daraja stops retrying.
func (h *PaymentHandler) HandleCallback(w http.ResponseWriter, r *http.Request) {
	var req dto.MpesaCallbackRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid callback body", nil)
		return
	}

	if err := h.paymentUsecase.HandleCallback(r.Context(), &req); err != nil {
		response.InternalServerError(w, "Failed to process callback")
		return
	}

	response.JSON(w, http.StatusOK, map[string]interface{}{
		"ResultCode": 0,
		"ResultDesc": "Accepted",
	})
}

// GetPayment handles fetching a single payment
func (h *PaymentHandler) GetPayment(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFromRequest(r)
	if !ok {
		response.Unauthorized(w, "Invalid token")
		return
	}

	paymentID, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid payment ID", nil)
		return
	}

	payment, err := h.paymentUsecase.GetPayment(r.Context(), actor, paymentID)
	if err != nil {
		switch err {
		case usecase.ErrPaymentNotFound:
			response.NotFound(w, "Payment not found")
		case usecase.ErrNotPaymentOwner:
			response.Forbidden(w, "Payment does not belong to you")
		default:
			response.InternalServerError(w, "Failed to get payment")
		}
		return
	}

	response.Success(w, http.StatusOK, "Payment retrieved successfully", payment)
}

// ListMyPayments handles listing the caller's payments
func (h *PaymentHandler) ListMyPayments(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Invalid token")
		return
	}

	payments, err := h.paymentUsecase.ListUserPayments(r.Context(), userID)
	if err != nil {
		response.InternalServerError(w, "Failed to list payments")
		return
	}

	response.Success(w, http.StatusOK, "Payments retrieved successfully", payments)
}

// ListPayments handles the admin listing of all payments
func (h *PaymentHandler) ListPayments(w http.ResponseWriter, r *http.Request) {
	payments, err := h.paymentUsecase.ListPayments(r.Context())
	if err != nil {
		response.InternalServerError(w, "Failed to list payments")
		return
	}

	response.Success(w, http.StatusOK, "Payments retrieved successfully", payments)
}
