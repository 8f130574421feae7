package handler

import (
	"encoding/json"
	"net/http"

	"fundihub/internal/delivery/dto"
	"fundihub/internal/usecase"
	"fundihub/pkg/response"
	"fundihub/pkg/validator"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
)

type BookingHandler struct {
	bookingUsecase usecase.BookingUsecase
	validator      *validator.CustomValidator
}

func NewBookingHandler(bookingUsecase usecase.BookingUsecase, validator *validator.CustomValidator) *BookingHandler {
	return &BookingHandler{
		bookingUsecase: bookingUsecase,
		validator:      validator,
	}
}

// CreateBooking handles booking creation
// @Summary Create a booking
// @Tags Bookings
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body dto.CreateBookingRequest true "Create Booking Request"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 403 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /bookings [post]
func (h *BookingHandler) CreateBooking(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFromRequest(r)
	if !ok {
		response.Unauthorized(w, "Invalid token")
		return
	}

	var req dto.CreateBookingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	booking, err := h.bookingUsecase.CreateBooking(r.Context(), actor, &req)
	if err != nil {
		h.respondError(w, err, "Failed to create booking")
		return
	}

	response.Success(w, http.StatusCreated, "Booking created successfully", booking)
}

// GetBooking handles fetching a single booking
// @Summary Get a booking
// @Tags Bookings
// @Security BearerAuth
// @Produce json
// @Param id path string true "Booking ID"
// @Success 200 {object} response.Response
// @Failure 403 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /bookings/{id} [get]
func (h *BookingHandler) GetBooking(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFromRequest(r)
	if !ok {
		response.Unauthorized(w, "Invalid token")
		return
	}

	bookingID, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid booking ID", nil)
		return
	}

	booking, err := h.bookingUsecase.GetBooking(r.Context(), actor, bookingID)
	if err != nil {
		h.respondError(w, err, "Failed to get booking")
		return
	}

	response.Success(w, http.StatusOK, "Booking retrieved successfully", booking)
}

// ListBookings handles listing the bookings visible to the caller
// @Summary List bookings
// @Tags Bookings
// @Security BearerAuth
// @Produce json
// @Success 200 {object} response.Response
// @Router /bookings [get]
func (h *BookingHandler) ListBookings(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFromRequest(r)
	if !ok {
		response.Unauthorized(w, "Invalid token")
		return
	}

	bookings, err := h.bookingUsecase.ListBookings(r.Context(), actor)
	if err != nil {
		h.respondError(w, err, "Failed to list bookings")
		return
	}

	response.Success(w, http.StatusOK, "Bookings retrieved successfully", bookings)
}

// ConfirmBooking handles a worker accepting a pending booking
// @Summary Confirm a booking
// @Tags Bookings
// @Security BearerAuth
// @Produce json
// @Param id path string true "Booking ID"
// @Success 200 {object} response.Response
// @Failure 403 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /bookings/{id}/confirm [post]
func (h *BookingHandler) ConfirmBooking(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFromRequest(r)
	if !ok {
		response.Unauthorized(w, "Invalid token")
		return
	}

	bookingID, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid booking ID", nil)
		return
	}

	booking, err := h.bookingUsecase.ConfirmBooking(r.Context(), actor, bookingID)
	if err != nil {
		h.respondError(w, err, "Failed to confirm booking")
		return
	}

	response.Success(w, http.StatusOK, "Booking confirmed successfully", booking)
}

// UpdateBooking handles booking field updates
// @Summary Update a booking
// @Tags Bookings
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path string true "Booking ID"
// @Param request body dto.UpdateBookingRequest true "Update Booking Request"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 403 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /bookings/{id} [patch]
func (h *BookingHandler) UpdateBooking(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFromRequest(r)
	if !ok {
		response.Unauthorized(w, "Invalid token")
		return
	}

	bookingID, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid booking ID", nil)
		return
	}

	var req dto.UpdateBookingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	booking, err := h.bookingUsecase.UpdateBooking(r.Context(), actor, bookingID, &req)
	if err != nil {
		h.respondError(w, err, "Failed to update booking")
		return
	}

	response.Success(w, http.StatusOK, "Booking updated successfully", booking)
}

// CancelBooking handles cancelling a booking
// @Summary Cancel a booking
// @Tags Bookings
// @Security BearerAuth
// @Produce json
// @Param id path string true "Booking ID"
// @Success 200 {object} response.Response
// @Failure 403 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /bookings/{id}/cancel [post]
func (h *BookingHandler) CancelBooking(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFromRequest(r)
	if !ok {
		response.Unauthorized(w, "Invalid token")
		return
	}

	bookingID, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid booking ID", nil)
		return
	}

	booking, err := h.bookingUsecase.CancelBooking(r.Context(), actor, bookingID)
	if err != nil {
		h.respondError(w, err, "Failed to cancel booking")
		return
	}

	response.Success(w, http.StatusOK, "Booking cancelled successfully", booking)
}

// DeleteBooking handles admin removal of a booking record
func (h *BookingHandler) DeleteBooking(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFromRequest(r)
	if !ok {
		response.Unauthorized(w, "Invalid token")
		return
	}

	bookingID, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid booking ID", nil)
		return
	}

	if err := h.bookingUsecase.DeleteBooking(r.Context(), actor, bookingID); err != nil {
		h.respondError(w, err, "Failed to delete booking")
		return
	}

	response.Success(w, http.StatusOK, "Booking deleted successfully", nil)
}

// respondError maps booking usecase sentinels onto HTTP statuses
func (h *BookingHandler) respondError(w http.ResponseWriter, err error, fallback string) {
	switch err {
	case usecase.ErrBookingNotFound:
		response.NotFound(w, "Booking not found")
	case usecase.ErrServiceNotFound:
		response.NotFound(w, "Service not found")
	case usecase.ErrInvalidTimeWindow, usecase.ErrInvalidServiceDuration,
		usecase.ErrStartTimeInPast, usecase.ErrEmptyUpdate, usecase.ErrUnknownStatus:
		response.Error(w, http.StatusBadRequest, err.Error(), nil)
	case usecase.ErrOnlyClientsBook, usecase.ErrSelfBooking, usecase.ErrNotBookingWorker,
		usecase.ErrNotBookingParty, usecase.ErrClientFieldsRestricted,
		usecase.ErrAdminOnly, usecase.ErrUnauthorizedRole:
		response.Forbidden(w, err.Error())
	case usecase.ErrServiceInactive, usecase.ErrBookingNotPending,
		usecase.ErrBookingTerminal, usecase.ErrBookingOngoing:
		response.Conflict(w, err.Error())
	case usecase.ErrBookingConflict:
		response.Conflict(w, "Booking was modified concurrently, please retry")
	case usecase.ErrStoreUnavailable:
		response.ServiceUnavailable(w, "")
	default:
		response.InternalServerError(w, fallback)
	}
}
