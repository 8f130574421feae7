package usecase

import (
	"context"
	"errors"
	"time"

	"fundihub/internal/converter"
	"fundihub/internal/delivery/dto"
	"fundihub/internal/domain/entity"
	"fundihub/internal/domain/repository"
	"fundihub/internal/service"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

var (
	ErrBookingNotFound  = errors.New("booking not found")
	ErrServiceNotFound  = errors.New("service not found")
	ErrServiceInactive  = errors.New("service is not active")
	ErrStartTimeInPast  = errors.New("start time cannot be in the past")
	ErrEmptyUpdate      = errors.New("no fields to update")
	ErrBookingOngoing   = errors.New("an ongoing booking cannot be cancelled")
	ErrBookingConflict  = errors.New("booking was modified concurrently")
	ErrStoreUnavailable = errors.New("record store unavailable")
	ErrAdminOnly        = errors.New("admin privileges required")
	ErrUnknownStatus    = errors.New("unknown booking status")
	ErrUnauthorizedRole = errors.New("unauthorized role")
)

// SweepResult aggregates the outcome of one lifecycle sweep
type SweepResult struct {
	Evaluated int
	Advanced  int
	Skipped   int
	Failed    int
}

type BookingUsecase interface {
	CreateBooking(ctx context.Context, actor Actor, req *dto.CreateBookingRequest) (*dto.BookingResponse, error)
	GetBooking(ctx context.Context, actor Actor, bookingID uuid.UUID) (*dto.BookingResponse, error)
	ListBookings(ctx context.Context, actor Actor) (*dto.BookingListResponse, error)
	ConfirmBooking(ctx context.Context, actor Actor, bookingID uuid.UUID) (*dto.BookingResponse, error)
	UpdateBooking(ctx context.Context, actor Actor, bookingID uuid.UUID, req *dto.UpdateBookingRequest) (*dto.BookingResponse, error)
	CancelBooking(ctx context.Context, actor Actor, bookingID uuid.UUID) (*dto.BookingResponse, error)
	DeleteBooking(ctx context.Context, actor Actor, bookingID uuid.UUID) error
	SweepTick(ctx context.Context, now time.Time) (*SweepResult, error)
}

type bookingUsecase struct {
	db          *gorm.DB
	log         *logrus.Logger
	bookingRepo repository.BookingRepository
	serviceRepo repository.ServiceRepository
	events      service.BookingEvents
	audit       service.AuditService
	opTimeout   time.Duration
}

func NewBookingUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	bookingRepo repository.BookingRepository,
	serviceRepo repository.ServiceRepository,
	events service.BookingEvents,
	audit service.AuditService,
	opTimeout time.Duration,
) BookingUsecase {
	if opTimeout <= 0 {
		opTimeout = 5 * time.Second
	}
	return &bookingUsecase{
		db:          db,
		log:         log,
		bookingRepo: bookingRepo,
		serviceRepo: serviceRepo,
		events:      events,
		audit:       audit,
		opTimeout:   opTimeout,
	}
}

// CreateBooking creates a pending booking for the actor against an active
// service. The worker identity is copied from the service so later service
// edits cannot rewrite who the booking belongs to, and the charge is derived
// through the rate engine, never taken from the request.
func (u *bookingUsecase) CreateBooking(ctx context.Context, actor Actor, req *dto.CreateBookingRequest) (*dto.BookingResponse, error) {
	if !req.EndTime.After(req.StartTime) {
		return nil, ErrInvalidTimeWindow
	}
	if req.StartTime.Before(time.Now()) {
		return nil, ErrStartTimeInPast
	}

	svc, err := u.findService(ctx, req.ServiceID)
	if err != nil {
		return nil, err
	}
	if svc == nil {
		return nil, ErrServiceNotFound
	}

	if err := CanCreateBooking(actor, svc); err != nil {
		return nil, err
	}
	if !svc.IsActive() {
		return nil, ErrServiceInactive
	}

	amount, err := ComputeAmount(svc, req.StartTime, req.EndTime)
	if err != nil {
		return nil, err
	}

	booking := &entity.Booking{
		ServiceID:   svc.ID,
		ClientID:    actor.ID,
		WorkerID:    svc.WorkerID,
		StartTime:   req.StartTime,
		EndTime:     req.EndTime,
		Status:      entity.BookingStatusPending,
		TotalAmount: amount,
		Version:     1,
	}

	sctx, cancel := u.opCtx(ctx)
	defer cancel()
	if err := u.bookingRepo.Create(u.db.WithContext(sctx), booking); err != nil {
		u.log.Warnf("Failed to create booking: %+v", err)
		return nil, u.storeErr(err)
	}

	u.events.BookingCreated(ctx, booking)

	u.log.Infof("Booking created: id=%s, service=%s, client=%s, amount=%s",
		booking.ID, booking.ServiceID, booking.ClientID, booking.TotalAmount)
	return converter.BookingToResponse(booking), nil
}

func (u *bookingUsecase) GetBooking(ctx context.Context, actor Actor, bookingID uuid.UUID) (*dto.BookingResponse, error) {
	booking, err := u.findBooking(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if booking == nil {
		return nil, ErrBookingNotFound
	}

	if actor.Role != entity.RoleAdmin && !booking.IsParty(actor.ID) {
		return nil, ErrNotBookingParty
	}

	return converter.BookingToResponse(booking), nil
}

// ListBookings returns bookings scoped by the actor's role: admins see all,
// clients and workers see only their side.
func (u *bookingUsecase) ListBookings(ctx context.Context, actor Actor) (*dto.BookingListResponse, error) {
	sctx, cancel := u.opCtx(ctx)
	defer cancel()
	db := u.db.WithContext(sctx)

	var bookings []entity.Booking
	var err error
	switch actor.Role {
	case entity.RoleAdmin:
		bookings, err = u.bookingRepo.FindAll(db)
	case entity.RoleClient:
		bookings, err = u.bookingRepo.FindByClientID(db, actor.ID)
	case entity.RoleWorker:
		bookings, err = u.bookingRepo.FindByWorkerID(db, actor.ID)
	default:
		return nil, ErrUnauthorizedRole
	}
	if err != nil {
		u.log.Warnf("Failed to list bookings for %s: %+v", actor.ID, err)
		return nil, u.storeErr(err)
	}

	return &dto.BookingListResponse{
		Bookings: converter.BookingsToResponses(bookings),
		Total:    len(bookings),
	}, nil
}

// ConfirmBooking transitions pending -> confirmed on behalf of the assigned
// worker. The write is conditional on the version observed at read time and
// retried once, so a race with the sweeper or another request surfaces as a
// conflict instead of an impossible state.
func (u *bookingUsecase) ConfirmBooking(ctx context.Context, actor Actor, bookingID uuid.UUID) (*dto.BookingResponse, error) {
	for attempt := 0; attempt < 2; attempt++ {
		booking, err := u.findBooking(ctx, bookingID)
		if err != nil {
			return nil, err
		}
		if booking == nil {
			return nil, ErrBookingNotFound
		}

		if err := CanConfirmBooking(actor, booking); err != nil {
			return nil, err
		}
		if !booking.IsPending() {
			return nil, ErrBookingNotPending
		}

		applied, err := u.transition(ctx, booking, entity.BookingStatusConfirmed, nil)
		if err != nil {
			return nil, err
		}
		if applied {
			booking.Status = entity.BookingStatusConfirmed
			u.log.Infof("Booking confirmed: id=%s, worker=%s", booking.ID, actor.ID)
			return converter.BookingToResponse(booking), nil
		}
	}
	return nil, ErrBookingConflict
}

// UpdateBooking reschedules a booking. Clients may move the time window of a
// pending booking; admins may additionally swap the service or force a
// status. The change applies atomically: either every proposed field lands
// in one conditional write or nothing does.
func (u *bookingUsecase) UpdateBooking(ctx context.Context, actor Actor, bookingID uuid.UUID, req *dto.UpdateBookingRequest) (*dto.BookingResponse, error) {
	change, err := toBookingChange(req)
	if err != nil {
		return nil, err
	}
	if change.Empty() {
		return nil, ErrEmptyUpdate
	}

	for attempt := 0; attempt < 2; attempt++ {
		booking, err := u.findBooking(ctx, bookingID)
		if err != nil {
			return nil, err
		}
		if booking == nil {
			return nil, ErrBookingNotFound
		}

		if err := CanUpdateBooking(actor, booking, change); err != nil {
			return nil, err
		}
		if booking.IsTerminal() {
			return nil, ErrBookingTerminal
		}

		changes, fromStatus, toStatus, err := u.buildChanges(ctx, booking, change)
		if err != nil {
			return nil, err
		}

		applied, err := u.applyChanges(ctx, booking, changes)
		if err != nil {
			return nil, err
		}
		if applied {
			if toStatus != fromStatus {
				u.events.BookingStatusChanged(ctx, booking, fromStatus, toStatus)
				if actor.Role == entity.RoleAdmin {
					if err := u.audit.RecordAction(ctx, nil, actor.ID, entity.AdminActionForceStatus, booking.ID, entity.JSON{
						"from_status": string(fromStatus),
						"to_status":   string(toStatus),
					}); err != nil {
						u.log.Warnf("Failed to audit status force on booking %s: %+v", booking.ID, err)
					}
				}
			}
			updated, err := u.findBooking(ctx, bookingID)
			if err != nil || updated == nil {
				// Write succeeded; fall back to the pre-image rather than failing the call.
				u.log.Warnf("Failed to reload booking %s after update: %+v", bookingID, err)
				return converter.BookingToResponse(booking), nil
			}
			u.log.Infof("Booking updated: id=%s, actor=%s", bookingID, actor.ID)
			return converter.BookingToResponse(updated), nil
		}
	}
	return nil, ErrBookingConflict
}

// CancelBooking marks the booking cancelled. Cancellation is a terminal
// status, not a removal: the record stays behind for history and disputes.
func (u *bookingUsecase) CancelBooking(ctx context.Context, actor Actor, bookingID uuid.UUID) (*dto.BookingResponse, error) {
	for attempt := 0; attempt < 2; attempt++ {
		booking, err := u.findBooking(ctx, bookingID)
		if err != nil {
			return nil, err
		}
		if booking == nil {
			return nil, ErrBookingNotFound
		}

		if err := CanCancelBooking(actor, booking); err != nil {
			return nil, err
		}
		if booking.IsTerminal() {
			return nil, ErrBookingTerminal
		}
		if booking.Status == entity.BookingStatusOngoing {
			return nil, ErrBookingOngoing
		}

		applied, err := u.transition(ctx, booking, entity.BookingStatusCancelled, nil)
		if err != nil {
			return nil, err
		}
		if applied {
			if actor.Role == entity.RoleAdmin {
				if err := u.audit.RecordAction(ctx, nil, actor.ID, entity.AdminActionCancelBooking, booking.ID, entity.JSON{
					"from_status": string(booking.Status),
				}); err != nil {
					u.log.Warnf("Failed to audit admin cancellation of booking %s: %+v", booking.ID, err)
				}
			}
			booking.Status = entity.BookingStatusCancelled
			u.log.Infof("Booking cancelled: id=%s, actor=%s", booking.ID, actor.ID)
			return converter.BookingToResponse(booking), nil
		}
	}
	return nil, ErrBookingConflict
}

// DeleteBooking hard-deletes a booking. Admin-only and audited; everything
// else goes through cancellation.
func (u *bookingUsecase) DeleteBooking(ctx context.Context, actor Actor, bookingID uuid.UUID) error {
	if actor.Role != entity.RoleAdmin {
		return ErrAdminOnly
	}

	booking, err := u.findBooking(ctx, bookingID)
	if err != nil {
		return err
	}
	if booking == nil {
		return ErrBookingNotFound
	}

	sctx, cancel := u.opCtx(ctx)
	defer cancel()
	if err := u.bookingRepo.Delete(u.db.WithContext(sctx), bookingID); err != nil {
		u.log.Warnf("Failed to delete booking %s: %+v", bookingID, err)
		return u.storeErr(err)
	}

	if err := u.audit.RecordAction(ctx, nil, actor.ID, entity.AdminActionDeleteBooking, bookingID, entity.JSON{
		"status": string(booking.Status),
	}); err != nil {
		u.log.Warnf("Failed to audit deletion of booking %s: %+v", bookingID, err)
	}

	u.log.Infof("Booking deleted: id=%s, admin=%s", bookingID, actor.ID)
	return nil
}

// SweepTick advances every in-flight booking whose window boundary has
// passed. It runs without an actor and only ever performs the clock-driven
// transitions; each record is advanced with its own conditional write, so a
// request racing the sweep on one booking never blocks the rest of the sweep.
func (u *bookingUsecase) SweepTick(ctx context.Context, now time.Time) (*SweepResult, error) {
	sctx, cancel := u.opCtx(ctx)
	bookings, err := u.bookingRepo.FindByStatuses(u.db.WithContext(sctx), []entity.BookingStatus{
		entity.BookingStatusConfirmed,
		entity.BookingStatusOngoing,
	})
	cancel()
	if err != nil {
		u.log.Warnf("Sweep failed to load in-flight bookings: %+v", err)
		return nil, u.storeErr(err)
	}

	result := &SweepResult{Evaluated: len(bookings)}
	for i := range bookings {
		booking := &bookings[i]
		target, due := booking.TimeDrivenStatus(now)
		if !due {
			continue
		}

		octx, ocancel := u.opCtx(ctx)
		rows, err := u.bookingRepo.UpdateFieldsIfVersion(u.db.WithContext(octx), booking.ID, booking.Version, map[string]interface{}{
			"status": target,
		})
		ocancel()
		if err != nil {
			u.log.Warnf("Sweep failed to advance booking %s to %s: %+v", booking.ID, target, err)
			result.Failed++
			continue
		}
		if rows == 0 {
			// A request-driven mutation won the race; its outcome stands.
			result.Skipped++
			continue
		}

		u.events.BookingStatusChanged(ctx, booking, booking.Status, target)
		result.Advanced++
	}

	return result, nil
}

// transition applies a single status change guarded by the booking's version.
// Returns false when the conditional write lost to a concurrent mutation.
func (u *bookingUsecase) transition(ctx context.Context, booking *entity.Booking, to entity.BookingStatus, extra map[string]interface{}) (bool, error) {
	changes := map[string]interface{}{"status": to}
	for k, v := range extra {
		changes[k] = v
	}

	applied, err := u.applyChanges(ctx, booking, changes)
	if err != nil {
		return false, err
	}
	if applied {
		u.events.BookingStatusChanged(ctx, booking, booking.Status, to)
	}
	return applied, nil
}

func (u *bookingUsecase) applyChanges(ctx context.Context, booking *entity.Booking, changes map[string]interface{}) (bool, error) {
	sctx, cancel := u.opCtx(ctx)
	defer cancel()
	rows, err := u.bookingRepo.UpdateFieldsIfVersion(u.db.WithContext(sctx), booking.ID, booking.Version, changes)
	if err != nil {
		u.log.Warnf("Failed to update booking %s: %+v", booking.ID, err)
		return false, u.storeErr(err)
	}
	return rows == 1, nil
}

// buildChanges resolves the proposed change against the current booking:
// effective window, possibly re-derived worker, and a freshly computed amount
// whenever the window or the service moved.
func (u *bookingUsecase) buildChanges(ctx context.Context, booking *entity.Booking, change *BookingChange) (map[string]interface{}, entity.BookingStatus, entity.BookingStatus, error) {
	changes := make(map[string]interface{})
	fromStatus := booking.Status
	toStatus := booking.Status

	effStart := booking.StartTime
	effEnd := booking.EndTime
	if change.StartTime != nil {
		effStart = *change.StartTime
	}
	if change.EndTime != nil {
		effEnd = *change.EndTime
	}
	timesChanged := change.StartTime != nil || change.EndTime != nil
	if timesChanged && !effEnd.After(effStart) {
		return nil, fromStatus, toStatus, ErrInvalidTimeWindow
	}

	serviceChanged := change.ServiceID != nil && *change.ServiceID != booking.ServiceID

	var svc *entity.Service
	if serviceChanged {
		loaded, err := u.findService(ctx, *change.ServiceID)
		if err != nil {
			return nil, fromStatus, toStatus, err
		}
		if loaded == nil {
			return nil, fromStatus, toStatus, ErrServiceNotFound
		}
		if !loaded.IsActive() {
			return nil, fromStatus, toStatus, ErrServiceInactive
		}
		svc = loaded
		changes["service_id"] = svc.ID
		changes["worker_id"] = svc.WorkerID
	} else if timesChanged {
		loaded, err := u.findService(ctx, booking.ServiceID)
		if err != nil {
			return nil, fromStatus, toStatus, err
		}
		if loaded == nil {
			return nil, fromStatus, toStatus, ErrServiceNotFound
		}
		svc = loaded
	}

	if timesChanged {
		changes["start_time"] = effStart
		changes["end_time"] = effEnd
	}
	if serviceChanged || timesChanged {
		amount, err := ComputeAmount(svc, effStart, effEnd)
		if err != nil {
			return nil, fromStatus, toStatus, err
		}
		changes["total_amount"] = amount
	}

	if change.Status != nil && *change.Status != booking.Status {
		changes["status"] = *change.Status
		toStatus = *change.Status
	}

	return changes, fromStatus, toStatus, nil
}

func (u *bookingUsecase) findBooking(ctx context.Context, id uuid.UUID) (*entity.Booking, error) {
	sctx, cancel := u.opCtx(ctx)
	defer cancel()
	booking, err := u.bookingRepo.FindByID(u.db.WithContext(sctx), id)
	if err != nil {
		u.log.Warnf("Failed to find booking %s: %+v", id, err)
		return nil, u.storeErr(err)
	}
	return booking, nil
}

func (u *bookingUsecase) findService(ctx context.Context, id uuid.UUID) (*entity.Service, error) {
	sctx, cancel := u.opCtx(ctx)
	defer cancel()
	svc, err := u.serviceRepo.FindByID(u.db.WithContext(sctx), id)
	if err != nil {
		u.log.Warnf("Failed to find service %s: %+v", id, err)
		return nil, u.storeErr(err)
	}
	return svc, nil
}

func (u *bookingUsecase) opCtx(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, u.opTimeout)
}

// storeErr maps record-store timeouts to the unavailable sentinel so callers
// can distinguish a retryable outage from a hard failure.
func (u *bookingUsecase) storeErr(err error) error {
	if errors.Is(err, context.DeadlineExceeded) {
		return ErrStoreUnavailable
	}
	return err
}

func toBookingChange(req *dto.UpdateBookingRequest) (*BookingChange, error) {
	change := &BookingChange{
		ServiceID: req.ServiceID,
		StartTime: req.StartTime,
		EndTime:   req.EndTime,
	}
	if req.Status != nil {
		status := entity.BookingStatus(*req.Status)
		switch status {
		case entity.BookingStatusPending, entity.BookingStatusConfirmed, entity.BookingStatusOngoing,
			entity.BookingStatusCompleted, entity.BookingStatusCancelled:
			change.Status = &status
		default:
			return nil, ErrUnknownStatus
		}
	}
	return change, nil
}
