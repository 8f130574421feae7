package usecase

import (
	"context"
	"io"
	"testing"
	"time"

	"fundihub/internal/delivery/dto"
	"fundihub/internal/domain/entity"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// newTestDB returns a gorm handle over sqlmock. The fakes below never issue
// SQL through it; the handle only carries the per-operation context.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	conn, _, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })

	db, err := gorm.Open(postgres.New(postgres.Config{
		Conn:                 conn,
		PreferSimpleProtocol: true,
	}), &gorm.Config{SkipDefaultTransaction: true})
	require.NoError(t, err)
	return db
}

func newTestLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

type fakeBookingRepo struct {
	bookings map[uuid.UUID]*entity.Booking

	// alwaysConflict makes every conditional write miss, as if a concurrent
	// writer bumps the version between read and write on each attempt.
	alwaysConflict bool
	findErr        error
}

func newFakeBookingRepo(bookings ...*entity.Booking) *fakeBookingRepo {
	repo := &fakeBookingRepo{bookings: make(map[uuid.UUID]*entity.Booking)}
	for _, b := range bookings {
		if b.ID == uuid.Nil {
			b.ID = uuid.New()
		}
		repo.bookings[b.ID] = b
	}
	return repo
}

func (r *fakeBookingRepo) Create(db *gorm.DB, booking *entity.Booking) error {
	if booking.ID == uuid.Nil {
		booking.ID = uuid.New()
	}
	copied := *booking
	r.bookings[booking.ID] = &copied
	return nil
}

func (r *fakeBookingRepo) FindByID(db *gorm.DB, id uuid.UUID) (*entity.Booking, error) {
	if r.findErr != nil {
		return nil, r.findErr
	}
	booking, ok := r.bookings[id]
	if !ok {
		return nil, nil
	}
	copied := *booking
	return &copied, nil
}

func (r *fakeBookingRepo) FindAll(db *gorm.DB) ([]entity.Booking, error) {
	var out []entity.Booking
	for _, b := range r.bookings {
		out = append(out, *b)
	}
	return out, nil
}

func (r *fakeBookingRepo) FindByClientID(db *gorm.DB, clientID uuid.UUID) ([]entity.Booking, error) {
	var out []entity.Booking
	for _, b := range r.bookings {
		if b.ClientID == clientID {
			out = append(out, *b)
		}
	}
	return out, nil
}

func (r *fakeBookingRepo) FindByWorkerID(db *gorm.DB, workerID uuid.UUID) ([]entity.Booking, error) {
	var out []entity.Booking
	for _, b := range r.bookings {
		if b.WorkerID == workerID {
			out = append(out, *b)
		}
	}
	return out, nil
}

func (r *fakeBookingRepo) FindByServiceID(db *gorm.DB, serviceID uuid.UUID) ([]entity.Booking, error) {
	var out []entity.Booking
	for _, b := range r.bookings {
		if b.ServiceID == serviceID {
			out = append(out, *b)
		}
	}
	return out, nil
}

func (r *fakeBookingRepo) FindByStatuses(db *gorm.DB, statuses []entity.BookingStatus) ([]entity.Booking, error) {
	var out []entity.Booking
	for _, b := range r.bookings {
		for _, s := range statuses {
			if b.Status == s {
				out = append(out, *b)
				break
			}
		}
	}
	return out, nil
}

func (r *fakeBookingRepo) FindRecent(db *gorm.DB, limit int) ([]entity.Booking, error) {
	return r.FindAll(db)
}

func (r *fakeBookingRepo) UpdateFieldsIfVersion(db *gorm.DB, id uuid.UUID, expectedVersion int64, changes map[string]interface{}) (int64, error) {
	if r.alwaysConflict {
		return 0, nil
	}
	booking, ok := r.bookings[id]
	if !ok || booking.Version != expectedVersion {
		return 0, nil
	}
	for field, value := range changes {
		switch field {
		case "status":
			booking.Status = value.(entity.BookingStatus)
		case "start_time":
			booking.StartTime = value.(time.Time)
		case "end_time":
			booking.EndTime = value.(time.Time)
		case "total_amount":
			booking.TotalAmount = value.(decimal.Decimal)
		case "service_id":
			booking.ServiceID = value.(uuid.UUID)
		case "worker_id":
			booking.WorkerID = value.(uuid.UUID)
		}
	}
	booking.Version++
	return 1, nil
}

func (r *fakeBookingRepo) Delete(db *gorm.DB, id uuid.UUID) error {
	delete(r.bookings, id)
	return nil
}

func (r *fakeBookingRepo) Count(db *gorm.DB) (int64, error) {
	return int64(len(r.bookings)), nil
}

func (r *fakeBookingRepo) CountByStatus(db *gorm.DB) (map[entity.BookingStatus]int64, error) {
	counts := make(map[entity.BookingStatus]int64)
	for _, b := range r.bookings {
		counts[b.Status]++
	}
	return counts, nil
}

type fakeServiceRepo struct {
	services map[uuid.UUID]*entity.Service
}

func newFakeServiceRepo(services ...*entity.Service) *fakeServiceRepo {
	repo := &fakeServiceRepo{services: make(map[uuid.UUID]*entity.Service)}
	for _, s := range services {
		if s.ID == uuid.Nil {
			s.ID = uuid.New()
		}
		repo.services[s.ID] = s
	}
	return repo
}

func (r *fakeServiceRepo) Create(db *gorm.DB, service *entity.Service) error {
	if service.ID == uuid.Nil {
		service.ID = uuid.New()
	}
	r.services[service.ID] = service
	return nil
}

func (r *fakeServiceRepo) FindByID(db *gorm.DB, id uuid.UUID) (*entity.Service, error) {
	svc, ok := r.services[id]
	if !ok {
		return nil, nil
	}
	copied := *svc
	return &copied, nil
}

func (r *fakeServiceRepo) FindAll(db *gorm.DB, category string, status entity.ServiceStatus) ([]entity.Service, error) {
	var out []entity.Service
	for _, s := range r.services {
		out = append(out, *s)
	}
	return out, nil
}

func (r *fakeServiceRepo) FindByWorkerID(db *gorm.DB, workerID uuid.UUID) ([]entity.Service, error) {
	var out []entity.Service
	for _, s := range r.services {
		if s.WorkerID == workerID {
			out = append(out, *s)
		}
	}
	return out, nil
}

func (r *fakeServiceRepo) Update(db *gorm.DB, service *entity.Service) error {
	r.services[service.ID] = service
	return nil
}

func (r *fakeServiceRepo) Delete(db *gorm.DB, id uuid.UUID) error {
	delete(r.services, id)
	return nil
}

func (r *fakeServiceRepo) CountByStatus(db *gorm.DB, status entity.ServiceStatus) (int64, error) {
	var n int64
	for _, s := range r.services {
		if s.Status == status {
			n++
		}
	}
	return n, nil
}

type statusChange struct {
	bookingID uuid.UUID
	from      entity.BookingStatus
	to        entity.BookingStatus
}

type recordingEvents struct {
	created []uuid.UUID
	changes []statusChange
}

func (e *recordingEvents) BookingCreated(ctx context.Context, booking *entity.Booking) {
	e.created = append(e.created, booking.ID)
}

func (e *recordingEvents) BookingStatusChanged(ctx context.Context, booking *entity.Booking, from, to entity.BookingStatus) {
	e.changes = append(e.changes, statusChange{bookingID: booking.ID, from: from, to: to})
}

type recordedAction struct {
	adminID    uuid.UUID
	actionType entity.AdminActionType
	targetID   uuid.UUID
}

type recordingAudit struct {
	actions []recordedAction
}

func (a *recordingAudit) RecordAction(ctx context.Context, tx *gorm.DB, adminID uuid.UUID, actionType entity.AdminActionType, targetID uuid.UUID, details entity.JSON) error {
	a.actions = append(a.actions, recordedAction{adminID: adminID, actionType: actionType, targetID: targetID})
	return nil
}

type bookingFixture struct {
	usecase     BookingUsecase
	bookingRepo *fakeBookingRepo
	serviceRepo *fakeServiceRepo
	events      *recordingEvents
	audit       *recordingAudit
}

func newBookingFixture(t *testing.T, bookings []*entity.Booking, services []*entity.Service) *bookingFixture {
	t.Helper()
	f := &bookingFixture{
		bookingRepo: newFakeBookingRepo(bookings...),
		serviceRepo: newFakeServiceRepo(services...),
		events:      &recordingEvents{},
		audit:       &recordingAudit{},
	}
	f.usecase = NewBookingUsecase(newTestDB(t), newTestLogger(), f.bookingRepo, f.serviceRepo, f.events, f.audit, time.Second)
	return f
}

func activeService(workerID uuid.UUID) *entity.Service {
	return &entity.Service{
		ID:              uuid.New(),
		WorkerID:        workerID,
		Title:           "Kitchen sink repair",
		Category:        "plumbing",
		Price:           decimal.NewFromInt(6000),
		DurationMinutes: 60,
		Status:          entity.ServiceStatusActive,
	}
}

func TestCreateBooking(t *testing.T) {
	workerID := uuid.New()
	clientID := uuid.New()
	svc := activeService(workerID)
	start := time.Now().Add(24 * time.Hour).Truncate(time.Minute)

	t.Run("derives amount and starts pending at version 1", func(t *testing.T) {
		f := newBookingFixture(t, nil, []*entity.Service{svc})

		resp, err := f.usecase.CreateBooking(context.Background(), Actor{ID: clientID, Role: entity.RoleClient}, &dto.CreateBookingRequest{
			ServiceID: svc.ID,
			StartTime: start,
			EndTime:   start.Add(30 * time.Minute),
		})
		require.NoError(t, err)

		assert.Equal(t, string(entity.BookingStatusPending), resp.Status)
		assert.Equal(t, clientID, resp.ClientID)
		assert.Equal(t, workerID, resp.WorkerID)
		assert.True(t, resp.TotalAmount.Equal(decimal.NewFromInt(3000)), "got %s", resp.TotalAmount)

		stored := f.bookingRepo.bookings[resp.ID]
		require.NotNil(t, stored)
		assert.Equal(t, int64(1), stored.Version)
		assert.Equal(t, []uuid.UUID{resp.ID}, f.events.created)
	})

	t.Run("rejects unknown service", func(t *testing.T) {
		f := newBookingFixture(t, nil, nil)
		_, err := f.usecase.CreateBooking(context.Background(), Actor{ID: clientID, Role: entity.RoleClient}, &dto.CreateBookingRequest{
			ServiceID: uuid.New(),
			StartTime: start,
			EndTime:   start.Add(time.Hour),
		})
		assert.ErrorIs(t, err, ErrServiceNotFound)
	})

	t.Run("rejects inactive service", func(t *testing.T) {
		draft := activeService(workerID)
		draft.Status = entity.ServiceStatusDraft
		f := newBookingFixture(t, nil, []*entity.Service{draft})

		_, err := f.usecase.CreateBooking(context.Background(), Actor{ID: clientID, Role: entity.RoleClient}, &dto.CreateBookingRequest{
			ServiceID: draft.ID,
			StartTime: start,
			EndTime:   start.Add(time.Hour),
		})
		assert.ErrorIs(t, err, ErrServiceInactive)
	})

	t.Run("rejects booking own service", func(t *testing.T) {
		f := newBookingFixture(t, nil, []*entity.Service{svc})
		_, err := f.usecase.CreateBooking(context.Background(), Actor{ID: workerID, Role: entity.RoleClient}, &dto.CreateBookingRequest{
			ServiceID: svc.ID,
			StartTime: start,
			EndTime:   start.Add(time.Hour),
		})
		assert.ErrorIs(t, err, ErrSelfBooking)
	})

	t.Run("rejects start time in the past", func(t *testing.T) {
		f := newBookingFixture(t, nil, []*entity.Service{svc})
		past := time.Now().Add(-time.Hour)
		_, err := f.usecase.CreateBooking(context.Background(), Actor{ID: clientID, Role: entity.RoleClient}, &dto.CreateBookingRequest{
			ServiceID: svc.ID,
			StartTime: past,
			EndTime:   past.Add(time.Hour),
		})
		assert.ErrorIs(t, err, ErrStartTimeInPast)
	})

	t.Run("rejects inverted window", func(t *testing.T) {
		f := newBookingFixture(t, nil, []*entity.Service{svc})
		_, err := f.usecase.CreateBooking(context.Background(), Actor{ID: clientID, Role: entity.RoleClient}, &dto.CreateBookingRequest{
			ServiceID: svc.ID,
			StartTime: start,
			EndTime:   start,
		})
		assert.ErrorIs(t, err, ErrInvalidTimeWindow)
	})
}

func TestConfirmBooking(t *testing.T) {
	workerID := uuid.New()
	clientID := uuid.New()
	start := time.Now().Add(24 * time.Hour)

	pending := func() *entity.Booking {
		return &entity.Booking{
			ID:          uuid.New(),
			ServiceID:   uuid.New(),
			ClientID:    clientID,
			WorkerID:    workerID,
			StartTime:   start,
			EndTime:     start.Add(time.Hour),
			Status:      entity.BookingStatusPending,
			TotalAmount: decimal.NewFromInt(6000),
			Version:     1,
		}
	}

	t.Run("assigned worker confirms and version advances", func(t *testing.T) {
		booking := pending()
		f := newBookingFixture(t, []*entity.Booking{booking}, nil)

		resp, err := f.usecase.ConfirmBooking(context.Background(), Actor{ID: workerID, Role: entity.RoleWorker}, booking.ID)
		require.NoError(t, err)
		assert.Equal(t, string(entity.BookingStatusConfirmed), resp.Status)

		stored := f.bookingRepo.bookings[booking.ID]
		assert.Equal(t, entity.BookingStatusConfirmed, stored.Status)
		assert.Equal(t, int64(2), stored.Version)

		require.Len(t, f.events.changes, 1)
		assert.Equal(t, entity.BookingStatusPending, f.events.changes[0].from)
		assert.Equal(t, entity.BookingStatusConfirmed, f.events.changes[0].to)
	})

	t.Run("other worker is refused", func(t *testing.T) {
		booking := pending()
		f := newBookingFixture(t, []*entity.Booking{booking}, nil)

		_, err := f.usecase.ConfirmBooking(context.Background(), Actor{ID: uuid.New(), Role: entity.RoleWorker}, booking.ID)
		assert.ErrorIs(t, err, ErrNotBookingWorker)
		assert.Equal(t, entity.BookingStatusPending, f.bookingRepo.bookings[booking.ID].Status)
	})

	t.Run("confirming twice fails on status guard", func(t *testing.T) {
		booking := pending()
		f := newBookingFixture(t, []*entity.Booking{booking}, nil)

		_, err := f.usecase.ConfirmBooking(context.Background(), Actor{ID: workerID, Role: entity.RoleWorker}, booking.ID)
		require.NoError(t, err)
		_, err = f.usecase.ConfirmBooking(context.Background(), Actor{ID: workerID, Role: entity.RoleWorker}, booking.ID)
		assert.ErrorIs(t, err, ErrBookingNotPending)
	})

	t.Run("persistent version race surfaces as conflict", func(t *testing.T) {
		booking := pending()
		f := newBookingFixture(t, []*entity.Booking{booking}, nil)
		f.bookingRepo.alwaysConflict = true

		_, err := f.usecase.ConfirmBooking(context.Background(), Actor{ID: workerID, Role: entity.RoleWorker}, booking.ID)
		assert.ErrorIs(t, err, ErrBookingConflict)
	})

	t.Run("unknown booking", func(t *testing.T) {
		f := newBookingFixture(t, nil, nil)
		_, err := f.usecase.ConfirmBooking(context.Background(), Actor{ID: workerID, Role: entity.RoleWorker}, uuid.New())
		assert.ErrorIs(t, err, ErrBookingNotFound)
	})
}

func TestUpdateBooking(t *testing.T) {
	workerID := uuid.New()
	clientID := uuid.New()
	svc := activeService(workerID)
	start := time.Now().Add(24 * time.Hour).Truncate(time.Minute)

	pending := func() *entity.Booking {
		return &entity.Booking{
			ID:          uuid.New(),
			ServiceID:   svc.ID,
			ClientID:    clientID,
			WorkerID:    workerID,
			StartTime:   start,
			EndTime:     start.Add(30 * time.Minute),
			Status:      entity.BookingStatusPending,
			TotalAmount: decimal.NewFromInt(3000),
			Version:     1,
		}
	}

	t.Run("moving the window recomputes the amount", func(t *testing.T) {
		booking := pending()
		f := newBookingFixture(t, []*entity.Booking{booking}, []*entity.Service{svc})

		newEnd := start.Add(60 * time.Minute)
		resp, err := f.usecase.UpdateBooking(context.Background(), Actor{ID: clientID, Role: entity.RoleClient}, booking.ID, &dto.UpdateBookingRequest{
			EndTime: &newEnd,
		})
		require.NoError(t, err)

		assert.True(t, resp.TotalAmount.Equal(decimal.NewFromInt(6000)), "got %s", resp.TotalAmount)
		assert.Equal(t, newEnd, resp.EndTime)
		assert.Equal(t, int64(2), f.bookingRepo.bookings[booking.ID].Version)
	})

	t.Run("admin swapping the service re-derives the worker", func(t *testing.T) {
		booking := pending()
		otherWorker := uuid.New()
		otherSvc := activeService(otherWorker)
		otherSvc.Price = decimal.NewFromInt(1200)
		f := newBookingFixture(t, []*entity.Booking{booking}, []*entity.Service{svc, otherSvc})

		resp, err := f.usecase.UpdateBooking(context.Background(), Actor{ID: uuid.New(), Role: entity.RoleAdmin}, booking.ID, &dto.UpdateBookingRequest{
			ServiceID: &otherSvc.ID,
		})
		require.NoError(t, err)

		assert.Equal(t, otherSvc.ID, resp.ServiceID)
		assert.Equal(t, otherWorker, resp.WorkerID)
		// 30 minutes against a 1200/60min rate
		assert.True(t, resp.TotalAmount.Equal(decimal.NewFromInt(600)), "got %s", resp.TotalAmount)
	})

	t.Run("client proposing a status change is rejected whole", func(t *testing.T) {
		booking := pending()
		f := newBookingFixture(t, []*entity.Booking{booking}, []*entity.Service{svc})

		status := "confirmed"
		newEnd := start.Add(45 * time.Minute)
		_, err := f.usecase.UpdateBooking(context.Background(), Actor{ID: clientID, Role: entity.RoleClient}, booking.ID, &dto.UpdateBookingRequest{
			EndTime: &newEnd,
			Status:  &status,
		})
		assert.ErrorIs(t, err, ErrClientFieldsRestricted)

		stored := f.bookingRepo.bookings[booking.ID]
		assert.Equal(t, booking.EndTime, stored.EndTime)
		assert.Equal(t, int64(1), stored.Version)
	})

	t.Run("empty change set", func(t *testing.T) {
		booking := pending()
		f := newBookingFixture(t, []*entity.Booking{booking}, []*entity.Service{svc})

		_, err := f.usecase.UpdateBooking(context.Background(), Actor{ID: clientID, Role: entity.RoleClient}, booking.ID, &dto.UpdateBookingRequest{})
		assert.ErrorIs(t, err, ErrEmptyUpdate)
	})

	t.Run("unknown status string", func(t *testing.T) {
		booking := pending()
		f := newBookingFixture(t, []*entity.Booking{booking}, []*entity.Service{svc})

		status := "paused"
		_, err := f.usecase.UpdateBooking(context.Background(), Actor{ID: uuid.New(), Role: entity.RoleAdmin}, booking.ID, &dto.UpdateBookingRequest{
			Status: &status,
		})
		assert.ErrorIs(t, err, ErrUnknownStatus)
	})

	t.Run("terminal booking cannot be updated", func(t *testing.T) {
		booking := pending()
		booking.Status = entity.BookingStatusCancelled
		f := newBookingFixture(t, []*entity.Booking{booking}, []*entity.Service{svc})

		newEnd := start.Add(45 * time.Minute)
		_, err := f.usecase.UpdateBooking(context.Background(), Actor{ID: uuid.New(), Role: entity.RoleAdmin}, booking.ID, &dto.UpdateBookingRequest{
			EndTime: &newEnd,
		})
		assert.ErrorIs(t, err, ErrBookingTerminal)
	})
}

func TestCancelBooking(t *testing.T) {
	workerID := uuid.New()
	clientID := uuid.New()
	start := time.Now().Add(24 * time.Hour)

	withStatus := func(status entity.BookingStatus) *entity.Booking {
		return &entity.Booking{
			ID:          uuid.New(),
			ServiceID:   uuid.New(),
			ClientID:    clientID,
			WorkerID:    workerID,
			StartTime:   start,
			EndTime:     start.Add(time.Hour),
			Status:      status,
			TotalAmount: decimal.NewFromInt(6000),
			Version:     1,
		}
	}

	t.Run("client cancels own pending booking", func(t *testing.T) {
		booking := withStatus(entity.BookingStatusPending)
		f := newBookingFixture(t, []*entity.Booking{booking}, nil)

		resp, err := f.usecase.CancelBooking(context.Background(), Actor{ID: clientID, Role: entity.RoleClient}, booking.ID)
		require.NoError(t, err)
		assert.Equal(t, string(entity.BookingStatusCancelled), resp.Status)
		assert.Equal(t, entity.BookingStatusCancelled, f.bookingRepo.bookings[booking.ID].Status)
		assert.Empty(t, f.audit.actions)
	})

	t.Run("admin cancelling a confirmed booking is audited", func(t *testing.T) {
		booking := withStatus(entity.BookingStatusConfirmed)
		f := newBookingFixture(t, []*entity.Booking{booking}, nil)
		adminID := uuid.New()

		_, err := f.usecase.CancelBooking(context.Background(), Actor{ID: adminID, Role: entity.RoleAdmin}, booking.ID)
		require.NoError(t, err)

		require.Len(t, f.audit.actions, 1)
		assert.Equal(t, adminID, f.audit.actions[0].adminID)
		assert.Equal(t, entity.AdminActionCancelBooking, f.audit.actions[0].actionType)
		assert.Equal(t, booking.ID, f.audit.actions[0].targetID)
	})

	t.Run("ongoing booking cannot be cancelled even by admin", func(t *testing.T) {
		booking := withStatus(entity.BookingStatusOngoing)
		f := newBookingFixture(t, []*entity.Booking{booking}, nil)

		_, err := f.usecase.CancelBooking(context.Background(), Actor{ID: uuid.New(), Role: entity.RoleAdmin}, booking.ID)
		assert.ErrorIs(t, err, ErrBookingOngoing)
	})

	t.Run("terminal booking cannot be cancelled again", func(t *testing.T) {
		booking := withStatus(entity.BookingStatusCompleted)
		f := newBookingFixture(t, []*entity.Booking{booking}, nil)

		_, err := f.usecase.CancelBooking(context.Background(), Actor{ID: uuid.New(), Role: entity.RoleAdmin}, booking.ID)
		assert.ErrorIs(t, err, ErrBookingTerminal)
	})

	t.Run("worker cancelling a confirmed booking is refused", func(t *testing.T) {
		booking := withStatus(entity.BookingStatusConfirmed)
		f := newBookingFixture(t, []*entity.Booking{booking}, nil)

		_, err := f.usecase.CancelBooking(context.Background(), Actor{ID: workerID, Role: entity.RoleWorker}, booking.ID)
		assert.ErrorIs(t, err, ErrBookingNotPending)
	})
}

func TestDeleteBooking(t *testing.T) {
	booking := &entity.Booking{
		ID:       uuid.New(),
		ClientID: uuid.New(),
		WorkerID: uuid.New(),
		Status:   entity.BookingStatusCancelled,
		Version:  1,
	}

	t.Run("admin only", func(t *testing.T) {
		f := newBookingFixture(t, []*entity.Booking{booking}, nil)
		err := f.usecase.DeleteBooking(context.Background(), Actor{ID: booking.ClientID, Role: entity.RoleClient}, booking.ID)
		assert.ErrorIs(t, err, ErrAdminOnly)
	})

	t.Run("admin delete removes the record and is audited", func(t *testing.T) {
		f := newBookingFixture(t, []*entity.Booking{booking}, nil)
		adminID := uuid.New()

		err := f.usecase.DeleteBooking(context.Background(), Actor{ID: adminID, Role: entity.RoleAdmin}, booking.ID)
		require.NoError(t, err)

		assert.NotContains(t, f.bookingRepo.bookings, booking.ID)
		require.Len(t, f.audit.actions, 1)
		assert.Equal(t, entity.AdminActionDeleteBooking, f.audit.actions[0].actionType)
	})
}

func TestSweepTick(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	workerID := uuid.New()
	clientID := uuid.New()

	booking := func(status entity.BookingStatus, start, end time.Time) *entity.Booking {
		return &entity.Booking{
			ID:          uuid.New(),
			ServiceID:   uuid.New(),
			ClientID:    clientID,
			WorkerID:    workerID,
			StartTime:   start,
			EndTime:     end,
			Status:      status,
			TotalAmount: decimal.NewFromInt(6000),
			Version:     1,
		}
	}

	t.Run("advances each in-flight booking past its boundary", func(t *testing.T) {
		dueOngoing := booking(entity.BookingStatusConfirmed, now.Add(-time.Hour), now.Add(time.Hour))
		dueCompleted := booking(entity.BookingStatusOngoing, now.Add(-2*time.Hour), now.Add(-time.Hour))
		notDue := booking(entity.BookingStatusConfirmed, now.Add(time.Hour), now.Add(2*time.Hour))
		pending := booking(entity.BookingStatusPending, now.Add(-time.Hour), now.Add(time.Hour))

		f := newBookingFixture(t, []*entity.Booking{dueOngoing, dueCompleted, notDue, pending}, nil)

		result, err := f.usecase.SweepTick(context.Background(), now)
		require.NoError(t, err)

		// pending bookings are never clock-driven and are not even loaded
		assert.Equal(t, 3, result.Evaluated)
		assert.Equal(t, 2, result.Advanced)
		assert.Equal(t, 0, result.Skipped)
		assert.Equal(t, 0, result.Failed)

		assert.Equal(t, entity.BookingStatusOngoing, f.bookingRepo.bookings[dueOngoing.ID].Status)
		assert.Equal(t, entity.BookingStatusCompleted, f.bookingRepo.bookings[dueCompleted.ID].Status)
		assert.Equal(t, entity.BookingStatusConfirmed, f.bookingRepo.bookings[notDue.ID].Status)
		assert.Equal(t, entity.BookingStatusPending, f.bookingRepo.bookings[pending.ID].Status)
	})

	t.Run("confirmed booking with an elapsed window completes in one tick", func(t *testing.T) {
		elapsed := booking(entity.BookingStatusConfirmed, now.Add(-2*time.Hour), now.Add(-time.Hour))
		f := newBookingFixture(t, []*entity.Booking{elapsed}, nil)

		result, err := f.usecase.SweepTick(context.Background(), now)
		require.NoError(t, err)
		assert.Equal(t, 1, result.Advanced)
		assert.Equal(t, entity.BookingStatusCompleted, f.bookingRepo.bookings[elapsed.ID].Status)
	})

	t.Run("repeating the sweep at the same instant is a no-op", func(t *testing.T) {
		due := booking(entity.BookingStatusConfirmed, now.Add(-2*time.Hour), now.Add(-time.Hour))
		f := newBookingFixture(t, []*entity.Booking{due}, nil)

		first, err := f.usecase.SweepTick(context.Background(), now)
		require.NoError(t, err)
		assert.Equal(t, 1, first.Advanced)

		second, err := f.usecase.SweepTick(context.Background(), now)
		require.NoError(t, err)
		assert.Equal(t, 0, second.Evaluated)
		assert.Equal(t, 0, second.Advanced)
	})

	t.Run("a booking a request mutated mid-sweep is skipped", func(t *testing.T) {
		due := booking(entity.BookingStatusConfirmed, now.Add(-2*time.Hour), now.Add(-time.Hour))
		f := newBookingFixture(t, []*entity.Booking{due}, nil)
		f.bookingRepo.alwaysConflict = true

		result, err := f.usecase.SweepTick(context.Background(), now)
		require.NoError(t, err)
		assert.Equal(t, 1, result.Evaluated)
		assert.Equal(t, 0, result.Advanced)
		assert.Equal(t, 1, result.Skipped)
	})

	t.Run("publishes a status change per advanced booking", func(t *testing.T) {
		due := booking(entity.BookingStatusConfirmed, now.Add(-time.Hour), now.Add(time.Hour))
		f := newBookingFixture(t, []*entity.Booking{due}, nil)

		_, err := f.usecase.SweepTick(context.Background(), now)
		require.NoError(t, err)

		require.Len(t, f.events.changes, 1)
		assert.Equal(t, due.ID, f.events.changes[0].bookingID)
		assert.Equal(t, entity.BookingStatusConfirmed, f.events.changes[0].from)
		assert.Equal(t, entity.BookingStatusOngoing, f.events.changes[0].to)
	})
}

func TestListBookings(t *testing.T) {
	clientID := uuid.New()
	workerID := uuid.New()
	start := time.Now().Add(time.Hour)

	mine := &entity.Booking{ID: uuid.New(), ClientID: clientID, WorkerID: workerID, StartTime: start, EndTime: start.Add(time.Hour), Status: entity.BookingStatusPending, Version: 1}
	other := &entity.Booking{ID: uuid.New(), ClientID: uuid.New(), WorkerID: uuid.New(), StartTime: start, EndTime: start.Add(time.Hour), Status: entity.BookingStatusPending, Version: 1}
	f := newBookingFixture(t, []*entity.Booking{mine, other}, nil)

	t.Run("client sees only own bookings", func(t *testing.T) {
		resp, err := f.usecase.ListBookings(context.Background(), Actor{ID: clientID, Role: entity.RoleClient})
		require.NoError(t, err)
		require.Equal(t, 1, resp.Total)
		assert.Equal(t, mine.ID, resp.Bookings[0].ID)
	})

	t.Run("worker sees only assigned bookings", func(t *testing.T) {
		resp, err := f.usecase.ListBookings(context.Background(), Actor{ID: workerID, Role: entity.RoleWorker})
		require.NoError(t, err)
		require.Equal(t, 1, resp.Total)
		assert.Equal(t, mine.ID, resp.Bookings[0].ID)
	})

	t.Run("admin sees everything", func(t *testing.T) {
		resp, err := f.usecase.ListBookings(context.Background(), Actor{ID: uuid.New(), Role: entity.RoleAdmin})
		require.NoError(t, err)
		assert.Equal(t, 2, resp.Total)
	})
}

func TestStoreTimeoutSurfacesAsUnavailable(t *testing.T) {
	booking := &entity.Booking{
		ID:       uuid.New(),
		ClientID: uuid.New(),
		WorkerID: uuid.New(),
		Status:   entity.BookingStatusPending,
		Version:  1,
	}
	f := newBookingFixture(t, []*entity.Booking{booking}, nil)
	f.bookingRepo.findErr = context.DeadlineExceeded

	_, err := f.usecase.GetBooking(context.Background(), Actor{ID: booking.ClientID, Role: entity.RoleClient}, booking.ID)
	assert.ErrorIs(t, err, ErrStoreUnavailable)

	_, err = f.usecase.ConfirmBooking(context.Background(), Actor{ID: booking.WorkerID, Role: entity.RoleWorker}, booking.ID)
	assert.ErrorIs(t, err, ErrStoreUnavailable)

	_, err = f.usecase.CancelBooking(context.Background(), Actor{ID: booking.ClientID, Role: entity.RoleClient}, booking.ID)
	assert.ErrorIs(t, err, ErrStoreUnavailable)
}

func TestUpdateBooking_AdminStatusForceIsAudited(t *testing.T) {
	clientID := uuid.New()
	start := time.Now().Add(24 * time.Hour).Truncate(time.Minute)
	workerID := uuid.New()
	svc := activeService(workerID)

	booking := func() *entity.Booking {
		return &entity.Booking{
			ID:          uuid.New(),
			ServiceID:   svc.ID,
			ClientID:    clientID,
			WorkerID:    workerID,
			StartTime:   start,
			EndTime:     start.Add(time.Hour),
			Status:      entity.BookingStatusConfirmed,
			TotalAmount: decimal.NewFromInt(6000),
			Version:     1,
		}
	}

	t.Run("forcing a status records an admin action", func(t *testing.T) {
		b := booking()
		f := newBookingFixture(t, []*entity.Booking{b}, []*entity.Service{svc})
		adminID := uuid.New()

		status := "completed"
		_, err := f.usecase.UpdateBooking(context.Background(), Actor{ID: adminID, Role: entity.RoleAdmin}, b.ID, &dto.UpdateBookingRequest{
			Status: &status,
		})
		require.NoError(t, err)

		require.Len(t, f.audit.actions, 1)
		assert.Equal(t, adminID, f.audit.actions[0].adminID)
		assert.Equal(t, entity.AdminActionForceStatus, f.audit.actions[0].actionType)
		assert.Equal(t, b.ID, f.audit.actions[0].targetID)
	})

	t.Run("admin window change without a status is not audited", func(t *testing.T) {
		b := booking()
		f := newBookingFixture(t, []*entity.Booking{b}, []*entity.Service{svc})

		newEnd := start.Add(90 * time.Minute)
		_, err := f.usecase.UpdateBooking(context.Background(), Actor{ID: uuid.New(), Role: entity.RoleAdmin}, b.ID, &dto.UpdateBookingRequest{
			EndTime: &newEnd,
		})
		require.NoError(t, err)
		assert.Empty(t, f.audit.actions)
	})

	t.Run("client reschedule is not audited", func(t *testing.T) {
		b := booking()
		b.Status = entity.BookingStatusPending
		f := newBookingFixture(t, []*entity.Booking{b}, []*entity.Service{svc})

		newEnd := start.Add(90 * time.Minute)
		_, err := f.usecase.UpdateBooking(context.Background(), Actor{ID: clientID, Role: entity.RoleClient}, b.ID, &dto.UpdateBookingRequest{
			EndTime: &newEnd,
		})
		require.NoError(t, err)
		assert.Empty(t, f.audit.actions)
	})
}

func TestGetBooking(t *testing.T) {
	clientID := uuid.New()
	booking := &entity.Booking{ID: uuid.New(), ClientID: clientID, WorkerID: uuid.New(), Status: entity.BookingStatusPending, Version: 1}
	f := newBookingFixture(t, []*entity.Booking{booking}, nil)

	t.Run("party may read", func(t *testing.T) {
		resp, err := f.usecase.GetBooking(context.Background(), Actor{ID: clientID, Role: entity.RoleClient}, booking.ID)
		require.NoError(t, err)
		assert.Equal(t, booking.ID, resp.ID)
	})

	t.Run("stranger may not read", func(t *testing.T) {
		_, err := f.usecase.GetBooking(context.Background(), Actor{ID: uuid.New(), Role: entity.RoleClient}, booking.ID)
		assert.ErrorIs(t, err, ErrNotBookingParty)
	})

	t.Run("unknown id", func(t *testing.T) {
		_, err := f.usecase.GetBooking(context.Background(), Actor{ID: clientID, Role: entity.RoleClient}, uuid.New())
		assert.ErrorIs(t, err, ErrBookingNotFound)
	})
}
