package usecase

import (
	"testing"

	"fundihub/internal/domain/entity"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestCanCreateBooking(t *testing.T) {
	workerID := uuid.New()
	svc := &entity.Service{ID: uuid.New(), WorkerID: workerID}

	t.Run("client may book another worker's service", func(t *testing.T) {
		actor := Actor{ID: uuid.New(), Role: entity.RoleClient}
		assert.NoError(t, CanCreateBooking(actor, svc))
	})

	t.Run("worker may not book", func(t *testing.T) {
		actor := Actor{ID: uuid.New(), Role: entity.RoleWorker}
		assert.ErrorIs(t, CanCreateBooking(actor, svc), ErrOnlyClientsBook)
	})

	t.Run("client may not book own service", func(t *testing.T) {
		actor := Actor{ID: workerID, Role: entity.RoleClient}
		assert.ErrorIs(t, CanCreateBooking(actor, svc), ErrSelfBooking)
	})

	t.Run("admin passes unconditionally", func(t *testing.T) {
		actor := Actor{ID: workerID, Role: entity.RoleAdmin}
		assert.NoError(t, CanCreateBooking(actor, svc))
	})
}

func TestCanConfirmBooking(t *testing.T) {
	workerID := uuid.New()
	booking := &entity.Booking{ID: uuid.New(), WorkerID: workerID, Status: entity.BookingStatusPending}

	t.Run("assigned worker may confirm", func(t *testing.T) {
		actor := Actor{ID: workerID, Role: entity.RoleWorker}
		assert.NoError(t, CanConfirmBooking(actor, booking))
	})

	t.Run("other worker may not confirm", func(t *testing.T) {
		actor := Actor{ID: uuid.New(), Role: entity.RoleWorker}
		assert.ErrorIs(t, CanConfirmBooking(actor, booking), ErrNotBookingWorker)
	})

	t.Run("client may not confirm", func(t *testing.T) {
		actor := Actor{ID: booking.ClientID, Role: entity.RoleClient}
		assert.ErrorIs(t, CanConfirmBooking(actor, booking), ErrNotBookingWorker)
	})

	t.Run("admin may confirm", func(t *testing.T) {
		actor := Actor{ID: uuid.New(), Role: entity.RoleAdmin}
		assert.NoError(t, CanConfirmBooking(actor, booking))
	})
}

func TestCanUpdateBooking(t *testing.T) {
	clientID := uuid.New()
	pending := &entity.Booking{ID: uuid.New(), ClientID: clientID, Status: entity.BookingStatusPending}

	timeOnly := func() *BookingChange {
		start := pending.StartTime.Add(1)
		return &BookingChange{StartTime: &start}
	}

	t.Run("client may move time window of own pending booking", func(t *testing.T) {
		actor := Actor{ID: clientID, Role: entity.RoleClient}
		assert.NoError(t, CanUpdateBooking(actor, pending, timeOnly()))
	})

	t.Run("change touching status is rejected whole for client", func(t *testing.T) {
		actor := Actor{ID: clientID, Role: entity.RoleClient}
		status := entity.BookingStatusConfirmed
		change := timeOnly()
		change.Status = &status
		assert.ErrorIs(t, CanUpdateBooking(actor, pending, change), ErrClientFieldsRestricted)
	})

	t.Run("change touching service is rejected whole for client", func(t *testing.T) {
		actor := Actor{ID: clientID, Role: entity.RoleClient}
		other := uuid.New()
		change := timeOnly()
		change.ServiceID = &other
		assert.ErrorIs(t, CanUpdateBooking(actor, pending, change), ErrClientFieldsRestricted)
	})

	t.Run("client may not update once confirmed", func(t *testing.T) {
		actor := Actor{ID: clientID, Role: entity.RoleClient}
		confirmed := &entity.Booking{ClientID: clientID, Status: entity.BookingStatusConfirmed}
		assert.ErrorIs(t, CanUpdateBooking(actor, confirmed, timeOnly()), ErrBookingNotPending)
	})

	t.Run("stranger may not update", func(t *testing.T) {
		actor := Actor{ID: uuid.New(), Role: entity.RoleClient}
		assert.ErrorIs(t, CanUpdateBooking(actor, pending, timeOnly()), ErrNotBookingParty)
	})

	t.Run("admin may change any field at any status", func(t *testing.T) {
		actor := Actor{ID: uuid.New(), Role: entity.RoleAdmin}
		status := entity.BookingStatusCompleted
		change := &BookingChange{Status: &status}
		confirmed := &entity.Booking{ClientID: clientID, Status: entity.BookingStatusConfirmed}
		assert.NoError(t, CanUpdateBooking(actor, confirmed, change))
	})
}

func TestCanCancelBooking(t *testing.T) {
	clientID := uuid.New()
	workerID := uuid.New()

	booking := func(status entity.BookingStatus) *entity.Booking {
		return &entity.Booking{ID: uuid.New(), ClientID: clientID, WorkerID: workerID, Status: status}
	}

	t.Run("client may cancel own pending booking", func(t *testing.T) {
		actor := Actor{ID: clientID, Role: entity.RoleClient}
		assert.NoError(t, CanCancelBooking(actor, booking(entity.BookingStatusPending)))
	})

	t.Run("worker may cancel pending booking they are party to", func(t *testing.T) {
		actor := Actor{ID: workerID, Role: entity.RoleWorker}
		assert.NoError(t, CanCancelBooking(actor, booking(entity.BookingStatusPending)))
	})

	t.Run("party may not cancel once confirmed", func(t *testing.T) {
		actor := Actor{ID: clientID, Role: entity.RoleClient}
		assert.ErrorIs(t, CanCancelBooking(actor, booking(entity.BookingStatusConfirmed)), ErrBookingNotPending)
	})

	t.Run("stranger may not cancel", func(t *testing.T) {
		actor := Actor{ID: uuid.New(), Role: entity.RoleClient}
		assert.ErrorIs(t, CanCancelBooking(actor, booking(entity.BookingStatusPending)), ErrNotBookingParty)
	})

	t.Run("admin passes the authorization check at any status", func(t *testing.T) {
		actor := Actor{ID: uuid.New(), Role: entity.RoleAdmin}
		assert.NoError(t, CanCancelBooking(actor, booking(entity.BookingStatusConfirmed)))
	})
}
