package usecase

import (
	"context"
	"testing"
	"time"

	"fundihub/internal/delivery/dto"
	"fundihub/internal/domain/entity"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type fakePaymentRepo struct {
	payments map[uuid.UUID]*entity.Payment
}

func newFakePaymentRepo(payments ...*entity.Payment) *fakePaymentRepo {
	repo := &fakePaymentRepo{payments: make(map[uuid.UUID]*entity.Payment)}
	for _, p := range payments {
		if p.ID == uuid.Nil {
			p.ID = uuid.New()
		}
		repo.payments[p.ID] = p
	}
	return repo
}

func (r *fakePaymentRepo) Create(db *gorm.DB, payment *entity.Payment) error {
	if payment.ID == uuid.Nil {
		payment.ID = uuid.New()
	}
	copied := *payment
	r.payments[payment.ID] = &copied
	return nil
}

func (r *fakePaymentRepo) FindByID(db *gorm.DB, id uuid.UUID) (*entity.Payment, error) {
	payment, ok := r.payments[id]
	if !ok {
		return nil, nil
	}
	copied := *payment
	return &copied, nil
}

func (r *fakePaymentRepo) FindByCheckoutRequestID(db *gorm.DB, checkoutRequestID string) (*entity.Payment, error) {
	for _, p := range r.payments {
		if p.CheckoutRequestID == checkoutRequestID {
			copied := *p
			return &copied, nil
		}
	}
	return nil, nil
}

func (r *fakePaymentRepo) FindByUserID(db *gorm.DB, userID uuid.UUID) ([]entity.Payment, error) {
	var out []entity.Payment
	for _, p := range r.payments {
		if p.UserID == userID {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (r *fakePaymentRepo) FindAll(db *gorm.DB) ([]entity.Payment, error) {
	var out []entity.Payment
	for _, p := range r.payments {
		out = append(out, *p)
	}
	return out, nil
}

func (r *fakePaymentRepo) Update(db *gorm.DB, payment *entity.Payment) error {
	copied := *payment
	r.payments[payment.ID] = &copied
	return nil
}

func (r *fakePaymentRepo) CountByStatus(db *gorm.DB, status entity.PaymentStatus) (int64, error) {
	var n int64
	for _, p := range r.payments {
		if p.Status == status {
			n++
		}
	}
	return n, nil
}

func pendingPayment(checkoutID string) *entity.Payment {
	bookingID := uuid.New()
	return &entity.Payment{
		ID:                uuid.New(),
		UserID:            uuid.New(),
		BookingID:         &bookingID,
		Amount:            decimal.NewFromInt(3000),
		Status:            entity.PaymentStatusPending,
		PhoneNumber:       "254712345678",
		MerchantRequestID: "merchant-1",
		CheckoutRequestID: checkoutID,
	}
}

func successCallback(checkoutID string) *dto.MpesaCallbackRequest {
	req := &dto.MpesaCallbackRequest{}
	req.Body.StkCallback.MerchantRequestID = "merchant-1"
	req.Body.StkCallback.CheckoutRequestID = checkoutID
	req.Body.StkCallback.ResultCode = 0
	req.Body.StkCallback.ResultDesc = "The service request is processed successfully."
	req.Body.StkCallback.CallbackMetadata.Item = []dto.MpesaCallbackItem{
		{Name: "Amount", Value: float64(3000)},
		{Name: "MpesaReceiptNumber", Value: "TCA0V2B61H"},
		{Name: "TransactionDate", Value: float64(20260310143005)},
		{Name: "PhoneNumber", Value: float64(254712345678)},
	}
	return req
}

func newPaymentFixture(t *testing.T, payments ...*entity.Payment) (PaymentUsecase, *fakePaymentRepo) {
	t.Helper()
	paymentRepo := newFakePaymentRepo(payments...)
	uc := NewPaymentUsecase(newTestDB(t), newTestLogger(), paymentRepo, newFakeBookingRepo(), nil)
	return uc, paymentRepo
}

func TestHandleCallback(t *testing.T) {
	t.Run("successful result settles the payment", func(t *testing.T) {
		payment := pendingPayment("ws_CO_1")
		uc, repo := newPaymentFixture(t, payment)

		err := uc.HandleCallback(context.Background(), successCallback("ws_CO_1"))
		require.NoError(t, err)

		stored := repo.payments[payment.ID]
		assert.Equal(t, entity.PaymentStatusCompleted, stored.Status)
		assert.Equal(t, "TCA0V2B61H", stored.MpesaReceiptNumber)
		require.NotNil(t, stored.TransactionDate)
		assert.Equal(t, time.Date(2026, 3, 10, 14, 30, 5, 0, time.UTC), stored.TransactionDate.UTC())
	})

	t.Run("failed result records the gateway reason", func(t *testing.T) {
		payment := pendingPayment("ws_CO_2")
		uc, repo := newPaymentFixture(t, payment)

		req := successCallback("ws_CO_2")
		req.Body.StkCallback.ResultCode = 1032
		req.Body.StkCallback.ResultDesc = "Request cancelled by user"

		err := uc.HandleCallback(context.Background(), req)
		require.NoError(t, err)

		stored := repo.payments[payment.ID]
		assert.Equal(t, entity.PaymentStatusFailed, stored.Status)
		assert.Equal(t, "Request cancelled by user", stored.ErrorMessage)
	})

	t.Run("unknown checkout ID is acknowledged without effect", func(t *testing.T) {
		uc, repo := newPaymentFixture(t)
		err := uc.HandleCallback(context.Background(), successCallback("ws_CO_unknown"))
		require.NoError(t, err)
		assert.Empty(t, repo.payments)
	})

	t.Run("retried callback on a settled payment is a no-op", func(t *testing.T) {
		payment := pendingPayment("ws_CO_3")
		uc, repo := newPaymentFixture(t, payment)

		require.NoError(t, uc.HandleCallback(context.Background(), successCallback("ws_CO_3")))

		// A later duplicate delivery reporting failure must not unsettle it
		retry := successCallback("ws_CO_3")
		retry.Body.StkCallback.ResultCode = 1032
		require.NoError(t, uc.HandleCallback(context.Background(), retry))

		assert.Equal(t, entity.PaymentStatusCompleted, repo.payments[payment.ID].Status)
	})
}

func TestGetPayment(t *testing.T) {
	payment := pendingPayment("ws_CO_4")
	uc, _ := newPaymentFixture(t, payment)

	t.Run("owner may read", func(t *testing.T) {
		resp, err := uc.GetPayment(context.Background(), Actor{ID: payment.UserID, Role: entity.RoleClient}, payment.ID)
		require.NoError(t, err)
		assert.Equal(t, payment.ID, resp.ID)
	})

	t.Run("admin may read any payment", func(t *testing.T) {
		_, err := uc.GetPayment(context.Background(), Actor{ID: uuid.New(), Role: entity.RoleAdmin}, payment.ID)
		assert.NoError(t, err)
	})

	t.Run("other users are refused", func(t *testing.T) {
		_, err := uc.GetPayment(context.Background(), Actor{ID: uuid.New(), Role: entity.RoleClient}, payment.ID)
		assert.ErrorIs(t, err, ErrNotPaymentOwner)
	})

	t.Run("unknown id", func(t *testing.T) {
		_, err := uc.GetPayment(context.Background(), Actor{ID: payment.UserID, Role: entity.RoleClient}, uuid.New())
		assert.ErrorIs(t, err, ErrPaymentNotFound)
	})
}
