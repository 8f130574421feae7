package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"fundihub/internal/converter"
	"fundihub/internal/delivery/dto"
	"fundihub/internal/domain/entity"
	"fundihub/internal/domain/repository"
	"fundihub/internal/integrations/mpesa"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

var (
	ErrPaymentNotFound   = errors.New("payment not found")
	ErrNotPaymentOwner   = errors.New("payment does not belong to this user")
	ErrBookingNotPayable = errors.New("booking is not in a payable state")
)

type PaymentUsecase interface {
	InitiatePayment(ctx context.Context, userID uuid.UUID, req *dto.InitiatePaymentRequest) (*dto.PaymentResponse, error)
	HandleCallback(ctx context.Context, req *dto.MpesaCallbackRequest) error
	GetPayment(ctx context.Context, actor Actor, id uuid.UUID) (*dto.PaymentResponse, error)
	ListUserPayments(ctx context.Context, userID uuid.UUID) (*dto.PaymentListResponse, error)
	ListPayments(ctx context.Context) (*dto.PaymentListResponse, error)
}

type paymentUsecase struct {
	db          *gorm.DB
	log         *logrus.Logger
	paymentRepo repository.PaymentRepository
	bookingRepo repository.BookingRepository
	mpesaClient *mpesa.Client
}

func NewPaymentUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	paymentRepo repository.PaymentRepository,
	bookingRepo repository.BookingRepository,
	mpesaClient *mpesa.Client,
) PaymentUsecase {
	return &paymentUsecase{
		db:          db,
		log:         log,
		paymentRepo: paymentRepo,
		bookingRepo: bookingRepo,
		mpesaClient: mpesaClient,
	}
}

func (u *paymentUsecase) InitiatePayment(ctx context.Context, userID uuid.UUID, req *dto.InitiatePaymentRequest) (*dto.PaymentResponse, error) {
	db := u.db.WithContext(ctx)

	booking, err := u.bookingRepo.FindByID(db, req.BookingID)
	if err != nil {
		u.log.Warnf("Failed to find booking: %+v", err)
		return nil, err
	}
	if booking == nil {
		return nil, ErrBookingNotFound
	}
	if booking.ClientID != userID {
		return nil, ErrNotBookingClient
	}
	if booking.IsTerminal() {
		return nil, ErrBookingNotPayable
	}

	// The charged amount always comes from the booking, never the request
	description := req.Description
	if description == "" {
		description = "Booking payment"
	}
	accountRef := fmt.Sprintf("FH-%s", booking.ID.String()[:8])

	stkResp, err := u.mpesaClient.StkPush(ctx, req.PhoneNumber, booking.TotalAmount, accountRef, description)
	if err != nil {
		u.log.Warnf("STK push failed: %+v", err)
		return nil, err
	}

	bookingID := booking.ID
	payment := &entity.Payment{
		UserID:            userID,
		BookingID:         &bookingID,
		Amount:            booking.TotalAmount,
		Status:            entity.PaymentStatusPending,
		PhoneNumber:       req.PhoneNumber,
		MerchantRequestID: stkResp.MerchantRequestID,
		CheckoutRequestID: stkResp.CheckoutRequestID,
	}
	if err := u.paymentRepo.Create(db, payment); err != nil {
		u.log.Warnf("Failed to create payment record: %+v", err)
		return nil, err
	}

	return converter.PaymentToResponse(payment), nil
}

// HandleCallback processes the asynchronous Daraja result. Unknown checkout
// IDs and already-settled payments are acknowledged without effect so Daraja
// retries stay harmless.
func (u *paymentUsecase) HandleCallback(ctx context.Context, req *dto.MpesaCallbackRequest) error {
	cb := req.Body.StkCallback

	db := u.db.WithContext(ctx)

	payment, err := u.paymentRepo.FindByCheckoutRequestID(db, cb.CheckoutRequestID)
	if err != nil {
		u.log.Warnf("Failed to find payment for callback: %+v", err)
		return err
	}
	if payment == nil {
		u.log.Warnf("Callback for unknown checkout request ID %s", cb.CheckoutRequestID)
		return nil
	}
	if payment.Status != entity.PaymentStatusPending {
		return nil
	}

	if cb.ResultCode != 0 {
		payment.Status = entity.PaymentStatusFailed
		payment.ErrorMessage = cb.ResultDesc
		if err := u.paymentRepo.Update(db, payment); err != nil {
			u.log.Warnf("Failed to record failed payment: %+v", err)
			return err
		}
		u.log.Infof("Payment %s failed: %s", payment.ID, cb.ResultDesc)
		return nil
	}

	for _, item := range cb.CallbackMetadata.Item {
		switch item.Name {
		case "MpesaReceiptNumber":
			if receipt, ok := item.Value.(string); ok {
				payment.MpesaReceiptNumber = receipt
			}
		case "TransactionDate":
			if raw, ok := item.Value.(float64); ok {
				if t, err := time.Parse("20060102150405", fmt.Sprintf("%.0f", raw)); err == nil {
					payment.TransactionDate = &t
				}
			}
		}
	}

	payment.Status = entity.PaymentStatusCompleted
	if err := u.paymentRepo.Update(db, payment); err != nil {
		u.log.Warnf("Failed to record completed payment: %+v", err)
		return err
	}

	u.log.Infof("Payment %s completed, receipt %s", payment.ID, payment.MpesaReceiptNumber)
	return nil
}

func (u *paymentUsecase) GetPayment(ctx context.Context, actor Actor, id uuid.UUID) (*dto.PaymentResponse, error) {
	payment, err := u.paymentRepo.FindByID(u.db.WithContext(ctx), id)
	if err != nil {
		u.log.Warnf("Failed to find payment: %+v", err)
		return nil, err
	}
	if payment == nil {
		return nil, ErrPaymentNotFound
	}
	if actor.Role != entity.RoleAdmin && payment.UserID != actor.ID {
		return nil, ErrNotPaymentOwner
	}
	return converter.PaymentToResponse(payment), nil
}

func (u *paymentUsecase) ListUserPayments(ctx context.Context, userID uuid.UUID) (*dto.PaymentListResponse, error) {
	payments, err := u.paymentRepo.FindByUserID(u.db.WithContext(ctx), userID)
	if err != nil {
		u.log.Warnf("Failed to list user payments: %+v", err)
		return nil, err
	}
	return &dto.PaymentListResponse{
		Payments: converter.PaymentsToResponses(payments),
		Total:    len(payments),
	}, nil
}

func (u *paymentUsecase) ListPayments(ctx context.Context) (*dto.PaymentListResponse, error) {
	payments, err := u.paymentRepo.FindAll(u.db.WithContext(ctx))
	if err != nil {
		u.log.Warnf("Failed to list payments: %+v", err)
		return nil, err
	}
	return &dto.PaymentListResponse{
		Payments: converter.PaymentsToResponses(payments),
		Total:    len(payments),
	}, nil
}
