package usecase

import (
	"errors"
	"time"

	"fundihub/internal/domain/entity"

	"github.com/shopspring/decimal"
)

var (
	ErrInvalidTimeWindow      = errors.New("end time must be after start time")
	ErrInvalidServiceDuration = errors.New("service duration must be positive")
)

// ComputeAmount derives a booking charge from the service rate and the
// requested time window. The service price covers DurationMinutes of work, so
// the per-minute rate is price/duration and the charge scales linearly with
// the window length. The result is rounded half-up to 2 decimal places; the
// same rounding applies on every reschedule so repeated recomputation cannot
// drift.
func ComputeAmount(service *entity.Service, startTime, endTime time.Time) (decimal.Decimal, error) {
	if service.DurationMinutes <= 0 {
		return decimal.Zero, ErrInvalidServiceDuration
	}
	if !endTime.After(startTime) {
		return decimal.Zero, ErrInvalidTimeWindow
	}

	ratePerMinute := service.Price.Div(decimal.NewFromInt(int64(service.DurationMinutes)))
	minutes := decimal.NewFromFloat(endTime.Sub(startTime).Minutes())

	return ratePerMinute.Mul(minutes).Round(2), nil
}
