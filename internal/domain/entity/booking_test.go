package entity

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestTimeDrivenStatus(t *testing.T) {
	start := time.Date(2026, 3, 10, 10, 0, 0, 0, time.UTC)
	end := start.Add(time.Hour)

	tests := []struct {
		name    string
		status  BookingStatus
		now     time.Time
		want    BookingStatus
		wantDue bool
	}{
		{name: "confirmed before start stays put", status: BookingStatusConfirmed, now: start.Add(-time.Minute), want: BookingStatusConfirmed, wantDue: false},
		{name: "confirmed at start begins", status: BookingStatusConfirmed, now: start, want: BookingStatusOngoing, wantDue: true},
		{name: "confirmed mid-window begins", status: BookingStatusConfirmed, now: start.Add(30 * time.Minute), want: BookingStatusOngoing, wantDue: true},
		{name: "confirmed past end completes directly", status: BookingStatusConfirmed, now: end.Add(time.Minute), want: BookingStatusCompleted, wantDue: true},
		{name: "confirmed exactly at end completes", status: BookingStatusConfirmed, now: end, want: BookingStatusCompleted, wantDue: true},
		{name: "ongoing before end stays put", status: BookingStatusOngoing, now: end.Add(-time.Minute), want: BookingStatusOngoing, wantDue: false},
		{name: "ongoing at end completes", status: BookingStatusOngoing, now: end, want: BookingStatusCompleted, wantDue: true},
		{name: "pending is never clock-driven", status: BookingStatusPending, now: end.Add(time.Hour), want: BookingStatusPending, wantDue: false},
		{name: "completed is final", status: BookingStatusCompleted, now: end.Add(time.Hour), want: BookingStatusCompleted, wantDue: false},
		{name: "cancelled is final", status: BookingStatusCancelled, now: end.Add(time.Hour), want: BookingStatusCancelled, wantDue: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := &Booking{StartTime: start, EndTime: end, Status: tt.status}
			got, due := b.TimeDrivenStatus(tt.now)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.wantDue, due)
		})
	}
}

func TestTimeDrivenStatus_Idempotent(t *testing.T) {
	start := time.Date(2026, 3, 10, 10, 0, 0, 0, time.UTC)
	now := start.Add(2 * time.Hour)

	b := &Booking{StartTime: start, EndTime: start.Add(time.Hour), Status: BookingStatusConfirmed}

	target, due := b.TimeDrivenStatus(now)
	assert.True(t, due)
	assert.Equal(t, BookingStatusCompleted, target)

	b.Status = target
	_, due = b.TimeDrivenStatus(now)
	assert.False(t, due)
}
