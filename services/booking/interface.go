package booking

import (
	"context"
	"time"

	"courtbook/models"
)

// API is the part of the remote court API the booking flows call.
type API interface {
	GetCourtByID(ctx context.Context, courtID string) (*models.Court, error)
	BookCourt(ctx context.Context, req models.BookingRequest, idempotencyKey string) (*models.BookingReceipt, error)
	ConfirmPayment(ctx context.Context, ref models.BookingRef) error
	CancelBooking(ctx context.Context, ref models.BookingRef) error
	GetBookingsByUserID(ctx context.Context, userID string) ([]models.Booking, error)
}

// ExpiryScheduler arranges for Workflow.Expire to run on an attempt at a given time.
type ExpiryScheduler interface {
	ScheduleExpiry(ctx context.Context, attemptID string, at time.Time) error
}
