package attemptRepo

import (
	"context"
	"errors"
	"time"

	"courtbook/models"
)

var (
	ErrNotFound      = errors.New("booking attempt not found")
	ErrStateConflict = errors.New("booking attempt changed state concurrently")
)

// AttemptRepository persists booking attempts.
type AttemptRepository interface {
	// Create inserts a new attempt. The id must be unique.
	Create(ctx context.Context, attempt *models.BookingAttempt) error
	// GetByID retrieves an attempt by its id.
	GetByID(ctx context.Context, id string) (*models.BookingAttempt, error)
	// GetByBookingID retrieves the attempt of a user that produced bookingID.
	GetByBookingID(ctx context.Context, userID, bookingID string) (*models.BookingAttempt, error)
	// Transition replaces the attempt only while it is still in state from.
	// It returns ErrStateConflict when the stored state differs.
	Transition(ctx context.Context, from models.AttemptState, attempt *models.BookingAttempt) error
	// ListExpired returns AwaitingPayment attempts whose expiry is at or before now.
	ListExpired(ctx context.Context, now time.Time) ([]models.BookingAttempt, error)
}
