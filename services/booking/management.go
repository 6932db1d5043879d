package booking

import (
	"context"
	"errors"
	"fmt"
	"time"

	attemptRepo "courtbook/database/repository/attempt"
	"courtbook/models"

	"go.uber.org/zap"
)

// BookingView is a booking as listed on the profile page.
type BookingView struct {
	models.Booking
	Cancellable bool `json:"cancellable"`
}

// Management lists and cancels the signed-in user's bookings. Cancelling also
// closes the booking's attempt so it can no longer be confirmed.
type Management struct {
	api      API
	attempts attemptRepo.AttemptRepository
	now      func() time.Time
	logger   *zap.Logger
}

func NewManagement(api API, attempts attemptRepo.AttemptRepository, logger *zap.Logger) *Management {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Management{api: api, attempts: attempts, now: time.Now, logger: logger}
}

// ListBookings returns the user's bookings, most recent first.
func (m *Management) ListBookings(ctx context.Context, sess *models.Session) ([]BookingView, error) {
	if sess == nil || sess.User.ID == "" {
		return nil, ErrSignInRequired
	}
	bookings, err := m.api.GetBookingsByUserID(ctx, sess.User.ID)
	if err != nil {
		return nil, fmt.Errorf("fetch bookings: %w", err)
	}
	views := make([]BookingView, len(bookings))
	for i, b := range bookings {
		views[len(bookings)-1-i] = BookingView{Booking: b, Cancellable: b.Cancellable()}
	}
	return views, nil
}

// Cancel cancels one of the user's bookings and returns the re-fetched list.
// courtID defaults to the booking's own court when empty.
func (m *Management) Cancel(ctx context.Context, sess *models.Session, bookingID, courtID string) ([]BookingView, error) {
	if sess == nil || sess.User.ID == "" {
		return nil, ErrSignInRequired
	}
	bookings, err := m.api.GetBookingsByUserID(ctx, sess.User.ID)
	if err != nil {
		return nil, fmt.Errorf("fetch bookings: %w", err)
	}
	booking, ok := findBooking(bookings, bookingID)
	if !ok {
		return nil, ErrBookingNotFound
	}
	if !booking.Cancellable() {
		return nil, ErrAlreadyCancelled
	}
	if courtID == "" {
		courtID = booking.CourtID
	}

	if err := m.api.CancelBooking(ctx, models.BookingRef{BookingID: bookingID, CourtID: courtID}); err != nil {
		m.logger.Warn("Cancel failed", zap.String("bookingId", bookingID), zap.Error(err))
		return nil, fmt.Errorf("cancel booking: %w", err)
	}
	m.logger.Info("Booking cancelled", zap.String("bookingId", bookingID), zap.String("userId", sess.User.ID))
	m.closeAttempt(ctx, sess.User.ID, bookingID)
	return m.ListBookings(ctx, sess)
}

func (m *Management) closeAttempt(ctx context.Context, userID, bookingID string) {
	if m.attempts == nil {
		return
	}
	attempt, err := m.attempts.GetByBookingID(ctx, userID, bookingID)
	if errors.Is(err, attemptRepo.ErrNotFound) {
		return
	}
	if err != nil {
		m.logger.Warn("Attempt lookup after cancel failed", zap.String("bookingId", bookingID), zap.Error(err))
		return
	}
	closeCancelled(ctx, m.attempts, attempt, m.now(), m.logger)
}

// closeCancelled moves a non-terminal attempt whose booking was cancelled to
// Cancelled and returns it, or nil when the attempt was left as it was.
func closeCancelled(ctx context.Context, attempts attemptRepo.AttemptRepository, attempt *models.BookingAttempt, now time.Time, logger *zap.Logger) *models.BookingAttempt {
	if attempt.State.Terminal() {
		return nil
	}
	next := *attempt
	next.State = models.AttemptCancelled
	next.LastError = msgCancelled
	next.ExpiresAt = nil
	next.UpdatedAt = now
	if err := attempts.Transition(ctx, attempt.State, &next); err != nil {
		logger.Warn("Failed to close cancelled attempt", zap.String("attemptId", attempt.ID), zap.Error(err))
		return nil
	}
	logger.Info("Closed attempt of cancelled booking", zap.String("attemptId", attempt.ID), zap.String("bookingId", attempt.BookingID))
	return &next
}
