package booking

import (
	"context"
	"errors"
	"fmt"
	"time"

	attemptRepo "courtbook/database/repository/attempt"
	"courtbook/models"
	"courtbook/services/availability"
	"courtbook/services/catalog"
	"courtbook/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const lockTTL = 30 * time.Second

// WorkflowConfig wires a Workflow. Expiry may be nil when abandoned attempts are
// swept locally instead.
type WorkflowConfig struct {
	API        API
	Attempts   attemptRepo.AttemptRepository
	Locks      utils.Store
	Slots      *availability.Selector
	Expiry     ExpiryScheduler
	PendingTTL time.Duration
	Logger     *zap.Logger
}

// Workflow drives a booking attempt through Loading, Ready, AwaitingPayment and
// Confirmed. Every transition is persisted before the next one may start.
type Workflow struct {
	api        API
	attempts   attemptRepo.AttemptRepository
	locks      utils.Store
	slots      *availability.Selector
	expiry     ExpiryScheduler
	pendingTTL time.Duration
	now        func() time.Time
	logger     *zap.Logger
}

func NewWorkflow(cfg WorkflowConfig) *Workflow {
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	locks := cfg.Locks
	if locks == nil {
		locks = utils.NewMemoryStore()
	}
	return &Workflow{
		api:        cfg.API,
		attempts:   cfg.Attempts,
		locks:      locks,
		slots:      cfg.Slots,
		expiry:     cfg.Expiry,
		pendingTTL: cfg.PendingTTL,
		now:        time.Now,
		logger:     logger,
	}
}

// Start opens an attempt for courtID at slot and loads the court. A failed load
// leaves the attempt in Error; there is no retry.
func (w *Workflow) Start(ctx context.Context, sess *models.Session, courtID, slot string) (*models.BookingAttempt, error) {
	if sess == nil || sess.User.ID == "" {
		return nil, ErrSignInRequired
	}
	if err := catalog.RequireSlot(slot); err != nil {
		return nil, err
	}
	if courtID == "" {
		return nil, utils.ValidationError("courtId is required")
	}
	selected, err := w.slots.ParseSlot(slot, w.now())
	if err != nil {
		return nil, err
	}

	now := w.now()
	attempt := &models.BookingAttempt{
		ID:        uuid.NewString(),
		UserID:    sess.User.ID,
		CourtID:   courtID,
		Slot:      selected.String(),
		State:     models.AttemptLoading,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := w.attempts.Create(ctx, attempt); err != nil {
		return nil, utils.NewAppError(utils.KindInternal, "could not store booking attempt", err)
	}

	court, loadErr := w.api.GetCourtByID(ctx, courtID)
	if loadErr == nil && !court.HasID() {
		loadErr = utils.NewAppError(utils.KindNetwork, msgLoadFailed, fmt.Errorf("court %s returned without an id", courtID))
	}
	if loadErr != nil {
		w.logger.Warn("Court load failed", zap.String("attemptId", attempt.ID), zap.String("courtId", courtID), zap.Error(loadErr))
		failed := *attempt
		failed.State = models.AttemptError
		failed.LastError = msgLoadFailed
		failed.UpdatedAt = w.now()
		if err := w.attempts.Transition(ctx, models.AttemptLoading, &failed); err != nil {
			w.logger.Error("Failed to record attempt error", zap.String("attemptId", attempt.ID), zap.Error(err))
		}
		return &failed, fmt.Errorf("load court %s: %w", courtID, loadErr)
	}

	ready := *attempt
	ready.State = models.AttemptReady
	ready.CourtName = courtName(*court)
	ready.Location = court.Location
	ready.Description = court.Description
	ready.Image = court.Image(1)
	ready.MaxPlayers = court.MaxPlayers
	ready.TotalAmount = Quote(*court)
	ready.UpdatedAt = w.now()
	if err := w.attempts.Transition(ctx, models.AttemptLoading, &ready); err != nil {
		return nil, utils.NewAppError(utils.KindInternal, "could not store booking attempt", err)
	}
	w.logger.Info("Booking attempt ready", zap.String("attemptId", ready.ID), zap.String("courtId", courtID), zap.String("slot", ready.Slot))
	return &ready, nil
}

// Get returns the session user's attempt.
func (w *Workflow) Get(ctx context.Context, sess *models.Session, attemptID string) (*models.BookingAttempt, error) {
	if sess == nil || sess.User.ID == "" {
		return nil, ErrSignInRequired
	}
	return w.owned(ctx, sess.User.ID, attemptID)
}

func (w *Workflow) owned(ctx context.Context, userID, attemptID string) (*models.BookingAttempt, error) {
	attempt, err := w.attempts.GetByID(ctx, attemptID)
	if errors.Is(err, attemptRepo.ErrNotFound) {
		return nil, ErrAttemptNotFound
	}
	if err != nil {
		return nil, utils.NewAppError(utils.KindInternal, "could not read booking attempt", err)
	}
	// Other users' attempts are reported as missing.
	if attempt.UserID != userID {
		return nil, ErrAttemptNotFound
	}
	return attempt, nil
}

// lock serializes work on one attempt across processes.
func (w *Workflow) lock(ctx context.Context, attemptID string) (func(), error) {
	key := utils.AttemptLockPrefix + attemptID
	ok, err := w.locks.SetNX(ctx, key, []byte(w.now().UTC().Format(time.RFC3339)), lockTTL)
	if err != nil {
		return nil, utils.NewAppError(utils.KindInternal, "could not lock booking attempt", err)
	}
	if !ok {
		return nil, ErrAttemptBusy
	}
	return func() {
		if err := w.locks.Delete(context.Background(), key); err != nil {
			w.logger.Warn("Failed to release attempt lock", zap.String("attemptId", attemptID), zap.Error(err))
		}
	}, nil
}

// record persists a same-state update such as a failure note. Failures are only logged.
func (w *Workflow) record(ctx context.Context, attempt *models.BookingAttempt) {
	attempt.UpdatedAt = w.now()
	if err := w.attempts.Transition(ctx, attempt.State, attempt); err != nil {
		w.logger.Warn("Failed to record attempt update", zap.String("attemptId", attempt.ID), zap.Error(err))
	}
}

// RequestBooking posts the booking for a Ready attempt and moves it to
// AwaitingPayment. Calling it again once the booking exists returns the stored
// attempt without posting again.
func (w *Workflow) RequestBooking(ctx context.Context, sess *models.Session, attemptID string) (*models.BookingAttempt, error) {
	attempt, err := w.Get(ctx, sess, attemptID)
	if err != nil {
		return nil, err
	}
	if done, err := requestable(attempt); done || err != nil {
		return attempt, err
	}

	unlock, err := w.lock(ctx, attemptID)
	if err != nil {
		return nil, err
	}
	defer unlock()

	// Re-read under the lock: a concurrent call may have finished first.
	if attempt, err = w.owned(ctx, sess.User.ID, attemptID); err != nil {
		return nil, err
	}
	if done, err := requestable(attempt); done || err != nil {
		return attempt, err
	}

	slot, err := time.Parse(availability.SlotLayout, attempt.Slot)
	if err != nil {
		return nil, utils.NewAppError(utils.KindInternal, "stored slot is unreadable", err)
	}
	req := models.BookingRequest{
		CourtName:   attempt.CourtName,
		CourtID:     attempt.CourtID,
		UserID:      attempt.UserID,
		Date:        slot.Format(availability.BackendLayout),
		MaxPlayers:  attempt.MaxPlayers,
		TotalAmount: attempt.TotalAmount,
	}

	receipt, err := w.api.BookCourt(ctx, req, attempt.ID)
	if err == nil && receipt.BookingID == "" {
		err = utils.NewAppError(utils.KindNetwork, "backend returned no booking id", nil)
	}
	if err != nil {
		w.logger.Warn("Booking request failed", zap.String("attemptId", attempt.ID), zap.Error(err))
		attempt.LastError = msgBookingFailed
		w.record(ctx, attempt)
		return nil, fmt.Errorf("request booking: %w", err)
	}

	now := w.now()
	next := *attempt
	next.State = models.AttemptAwaitingPayment
	next.BookingID = receipt.BookingID
	next.TransactionID = receipt.TransactionID
	next.DummyQR = receipt.DummyQR
	next.LastError = ""
	next.UpdatedAt = now
	if w.pendingTTL > 0 {
		expires := now.Add(w.pendingTTL)
		next.ExpiresAt = &expires
	}
	if err := w.attempts.Transition(ctx, models.AttemptReady, &next); err != nil {
		w.logger.Error("Booking created but attempt not advanced",
			zap.String("attemptId", attempt.ID), zap.String("bookingId", receipt.BookingID), zap.Error(err))
		return nil, utils.NewAppError(utils.KindInternal, "could not store booking attempt", err)
	}

	if w.expiry != nil && next.ExpiresAt != nil {
		if err := w.expiry.ScheduleExpiry(ctx, next.ID, *next.ExpiresAt); err != nil {
			w.logger.Warn("Failed to schedule attempt expiry", zap.String("attemptId", next.ID), zap.Error(err))
		}
	}
	w.logger.Info("Booking requested", zap.String("attemptId", next.ID), zap.String("bookingId", next.BookingID))
	return &next, nil
}

// requestable reports done when the booking was already posted, or an error when
// the attempt cannot be requested from its state.
func requestable(attempt *models.BookingAttempt) (bool, error) {
	switch attempt.State {
	case models.AttemptReady:
		return false, nil
	case models.AttemptAwaitingPayment, models.AttemptConfirmed:
		return true, nil
	case models.AttemptLoading:
		return false, ErrCourtNotLoaded
	default:
		return false, ErrAttemptClosed
	}
}

// ConfirmPayment confirms the booking of an AwaitingPayment attempt. A failed call
// leaves the attempt AwaitingPayment so the user can try again.
func (w *Workflow) ConfirmPayment(ctx context.Context, sess *models.Session, attemptID string) (*models.BookingAttempt, error) {
	attempt, err := w.Get(ctx, sess, attemptID)
	if err != nil {
		return nil, err
	}
	if done, err := confirmable(attempt); done || err != nil {
		return attempt, err
	}

	unlock, err := w.lock(ctx, attemptID)
	if err != nil {
		return nil, err
	}
	defer unlock()

	if attempt, err = w.owned(ctx, sess.User.ID, attemptID); err != nil {
		return nil, err
	}
	if done, err := confirmable(attempt); done || err != nil {
		return attempt, err
	}

	if w.cancelledRemotely(ctx, attempt) {
		closeCancelled(ctx, w.attempts, attempt, w.now(), w.logger)
		return nil, ErrAttemptClosed
	}

	ref := models.BookingRef{BookingID: attempt.BookingID, CourtID: attempt.CourtID}
	if err := w.api.ConfirmPayment(ctx, ref); err != nil {
		w.logger.Warn("Payment confirmation failed", zap.String("attemptId", attempt.ID), zap.Error(err))
		attempt.LastError = msgConfirmFailed
		w.record(ctx, attempt)
		return nil, fmt.Errorf("confirm payment: %w", err)
	}

	next, err := w.confirmed(ctx, attempt)
	if err != nil {
		return nil, err
	}
	w.logger.Info("Booking confirmed", zap.String("attemptId", next.ID), zap.String("bookingId", next.BookingID))
	return next, nil
}

// cancelledRemotely reports whether the remote API already holds the attempt's
// booking as Cancelled. A failed lookup is not a cancellation; the confirm call
// itself surfaces remote failures.
func (w *Workflow) cancelledRemotely(ctx context.Context, attempt *models.BookingAttempt) bool {
	bookings, err := w.api.GetBookingsByUserID(ctx, attempt.UserID)
	if err != nil {
		w.logger.Warn("Booking status check before confirm failed", zap.String("attemptId", attempt.ID), zap.Error(err))
		return false
	}
	booking, ok := findBooking(bookings, attempt.BookingID)
	return ok && booking.Status == models.BookingCancelled
}

func confirmable(attempt *models.BookingAttempt) (bool, error) {
	switch {
	case attempt.State == models.AttemptConfirmed:
		return true, nil
	case attempt.State == models.AttemptAwaitingPayment && attempt.BookingID != "":
		return false, nil
	case attempt.State.Terminal():
		return false, ErrAttemptClosed
	default:
		return false, ErrConfirmBeforeRequest
	}
}

func (w *Workflow) confirmed(ctx context.Context, attempt *models.BookingAttempt) (*models.BookingAttempt, error) {
	next := *attempt
	next.State = models.AttemptConfirmed
	next.LastError = ""
	next.ExpiresAt = nil
	next.UpdatedAt = w.now()
	if err := w.attempts.Transition(ctx, models.AttemptAwaitingPayment, &next); err != nil {
		return nil, utils.NewAppError(utils.KindInternal, "could not store booking attempt", err)
	}
	return &next, nil
}

// StatusReport is the reconciled view of one booking.
type StatusReport struct {
	BookingID string                 `json:"bookingId"`
	Status    models.BookingStatus   `json:"status"`
	Booking   models.Booking         `json:"booking"`
	Attempt   *models.BookingAttempt `json:"attempt,omitempty"`
}

// BookingStatus asks the remote API for the authoritative status of bookingID.
// A local attempt still AwaitingPayment for a booking the API reports Confirmed is
// advanced to Confirmed, which recovers a confirmation whose response was lost.
func (w *Workflow) BookingStatus(ctx context.Context, sess *models.Session, bookingID string) (*StatusReport, error) {
	if sess == nil || sess.User.ID == "" {
		return nil, ErrSignInRequired
	}
	bookings, err := w.api.GetBookingsByUserID(ctx, sess.User.ID)
	if err != nil {
		return nil, fmt.Errorf("fetch bookings: %w", err)
	}
	booking, ok := findBooking(bookings, bookingID)
	if !ok {
		return nil, ErrBookingNotFound
	}
	report := &StatusReport{BookingID: booking.ID, Status: booking.Status, Booking: booking}

	attempt, err := w.attempts.GetByBookingID(ctx, sess.User.ID, bookingID)
	switch {
	case errors.Is(err, attemptRepo.ErrNotFound):
		return report, nil
	case err != nil:
		w.logger.Warn("Attempt lookup failed", zap.String("bookingId", bookingID), zap.Error(err))
		return report, nil
	}

	if attempt.State == models.AttemptAwaitingPayment && booking.Status == models.BookingCancelled {
		if closed := closeCancelled(ctx, w.attempts, attempt, w.now(), w.logger); closed != nil {
			attempt = closed
		}
	}
	if attempt.State == models.AttemptAwaitingPayment && booking.Status == models.BookingConfirmed {
		advanced, err := w.confirmed(ctx, attempt)
		if err != nil {
			w.logger.Warn("Failed to reconcile attempt", zap.String("attemptId", attempt.ID), zap.Error(err))
		} else {
			w.logger.Info("Reconciled confirmed booking", zap.String("attemptId", attempt.ID), zap.String("bookingId", bookingID))
			attempt = advanced
		}
	}
	report.Attempt = attempt
	return report, nil
}

// Expire cancels the booking of an attempt still AwaitingPayment once its expiry
// has passed and marks it Expired. Attempts in any other state are left alone.
func (w *Workflow) Expire(ctx context.Context, attemptID string) error {
	attempt, err := w.attempts.GetByID(ctx, attemptID)
	if errors.Is(err, attemptRepo.ErrNotFound) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("read attempt %s: %w", attemptID, err)
	}
	if !w.due(attempt) {
		return nil
	}

	unlock, err := w.lock(ctx, attemptID)
	if err != nil {
		return err
	}
	defer unlock()

	if attempt, err = w.attempts.GetByID(ctx, attemptID); err != nil {
		return fmt.Errorf("read attempt %s: %w", attemptID, err)
	}
	if !w.due(attempt) {
		return nil
	}

	ref := models.BookingRef{BookingID: attempt.BookingID, CourtID: attempt.CourtID}
	if err := w.api.CancelBooking(ctx, ref); err != nil {
		return fmt.Errorf("cancel abandoned booking %s: %w", attempt.BookingID, err)
	}

	next := *attempt
	next.State = models.AttemptExpired
	next.LastError = msgExpired
	next.UpdatedAt = w.now()
	if err := w.attempts.Transition(ctx, models.AttemptAwaitingPayment, &next); err != nil {
		return fmt.Errorf("expire attempt %s: %w", attemptID, err)
	}
	w.logger.Info("Expired abandoned booking attempt", zap.String("attemptId", attemptID), zap.String("bookingId", attempt.BookingID))
	return nil
}

func (w *Workflow) due(attempt *models.BookingAttempt) bool {
	if attempt.State != models.AttemptAwaitingPayment || attempt.ExpiresAt == nil {
		return false
	}
	return !w.now().Before(*attempt.ExpiresAt)
}

// SweepExpired expires every overdue attempt and returns how many were expired.
func (w *Workflow) SweepExpired(ctx context.Context) (int, error) {
	due, err := w.attempts.ListExpired(ctx, w.now())
	if err != nil {
		return 0, err
	}
	expired := 0
	for _, a := range due {
		if err := w.Expire(ctx, a.ID); err != nil {
			w.logger.Warn("Failed to expire attempt", zap.String("attemptId", a.ID), zap.Error(err))
			continue
		}
		expired++
	}
	return expired, nil
}

func findBooking(bookings []models.Booking, bookingID string) (models.Booking, bool) {
	for _, b := range bookings {
		if b.ID == bookingID {
			return b, true
		}
	}
	return models.Booking{}, false
}
