package attemptRepo

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"courtbook/models"
)

// MemoryAttemptRepo keeps attempts in process memory. Used when no database is
// configured and in tests.
type MemoryAttemptRepo struct {
	mu       sync.Mutex
	attempts map[string]models.BookingAttempt
}

func NewMemoryAttemptRepo() *MemoryAttemptRepo {
	return &MemoryAttemptRepo{attempts: make(map[string]models.BookingAttempt)}
}

func (r *MemoryAttemptRepo) Create(_ context.Context, attempt *models.BookingAttempt) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.attempts[attempt.ID]; exists {
		return fmt.Errorf("booking attempt %s already exists", attempt.ID)
	}
	r.attempts[attempt.ID] = *attempt
	return nil
}

func (r *MemoryAttemptRepo) GetByID(_ context.Context, id string) (*models.BookingAttempt, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	a, ok := r.attempts[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &a, nil
}

func (r *MemoryAttemptRepo) GetByBookingID(_ context.Context, userID, bookingID string) (*models.BookingAttempt, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, a := range r.attempts {
		if a.UserID == userID && a.BookingID == bookingID {
			found := a
			return &found, nil
		}
	}
	return nil, ErrNotFound
}

func (r *MemoryAttemptRepo) Transition(_ context.Context, from models.AttemptState, attempt *models.BookingAttempt) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	current, ok := r.attempts[attempt.ID]
	if !ok {
		return ErrNotFound
	}
	if current.State != from {
		return ErrStateConflict
	}
	r.attempts[attempt.ID] = *attempt
	return nil
}

func (r *MemoryAttemptRepo) ListExpired(_ context.Context, now time.Time) ([]models.BookingAttempt, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.BookingAttempt
	for _, a := range r.attempts {
		if a.State == models.AttemptAwaitingPayment && a.ExpiresAt != nil && !a.ExpiresAt.After(now) {
			out = append(out, a)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ExpiresAt.Before(*out[j].ExpiresAt) })
	return out, nil
}
