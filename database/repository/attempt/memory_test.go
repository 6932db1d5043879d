package attemptRepo

import (
	"context"
	"errors"
	"testing"
	"time"

	"courtbook/models"
)

func TestMemoryAttemptRepo_Transition(t *testing.T) {
	repo := NewMemoryAttemptRepo()
	ctx := context.Background()

	a := &models.BookingAttempt{ID: "a1", UserID: "u1", State: models.AttemptReady}
	if err := repo.Create(ctx, a); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if err := repo.Create(ctx, a); err == nil {
		t.Fatal("expected duplicate id to be refused")
	}

	next := *a
	next.State = models.AttemptAwaitingPayment
	next.BookingID = "b1"
	if err := repo.Transition(ctx, models.AttemptReady, &next); err != nil {
		t.Fatalf("Transition: %v", err)
	}

	stale := *a
	stale.State = models.AttemptError
	if err := repo.Transition(ctx, models.AttemptReady, &stale); !errors.Is(err, ErrStateConflict) {
		t.Fatalf("expected ErrStateConflict, got %v", err)
	}

	got, err := repo.GetByBookingID(ctx, "u1", "b1")
	if err != nil {
		t.Fatalf("GetByBookingID: %v", err)
	}
	if got.State != models.AttemptAwaitingPayment {
		t.Errorf("state: got %s", got.State)
	}
	if _, err := repo.GetByID(ctx, "missing"); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
	ghost := models.BookingAttempt{ID: "ghost"}
	if err := repo.Transition(ctx, models.AttemptReady, &ghost); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestMemoryAttemptRepo_ListExpired(t *testing.T) {
	repo := NewMemoryAttemptRepo()
	ctx := context.Background()
	now := time.Date(2025, 3, 9, 12, 0, 0, 0, time.UTC)
	past := now.Add(-time.Minute)
	future := now.Add(time.Minute)

	seed := []models.BookingAttempt{
		{ID: "due", State: models.AttemptAwaitingPayment, ExpiresAt: &past},
		{ID: "later", State: models.AttemptAwaitingPayment, ExpiresAt: &future},
		{ID: "done", State: models.AttemptConfirmed, ExpiresAt: &past},
	}
	for i := range seed {
		if err := repo.Create(ctx, &seed[i]); err != nil {
			t.Fatalf("Create: %v", err)
		}
	}

	got, err := repo.ListExpired(ctx, now)
	if err != nil {
		t.Fatalf("ListExpired: %v", err)
	}
	if len(got) != 1 || got[0].ID != "due" {
		t.Errorf("expected only the due attempt, got %+v", got)
	}
}
