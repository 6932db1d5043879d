package booking

import (
	"context"
	"errors"
	"testing"
	"time"

	"courtbook/models"
	"courtbook/services/backend"
	"courtbook/services/backend/backendtest"
	"courtbook/utils"
)

func newManagement(t *testing.T) (*Management, *backendtest.Server) {
	t.Helper()
	fake := backendtest.New()
	t.Cleanup(fake.Close)
	return NewManagement(backend.NewClient(fake.URL, 5*time.Second, nil), nil, nil), fake
}

func TestListBookings_MostRecentFirst(t *testing.T) {
	m, fake := newManagement(t)
	courtID := fake.AddCourt("Court A", "Indoor", 20, 10)
	first := fake.AddBooking("u1", courtID, "Court A", "2025-03-09 11:00:00", 20, "Confirmed")
	second := fake.AddBooking("u1", courtID, "Court A", "2025-03-10 11:00:00", 20, "Cancelled")
	fake.AddBooking("u2", courtID, "Court A", "2025-03-10 12:00:00", 20, "Pending")

	views, err := m.ListBookings(context.Background(), &models.Session{User: models.User{ID: "u1"}})
	if err != nil {
		t.Fatalf("ListBookings: %v", err)
	}
	if len(views) != 2 || views[0].ID != second || views[1].ID != first {
		t.Fatalf("order: %+v", views)
	}
	if views[0].CourtName != "Court A" || views[1].CourtName != "Court A" {
		t.Errorf("court names: %q %q", views[0].CourtName, views[1].CourtName)
	}
	if views[0].Cancellable || !views[1].Cancellable {
		t.Errorf("cancellable flags: %v %v", views[0].Cancellable, views[1].Cancellable)
	}
}

func TestCancel(t *testing.T) {
	m, fake := newManagement(t)
	ctx := context.Background()
	sess := &models.Session{User: models.User{ID: "u1"}}
	courtID := fake.AddCourt("Court A", "Indoor", 20, 10)
	id := fake.AddBooking("u1", courtID, "Court A", "2025-03-09 11:00:00", 20, "Confirmed")

	views, err := m.Cancel(ctx, sess, id, "")
	if err != nil {
		t.Fatalf("Cancel: %v", err)
	}
	if len(views) != 1 || views[0].Status != models.BookingCancelled || views[0].Cancellable {
		t.Errorf("after cancel: %+v", views)
	}

	if _, err := m.Cancel(ctx, sess, id, courtID); !errors.Is(err, ErrAlreadyCancelled) {
		t.Errorf("second cancel: %v", err)
	}
	if calls := fake.Calls("/api/bookings/cancelBooking"); calls != 1 {
		t.Errorf("expected one cancel call, got %d", calls)
	}
	if _, err := m.Cancel(ctx, sess, "999", courtID); !errors.Is(err, ErrBookingNotFound) {
		t.Errorf("unknown booking: %v", err)
	}
	if _, err := m.Cancel(ctx, nil, id, courtID); !errors.Is(err, ErrSignInRequired) {
		t.Errorf("no session: %v", err)
	}
}

func TestCancelFailureIsNetworkFailure(t *testing.T) {
	m, fake := newManagement(t)
	courtID := fake.AddCourt("Court A", "Indoor", 20, 10)
	id := fake.AddBooking("u1", courtID, "Court A", "2025-03-09 11:00:00", 20, "Pending")
	fake.FailNext("/api/bookings/cancelBooking", 503)

	_, err := m.Cancel(context.Background(), &models.Session{User: models.User{ID: "u1"}}, id, courtID)
	if utils.KindOf(err) != utils.KindNetwork {
		t.Errorf("expected network failure, got %v", err)
	}
	if got := fake.BookingStatus(id); got != "Pending" {
		t.Errorf("status changed to %q", got)
	}
}
