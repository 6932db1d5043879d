package admin

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"courtbook/models"
	"courtbook/services/backend"
	"courtbook/services/backend/backendtest"
	"courtbook/utils"
)

type countingCache struct{ invalidations int }

func (c *countingCache) Invalidate(context.Context) { c.invalidations++ }

var adminSession = &models.Session{ID: "s1", User: models.User{ID: "u1", IsAdmin: true}}

func newAdmin(t *testing.T) (*DefaultAdminService, *backendtest.Server, *countingCache) {
	t.Helper()
	fake := backendtest.New()
	t.Cleanup(fake.Close)
	cache := &countingCache{}
	svc := NewAdminService(backend.NewClient(fake.URL, 5*time.Second, nil), utils.NewMemoryStore(), cache, nil)
	return svc, fake, cache
}

func validForm() models.CourtForm {
	return models.CourtForm{
		Name: "Court C", Location: "CBD", MaxPlayers: 10, Price: 30, Type: "Outdoor",
		Description: "Floodlit", ImgURLs: []string{"1.png", "2.png", "3.png"},
	}
}

func TestValidateCourtForm(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*models.CourtForm)
		ok     bool
	}{
		{"valid", func(*models.CourtForm) {}, true},
		{"missing name", func(f *models.CourtForm) { f.Name = " " }, false},
		{"missing description", func(f *models.CourtForm) { f.Description = "" }, false},
		{"zero price", func(f *models.CourtForm) { f.Price = 0 }, false},
		{"negative players", func(f *models.CourtForm) { f.MaxPlayers = -1 }, false},
		{"unknown type", func(f *models.CourtForm) { f.Type = "Rooftop" }, false},
		{"two images", func(f *models.CourtForm) { f.ImgURLs = f.ImgURLs[:2] }, false},
		{"blank image", func(f *models.CourtForm) { f.ImgURLs = []string{"1.png", "", "3.png"} }, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			form := validForm()
			tt.mutate(&form)
			err := ValidateCourtForm(form)
			if tt.ok && err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !tt.ok && utils.KindOf(err) != utils.KindValidation {
				t.Fatalf("expected validation failure, got %v", err)
			}
		})
	}
}

func TestAdminRequiresAdminSession(t *testing.T) {
	svc, fake, _ := newAdmin(t)
	ctx := context.Background()
	member := &models.Session{ID: "s2", User: models.User{ID: "u2"}}

	if _, err := svc.ListUsers(ctx, member); !errors.Is(err, ErrAdminOnly) {
		t.Errorf("ListUsers: %v", err)
	}
	if _, err := svc.AddCourt(ctx, member, validForm()); !errors.Is(err, ErrAdminOnly) {
		t.Errorf("AddCourt: %v", err)
	}
	if _, err := svc.ListAllBookings(ctx, nil); !errors.Is(err, ErrSignInRequired) {
		t.Errorf("ListAllBookings: %v", err)
	}
	if calls := fake.Calls("/api/courts/addCourt"); calls != 0 {
		t.Errorf("backend reached %d times", calls)
	}
}

func TestAddAndUpdateCourt(t *testing.T) {
	svc, fake, cache := newAdmin(t)
	ctx := context.Background()

	courts, err := svc.AddCourt(ctx, adminSession, validForm())
	if err != nil {
		t.Fatalf("AddCourt: %v", err)
	}
	if len(courts) != 1 || courts[0].Name != "Court C" || len(courts[0].ImgURLs) != 3 {
		t.Fatalf("after add: %+v", courts)
	}

	form := validForm()
	form.Name = "Court C (renovated)"
	form.ImgURLs = []string{"x.png", "y.png", "z.png"}
	courts, err = svc.UpdateCourt(ctx, adminSession, courts[0].ID, form)
	if err != nil {
		t.Fatalf("UpdateCourt: %v", err)
	}
	if courts[0].Name != "Court C (renovated)" || courts[0].Image(0) != "x.png" {
		t.Errorf("after update: %+v", courts[0])
	}
	if cache.invalidations != 2 {
		t.Errorf("expected two invalidations, got %d", cache.invalidations)
	}

	if _, err := svc.UpdateCourt(ctx, adminSession, "", form); !errors.Is(err, ErrCourtIDRequired) {
		t.Errorf("missing id: %v", err)
	}
	form.CourtID = "someone-else"
	if _, err := svc.UpdateCourt(ctx, adminSession, courts[0].ID, form); utils.KindOf(err) != utils.KindValidation {
		t.Errorf("mismatched id: %v", err)
	}
	if calls := fake.Calls("/api/courts/updateCourt/" + courts[0].ID); calls != 1 {
		t.Errorf("expected one update call, got %d", calls)
	}
}

func TestCourtDeletionNeedsConfirmation(t *testing.T) {
	svc, fake, cache := newAdmin(t)
	ctx := context.Background()
	id := fake.AddCourt("Court A", "Indoor", 20, 10, "a.png", "b.png", "c.png")

	ticket, err := svc.PrepareCourtDeletion(ctx, adminSession, id)
	if err != nil {
		t.Fatalf("PrepareCourtDeletion: %v", err)
	}
	if ticket.Court.Name != "Court A" || ticket.Token == "" {
		t.Errorf("ticket: %+v", ticket)
	}
	if !fake.HasCourt(id) {
		t.Fatal("court deleted before confirmation")
	}

	if _, err := svc.ConfirmCourtDeletion(ctx, adminSession, "bogus"); !errors.Is(err, ErrDeletionNotFound) {
		t.Errorf("bogus token: %v", err)
	}

	courts, err := svc.ConfirmCourtDeletion(ctx, adminSession, ticket.Token)
	if err != nil {
		t.Fatalf("ConfirmCourtDeletion: %v", err)
	}
	if len(courts) != 0 || fake.HasCourt(id) {
		t.Errorf("court still present: %+v", courts)
	}
	if cache.invalidations != 1 {
		t.Errorf("expected one invalidation, got %d", cache.invalidations)
	}

	if _, err := svc.ConfirmCourtDeletion(ctx, adminSession, ticket.Token); !errors.Is(err, ErrDeletionNotFound) {
		t.Errorf("token reuse: %v", err)
	}
	if _, err := svc.PrepareCourtDeletion(ctx, adminSession, "missing"); utils.KindOf(err) != utils.KindNetwork {
		t.Errorf("missing court: %v", err)
	}
}

func TestCourtDeletionTokenIsSingleUseUnderConcurrency(t *testing.T) {
	svc, fake, _ := newAdmin(t)
	ctx := context.Background()
	id := fake.AddCourt("Court A", "Indoor", 20, 10, "a.png", "b.png", "c.png")

	ticket, err := svc.PrepareCourtDeletion(ctx, adminSession, id)
	if err != nil {
		t.Fatalf("PrepareCourtDeletion: %v", err)
	}

	const callers = 8
	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		wins     int
		notFound int
	)
	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := svc.ConfirmCourtDeletion(ctx, adminSession, ticket.Token)
			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				wins++
			case errors.Is(err, ErrDeletionNotFound):
				notFound++
			default:
				t.Errorf("unexpected error: %v", err)
			}
		}()
	}
	wg.Wait()

	if wins != 1 || notFound != callers-1 {
		t.Errorf("wins=%d notFound=%d, want 1 and %d", wins, notFound, callers-1)
	}
	if calls := fake.Calls("/api/courts/deleteCourt/" + id); calls != 1 {
		t.Errorf("deleteCourt calls = %d, want 1", calls)
	}
}

func TestListUsersAndBookings(t *testing.T) {
	svc, fake, _ := newAdmin(t)
	ctx := context.Background()
	fake.AddUser("Ana", "ana@example.com", "pw", true)
	courtID := fake.AddCourt("Court A", "Indoor", 20, 10)
	fake.AddBooking("u9", courtID, "Court A", "2025-03-09 11:00:00", 20, "Pending")

	users, err := svc.ListUsers(ctx, adminSession)
	if err != nil || len(users) != 1 || users[0].Email != "ana@example.com" {
		t.Errorf("users: %+v, %v", users, err)
	}
	bookings, err := svc.ListAllBookings(ctx, adminSession)
	if err != nil || len(bookings) != 1 || bookings[0].UserID != "u9" {
		t.Errorf("bookings: %+v, %v", bookings, err)
	}
	courts, err := svc.ListCourts(ctx, adminSession)
	if err != nil || len(courts) != 1 {
		t.Errorf("courts: %+v, %v", courts, err)
	}
}
