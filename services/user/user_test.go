package user

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

func newService(t *testing.T) (*DefaultUserService, *backendtest.Server) {
	t.Helper()
	fake := backendtest.New()
	t.Cleanup(fake.Close)
	svc := NewUserService(backend.NewClient(fake.URL, 5*time.Second, nil), utils.NewMemoryStore(), time.Hour, nil)
	return svc, fake
}

func TestLoginResolveLogout(t *testing.T) {
	svc, fake := newService(t)
	ctx := context.Background()
	id := fake.AddUser("Ana", "ana@example.com", "pw", true)

	auth, err := svc.Login(ctx, "ana@example.com", "pw")
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if auth.Token == "" || auth.User.ID != id || !auth.User.IsAdmin {
		t.Fatalf("auth response: %+v", auth)
	}

	sess, err := svc.ResolveSession(ctx, auth.Token)
	if err != nil {
		t.Fatalf("ResolveSession: %v", err)
	}
	if sess.User.Email != "ana@example.com" {
		t.Errorf("session user: %+v", sess.User)
	}

	if err := svc.Logout(ctx, sess); err != nil {
		t.Fatalf("Logout: %v", err)
	}
	if _, err := svc.ResolveSession(ctx, auth.Token); !errors.Is(err, ErrSessionExpired) {
		t.Errorf("token should be dead after logout, got %v", err)
	}
}

func TestLoginValidation(t *testing.T) {
	svc, fake := newService(t)
	fake.AddUser("Ana", "ana@example.com", "pw", false)
	ctx := context.Background()

	if _, err := svc.Login(ctx, "", "pw"); !errors.Is(err, ErrMissingCredentials) {
		t.Errorf("empty email: %v", err)
	}
	if _, err := svc.Login(ctx, "ana@example.com", ""); !errors.Is(err, ErrMissingCredentials) {
		t.Errorf("empty password: %v", err)
	}
	if calls := fake.Calls("/api/users/login"); calls != 0 {
		t.Errorf("backend hit %d times for empty credentials", calls)
	}

	_, err := svc.Login(ctx, "ana@example.com", "wrong")
	if !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("wrong password: %v", err)
	}
}

func TestResolveSessionRejectsGarbage(t *testing.T) {
	svc, _ := newService(t)
	if _, err := svc.ResolveSession(context.Background(), "not-a-token"); utils.KindOf(err) != utils.KindUnauthorized {
		t.Errorf("expected unauthorized, got %v", err)
	}

	token, err := utils.GenerateToken("no-such-session", "u1", time.Minute)
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}
	if _, err := svc.ResolveSession(context.Background(), token); !errors.Is(err, ErrSessionExpired) {
		t.Errorf("expected ErrSessionExpired, got %v", err)
	}
}

func TestRegister(t *testing.T) {
	svc, fake := newService(t)
	ctx := context.Background()
	form := models.RegisterRequest{
		Name: "Ben", Email: "ben@example.com", Number: "021555",
		Password: "pw", ConfirmPassword: "pw",
	}

	account, err := svc.Register(ctx, form)
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	if account.Email != "ben@example.com" {
		t.Errorf("account: %+v", account)
	}

	mismatch := form
	mismatch.ConfirmPassword = "other"
	if _, err := svc.Register(ctx, mismatch); !errors.Is(err, ErrPasswordMismatch) {
		t.Errorf("mismatch: %v", err)
	}

	missing := form
	missing.Number = " "
	if _, err := svc.Register(ctx, missing); utils.KindOf(err) != utils.KindValidation {
		t.Errorf("missing number: %v", err)
	}
	if calls := fake.Calls("/api/users/register"); calls != 1 {
		t.Errorf("expected one register call, got %d", calls)
	}

	if _, err := svc.Register(ctx, form); utils.KindOf(err) != utils.KindNetwork {
		t.Errorf("duplicate email: expected network failure, got %v", err)
	}
}
