package user

import (
	"context"
	"time"

	"courtbook/models"
	"courtbook/utils"

	"go.uber.org/zap"
)

// API is the part of the remote court API used for accounts.
type API interface {
	Login(ctx context.Context, req models.LoginRequest) (*models.User, error)
	Register(ctx context.Context, req models.RegisterRequest) (*models.User, error)
}

type UserService interface {
	Login(ctx context.Context, email, password string) (*AuthResponse, error)
	Register(ctx context.Context, form models.RegisterRequest) (*models.User, error)
	Logout(ctx context.Context, sess *models.Session) error
	// ResolveSession maps a session token to its live session.
	ResolveSession(ctx context.Context, token string) (*models.Session, error)
}

// AuthResponse is returned on a successful sign-in.
type AuthResponse struct {
	Token     string      `json:"token"`
	ExpiresAt time.Time   `json:"expiresAt"`
	User      models.User `json:"user"`
}

// DefaultUserService signs users in against the remote API and keeps their sessions
// in the session store.
type DefaultUserService struct {
	API      API
	Sessions *SessionStore
	TTL      time.Duration
	Logger   *zap.Logger
}

func NewUserService(api API, store utils.Store, ttl time.Duration, logger *zap.Logger) *DefaultUserService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DefaultUserService{
		API:      api,
		Sessions: NewSessionStore(store, ttl),
		TTL:      ttl,
		Logger:   logger,
	}
}
