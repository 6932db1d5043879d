package user

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"courtbook/models"
	"courtbook/services/backend"
	"courtbook/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Login checks the credentials with the remote API and opens a session for the
// returned user record.
func (s *DefaultUserService) Login(ctx context.Context, email, password string) (*AuthResponse, error) {
	email = strings.TrimSpace(email)
	if email == "" || password == "" {
		return nil, ErrMissingCredentials
	}

	account, err := s.API.Login(ctx, models.LoginRequest{Email: email, Password: password})
	if err != nil {
		var statusErr *backend.StatusError
		if errors.As(err, &statusErr) && statusErr.StatusCode >= http.StatusBadRequest && statusErr.StatusCode < http.StatusInternalServerError {
			return nil, utils.NewAppError(utils.KindUnauthorized, ErrInvalidCredentials.Message, err)
		}
		s.Logger.Warn("Login failed", zap.String("email", email), zap.Error(err))
		return nil, fmt.Errorf("login: %w", err)
	}
	if account.ID == "" {
		return nil, utils.NewAppError(utils.KindNetwork, "backend returned a user without an id", nil)
	}

	sess := &models.Session{ID: uuid.NewString(), User: *account, CreatedAt: time.Now()}
	if err := s.Sessions.Save(ctx, sess); err != nil {
		return nil, utils.NewAppError(utils.KindInternal, "failed to create session", err)
	}
	token, err := utils.GenerateToken(sess.ID, account.ID, s.TTL)
	if err != nil {
		return nil, utils.NewAppError(utils.KindInternal, "failed to sign session token", err)
	}

	s.Logger.Info("User signed in", zap.String("userId", account.ID), zap.Bool("admin", account.IsAdmin))
	return &AuthResponse{Token: token, ExpiresAt: sess.CreatedAt.Add(s.TTL), User: *account}, nil
}

// Logout drops the session record, which invalidates every token issued for it.
func (s *DefaultUserService) Logout(ctx context.Context, sess *models.Session) error {
	if sess == nil {
		return nil
	}
	if err := s.Sessions.Delete(ctx, sess.ID); err != nil {
		return utils.NewAppError(utils.KindInternal, "failed to end session", err)
	}
	s.Logger.Info("User signed out", zap.String("userId", sess.User.ID))
	return nil
}

// ResolveSession validates token and loads the session it names.
func (s *DefaultUserService) ResolveSession(ctx context.Context, token string) (*models.Session, error) {
	claims, err := utils.ParseSessionToken(token)
	if err != nil {
		return nil, utils.NewAppError(utils.KindUnauthorized, "Invalid token", err)
	}
	sess, err := s.Sessions.Load(ctx, claims.SessionID)
	if err != nil {
		return nil, err
	}
	if sess.User.ID != claims.UserID {
		return nil, utils.NewAppError(utils.KindUnauthorized, "Invalid token", nil)
	}
	return sess, nil
}
