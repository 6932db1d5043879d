package user

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"courtbook/models"
	"courtbook/utils"
)

const sessionPrefix = utils.SessionCachePrefix

// SessionStore keeps sessions as JSON records with a TTL.
type SessionStore struct {
	store utils.Store
	ttl   time.Duration
}

func NewSessionStore(store utils.Store, ttl time.Duration) *SessionStore {
	return &SessionStore{store: store, ttl: ttl}
}

func (s *SessionStore) Save(ctx context.Context, sess *models.Session) error {
	raw, err := json.Marshal(sess)
	if err != nil {
		return fmt.Errorf("encode session: %w", err)
	}
	return s.store.Set(ctx, sessionPrefix+sess.ID, raw, s.ttl)
}

// Load returns ErrSessionExpired when no record exists for id.
func (s *SessionStore) Load(ctx context.Context, id string) (*models.Session, error) {
	raw, err := s.store.Get(ctx, sessionPrefix+id)
	if errors.Is(err, utils.ErrCacheMiss) {
		return nil, ErrSessionExpired
	}
	if err != nil {
		return nil, fmt.Errorf("read session: %w", err)
	}
	var sess models.Session
	if err := json.Unmarshal(raw, &sess); err != nil {
		return nil, fmt.Errorf("decode session: %w", err)
	}
	return &sess, nil
}

func (s *SessionStore) Delete(ctx context.Context, id string) error {
	return s.store.Delete(ctx, sessionPrefix+id)
}
