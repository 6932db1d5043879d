package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"courtbook/models"
	"courtbook/utils"

	"go.uber.org/zap"
)

const cacheKey = utils.CatalogCacheKey

// ErrSlotRequired is returned when booking is attempted before a slot was chosen.
var ErrSlotRequired = utils.ValidationError("Please select a date and time range first.")

// RequireSlot gates the booking action on a selected slot.
func RequireSlot(slot string) error {
	if strings.TrimSpace(slot) == "" {
		return ErrSlotRequired
	}
	return nil
}

// CourtSource is the part of the remote API the catalog reads from.
type CourtSource interface {
	GetAllCourts(ctx context.Context) ([]models.Court, error)
	GetCourtByID(ctx context.Context, courtID string) (*models.Court, error)
}

// Service fetches the court list and keeps a short-lived cached copy.
type Service struct {
	api    CourtSource
	cache  utils.Store
	ttl    time.Duration
	logger *zap.Logger
}

func NewService(api CourtSource, cache utils.Store, ttl time.Duration, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{api: api, cache: cache, ttl: ttl, logger: logger}
}

// Load returns the current catalog snapshot, from cache when fresh.
func (s *Service) Load(ctx context.Context) (*Catalog, error) {
	if s.cache != nil && s.ttl > 0 {
		raw, err := s.cache.Get(ctx, cacheKey)
		switch {
		case err == nil:
			var courts []models.Court
			if jsonErr := json.Unmarshal(raw, &courts); jsonErr == nil {
				return New(courts), nil
			}
			s.logger.Warn("Dropping unreadable catalog cache entry")
		case !errors.Is(err, utils.ErrCacheMiss):
			s.logger.Warn("Catalog cache read failed", zap.Error(err))
		}
	}

	courts, err := s.api.GetAllCourts(ctx)
	if err != nil {
		return nil, fmt.Errorf("fetch courts: %w", err)
	}

	if s.cache != nil && s.ttl > 0 {
		if raw, err := json.Marshal(courts); err == nil {
			if err := s.cache.Set(ctx, cacheKey, raw, s.ttl); err != nil {
				s.logger.Warn("Catalog cache write failed", zap.Error(err))
			}
		}
	}
	return New(courts), nil
}

// Court fetches a single court directly from the remote API.
func (s *Service) Court(ctx context.Context, courtID string) (*models.Court, error) {
	if strings.TrimSpace(courtID) == "" {
		return nil, utils.ValidationError("court id is required")
	}
	court, err := s.api.GetCourtByID(ctx, courtID)
	if err != nil {
		return nil, fmt.Errorf("fetch court %s: %w", courtID, err)
	}
	return court, nil
}

// Invalidate drops the cached list so the next Load re-fetches it.
func (s *Service) Invalidate(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Delete(ctx, cacheKey); err != nil {
		s.logger.Warn("Catalog cache invalidation failed", zap.Error(err))
	}
}
