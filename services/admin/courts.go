package admin

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"courtbook/models"
	"courtbook/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const deletionPrefix = utils.CourtDeletionPrefix

func requireAdmin(sess *models.Session) error {
	if sess == nil || sess.User.ID == "" {
		return ErrSignInRequired
	}
	if !sess.User.IsAdmin {
		return ErrAdminOnly
	}
	return nil
}

// ValidateCourtForm checks that every field is set, that price and maxPlayers are
// positive and that exactly three image URLs are given.
func ValidateCourtForm(form models.CourtForm) error {
	var missing []string
	check := func(name, value string) {
		if strings.TrimSpace(value) == "" {
			missing = append(missing, name)
		}
	}
	check("name", form.Name)
	check("location", form.Location)
	check("type", form.Type)
	check("description", form.Description)
	if len(missing) > 0 {
		return utils.NewAppError(utils.KindValidation, ErrAllFieldsRequired.Message, fmt.Errorf("missing: %s", strings.Join(missing, ", ")))
	}
	if form.MaxPlayers <= 0 {
		return utils.ValidationError("Max players must be a positive number")
	}
	if form.Price <= 0 {
		return utils.ValidationError("Price must be a positive number")
	}
	if !strings.EqualFold(form.Type, models.CourtTypeIndoor) && !strings.EqualFold(form.Type, models.CourtTypeOutdoor) {
		return utils.ValidationError("Type must be Indoor or Outdoor")
	}
	if len(form.ImgURLs) != models.CourtImageCount {
		return utils.ValidationError(fmt.Sprintf("Exactly %d image URLs are required", models.CourtImageCount))
	}
	for _, u := range form.ImgURLs {
		if strings.TrimSpace(u) == "" {
			return utils.ValidationError(fmt.Sprintf("Exactly %d image URLs are required", models.CourtImageCount))
		}
	}
	return nil
}

func (s *DefaultAdminService) ListCourts(ctx context.Context, sess *models.Session) ([]models.Court, error) {
	if err := requireAdmin(sess); err != nil {
		return nil, err
	}
	courts, err := s.api.GetAllCourts(ctx)
	if err != nil {
		return nil, fmt.Errorf("fetch courts: %w", err)
	}
	return courts, nil
}

// refreshed drops the cached catalog and returns the re-fetched court list.
func (s *DefaultAdminService) refreshed(ctx context.Context) ([]models.Court, error) {
	if s.catalog != nil {
		s.catalog.Invalidate(ctx)
	}
	courts, err := s.api.GetAllCourts(ctx)
	if err != nil {
		return nil, fmt.Errorf("re-fetch courts: %w", err)
	}
	return courts, nil
}

func (s *DefaultAdminService) AddCourt(ctx context.Context, sess *models.Session, form models.CourtForm) ([]models.Court, error) {
	if err := requireAdmin(sess); err != nil {
		return nil, err
	}
	form.CourtID = ""
	if err := ValidateCourtForm(form); err != nil {
		return nil, err
	}
	if _, err := s.api.AddCourt(ctx, form); err != nil {
		s.logger.Warn("Add court failed", zap.String("name", form.Name), zap.Error(err))
		return nil, fmt.Errorf("add court: %w", err)
	}
	s.logger.Info("Court added", zap.String("name", form.Name), zap.String("by", sess.User.ID))
	return s.refreshed(ctx)
}

func (s *DefaultAdminService) UpdateCourt(ctx context.Context, sess *models.Session, courtID string, form models.CourtForm) ([]models.Court, error) {
	if err := requireAdmin(sess); err != nil {
		return nil, err
	}
	courtID = strings.TrimSpace(courtID)
	if courtID == "" {
		return nil, ErrCourtIDRequired
	}
	if form.CourtID != "" && form.CourtID != courtID {
		return nil, utils.ValidationError("Court ID does not match the court being updated")
	}
	if err := ValidateCourtForm(form); err != nil {
		return nil, err
	}
	if _, err := s.api.UpdateCourt(ctx, courtID, form); err != nil {
		s.logger.Warn("Update court failed", zap.String("courtId", courtID), zap.Error(err))
		return nil, fmt.Errorf("update court: %w", err)
	}
	s.logger.Info("Court updated", zap.String("courtId", courtID), zap.String("by", sess.User.ID))
	return s.refreshed(ctx)
}

// DeletionTicket is the first step of a court deletion. Presenting Token to
// ConfirmCourtDeletion before ExpiresAt performs the delete.
type DeletionTicket struct {
	Token     string       `json:"token"`
	Court     models.Court `json:"court"`
	ExpiresAt time.Time    `json:"expiresAt"`
}

func (s *DefaultAdminService) PrepareCourtDeletion(ctx context.Context, sess *models.Session, courtID string) (*DeletionTicket, error) {
	if err := requireAdmin(sess); err != nil {
		return nil, err
	}
	courtID = strings.TrimSpace(courtID)
	if courtID == "" {
		return nil, ErrCourtIDRequired
	}
	court, err := s.api.GetCourtByID(ctx, courtID)
	if err != nil {
		return nil, fmt.Errorf("fetch court %s: %w", courtID, err)
	}

	token := uuid.NewString()
	if err := s.tokens.Set(ctx, deletionPrefix+token, []byte(courtID), s.tokenTTL); err != nil {
		return nil, utils.NewAppError(utils.KindInternal, "failed to store deletion request", err)
	}
	if court.ID == "" {
		court.ID = courtID
	}
	return &DeletionTicket{Token: token, Court: *court, ExpiresAt: time.Now().Add(s.tokenTTL)}, nil
}

// ConfirmCourtDeletion consumes token and deletes the court it was issued for.
func (s *DefaultAdminService) ConfirmCourtDeletion(ctx context.Context, sess *models.Session, token string) ([]models.Court, error) {
	if err := requireAdmin(sess); err != nil {
		return nil, err
	}
	token = strings.TrimSpace(token)
	if token == "" {
		return nil, utils.ValidationError("Confirmation token is required")
	}
	raw, err := s.tokens.GetDel(ctx, deletionPrefix+token)
	if errors.Is(err, utils.ErrCacheMiss) {
		return nil, ErrDeletionNotFound
	}
	if err != nil {
		return nil, utils.NewAppError(utils.KindInternal, "failed to consume deletion request", err)
	}

	courtID := string(raw)
	if err := s.api.DeleteCourt(ctx, courtID); err != nil {
		s.logger.Warn("Delete court failed", zap.String("courtId", courtID), zap.Error(err))
		return nil, fmt.Errorf("delete court: %w", err)
	}
	s.logger.Info("Court deleted", zap.String("courtId", courtID), zap.String("by", sess.User.ID))
	return s.refreshed(ctx)
}
