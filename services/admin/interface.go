package admin

import (
	"context"
	"time"

	"courtbook/models"
	"courtbook/utils"

	"go.uber.org/zap"
)

// API is the part of the remote court API the admin screens use.
type API interface {
	GetAllUsers(ctx context.Context) ([]models.User, error)
	GetAllBookings(ctx context.Context) ([]models.Booking, error)
	GetAllCourts(ctx context.Context) ([]models.Court, error)
	GetCourtByID(ctx context.Context, courtID string) (*models.Court, error)
	AddCourt(ctx context.Context, form models.CourtForm) (*models.Court, error)
	UpdateCourt(ctx context.Context, courtID string, form models.CourtForm) (*models.Court, error)
	DeleteCourt(ctx context.Context, courtID string) error
}

// CatalogCache is invalidated after every court mutation.
type CatalogCache interface {
	Invalidate(ctx context.Context)
}

type AdminService interface {
	ListUsers(ctx context.Context, sess *models.Session) ([]models.User, error)
	ListAllBookings(ctx context.Context, sess *models.Session) ([]models.Booking, error)
	ListCourts(ctx context.Context, sess *models.Session) ([]models.Court, error)
	AddCourt(ctx context.Context, sess *models.Session, form models.CourtForm) ([]models.Court, error)
	UpdateCourt(ctx context.Context, sess *models.Session, courtID string, form models.CourtForm) ([]models.Court, error)
	PrepareCourtDeletion(ctx context.Context, sess *models.Session, courtID string) (*DeletionTicket, error)
	ConfirmCourtDeletion(ctx context.Context, sess *models.Session, token string) ([]models.Court, error)
}

// DefaultAdminService is the production implementation.
type DefaultAdminService struct {
	api      API
	tokens   utils.Store
	catalog  CatalogCache
	tokenTTL time.Duration
	logger   *zap.Logger
}

// DeletionTokenTTL is how long a court deletion stays confirmable.
const DeletionTokenTTL = 5 * time.Minute

func NewAdminService(api API, tokens utils.Store, catalog CatalogCache, logger *zap.Logger) *DefaultAdminService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DefaultAdminService{api: api, tokens: tokens, catalog: catalog, tokenTTL: DeletionTokenTTL, logger: logger}
}
