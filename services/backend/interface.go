package backend

import (
	"context"

	"courtbook/models"
)

// API is the remote court API as consumed by the web tier. The remote side is the
// authority for courts, users, bookings and payment verification.
type API interface {
	GetAllCourts(ctx context.Context) ([]models.Court, error)
	GetCourtByID(ctx context.Context, courtID string) (*models.Court, error)
	AddCourt(ctx context.Context, form models.CourtForm) (*models.Court, error)
	UpdateCourt(ctx context.Context, courtID string, form models.CourtForm) (*models.Court, error)
	DeleteCourt(ctx context.Context, courtID string) error

	BookCourt(ctx context.Context, req models.BookingRequest, idempotencyKey string) (*models.BookingReceipt, error)
	ConfirmPayment(ctx context.Context, ref models.BookingRef) error
	CancelBooking(ctx context.Context, ref models.BookingRef) error
	GetBookingsByUserID(ctx context.Context, userID string) ([]models.Booking, error)
	GetAllBookings(ctx context.Context) ([]models.Booking, error)

	Login(ctx context.Context, req models.LoginRequest) (*models.User, error)
	Register(ctx context.Context, req models.RegisterRequest) (*models.User, error)
	GetAllUsers(ctx context.Context) ([]models.User, error)
}
