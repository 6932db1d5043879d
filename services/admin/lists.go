package admin

import (
	"context"
	"fmt"

	"courtbook/models"
)

func (s *DefaultAdminService) ListUsers(ctx context.Context, sess *models.Session) ([]models.User, error) {
	if err := requireAdmin(sess); err != nil {
		return nil, err
	}
	users, err := s.api.GetAllUsers(ctx)
	if err != nil {
		return nil, fmt.Errorf("fetch users: %w", err)
	}
	return users, nil
}

func (s *DefaultAdminService) ListAllBookings(ctx context.Context, sess *models.Session) ([]models.Booking, error) {
	if err := requireAdmin(sess); err != nil {
		return nil, err
	}
	bookings, err := s.api.GetAllBookings(ctx)
	if err != nil {
		return nil, fmt.Errorf("fetch bookings: %w", err)
	}
	return bookings, nil
}
