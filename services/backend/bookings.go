package backend

import (
	"context"
	"net/http"

	"courtbook/models"
)

// IdempotencyHeader carries the booking attempt id on booking requests.
const IdempotencyHeader = "Idempotency-Key"

func (c *Client) BookCourt(ctx context.Context, req models.BookingRequest, idempotencyKey string) (*models.BookingReceipt, error) {
	header := http.Header{}
	if idempotencyKey != "" {
		header.Set(IdempotencyHeader, idempotencyKey)
	}
	var receipt models.BookingReceipt
	if err := c.do(ctx, http.MethodPost, "/api/bookings/bookingCourt", req, &receipt, header); err != nil {
		return nil, err
	}
	return &receipt, nil
}

func (c *Client) ConfirmPayment(ctx context.Context, ref models.BookingRef) error {
	return c.do(ctx, http.MethodPost, "/api/bookings/confirmPayment", ref, nil, nil)
}

func (c *Client) CancelBooking(ctx context.Context, ref models.BookingRef) error {
	return c.do(ctx, http.MethodPost, "/api/bookings/cancelBooking", ref, nil, nil)
}

func (c *Client) GetBookingsByUserID(ctx context.Context, userID string) ([]models.Booking, error) {
	var bookings []models.Booking
	body := map[string]string{"userId": userID}
	if err := c.do(ctx, http.MethodPost, "/api/bookings/getBookingsByUserId", body, &bookings, nil); err != nil {
		return nil, err
	}
	if bookings == nil {
		bookings = []models.Booking{}
	}
	return bookings, nil
}

func (c *Client) GetAllBookings(ctx context.Context) ([]models.Booking, error) {
	var bookings []models.Booking
	if err := c.do(ctx, http.MethodGet, "/api/bookings/getAllBookings", nil, &bookings, nil); err != nil {
		return nil, err
	}
	if bookings == nil {
		bookings = []models.Booking{}
	}
	return bookings, nil
}
