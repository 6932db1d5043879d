package models

import "encoding/json"

type BookingStatus string

const (
	BookingPending   BookingStatus = "Pending"
	BookingConfirmed BookingStatus = "Confirmed"
	BookingCancelled BookingStatus = "Cancelled"
)

// Booking is a reservation as reported by the remote API. CourtName is a snapshot
// taken at booking time, not a live reference.
type Booking struct {
	ID            string        `json:"id"`
	TransactionID string        `json:"transactionId"`
	UserID        string        `json:"userId"`
	CourtID       string        `json:"courtId"`
	CourtName     string        `json:"courtName"`
	Date          string        `json:"date"`
	MaxPlayers    int           `json:"maxPlayers"`
	TotalAmount   int           `json:"totalAmount"`
	Status        BookingStatus `json:"status"`
}

func (b *Booking) UnmarshalJSON(data []byte) error {
	var raw struct {
		ID            FlexString `json:"id"`
		UnderID       FlexString `json:"_id"`
		BookingID     FlexString `json:"bookingId"`
		TransactionID FlexString `json:"transactionId"`
		UserID        FlexString `json:"userId"`
		CourtID       FlexString `json:"courtId"`
		CourtName     string     `json:"courtName"`
		Court         string     `json:"court"`
		Date          string     `json:"date"`
		MaxPlayers    FlexInt    `json:"maxPlayers"`
		TotalAmount   FlexInt    `json:"totalAmount"`
		Status        string     `json:"status"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*b = Booking{
		ID:            firstNonEmpty(raw.ID.String(), raw.UnderID.String(), raw.BookingID.String()),
		TransactionID: raw.TransactionID.String(),
		UserID:        raw.UserID.String(),
		CourtID:       raw.CourtID.String(),
		CourtName:     firstNonEmpty(raw.CourtName, raw.Court),
		Date:          raw.Date,
		MaxPlayers:    int(raw.MaxPlayers),
		TotalAmount:   int(raw.TotalAmount),
		Status:        BookingStatus(raw.Status),
	}
	return nil
}

// Cancellable reports whether a cancel action may be offered for the booking.
func (b Booking) Cancellable() bool {
	return b.Status != BookingCancelled
}

// BookingRequest is the body of POST /api/bookings/bookingCourt. Date uses the
// backend slot layout YYYY-MM-DD HH:mm:ss.
type BookingRequest struct {
	CourtName   string `json:"courtName"`
	CourtID     string `json:"courtId"`
	UserID      string `json:"userId"`
	Date        string `json:"date"`
	MaxPlayers  int    `json:"maxPlayers"`
	TotalAmount int    `json:"totalAmount"`
}

// BookingReceipt is what the remote API returns for a booking request: the new
// booking id and the simulated payment QR image.
type BookingReceipt struct {
	BookingID     string
	TransactionID string
	DummyQR       string
}

func (r *BookingReceipt) UnmarshalJSON(data []byte) error {
	var raw struct {
		BookingID     FlexString `json:"bookingId"`
		ID            FlexString `json:"id"`
		TransactionID FlexString `json:"transactionId"`
		DummyQR       string     `json:"dummyQR"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*r = BookingReceipt{
		BookingID:     firstNonEmpty(raw.BookingID.String(), raw.ID.String()),
		TransactionID: raw.TransactionID.String(),
		DummyQR:       raw.DummyQR,
	}
	return nil
}

// BookingRef identifies a booking for confirm and cancel calls.
type BookingRef struct {
	BookingID string `json:"bookingId"`
	CourtID   string `json:"courtId"`
}
