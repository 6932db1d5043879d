package models

import "time"

// AttemptState is the booking workflow state of one booking attempt.
type AttemptState string

const (
	AttemptLoading         AttemptState = "Loading"
	AttemptReady           AttemptState = "Ready"
	AttemptAwaitingPayment AttemptState = "AwaitingPayment"
	AttemptConfirmed       AttemptState = "Confirmed"
	AttemptError           AttemptState = "Error"
	AttemptExpired         AttemptState = "Expired"
	AttemptCancelled       AttemptState = "Cancelled"
)

// Terminal reports whether no further workflow transition leaves the state.
func (s AttemptState) Terminal() bool {
	switch s {
	case AttemptConfirmed, AttemptError, AttemptExpired, AttemptCancelled:
		return true
	}
	return false
}

// BookingAttempt is one pass through the booking workflow. Its ID doubles as the
// idempotency key sent with the booking request.
type BookingAttempt struct {
	ID            string       `bson:"id" json:"id"`
	UserID        string       `bson:"userId" json:"userId"`
	CourtID       string       `bson:"courtId" json:"courtId"`
	CourtName     string       `bson:"courtName" json:"courtName"`
	Location      string       `bson:"location" json:"location"`
	Description   string       `bson:"description" json:"description"`
	Image         string       `bson:"image" json:"image"`
	Slot          string       `bson:"slot" json:"slot"`
	MaxPlayers    int          `bson:"maxPlayers" json:"maxPlayers"`
	TotalAmount   int          `bson:"totalAmount" json:"totalAmount"`
	State         AttemptState `bson:"state" json:"state"`
	BookingID     string       `bson:"bookingId,omitempty" json:"bookingId,omitempty"`
	TransactionID string       `bson:"transactionId,omitempty" json:"transactionId,omitempty"`
	DummyQR       string       `bson:"dummyQR,omitempty" json:"dummyQR,omitempty"`
	LastError     string       `bson:"lastError,omitempty" json:"lastError,omitempty"`
	CreatedAt     time.Time    `bson:"createdAt" json:"createdAt"`
	UpdatedAt     time.Time    `bson:"updatedAt" json:"updatedAt"`
	ExpiresAt     *time.Time   `bson:"expiresAt,omitempty" json:"expiresAt,omitempty"`
}
