package booking

import "courtbook/utils"

var (
	ErrSignInRequired       = utils.NewAppError(utils.KindUnauthorized, "Please Login as a user", nil)
	ErrAttemptNotFound      = utils.NewAppError(utils.KindNotFound, "Booking attempt not found", nil)
	ErrCourtNotLoaded       = utils.NewAppError(utils.KindConflict, "Court details not loaded", nil)
	ErrConfirmBeforeRequest = utils.NewAppError(utils.KindConflict, "Generate the QR code before confirming payment", nil)
	ErrAttemptClosed        = utils.NewAppError(utils.KindConflict, "Booking attempt is no longer active", nil)
	ErrAttemptBusy          = utils.NewAppError(utils.KindConflict, "Booking attempt is being processed", nil)
	ErrBookingNotFound      = utils.NewAppError(utils.KindNotFound, "Booking not found", nil)
	ErrAlreadyCancelled     = utils.NewAppError(utils.KindConflict, "Booking is already cancelled", nil)
)

// Messages recorded on an attempt when a remote call fails.
const (
	msgLoadFailed    = "Court details not loaded"
	msgBookingFailed = "Error in booking"
	msgConfirmFailed = "Error in confirming payment"
	msgExpired       = "Payment was not confirmed in time"
	msgCancelled     = "Booking was cancelled"
)
