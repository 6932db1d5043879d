package admin

import "courtbook/utils"

var (
	ErrSignInRequired    = utils.NewAppError(utils.KindUnauthorized, "Please login first", nil)
	ErrAdminOnly         = utils.NewAppError(utils.KindForbidden, "Admin access only", nil)
	ErrDeletionNotFound  = utils.NewAppError(utils.KindNotFound, "Deletion request expired or already used", nil)
	ErrCourtIDRequired   = utils.ValidationError("Court ID is required")
	ErrAllFieldsRequired = utils.ValidationError("All fields are required")
)
