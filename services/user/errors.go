package user

import "courtbook/utils"

var (
	ErrMissingCredentials = utils.ValidationError("Email and Password cannot be empty")
	ErrInvalidCredentials = utils.NewAppError(utils.KindUnauthorized, "Invalid Credentials", nil)
	ErrPasswordMismatch   = utils.ValidationError("Passwords are not matched! Please review your password")
	ErrSessionExpired     = utils.NewAppError(utils.KindUnauthorized, "Session expired, please login again", nil)
)
