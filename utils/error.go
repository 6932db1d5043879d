package utils

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ErrorResponse defines the structure of error responses
type ErrorResponse struct {
	Message  string `json:"message"`
	Details  string `json:"details,omitempty"`
	Redirect string `json:"redirect,omitempty"`
}

// ErrorHandler is a middleware to catch panics and return structured errors
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if err := recover(); err != nil {
				Logger := GetLogger()
				Logger.Error("Unhandled panic", zap.Any("error", err))

				c.JSON(http.StatusInternalServerError, ErrorResponse{
					Message: "Internal Server Error",
					Details: "An unexpected error occurred. Please try again later.",
				})
				c.Abort()
			}
		}()
		c.Next()
	}
}

// JSONError sends a standardized JSON error response
func JSONError(c *gin.Context, status int, message string, details string) {
	Logger := GetLogger()
	Logger.Warn(message, zap.String("details", details), zap.String("path", c.FullPath()))
	c.JSON(status, ErrorResponse{Message: message, Details: details})
}

// RespondError converts err into a JSON error response using its AppError kind.
// Internal errors are reported without their details.
func RespondError(c *gin.Context, err error) {
	kind := KindOf(err)
	status := HTTPStatus(kind)

	var appErr *AppError
	if !errors.As(err, &appErr) || kind == KindInternal {
		GetLogger().Error("request failed", zap.Error(err), zap.String("path", c.FullPath()))
		c.JSON(status, ErrorResponse{Message: "Internal Server Error"})
		return
	}

	details := ""
	if appErr.Err != nil {
		details = appErr.Err.Error()
	}
	GetLogger().Warn(appErr.Message, zap.String("details", details), zap.String("path", c.FullPath()))
	c.JSON(status, ErrorResponse{Message: appErr.Message, Details: details, Redirect: RedirectFor(kind)})
}

// RedirectFor is the page the browser shell should move to after an error of kind.
func RedirectFor(kind ErrorKind) string {
	switch kind {
	case KindUnauthorized:
		return "/login"
	case KindForbidden:
		return "/home"
	default:
		return ""
	}
}

// AbortWithError is RespondError for middleware: it also stops the handler chain.
func AbortWithError(c *gin.Context, err error) {
	RespondError(c, err)
	c.Abort()
}
