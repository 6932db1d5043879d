package middleware

import (
	"context"
	"strings"

	"courtbook/models"
	"courtbook/utils"

	"github.com/gin-gonic/gin"
)

const sessionKey = "session"

// SessionResolver maps a bearer token to its live session.
type SessionResolver interface {
	ResolveSession(ctx context.Context, token string) (*models.Session, error)
}

var errMissingToken = utils.NewAppError(utils.KindUnauthorized, "Please Login as a user", nil)

// SessionAuthMiddleware resolves the bearer token once per request and stores the
// session in the gin context.
func SessionAuthMiddleware(resolver SessionResolver) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if !strings.HasPrefix(authHeader, "Bearer ") {
			utils.AbortWithError(c, errMissingToken)
			return
		}
		token := strings.TrimSpace(strings.TrimPrefix(authHeader, "Bearer "))
		if token == "" {
			utils.AbortWithError(c, errMissingToken)
			return
		}

		sess, err := resolver.ResolveSession(c.Request.Context(), token)
		if err != nil {
			utils.AbortWithError(c, err)
			return
		}

		c.Set(sessionKey, sess)
		c.Set("userID", sess.User.ID)
		c.Next()
	}
}

// SessionFrom returns the session stored by SessionAuthMiddleware, or nil.
func SessionFrom(c *gin.Context) *models.Session {
	v, ok := c.Get(sessionKey)
	if !ok {
		return nil
	}
	sess, _ := v.(*models.Session)
	return sess
}
