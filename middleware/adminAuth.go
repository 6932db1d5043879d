package middleware

import (
	"courtbook/utils"

	"github.com/gin-gonic/gin"
)

var errAdminOnly = utils.NewAppError(utils.KindForbidden, "Admin access only", nil)

// AdminGateMiddleware turns away sessions whose user record is not flagged admin.
// The flag is only a hint; the remote API re-checks every admin call.
// Must run after SessionAuthMiddleware.
func AdminGateMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		sess := SessionFrom(c)
		if sess == nil {
			utils.AbortWithError(c, errMissingToken)
			return
		}
		if !sess.User.IsAdmin {
			utils.AbortWithError(c, errAdminOnly)
			return
		}
		c.Set("isAdmin", true)
		c.Next()
	}
}
