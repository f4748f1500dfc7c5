package authkey

import (
	"github.com/gin-gonic/gin"
	"github.com/openpl-dev/powerlifting-api/app/domain/user"
)

const ContextUser = "authkey.user"

// GetUserFromContext returns the authenticated user attached by the auth
// middleware, or false when the request is unauthenticated.
func GetUserFromContext(c *gin.Context) (*user.User, bool) {
	value, exists := c.Get(ContextUser)
	if !exists {
		return nil, false
	}
	u, ok := value.(*user.User)
	return u, ok
}
