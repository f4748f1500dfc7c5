package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/openpl-dev/powerlifting-api/app/domain/authkey"
	"github.com/openpl-dev/powerlifting-api/app/interfaces/http/responses"
)

// AuthMiddleware resolves the bearer API key to its owning user and puts
// the user on the gin context. Invalid and revoked keys fail identically.
func AuthMiddleware(authKeyService *authkey.AuthKeyService) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, responses.ErrorResponse{
				Code:  "55312c8d-4fa4-4ecf-a0a2-6fee16c8d7e0",
				Error: "missing authorization header",
			})
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, responses.ErrorResponse{
				Code:  "c6d6bafd-b9f3-4ebb-9c90-a21b07308ebc",
				Error: "invalid authorization header",
			})
			return
		}

		u, ok := authKeyService.ValidateKey(c.Request.Context(), parts[1])
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, responses.ErrorResponse{
				Code:  "9d7a21c4-d94c-4451-841b-4d9333f86942",
				Error: "invalid api key",
			})
			return
		}

		c.Set(authkey.ContextUser, u)
		c.Next()
	}
}

// AdminMiddleware rejects non-admin principals. It must run after
// AuthMiddleware.
func AdminMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		u, ok := authkey.GetUserFromContext(c)
		if !ok || !u.Admin {
			c.AbortWithStatusJSON(http.StatusForbidden, responses.ErrorResponse{
				Code:  "e9c1f3a7-5d20-4c11-9a6e-0f2b64d81c55",
				Error: "admin access required",
			})
			return
		}
		c.Next()
	}
}
