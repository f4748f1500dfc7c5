package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/openpl-dev/powerlifting-api/app/domain/authkey"
	"github.com/openpl-dev/powerlifting-api/app/domain/quota"
	"github.com/openpl-dev/powerlifting-api/app/interfaces/http/responses"
	"github.com/openpl-dev/powerlifting-api/app/utils/logger"
)

// QuotaMiddleware counts the call against the user's monthly quota and
// rejects with 429 once the limit is reached. The count is taken even for
// rejected calls, so hammering a spent key keeps growing the audit trail.
// It must run after AuthMiddleware.
func QuotaMiddleware(quotaService *quota.QuotaService) gin.HandlerFunc {
	return func(c *gin.Context) {
		u, ok := authkey.GetUserFromContext(c)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, responses.ErrorResponse{
				Code:  "1f6c4a02-88be-4f0e-93a4-cc5d30a5e94d",
				Error: "unauthenticated",
			})
			return
		}

		result, err := quotaService.Track(c.Request.Context(), u, c.Request.URL.Path)
		if err != nil {
			logger.GetLogger().Errorf("quota: failed to track call for user %d: %v", u.ID, err)
			c.AbortWithStatusJSON(http.StatusInternalServerError, responses.ErrorResponse{
				Code:  "7b8d2e91-3a5f-4c6d-b0e8-f14a92c73d06",
				Error: "failed to track api call",
			})
			return
		}
		if result.Exceeded {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, responses.ErrorResponse{
				Code:  "3e54b7a9-0c12-4f8d-9b6a-85d1c40fe273",
				Error: "monthly api call limit reached",
			})
			return
		}
		c.Next()
	}
}
