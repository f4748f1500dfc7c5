package auth

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/openpl-dev/powerlifting-api/app/domain/authkey"
	"github.com/openpl-dev/powerlifting-api/app/interfaces/http/middleware"
	"github.com/openpl-dev/powerlifting-api/app/interfaces/http/responses"
	"github.com/openpl-dev/powerlifting-api/app/utils/logger"
)

type AuthRoute struct {
	authKeyService *authkey.AuthKeyService
}

func NewAuthRoute(authKeyService *authkey.AuthKeyService) *AuthRoute {
	return &AuthRoute{authKeyService: authKeyService}
}

func (route *AuthRoute) RegisterRouter(router gin.IRouter) {
	authRouter := router.Group("/auth", middleware.AuthMiddleware(route.authKeyService))
	authRouter.POST("/keys/regenerate", route.RegenerateKey)
}

type RegenerateKeyResponse struct {
	ApiKey string `json:"api_key"`
}

// RegenerateKey godoc
// @Summary     Regenerate the caller's API key
// @Description Issues a fresh key and revokes every previously issued one.
// @Tags        auth
// @Produce     json
// @Security    BearerAuth
// @Success     200 {object} responses.GeneralResponse[RegenerateKeyResponse]
// @Router      /v1/auth/keys/regenerate [post]
func (route *AuthRoute) RegenerateKey(c *gin.Context) {
	u, ok := authkey.GetUserFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, responses.ErrorResponse{
			Code:  "8d07c3f2-94ab-4e61-bd5c-1a6f20e83b47",
			Error: "unauthenticated",
		})
		return
	}

	key, err := route.authKeyService.RegenerateKey(c.Request.Context(), u.ID)
	if err != nil {
		logger.GetLogger().Errorf("auth: failed to regenerate key for user %d: %v", u.ID, err)
		c.JSON(http.StatusInternalServerError, responses.ErrorResponse{
			Code:  "42f8a6d1-0e9b-4c37-85d2-b91c64f0a728",
			Error: "failed to regenerate key",
		})
		return
	}

	c.JSON(http.StatusOK, responses.GeneralResponse[RegenerateKeyResponse]{
		Status: responses.StatusOk,
		Result: RegenerateKeyResponse{ApiKey: key},
	})
}
