package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/openpl-dev/powerlifting-api/app/domain/authkey"
	"github.com/openpl-dev/powerlifting-api/app/domain/quota"
	"github.com/openpl-dev/powerlifting-api/app/interfaces/http/middleware"
	"github.com/openpl-dev/powerlifting-api/app/interfaces/http/routes/v1/admin"
	"github.com/openpl-dev/powerlifting-api/app/interfaces/http/routes/v1/auth"
	"github.com/openpl-dev/powerlifting-api/app/interfaces/http/routes/v1/stats"
	"github.com/openpl-dev/powerlifting-api/config"
)

type V1Route struct {
	authKeyService *authkey.AuthKeyService
	quotaService   *quota.QuotaService
	statsRoute     *stats.StatsRoute
	authRoute      *auth.AuthRoute
	cacheRoute     *admin.CacheRoute
}

func NewV1Route(
	authKeyService *authkey.AuthKeyService,
	quotaService *quota.QuotaService,
	statsRoute *stats.StatsRoute,
	authRoute *auth.AuthRoute,
	cacheRoute *admin.CacheRoute,
) *V1Route {
	return &V1Route{
		authKeyService,
		quotaService,
		statsRoute,
		authRoute,
		cacheRoute,
	}
}

func (v1Route *V1Route) RegisterRouter(router gin.IRouter) {
	v1Router := router.Group("/v1")
	v1Router.GET("/version", GetVersion)

	// Data endpoints are authenticated and quota-metered. Key management
	// and admin endpoints authenticate but do not consume quota.
	statsRouter := v1Router.Group("",
		middleware.AuthMiddleware(v1Route.authKeyService),
		middleware.QuotaMiddleware(v1Route.quotaService),
	)
	v1Route.statsRoute.RegisterRouter(statsRouter)

	v1Route.authRoute.RegisterRouter(v1Router)
	v1Route.cacheRoute.RegisterRouter(v1Router)
}

// GetVersion godoc
// @Summary     Get API build version
// @Description Returns the current build version of the API server.
// @Tags        system
// @Produce     json
// @Success     200 {object} map[string]string "version info"
// @Router      /v1/version [get]
func GetVersion(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"version": config.Version,
	})
}
