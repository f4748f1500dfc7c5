package admin

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/openpl-dev/powerlifting-api/app/domain/authkey"
	"github.com/openpl-dev/powerlifting-api/app/domain/cachestore"
	"github.com/openpl-dev/powerlifting-api/app/interfaces/http/middleware"
	"github.com/openpl-dev/powerlifting-api/app/interfaces/http/responses"
	"github.com/openpl-dev/powerlifting-api/app/utils/logger"
)

// CacheRoute exposes administrative cache operations.
type CacheRoute struct {
	authKeyService *authkey.AuthKeyService
	store          cachestore.Store
}

// NewCacheRoute constructs a CacheRoute instance.
func NewCacheRoute(authKeyService *authkey.AuthKeyService, store cachestore.Store) *CacheRoute {
	return &CacheRoute{
		authKeyService: authKeyService,
		store:          store,
	}
}

// RegisterRouter wires the administrative cache endpoints.
func (route *CacheRoute) RegisterRouter(router gin.IRouter) {
	adminRouter := router.Group("/admin",
		middleware.AuthMiddleware(route.authKeyService),
		middleware.AdminMiddleware(),
	)

	adminRouter.GET("/cache/keys", route.ListKeys)
	adminRouter.DELETE("/cache", route.ClearAll)
	adminRouter.DELETE("/cache/expired", route.ClearExpired)
	adminRouter.DELETE("/cache/entries", route.DeletePattern)
}

type CacheKeysResponse struct {
	Keys  []string `json:"keys"`
	Count int      `json:"count"`
}

type CacheMutationResponse struct {
	Status  string `json:"status"`
	Removed int64  `json:"removed"`
}

// ListKeys godoc
// @Summary     List cache keys
// @Description Lists cache keys matching a SQL LIKE pattern. Defaults to every key.
// @Tags        admin
// @Produce     json
// @Security    BearerAuth
// @Param       pattern query string false "SQL LIKE pattern, default %"
// @Success     200 {object} CacheKeysResponse
// @Router      /v1/admin/cache/keys [get]
func (route *CacheRoute) ListKeys(c *gin.Context) {
	pattern := c.DefaultQuery("pattern", "%")
	keys, err := route.store.Keys(c.Request.Context(), pattern)
	if err != nil {
		logger.GetLogger().Errorf("admin cache: failed to list keys: %v", err)
		c.JSON(http.StatusInternalServerError, responses.ErrorResponse{
			Code:  "6fd81b9e-2c43-47a0-95e6-d0b3a72f41c8",
			Error: "failed to list cache keys",
		})
		return
	}
	c.JSON(http.StatusOK, CacheKeysResponse{Keys: keys, Count: len(keys)})
}

// ClearAll godoc
// @Summary     Flush the cache
// @Tags        admin
// @Produce     json
// @Security    BearerAuth
// @Success     200 {object} CacheMutationResponse
// @Router      /v1/admin/cache [delete]
func (route *CacheRoute) ClearAll(c *gin.Context) {
	if err := route.store.ClearAll(c.Request.Context()); err != nil {
		logger.GetLogger().Errorf("admin cache: failed to flush cache: %v", err)
		c.JSON(http.StatusInternalServerError, responses.ErrorResponse{
			Code:  "b0c4f1c8-2a3b-4ad4-8b1d-7a2124d7c7b1",
			Error: "failed to invalidate cache",
		})
		return
	}
	c.JSON(http.StatusOK, CacheMutationResponse{Status: responses.StatusOk, Removed: -1})
}

// ClearExpired godoc
// @Summary     Remove expired cache rows
// @Tags        admin
// @Produce     json
// @Security    BearerAuth
// @Success     200 {object} CacheMutationResponse
// @Router      /v1/admin/cache/expired [delete]
func (route *CacheRoute) ClearExpired(c *gin.Context) {
	removed, err := route.store.ClearExpired(c.Request.Context())
	if err != nil {
		logger.GetLogger().Errorf("admin cache: failed to clear expired rows: %v", err)
		c.JSON(http.StatusInternalServerError, responses.ErrorResponse{
			Code:  "97d25c4a-e8b1-4f60-a3d9-521cb0f67e84",
			Error: "failed to clear expired entries",
		})
		return
	}
	c.JSON(http.StatusOK, CacheMutationResponse{Status: responses.StatusOk, Removed: removed})
}

// DeletePattern godoc
// @Summary     Remove cache rows by pattern
// @Tags        admin
// @Produce     json
// @Security    BearerAuth
// @Param       pattern query string true "SQL LIKE pattern"
// @Success     200 {object} CacheMutationResponse
// @Router      /v1/admin/cache/entries [delete]
func (route *CacheRoute) DeletePattern(c *gin.Context) {
	pattern := c.Query("pattern")
	if pattern == "" {
		c.JSON(http.StatusBadRequest, responses.ErrorResponse{
			Code:  "d43e07b6-5f92-48ac-b1e0-76c8a3d5f219",
			Error: "pattern required",
		})
		return
	}
	removed, err := route.store.DelPattern(c.Request.Context(), pattern)
	if err != nil {
		logger.GetLogger().Errorf("admin cache: failed to delete pattern %q: %v", pattern, err)
		c.JSON(http.StatusInternalServerError, responses.ErrorResponse{
			Code:  "2b90f6ce-13ad-4e75-8cd2-40a1e9b76f53",
			Error: "failed to delete cache entries",
		})
		return
	}
	c.JSON(http.StatusOK, CacheMutationResponse{Status: responses.StatusOk, Removed: removed})
}
