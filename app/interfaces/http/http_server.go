package http

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/openpl-dev/powerlifting-api/app/domain/cachestore"
	"github.com/openpl-dev/powerlifting-api/app/interfaces/http/middleware"
	v1 "github.com/openpl-dev/powerlifting-api/app/interfaces/http/routes/v1"
	"github.com/openpl-dev/powerlifting-api/app/utils/logger"
	"github.com/openpl-dev/powerlifting-api/config/environment_variables"
)

type HttpServer struct {
	engine  *gin.Engine
	v1Route *v1.V1Route
	store   cachestore.Store
}

func NewHttpServer(v1Route *v1.V1Route, store cachestore.Store) *HttpServer {
	gin.SetMode(gin.ReleaseMode)
	server := HttpServer{
		engine:  gin.New(),
		v1Route: v1Route,
		store:   store,
	}
	server.engine.Use(gin.Recovery())
	server.engine.Use(middleware.LoggerMiddleware(logger.GetLogger()))
	server.engine.Use(middleware.CORS())
	server.engine.GET("/health-check", func(c *gin.Context) {
		if !server.store.Ready(c.Request.Context()) {
			c.JSON(http.StatusServiceUnavailable, "storage unavailable")
			return
		}
		c.JSON(http.StatusOK, "ok")
	})
	return &server
}

func (httpServer *HttpServer) Run() error {
	port := environment_variables.EnvironmentVariables.API_PORT
	httpServer.v1Route.RegisterRouter(httpServer.engine.Group("/"))
	if err := httpServer.engine.Run(fmt.Sprintf(":%d", port)); err != nil {
		return err
	}
	return nil
}
