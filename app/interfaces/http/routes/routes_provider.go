package routes

import (
	"github.com/google/wire"
	v1 "github.com/openpl-dev/powerlifting-api/app/interfaces/http/routes/v1"
	"github.com/openpl-dev/powerlifting-api/app/interfaces/http/routes/v1/admin"
	"github.com/openpl-dev/powerlifting-api/app/interfaces/http/routes/v1/auth"
	"github.com/openpl-dev/powerlifting-api/app/interfaces/http/routes/v1/stats"
)

var RouteProvider = wire.NewSet(
	stats.NewStatsRoute,
	auth.NewAuthRoute,
	admin.NewCacheRoute,
	v1.NewV1Route,
)
