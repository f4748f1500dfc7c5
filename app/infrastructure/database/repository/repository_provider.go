package repository

import (
	"github.com/google/wire"
	"github.com/openpl-dev/powerlifting-api/app/infrastructure/database/repository/apicalllogrepo"
	"github.com/openpl-dev/powerlifting-api/app/infrastructure/database/repository/cacherepo"
	"github.com/openpl-dev/powerlifting-api/app/infrastructure/database/repository/userrepo"
)

var RepositoryProvider = wire.NewSet(
	cacherepo.NewCacheGormRepository,
	userrepo.NewUserGormRepository,
	apicalllogrepo.NewApiCallLogGormRepository,
)
