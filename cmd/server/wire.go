//go:build wireinject

package main

import (
	"github.com/google/wire"
	"github.com/openpl-dev/powerlifting-api/app/domain"
	"github.com/openpl-dev/powerlifting-api/app/infrastructure/database"
	"github.com/openpl-dev/powerlifting-api/app/infrastructure/database/repository"
	"github.com/openpl-dev/powerlifting-api/app/interfaces/http"
	"github.com/openpl-dev/powerlifting-api/app/interfaces/http/routes"
)

func CreateApplication() (*Application, error) {
	wire.Build(
		database.NewDB,
		repository.RepositoryProvider,
		domain.ServiceProvider,
		routes.RouteProvider,
		http.NewHttpServer,
		wire.Struct(new(Application), "*"),
	)
	return nil, nil
}
