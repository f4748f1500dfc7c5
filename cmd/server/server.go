package main

import (
	"context"

	"github.com/mileusna/crontab"
	"github.com/openpl-dev/powerlifting-api/app/domain/quota"
	"github.com/openpl-dev/powerlifting-api/app/domain/refresh"
	"github.com/openpl-dev/powerlifting-api/app/interfaces/http"
	"github.com/openpl-dev/powerlifting-api/app/utils/httpclients"
	"github.com/openpl-dev/powerlifting-api/config/environment_variables"
)

type Application struct {
	HttpServer     *http.HttpServer
	RefreshService *refresh.RefreshService
	QuotaService   *quota.QuotaService
}

func (application *Application) Start() {
	if err := application.HttpServer.Run(); err != nil {
		panic(err)
	}
}

func init() {
	environment_variables.EnvironmentVariables.LoadFromEnv()
	httpclients.Init()
}

func main() {
	application, err := CreateApplication()
	if err != nil {
		panic(err)
	}

	cron := crontab.New()
	crontabContext := context.Background()
	application.RefreshService.Start(crontabContext, cron)
	application.QuotaService.Start(crontabContext, cron)

	application.Start()
}
