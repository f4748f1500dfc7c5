package httpclients

import (
	"time"

	"github.com/openpl-dev/powerlifting-api/app/utils/logger"
	"github.com/openpl-dev/powerlifting-api/config/environment_variables"
	"resty.dev/v3"
)

const userAgent = "powerlifting-api (+https://github.com/openpl-dev/powerlifting-api)"

// NewClient builds a resty client with the shared defaults.
func NewClient(name string) *resty.Client {
	client := resty.New().
		SetTimeout(time.Duration(environment_variables.EnvironmentVariables.UPSTREAM_TIMEOUT_SECONDS) * time.Second).
		SetHeader("User-Agent", userAgent).
		SetLogger(logger.GetLogger())
	return client
}

func Init() {
	// Clients are constructed lazily by their own packages; nothing shared
	// to warm up here.
}
