package domain

import (
	"github.com/google/wire"
	"github.com/openpl-dev/powerlifting-api/app/domain/authkey"
	"github.com/openpl-dev/powerlifting-api/app/domain/quota"
	"github.com/openpl-dev/powerlifting-api/app/domain/refresh"
	"github.com/openpl-dev/powerlifting-api/app/domain/scraper"
	"github.com/openpl-dev/powerlifting-api/app/utils/emailservice"
	"github.com/openpl-dev/powerlifting-api/app/utils/httpclients/openpowerlifting"
)

var ServiceProvider = wire.NewSet(
	openpowerlifting.NewClient,
	scraper.NewService,
	emailservice.NewSMTPMailer,
	authkey.NewService,
	quota.NewService,
	refresh.NewService,
)
