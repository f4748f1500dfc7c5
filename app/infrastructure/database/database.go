package database

import (
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/schema"
	"gorm.io/plugin/dbresolver"

	"github.com/openpl-dev/powerlifting-api/app/utils/logger"
	"github.com/openpl-dev/powerlifting-api/config/environment_variables"
)

var SchemaRegistry []interface{}

func RegisterSchemaForAutoMigrate(models ...interface{}) {
	SchemaRegistry = append(SchemaRegistry, models...)
}

func NewDB() (*gorm.DB, error) {
	envs := environment_variables.EnvironmentVariables
	db, err := gorm.Open(postgres.Open(envs.DB_POSTGRESQL_WRITE_DSN), &gorm.Config{
		NamingStrategy: schema.NamingStrategy{
			SingularTable: true,
		},
	})
	if err != nil {
		logger.GetLogger().
			WithField("error_code", "8a4f2f30-6a9f-4c9e-b1e2-54d2f9a7f3cd").
			Errorf("unable to connect to database: %v", err)
		return nil, err
	}

	if envs.DB_POSTGRESQL_READ1_DSN != "" {
		err = db.Use(dbresolver.Register(dbresolver.Config{
			Replicas: []gorm.Dialector{postgres.Open(envs.DB_POSTGRESQL_READ1_DSN)},
			Policy:   dbresolver.RandomPolicy{},
		}))
		if err != nil {
			logger.GetLogger().
				WithField("error_code", "e3b7a1d9-12cd-4a38-9f0e-77f1b64f4f02").
				Errorf("unable to set up read replica: %v", err)
			return nil, err
		}
	}

	for _, model := range SchemaRegistry {
		if err := db.AutoMigrate(model); err != nil {
			logger.GetLogger().
				WithField("error_code", "1de09c27-5a46-4f05-bb6e-2f3f2ab0c9d4").
				Errorf("failed to auto migrate schema %T: %v", model, err)
			return nil, err
		}
	}
	return db, nil
}
