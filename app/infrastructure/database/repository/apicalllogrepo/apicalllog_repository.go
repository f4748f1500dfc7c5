package apicalllogrepo

import (
	"context"

	"gorm.io/gorm"

	domain "github.com/openpl-dev/powerlifting-api/app/domain/apicalllog"
	"github.com/openpl-dev/powerlifting-api/app/infrastructure/database/dbschema"
)

type ApiCallLogGormRepository struct {
	db *gorm.DB
}

func NewApiCallLogGormRepository(db *gorm.DB) domain.ApiCallLogRepository {
	return &ApiCallLogGormRepository{db: db}
}

func (r *ApiCallLogGormRepository) Create(ctx context.Context, entry *domain.ApiCallLog) error {
	model := dbschema.NewSchemaApiCallLog(entry)
	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		return err
	}
	entry.ID = model.ID
	entry.CreatedAt = model.CreatedAt
	return nil
}
