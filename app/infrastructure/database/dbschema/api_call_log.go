package dbschema

import (
	"github.com/openpl-dev/powerlifting-api/app/domain/apicalllog"
	"github.com/openpl-dev/powerlifting-api/app/infrastructure/database"
)

func init() {
	database.RegisterSchemaForAutoMigrate(ApiCallLog{})
}

type ApiCallLog struct {
	BaseModel
	UserID uint   `gorm:"index;not null"`
	Path   string `gorm:"size:512"`
}

func NewSchemaApiCallLog(entry *apicalllog.ApiCallLog) *ApiCallLog {
	return &ApiCallLog{
		UserID: entry.UserID,
		Path:   entry.Path,
	}
}
