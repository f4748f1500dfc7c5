package dbschema

import (
	"time"

	"github.com/openpl-dev/powerlifting-api/app/domain/cachestore"
	"github.com/openpl-dev/powerlifting-api/app/infrastructure/database"
)

func init() {
	database.RegisterSchemaForAutoMigrate(CacheEntry{})
}

type CacheEntry struct {
	BaseModel
	Key       string `gorm:"uniqueIndex;not null"`
	Value     string `gorm:"type:text"`
	ExpiresAt *time.Time `gorm:"index"`
}

func NewSchemaCacheEntry(e *cachestore.Entry) *CacheEntry {
	return &CacheEntry{
		Key:       e.Key,
		Value:     e.Value,
		ExpiresAt: e.ExpiresAt,
	}
}

func (e *CacheEntry) EtoD() *cachestore.Entry {
	return &cachestore.Entry{
		Key:       e.Key,
		Value:     e.Value,
		ExpiresAt: e.ExpiresAt,
		CreatedAt: e.CreatedAt,
		UpdatedAt: e.UpdatedAt,
	}
}
