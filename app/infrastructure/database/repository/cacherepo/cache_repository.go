package cacherepo

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	domain "github.com/openpl-dev/powerlifting-api/app/domain/cachestore"
	"github.com/openpl-dev/powerlifting-api/app/infrastructure/database/dbschema"
	"github.com/openpl-dev/powerlifting-api/app/utils/logger"
)

// CacheGormRepository is the durable cache store. It exclusively owns the
// cache_entry table; callers never touch rows directly.
type CacheGormRepository struct {
	db *gorm.DB
}

func NewCacheGormRepository(db *gorm.DB) domain.Store {
	return &CacheGormRepository{db: db}
}

func (r *CacheGormRepository) Get(ctx context.Context, key string) (string, bool, error) {
	var model dbschema.CacheEntry
	err := r.db.WithContext(ctx).Where("key = ?", key).First(&model).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	if model.EtoD().Expired(time.Now()) {
		// lazy expiry: an expired row is a miss, reap it on the way out
		if err := r.db.WithContext(ctx).Where("key = ?", key).Delete(&dbschema.CacheEntry{}).Error; err != nil {
			logger.GetLogger().Warnf("cache: failed to reap expired key %q: %v", key, err)
		}
		return "", false, nil
	}
	return model.Value, true, nil
}

func (r *CacheGormRepository) Set(ctx context.Context, key string, value string, ttl time.Duration) error {
	var expiresAt *time.Time
	if ttl > 0 {
		t := time.Now().Add(ttl)
		expiresAt = &t
	}
	model := dbschema.CacheEntry{
		Key:       key,
		Value:     value,
		ExpiresAt: expiresAt,
	}
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "expires_at", "updated_at"}),
	}).Create(&model).Error
}

func (r *CacheGormRepository) Del(ctx context.Context, key string) error {
	return r.db.WithContext(ctx).Where("key = ?", key).Delete(&dbschema.CacheEntry{}).Error
}

func (r *CacheGormRepository) DelPattern(ctx context.Context, pattern string) (int64, error) {
	tx := r.db.WithContext(ctx).Where("key LIKE ?", pattern).Delete(&dbschema.CacheEntry{})
	return tx.RowsAffected, tx.Error
}

func (r *CacheGormRepository) Keys(ctx context.Context, pattern string) ([]string, error) {
	keys := []string{}
	err := r.db.WithContext(ctx).
		Model(&dbschema.CacheEntry{}).
		Where("key LIKE ?", pattern).
		Order("key").
		Pluck("key", &keys).Error
	return keys, err
}

func (r *CacheGormRepository) ClearExpired(ctx context.Context) (int64, error) {
	tx := r.db.WithContext(ctx).
		Where("expires_at IS NOT NULL AND expires_at < ?", time.Now()).
		Delete(&dbschema.CacheEntry{})
	return tx.RowsAffected, tx.Error
}

func (r *CacheGormRepository) ClearAll(ctx context.Context) error {
	return r.db.WithContext(ctx).Where("key LIKE ?", "%").Delete(&dbschema.CacheEntry{}).Error
}

func (r *CacheGormRepository) Ready(ctx context.Context) bool {
	sqlDB, err := r.db.DB()
	if err != nil {
		return false
	}
	return sqlDB.PingContext(ctx) == nil
}
