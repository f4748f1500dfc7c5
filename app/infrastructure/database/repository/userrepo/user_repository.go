package userrepo

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	domain "github.com/openpl-dev/powerlifting-api/app/domain/user"
	"github.com/openpl-dev/powerlifting-api/app/infrastructure/database/dbschema"
	"github.com/openpl-dev/powerlifting-api/app/utils/functional"
)

type UserGormRepository struct {
	db *gorm.DB
}

func NewUserGormRepository(db *gorm.DB) domain.UserRepository {
	return &UserGormRepository{db: db}
}

func (r *UserGormRepository) FindByID(ctx context.Context, id uint) (*domain.User, error) {
	var model dbschema.User
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&model).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return model.EtoD(), nil
}

func (r *UserGormRepository) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	var model dbschema.User
	err := r.db.WithContext(ctx).Where("email = ?", email).First(&model).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return model.EtoD(), nil
}

func (r *UserGormRepository) FindByFilter(ctx context.Context, filter domain.UserFilter) ([]*domain.User, error) {
	query := r.db.WithContext(ctx).Where("deleted = ?", false)
	if filter.Email != nil {
		query = query.Where("email = ?", *filter.Email)
	}
	if filter.Verified != nil {
		query = query.Where("verified = ?", *filter.Verified)
	}
	if filter.Admin != nil {
		query = query.Where("admin = ?", *filter.Admin)
	}
	var models []*dbschema.User
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	return functional.Map(models, func(m *dbschema.User) *domain.User {
		return m.EtoD()
	}), nil
}

// IncrementCallCount is a single UPDATE ... RETURNING, so concurrent calls
// from the same key never lose an increment.
func (r *UserGormRepository) IncrementCallCount(ctx context.Context, id uint) (int, error) {
	var model dbschema.User
	tx := r.db.WithContext(ctx).
		Model(&model).
		Clauses(clause.Returning{Columns: []clause.Column{{Name: "api_call_count"}}}).
		Where("id = ?", id).
		UpdateColumn("api_call_count", gorm.Expr("api_call_count + 1"))
	if tx.Error != nil {
		return 0, tx.Error
	}
	if tx.RowsAffected == 0 {
		return 0, gorm.ErrRecordNotFound
	}
	return model.ApiCallCount, nil
}

// IncrementKeyVersion atomically bumps the revocation counter and returns
// the version every subsequently issued token must carry.
func (r *UserGormRepository) IncrementKeyVersion(ctx context.Context, id uint) (int, error) {
	var model dbschema.User
	tx := r.db.WithContext(ctx).
		Model(&model).
		Clauses(clause.Returning{Columns: []clause.Column{{Name: "api_key_version"}}}).
		Where("id = ?", id).
		UpdateColumn("api_key_version", gorm.Expr("api_key_version + 1"))
	if tx.Error != nil {
		return 0, tx.Error
	}
	if tx.RowsAffected == 0 {
		return 0, gorm.ErrRecordNotFound
	}
	return model.ApiKeyVersion, nil
}

// FindVerifiedAtThreshold matches users sitting exactly on the 70% mark.
// The equality (not >=) is what keeps the warning one-shot per crossing.
func (r *UserGormRepository) FindVerifiedAtThreshold(ctx context.Context) ([]*domain.User, error) {
	var models []*dbschema.User
	err := r.db.WithContext(ctx).
		Where("deleted = ? AND verified = ?", false, true).
		Where("api_call_count = (api_call_limit * 7) / 10").
		Find(&models).Error
	if err != nil {
		return nil, err
	}
	return functional.Map(models, func(m *dbschema.User) *domain.User {
		return m.EtoD()
	}), nil
}

func (r *UserGormRepository) ResetCallCounts(ctx context.Context) (int64, error) {
	tx := r.db.WithContext(ctx).
		Model(&dbschema.User{}).
		Where("deleted = ? AND verified = ?", false, true).
		UpdateColumn("api_call_count", 0)
	return tx.RowsAffected, tx.Error
}
