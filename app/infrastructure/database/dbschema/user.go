package dbschema

import (
	"github.com/openpl-dev/powerlifting-api/app/domain/user"
	"github.com/openpl-dev/powerlifting-api/app/infrastructure/database"
)

func init() {
	database.RegisterSchemaForAutoMigrate(User{})
}

type User struct {
	BaseModel
	Name          string
	Email         string `gorm:"uniqueIndex"`
	ApiCallCount  int    `gorm:"default:0"`
	ApiCallLimit  int    `gorm:"default:1000"`
	ApiKeyVersion int    `gorm:"default:1"`
	Admin         bool   `gorm:"default:false"`
	Verified      bool   `gorm:"default:false;index"`
	Deleted       bool   `gorm:"default:false"`
}

func (u *User) EtoD() *user.User {
	return &user.User{
		ID:            u.ID,
		Email:         u.Email,
		Name:          u.Name,
		ApiCallCount:  u.ApiCallCount,
		ApiCallLimit:  u.ApiCallLimit,
		ApiKeyVersion: u.ApiKeyVersion,
		Admin:         u.Admin,
		Verified:      u.Verified,
		Deleted:       u.Deleted,
	}
}
