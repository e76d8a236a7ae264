package db

import (
	types "github.com/yungbote/questpath-backend/internal/domain"
	"gorm.io/gorm"
)

func AutoMigrateAll(db *gorm.DB) error {
	return db.AutoMigrate(
		// Identity
		&types.User{},

		// Goal aggregate
		&types.Goal{},
		&types.Roadmap{},
		&types.Level{},
	)
}
