package db

import (
	"fmt"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"jobfair/internal/model"
)

// NewMySQL returns a connected GORM DB instance. Driver errors such as
// duplicate keys are translated to gorm sentinels.
func NewMySQL(dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return nil, fmt.Errorf("connect mysql: %w", err)
	}
	return db, nil
}

func models() []interface{} {
	return []interface{}{
		&model.User{},
		&model.Company{},
		&model.CompanyDocument{},
		&model.Stand{},
		&model.Offer{},
		&model.Video{},
		&model.CompanyFiles{},
	}
}

// Migrate creates or updates every table.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(models()...); err != nil {
		return fmt.Errorf("auto-migrate: %w", err)
	}
	return nil
}

// Reset drops every table. Missing tables are ignored.
func Reset(db *gorm.DB) error {
	tables := models()
	// dependents first
	for i := len(tables) - 1; i >= 0; i-- {
		if err := db.Migrator().DropTable(tables[i]); err != nil {
			return fmt.Errorf("drop table: %w", err)
		}
	}
	return nil
}
