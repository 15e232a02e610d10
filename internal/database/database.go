package database

import (
	"fmt"
	"strings"

	"gorm.io/driver/postgres"
	gormsqlite "gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"barbershop/internal/domain"

	_ "modernc.org/sqlite"
)

// Connect opens the store behind the given DSN: postgres:// URLs go to
// PostgreSQL, anything else is treated as an SQLite path (":memory:" works
// for tests).
func Connect(dsn string) (*gorm.DB, error) {
	cfg := &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	}

	if strings.HasPrefix(dsn, "postgres://") || strings.HasPrefix(dsn, "postgresql://") {
		return gorm.Open(postgres.Open(dsn), cfg)
	}

	return gorm.Open(
		gormsqlite.New(gormsqlite.Config{
			DriverName: "sqlite",
			DSN:        dsn,
		}),
		cfg,
	)
}

// Migrate creates or updates every table the service uses.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&domain.Booking{},
		&domain.BlockedDate{},
		&domain.Settings{},
		&domain.Service{},
		&domain.SlotOverride{},
	); err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}
	return nil
}
