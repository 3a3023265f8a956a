// Package testutil provides helpers for store-backed tests. A live
// Postgres is required; tests read the DSN from RESERVA_TEST_DATABASE_URL
// and skip when it is unset.
package testutil

import (
	"os"
	"testing"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"reserva/internal/shared/database"
)

// OpenDB connects to the test database, runs migrations, and truncates
// all tables so each test starts from an empty store.
func OpenDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := os.Getenv("RESERVA_TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("RESERVA_TEST_DATABASE_URL not set, skipping store-backed test")
	}

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to connect to test database: %v", err)
	}

	if err := database.Migrate(db); err != nil {
		t.Fatalf("failed to run migrations: %v", err)
	}
	if err := database.MigrateConstraints(db); err != nil {
		t.Fatalf("failed to apply constraints: %v", err)
	}

	err = db.Exec(`TRUNCATE settlements, reservations, requesters, events, venues RESTART IDENTITY CASCADE`).Error
	if err != nil {
		t.Fatalf("failed to truncate tables: %v", err)
	}

	return db
}
