// Package testutils provides database setup and fixtures for integration
// tests. Tests run inside a transaction that rolls back on cleanup, so the
// test database stays clean between runs.
package testutils

import (
	"os"
	"testing"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"openclass/lms-backend/internal/model"
)

// SetupTestDB connects to the test database named by TEST_DATABASE_DSN,
// migrates the schema and hands the test a transaction that is rolled back
// when the test finishes. Tests are skipped when no test database is
// available, so the suite passes in environments without MySQL.
func SetupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := os.Getenv("TEST_DATABASE_DSN")
	if dsn == "" {
		t.Skip("TEST_DATABASE_DSN not set, skipping database test")
	}

	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Skipf("test database unreachable: %v", err)
	}

	if err := model.InitTable(db); err != nil {
		t.Fatalf("migrate test schema: %v", err)
	}

	tx := db.Begin()
	if tx.Error != nil {
		t.Fatalf("begin test transaction: %v", tx.Error)
	}
	t.Cleanup(func() {
		tx.Rollback()
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	})

	return tx
}
