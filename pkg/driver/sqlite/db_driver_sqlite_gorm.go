// Package sqlite provides a cgo-free sqlite-backed database driver, used for
// local development and for tests that need real transactions without a
// postgres server.
package sqlite

import (
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/teaguenet/shadebar/pkg/driver"
	"github.com/teaguenet/shadebar/pkg/models"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// OpenConnection opens a sqlite database at the supplied path using gorm.
func OpenConnection(path string) (*driver.DB, error) {
	conn, err := gorm.Open(sqlite.Open(path), &gorm.Config{})
	if err != nil {
		return nil, err
	}
	return &driver.DB{Gorm: conn}, nil
}

// NewTestDB returns an in-memory database with the full application schema
// migrated. Each call returns an isolated database. The connection pool is
// pinned to a single connection because every in-memory sqlite connection
// sees its own database.
func NewTestDB(t *testing.T) *driver.DB {
	t.Helper()
	conn, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open in-memory database: %s", err.Error())
	}
	sqlDB, err := conn.DB()
	if err != nil {
		t.Fatalf("failed to get sql.DB from gorm: %s", err.Error())
	}
	sqlDB.SetMaxOpenConns(1)
	if err := conn.AutoMigrate(&models.Item{}, &models.Variant{}, &models.Order{}, &models.OrderLine{}); err != nil {
		t.Fatalf("failed to migrate test schema: %s", err.Error())
	}
	t.Cleanup(func() { sqlDB.Close() })
	return &driver.DB{Gorm: conn}
}
