package testutil

import (
	"fmt"
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"ewastemap/internal/model"
)

// OpenInMemoryDB opens an in-memory SQLite database and applies migrations.
// Each test gets its own named database so state never leaks between tests.
func OpenInMemoryDB(t *testing.T, name string) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", name)
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}

	if err := db.AutoMigrate(&model.User{}, &model.Marker{}, &model.LoginLog{}, &model.OperationLog{}); err != nil {
		t.Fatalf("migrate test db: %v", err)
	}

	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})

	return db
}

// ValidMarkerPayload returns a marker creation payload that passes every
// validation rule.
func ValidMarkerPayload() map[string]interface{} {
	return map[string]interface{}{
		"lat":      18.5204,
		"lng":      73.8567,
		"state":    "Maharashtra",
		"city":     "Pune",
		"locality": "Kothrud",
		"category": "devices",
		"contact":  "+91 98765 43210",
	}
}
