package testhelpers

import (
	"fmt"
	"testing"

	"github.com/Tofik-Raza/HireSense-AI/internal/models"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// SetupTestDB creates an isolated in-memory SQLite database for tests.
// The connection pool is capped at one so concurrent transactions serialize
// instead of tripping SQLite's write lock.
func SetupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{TranslateError: true})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("failed to access underlying connection: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)

	if err := db.AutoMigrate(
		&models.Candidate{},
		&models.Interview{},
		&models.Question{},
		&models.Answer{},
	); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}
	return db
}
