package db

import (
	"path/filepath"
	"testing"

	"gorm.io/gorm"
)

// NewTestDB opens a migrated sqlite database in a temp dir, closed on cleanup.
func NewTestDB(t testing.TB) *gorm.DB {
	t.Helper()

	db, err := Open("sqlite", filepath.Join(t.TempDir(), "lumina.db"))
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	t.Cleanup(func() { _ = Close(db) })
	return db
}
