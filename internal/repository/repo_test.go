package repository

import (
	"fmt"
	"testing"

	"memories-chain/internal/domain/memory"
	"memories-chain/internal/domain/user"

	gormsqlite "gorm.io/driver/sqlite"
	"gorm.io/gorm"
	_ "modernc.org/sqlite"
)

// newTestDB opens an in-memory SQLite database (modernc.org/sqlite, no cgo)
// named after the test so parallel tests do not share state.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	dial := gormsqlite.Dialector{DriverName: "sqlite", DSN: dsn}
	db, err := gorm.Open(dial, &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to open sqlite (modernc): %v", err)
	}
	if err := db.AutoMigrate(&user.User{}, &memory.MemoryForm{}, &memory.FormOwner{}, &memory.Photo{}); err != nil {
		t.Fatalf("failed to automigrate: %v", err)
	}
	return db
}
