package database

import (
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// OpenInMemory opens a private, migrated in-memory SQLite database. Each call
// gets its own database so tests do not see each other's rows.
func OpenInMemory() (*gorm.DB, error) {
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.New().String())
	db, err := Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}
	// One connection keeps SQLite from reporting "table is locked" while a
	// transaction is open.
	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(1)
	return db, nil
}
