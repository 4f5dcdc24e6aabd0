package db

import (
	"errors"
	"log"
	"os"

	"github.com/glebarez/sqlite"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// Open connects to Postgres using DATABASE_URL. When DATABASE_URL is
// unset and SQLITE_PATH is set, a local SQLite file is used instead.
func Open() (*gorm.DB, error) {
	if dsn := os.Getenv("DATABASE_URL"); dsn != "" {
		return gorm.Open(postgres.Open(dsn), &gorm.Config{})
	}
	if path := os.Getenv("SQLITE_PATH"); path != "" {
		return gorm.Open(sqlite.Open(path), &gorm.Config{})
	}
	return nil, errors.New("neither DATABASE_URL nor SQLITE_PATH is set")
}

// Migrate runs GORM auto-migrations for the core tables.
func Migrate(conn *gorm.DB) error {
	if conn == nil {
		return errors.New("db connection is nil")
	}
	if err := conn.AutoMigrate(
		&Game{},
		&Player{},
		&PlayerGame{},
		&Image{},
		&PromptChain{},
		&ChainStep{},
		&Vote{},
		&Event{},
	); err != nil {
		return err
	}
	log.Println("database migration complete")
	return nil
}
