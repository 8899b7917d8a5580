package database

import (
	"database/sql"
	"fmt"
	"log"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/mrlokans/stacks/internal/entities"
)

// busyTimeoutMillis lets a second process wait for the writer instead of failing.
const busyTimeoutMillis = 5000

type Database struct {
	DB   *gorm.DB
	Path string
}

// Open connects to the SQLite file at dbPath and auto-migrates models.
func Open(dbPath string, models ...any) (*Database, error) {
	dsn := fmt.Sprintf("%s?_busy_timeout=%d", dbPath, busyTimeoutMillis)
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Warn),
		TranslateError: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := db.AutoMigrate(models...); err != nil {
		sqlDB, _ := db.DB()
		if sqlDB != nil {
			sqlDB.Close()
		}
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	return &Database{DB: db, Path: dbPath}, nil
}

// NewFilesDatabase opens the tagged file store (Files, Tags, FileTag).
func NewFilesDatabase(dbPath string) (*Database, error) {
	return Open(dbPath,
		&entities.File{},
		&entities.Tag{},
		&entities.FileTag{},
	)
}

// NewCatalogDatabase opens the library catalog (Users, Books, Borrowed_Books).
func NewCatalogDatabase(dbPath string) (*Database, error) {
	db, err := Open(dbPath,
		&entities.User{},
		&entities.Book{},
		&entities.BorrowRecord{},
	)
	if err != nil {
		return nil, err
	}
	log.Printf("Catalog database initialized at %s", dbPath)
	return db, nil
}

func (d *Database) Close() error {
	sqlDB, err := d.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// SQL returns the underlying *sql.DB, e.g. for the session store.
func (d *Database) SQL() (*sql.DB, error) {
	return d.DB.DB()
}

// Ping verifies the database file is reachable.
func (d *Database) Ping() error {
	sqlDB, err := d.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Ping()
}

// Transaction runs fn in a transaction that is rolled back when fn returns an
// error or panics.
func (d *Database) Transaction(fn func(tx *gorm.DB) error) error {
	return d.DB.Transaction(fn)
}
