// Package store holds the embedded SQLite database behind the wine review
// views: opening it, bulk loading it from CSV, and running view queries.
package store

import (
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"

	"github.com/aidanlsb/winereview/internal/logging"
)

// Database is the SQLite database handle.
type Database struct {
	db   *sql.DB
	path string
	log  *slog.Logger
}

// DB returns the underlying sql.DB for advanced queries.
func (d *Database) DB() *sql.DB {
	return d.db
}

// Path returns the database file path, or ":memory:".
func (d *Database) Path() string {
	return d.path
}

// Open opens or creates the database file at path.
func Open(path string) (*Database, error) {
	if dir := filepath.Dir(path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	}
	return open(path)
}

// OpenInMemory opens an in-memory database (for testing).
func OpenInMemory() (*Database, error) {
	return open(":memory:")
}

func open(path string) (*Database, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	// One connection: the session is single-threaded and an in-memory
	// database exists per connection.
	db.SetMaxOpenConns(1)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to open database %s: %w", path, err)
	}

	d := &Database{db: db, path: path, log: logging.Get()}
	d.log.Debug("database opened", "path", path)
	return d, nil
}

// SetLogger replaces the logger used for this database and its executors.
func (d *Database) SetLogger(l *slog.Logger) {
	if l != nil {
		d.log = l
	}
}

// Close closes the database.
func (d *Database) Close() error {
	d.log.Debug("database closed", "path", d.path)
	return d.db.Close()
}
