package sqlite

import (
	"database/sql"
	"fmt"
	"strings"

	"github.com/rpggio/ballotdesk/migrations"
	_ "modernc.org/sqlite"
)

// MemoryDSN opens a database that lives as long as the process.
const MemoryDSN = ":memory:"

// DB wraps a SQLite database connection
type DB struct {
	*sql.DB
}

// New creates a new SQLite database connection. The pool is held to one
// connection: an in-memory database exists per connection, and SQLite
// serializes writers anyway.
func New(dataSourceName string) (*DB, error) {
	db, err := sql.Open("sqlite", dataSourceName)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	db.SetMaxOpenConns(1)

	// Enable foreign keys
	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to enable foreign keys: %w", err)
	}

	return &DB{db}, nil
}

// IsMemory reports whether the DSN names an in-memory database.
func IsMemory(dataSourceName string) bool {
	return dataSourceName == MemoryDSN || strings.Contains(dataSourceName, "mode=memory")
}

// RunMigrations applies the embedded schema. It is safe to run on every start.
func (db *DB) RunMigrations() error {
	migration, err := migrations.FS.ReadFile(migrations.InitialSchema)
	if err != nil {
		return fmt.Errorf("failed to read migrations: %w", err)
	}

	if _, err := db.Exec(string(migration)); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	return nil
}
