// Package adapter provides database adapter interfaces and implementations
// for the sqldeck console.
package adapter

import (
	"context"
	"database/sql"
)

// Config holds the configuration for connecting to a database.
type Config struct {
	// Type specifies the database type (e.g., "oracle", "postgres", "duckdb")
	Type string

	// Path is the file path for file-based databases (DuckDB).
	// Use ":memory:" for an in-memory database.
	Path string

	// Host is the hostname for network-based databases
	Host string

	// Port is the port number for network-based databases
	Port int

	// Database is the database name (or Oracle service name)
	Database string

	// Username for authentication
	Username string

	// Password for authentication
	Password string

	// Options contains additional driver-specific options
	Options map[string]string
}

// Rows wraps sql.Rows to provide a consistent interface across adapters.
type Rows struct {
	*sql.Rows
}

// Adapter defines the interface that all database adapters must implement.
type Adapter interface {
	// Connect establishes a connection to the database using the provided config.
	Connect(ctx context.Context, cfg Config) error

	// Close closes the database connection and releases resources.
	Close() error

	// Exec executes a SQL statement that doesn't return rows and reports
	// the number of affected rows, or -1 when the driver cannot tell.
	Exec(ctx context.Context, sql string) (int64, error)

	// Query executes a SQL statement that returns rows.
	Query(ctx context.Context, sql string) (*Rows, error)

	// ListTables returns the table and view names visible to the session,
	// sorted by name.
	ListTables(ctx context.Context) ([]string, error)

	// DialectName returns the SQL dialect name for this adapter
	// (e.g., "oracle", "postgres", "duckdb"). This is used to select the
	// lexical dialect for statement splitting.
	DialectName() string
}
