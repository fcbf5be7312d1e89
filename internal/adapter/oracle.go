package adapter

import (
	"context"
	"database/sql"
	"fmt"

	go_ora "github.com/sijms/go-ora/v2"
)

func init() {
	Register("oracle", func() Adapter { return NewOracleAdapter() })
}

// OracleAdapter implements the Adapter interface for Oracle using the
// pure-Go go-ora driver. The Config.Database field carries the service name.
type OracleAdapter struct {
	db     *sql.DB
	config Config
}

// NewOracleAdapter creates a new Oracle adapter instance.
func NewOracleAdapter() *OracleAdapter {
	return &OracleAdapter{}
}

// buildOracleURL builds a go-ora connection URL from the config.
// Default port is 1521.
func buildOracleURL(cfg Config) string {
	host := cfg.Host
	if host == "" {
		host = "localhost"
	}
	port := cfg.Port
	if port == 0 {
		port = 1521
	}
	return go_ora.BuildUrl(host, port, cfg.Database, cfg.Username, cfg.Password, cfg.Options)
}

// Connect establishes a connection to Oracle.
func (a *OracleAdapter) Connect(ctx context.Context, cfg Config) error {
	db, err := sql.Open("oracle", buildOracleURL(cfg))
	if err != nil {
		return fmt.Errorf("failed to open oracle connection: %w", err)
	}

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return fmt.Errorf("failed to ping oracle: %w", err)
	}

	a.db = db
	a.config = cfg

	return nil
}

// Close closes the Oracle connection.
func (a *OracleAdapter) Close() error {
	if a.db != nil {
		return a.db.Close()
	}
	return nil
}

// Exec executes a SQL statement that doesn't return rows.
func (a *OracleAdapter) Exec(ctx context.Context, sqlStr string) (int64, error) {
	if a.db == nil {
		return 0, fmt.Errorf("database connection not established")
	}

	res, err := a.db.ExecContext(ctx, sqlStr)
	if err != nil {
		return 0, fmt.Errorf("failed to execute SQL: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return -1, nil
	}
	return affected, nil
}

// Query executes a SQL statement that returns rows.
func (a *OracleAdapter) Query(ctx context.Context, sqlStr string) (*Rows, error) {
	if a.db == nil {
		return nil, fmt.Errorf("database connection not established")
	}

	//nolint:rowserrcheck // rows.Err() must be checked by caller after iteration completes
	rows, err := a.db.QueryContext(ctx, sqlStr)
	if err != nil {
		return nil, fmt.Errorf("failed to execute query: %w", err)
	}

	return &Rows{Rows: rows}, nil
}

// ListTables returns the tables owned by the connected user.
func (a *OracleAdapter) ListTables(ctx context.Context) ([]string, error) {
	if a.db == nil {
		return nil, fmt.Errorf("database connection not established")
	}

	return scanNames(ctx, a.db, "SELECT table_name FROM user_tables ORDER BY table_name")
}

// DialectName returns the SQL dialect name for this adapter.
func (a *OracleAdapter) DialectName() string {
	return "oracle"
}

// Ensure OracleAdapter implements Adapter interface
var _ Adapter = (*OracleAdapter)(nil)
