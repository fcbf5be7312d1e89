package adapter

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/jackc/pgx/v5/stdlib" // pgx driver
)

func init() {
	Register("postgres", func() Adapter { return NewPostgresAdapter() })
}

// PostgresAdapter implements the Adapter interface for PostgreSQL using the
// pgx driver through database/sql.
type PostgresAdapter struct {
	db     *sql.DB
	config Config
}

// NewPostgresAdapter creates a new PostgreSQL adapter instance.
func NewPostgresAdapter() *PostgresAdapter {
	return &PostgresAdapter{}
}

// buildPostgresDSN builds a keyword/value DSN from the config.
// Defaults: host=localhost, port=5432, sslmode=disable.
func buildPostgresDSN(cfg Config) string {
	host := cfg.Host
	if host == "" {
		host = "localhost"
	}
	port := cfg.Port
	if port == 0 {
		port = 5432
	}
	sslmode := "disable"
	if v, ok := cfg.Options["sslmode"]; ok {
		sslmode = v
	}

	dsn := fmt.Sprintf("host=%s port=%d dbname=%s sslmode=%s", host, port, cfg.Database, sslmode)
	if cfg.Username != "" {
		dsn += " user=" + cfg.Username
	}
	if cfg.Password != "" {
		dsn += " password=" + cfg.Password
	}
	return dsn
}

// Connect establishes a connection to PostgreSQL.
func (a *PostgresAdapter) Connect(ctx context.Context, cfg Config) error {
	db, err := sql.Open("pgx", buildPostgresDSN(cfg))
	if err != nil {
		return fmt.Errorf("failed to open postgres connection: %w", err)
	}

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return fmt.Errorf("failed to ping postgres: %w", err)
	}

	a.db = db
	a.config = cfg

	return nil
}

// Close closes the PostgreSQL connection.
func (a *PostgresAdapter) Close() error {
	if a.db != nil {
		return a.db.Close()
	}
	return nil
}

// Exec executes a SQL statement that doesn't return rows.
func (a *PostgresAdapter) Exec(ctx context.Context, sqlStr string) (int64, error) {
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
func (a *PostgresAdapter) Query(ctx context.Context, sqlStr string) (*Rows, error) {
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

// ListTables returns table and view names outside the system schemas.
func (a *PostgresAdapter) ListTables(ctx context.Context) ([]string, error) {
	if a.db == nil {
		return nil, fmt.Errorf("database connection not established")
	}

	query := `
		SELECT table_name
		FROM information_schema.tables
		WHERE table_schema NOT IN ('pg_catalog', 'information_schema')
		ORDER BY table_name
	`
	return scanNames(ctx, a.db, query)
}

// DialectName returns the SQL dialect name for this adapter.
func (a *PostgresAdapter) DialectName() string {
	return "postgres"
}

// Ensure PostgresAdapter implements Adapter interface
var _ Adapter = (*PostgresAdapter)(nil)
