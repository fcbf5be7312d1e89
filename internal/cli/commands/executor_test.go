package commands

import (
	"bytes"
	"context"
	"database/sql"
	"log/slog"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sqldeck-labs/sqldeck/internal/adapter"
	"github.com/sqldeck-labs/sqldeck/pkg/scanner"
)

// fakeAdapter routes Exec and Query to an sqlmock-backed database.
type fakeAdapter struct {
	db     *sql.DB
	name   string
	tables []string
}

func (f *fakeAdapter) Connect(ctx context.Context, cfg adapter.Config) error { return nil }

func (f *fakeAdapter) Close() error {
	if f.db != nil {
		return f.db.Close()
	}
	return nil
}

func (f *fakeAdapter) Exec(ctx context.Context, query string) (int64, error) {
	result, err := f.db.ExecContext(ctx, query)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}

func (f *fakeAdapter) Query(ctx context.Context, query string) (*adapter.Rows, error) {
	rows, err := f.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	return &adapter.Rows{Rows: rows}, nil
}

func (f *fakeAdapter) ListTables(ctx context.Context) ([]string, error) { return f.tables, nil }

func (f *fakeAdapter) DialectName() string { return f.name }

var _ adapter.Adapter = (*fakeAdapter)(nil)

func newMockSession(t *testing.T, format string) (*session, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherEqual))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	s := &session{
		adapter: &fakeAdapter{db: db, name: "postgres"},
		dialect: scanner.Postgres,
		format:  format,
		logger:  slog.New(slog.DiscardHandler),
	}
	return s, mock
}

func TestReturnsRows(t *testing.T) {
	tests := []struct {
		stmt string
		want bool
	}{
		{"SELECT 1", true},
		{"  select * from t", true},
		{"-- note\nSELECT 1", true},
		{"/* lead */ WITH x AS (SELECT 1) SELECT * FROM x", true},
		{"VALUES (1)", true},
		{"EXPLAIN SELECT 1", true},
		{"SHOW search_path", true},
		{"INSERT INTO t VALUES (1)", false},
		{"UPDATE t SET a = 1", false},
		{"CREATE TABLE t (a INT)", false},
		{"", false},
		{"-- only a comment", false},
	}

	for _, tt := range tests {
		t.Run(tt.stmt, func(t *testing.T) {
			assert.Equal(t, tt.want, returnsRows(tt.stmt, scanner.Postgres))
		})
	}
}

func TestStripTerminator(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"SELECT 1;", "SELECT 1"},
		{"  SELECT 1;  ", "SELECT 1"},
		{"SELECT 1", "SELECT 1"},
		{"SELECT 1 ;", "SELECT 1"},
		{";", ""},
		{"   ", ""},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, stripTerminator(tt.in))
	}
}

func TestDialectFor(t *testing.T) {
	assert.Equal(t, scanner.Oracle, dialectFor("oracle"))
	assert.Equal(t, scanner.Postgres, dialectFor("postgres"))
	assert.Equal(t, scanner.Postgres, dialectFor("duckdb"))
	// Unknown names fall back to Postgres rules.
	assert.Equal(t, scanner.Postgres, dialectFor("mystery"))
}

func TestSession_RunQuery(t *testing.T) {
	s, mock := newMockSession(t, "csv")

	mock.ExpectQuery("SELECT id, name FROM users").WillReturnRows(
		sqlmock.NewRows([]string{"id", "name"}).AddRow(1, "alice").AddRow(2, "bob"))

	var out bytes.Buffer
	stmts := scanner.Split("SELECT id, name FROM users;", s.dialect)
	require.Len(t, stmts, 1)
	require.NoError(t, s.run(context.Background(), &out, stmts[0]))

	assert.Equal(t, "id,name\n1,alice\n2,bob\n", out.String())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSession_RunExec(t *testing.T) {
	s, mock := newMockSession(t, "csv")

	mock.ExpectExec("INSERT INTO t VALUES (1)").WillReturnResult(sqlmock.NewResult(0, 2))

	var out bytes.Buffer
	stmts := scanner.Split("INSERT INTO t VALUES (1);", s.dialect)
	require.NoError(t, s.run(context.Background(), &out, stmts[0]))

	assert.Contains(t, out.String(), "OK, 2 rows affected")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSession_RunScriptInOrder(t *testing.T) {
	s, mock := newMockSession(t, "csv")

	mock.ExpectExec("CREATE TABLE t (a INT)").WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec("INSERT INTO t VALUES (1)").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery("SELECT a FROM t").WillReturnRows(
		sqlmock.NewRows([]string{"a"}).AddRow(1))

	var out bytes.Buffer
	script := "CREATE TABLE t (a INT); INSERT INTO t VALUES (1); SELECT a FROM t;"
	require.NoError(t, s.runScript(context.Background(), &out, script))

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSession_RunScriptStopsOnError(t *testing.T) {
	s, mock := newMockSession(t, "csv")

	mock.ExpectExec("DROP TABLE missing").WillReturnError(sql.ErrConnDone)

	var out bytes.Buffer
	err := s.runScript(context.Background(), &out, "DROP TABLE missing; SELECT 1;")
	require.Error(t, err)
	// The SELECT after the failing statement must not run.
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSession_QuotedSemicolonStaysOneStatement(t *testing.T) {
	s, mock := newMockSession(t, "csv")

	mock.ExpectQuery("SELECT 'a;b' AS v").WillReturnRows(
		sqlmock.NewRows([]string{"v"}).AddRow("a;b"))

	var out bytes.Buffer
	require.NoError(t, s.runScript(context.Background(), &out, "SELECT 'a;b' AS v;"))

	assert.Contains(t, out.String(), "a;b")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestNeedsCredentials(t *testing.T) {
	assert.True(t, needsCredentials("postgres"))
	assert.True(t, needsCredentials("oracle"))
	assert.False(t, needsCredentials("duckdb"))
}
