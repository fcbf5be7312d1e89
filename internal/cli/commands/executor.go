// Package commands implements the sqldeck CLI commands.
package commands

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/sqldeck-labs/sqldeck/internal/adapter"
	"github.com/sqldeck-labs/sqldeck/internal/cli/config"
	"github.com/sqldeck-labs/sqldeck/internal/history"
	"github.com/sqldeck-labs/sqldeck/pkg/scanner"
)

// session bundles a live database connection with everything statement
// execution needs: the dialect for splitting, the output format, and the
// optional history store.
type session struct {
	adapter adapter.Adapter
	dialect scanner.Dialect
	store   *history.Store
	format  string
	logger  *slog.Logger
}

// newSession connects to the configured database and opens the history
// store if enabled.
func newSession(ctx context.Context, cfg *config.Config) (*session, error) {
	password := cfg.Password
	if password == "" && needsCredentials(cfg.Type) && isTerminal(os.Stdin) {
		p, err := promptPassword(cfg.User)
		if err != nil {
			return nil, err
		}
		password = p
	}

	adapterCfg := adapter.Config{
		Type:     cfg.Type,
		Path:     cfg.Database,
		Host:     cfg.Host,
		Port:     cfg.Port,
		Database: cfg.Database,
		Username: cfg.User,
		Password: password,
	}
	ad, err := adapter.NewAdapter(adapterCfg)
	if err != nil {
		return nil, err
	}
	if err := ad.Connect(ctx, adapterCfg); err != nil {
		return nil, fmt.Errorf("failed to connect to %s: %w", cfg.Type, err)
	}

	s := &session{
		adapter: ad,
		dialect: dialectFor(ad.DialectName()),
		format:  cfg.Output,
		logger:  config.GetLogger(ctx),
	}

	if cfg.History {
		store := history.NewStore()
		path := cfg.HistoryPath
		if dir := filepath.Dir(path); dir != "." && dir != "" {
			if err := os.MkdirAll(dir, 0750); err != nil {
				ad.Close()
				return nil, fmt.Errorf("failed to create history directory: %w", err)
			}
		}
		if err := store.Open(path); err != nil {
			ad.Close()
			return nil, err
		}
		s.store = store
	}

	return s, nil
}

// close releases the connection and the history store.
func (s *session) close() {
	if s.store != nil {
		_ = s.store.Close()
	}
	_ = s.adapter.Close()
}

// needsCredentials reports whether the adapter type is a network database
// that expects a username and password.
func needsCredentials(adapterType string) bool {
	return adapterType != "duckdb"
}

// promptPassword reads a password from the terminal without echo.
func promptPassword(user string) (string, error) {
	if user != "" {
		fmt.Fprintf(os.Stderr, "Password for %s: ", user)
	} else {
		fmt.Fprint(os.Stderr, "Password: ")
	}
	p, err := term.ReadPassword(int(os.Stdin.Fd()))
	fmt.Fprintln(os.Stderr)
	if err != nil {
		return "", fmt.Errorf("failed to read password: %w", err)
	}
	return string(p), nil
}

// dialectFor maps an adapter name to the scanner dialect used for
// splitting its input. DuckDB follows Postgres quoting rules.
func dialectFor(adapterName string) scanner.Dialect {
	d, err := scanner.ParseDialect(adapterName)
	if err != nil {
		return scanner.Postgres
	}
	return d
}

// rowReturningKeywords are the leading keywords of statements executed
// through Query rather than Exec.
var rowReturningKeywords = map[string]bool{
	"select":   true,
	"with":     true,
	"values":   true,
	"show":     true,
	"explain":  true,
	"describe": true,
	"desc":     true,
	"pragma":   true,
	"table":    true,
}

// returnsRows classifies a statement by its first significant token.
func returnsRows(stmt string, dialect scanner.Dialect) bool {
	for _, tok := range scanner.Tokenize(stmt, dialect) {
		if tok.Kind.Trivia() {
			continue
		}
		return tok.Kind == scanner.Ident && rowReturningKeywords[strings.ToLower(tok.Text)]
	}
	return false
}

// stripTerminator removes the trailing semicolon and surrounding
// whitespace so drivers that reject terminators (Oracle) accept the text.
func stripTerminator(text string) string {
	text = strings.TrimSpace(text)
	return strings.TrimSpace(strings.TrimSuffix(text, ";"))
}

// run executes a single split statement and renders its result.
func (s *session) run(ctx context.Context, w io.Writer, stmt scanner.Statement) error {
	sqlText := stripTerminator(stmt.Text)
	if sqlText == "" {
		return nil
	}

	entry := &history.Entry{
		Dialect:    s.dialect.String(),
		Statement:  sqlText,
		Terminated: stmt.Terminated,
	}

	var runErr error
	if returnsRows(sqlText, s.dialect) {
		var rows *adapter.Rows
		rows, runErr = s.adapter.Query(ctx, sqlText)
		if runErr == nil {
			runErr = renderResults(w, rows.Rows, s.format)
			_ = rows.Close()
		}
	} else {
		var affected int64
		affected, runErr = s.adapter.Exec(ctx, sqlText)
		if runErr == nil {
			entry.RowsAffected = affected
			if affected >= 0 {
				fmt.Fprintf(w, "OK, %d rows affected\n", affected)
			} else {
				fmt.Fprintln(w, "OK")
			}
		}
	}

	if runErr != nil {
		entry.Error = runErr.Error()
	}
	s.record(entry)

	return runErr
}

// runScript splits input into statements and executes them in order.
// Execution stops at the first failing statement.
func (s *session) runScript(ctx context.Context, w io.Writer, input string) error {
	for _, stmt := range scanner.Split(input, s.dialect) {
		if err := s.run(ctx, w, stmt); err != nil {
			return err
		}
	}
	return nil
}

// record stores a history entry, logging failures instead of surfacing
// them to the user.
func (s *session) record(entry *history.Entry) {
	if s.store == nil {
		return
	}
	if err := s.store.Record(entry); err != nil {
		s.logger.Warn("failed to record history entry", "error", err)
	}
}

// isTerminal reports whether f is attached to a terminal.
func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

// getConfig retrieves the loaded config from the command context.
func getConfig(cmd *cobra.Command) *config.Config {
	if cfg := config.GetConfig(cmd.Context()); cfg != nil {
		return cfg
	}
	return &config.Config{
		Type:     config.DefaultType,
		Encoding: config.DefaultEncoding,
		Output:   config.DefaultOutput,
	}
}
