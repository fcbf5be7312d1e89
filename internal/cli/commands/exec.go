package commands

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/sqldeck-labs/sqldeck/internal/textenc"
)

// ExecOptions holds options for the exec command.
type ExecOptions struct {
	Query string
}

// NewExecCommand creates the exec command.
func NewExecCommand() *cobra.Command {
	opts := &ExecOptions{}

	cmd := &cobra.Command{
		Use:   "exec [files...]",
		Short: "Execute SQL statements",
		Long: `Execute SQL against the configured database.

Input is split into individual statements on top-level semicolons, so
semicolons inside strings, comments, quoted identifiers, Oracle q-quotes,
and Postgres dollar-quotes never break a statement apart. Statements run
in order; execution stops at the first failure.

SQL can come from the --query flag, one or more files, or piped stdin.
With no input on a terminal, an interactive console is started.`,
		Example: `  # Execute SQL directly
  sqldeck exec -q "SELECT * FROM users;"

  # Run script files
  sqldeck exec schema.sql seed.sql

  # Pipe from stdin
  cat report.sql | sqldeck exec

  # Legacy encodings
  sqldeck exec --encoding cp1251 old_report.sql

  # Interactive console
  sqldeck exec`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runExec(cmd, args, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.Query, "query", "q", "", "SQL to execute")

	return cmd
}

func runExec(cmd *cobra.Command, args []string, opts *ExecOptions) error {
	cfg := getConfig(cmd)
	ctx := cmd.Context()

	// Determine SQL source
	var input string
	switch {
	case opts.Query != "":
		input = opts.Query
	case len(args) > 0:
		scripts, err := loadScripts(cmd, args, cfg.Encoding)
		if err != nil {
			return err
		}
		input = strings.Join(scripts, "\n")
	case !isTerminal(os.Stdin):
		// Read from stdin (piped input)
		content, err := io.ReadAll(os.Stdin)
		if err != nil {
			return fmt.Errorf("failed to read stdin: %w", err)
		}
		input, err = textenc.Decode(content, cfg.Encoding)
		if err != nil {
			return err
		}
	default:
		// No input, TTY detected - enter interactive mode
		return runConsole(cmd)
	}

	s, err := newSession(ctx, cfg)
	if err != nil {
		return err
	}
	defer s.close()

	return s.runScript(ctx, cmd.OutOrStdout(), input)
}

// loadScripts reads and decodes the given files concurrently, preserving
// argument order in the result.
func loadScripts(cmd *cobra.Command, paths []string, encoding string) ([]string, error) {
	g, ctx := errgroup.WithContext(cmd.Context())
	scripts := make([]string, len(paths))

	for i, path := range paths {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			content, err := os.ReadFile(path)
			if err != nil {
				return fmt.Errorf("failed to read %s: %w", path, err)
			}
			decoded, err := textenc.Decode(content, encoding)
			if err != nil {
				return fmt.Errorf("%s: %w", path, err)
			}
			scripts[i] = decoded
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return scripts, nil
}
