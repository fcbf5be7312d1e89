package commands

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/chzyer/readline"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/sqldeck-labs/sqldeck/pkg/scanner"
)

const replPrompt = "sqldeck> "

// NewReplCommand creates the repl command.
func NewReplCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "repl",
		Short: "Start the interactive console",
		Long: `Start the interactive SQL console.

Statements execute when a top-level semicolon is entered; semicolons
inside strings, comments, and dialect quoting constructs are never
statement boundaries. When a construct is left open, the prompt changes
to show what is still unclosed.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runConsole(cmd)
		},
	}
}

// runConsole starts the interactive console.
func runConsole(cmd *cobra.Command) error {
	cfg := getConfig(cmd)
	ctx := cmd.Context()

	s, err := newSession(ctx, cfg)
	if err != nil {
		return err
	}
	defer s.close()

	completer := newTableCompleter(ctx, s)

	// Line-editing history lives next to the statement history database.
	historyFile := filepath.Join(filepath.Dir(cfg.HistoryPath), "readline_history")

	rl, err := readline.NewEx(&readline.Config{
		Prompt:          replPrompt,
		HistoryFile:     historyFile,
		AutoComplete:    completer,
		InterruptPrompt: "^C",
		EOFPrompt:       ".quit",
	})
	if err != nil {
		return fmt.Errorf("failed to initialize console: %w", err)
	}
	defer func() { _ = rl.Close() }()

	out := cmd.OutOrStdout()
	_, _ = fmt.Fprintf(out, "sqldeck console (%s)\n", s.adapter.DialectName())
	_, _ = fmt.Fprintln(out, "Type .help for commands, .quit to exit")
	_, _ = fmt.Fprintln(out)

	var buffer strings.Builder
	for {
		line, err := rl.Readline()
		if errors.Is(err, readline.ErrInterrupt) {
			buffer.Reset()
			rl.SetPrompt(replPrompt)
			continue
		}
		if errors.Is(err, io.EOF) {
			// Flush whatever is pending before exiting.
			if pending := buffer.String(); strings.TrimSpace(pending) != "" {
				if err := s.runScript(ctx, out, pending); err != nil {
					_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "Error: %v\n", err)
				}
			}
			break
		}

		// Dot-commands only apply at the start of a statement.
		if buffer.Len() == 0 {
			trimmed := strings.TrimSpace(line)
			if trimmed == "" {
				continue
			}
			if strings.HasPrefix(trimmed, ".") {
				if quit := handleDotCommand(ctx, cmd, s, trimmed); quit {
					break
				}
				continue
			}
		}

		buffer.WriteString(line)
		buffer.WriteString("\n")

		// Keep reading while the buffer ends mid-statement. The prompt
		// shows which construct is still open.
		input := buffer.String()
		if scanner.Pending(input, s.dialect) {
			rl.SetPrompt(continuationPrompt(input, s.dialect))
			continue
		}
		rl.SetPrompt(replPrompt)
		buffer.Reset()

		if err := s.runScript(ctx, out, input); err != nil {
			_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "Error: %v\n", err)
		}
		_, _ = fmt.Fprintln(out)
	}

	return nil
}

// continuationPrompt picks the secondary prompt from the construct left
// open at the end of the buffer.
func continuationPrompt(input string, dialect scanner.Dialect) string {
	tokens := scanner.Tokenize(input, dialect)
	if len(tokens) == 0 {
		return "   ...> "
	}
	switch tokens[len(tokens)-1].Kind {
	case scanner.SingleStringUnterminated:
		return "     '> "
	case scanner.QuotedIdentUnterminated:
		return "     \"> "
	case scanner.BlockCommentUnterminated:
		return "     *> "
	case scanner.DollarStringUnterminated:
		return "     $> "
	case scanner.QStringUnterminated:
		return "     q> "
	default:
		return "   ...> "
	}
}

// handleDotCommand executes a console command. It returns true when the
// console should exit.
func handleDotCommand(ctx context.Context, cmd *cobra.Command, s *session, line string) bool {
	parts := strings.Fields(line)
	command := strings.ToLower(parts[0])
	out := cmd.OutOrStdout()

	switch command {
	case ".quit", ".exit":
		return true

	case ".help":
		printConsoleHelp(out)

	case ".tables":
		names, err := s.adapter.ListTables(ctx)
		if err != nil {
			_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "Error: %v\n", err)
			return false
		}
		if len(names) == 0 {
			_, _ = fmt.Fprintln(out, "(no tables)")
			return false
		}
		for _, name := range names {
			_, _ = fmt.Fprintln(out, name)
		}

	case ".history":
		limit := 20
		if len(parts) > 1 {
			if n, err := strconv.Atoi(parts[1]); err == nil && n > 0 {
				limit = n
			}
		}
		printHistory(cmd, s, limit)

	case ".clear":
		fmt.Print("\033[H\033[2J")

	default:
		_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "Unknown command: %s (type .help for commands)\n", command)
	}
	return false
}

func printHistory(cmd *cobra.Command, s *session, limit int) {
	if s.store == nil {
		_, _ = fmt.Fprintln(cmd.ErrOrStderr(), "History is disabled (enable with --history)")
		return
	}

	entries, err := s.store.Recent(limit)
	if err != nil {
		_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "Error: %v\n", err)
		return
	}
	if len(entries) == 0 {
		_, _ = fmt.Fprintln(cmd.OutOrStdout(), "(empty)")
		return
	}

	t := table.NewWriter()
	t.SetOutputMirror(cmd.OutOrStdout())
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"Executed", "Statement", "Rows", "Error"})
	for _, entry := range entries {
		stmt := entry.Statement
		if len(stmt) > 60 {
			stmt = stmt[:57] + "..."
		}
		t.AppendRow(table.Row{
			entry.ExecutedAt.Format("2006-01-02 15:04:05"),
			stmt,
			entry.RowsAffected,
			entry.Error,
		})
	}
	t.Render()
}

func printConsoleHelp(w io.Writer) {
	help := `
Commands:
  .help           Show this help message
  .tables         List tables in the current database
  .history [n]    Show the last n executed statements
  .clear          Clear the screen
  .quit / .exit   Exit the console

Tips:
  - Statements run when a top-level semicolon (;) is entered
  - A quote or comment left open changes the prompt ('>, ">, *>, $>, q>)
  - Tab completion works for table names
`
	_, _ = fmt.Fprintln(w, help)
}

// newTableCompleter creates a readline completer for table names.
func newTableCompleter(ctx context.Context, s *session) *readline.PrefixCompleter {
	var items []readline.PrefixCompleterInterface

	names, err := s.adapter.ListTables(ctx)
	if err == nil {
		for _, name := range names {
			items = append(items, readline.PcItem(name))
		}
	}

	// Add dot-commands
	items = append(items,
		readline.PcItem(".help"),
		readline.PcItem(".tables"),
		readline.PcItem(".history"),
		readline.PcItem(".clear"),
		readline.PcItem(".quit"),
		readline.PcItem(".exit"),
	)

	return readline.NewPrefixCompleter(items...)
}
