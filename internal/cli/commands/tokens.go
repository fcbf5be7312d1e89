package commands

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/sqldeck-labs/sqldeck/pkg/scanner"
)

// TokensOptions holds options for the tokens command.
type TokensOptions struct {
	Dialect string
	Split   bool
	Format  string
}

// NewTokensCommand creates the tokens command.
func NewTokensCommand() *cobra.Command {
	opts := &TokensOptions{}

	cmd := &cobra.Command{
		Use:   "tokens [SQL]",
		Short: "Show how input is tokenized and split",
		Long: `Tokenize SQL and print the resulting tokens with their spans.

With --split, print statement spans instead of tokens. Useful for
debugging why a script was split at a particular semicolon, or why the
console keeps asking for more input.`,
		Example: `  sqldeck tokens "SELECT 'a;b' FROM t;"

  # Statement spans instead of tokens
  sqldeck tokens --split "SELECT 1; SELECT 2"

  # Oracle quoting rules
  sqldeck tokens --dialect oracle "q'[it's]'"

  # From stdin
  cat script.sql | sqldeck tokens --split`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTokens(cmd, args, opts)
		},
	}

	cmd.Flags().StringVar(&opts.Dialect, "dialect", "", "Dialect for quoting rules: oracle, postgres (default: configured type)")
	cmd.Flags().BoolVar(&opts.Split, "split", false, "Show statement spans instead of tokens")
	cmd.Flags().StringVarP(&opts.Format, "format", "f", "table", "Output format: table, json")

	return cmd
}

func runTokens(cmd *cobra.Command, args []string, opts *TokensOptions) error {
	cfg := getConfig(cmd)

	name := opts.Dialect
	if name == "" {
		name = cfg.Type
	}
	dialect, err := scanner.ParseDialect(name)
	if err != nil {
		return err
	}

	var input string
	if len(args) > 0 {
		input = strings.Join(args, " ")
	} else {
		content, err := io.ReadAll(os.Stdin)
		if err != nil {
			return fmt.Errorf("failed to read stdin: %w", err)
		}
		input = string(content)
	}

	out := cmd.OutOrStdout()
	if opts.Split {
		return printStatements(out, scanner.Split(input, dialect), opts.Format)
	}
	return printTokens(out, scanner.Tokenize(input, dialect), opts.Format)
}

func printTokens(w io.Writer, tokens []scanner.Token, format string) error {
	if format == "json" {
		type tokenOut struct {
			Kind  string `json:"kind"`
			Text  string `json:"text"`
			Start int    `json:"start"`
			End   int    `json:"end"`
		}
		outs := make([]tokenOut, len(tokens))
		for i, tok := range tokens {
			outs[i] = tokenOut{Kind: tok.Kind.String(), Text: tok.Text, Start: tok.Start, End: tok.End}
		}
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(outs)
	}

	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"#", "Kind", "Span", "Text"})
	for i, tok := range tokens {
		t.AppendRow(table.Row{i, tok.Kind.String(), fmt.Sprintf("%d..%d", tok.Start, tok.End), fmt.Sprintf("%q", tok.Text)})
	}
	t.Render()
	return nil
}

func printStatements(w io.Writer, stmts []scanner.Statement, format string) error {
	if format == "json" {
		type stmtOut struct {
			Text       string `json:"text"`
			Start      int    `json:"start"`
			End        int    `json:"end"`
			Terminated bool   `json:"terminated"`
		}
		outs := make([]stmtOut, len(stmts))
		for i, stmt := range stmts {
			outs[i] = stmtOut{Text: stmt.Text, Start: stmt.Start, End: stmt.End, Terminated: stmt.Terminated}
		}
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(outs)
	}

	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"#", "Span", "Terminated", "Text"})
	for i, stmt := range stmts {
		t.AppendRow(table.Row{i, fmt.Sprintf("%d..%d", stmt.Start, stmt.End), stmt.Terminated, fmt.Sprintf("%q", stmt.Text)})
	}
	t.Render()
	return nil
}
