// Package cli provides the command-line interface for sqldeck.
package cli

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/sqldeck-labs/sqldeck/internal/cli/commands"
	"github.com/sqldeck-labs/sqldeck/internal/cli/config"
)

var (
	cfgFile string
	cfg     *config.Config
)

// Version information (set at build time).
var (
	Version   = "0.1.0"
	BuildDate = "unknown"
	GitCommit = "unknown"
)

// NewRootCmd creates and returns the root command.
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "sqldeck",
		Short: "sqldeck - SQL console",
		Long: `sqldeck is an interactive SQL console for Oracle, Postgres and DuckDB.

It splits input into statements with full awareness of each dialect's
quoting rules, so semicolons inside strings, comments, q-quotes and
dollar-quotes never cut a statement in half. Scripts can be executed
from files or stdin, and an interactive console handles multi-line
statements with context-aware continuation prompts.`,
		Version: Version,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			// Skip config loading for help and completion commands
			if cmd.Name() == "help" || cmd.Name() == "completion" || cmd.Name() == "__complete" {
				return nil
			}

			var err error
			cfg, err = config.LoadConfig(cfgFile, cmd.Root().PersistentFlags())
			if err != nil {
				return err
			}

			ctx := config.WithConfig(cmd.Context(), cfg)

			level := slog.LevelWarn
			if cfg.Verbose {
				level = slog.LevelDebug
			}
			logger := slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level}))
			ctx = config.WithLogger(ctx, logger)
			cmd.SetContext(ctx)

			if cfg.Verbose {
				if configFile := config.GetConfigFileUsed(); configFile != "" {
					fmt.Fprintf(os.Stderr, "Using config file: %s\n", configFile)
				}
			}

			return nil
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Set version template
	rootCmd.SetVersionTemplate(`{{.Name}} {{.Version}}
`)

	// Global persistent flags
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: ./sqldeck.yaml)")
	rootCmd.PersistentFlags().StringP("type", "t", "", "Database type (oracle|postgres|duckdb)")
	rootCmd.PersistentFlags().StringP("conn", "c", "", "Connection string (host:port/database)")
	rootCmd.PersistentFlags().String("host", "", "Database host")
	rootCmd.PersistentFlags().Int("port", 0, "Database port")
	rootCmd.PersistentFlags().String("database", "", "Database name (or file path for duckdb)")
	rootCmd.PersistentFlags().StringP("user", "u", "", "Database user")
	rootCmd.PersistentFlags().StringP("password", "p", "", "Database password (prompted if omitted)")
	rootCmd.PersistentFlags().String("encoding", "", "Input file encoding (default: utf-8)")
	rootCmd.PersistentFlags().StringP("output", "o", "", "Output format (auto|table|md|csv|json)")
	rootCmd.PersistentFlags().Bool("history", false, "Record executed statements")
	rootCmd.PersistentFlags().String("history-path", "", "Path to the history database")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Verbose output")

	// Register completion for type flag
	_ = rootCmd.RegisterFlagCompletionFunc("type", func(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
		return []string{"oracle", "postgres", "duckdb"}, cobra.ShellCompDirectiveNoFileComp
	})

	// Register completion for output flag
	_ = rootCmd.RegisterFlagCompletionFunc("output", func(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
		return []string{"auto", "table", "md", "csv", "json"}, cobra.ShellCompDirectiveNoFileComp
	})

	// Add subcommands
	rootCmd.AddCommand(commands.NewExecCommand())
	rootCmd.AddCommand(commands.NewReplCommand())
	rootCmd.AddCommand(commands.NewTokensCommand())
	rootCmd.AddCommand(commands.NewVersionCommand(Version))
	rootCmd.AddCommand(NewCompletionCommand())

	return rootCmd
}

// Execute runs the root command.
func Execute() error {
	rootCmd := NewRootCmd()
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return err
	}
	return nil
}

// NewCompletionCommand creates the completion command.
func NewCompletionCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "completion [bash|zsh|fish|powershell]",
		Short: "Generate shell completion scripts",
		Long: `Generate shell completion scripts for sqldeck.

To load completions:

Bash:
  $ source <(sqldeck completion bash)

Zsh:
  $ sqldeck completion zsh > "${fpath[1]}/_sqldeck"

Fish:
  $ sqldeck completion fish | source

PowerShell:
  PS> sqldeck completion powershell | Out-String | Invoke-Expression
`,
		DisableFlagsInUseLine: true,
		ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			switch args[0] {
			case "bash":
				return cmd.Root().GenBashCompletion(os.Stdout)
			case "zsh":
				return cmd.Root().GenZshCompletion(os.Stdout)
			case "fish":
				return cmd.Root().GenFishCompletion(os.Stdout, true)
			case "powershell":
				return cmd.Root().GenPowerShellCompletionWithDesc(os.Stdout)
			}
			return nil
		},
	}
	return cmd
}
