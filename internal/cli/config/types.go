// Package config provides configuration management for the sqldeck CLI.
//
// Settings are merged from four sources, lowest to highest precedence:
// built-in defaults, a sqldeck.yaml config file, SQLDECK_ environment
// variables, and command-line flags.
package config

// Config holds all CLI configuration options.
type Config struct {
	Type        string `koanf:"type"`
	ConnString  string `koanf:"conn"`
	Host        string `koanf:"host"`
	Port        int    `koanf:"port"`
	Database    string `koanf:"database"`
	User        string `koanf:"user"`
	Password    string `koanf:"password"`
	Encoding    string `koanf:"encoding"`
	Output      string `koanf:"output"`
	History     bool   `koanf:"history"`
	HistoryPath string `koanf:"history_path"`
	Verbose     bool   `koanf:"verbose"`
}

// Default configuration values.
const (
	DefaultType        = "postgres"
	DefaultEncoding    = "utf-8"
	DefaultOutput      = "auto" // Auto-detect: TTY=table, non-TTY=markdown
	DefaultHistoryFile = ".sqldeck/history.db"
)
