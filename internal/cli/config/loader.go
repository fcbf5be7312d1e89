package config

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"regexp"
	"strconv"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	"github.com/spf13/pflag"
)

// loggerKey is used to store the logger in context.
type loggerKey struct{}

// configKey is used to store the loaded config in context.
type configKey struct{}

// Package-level koanf instance and config file tracking
var (
	k              = koanf.New(".")
	configFileUsed string
	currentConfig  *Config
)

// findConfigFile finds the config file to use.
// Priority: explicit path > sqldeck.yaml > sqldeck.yml
func findConfigFile(explicit string) string {
	if explicit != "" {
		return explicit
	}
	if _, err := os.Stat("sqldeck.yaml"); err == nil {
		return "sqldeck.yaml"
	}
	if _, err := os.Stat("sqldeck.yml"); err == nil {
		return "sqldeck.yml"
	}
	return ""
}

// ResetConfig resets the koanf instance. Used for testing.
func ResetConfig() {
	k = koanf.New(".")
	configFileUsed = ""
	currentConfig = nil
}

// LoadConfig loads configuration from file, environment variables, and flags.
// Precedence (highest to lowest): flags > env vars > config file > defaults
func LoadConfig(cfgFile string, flags *pflag.FlagSet) (*Config, error) {
	// Reset koanf for fresh load
	k = koanf.New(".")

	// 1. Load defaults
	if err := k.Load(confmap.Provider(map[string]interface{}{
		"type":         DefaultType,
		"encoding":     DefaultEncoding,
		"output":       DefaultOutput,
		"history":      false,
		"history_path": DefaultHistoryFile,
		"verbose":      false,
	}, "."), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	// 2. Find and load config file
	configFileUsed = findConfigFile(cfgFile)
	if configFileUsed != "" {
		if err := k.Load(file.Provider(configFileUsed), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("error reading config file %s: %w", configFileUsed, err)
		}
	}

	// 3. Load environment variables (SQLDECK_ prefix)
	// Transform: SQLDECK_HISTORY_PATH -> history_path
	if err := k.Load(env.Provider("SQLDECK_", ".", func(s string) string {
		return strings.ToLower(strings.TrimPrefix(s, "SQLDECK_"))
	}), nil); err != nil {
		return nil, fmt.Errorf("failed to load env vars: %w", err)
	}

	// 4. Load flags (highest priority - overrides env vars and config file)
	if flags != nil {
		if err := k.Load(posflag.ProviderWithFlag(flags, ".", k, func(f *pflag.Flag) (string, interface{}) {
			// Only load flags that were explicitly set
			if !f.Changed {
				return "", nil
			}
			key := strings.ReplaceAll(f.Name, "-", "_")
			return key, posflag.FlagVal(flags, f)
		}), nil); err != nil {
			return nil, fmt.Errorf("failed to load flags: %w", err)
		}
	}

	// 5. Unmarshal into Config struct
	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}

	// 6. A connection string fills in host/port/database unless those were
	// set individually.
	if cfg.ConnString != "" {
		host, port, database, err := ParseConnString(cfg.ConnString)
		if err != nil {
			return nil, err
		}
		if cfg.Host == "" {
			cfg.Host = host
		}
		if cfg.Port == 0 {
			cfg.Port = port
		}
		if cfg.Database == "" {
			cfg.Database = database
		}
	}

	// Expand ${VAR} references in credentials so config files never need
	// literal passwords.
	cfg.User = expandEnvVars(cfg.User)
	cfg.Password = expandEnvVars(cfg.Password)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	currentConfig = &cfg

	return &cfg, nil
}

// ParseConnString parses a "host:port/database" connection string. The port
// and database parts are optional: "db.example.com", "db.example.com:5433",
// and "db.example.com/sales" are all accepted.
func ParseConnString(conn string) (host string, port int, database string, err error) {
	rest := conn
	if idx := strings.IndexByte(rest, '/'); idx >= 0 {
		database = rest[idx+1:]
		rest = rest[:idx]
	}
	if idx := strings.IndexByte(rest, ':'); idx >= 0 {
		portStr := rest[idx+1:]
		rest = rest[:idx]
		port, err = strconv.Atoi(portStr)
		if err != nil || port <= 0 {
			return "", 0, "", fmt.Errorf("invalid port %q in connection string %q", portStr, conn)
		}
	}
	host = rest
	if host == "" {
		return "", 0, "", fmt.Errorf("connection string %q has no host", conn)
	}
	return host, port, database, nil
}

// GetConfigFileUsed returns the path to the config file being used, if any.
func GetConfigFileUsed() string {
	return configFileUsed
}

// GetCurrentConfig returns the currently loaded configuration.
// This is available after LoadConfig is called.
func GetCurrentConfig() *Config {
	return currentConfig
}

// WithConfig stores the config in the context.
func WithConfig(ctx context.Context, cfg *Config) context.Context {
	return context.WithValue(ctx, configKey{}, cfg)
}

// GetConfig retrieves the config from the context, or nil if absent.
func GetConfig(ctx context.Context) *Config {
	if c, ok := ctx.Value(configKey{}).(*Config); ok {
		return c
	}
	return nil
}

// WithLogger stores the logger in the context.
func WithLogger(ctx context.Context, logger *slog.Logger) context.Context {
	return context.WithValue(ctx, loggerKey{}, logger)
}

// LoggerKey returns the context key used for storing the logger.
// This allows the commands package to retrieve the logger from context
// without creating an import cycle with the cli package.
func LoggerKey() interface{} {
	return loggerKey{}
}

// GetLogger retrieves the logger from the command context.
func GetLogger(ctx context.Context) *slog.Logger {
	if l, ok := ctx.Value(loggerKey{}).(*slog.Logger); ok {
		return l
	}
	// Return discard logger as safe fallback
	return slog.New(slog.DiscardHandler)
}

// expandEnvVars expands ${VAR} patterns in a string with environment variable values.
func expandEnvVars(s string) string {
	re := regexp.MustCompile(`\$\{([^}]+)\}`)
	return re.ReplaceAllStringFunc(s, func(match string) string {
		varName := match[2 : len(match)-1]
		if val := os.Getenv(varName); val != "" {
			return val
		}
		return match // Return original if not found
	})
}
