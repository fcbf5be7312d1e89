package config

import (
	"fmt"
	"strings"
)

// validOutputs are the output formats the renderer understands.
var validOutputs = map[string]bool{
	"auto":     true,
	"table":    true,
	"md":       true,
	"markdown": true,
	"csv":      true,
	"json":     true,
}

// Validate checks if the configuration is valid. Adapter type and
// encoding names are validated at connection time by their own packages;
// this only catches values nothing else would reject cleanly.
func (c *Config) Validate() error {
	if c.Type == "" {
		return fmt.Errorf("database type is required (set it in sqldeck.yaml or with --type)")
	}
	if c.Output != "" && !validOutputs[strings.ToLower(c.Output)] {
		return fmt.Errorf("unknown output format %q (valid: auto, table, md, csv, json)", c.Output)
	}
	if c.Port < 0 || c.Port > 65535 {
		return fmt.Errorf("invalid port %d", c.Port)
	}
	return nil
}
