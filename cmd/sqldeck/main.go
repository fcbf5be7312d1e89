// Package main provides the sqldeck SQL console binary.
package main

import (
	"os"

	"github.com/sqldeck-labs/sqldeck/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
