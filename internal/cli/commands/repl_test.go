package commands

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/sqldeck-labs/sqldeck/pkg/scanner"
)

func TestContinuationPrompt(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		dialect scanner.Dialect
		want    string
	}{
		{name: "open single quote", input: "SELECT 'ab\n", dialect: scanner.Postgres, want: "     '> "},
		{name: "open quoted ident", input: "SELECT \"col\n", dialect: scanner.Postgres, want: "     \"> "},
		{name: "open block comment", input: "SELECT 1 /* note\n", dialect: scanner.Postgres, want: "     *> "},
		{name: "open dollar quote", input: "SELECT $body$ one\n", dialect: scanner.Postgres, want: "     $> "},
		{name: "open q-quote", input: "SELECT q'[ab\n", dialect: scanner.Oracle, want: "     q> "},
		{name: "plain incomplete statement", input: "SELECT 1\n", dialect: scanner.Postgres, want: "   ...> "},
		{name: "trailing whitespace after open string", input: "SELECT 'ab cd\n", dialect: scanner.Oracle, want: "     '> "},
		{name: "empty", input: "", dialect: scanner.Postgres, want: "   ...> "},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, continuationPrompt(tt.input, tt.dialect))
		})
	}
}
