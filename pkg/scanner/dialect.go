package scanner

import "fmt"

// Dialect selects which quoting conventions the lexer recognizes.
type Dialect int

// Supported dialects.
const (
	// Oracle recognizes q-quoted string literals: q'[...]', q'(...)',
	// q'{...}', q'<...>' and q'x...x'.
	Oracle Dialect = iota

	// Postgres recognizes dollar-quoted string literals: $$...$$ and
	// $tag$...$tag$.
	Postgres
)

func (d Dialect) String() string {
	switch d {
	case Oracle:
		return "oracle"
	case Postgres:
		return "postgres"
	default:
		return fmt.Sprintf("dialect(%d)", int(d))
	}
}

// ParseDialect maps a dialect name to a Dialect value. Database types that
// speak Postgres-style quoting (postgres, duckdb) map to Postgres; oracle
// maps to Oracle.
func ParseDialect(name string) (Dialect, error) {
	switch name {
	case "oracle":
		return Oracle, nil
	case "postgres", "postgresql", "duckdb":
		return Postgres, nil
	default:
		return Oracle, fmt.Errorf("unknown dialect %q (want oracle, postgres, or duckdb)", name)
	}
}
