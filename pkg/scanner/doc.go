// Package scanner provides a dialect-aware SQL lexer and statement splitter.
//
// The lexer turns raw SQL text into a flat sequence of classified tokens that
// partitions the input exactly: concatenating the token texts in order
// reproduces the source byte for byte. Nothing is dropped or unescaped, so
// token offsets can be used to slice the original buffer.
//
// The splitter layers on top of the lexer and groups tokens into statement
// spans separated by top-level semicolons. Because semicolons inside strings,
// quoted identifiers, and comments are consumed as part of those larger
// tokens, the splitter is a plain linear walk with no quoting state of its
// own.
//
// Malformed input is never an error. An unterminated string, identifier, or
// comment produces a token of a distinct unterminated kind covering the rest
// of the input, which lets an interactive caller keep prompting for more
// lines instead of failing.
//
// # Basic Usage
//
//	tokens := scanner.Tokenize("select 'it''s' from t;", scanner.Oracle)
//	stmts := scanner.Split("select 1; select 2", scanner.Postgres)
//	if len(stmts) > 0 && !stmts[len(stmts)-1].Terminated {
//	    // last statement needs more input
//	}
//
// Both entry points are pure functions over their inputs and are safe for
// concurrent use.
package scanner
