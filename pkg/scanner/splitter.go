package scanner

// Statement is a contiguous span of source text holding one SQL statement.
//
// Text includes the trailing semicolon when Terminated is true. Callers that
// hand statements to a database driver are expected to strip the terminator
// and surrounding whitespace themselves.
type Statement struct {
	Text       string
	Start      int
	End        int
	Terminated bool
}

// Split breaks source text into statement spans separated by top-level
// semicolons. Semicolons inside strings, quoted identifiers, and comments
// never split because the lexer consumes them as part of those tokens.
//
// If input remains after the last semicolon it becomes a final span with
// Terminated false, unless it is nothing but whitespace and closed comments,
// in which case it is dropped: there is nothing to execute and nothing
// pending. A tail holding an unterminated token is kept so an interactive
// caller sees that more input is expected.
func Split(input string, d Dialect) []Statement {
	tokens := Tokenize(input, d)

	var stmts []Statement
	cur := 0  // byte offset where the current statement starts
	tail := 0 // index of the first token after the last semicolon
	for i, tok := range tokens {
		if tok.Kind != Semicolon {
			continue
		}
		stmts = append(stmts, Statement{
			Text:       input[cur:tok.End],
			Start:      cur,
			End:        tok.End,
			Terminated: true,
		})
		cur = tok.End
		tail = i + 1
	}

	if cur < len(input) && !onlyTrivia(tokens[tail:]) {
		stmts = append(stmts, Statement{
			Text:  input[cur:],
			Start: cur,
			End:   len(input),
		})
	}
	return stmts
}

// Pending reports whether the source ends in an unfinished statement, i.e.
// whether an interactive caller should prompt for another line before
// executing.
func Pending(input string, d Dialect) bool {
	stmts := Split(input, d)
	return len(stmts) > 0 && !stmts[len(stmts)-1].Terminated
}

func onlyTrivia(tokens []Token) bool {
	for _, tok := range tokens {
		if !tok.Kind.Trivia() {
			return false
		}
	}
	return true
}
