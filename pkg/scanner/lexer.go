package scanner

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// Lexer scans SQL input into tokens.
type Lexer struct {
	input   string
	pos     int // current byte position in input
	dialect Dialect
}

// NewLexer creates a new Lexer for the given input and dialect.
func NewLexer(input string, d Dialect) *Lexer {
	return &Lexer{input: input, dialect: d}
}

// Tokenize scans the whole input and returns its tokens. The returned
// sequence partitions the input: tokens are contiguous, in order, and cover
// every byte. Tokenize never fails; unterminated constructs become tokens of
// the corresponding unterminated kind.
func Tokenize(input string, d Dialect) []Token {
	l := NewLexer(input, d)
	var tokens []Token
	for l.pos < len(l.input) {
		tokens = append(tokens, l.next())
	}
	return tokens
}

// multiOps are matched before single-character operators, longest first.
var multiOps = []string{"->>", "<>", "!=", ">=", "<=", "||", ":=", "->"}

// singleOps are the recognized single-character operators and punctuation.
// Semicolon and comma are excluded: they get distinct kinds.
const singleOps = "().+-*/%<>=|&^~!?:[]{}"

// next scans one token starting at l.pos. Rules are ordered by priority:
// several share a leading character (`/` starts both a comment and division,
// `q` starts both an identifier and a q-quote), so the most specific match
// must win.
func (l *Lexer) next() Token {
	ch := l.input[l.pos]

	if isSpace(ch) {
		return l.scanWhitespace()
	}
	if ch == '-' && l.peekIs(1, '-') {
		return l.scanLineComment()
	}
	if ch == '/' && l.peekIs(1, '*') {
		return l.scanBlockComment()
	}
	if l.dialect == Postgres && ch == '$' {
		if tok, ok := l.scanDollarString(); ok {
			return tok
		}
	}
	if ch == '"' {
		return l.scanQuoted('"', QuotedIdent, QuotedIdentUnterminated)
	}
	if ch == '\'' {
		return l.scanQuoted('\'', SingleString, SingleStringUnterminated)
	}
	if l.dialect == Oracle && (ch == 'q' || ch == 'Q') && l.peekIs(1, '\'') {
		return l.scanQString()
	}
	if isDigit(ch) || (ch == '.' && l.pos+1 < len(l.input) && isDigit(l.input[l.pos+1])) {
		return l.scanNumber()
	}

	r, size := utf8.DecodeRuneInString(l.input[l.pos:])
	if isIdentStart(r) {
		return l.scanIdent(size)
	}

	for _, op := range multiOps {
		if strings.HasPrefix(l.input[l.pos:], op) {
			return l.emit(Op, len(op))
		}
	}
	switch ch {
	case ';':
		return l.emit(Semicolon, 1)
	case ',':
		return l.emit(Comma, 1)
	}
	if strings.IndexByte(singleOps, ch) >= 0 {
		return l.emit(Op, 1)
	}

	// Fallback: one token per rune so the partition invariant holds for
	// arbitrary input, including non-ASCII.
	return l.emit(Unknown, size)
}

// emit produces a token of n bytes starting at the current position.
func (l *Lexer) emit(k Kind, n int) Token {
	start := l.pos
	l.pos += n
	return l.token(k, start)
}

// token slices a finished token from start to the current position.
func (l *Lexer) token(k Kind, start int) Token {
	return Token{Kind: k, Text: l.input[start:l.pos], Start: start, End: l.pos}
}

// peekIs reports whether the byte at offset off from the current position
// equals b.
func (l *Lexer) peekIs(off int, b byte) bool {
	return l.pos+off < len(l.input) && l.input[l.pos+off] == b
}

// scanWhitespace consumes a maximal run of space, tab, CR, and LF.
func (l *Lexer) scanWhitespace() Token {
	start := l.pos
	for l.pos < len(l.input) && isSpace(l.input[l.pos]) {
		l.pos++
	}
	return l.token(Whitespace, start)
}

// scanLineComment consumes -- through end of line, exclusive of the newline.
func (l *Lexer) scanLineComment() Token {
	start := l.pos
	l.pos += 2
	for l.pos < len(l.input) && l.input[l.pos] != '\n' {
		l.pos++
	}
	return l.token(LineComment, start)
}

// scanBlockComment consumes /* ... */ with nesting: the token ends only when
// the depth counter returns to zero. Input ending first yields the
// unterminated kind.
func (l *Lexer) scanBlockComment() Token {
	start := l.pos
	l.pos += 2
	depth := 1
	for l.pos < len(l.input) && depth > 0 {
		switch {
		case l.input[l.pos] == '/' && l.peekIs(1, '*'):
			depth++
			l.pos += 2
		case l.input[l.pos] == '*' && l.peekIs(1, '/'):
			depth--
			l.pos += 2
		default:
			l.pos++
		}
	}
	if depth > 0 {
		return l.token(BlockCommentUnterminated, start)
	}
	return l.token(BlockComment, start)
}

// scanDollarString tries to consume $tag$ ... $tag$ where tag is zero or more
// alphanumeric/underscore characters and the closing tag must match exactly.
// Returns false when the current position is not a dollar-quote opener, in
// which case nothing is consumed.
func (l *Lexer) scanDollarString() (Token, bool) {
	j := l.pos + 1
	for j < len(l.input) && isTagChar(l.input[j]) {
		j++
	}
	if j >= len(l.input) || l.input[j] != '$' {
		return Token{}, false
	}

	start := l.pos
	opener := l.input[l.pos : j+1] // "$tag$", closer is identical
	body := j + 1
	if idx := strings.Index(l.input[body:], opener); idx >= 0 {
		l.pos = body + idx + len(opener)
		return l.token(DollarString, start), true
	}
	l.pos = len(l.input)
	return l.token(DollarStringUnterminated, start), true
}

// scanQuoted consumes a quote-delimited token where a doubled quote escapes
// itself ('' or ""). The unterminated kind is used when the closing quote is
// never found.
func (l *Lexer) scanQuoted(quote byte, kind, unterminated Kind) Token {
	start := l.pos
	l.pos++
	closed := false
	for l.pos < len(l.input) {
		if l.input[l.pos] != quote {
			l.pos++
			continue
		}
		if l.peekIs(1, quote) {
			l.pos += 2 // escaped quote, not a terminator
			continue
		}
		l.pos++
		closed = true
		break
	}
	if !closed {
		return l.token(unterminated, start)
	}
	return l.token(kind, start)
}

// scanQString consumes an Oracle q-quoted literal: q'X ... X' where X is the
// delimiter character. Bracket-style openers pair with their counterparts,
// any other opener closes with itself, and termination requires the closer
// immediately followed by a single quote.
func (l *Lexer) scanQString() Token {
	start := l.pos
	l.pos += 2 // q'
	if l.pos >= len(l.input) {
		return l.token(QStringUnterminated, start)
	}

	opener, size := utf8.DecodeRuneInString(l.input[l.pos:])
	closer := closingDelimiter(opener)
	l.pos += size

	for l.pos < len(l.input) {
		r, rsize := utf8.DecodeRuneInString(l.input[l.pos:])
		if r == closer && l.peekIs(rsize, '\'') {
			l.pos += rsize + 1
			return l.token(QString, start)
		}
		l.pos += rsize
	}
	return l.token(QStringUnterminated, start)
}

func closingDelimiter(opener rune) rune {
	switch opener {
	case '[':
		return ']'
	case '(':
		return ')'
	case '{':
		return '}'
	case '<':
		return '>'
	default:
		return opener
	}
}

// scanNumber consumes digits with at most one decimal point, optionally
// followed by an exponent. The exponent marker is consumed only when at
// least one digit follows it (after an optional sign), so "1e" lexes as the
// number 1 and the identifier e.
func (l *Lexer) scanNumber() Token {
	start := l.pos
	hasDot := l.input[l.pos] == '.'
	l.pos++
	for l.pos < len(l.input) {
		ch := l.input[l.pos]
		if isDigit(ch) {
			l.pos++
			continue
		}
		if ch == '.' && !hasDot {
			hasDot = true
			l.pos++
			continue
		}
		break
	}

	if l.pos < len(l.input) && (l.input[l.pos] == 'e' || l.input[l.pos] == 'E') {
		j := l.pos + 1
		if j < len(l.input) && (l.input[j] == '+' || l.input[j] == '-') {
			j++
		}
		if j < len(l.input) && isDigit(l.input[j]) {
			for j < len(l.input) && isDigit(l.input[j]) {
				j++
			}
			l.pos = j
		}
	}
	return l.token(Number, start)
}

// scanIdent consumes an identifier: letter or underscore start, then
// letters, digits, underscore, or $.
func (l *Lexer) scanIdent(firstSize int) Token {
	start := l.pos
	l.pos += firstSize
	for l.pos < len(l.input) {
		r, size := utf8.DecodeRuneInString(l.input[l.pos:])
		if !isIdentPart(r) {
			break
		}
		l.pos += size
	}
	return l.token(Ident, start)
}

func isSpace(ch byte) bool {
	return ch == ' ' || ch == '\t' || ch == '\r' || ch == '\n'
}

func isDigit(ch byte) bool {
	return ch >= '0' && ch <= '9'
}

func isTagChar(ch byte) bool {
	return ch == '_' || isDigit(ch) ||
		(ch >= 'a' && ch <= 'z') || (ch >= 'A' && ch <= 'Z')
}

func isIdentStart(r rune) bool {
	return r == '_' || unicode.IsLetter(r)
}

func isIdentPart(r rune) bool {
	return r == '_' || r == '$' || unicode.IsLetter(r) || unicode.IsDigit(r)
}
