package scanner

// Kind classifies a lexical token.
type Kind int

// Token kinds. The set is closed: every byte of input falls into exactly one
// of these, with Unknown as the single-rune fallback.
const (
	Whitespace Kind = iota
	LineComment
	BlockComment
	BlockCommentUnterminated
	DollarString // Postgres only
	DollarStringUnterminated
	QuotedIdent
	QuotedIdentUnterminated
	SingleString
	SingleStringUnterminated
	QString // Oracle only
	QStringUnterminated
	Number
	Ident
	Op
	Comma
	Semicolon
	Unknown
)

// kindNames uses the historical diagnostic names so token dumps stay
// recognizable to users of the original console.
var kindNames = map[Kind]string{
	Whitespace:               "WHITESPACE",
	LineComment:              "COMMENT_LINE",
	BlockComment:             "COMMENT_BLOCK",
	BlockCommentUnterminated: "COMMENT_BLOCK_UNTERMINATED",
	DollarString:             "STRING_DOLLAR",
	DollarStringUnterminated: "STRING_DOLLAR_UNTERMINATED",
	QuotedIdent:              "IDENT_QUOTED",
	QuotedIdentUnterminated:  "IDENT_QUOTED_UNTERMINATED",
	SingleString:             "STRING_SINGLE",
	SingleStringUnterminated: "STRING_SINGLE_UNTERMINATED",
	QString:                  "QQUOTE",
	QStringUnterminated:      "QQUOTE_UNTERMINATED",
	Number:                   "NUMBER",
	Ident:                    "IDENT",
	Op:                       "OP",
	Comma:                    "COMMA",
	Semicolon:                "SEMICOLON",
	Unknown:                  "CHAR",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return "UNKNOWN"
}

// Unterminated reports whether k marks a construct whose closing delimiter
// was not found before end of input.
func (k Kind) Unterminated() bool {
	switch k {
	case BlockCommentUnterminated, DollarStringUnterminated,
		QuotedIdentUnterminated, SingleStringUnterminated, QStringUnterminated:
		return true
	}
	return false
}

// Trivia reports whether k is insignificant for statement splitting:
// whitespace and fully closed comments. An unterminated block comment is not
// trivia because it signals that more input is expected.
func (k Kind) Trivia() bool {
	switch k {
	case Whitespace, LineComment, BlockComment:
		return true
	}
	return false
}

// Token is a classified substring of the source.
//
// Text is the exact source slice including delimiters and escapes; Start and
// End are half-open byte offsets into the source. For any token sequence
// produced by Tokenize, tokens are adjacent and gap-free.
type Token struct {
	Kind  Kind
	Text  string
	Start int
	End   int
}
