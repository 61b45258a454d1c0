package token

import "strconv"

// Kind identifies the lexical class of a token.
type Kind int

const (
	EOF Kind = iota

	// Punctuators
	Bang     // "!"
	Dollar   // "$"
	Amp      // "&"
	ParenL   // "("
	ParenR   // ")"
	Spread   // "..."
	Colon    // ":"
	Equals   // "="
	At       // "@"
	BracketL // "["
	BracketR // "]"
	BraceL   // "{"
	BraceR   // "}"
	Pipe     // "|"

	// Lexical values
	Name
	Int
	Float
	String
	Comment

	// Error tokens. Malformed input is reported in-band so the caller
	// can keep scanning and point at the exact offending position.
	BadUnicodeEscape
	UnknownChar
)

func (k Kind) String() string {
	switch k {
	case EOF:
		return "EOF"
	case Bang:
		return "BANG"
	case Dollar:
		return "DOLLAR"
	case Amp:
		return "AMP"
	case ParenL:
		return "PAREN_L"
	case ParenR:
		return "PAREN_R"
	case Spread:
		return "SPREAD"
	case Colon:
		return "COLON"
	case Equals:
		return "EQUALS"
	case At:
		return "AT"
	case BracketL:
		return "BRACKET_L"
	case BracketR:
		return "BRACKET_R"
	case BraceL:
		return "BRACE_L"
	case BraceR:
		return "BRACE_R"
	case Pipe:
		return "PIPE"
	case Name:
		return "NAME"
	case Int:
		return "INT"
	case Float:
		return "FLOAT"
	case String:
		return "STRING"
	case Comment:
		return "COMMENT"
	case BadUnicodeEscape:
		return "BAD_UNICODE_ESCAPE"
	case UnknownChar:
		return "UNKNOWN_CHAR"
	default:
		return "UNKNOWN"
	}
}

// IsError reports whether the kind classifies malformed input.
func (k Kind) IsError() bool {
	return k == BadUnicodeEscape || k == UnknownChar
}

// Token is a single lexical unit. Tokens are immutable once emitted;
// the lexer never touches one again after handing it out.
type Token struct {
	Kind Kind
	// Raw is the exact source substring the token was scanned from.
	Raw string
	// Value is the decoded value: escape-resolved text for strings, the
	// literal text for names and numbers, the offending text for error
	// tokens.
	Value string
	// Line and Col locate the token's first character, 1-based. Multi-line
	// literals report their starting line.
	Line int
	Col  int

	prev *Token
}

// New constructs a token and links it behind prev. prev may be nil for
// the first token of a scan.
func New(kind Kind, raw, value string, line, col int, prev *Token) *Token {
	return &Token{Kind: kind, Raw: raw, Value: value, Line: line, Col: col, prev: prev}
}

// Previous returns the token emitted immediately before this one during
// the same scan, including comment tokens that do not appear in the
// primary sequence. It is nil for the first token of a scan.
func (t *Token) Previous() *Token {
	return t.prev
}

func (t *Token) String() string {
	return "(" + t.Kind.String() + " " + strconv.Quote(t.Value) + " " +
		strconv.Itoa(t.Line) + ":" + strconv.Itoa(t.Col) + ")"
}
