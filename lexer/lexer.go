// Package lexer turns GraphQL source text into a stream of tokens.
//
// The scanner is byte-oriented and makes a single forward pass with one
// character of lookahead, except inside string literals where the string
// decoders run their own scan. Malformed input never aborts the scan: it
// is reported in-band as error tokens (token.BadUnicodeEscape,
// token.UnknownChar) so a caller can keep going and report exact
// positions.
package lexer

import (
	"strings"
	"unicode/utf8"

	"github.com/glexlang/glex/token"
)

const bom = "\ufeff"

// lexer is the scan state for a single Tokenize call. It is created
// fresh per call and never shared, so concurrent Tokenize calls on
// independent inputs need no locking.
type lexer struct {
	src    string
	pos    int
	line   int // 1-based, incremented per consumed line terminator
	col    int // 1-based, counted in runes, reset after each terminator
	prev   *token.Token
	tokens []*token.Token
}

// Tokenize scans src and returns its tokens in source order, ending with
// exactly one EOF token. Comments are linked into the previous-token
// chain but are not elements of the returned slice.
func Tokenize(src string) []*token.Token {
	l := &lexer{src: src, line: 1, col: 1}

	// The buffer must be well-formed UTF-8 before byte-level scanning
	// makes sense. A bad buffer surfaces as a lexical error token, not a
	// failed call.
	if !utf8.ValidString(src) {
		l.emit(token.BadUnicodeEscape, src, src, 1, 1)
		l.emit(token.EOF, "", "", 1, 1)
		return l.tokens
	}

	for l.pos < len(l.src) {
		l.next()
	}
	l.emit(token.EOF, "", "", l.line, l.col)
	return l.tokens
}

func (l *lexer) next() {
	c := l.src[l.pos]
	switch {
	case c == ' ' || c == '\t' || c == '\n' || c == '\r' || c == ',':
		// Whitespace and commas advance position but produce no token.
		l.consume(1)

	case c == '#':
		l.lexComment()

	case c == '"':
		if strings.HasPrefix(l.src[l.pos:], `"""`) {
			l.lexBlockString()
		} else {
			l.lexString()
		}

	case isNameStart(c):
		l.lexName()

	case isDigit(c) || c == '-':
		l.lexNumber()

	case c == '.':
		if strings.HasPrefix(l.src[l.pos:], "...") {
			l.emitPunct(token.Spread, "...")
		} else {
			l.emitPunct(token.UnknownChar, ".")
		}

	default:
		if kind, ok := punctuators[c]; ok {
			l.emitPunct(kind, string(c))
			return
		}
		if strings.HasPrefix(l.src[l.pos:], bom) {
			// A byte order mark is ignored like whitespace.
			l.consume(len(bom))
			return
		}
		// Anything else, including non-ASCII code points outside string
		// and comment context, is a single unknown-character token.
		_, size := utf8.DecodeRuneInString(l.src[l.pos:])
		raw := l.src[l.pos : l.pos+size]
		l.emitPunct(token.UnknownChar, raw)
	}
}

var punctuators = map[byte]token.Kind{
	'!': token.Bang,
	'$': token.Dollar,
	'&': token.Amp,
	'(': token.ParenL,
	')': token.ParenR,
	':': token.Colon,
	'=': token.Equals,
	'@': token.At,
	'[': token.BracketL,
	']': token.BracketR,
	'{': token.BraceL,
	'}': token.BraceR,
	'|': token.Pipe,
}

// emitPunct emits a token whose raw text and value are the same and
// consumes it from the input.
func (l *lexer) emitPunct(kind token.Kind, raw string) {
	line, col := l.line, l.col
	l.consume(len(raw))
	l.emit(kind, raw, raw, line, col)
}

// lexComment consumes a '#' line comment up to (not including) the line
// terminator. The comment token joins the previous-token chain so later
// tokens can recover it, but it is kept out of the primary sequence.
func (l *lexer) lexComment() {
	start := l.pos
	line, col := l.line, l.col
	i := l.pos
	for i < len(l.src) && l.src[i] != '\n' && l.src[i] != '\r' {
		i++
	}
	raw := l.src[start:i]
	l.consume(i - l.pos)
	l.emit(token.Comment, raw, raw, line, col)
}

// lexName consumes an identifier: ASCII letter or underscore, then
// letters, digits and underscores.
func (l *lexer) lexName() {
	start := l.pos
	line, col := l.line, l.col
	i := l.pos + 1
	for i < len(l.src) && isNameContinue(l.src[i]) {
		i++
	}
	raw := l.src[start:i]
	l.consume(i - l.pos)
	l.emit(token.Name, raw, raw, line, col)
}

// lexNumber consumes an optionally signed integer with optional fraction
// and exponent. Leading zeros are tolerated here; judging "04" is the
// parser's business, not the lexer's.
func (l *lexer) lexNumber() {
	start := l.pos
	line, col := l.line, l.col
	i := l.pos
	if l.src[i] == '-' {
		i++
	}
	digits := 0
	for i < len(l.src) && isDigit(l.src[i]) {
		i++
		digits++
	}
	if digits == 0 {
		// A bare "-" with no digits is not a number.
		l.emitPunct(token.UnknownChar, "-")
		return
	}

	isFloat := false
	if i+1 < len(l.src) && l.src[i] == '.' && isDigit(l.src[i+1]) {
		isFloat = true
		i += 2
		for i < len(l.src) && isDigit(l.src[i]) {
			i++
		}
	}
	if i < len(l.src) && (l.src[i] == 'e' || l.src[i] == 'E') {
		j := i + 1
		if j < len(l.src) && (l.src[j] == '+' || l.src[j] == '-') {
			j++
		}
		if j < len(l.src) && isDigit(l.src[j]) {
			isFloat = true
			i = j + 1
			for i < len(l.src) && isDigit(l.src[i]) {
				i++
			}
		}
	}

	raw := l.src[start:i]
	l.consume(i - l.pos)
	kind := token.Int
	if isFloat {
		kind = token.Float
	}
	l.emit(kind, raw, raw, line, col)
}

// emit links a token behind the previously emitted one and records it as
// the new chain head. Comment tokens are chained but not collected.
func (l *lexer) emit(kind token.Kind, raw, value string, line, col int) *token.Token {
	t := token.New(kind, raw, value, line, col, l.prev)
	l.prev = t
	if kind != token.Comment {
		l.tokens = append(l.tokens, t)
	}
	return t
}

// consume advances the cursor by n bytes, updating line and column.
// Columns are counted in runes; "\r\n" counts as a single terminator.
func (l *lexer) consume(n int) {
	end := l.pos + n
	for l.pos < end {
		switch c := l.src[l.pos]; {
		case c == '\n':
			l.line++
			l.col = 1
		case c == '\r':
			// A "\r\n" pair is one terminator; let the '\n' count it.
			if l.pos+1 >= len(l.src) || l.src[l.pos+1] != '\n' {
				l.line++
				l.col = 1
			}
		case c&0xC0 == 0x80:
			// UTF-8 continuation byte, same column.
		default:
			l.col++
		}
		l.pos++
	}
}

func isNameStart(c byte) bool {
	return c == '_' || ('a' <= c && c <= 'z') || ('A' <= c && c <= 'Z')
}

func isNameContinue(c byte) bool {
	return isNameStart(c) || isDigit(c)
}

func isDigit(c byte) bool {
	return '0' <= c && c <= '9'
}

func isHexDigit(c byte) bool {
	return isDigit(c) || ('a' <= c && c <= 'f') || ('A' <= c && c <= 'F')
}
