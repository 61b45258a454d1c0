package lexer

import (
	"strings"
	"unicode/utf8"

	"github.com/glexlang/glex/token"
)

// lexString consumes a single-quoted string literal. The cursor sits on
// the opening quote. Escape units are consumed strictly left to right,
// one at a time, so `\\"` is a literal backslash followed by the closing
// quote, never an escaped quote.
func (l *lexer) lexString() {
	startPos := l.pos
	line, col := l.line, l.col

	var b strings.Builder
	bad := false
	i := l.pos + 1
	for i < len(l.src) {
		switch c := l.src[i]; c {
		case '"':
			raw := l.src[startPos : i+1]
			l.consume(i + 1 - l.pos)
			value := b.String()
			kind := token.String
			// Decoding succeeding is necessary but not sufficient: the
			// decoded result must itself be well-formed.
			if bad || !utf8.ValidString(value) {
				kind = token.BadUnicodeEscape
				value = raw
			}
			l.emit(kind, raw, value, line, col)
			return

		case '\n', '\r':
			// Strings do not span lines; report the opening quote and
			// rescan from the character after it.
			l.unterminated(line, col)
			return

		case '\\':
			text, n, ok := decodeEscape(l.src[i:])
			if !ok {
				bad = true
			}
			b.WriteString(text)
			i += n

		default:
			b.WriteByte(c)
			i++
		}
	}
	l.unterminated(line, col)
}

// unterminated reports an unclosed literal: the opening quote itself
// becomes an unknown-character token and scanning resumes after it.
func (l *lexer) unterminated(line, col int) {
	l.consume(1)
	l.emit(token.UnknownChar, `"`, `"`, line, col)
}

// decodeEscape decodes one escape unit at the start of s (s[0] is the
// backslash). It returns the decoded text, the number of source bytes
// consumed, and whether the escape was well formed. On a malformed
// escape it still reports how far to skip so the caller can keep looking
// for the closing quote.
func decodeEscape(s string) (text string, n int, ok bool) {
	if len(s) < 2 {
		return "", 1, false
	}
	switch s[1] {
	case '"':
		return `"`, 2, true
	case '\\':
		return `\`, 2, true
	case '/':
		return "/", 2, true
	case 'b':
		return "\b", 2, true
	case 'f':
		return "\f", 2, true
	case 'n':
		return "\n", 2, true
	case 'r':
		return "\r", 2, true
	case 't':
		return "\t", 2, true
	case 'u':
		return decodeUnicodeEscape(s)
	default:
		return "", 2, false
	}
}

const (
	surrogateMin     = 0xD800
	lowSurrogateMin  = 0xDC00
	surrogateMax     = 0xDFFF
	maxUnicodeScalar = 0x10FFFF
)

// decodeUnicodeEscape decodes `\uXXXX` (a UTF-16 code unit, pairing
// surrogates) or `\u{H...H}` (a Unicode scalar value). Lone surrogates,
// broken pairs, out-of-range scalars and non-hex content are malformed.
func decodeUnicodeEscape(s string) (text string, n int, ok bool) {
	if len(s) > 2 && s[2] == '{' {
		i := 3
		for i < len(s) && isHexDigit(s[i]) {
			i++
		}
		if i == 3 || i >= len(s) || s[i] != '}' {
			return "", 2, false
		}
		v, valid := hexValue(s[3:i])
		n = i + 1
		if !valid || v > maxUnicodeScalar || (v >= surrogateMin && v <= surrogateMax) {
			return "", n, false
		}
		return string(rune(v)), n, true
	}

	v, valid := fourHex(s[2:])
	if !valid {
		return "", 2, false
	}
	switch {
	case v < surrogateMin || v > surrogateMax:
		return string(rune(v)), 6, true

	case v < lowSurrogateMin:
		// High surrogate: must pair with an immediately following low
		// surrogate escape.
		if len(s) < 12 || s[6] != '\\' || s[7] != 'u' {
			return "", 6, false
		}
		lo, valid := fourHex(s[8:])
		if !valid || lo < lowSurrogateMin || lo > surrogateMax {
			return "", 6, false
		}
		r := ((rune(v) - surrogateMin) << 10) + (rune(lo) - lowSurrogateMin) + 0x10000
		return string(r), 12, true

	default:
		// A low surrogate with no preceding high surrogate.
		return "", 6, false
	}
}

// fourHex reads exactly four hex digits from the start of s.
func fourHex(s string) (uint32, bool) {
	if len(s) < 4 {
		return 0, false
	}
	return hexValue(s[:4])
}

func hexValue(s string) (uint32, bool) {
	var v uint32
	for i := 0; i < len(s); i++ {
		if !isHexDigit(s[i]) {
			return 0, false
		}
		if v > maxUnicodeScalar {
			// Already out of scalar range; keep it capped so long digit
			// runs cannot overflow.
			continue
		}
		v = v<<4 | uint32(hexDigit(s[i]))
	}
	return v, true
}

func hexDigit(c byte) byte {
	switch {
	case c >= 'a':
		return c - 'a' + 10
	case c >= 'A':
		return c - 'A' + 10
	default:
		return c - '0'
	}
}
