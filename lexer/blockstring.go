package lexer

import (
	"strings"

	"github.com/glexlang/glex/token"
)

// lexBlockString consumes a triple-quoted block string. The cursor sits
// on the first of the opening quotes.
//
// The only escape inside a block string is `\"""`, which contributes
// three literal quote characters; every other backslash is literal. A
// run of three or more quotes terminates the literal greedily: the run's
// first quotes (at most two) still belong to the content and the next
// three close it, so ten consecutive quotes lex as an eight-character
// block string holding `""` followed by a two-character empty string.
func (l *lexer) lexBlockString() {
	startPos := l.pos
	line, col := l.line, l.col

	var b strings.Builder
	i := l.pos + 3
	for i < len(l.src) {
		c := l.src[i]

		if c == '\\' {
			// `\"""` escapes a triple quote unless a fourth quote
			// follows, in which case the backslash stands alone and the
			// quote run is handled below.
			if strings.HasPrefix(l.src[i+1:], `"""`) && (i+4 >= len(l.src) || l.src[i+4] != '"') {
				b.WriteString(`"""`)
				i += 4
				continue
			}
			b.WriteByte('\\')
			i++
			continue
		}

		if c == '"' {
			run := 1
			for i+run < len(l.src) && l.src[i+run] == '"' {
				run++
			}
			if run < 3 {
				b.WriteString(l.src[i : i+run])
				i += run
				continue
			}
			take := 3
			if run >= 5 {
				// Up to two quotes ahead of the terminator are content.
				b.WriteString(`""`)
				take = 5
			}
			raw := l.src[startPos : i+take]
			l.consume(i + take - l.pos)
			l.emit(token.String, raw, blockStringValue(b.String()), line, col)
			return
		}

		b.WriteByte(c)
		i++
	}
	l.unterminated(line, col)
}

// blockStringValue normalizes raw block-string content: strip the common
// indentation of the non-first lines, strip the first line's leading
// whitespace, drop leading and trailing blank lines, and join with
// single newlines.
func blockStringValue(raw string) string {
	lines := splitLines(raw)

	commonIndent := -1
	for _, line := range lines[1:] {
		indent := indentWidth(line)
		if indent == len(line) {
			// All-whitespace lines do not vote on the common indent.
			continue
		}
		if commonIndent < 0 || indent < commonIndent {
			commonIndent = indent
		}
	}
	if commonIndent > 0 {
		for j := 1; j < len(lines); j++ {
			if commonIndent < len(lines[j]) {
				lines[j] = lines[j][commonIndent:]
			} else {
				lines[j] = ""
			}
		}
	}
	lines[0] = strings.TrimLeft(lines[0], " \t")

	start := 0
	for start < len(lines) && isBlank(lines[start]) {
		start++
	}
	end := len(lines)
	for end > start && isBlank(lines[end-1]) {
		end--
	}
	return strings.Join(lines[start:end], "\n")
}

// splitLines splits on any of the line terminators "\n", "\r\n", "\r".
func splitLines(s string) []string {
	lines := make([]string, 0, strings.Count(s, "\n")+1)
	start := 0
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '\n':
			lines = append(lines, s[start:i])
			start = i + 1
		case '\r':
			lines = append(lines, s[start:i])
			if i+1 < len(s) && s[i+1] == '\n' {
				i++
			}
			start = i + 1
		}
	}
	return append(lines, s[start:])
}

func indentWidth(line string) int {
	i := 0
	for i < len(line) && (line[i] == ' ' || line[i] == '\t') {
		i++
	}
	return i
}

func isBlank(line string) bool {
	return indentWidth(line) == len(line)
}
