package internal

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	tt "github.com/glexlang/glex/internal/types"
	"github.com/glexlang/glex/lexer"
	"github.com/glexlang/glex/token"
)

// Engine turns the lexer's error tokens into reportable issues.
type Engine struct {
	ignoredKinds map[string]bool
	ignoredPaths []string

	watcher    *watchState
	isWatching bool
}

// NewEngine creates a new check engine.
func NewEngine() *Engine {
	return &Engine{
		ignoredKinds: make(map[string]bool),
	}
}

// IgnoreKind suppresses issues of the given token kind name.
func (e *Engine) IgnoreKind(kind string) {
	e.ignoredKinds[kind] = true
}

// IgnorePath suppresses issues for files under the given path.
func (e *Engine) IgnorePath(path string) {
	e.ignoredPaths = append(e.ignoredPaths, filepath.Clean(path))
}

// Run tokenizes the named file and returns its lexical issues.
func (e *Engine) Run(filename string) ([]tt.Issue, error) {
	if e.isIgnoredPath(filename) {
		return nil, nil
	}
	source, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("error reading %s: %w", filename, err)
	}
	return e.RunSource(source, filename), nil
}

// RunSource tokenizes an in-memory document. filename is used only for
// reporting and may be empty.
func (e *Engine) RunSource(source []byte, filename string) []tt.Issue {
	var issues []tt.Issue
	for _, tok := range lexer.Tokenize(string(source)) {
		if !tok.Kind.IsError() {
			continue
		}
		kind := tok.Kind.String()
		if e.ignoredKinds[kind] {
			continue
		}
		issues = append(issues, tt.Issue{
			Kind:     kind,
			Filename: filename,
			Message:  issueMessage(tok),
			Raw:      tok.Raw,
			Line:     tok.Line,
			Column:   tok.Col,
		})
	}
	return issues
}

func issueMessage(tok *token.Token) string {
	if tok.Kind == token.BadUnicodeEscape {
		return fmt.Sprintf("malformed Unicode escape or encoding in %s", excerpt(tok.Raw))
	}
	return fmt.Sprintf("unexpected character %s", excerpt(tok.Raw))
}

// excerpt quotes raw source text, shortening long runs so messages stay
// on one line.
func excerpt(raw string) string {
	const maxLen = 40
	if len(raw) > maxLen {
		raw = raw[:maxLen] + "..."
	}
	return fmt.Sprintf("%q", raw)
}

func (e *Engine) isIgnoredPath(path string) bool {
	cleaned := filepath.Clean(path)
	for _, ignored := range e.ignoredPaths {
		if cleaned == ignored || strings.HasPrefix(cleaned, ignored+string(filepath.Separator)) {
			return true
		}
	}
	return false
}

// SourceCode stores the content of a source file, one entry per line.
type SourceCode struct {
	Lines []string
}

// ReadSourceCode reads a file and splits it into lines for excerpting.
func ReadSourceCode(filename string) (*SourceCode, error) {
	content, err := os.ReadFile(filename)
	if err != nil {
		return nil, err
	}
	return &SourceCode{Lines: strings.Split(string(content), "\n")}, nil
}
