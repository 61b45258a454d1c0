// Package glex is the public entry point for the GraphQL lexer: it
// tokenizes documents and reports lexical errors as in-band tokens.
package glex

import (
	"github.com/glexlang/glex/internal"
	"github.com/glexlang/glex/internal/types"
	"github.com/glexlang/glex/lexer"
	"github.com/glexlang/glex/token"
)

// Tokenize scans source and returns its tokens in order, ending with a
// single EOF token. Malformed input surfaces as error tokens inside the
// sequence, never as a panic or error return.
func Tokenize(source string) []*token.Token {
	return lexer.Tokenize(source)
}

// Check tokenizes source and returns one issue per error token.
// filename is used for reporting only and may be empty.
func Check(source []byte, filename string) []types.Issue {
	return internal.NewEngine().RunSource(source, filename)
}
