package token

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKindString(t *testing.T) {
	t.Parallel()
	tests := []struct {
		kind Kind
		want string
	}{
		{kind: EOF, want: "EOF"},
		{kind: Bang, want: "BANG"},
		{kind: Spread, want: "SPREAD"},
		{kind: Name, want: "NAME"},
		{kind: Int, want: "INT"},
		{kind: Float, want: "FLOAT"},
		{kind: String, want: "STRING"},
		{kind: Comment, want: "COMMENT"},
		{kind: BadUnicodeEscape, want: "BAD_UNICODE_ESCAPE"},
		{kind: UnknownChar, want: "UNKNOWN_CHAR"},
		{kind: Kind(99), want: "UNKNOWN"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.kind.String())
	}
}

func TestKindIsError(t *testing.T) {
	t.Parallel()
	assert.True(t, BadUnicodeEscape.IsError())
	assert.True(t, UnknownChar.IsError())
	assert.False(t, String.IsError())
	assert.False(t, EOF.IsError())
}

func TestPreviousChain(t *testing.T) {
	t.Parallel()
	first := New(Name, "foo", "foo", 1, 1, nil)
	second := New(Colon, ":", ":", 1, 4, first)
	third := New(Int, "4", "4", 1, 6, second)

	assert.Nil(t, first.Previous())
	assert.Same(t, first, second.Previous())
	assert.Same(t, second, third.Previous())
}

func TestTokenString(t *testing.T) {
	t.Parallel()
	tok := New(String, `"a"`, "a", 2, 7, nil)
	assert.Equal(t, `(STRING "a" 2:7)`, tok.String())
}
