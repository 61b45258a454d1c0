package internal

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunSource(t *testing.T) {
	t.Parallel()
	engine := NewEngine()

	issues := engine.RunSource([]byte("{ user { id } }"), "clean.graphql")
	assert.Empty(t, issues)

	issues = engine.RunSource([]byte("{ user ; }"), "bad.graphql")
	require.Len(t, issues, 1)
	assert.Equal(t, "UNKNOWN_CHAR", issues[0].Kind)
	assert.Equal(t, "bad.graphql", issues[0].Filename)
	assert.Equal(t, 1, issues[0].Line)
	assert.Equal(t, 8, issues[0].Column)
	assert.Equal(t, ";", issues[0].Raw)
}

func TestRunSourceBadEscape(t *testing.T) {
	t.Parallel()
	engine := NewEngine()

	issues := engine.RunSource([]byte(`{ f(a: "\uDEAD") }`), "")
	require.Len(t, issues, 1)
	assert.Equal(t, "BAD_UNICODE_ESCAPE", issues[0].Kind)
	assert.Equal(t, `"\uDEAD"`, issues[0].Raw)
	assert.Equal(t, 8, issues[0].Column)
	assert.Contains(t, issues[0].Message, "malformed Unicode")
}

func TestIgnoreKind(t *testing.T) {
	t.Parallel()
	engine := NewEngine()
	engine.IgnoreKind("UNKNOWN_CHAR")

	issues := engine.RunSource([]byte("; \"\\uD800\""), "")
	require.Len(t, issues, 1)
	assert.Equal(t, "BAD_UNICODE_ESCAPE", issues[0].Kind)
}

func TestRunFile(t *testing.T) {
	t.Parallel()
	tempDir := t.TempDir()
	path := filepath.Join(tempDir, "doc.graphql")
	require.NoError(t, os.WriteFile(path, []byte("query { a } %"), 0o644))

	engine := NewEngine()
	issues, err := engine.Run(path)
	require.NoError(t, err)
	require.Len(t, issues, 1)
	assert.Equal(t, path, issues[0].Filename)
	assert.Equal(t, 13, issues[0].Column)
}

func TestRunMissingFile(t *testing.T) {
	t.Parallel()
	engine := NewEngine()
	_, err := engine.Run(filepath.Join(t.TempDir(), "missing.graphql"))
	assert.Error(t, err)
}

func TestIgnorePath(t *testing.T) {
	t.Parallel()
	tempDir := t.TempDir()
	path := filepath.Join(tempDir, "doc.graphql")
	require.NoError(t, os.WriteFile(path, []byte(";"), 0o644))

	engine := NewEngine()
	engine.IgnorePath(tempDir)

	issues, err := engine.Run(path)
	require.NoError(t, err)
	assert.Empty(t, issues)
}

func TestExcerptTruncatesLongText(t *testing.T) {
	t.Parallel()
	long := make([]byte, 100)
	for i := range long {
		long[i] = 'a'
	}
	quoted := excerpt(string(long))
	assert.Less(t, len(quoted), 60)
	assert.Contains(t, quoted, "...")
}
