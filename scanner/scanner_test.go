package scanner

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDocumentScanner(t *testing.T) {
	tempDir, err := os.MkdirTemp("", "test")
	require.NoError(t, err)
	defer os.RemoveAll(tempDir)

	files := map[string]string{
		"query.graphql":    "{ user { id } }",
		"schema.graphqls":  "type Query { user: User }",
		"notes.txt":        "This is a text file",
		"subdir/frag.gql":  "fragment F on User { name }",
		"subdir/readme.md": "# docs",
	}

	for path, content := range files {
		fullPath := filepath.Join(tempDir, path)
		err := os.MkdirAll(filepath.Dir(fullPath), 0o755)
		require.NoError(t, err)
		err = os.WriteFile(fullPath, []byte(content), 0o644)
		require.NoError(t, err)
	}

	scanner := New(tempDir)
	scannedFiles, err := scanner.Scan()
	require.NoError(t, err)

	assert.Equal(t, 3, len(scannedFiles), "Should find 3 GraphQL documents")

	foundPaths := make(map[string]bool)
	for _, file := range scannedFiles {
		foundPaths[file.Path] = true
		assert.Greater(t, file.Size, int64(0), "File size should be greater than 0")
	}

	assert.True(t, foundPaths[filepath.Join(tempDir, "query.graphql")])
	assert.True(t, foundPaths[filepath.Join(tempDir, "schema.graphqls")])
	assert.True(t, foundPaths[filepath.Join(tempDir, "subdir/frag.gql")])
	assert.False(t, foundPaths[filepath.Join(tempDir, "notes.txt")])
}

func TestExplicitExtensions(t *testing.T) {
	tempDir, err := os.MkdirTemp("", "test")
	require.NoError(t, err)
	defer os.RemoveAll(tempDir)

	err = os.WriteFile(filepath.Join(tempDir, "a.gql"), []byte("{x}"), 0o644)
	require.NoError(t, err)
	err = os.WriteFile(filepath.Join(tempDir, "b.graphql"), []byte("{y}"), 0o644)
	require.NoError(t, err)

	scanner := New(tempDir, ".gql")
	scannedFiles, err := scanner.Scan()
	require.NoError(t, err)

	require.Len(t, scannedFiles, 1)
	assert.Equal(t, filepath.Join(tempDir, "a.gql"), scannedFiles[0].Path)
}
