package check

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestProcessSingleFile(t *testing.T) {
	t.Parallel()
	tempDir := t.TempDir()

	// A stray semicolon is not part of the grammar.
	path := writeFile(t, tempDir, "query.graphql", "{ user; }")

	engine, err := New("")
	require.NoError(t, err)

	issues, err := ProcessFiles(context.Background(), nil, engine, []string{path})
	require.NoError(t, err)

	require.Len(t, issues, 1)
	assert.Equal(t, "UNKNOWN_CHAR", issues[0].Kind)
	assert.Equal(t, path, issues[0].Filename)
	assert.Equal(t, 1, issues[0].Line)
	assert.Equal(t, 7, issues[0].Column)
}

func TestProcessDirectory(t *testing.T) {
	t.Parallel()
	tempDir := t.TempDir()

	writeFile(t, tempDir, "ok.graphql", "{ user { id name } }")
	writeFile(t, tempDir, "bad_escape.graphql", `{ f(a: "\uD800") }`)
	writeFile(t, tempDir, "sub/unknown.gql", "{ x } ;")
	writeFile(t, tempDir, "ignored.txt", ";;;")

	engine, err := New("")
	require.NoError(t, err)

	issues, err := ProcessFiles(context.Background(), nil, engine, []string{tempDir})
	require.NoError(t, err)

	kinds := map[string]int{}
	for _, issue := range issues {
		kinds[issue.Kind]++
	}
	assert.Equal(t, 1, kinds["BAD_UNICODE_ESCAPE"])
	assert.Equal(t, 1, kinds["UNKNOWN_CHAR"])
}

func TestProcessPathContextCancellation(t *testing.T) {
	t.Parallel()
	tempDir := t.TempDir()

	for i := 0; i < 10; i++ {
		writeFile(t, tempDir, fmt.Sprintf("doc%d.graphql", i), "{ field }")
	}

	engine, err := New("")
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(5 * time.Millisecond)
		cancel()
	}()

	// With a cancelled context processing stops early; whatever finished
	// before that is still returned.
	_, err = ProcessPath(ctx, nil, engine, tempDir)
	if err != nil {
		assert.ErrorIs(t, err, context.Canceled)
	}
}

func TestProcessSources(t *testing.T) {
	t.Parallel()
	engine, err := New("")
	require.NoError(t, err)

	sources := [][]byte{
		[]byte("{ good }"),
		[]byte("{ bad ; }"),
	}
	issues, err := ProcessSources(context.Background(), nil, engine, sources)
	require.NoError(t, err)

	require.Len(t, issues, 1)
	assert.Equal(t, "UNKNOWN_CHAR", issues[0].Kind)
	assert.Equal(t, "source-1", issues[0].Filename)
}

func TestConfigurationFile(t *testing.T) {
	t.Parallel()
	tempDir := t.TempDir()

	cfg := writeFile(t, tempDir, ".glex.yaml", "name: glex\nignore-kinds:\n  - UNKNOWN_CHAR\n")
	doc := writeFile(t, tempDir, "doc.graphql", "{ x } ;")

	engine, err := New(cfg)
	require.NoError(t, err)

	issues, err := ProcessFiles(context.Background(), nil, engine, []string{doc})
	require.NoError(t, err)
	assert.Empty(t, issues)
}

func TestHasDesiredExtension(t *testing.T) {
	t.Parallel()
	assert.True(t, HasDesiredExtension("a/b/query.graphql"))
	assert.True(t, HasDesiredExtension("frag.GQL"))
	assert.True(t, HasDesiredExtension("schema.graphqls"))
	assert.False(t, HasDesiredExtension("main.go"))
	assert.False(t, HasDesiredExtension("notes.txt"))
}
