package store

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"
)

func TestAtomicWrite(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "target.md")

	require.NoError(t, atomicWrite(path, []byte("first\n")))
	require.NoError(t, atomicWrite(path, []byte("second\n")))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "second\n", string(data))

	// No temp files may survive a successful write.
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "target.md", entries[0].Name())
}

func TestAtomicWriteMissingDir(t *testing.T) {
	err := atomicWrite(filepath.Join(t.TempDir(), "nope", "target.md"), []byte("x"))
	assert.Error(t, err)
}

func TestAtomicWriteConcurrent(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "target.md")

	var g errgroup.Group
	for i := 0; i < 10; i++ {
		content := fmt.Sprintf("writer %d\n", i)
		g.Go(func() error {
			return atomicWrite(path, []byte(content))
		})
	}
	require.NoError(t, g.Wait())

	// The survivor must be exactly one writer's complete output, never
	// an interleaving.
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Regexp(t, `^writer \d\n$`, string(data))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	for _, e := range entries {
		assert.False(t, strings.HasSuffix(e.Name(), ".tmp"), "leftover temp file %s", e.Name())
	}
}

func TestAppendLine(t *testing.T) {
	path := filepath.Join(t.TempDir(), "log.ndjson")

	require.NoError(t, appendLine(path, []byte(`{"n":1}`)))
	require.NoError(t, appendLine(path, []byte(`{"n":2}`)))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "{\"n\":1}\n{\"n\":2}\n", string(data))
}
