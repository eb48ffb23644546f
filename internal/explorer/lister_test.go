package explorer

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lensfs/lens/backend/internal/infrastructure/logging"
)

// seedListing builds a small mixed directory for listing tests.
func seedListing(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.Mkdir(filepath.Join(dir, "docs"), 0o755))
	require.NoError(t, os.Mkdir(filepath.Join(dir, "Pics"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("n"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "Archive.zip"), []byte("z"), 0o644))
	return dir
}

func TestListSorted(t *testing.T) {
	dir := seedListing(t)
	lister := NewLister(logging.NewNop())

	entries, err := lister.List(dir)
	require.NoError(t, err)
	require.Len(t, entries, 4)

	names := make([]string, len(entries))
	for i, e := range entries {
		names[i] = e.Name
	}
	assert.Equal(t, []string{"docs", "Pics", "Archive.zip", "notes.txt"}, names)

	for _, e := range entries {
		assert.Equal(t, filepath.Join(dir, e.Name), e.Path)
	}
}

func TestListEmptyDirectory(t *testing.T) {
	lister := NewLister(logging.NewNop())

	entries, err := lister.List(t.TempDir())
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestListNotFound(t *testing.T) {
	lister := NewLister(logging.NewNop())

	_, err := lister.List(filepath.Join(t.TempDir(), "missing"))
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestListNotADirectory(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "plain.txt")
	require.NoError(t, os.WriteFile(file, []byte("x"), 0o644))
	lister := NewLister(logging.NewNop())

	_, err := lister.List(file)
	assert.ErrorIs(t, err, ErrNotADirectory)
}
