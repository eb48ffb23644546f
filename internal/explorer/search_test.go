package explorer

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lensfs/lens/backend/internal/infrastructure/logging"
)

func seedIndex() *Index {
	ix := NewIndex()
	ix.Insert(
		Entry{Name: "docs", Path: "/data/docs", IsDir: true},
		Entry{Name: "Report.pdf", Path: "/data/docs/Report.pdf", Extension: "pdf"},
		Entry{Name: "report-final.PDF", Path: "/data/docs/report-final.PDF", Extension: "pdf"},
		Entry{Name: "notes.txt", Path: "/data/docs/notes.txt", Extension: "txt"},
		Entry{Name: "backup.txtx", Path: "/data/docs/backup.txtx", Extension: "txtx"},
		Entry{Name: "Reports", Path: "/data/Reports", IsDir: true},
	)
	return ix
}

func TestSearchNameCaseInsensitive(t *testing.T) {
	matches := SearchIndex(seedIndex(), Query{Name: "REPORT"})

	names := make([]string, len(matches))
	for i, e := range matches {
		names[i] = e.Name
	}
	assert.Equal(t, []string{"Reports", "report-final.PDF", "Report.pdf"}, names,
		"directories first, then case-insensitive name order")
}

func TestSearchExtensionExact(t *testing.T) {
	matches := SearchIndex(seedIndex(), Query{Extension: "txt"})

	require.Len(t, matches, 1, "'txtx' is not a match for 'txt'")
	assert.Equal(t, "notes.txt", matches[0].Name)
}

func TestSearchExtensionExcludesDirectories(t *testing.T) {
	matches := SearchIndex(seedIndex(), Query{Name: "report", Extension: "pdf"})

	require.Len(t, matches, 2)
	for _, e := range matches {
		assert.False(t, e.IsDir)
	}
}

func TestSearchExtensionDotAndCaseInsensitive(t *testing.T) {
	for _, ext := range []string{"pdf", ".pdf", "PDF", ".PDF"} {
		matches := SearchIndex(seedIndex(), Query{Extension: ext})
		assert.Len(t, matches, 2, "extension form %q", ext)
	}
}

func TestSearchEmptyQueryMatchesAll(t *testing.T) {
	matches := SearchIndex(seedIndex(), Query{})
	assert.Len(t, matches, 6)
}

func TestSearchLimit(t *testing.T) {
	matches := SearchIndex(seedIndex(), Query{Limit: 2})

	require.Len(t, matches, 2)
	assert.True(t, matches[0].IsDir, "truncation happens after ordering")
}

func TestSearchNoMatches(t *testing.T) {
	matches := SearchIndex(seedIndex(), Query{Name: "zzz"})
	assert.Empty(t, matches)
}

func TestEngineSearchUnknownRoot(t *testing.T) {
	engine := NewEngine(NewScanner(logging.NewNop(), nil))

	assert.Empty(t, engine.Search("/never/scanned", Query{Name: "x"}))
}

func TestEngineSearchAfterScan(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(root, "docs"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(root, "docs", "Report.pdf"), []byte("p"), 0o644))

	scanner := NewScanner(logging.NewNop(), nil)
	engine := NewEngine(scanner)

	scan := scanner.Start(root, false)
	awaitScan(t, scan)

	matches := engine.Search(root, Query{Name: "report"})
	require.Len(t, matches, 1)
	assert.Equal(t, filepath.Join(root, "docs", "Report.pdf"), matches[0].Path)
}
