package explorer

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIndexInsertAndSelect(t *testing.T) {
	ix := NewIndex()
	ix.Insert(
		Entry{Name: "Report.pdf", Path: "/data/docs/Report.pdf", Extension: "pdf"},
		Entry{Name: "notes.txt", Path: "/data/docs/notes.txt", Extension: "txt"},
	)

	assert.Equal(t, 2, ix.Len())

	pdfs := ix.Select(func(_, extension string) bool { return extension == "pdf" })
	assert.Len(t, pdfs, 1)
	assert.Equal(t, "Report.pdf", pdfs[0].Name)
}

func TestIndexSelectFoldedNames(t *testing.T) {
	ix := NewIndex()
	ix.Insert(Entry{Name: "README.md", Path: "/data/README.md", Extension: "md"})

	got := ix.Select(func(nameFolded, _ string) bool { return nameFolded == "readme.md" })
	assert.Len(t, got, 1, "names are folded once at insert time")
}

func TestIndexReplaceNotDuplicate(t *testing.T) {
	ix := NewIndex()
	ix.Insert(Entry{Name: "a.txt", Path: "/data/a.txt", Size: 1})
	ix.Insert(Entry{Name: "a.txt", Path: "/data/a.txt", Size: 9})

	assert.Equal(t, 1, ix.Len(), "re-visiting a path replaces its entry")

	all := ix.Select(func(_, _ string) bool { return true })
	assert.Equal(t, int64(9), all[0].Size)
}

func TestIndexSelectIsSnapshot(t *testing.T) {
	ix := NewIndex()
	ix.Insert(Entry{Name: "a.txt", Path: "/a.txt"})

	got := ix.Select(func(_, _ string) bool { return true })
	ix.Insert(Entry{Name: "b.txt", Path: "/b.txt"})

	assert.Len(t, got, 1, "a completed read does not grow afterwards")
	assert.Equal(t, 2, ix.Len())
}
