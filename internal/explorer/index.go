package explorer

import (
	"strings"
	"sync"
)

// indexed is one Entry with its match keys folded once at insert time so
// searches do not re-fold on every read.
type indexed struct {
	entry      Entry
	nameFolded string
	extension  string
}

// Index is the searchable snapshot a scan accumulates. Exactly one scan
// goroutine writes; any number of searches read concurrently under the read
// lock. Entries are keyed by path, so re-visiting a path replaces rather than
// duplicates. The index is never rolled back: a failed subtree simply stops
// contributing.
type Index struct {
	mu      sync.RWMutex
	entries []indexed
	byPath  map[string]int
}

// NewIndex creates an empty index.
func NewIndex() *Index {
	return &Index{byPath: make(map[string]int)}
}

// Insert adds or replaces entries in the snapshot. Called only by the owning
// scan goroutine.
func (ix *Index) Insert(entries ...Entry) {
	ix.mu.Lock()
	defer ix.mu.Unlock()
	for _, e := range entries {
		rec := indexed{
			entry:      e,
			nameFolded: strings.ToLower(e.Name),
			extension:  e.Extension,
		}
		if i, ok := ix.byPath[e.Path]; ok {
			ix.entries[i] = rec
			continue
		}
		ix.byPath[e.Path] = len(ix.entries)
		ix.entries = append(ix.entries, rec)
	}
}

// Len reports how many entries the snapshot currently holds.
func (ix *Index) Len() int {
	ix.mu.RLock()
	defer ix.mu.RUnlock()
	return len(ix.entries)
}

// Select returns a copy of every entry matching pred, read under the shared
// lock so the builder is never blocked for longer than one append. The result
// is a point-in-time view; entries inserted after the read began may be
// missing, which callers treat as eventual consistency rather than an error.
func (ix *Index) Select(pred func(nameFolded, extension string) bool) []Entry {
	ix.mu.RLock()
	defer ix.mu.RUnlock()
	var out []Entry
	for _, rec := range ix.entries {
		if pred(rec.nameFolded, rec.extension) {
			out = append(out, rec.entry)
		}
	}
	return out
}
