package explorer

import (
	"strings"
)

// Query is one search request. Name is a case-insensitive substring match
// against entry names; an empty Name matches everything. Extension, when
// non-empty, must equal the entry's extension case-insensitively, which
// excludes directories and extensionless files. Both filters are ANDed.
// Limit of zero means unbounded.
type Query struct {
	Name      string `json:"name"`
	Extension string `json:"extension"`
	Limit     int    `json:"limit"`
}

// Engine answers queries against whatever the index currently holds. It keeps
// no per-session state: supersession of stale queries is the caller's concern,
// supported by echoing the caller's request id at the boundary.
type Engine struct {
	scanner *Scanner
}

// NewEngine creates a search engine over scanner's snapshots.
func NewEngine(scanner *Scanner) *Engine {
	return &Engine{scanner: scanner}
}

// Search runs q against the latest snapshot for root and returns matches
// ordered directories-first then case-insensitively by name, the same
// contract as a directory listing. Results are a best-effort point-in-time
// view while a scan is still running. A root with no snapshot yields no
// matches; callers start a scan first.
func (e *Engine) Search(root string, q Query) []Entry {
	scan, ok := e.scanner.ForRoot(root)
	if !ok {
		return nil
	}
	return SearchIndex(scan.Index, q)
}

// SearchIndex runs q against one specific snapshot.
func SearchIndex(ix *Index, q Query) []Entry {
	name := strings.ToLower(q.Name)
	ext := strings.ToLower(strings.TrimPrefix(q.Extension, "."))

	matches := ix.Select(func(nameFolded, extension string) bool {
		if name != "" && !strings.Contains(nameFolded, name) {
			return false
		}
		if ext != "" && extension != ext {
			return false
		}
		return true
	})

	SortEntries(matches)
	if q.Limit > 0 && len(matches) > q.Limit {
		matches = matches[:q.Limit]
	}
	return matches
}
