package explorer

import (
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// Entry describes one filesystem node. Values are immutable once built;
// Extension is lowercase without the dot and empty for directories and
// extensionless files.
type Entry struct {
	Name      string `json:"name"`
	Path      string `json:"path"`
	Extension string `json:"extension,omitempty"`
	Size      int64  `json:"size"`
	Modified  int64  `json:"modified"`
	IsDir     bool   `json:"is_dir"`
}

// NewEntry builds an Entry for path from already-obtained metadata.
// Symlinks are resolved so that links to directories count as directories.
func NewEntry(path string, info fs.FileInfo) Entry {
	isDir := info.IsDir()
	if info.Mode()&fs.ModeSymlink != 0 {
		if target, err := os.Stat(path); err == nil {
			info = target
			isDir = target.IsDir()
		}
	}

	e := Entry{
		Name:     filepath.Base(path),
		Path:     path,
		Modified: info.ModTime().Unix(),
		IsDir:    isDir,
	}
	if !isDir {
		e.Size = info.Size()
		if ext := filepath.Ext(e.Name); ext != "" && ext != e.Name {
			e.Extension = strings.ToLower(ext[1:])
		}
	}
	return e
}

// StatEntry builds an Entry by stat-ing path. The returned error is the raw
// OS error; callers enumerating many entries skip failures instead of
// aborting.
func StatEntry(path string) (Entry, error) {
	info, err := os.Lstat(path)
	if err != nil {
		return Entry{}, err
	}
	return NewEntry(path, info), nil
}

// SortEntries orders entries directories-first, then case-insensitively by
// name. Listing and search share this ordering so the UI renders both with
// one code path.
func SortEntries(entries []Entry) {
	sort.SliceStable(entries, func(i, j int) bool {
		a, b := entries[i], entries[j]
		if a.IsDir != b.IsDir {
			return a.IsDir
		}
		al, bl := strings.ToLower(a.Name), strings.ToLower(b.Name)
		if al != bl {
			return al < bl
		}
		return a.Name < b.Name
	})
}
