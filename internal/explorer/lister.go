package explorer

import (
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/lensfs/lens/backend/internal/infrastructure/logging"
)

// Lister enumerates the direct children of one directory. It has no cache and
// no recursion; the Cache and Scanner build on it.
type Lister struct {
	logger *logging.Logger
}

// NewLister creates a directory lister.
func NewLister(logger *logging.Logger) *Lister {
	return &Lister{logger: logger}
}

// List returns the direct children of path, sorted directories-first then
// case-insensitively by name. Children that vanish or fail to stat between
// enumeration and inspection are skipped; a partial listing is valid.
// Errors on path itself (ErrNotFound, ErrNotADirectory, ErrPermissionDenied)
// are terminal and return no listing.
func (l *Lister) List(path string) ([]Entry, error) {
	path = filepath.Clean(path)

	dirents, err := os.ReadDir(path)
	if err != nil {
		// ReadDir on a file reports ENOTDIR on most platforms; stat the
		// path so the classification is the same everywhere.
		if info, statErr := os.Stat(path); statErr == nil && !info.IsDir() {
			return nil, fmt.Errorf("%s: %w", path, ErrNotADirectory)
		}
		return nil, mapListError(path, err)
	}

	entries := make([]Entry, 0, len(dirents))
	for _, d := range dirents {
		child := filepath.Join(path, d.Name())
		info, err := d.Info()
		if err != nil {
			l.logger.Debug("skipping unreadable entry",
				zap.String("path", child),
				zap.Error(err),
			)
			continue
		}
		entries = append(entries, NewEntry(child, info))
	}

	SortEntries(entries)
	return entries, nil
}
