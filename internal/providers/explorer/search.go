package explorer

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/charlievieth/fastwalk"

	core "github.com/lensfs/lens/backend/internal/explorer"
	"github.com/lensfs/lens/backend/internal/shared/paths"
	"github.com/lensfs/lens/backend/internal/shared/types"
)

// SearchOps handles search operations over the index and the tree.
type SearchOps struct {
	*ExplorerOps
}

// GetTools returns search operation tool definitions
func (s *SearchOps) GetTools() []types.Tool {
	return []types.Tool{
		{
			ID:          "explorer.search",
			Name:        "Search Files",
			Description: "Search the index by name substring and extension; an unscanned root matches nothing until explorer.scan.start",
			Parameters: []types.Parameter{
				{Name: "name", Type: "string", Description: "Case-insensitive name substring", Required: false},
				{Name: "extension", Type: "string", Description: "Exact extension filter (e.g. 'pdf')", Required: false},
				{Name: "limit", Type: "number", Description: "Max results (0=unbounded)", Required: false},
				{Name: "root", Type: "string", Description: "Scan root (default: configured root)", Required: false},
			},
			Returns: "array",
		},
		{
			ID:          "explorer.glob",
			Name:        "Glob Search",
			Description: "Match files under a directory with ** patterns",
			Parameters: []types.Parameter{
				{Name: "path", Type: "string", Description: "Root directory", Required: true},
				{Name: "pattern", Type: "string", Description: "Glob pattern (e.g. '**/*.go')", Required: true},
			},
			Returns: "array",
		},
		{
			ID:          "explorer.recent",
			Name:        "Recent Files",
			Description: "Most recently modified indexed files",
			Parameters: []types.Parameter{
				{Name: "hours", Type: "number", Description: "Hours ago (default 24)", Required: false},
				{Name: "limit", Type: "number", Description: "Max results (default 50)", Required: false},
				{Name: "root", Type: "string", Description: "Scan root (default: configured root)", Required: false},
			},
			Returns: "array",
		},
	}
}

// Search queries the current index snapshot.
func (s *SearchOps) Search(ctx context.Context, params map[string]interface{}, appCtx *types.Context) (*types.Result, error) {
	q := core.Query{}
	if name, ok := params["name"].(string); ok {
		q.Name = name
	}
	if ext, ok := params["extension"].(string); ok {
		q.Extension = ext
	}
	if limit, ok := params["limit"].(float64); ok && limit > 0 {
		q.Limit = int(limit)
	}
	root := s.Root
	if r, ok := params["root"].(string); ok && r != "" {
		root = paths.Normalize(r)
	}

	start := time.Now()
	matches := s.Engine.Search(root, q)
	s.Metrics.RecordSearch(time.Since(start), len(matches))

	data := map[string]interface{}{
		"entries": entryMaps(matches),
		"count":   len(matches),
		"root":    root,
	}
	// Echo the caller's request id so superseded queries can be discarded.
	if appCtx != nil && appCtx.RequestID != nil {
		data["request_id"] = *appCtx.RequestID
	}
	return Success(data)
}

// Glob matches files under a directory with doublestar patterns. This walks
// the live tree, not the index, so it sees entries a running scan has not
// reached yet.
func (s *SearchOps) Glob(ctx context.Context, params map[string]interface{}, appCtx *types.Context) (*types.Result, error) {
	path, ok := pathParam(params)
	if !ok {
		return Failure("path parameter required")
	}
	pattern, ok := params["pattern"].(string)
	if !ok || pattern == "" {
		return Failure("pattern parameter required")
	}
	abs, err := paths.RequireAbsolute(path)
	if err != nil {
		return Failure(err.Error())
	}

	matches, err := doublestar.FilepathGlob(filepath.Join(abs, pattern))
	if err != nil {
		return Failure(fmt.Sprintf("glob failed: %v", err))
	}

	relMatches := []string{}
	for _, match := range matches {
		if relPath, err := filepath.Rel(abs, match); err == nil {
			relMatches = append(relMatches, relPath)
		}
	}

	return Success(map[string]interface{}{"path": abs, "matches": relMatches, "count": len(relMatches)})
}

// Recent returns the most recently modified indexed files; when no index
// exists for the root it falls back to walking the tree directly.
func (s *SearchOps) Recent(ctx context.Context, params map[string]interface{}, appCtx *types.Context) (*types.Result, error) {
	hours := 24.0
	if h, ok := params["hours"].(float64); ok && h > 0 {
		hours = h
	}
	limit := 50
	if l, ok := params["limit"].(float64); ok && l > 0 {
		limit = int(l)
	}
	root := s.Root
	if r, ok := params["root"].(string); ok && r != "" {
		root = paths.Normalize(r)
	}
	cutoff := time.Now().Add(-time.Duration(hours * float64(time.Hour))).Unix()

	var files []core.Entry
	if scan, ok := s.Scanner.ForRoot(root); ok {
		for _, e := range core.SearchIndex(scan.Index, core.Query{}) {
			if !e.IsDir && e.Modified >= cutoff {
				files = append(files, e)
			}
		}
	} else {
		files = s.walkRecent(ctx, root, cutoff)
	}

	// Newest first.
	sort.Slice(files, func(i, j int) bool { return files[i].Modified > files[j].Modified })
	if len(files) > limit {
		files = files[:limit]
	}

	return Success(map[string]interface{}{
		"entries": entryMaps(files),
		"count":   len(files),
		"root":    root,
	})
}

func (s *SearchOps) walkRecent(ctx context.Context, root string, cutoff int64) []core.Entry {
	// fastwalk calls back from multiple workers.
	var mu sync.Mutex
	var files []core.Entry
	conf := fastwalk.Config{Follow: false}
	fastwalk.Walk(&conf, root, func(p string, d os.DirEntry, err error) error {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}
		if err != nil || d.IsDir() {
			return nil
		}
		info, err := d.Info()
		if err != nil {
			return nil
		}
		if info.ModTime().Unix() >= cutoff {
			mu.Lock()
			files = append(files, core.NewEntry(p, info))
			mu.Unlock()
		}
		return nil
	})
	return files
}
