package explorer

import (
	"context"
	"fmt"
	"os"
	"sort"
	"sync"
	"sync/atomic"

	"github.com/charlievieth/fastwalk"
	"github.com/gabriel-vasile/mimetype"

	core "github.com/lensfs/lens/backend/internal/explorer"
	"github.com/lensfs/lens/backend/internal/shared/paths"
	"github.com/lensfs/lens/backend/internal/shared/types"
)

// MetadataOps handles file metadata operations
type MetadataOps struct {
	*ExplorerOps
}

// GetTools returns metadata operation tool definitions
func (m *MetadataOps) GetTools() []types.Tool {
	return []types.Tool{
		{
			ID:          "explorer.stat",
			Name:        "Entry Metadata",
			Description: "Get one entry's metadata",
			Parameters: []types.Parameter{
				{Name: "path", Type: "string", Description: "Absolute path", Required: true},
			},
			Returns: "object",
		},
		{
			ID:          "explorer.mime",
			Name:        "MIME Type",
			Description: "Detect a file's MIME type from content",
			Parameters: []types.Parameter{
				{Name: "path", Type: "string", Description: "File path", Required: true},
			},
			Returns: "object",
		},
		{
			ID:          "explorer.size.total",
			Name:        "Directory Size",
			Description: "Total size of all files under a directory",
			Parameters: []types.Parameter{
				{Name: "path", Type: "string", Description: "Directory path", Required: true},
			},
			Returns: "object",
		},
		{
			ID:          "explorer.flatten",
			Name:        "Flatten Files",
			Description: "All file paths under a directory as a flat array",
			Parameters: []types.Parameter{
				{Name: "path", Type: "string", Description: "Directory path", Required: true},
			},
			Returns: "array",
		},
	}
}

// Stat returns one entry's metadata.
func (m *MetadataOps) Stat(ctx context.Context, params map[string]interface{}, appCtx *types.Context) (*types.Result, error) {
	path, ok := pathParam(params)
	if !ok {
		return Failure("path parameter required")
	}
	abs, err := paths.RequireAbsolute(path)
	if err != nil {
		return Failure(err.Error())
	}

	entry, err := core.StatEntry(abs)
	if err != nil {
		return Failure(fmt.Sprintf("stat failed: %v", err))
	}
	return Success(entryMap(entry))
}

// Mime detects a file's MIME type from its content.
func (m *MetadataOps) Mime(ctx context.Context, params map[string]interface{}, appCtx *types.Context) (*types.Result, error) {
	path, ok := pathParam(params)
	if !ok {
		return Failure("path parameter required")
	}
	abs, err := paths.RequireAbsolute(path)
	if err != nil {
		return Failure(err.Error())
	}

	mtype, err := mimetype.DetectFile(abs)
	if err != nil {
		return Failure(fmt.Sprintf("detect failed: %v", err))
	}
	return Success(map[string]interface{}{
		"path":      abs,
		"mime":      mtype.String(),
		"extension": mtype.Extension(),
	})
}

// TotalSize sums every file under a directory using fastwalk. Unreadable
// subtrees are skipped, matching scan semantics.
func (m *MetadataOps) TotalSize(ctx context.Context, params map[string]interface{}, appCtx *types.Context) (*types.Result, error) {
	path, ok := pathParam(params)
	if !ok {
		return Failure("path parameter required")
	}
	abs, err := paths.RequireAbsolute(path)
	if err != nil {
		return Failure(err.Error())
	}

	// fastwalk calls back from multiple workers.
	var total atomic.Int64
	var files atomic.Int64
	conf := fastwalk.Config{Follow: false}
	walkErr := fastwalk.Walk(&conf, abs, func(p string, d os.DirEntry, err error) error {
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
		total.Add(info.Size())
		files.Add(1)
		return nil
	})
	if walkErr != nil {
		return Failure(fmt.Sprintf("size failed: %v", walkErr))
	}

	return Success(map[string]interface{}{
		"path":  abs,
		"bytes": total.Load(),
		"files": files.Load(),
	})
}

// Flatten returns every file path under a directory.
func (m *MetadataOps) Flatten(ctx context.Context, params map[string]interface{}, appCtx *types.Context) (*types.Result, error) {
	path, ok := pathParam(params)
	if !ok {
		return Failure("path parameter required")
	}
	abs, err := paths.RequireAbsolute(path)
	if err != nil {
		return Failure(err.Error())
	}

	var mu sync.Mutex
	files := []string{}
	conf := fastwalk.Config{Follow: false}
	walkErr := fastwalk.Walk(&conf, abs, func(p string, d os.DirEntry, err error) error {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}
		if err != nil || d.IsDir() {
			return nil
		}
		mu.Lock()
		files = append(files, p)
		mu.Unlock()
		return nil
	})
	if walkErr != nil {
		return Failure(fmt.Sprintf("flatten failed: %v", walkErr))
	}
	sort.Strings(files)

	return Success(map[string]interface{}{"path": abs, "files": files, "count": len(files)})
}
