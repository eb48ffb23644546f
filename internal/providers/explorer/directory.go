package explorer

import (
	"context"
	"errors"
	"fmt"

	core "github.com/lensfs/lens/backend/internal/explorer"
	"github.com/lensfs/lens/backend/internal/shared/paths"
	"github.com/lensfs/lens/backend/internal/shared/types"
)

// DirectoryOps handles directory listing operations
type DirectoryOps struct {
	*ExplorerOps
}

// GetTools returns directory operation tool definitions
func (d *DirectoryOps) GetTools() []types.Tool {
	return []types.Tool{
		{
			ID:          "explorer.list",
			Name:        "List Directory",
			Description: "List direct children of a directory, directories first",
			Parameters: []types.Parameter{
				{Name: "path", Type: "string", Description: "Absolute directory path", Required: true},
			},
			Returns: "array",
		},
		{
			ID:          "explorer.refresh",
			Name:        "Refresh Listing",
			Description: "Drop the cached listing for a path (all paths if omitted)",
			Parameters: []types.Parameter{
				{Name: "path", Type: "string", Description: "Absolute directory path", Required: false},
			},
			Returns: "boolean",
		},
		{
			ID:          "explorer.exists",
			Name:        "Check Exists",
			Description: "Check whether a path exists and whether it is a directory",
			Parameters: []types.Parameter{
				{Name: "path", Type: "string", Description: "Absolute path", Required: true},
			},
			Returns: "object",
		},
	}
}

// List lists a directory's direct children through the cache.
func (d *DirectoryOps) List(ctx context.Context, params map[string]interface{}, appCtx *types.Context) (*types.Result, error) {
	path, ok := pathParam(params)
	if !ok {
		return Failure("path parameter required")
	}
	abs, err := paths.RequireAbsolute(path)
	if err != nil {
		return Failure(err.Error())
	}

	entries, err := d.Cache.Get(abs)
	if err != nil {
		return Failure(listErrorMessage(abs, err))
	}

	return Success(map[string]interface{}{
		"path":    abs,
		"entries": entryMaps(entries),
		"count":   len(entries),
	})
}

// Refresh invalidates the cached listing for path, or all listings when no
// path is given.
func (d *DirectoryOps) Refresh(ctx context.Context, params map[string]interface{}, appCtx *types.Context) (*types.Result, error) {
	path, ok := params["path"].(string)
	if !ok || path == "" {
		d.Cache.InvalidateAll()
		return Success(map[string]interface{}{"refreshed": true, "scope": "all"})
	}
	abs, err := paths.RequireAbsolute(path)
	if err != nil {
		return Failure(err.Error())
	}
	d.Cache.Invalidate(abs)
	return Success(map[string]interface{}{"refreshed": true, "path": abs})
}

// Exists reports whether path exists and is a directory.
func (d *DirectoryOps) Exists(ctx context.Context, params map[string]interface{}, appCtx *types.Context) (*types.Result, error) {
	path, ok := pathParam(params)
	if !ok {
		return Failure("path parameter required")
	}
	abs, err := paths.RequireAbsolute(path)
	if err != nil {
		return Failure(err.Error())
	}

	entry, statErr := core.StatEntry(abs)
	if statErr != nil {
		return Success(map[string]interface{}{"exists": false, "path": abs})
	}
	return Success(map[string]interface{}{
		"exists": true,
		"path":   abs,
		"is_dir": entry.IsDir,
	})
}

// listErrorMessage renders the listing error taxonomy for tool results.
func listErrorMessage(path string, err error) string {
	switch {
	case errors.Is(err, core.ErrNotFound):
		return fmt.Sprintf("not found: %s", path)
	case errors.Is(err, core.ErrNotADirectory):
		return fmt.Sprintf("not a directory: %s", path)
	case errors.Is(err, core.ErrPermissionDenied):
		return fmt.Sprintf("permission denied: %s", path)
	default:
		return fmt.Sprintf("list failed: %v", err)
	}
}
