package explorer

import (
	"context"

	core "github.com/lensfs/lens/backend/internal/explorer"
	"github.com/lensfs/lens/backend/internal/shared/paths"
	"github.com/lensfs/lens/backend/internal/shared/types"
)

// ScanOps handles index build operations
type ScanOps struct {
	*ExplorerOps
}

// GetTools returns scan operation tool definitions
func (s *ScanOps) GetTools() []types.Tool {
	return []types.Tool{
		{
			ID:          "explorer.scan.start",
			Name:        "Start Scan",
			Description: "Start (or attach to) a background index scan of a root",
			Parameters: []types.Parameter{
				{Name: "root", Type: "string", Description: "Root directory (default: configured root)", Required: false},
				{Name: "refresh", Type: "boolean", Description: "Discard a finished index and rescan", Required: false},
			},
			Returns: "object",
		},
		{
			ID:          "explorer.scan.status",
			Name:        "Scan Status",
			Description: "State, progress, and warnings of a scan",
			Parameters: []types.Parameter{
				{Name: "scan_id", Type: "string", Description: "Scan handle ID", Required: true},
			},
			Returns: "object",
		},
		{
			ID:          "explorer.scan.cancel",
			Name:        "Cancel Scan",
			Description: "Cooperatively cancel a running scan; the partial index stays queryable",
			Parameters: []types.Parameter{
				{Name: "scan_id", Type: "string", Description: "Scan handle ID", Required: true},
			},
			Returns: "boolean",
		},
		{
			ID:          "explorer.index.ready",
			Name:        "Index Ready",
			Description: "Whether the index for a root holds any entries yet",
			Parameters: []types.Parameter{
				{Name: "root", Type: "string", Description: "Root directory (default: configured root)", Required: false},
			},
			Returns: "object",
		},
	}
}

// Start begins or attaches to a scan and returns its handle immediately.
func (s *ScanOps) Start(ctx context.Context, params map[string]interface{}, appCtx *types.Context) (*types.Result, error) {
	root := s.Root
	if r, ok := params["root"].(string); ok && r != "" {
		abs, err := paths.RequireAbsolute(r)
		if err != nil {
			return Failure(err.Error())
		}
		root = abs
	}
	refresh, _ := params["refresh"].(bool)

	scan := s.Scanner.Start(root, refresh)
	return Success(scanStatus(scan))
}

// Status reports a scan's state, progress, and warnings.
func (s *ScanOps) Status(ctx context.Context, params map[string]interface{}, appCtx *types.Context) (*types.Result, error) {
	id, ok := params["scan_id"].(string)
	if !ok || id == "" {
		return Failure("scan_id parameter required")
	}
	scan, ok := s.Scanner.Get(id)
	if !ok {
		return Failure("scan not found: " + id)
	}
	return Success(scanStatus(scan))
}

// Cancel requests cooperative cancellation of a scan.
func (s *ScanOps) Cancel(ctx context.Context, params map[string]interface{}, appCtx *types.Context) (*types.Result, error) {
	id, ok := params["scan_id"].(string)
	if !ok || id == "" {
		return Failure("scan_id parameter required")
	}
	scan, ok := s.Scanner.Get(id)
	if !ok {
		return Failure("scan not found: " + id)
	}
	scan.Cancel()
	return Success(map[string]interface{}{"cancelled": true, "scan_id": id})
}

// IndexReady reports whether the root's index holds entries yet, the gate the
// UI uses to leave its "initializing" state.
func (s *ScanOps) IndexReady(ctx context.Context, params map[string]interface{}, appCtx *types.Context) (*types.Result, error) {
	root := s.Root
	if r, ok := params["root"].(string); ok && r != "" {
		root = paths.Normalize(r)
	}
	scan, ok := s.Scanner.ForRoot(root)
	if !ok {
		return Success(map[string]interface{}{"ready": false, "root": root, "entries": 0})
	}
	n := scan.Index.Len()
	return Success(map[string]interface{}{
		"ready":   n > 0,
		"root":    root,
		"entries": n,
		"state":   string(scan.State()),
	})
}

// scanStatus renders one scan handle for tool results.
func scanStatus(scan *core.Scan) map[string]interface{} {
	warnings := scan.Warnings()
	warns := make([]map[string]interface{}, len(warnings))
	for i, w := range warnings {
		warns[i] = map[string]interface{}{"kind": string(w.Kind), "path": w.Path}
		if w.Err != "" {
			warns[i]["error"] = w.Err
		}
	}
	status := map[string]interface{}{
		"scan_id":      scan.ID,
		"root":         scan.Root,
		"state":        string(scan.State()),
		"entries":      scan.Index.Len(),
		"visited_dirs": scan.VisitedDirs(),
		"warnings":     warns,
	}
	if err := scan.Err(); err != nil {
		status["error"] = err.Error()
	}
	return status
}
