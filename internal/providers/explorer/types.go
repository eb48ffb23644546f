package explorer

import (
	"github.com/lensfs/lens/backend/internal/explorer"
	"github.com/lensfs/lens/backend/internal/infrastructure/monitoring"
	"github.com/lensfs/lens/backend/internal/shared/types"
)

// ExplorerOps bundles the engine components every operation group needs.
type ExplorerOps struct {
	Root    string
	Cache   *explorer.Cache
	Scanner *explorer.Scanner
	Engine  *explorer.Engine
	Opener  *explorer.Opener
	Metrics *monitoring.Metrics
}

// Success helper
func Success(data map[string]interface{}) (*types.Result, error) {
	return &types.Result{Success: true, Data: data}, nil
}

// Failure helper
func Failure(message string) (*types.Result, error) {
	msg := message
	return &types.Result{Success: false, Error: &msg}, nil
}

// entryMaps converts entries for map-based tool results.
func entryMaps(entries []explorer.Entry) []map[string]interface{} {
	out := make([]map[string]interface{}, len(entries))
	for i, e := range entries {
		out[i] = entryMap(e)
	}
	return out
}

func entryMap(e explorer.Entry) map[string]interface{} {
	m := map[string]interface{}{
		"name":     e.Name,
		"path":     e.Path,
		"size":     e.Size,
		"modified": e.Modified,
		"is_dir":   e.IsDir,
	}
	if e.Extension != "" {
		m["extension"] = e.Extension
	}
	return m
}
