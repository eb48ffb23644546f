package explorer

import (
	"context"
	"fmt"

	"github.com/lensfs/lens/backend/internal/shared/types"
)

// Provider exposes the filesystem index and search engine as a tool-based
// service.
type Provider struct {
	ops       *ExplorerOps
	directory *DirectoryOps
	search    *SearchOps
	scan      *ScanOps
	metadata  *MetadataOps
	open      *OpenOps
}

// NewProvider creates an explorer provider over the given engine components.
func NewProvider(ops *ExplorerOps) *Provider {
	return &Provider{
		ops:       ops,
		directory: &DirectoryOps{ExplorerOps: ops},
		search:    &SearchOps{ExplorerOps: ops},
		scan:      &ScanOps{ExplorerOps: ops},
		metadata:  &MetadataOps{ExplorerOps: ops},
		open:      &OpenOps{ExplorerOps: ops},
	}
}

// Definition returns service metadata
func (p *Provider) Definition() types.Service {
	tools := []types.Tool{}
	tools = append(tools, p.directory.GetTools()...)
	tools = append(tools, p.search.GetTools()...)
	tools = append(tools, p.scan.GetTools()...)
	tools = append(tools, p.metadata.GetTools()...)
	tools = append(tools, p.open.GetTools()...)

	return types.Service{
		ID:          "explorer",
		Name:        "File Explorer Service",
		Description: "Directory browsing, background indexing, and name/extension search over the local filesystem",
		Category:    types.CategoryFilesystem,
		Capabilities: []string{
			"list",
			"search",
			"index",
			"stat",
			"open",
		},
		Tools: tools,
		DataModels: []types.DataModel{
			{
				Name: "Entry",
				Fields: map[string]string{
					"name":      "string",
					"path":      "string",
					"extension": "string?",
					"size":      "number",
					"modified":  "number",
					"is_dir":    "boolean",
				},
			},
		},
	}
}

// Execute runs a tool by ID
func (p *Provider) Execute(toolID string, params map[string]interface{}, appCtx *types.Context) (*types.Result, error) {
	ctx := context.Background()

	switch toolID {
	// Directory operations
	case "explorer.list":
		return p.directory.List(ctx, params, appCtx)
	case "explorer.refresh":
		return p.directory.Refresh(ctx, params, appCtx)
	case "explorer.exists":
		return p.directory.Exists(ctx, params, appCtx)

	// Search operations
	case "explorer.search":
		return p.search.Search(ctx, params, appCtx)
	case "explorer.glob":
		return p.search.Glob(ctx, params, appCtx)
	case "explorer.recent":
		return p.search.Recent(ctx, params, appCtx)

	// Scan operations
	case "explorer.scan.start":
		return p.scan.Start(ctx, params, appCtx)
	case "explorer.scan.status":
		return p.scan.Status(ctx, params, appCtx)
	case "explorer.scan.cancel":
		return p.scan.Cancel(ctx, params, appCtx)
	case "explorer.index.ready":
		return p.scan.IndexReady(ctx, params, appCtx)

	// Metadata operations
	case "explorer.stat":
		return p.metadata.Stat(ctx, params, appCtx)
	case "explorer.mime":
		return p.metadata.Mime(ctx, params, appCtx)
	case "explorer.size.total":
		return p.metadata.TotalSize(ctx, params, appCtx)
	case "explorer.flatten":
		return p.metadata.Flatten(ctx, params, appCtx)

	// Open operation
	case "explorer.open":
		return p.open.Open(ctx, params, appCtx)

	default:
		return Failure(fmt.Sprintf("unknown tool: %s", toolID))
	}
}

// pathParam extracts and normalizes the required "path" parameter.
func pathParam(params map[string]interface{}) (string, bool) {
	path, ok := params["path"].(string)
	if !ok || path == "" {
		return "", false
	}
	return path, true
}
