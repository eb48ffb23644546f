package explorer

import (
	"context"
	"errors"
	"fmt"

	core "github.com/lensfs/lens/backend/internal/explorer"
	"github.com/lensfs/lens/backend/internal/shared/paths"
	"github.com/lensfs/lens/backend/internal/shared/types"
)

// OpenOps dispatches entries to the OS default application
type OpenOps struct {
	*ExplorerOps
}

// GetTools returns open operation tool definitions
func (o *OpenOps) GetTools() []types.Tool {
	return []types.Tool{
		{
			ID:          "explorer.open",
			Name:        "Open Entry",
			Description: "Open a file or directory with the OS default application",
			Parameters: []types.Parameter{
				{Name: "path", Type: "string", Description: "Absolute path", Required: true},
			},
			Returns: "boolean",
		},
	}
}

// Open dispatches path to the host OS. Errors surface verbatim; nothing is
// retried.
func (o *OpenOps) Open(ctx context.Context, params map[string]interface{}, appCtx *types.Context) (*types.Result, error) {
	path, ok := pathParam(params)
	if !ok {
		return Failure("path parameter required")
	}
	abs, err := paths.RequireAbsolute(path)
	if err != nil {
		return Failure(err.Error())
	}

	if err := o.Opener.Open(ctx, abs); err != nil {
		return Failure(openErrorMessage(abs, err))
	}
	return Success(map[string]interface{}{"opened": true, "path": abs})
}

func openErrorMessage(path string, err error) string {
	switch {
	case errors.Is(err, core.ErrNotFound):
		return fmt.Sprintf("not found: %s", path)
	case errors.Is(err, core.ErrNoHandler):
		return fmt.Sprintf("no handler available: %s", path)
	case errors.Is(err, core.ErrPermissionDenied):
		return fmt.Sprintf("permission denied: %s", path)
	default:
		return fmt.Sprintf("open failed: %v", err)
	}
}
