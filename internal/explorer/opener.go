package explorer

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"os/exec"
	"runtime"

	"go.uber.org/zap"

	"github.com/lensfs/lens/backend/internal/infrastructure/logging"
)

// Opener dispatches a path to the OS default application. It is a pure
// side-effecting boundary: no state, no content interpretation, no retries
// (a missing handler or permission failure cannot succeed on retry).
type Opener struct {
	logger *logging.Logger
}

// NewOpener creates a file opener.
func NewOpener(logger *logging.Logger) *Opener {
	return &Opener{logger: logger}
}

// Open asks the host OS to open path with its default handler. Errors are
// ErrNotFound, ErrPermissionDenied, or ErrNoHandler.
func (o *Opener) Open(ctx context.Context, path string) error {
	if _, err := os.Stat(path); err != nil {
		switch {
		case errors.Is(err, fs.ErrNotExist):
			return fmt.Errorf("%s: %w", path, ErrNotFound)
		case errors.Is(err, fs.ErrPermission):
			return fmt.Errorf("%s: %w", path, ErrPermissionDenied)
		default:
			return fmt.Errorf("%s: %w", path, err)
		}
	}

	cmd := launchCommand(ctx, path)
	o.logger.Debug("dispatching to OS handler",
		zap.String("path", path),
		zap.String("launcher", cmd.Path),
	)

	if err := cmd.Run(); err != nil {
		return o.mapLaunchError(path, err)
	}
	return nil
}

// launchCommand builds the platform launcher invocation.
func launchCommand(ctx context.Context, path string) *exec.Cmd {
	switch runtime.GOOS {
	case "darwin":
		return exec.CommandContext(ctx, "open", path)
	case "windows":
		return exec.CommandContext(ctx, "cmd", "/C", "start", "", path)
	default:
		return exec.CommandContext(ctx, "xdg-open", path)
	}
}

func (o *Opener) mapLaunchError(path string, err error) error {
	// Launcher binary itself missing means there is nothing to dispatch to.
	if errors.Is(err, exec.ErrNotFound) {
		return fmt.Errorf("%s: %w", path, ErrNoHandler)
	}

	var exit *exec.ExitError
	if errors.As(err, &exit) {
		// xdg-open: 2 = file not found, 3 = no tool, 4 = action failed.
		switch exit.ExitCode() {
		case 2:
			return fmt.Errorf("%s: %w", path, ErrNotFound)
		case 3:
			return fmt.Errorf("%s: %w", path, ErrNoHandler)
		}
	}
	o.logger.Warn("open dispatch failed",
		zap.String("path", path),
		zap.Error(err),
	)
	return fmt.Errorf("%s: %w", path, ErrNoHandler)
}
