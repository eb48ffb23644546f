package explorer

import (
	"context"
	"errors"
	"os/exec"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lensfs/lens/backend/internal/infrastructure/logging"
)

func TestOpenMissingFile(t *testing.T) {
	opener := NewOpener(logging.NewNop())

	err := opener.Open(context.Background(), filepath.Join(t.TempDir(), "missing.txt"))
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMapLaunchErrorMissingLauncher(t *testing.T) {
	opener := NewOpener(logging.NewNop())

	err := opener.mapLaunchError("/tmp/f.txt", exec.ErrNotFound)
	assert.ErrorIs(t, err, ErrNoHandler)
}

func TestMapLaunchErrorExitCodes(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("uses sh to synthesize exit codes")
	}
	opener := NewOpener(logging.NewNop())

	exitWith := func(code string) error {
		err := exec.Command("sh", "-c", "exit "+code).Run()
		require.Error(t, err)
		return err
	}

	assert.ErrorIs(t, opener.mapLaunchError("/tmp/f.txt", exitWith("2")), ErrNotFound)
	assert.ErrorIs(t, opener.mapLaunchError("/tmp/f.txt", exitWith("3")), ErrNoHandler)
	assert.ErrorIs(t, opener.mapLaunchError("/tmp/f.txt", exitWith("4")), ErrNoHandler)
}

func TestMapLaunchErrorUnknown(t *testing.T) {
	opener := NewOpener(logging.NewNop())

	err := opener.mapLaunchError("/tmp/f.txt", errors.New("boom"))
	assert.ErrorIs(t, err, ErrNoHandler)
}

func TestLaunchCommandPerPlatform(t *testing.T) {
	cmd := launchCommand(context.Background(), "/tmp/f.txt")

	switch runtime.GOOS {
	case "darwin":
		assert.Contains(t, cmd.Args[0], "open")
	case "windows":
		assert.Contains(t, cmd.Args[0], "cmd")
	default:
		assert.Contains(t, cmd.Args[0], "xdg-open")
	}
	assert.Equal(t, "/tmp/f.txt", cmd.Args[len(cmd.Args)-1])
}
