package explorer

import (
	"errors"
	"fmt"
	"io/fs"
	"syscall"
)

// Terminal errors for a listing call. Per-child stat failures are absorbed by
// the lister; only failures on the requested path itself surface as one of
// these.
var (
	ErrNotFound         = errors.New("path does not exist")
	ErrNotADirectory    = errors.New("path is not a directory")
	ErrPermissionDenied = errors.New("permission denied")
)

// Opener errors.
var (
	ErrNoHandler = errors.New("no application available to open file")
)

// Scanner errors.
var (
	ErrScanNotFound = errors.New("scan not found")
)

// mapListError translates an OS error from reading path into the listing
// error taxonomy.
func mapListError(path string, err error) error {
	switch {
	case errors.Is(err, fs.ErrNotExist):
		return fmt.Errorf("%s: %w", path, ErrNotFound)
	case errors.Is(err, fs.ErrPermission):
		return fmt.Errorf("%s: %w", path, ErrPermissionDenied)
	case errors.Is(err, syscall.ENOTDIR):
		return fmt.Errorf("%s: %w", path, ErrNotADirectory)
	default:
		return fmt.Errorf("%s: %w", path, err)
	}
}

// WarningKind classifies a non-fatal condition hit during a scan.
type WarningKind string

const (
	WarnCycleSkipped        WarningKind = "cycle_skipped"
	WarnSubtreeInaccessible WarningKind = "subtree_inaccessible"
)

// Warning records a subtree that stopped contributing entries. Warnings never
// abort a scan.
type Warning struct {
	Kind WarningKind `json:"kind"`
	Path string      `json:"path"`
	Err  string      `json:"error,omitempty"`
}
