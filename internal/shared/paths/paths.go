// Package paths provides portable path handling for the engine.
//
// The boundary accepts whatever separator form the client sends; everything
// internal works on cleaned, OS-native absolute paths so the core never
// hard-codes a separator.
package paths

import (
	"fmt"
	"path/filepath"
	"strings"
)

// Normalize converts p to a cleaned OS-native form. Forward and backward
// slashes are both accepted on input; trailing separators are dropped except
// on a volume root.
func Normalize(p string) string {
	p = strings.ReplaceAll(p, "\\", string(filepath.Separator))
	p = strings.ReplaceAll(p, "/", string(filepath.Separator))
	return filepath.Clean(p)
}

// RequireAbsolute normalizes p and rejects relative paths; boundary
// operations address entries by absolute path only.
func RequireAbsolute(p string) (string, error) {
	if strings.TrimSpace(p) == "" {
		return "", fmt.Errorf("path cannot be empty")
	}
	n := Normalize(p)
	if !filepath.IsAbs(n) {
		return "", fmt.Errorf("path must be absolute: %s", p)
	}
	return n, nil
}

// Parent returns the directory containing p, or p itself for a root.
func Parent(p string) string {
	return filepath.Dir(Normalize(p))
}

// IsRoot reports whether p denotes a volume root.
func IsRoot(p string) bool {
	n := Normalize(p)
	return filepath.Dir(n) == n
}

// IsDirectChild reports whether child's parent directory is parent.
func IsDirectChild(parent, child string) bool {
	return Parent(child) == Normalize(parent)
}

// Within reports whether p is parent or lies underneath it.
func Within(parent, p string) bool {
	parent, p = Normalize(parent), Normalize(p)
	if p == parent {
		return true
	}
	rel, err := filepath.Rel(parent, p)
	if err != nil {
		return false
	}
	return rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator))
}
