package explorer

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/lensfs/lens/backend/internal/infrastructure/logging"
)

// ScanState is the lifecycle state of one scan.
type ScanState string

const (
	ScanRunning   ScanState = "running"
	ScanCompleted ScanState = "completed"
	ScanCancelled ScanState = "cancelled"
	// ScanFailed means the root itself was unreadable; this is the only
	// state that leaves an empty, unusable snapshot.
	ScanFailed ScanState = "failed"
)

// Scan is the handle for one background index build. The snapshot behind
// Index stays valid in every terminal state except Failed.
type Scan struct {
	ID    string
	Root  string
	Index *Index

	cancel context.CancelFunc
	done   chan struct{}

	mu          sync.Mutex
	state       ScanState
	warnings    []Warning
	visitedDirs int
	failure     error
}

// State returns the scan's current lifecycle state.
func (s *Scan) State() ScanState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Warnings returns a copy of the non-fatal conditions recorded so far.
func (s *Scan) Warnings() []Warning {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Warning, len(s.warnings))
	copy(out, s.warnings)
	return out
}

// VisitedDirs reports how many directories have been fully enumerated.
func (s *Scan) VisitedDirs() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.visitedDirs
}

// Err returns the root failure when the scan state is Failed.
func (s *Scan) Err() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.failure
}

// Done is closed when the scan reaches a terminal state.
func (s *Scan) Done() <-chan struct{} {
	return s.done
}

// Cancel requests cooperative cancellation. The builder notices between
// directory visits, never mid-enumeration, so the snapshot is left exactly as
// populated so far.
func (s *Scan) Cancel() {
	s.cancel()
}

func (s *Scan) warn(kind WarningKind, path string, err error) {
	w := Warning{Kind: kind, Path: path}
	if err != nil {
		w.Err = err.Error()
	}
	s.mu.Lock()
	s.warnings = append(s.warnings, w)
	s.mu.Unlock()
}

// Scanner builds indexes in the background, one active scan per root.
type Scanner struct {
	logger   *logging.Logger
	skipSubs []string

	mu    sync.Mutex
	scans map[string]*Scan // keyed by cleaned root; latest scan per root
	byID  map[string]*Scan
}

// NewScanner creates a scanner. skipSubstrings prunes any directory whose
// path contains one of the given fragments (cloud-sync and system folders
// that are expensive and useless to index).
func NewScanner(logger *logging.Logger, skipSubstrings []string) *Scanner {
	return &Scanner{
		logger:   logger,
		skipSubs: skipSubstrings,
		scans:    make(map[string]*Scan),
		byID:     make(map[string]*Scan),
	}
}

// Start begins a breadth-first scan of root and returns immediately with a
// handle. If a scan for the same root is already running, that scan's handle
// is returned instead of duplicating work. A finished scan for the root is
// replaced only when refresh is true; otherwise its (complete or partial)
// handle is returned as-is.
func (s *Scanner) Start(root string, refresh bool) *Scan {
	root = filepath.Clean(root)

	s.mu.Lock()
	defer s.mu.Unlock()
	if existing, ok := s.scans[root]; ok {
		if existing.State() == ScanRunning || !refresh {
			return existing
		}
		existing.Cancel()
	}

	ctx, cancel := context.WithCancel(context.Background())
	scan := &Scan{
		ID:     uuid.NewString(),
		Root:   root,
		Index:  NewIndex(),
		cancel: cancel,
		done:   make(chan struct{}),
		state:  ScanRunning,
	}
	s.scans[root] = scan
	s.byID[scan.ID] = scan

	go s.run(ctx, scan)
	return scan
}

// Get returns a scan handle by ID.
func (s *Scanner) Get(id string) (*Scan, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	scan, ok := s.byID[id]
	return scan, ok
}

// ForRoot returns the latest scan for root, if any.
func (s *Scanner) ForRoot(root string) (*Scan, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	scan, ok := s.scans[filepath.Clean(root)]
	return scan, ok
}

// Shutdown cancels every running scan and waits for them to stop.
func (s *Scanner) Shutdown() {
	s.mu.Lock()
	running := make([]*Scan, 0, len(s.byID))
	for _, scan := range s.byID {
		running = append(running, scan)
	}
	s.mu.Unlock()

	for _, scan := range running {
		scan.Cancel()
	}
	for _, scan := range running {
		<-scan.Done()
	}
}

// run performs the traversal. Breadth-first so shallow entries reach the
// search engine before deep ones.
func (s *Scanner) run(ctx context.Context, scan *Scan) {
	defer close(scan.done)

	rootInfo, err := os.Stat(scan.Root)
	if err != nil {
		err = mapListError(scan.Root, err)
	} else if !rootInfo.IsDir() {
		err = fmt.Errorf("%s: %w", scan.Root, ErrNotADirectory)
	}
	if err != nil {
		s.logger.Warn("scan root unreadable",
			zap.String("root", scan.Root),
			zap.Error(err),
		)
		scan.mu.Lock()
		scan.state = ScanFailed
		scan.failure = err
		scan.mu.Unlock()
		return
	}

	visited := make(map[string]bool)
	queue := []string{scan.Root}
	if canon, err := filepath.EvalSymlinks(scan.Root); err == nil {
		visited[canon] = true
	}

	for len(queue) > 0 {
		// Cancellation is checked between directory visits only.
		select {
		case <-ctx.Done():
			scan.mu.Lock()
			scan.state = ScanCancelled
			scan.mu.Unlock()
			s.logger.Info("scan cancelled",
				zap.String("root", scan.Root),
				zap.Int("dirs", scan.VisitedDirs()),
			)
			return
		default:
		}

		dir := queue[0]
		queue = queue[1:]

		dirents, err := os.ReadDir(dir)
		if err != nil {
			if dir == scan.Root {
				scan.mu.Lock()
				scan.state = ScanFailed
				scan.failure = mapListError(dir, err)
				scan.mu.Unlock()
				return
			}
			scan.warn(WarnSubtreeInaccessible, dir, err)
			continue
		}

		batch := make([]Entry, 0, len(dirents))
		for _, d := range dirents {
			child := filepath.Join(dir, d.Name())
			info, err := d.Info()
			if err != nil {
				// Vanished between enumeration and stat.
				continue
			}
			entry := NewEntry(child, info)
			batch = append(batch, entry)

			if !entry.IsDir || s.skip(child) {
				continue
			}
			canon, err := filepath.EvalSymlinks(child)
			if err != nil {
				scan.warn(WarnSubtreeInaccessible, child, err)
				continue
			}
			if visited[canon] {
				scan.warn(WarnCycleSkipped, child, nil)
				continue
			}
			visited[canon] = true
			queue = append(queue, child)
		}
		scan.Index.Insert(batch...)

		scan.mu.Lock()
		scan.visitedDirs++
		scan.mu.Unlock()
	}

	scan.mu.Lock()
	scan.state = ScanCompleted
	scan.mu.Unlock()
	s.logger.Info("scan completed",
		zap.String("root", scan.Root),
		zap.Int("dirs", scan.VisitedDirs()),
		zap.Int("entries", scan.Index.Len()),
		zap.Int("warnings", len(scan.Warnings())),
	)
}

func (s *Scanner) skip(path string) bool {
	for _, sub := range s.skipSubs {
		if sub != "" && strings.Contains(path, sub) {
			return true
		}
	}
	return false
}
