package explorer

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	core "github.com/lensfs/lens/backend/internal/explorer"
	"github.com/lensfs/lens/backend/internal/infrastructure/logging"
	"github.com/lensfs/lens/backend/internal/infrastructure/monitoring"
	"github.com/lensfs/lens/backend/internal/shared/types"
)

// Prometheus collectors register globally, so the test binary shares one set.
var testMetrics = monitoring.NewMetrics()

func newTestProvider(t *testing.T, root string) (*Provider, *ExplorerOps) {
	t.Helper()
	logger := logging.NewNop()
	lister := core.NewLister(logger)
	scanner := core.NewScanner(logger, nil)
	t.Cleanup(scanner.Shutdown)

	ops := &ExplorerOps{
		Root:    root,
		Cache:   core.NewCache(lister, 16, time.Minute, testMetrics),
		Scanner: scanner,
		Engine:  core.NewEngine(scanner),
		Opener:  core.NewOpener(logger),
		Metrics: testMetrics,
	}
	return NewProvider(ops), ops
}

// seedRoot builds a root with one subdirectory and a few files.
func seedRoot(t *testing.T) string {
	t.Helper()
	root := t.TempDir()
	require.NoError(t, os.Mkdir(filepath.Join(root, "docs"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(root, "docs", "Report.pdf"), []byte("%PDF-1.4"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(root, "docs", "notes.txt"), []byte("hello notes"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(root, "readme.md"), []byte("# readme"), 0o644))
	return root
}

// scanRoot runs a scan to completion so index-backed tools have data.
func scanRoot(t *testing.T, ops *ExplorerOps, root string) {
	t.Helper()
	scan := ops.Scanner.Start(root, false)
	select {
	case <-scan.Done():
	case <-time.After(10 * time.Second):
		t.Fatal("scan did not finish")
	}
	require.Equal(t, core.ScanCompleted, scan.State())
}

func TestProviderDefinition(t *testing.T) {
	provider, _ := newTestProvider(t, t.TempDir())

	def := provider.Definition()

	assert.Equal(t, "explorer", def.ID)
	assert.Equal(t, types.CategoryFilesystem, def.Category)
	assert.Len(t, def.Tools, 15)

	toolIDs := make(map[string]bool)
	for _, tool := range def.Tools {
		toolIDs[tool.ID] = true
		assert.NotEmpty(t, tool.Name)
		assert.NotEmpty(t, tool.Description)
	}
	for _, id := range []string{
		"explorer.list", "explorer.refresh", "explorer.exists",
		"explorer.search", "explorer.glob", "explorer.recent",
		"explorer.scan.start", "explorer.scan.status", "explorer.scan.cancel", "explorer.index.ready",
		"explorer.stat", "explorer.mime", "explorer.size.total", "explorer.flatten",
		"explorer.open",
	} {
		assert.True(t, toolIDs[id], "missing tool %s", id)
	}
}

func TestListTool(t *testing.T) {
	root := seedRoot(t)
	provider, _ := newTestProvider(t, root)

	result, err := provider.Execute("explorer.list", map[string]interface{}{"path": root}, nil)
	require.NoError(t, err)
	require.True(t, result.Success)

	assert.Equal(t, 2, result.Data["count"])
	entries := result.Data["entries"].([]map[string]interface{})
	require.Len(t, entries, 2)
	assert.Equal(t, "docs", entries[0]["name"], "directories list first")
	assert.Equal(t, true, entries[0]["is_dir"])
	assert.Equal(t, "readme.md", entries[1]["name"])
	assert.Equal(t, "md", entries[1]["extension"])
}

func TestListToolErrors(t *testing.T) {
	provider, _ := newTestProvider(t, t.TempDir())

	result, err := provider.Execute("explorer.list", map[string]interface{}{}, nil)
	require.NoError(t, err)
	assert.False(t, result.Success)

	result, err = provider.Execute("explorer.list", map[string]interface{}{"path": "relative/docs"}, nil)
	require.NoError(t, err)
	assert.False(t, result.Success)

	missing := filepath.Join(t.TempDir(), "missing")
	result, err = provider.Execute("explorer.list", map[string]interface{}{"path": missing}, nil)
	require.NoError(t, err)
	require.False(t, result.Success)
	assert.Contains(t, *result.Error, "not found")
}

func TestExistsTool(t *testing.T) {
	root := seedRoot(t)
	provider, _ := newTestProvider(t, root)

	result, err := provider.Execute("explorer.exists", map[string]interface{}{"path": filepath.Join(root, "docs")}, nil)
	require.NoError(t, err)
	require.True(t, result.Success)
	assert.Equal(t, true, result.Data["exists"])
	assert.Equal(t, true, result.Data["is_dir"])

	result, err = provider.Execute("explorer.exists", map[string]interface{}{"path": filepath.Join(root, "nope")}, nil)
	require.NoError(t, err)
	require.True(t, result.Success)
	assert.Equal(t, false, result.Data["exists"])
}

func TestRefreshTool(t *testing.T) {
	root := seedRoot(t)
	provider, ops := newTestProvider(t, root)

	_, err := ops.Cache.Get(root)
	require.NoError(t, err)

	require.NoError(t, os.WriteFile(filepath.Join(root, "new.txt"), nil, 0o644))

	result, err := provider.Execute("explorer.refresh", map[string]interface{}{"path": root}, nil)
	require.NoError(t, err)
	require.True(t, result.Success)
	assert.Equal(t, true, result.Data["refreshed"])

	entries, err := ops.Cache.Get(root)
	require.NoError(t, err)
	assert.Len(t, entries, 3)

	result, err = provider.Execute("explorer.refresh", map[string]interface{}{}, nil)
	require.NoError(t, err)
	require.True(t, result.Success)
	assert.Equal(t, "all", result.Data["scope"])
}

func TestSearchToolEchoesRequestID(t *testing.T) {
	root := seedRoot(t)
	provider, ops := newTestProvider(t, root)
	scanRoot(t, ops, root)

	reqID := "req-42"
	appCtx := &types.Context{RequestID: &reqID}

	result, err := provider.Execute("explorer.search", map[string]interface{}{
		"name": "REPORT",
		"root": root,
	}, appCtx)
	require.NoError(t, err)
	require.True(t, result.Success)

	assert.Equal(t, "req-42", result.Data["request_id"])
	assert.Equal(t, 1, result.Data["count"])
	entries := result.Data["entries"].([]map[string]interface{})
	assert.Equal(t, "Report.pdf", entries[0]["name"])
}

func TestSearchToolExtensionFilter(t *testing.T) {
	root := seedRoot(t)
	provider, ops := newTestProvider(t, root)
	scanRoot(t, ops, root)

	result, err := provider.Execute("explorer.search", map[string]interface{}{
		"extension": ".TXT",
		"root":      root,
	}, nil)
	require.NoError(t, err)
	require.True(t, result.Success)

	assert.Equal(t, 1, result.Data["count"])
	_, echoed := result.Data["request_id"]
	assert.False(t, echoed, "no request id to echo without a context")
}

func TestSearchToolUnscannedRoot(t *testing.T) {
	provider, _ := newTestProvider(t, t.TempDir())

	result, err := provider.Execute("explorer.search", map[string]interface{}{"name": "x"}, nil)
	require.NoError(t, err)
	require.True(t, result.Success)
	assert.Equal(t, 0, result.Data["count"])
}

func TestScanLifecycleTools(t *testing.T) {
	root := seedRoot(t)
	provider, ops := newTestProvider(t, root)

	result, err := provider.Execute("explorer.scan.start", map[string]interface{}{"root": root}, nil)
	require.NoError(t, err)
	require.True(t, result.Success)
	scanID := result.Data["scan_id"].(string)
	require.NotEmpty(t, scanID)

	scan, ok := ops.Scanner.Get(scanID)
	require.True(t, ok)
	<-scan.Done()

	result, err = provider.Execute("explorer.scan.status", map[string]interface{}{"scan_id": scanID}, nil)
	require.NoError(t, err)
	require.True(t, result.Success)
	assert.Equal(t, "completed", result.Data["state"])
	assert.Equal(t, 4, result.Data["entries"])
	assert.Equal(t, 2, result.Data["visited_dirs"])

	result, err = provider.Execute("explorer.index.ready", map[string]interface{}{"root": root}, nil)
	require.NoError(t, err)
	require.True(t, result.Success)
	assert.Equal(t, true, result.Data["ready"])

	result, err = provider.Execute("explorer.scan.cancel", map[string]interface{}{"scan_id": "no-such-scan"}, nil)
	require.NoError(t, err)
	assert.False(t, result.Success)
}

func TestIndexReadyToolUnscanned(t *testing.T) {
	provider, _ := newTestProvider(t, t.TempDir())

	result, err := provider.Execute("explorer.index.ready", map[string]interface{}{}, nil)
	require.NoError(t, err)
	require.True(t, result.Success)
	assert.Equal(t, false, result.Data["ready"])
}

func TestStatTool(t *testing.T) {
	root := seedRoot(t)
	provider, _ := newTestProvider(t, root)

	result, err := provider.Execute("explorer.stat", map[string]interface{}{
		"path": filepath.Join(root, "docs", "Report.pdf"),
	}, nil)
	require.NoError(t, err)
	require.True(t, result.Success)

	assert.Equal(t, "Report.pdf", result.Data["name"])
	assert.Equal(t, "pdf", result.Data["extension"])
	assert.Equal(t, false, result.Data["is_dir"])
}

func TestMimeTool(t *testing.T) {
	root := seedRoot(t)
	provider, _ := newTestProvider(t, root)

	result, err := provider.Execute("explorer.mime", map[string]interface{}{
		"path": filepath.Join(root, "docs", "notes.txt"),
	}, nil)
	require.NoError(t, err)
	require.True(t, result.Success)

	assert.Contains(t, result.Data["mime"], "text/plain")
}

func TestTotalSizeTool(t *testing.T) {
	root := seedRoot(t)
	provider, _ := newTestProvider(t, root)

	result, err := provider.Execute("explorer.size.total", map[string]interface{}{"path": root}, nil)
	require.NoError(t, err)
	require.True(t, result.Success)

	assert.Equal(t, int64(8+11+8), result.Data["bytes"])
	assert.Equal(t, int64(3), result.Data["files"])
}

func TestFlattenTool(t *testing.T) {
	root := seedRoot(t)
	provider, _ := newTestProvider(t, root)

	result, err := provider.Execute("explorer.flatten", map[string]interface{}{"path": root}, nil)
	require.NoError(t, err)
	require.True(t, result.Success)

	assert.Equal(t, 3, result.Data["count"])
	files := result.Data["files"].([]string)
	assert.Contains(t, files, filepath.Join(root, "docs", "notes.txt"))
}

func TestGlobTool(t *testing.T) {
	root := seedRoot(t)
	provider, _ := newTestProvider(t, root)

	result, err := provider.Execute("explorer.glob", map[string]interface{}{
		"path":    root,
		"pattern": "**/*.pdf",
	}, nil)
	require.NoError(t, err)
	require.True(t, result.Success)

	matches := result.Data["matches"].([]string)
	require.Len(t, matches, 1)
	assert.Equal(t, filepath.Join("docs", "Report.pdf"), matches[0])
}

func TestRecentTool(t *testing.T) {
	root := seedRoot(t)
	provider, ops := newTestProvider(t, root)
	scanRoot(t, ops, root)

	result, err := provider.Execute("explorer.recent", map[string]interface{}{"root": root}, nil)
	require.NoError(t, err)
	require.True(t, result.Success)

	assert.Equal(t, 3, result.Data["count"], "all files were just written")
}

func TestRecentToolNewestFirst(t *testing.T) {
	root := seedRoot(t)
	now := time.Now()
	require.NoError(t, os.Chtimes(filepath.Join(root, "docs", "Report.pdf"), now, now.Add(-2*time.Hour)))
	require.NoError(t, os.Chtimes(filepath.Join(root, "docs", "notes.txt"), now, now.Add(-time.Hour)))
	require.NoError(t, os.Chtimes(filepath.Join(root, "readme.md"), now, now))

	provider, ops := newTestProvider(t, root)
	scanRoot(t, ops, root)

	result, err := provider.Execute("explorer.recent", map[string]interface{}{"root": root}, nil)
	require.NoError(t, err)
	require.True(t, result.Success)

	entries := result.Data["entries"].([]map[string]interface{})
	require.Len(t, entries, 3)
	assert.Equal(t, "readme.md", entries[0]["name"])
	assert.Equal(t, "notes.txt", entries[1]["name"])
	assert.Equal(t, "Report.pdf", entries[2]["name"])
}

func TestOpenToolMissing(t *testing.T) {
	provider, _ := newTestProvider(t, t.TempDir())

	result, err := provider.Execute("explorer.open", map[string]interface{}{
		"path": filepath.Join(t.TempDir(), "gone.txt"),
	}, nil)
	require.NoError(t, err)
	require.False(t, result.Success)
	assert.Contains(t, *result.Error, "not found")
}

func TestUnknownTool(t *testing.T) {
	provider, _ := newTestProvider(t, t.TempDir())

	result, err := provider.Execute("explorer.teleport", nil, nil)
	require.NoError(t, err)
	require.False(t, result.Success)
	assert.Contains(t, *result.Error, "unknown tool")
}
