package http

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/lensfs/lens/backend/internal/explorer"
	"github.com/lensfs/lens/backend/internal/infrastructure/monitoring"
	"github.com/lensfs/lens/backend/internal/service"
	"github.com/lensfs/lens/backend/internal/shared/paths"
	"github.com/lensfs/lens/backend/internal/shared/types"
)

// Handlers contains all HTTP handlers
type Handlers struct {
	root     string
	cache    *explorer.Cache
	scanner  *explorer.Scanner
	engine   *explorer.Engine
	opener   *explorer.Opener
	registry *service.Registry
	metrics  *monitoring.Metrics
}

// NewHandlers creates a new handler set
func NewHandlers(
	root string,
	cache *explorer.Cache,
	scanner *explorer.Scanner,
	engine *explorer.Engine,
	opener *explorer.Opener,
	registry *service.Registry,
	metrics *monitoring.Metrics,
) *Handlers {
	return &Handlers{
		root:     root,
		cache:    cache,
		scanner:  scanner,
		engine:   engine,
		opener:   opener,
		registry: registry,
		metrics:  metrics,
	}
}

// Root handles health check
func (h *Handlers) Root(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "online",
		"service": "Lens Explorer Engine",
		"version": "0.3.0",
	})
}

// Health handles detailed health check. While the initial root scan is still
// populating an empty index the reported status is "initializing".
func (h *Handlers) Health(c *gin.Context) {
	status := "healthy"
	index := gin.H{"ready": false, "entries": 0}
	if scan, ok := h.scanner.ForRoot(h.root); ok {
		n := scan.Index.Len()
		index = gin.H{
			"ready":   n > 0,
			"entries": n,
			"state":   string(scan.State()),
			"scan_id": scan.ID,
		}
		if n == 0 && scan.State() == explorer.ScanRunning {
			status = "initializing"
		}
	} else {
		status = "initializing"
	}

	c.JSON(http.StatusOK, gin.H{
		"status":           status,
		"root":             h.root,
		"index":            index,
		"cache":            h.cache.Stats(),
		"service_registry": h.registry.Stats(),
	})
}

// ListDirectory returns the ordered direct children of a directory.
func (h *Handlers) ListDirectory(c *gin.Context) {
	path, err := paths.RequireAbsolute(c.Query("path"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	entries, err := h.cache.Get(path)
	if err != nil {
		c.JSON(listErrorStatus(err), gin.H{"error": err.Error(), "path": path})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"path":    path,
		"entries": entries,
		"count":   len(entries),
	})
}

// RefreshListing invalidates cached listings.
func (h *Handlers) RefreshListing(c *gin.Context) {
	// An empty or absent body clears everything.
	var req types.RefreshRequest
	_ = c.ShouldBindJSON(&req)
	if req.Path == "" {
		h.cache.InvalidateAll()
		c.JSON(http.StatusOK, gin.H{"refreshed": true, "scope": "all"})
		return
	}
	path, err := paths.RequireAbsolute(req.Path)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	h.cache.Invalidate(path)
	c.JSON(http.StatusOK, gin.H{"refreshed": true, "path": path})
}

// SearchFiles answers a name/extension query over the current index snapshot.
// The caller's request_id is echoed so stale responses can be discarded when
// queries supersede each other ("latest request wins" is a client concern).
// The configured root is indexed at startup; a root that has never been
// scanned yields no matches until the caller starts one via POST /fs/scan.
func (h *Handlers) SearchFiles(c *gin.Context) {
	q := explorer.Query{
		Name:      c.Query("name"),
		Extension: c.Query("extension"),
	}
	if limitStr := c.Query("limit"); limitStr != "" {
		if limit, err := strconv.Atoi(limitStr); err == nil && limit > 0 {
			q.Limit = limit
		}
	}
	root := h.root
	if r := c.Query("root"); r != "" {
		root = paths.Normalize(r)
	}

	start := time.Now()
	matches := h.engine.Search(root, q)
	h.metrics.RecordSearch(time.Since(start), len(matches))

	resp := gin.H{
		"entries": matches,
		"count":   len(matches),
		"root":    root,
	}
	if reqID := c.Query("request_id"); reqID != "" {
		resp["request_id"] = reqID
	}
	c.JSON(http.StatusOK, resp)
}

// OpenFile dispatches a path to the OS default handler.
func (h *Handlers) OpenFile(c *gin.Context) {
	var req types.OpenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	path, err := paths.RequireAbsolute(req.Path)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.opener.Open(c.Request.Context(), path); err != nil {
		c.JSON(openErrorStatus(err), gin.H{"error": err.Error(), "path": path})
		return
	}
	c.JSON(http.StatusOK, gin.H{"opened": true, "path": path})
}

// StartScan starts or attaches to a background index scan.
func (h *Handlers) StartScan(c *gin.Context) {
	var req types.ScanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		req = types.ScanRequest{}
	}
	root := h.root
	if req.Root != "" {
		abs, err := paths.RequireAbsolute(req.Root)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		root = abs
	}

	scan := h.scanner.Start(root, req.Refresh)
	c.JSON(http.StatusAccepted, scanJSON(scan))
}

// GetScan reports a scan's state, progress, and warnings.
func (h *Handlers) GetScan(c *gin.Context) {
	scan, ok := h.scanner.Get(c.Param("id"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": explorer.ErrScanNotFound.Error()})
		return
	}
	c.JSON(http.StatusOK, scanJSON(scan))
}

// CancelScan cooperatively cancels a running scan.
func (h *Handlers) CancelScan(c *gin.Context) {
	scan, ok := h.scanner.Get(c.Param("id"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": explorer.ErrScanNotFound.Error()})
		return
	}
	scan.Cancel()
	c.JSON(http.StatusOK, gin.H{"cancelled": true, "scan_id": scan.ID})
}

// ListServices lists all registered services
func (h *Handlers) ListServices(c *gin.Context) {
	var category *types.Category
	if categoryStr := c.Query("category"); categoryStr != "" {
		cat := types.Category(categoryStr)
		category = &cat
	}
	services := h.registry.List(category)
	c.JSON(http.StatusOK, gin.H{"services": services, "count": len(services)})
}

// ExecuteService runs a provider tool
func (h *Handlers) ExecuteService(c *gin.Context) {
	var req types.ExecuteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx := &types.Context{RequestID: req.RequestID}
	timer := monitoring.NewTimer(h.metrics, "explorer", req.ToolID)
	result, err := h.registry.Execute(req.ToolID, req.Params, ctx)
	if err != nil {
		timer.Stop("error")
		h.metrics.RecordToolError("explorer", req.ToolID, "execute")
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if result.Success {
		timer.Stop("success")
	} else {
		timer.Stop("failure")
	}
	c.JSON(http.StatusOK, result)
}

// MetricsJSON returns current counters for dashboards that do not scrape
// Prometheus.
func (h *Handlers) MetricsJSON(c *gin.Context) {
	snap := h.metrics.Snapshot()
	avgMs := 0.0
	if snap.RequestCount > 0 {
		avgMs = snap.TotalDuration / float64(snap.RequestCount) * 1000
	}
	c.JSON(http.StatusOK, gin.H{
		"total_requests":  snap.TotalRequests,
		"total_errors":    snap.TotalErrors,
		"total_searches":  snap.TotalSearches,
		"index_entries":   snap.IndexEntries,
		"active_scans":    snap.ActiveScans,
		"avg_duration_ms": avgMs,
		"uptime_seconds":  h.metrics.UptimeSeconds(),
	})
}

func scanJSON(scan *explorer.Scan) gin.H {
	out := gin.H{
		"scan_id":      scan.ID,
		"root":         scan.Root,
		"state":        string(scan.State()),
		"entries":      scan.Index.Len(),
		"visited_dirs": scan.VisitedDirs(),
		"warnings":     scan.Warnings(),
	}
	if err := scan.Err(); err != nil {
		out["error"] = err.Error()
	}
	return out
}

// listErrorStatus maps listing errors to HTTP status codes.
func listErrorStatus(err error) int {
	switch {
	case errors.Is(err, explorer.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, explorer.ErrNotADirectory):
		return http.StatusBadRequest
	case errors.Is(err, explorer.ErrPermissionDenied):
		return http.StatusForbidden
	default:
		return http.StatusInternalServerError
	}
}

// openErrorStatus maps opener errors to HTTP status codes.
func openErrorStatus(err error) int {
	switch {
	case errors.Is(err, explorer.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, explorer.ErrNoHandler):
		return http.StatusUnprocessableEntity
	case errors.Is(err, explorer.ErrPermissionDenied):
		return http.StatusForbidden
	default:
		return http.StatusInternalServerError
	}
}
