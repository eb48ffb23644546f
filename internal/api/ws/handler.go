package ws

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/lensfs/lens/backend/internal/explorer"
	"github.com/lensfs/lens/backend/internal/infrastructure/logging"
	"github.com/lensfs/lens/backend/internal/infrastructure/monitoring"
	"github.com/lensfs/lens/backend/internal/shared/paths"
	"github.com/lensfs/lens/backend/internal/shared/types"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true // Allow all origins in dev
	},
}

// scanPollInterval is how often a watched scan's progress is pushed.
const scanPollInterval = 500 * time.Millisecond

// Handler manages WebSocket connections. Every response echoes the client's
// request_id, which is what lets a search box fire a query per keystroke and
// keep only the newest result regardless of completion order.
type Handler struct {
	root    string
	scanner *explorer.Scanner
	engine  *explorer.Engine
	metrics *monitoring.Metrics
	logger  *logging.Logger
}

// NewHandler creates a new WebSocket handler
func NewHandler(root string, scanner *explorer.Scanner, engine *explorer.Engine, metrics *monitoring.Metrics, logger *logging.Logger) *Handler {
	return &Handler{
		root:    root,
		scanner: scanner,
		engine:  engine,
		metrics: metrics,
		logger:  logger,
	}
}

// HandleConnection handles WebSocket upgrade and messages
func (h *Handler) HandleConnection(c *gin.Context) {
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.logger.Warn("websocket upgrade failed", zap.Error(err))
		return
	}
	defer conn.Close()

	h.metrics.IncWSConnections()
	defer h.metrics.DecWSConnections()

	h.send(conn, types.WSMessage{
		Type:    "system",
		Payload: map[string]interface{}{"message": "connected", "root": h.root},
	})

	for {
		var msg types.WSMessage
		if err := conn.ReadJSON(&msg); err != nil {
			if !websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				h.logger.Debug("websocket read error", zap.Error(err))
			}
			break
		}
		h.metrics.RecordWSMessage("in", msg.Type)

		switch msg.Type {
		case "search":
			h.handleSearch(conn, msg)
		case "watch_scan":
			h.handleWatchScan(conn, msg)
		case "ping":
			h.send(conn, types.WSMessage{Type: "pong", RequestID: msg.RequestID})
		default:
			h.sendError(conn, msg.RequestID, "unknown message type")
		}
	}
}

func (h *Handler) handleSearch(conn *websocket.Conn, msg types.WSMessage) {
	q := explorer.Query{}
	if name, ok := msg.Payload["name"].(string); ok {
		q.Name = name
	}
	if ext, ok := msg.Payload["extension"].(string); ok {
		q.Extension = ext
	}
	if limit, ok := msg.Payload["limit"].(float64); ok && limit > 0 {
		q.Limit = int(limit)
	}
	root := h.root
	if r, ok := msg.Payload["root"].(string); ok && r != "" {
		root = paths.Normalize(r)
	}

	start := time.Now()
	matches := h.engine.Search(root, q)
	h.metrics.RecordSearch(time.Since(start), len(matches))

	h.send(conn, types.WSMessage{
		Type:      "search_result",
		RequestID: msg.RequestID,
		Payload: map[string]interface{}{
			"entries": matches,
			"count":   len(matches),
			"root":    root,
		},
	})
}

// handleWatchScan streams a scan's progress until it reaches a terminal
// state.
func (h *Handler) handleWatchScan(conn *websocket.Conn, msg types.WSMessage) {
	id, _ := msg.Payload["scan_id"].(string)
	scan, ok := h.scanner.Get(id)
	if !ok {
		h.sendError(conn, msg.RequestID, "scan not found")
		return
	}

	ticker := time.NewTicker(scanPollInterval)
	defer ticker.Stop()
	for {
		select {
		case <-scan.Done():
			h.sendProgress(conn, msg.RequestID, scan, true)
			return
		case <-ticker.C:
			h.sendProgress(conn, msg.RequestID, scan, false)
		}
	}
}

func (h *Handler) sendProgress(conn *websocket.Conn, requestID string, scan *explorer.Scan, terminal bool) {
	h.send(conn, types.WSMessage{
		Type:      "scan_progress",
		RequestID: requestID,
		Payload: map[string]interface{}{
			"scan_id":      scan.ID,
			"state":        string(scan.State()),
			"entries":      scan.Index.Len(),
			"visited_dirs": scan.VisitedDirs(),
			"warnings":     len(scan.Warnings()),
			"terminal":     terminal,
		},
	})
}

func (h *Handler) send(conn *websocket.Conn, msg types.WSMessage) {
	h.metrics.RecordWSMessage("out", msg.Type)
	if err := conn.WriteJSON(msg); err != nil {
		h.logger.Debug("websocket write error", zap.Error(err))
	}
}

func (h *Handler) sendError(conn *websocket.Conn, requestID, message string) {
	h.send(conn, types.WSMessage{
		Type:      "error",
		RequestID: requestID,
		Payload:   map[string]interface{}{"message": message},
	})
}
