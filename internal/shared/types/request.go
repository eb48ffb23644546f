package types

// ExecuteRequest represents a tool execution request
type ExecuteRequest struct {
	ToolID    string                 `json:"tool_id" binding:"required"`
	Params    map[string]interface{} `json:"params" binding:"required"`
	RequestID *string                `json:"request_id,omitempty"`
}

// OpenRequest asks the host OS to open a path with its default handler
type OpenRequest struct {
	Path string `json:"path" binding:"required"`
}

// RefreshRequest invalidates cached listings; an empty path clears everything
type RefreshRequest struct {
	Path string `json:"path"`
}

// ScanRequest starts or attaches to an index scan
type ScanRequest struct {
	Root    string `json:"root"`
	Refresh bool   `json:"refresh"`
}

// WSMessage represents a WebSocket message. RequestID is echoed back on every
// response so the client can discard results from superseded queries.
type WSMessage struct {
	Type      string                 `json:"type"`
	RequestID string                 `json:"request_id,omitempty"`
	Payload   map[string]interface{} `json:"payload,omitempty"`
}
