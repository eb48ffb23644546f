// Package types provides shared data structures for the engine boundary.
//
// Core Types:
//   - Service: Service provider definition
//   - Tool: Service tool specification
//   - Context: Execution context for tool calls
//   - Result: Standard operation result
//
// Request Types:
//   - ExecuteRequest: provider tool execution
//   - OpenRequest, RefreshRequest, ScanRequest: REST boundary operations
//   - WSMessage: WebSocket communication with request-id echo
package types
