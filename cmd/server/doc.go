// Package main is the entry point for the Lens explorer engine server.
//
// The server indexes a filesystem root in the background and answers
// directory-listing, search, and open requests from a thin file-manager UI.
//
// The server provides:
//   - REST API for listing, search, open, and scan lifecycle
//   - WebSocket streaming for scan progress and superseding searches
//   - Service provider registry exposing the same operations as tools
//   - Prometheus metrics, rate limiting, CORS
//
// Configuration:
//   - Environment variables (12-factor)
//   - CLI flags (override env vars)
//
// Usage:
//
//	# Index the default root
//	./server
//
//	# Explicit port and root
//	./server -port 8400 -root /data
package main
