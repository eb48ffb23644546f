// Package logging provides structured logging using uber/zap.
//
// Two modes: production emits JSON for machine parsing, development emits
// colored console output. All engine components log through this wrapper so
// scan progress, skipped entries, and dispatch failures carry structured
// fields.
package logging
