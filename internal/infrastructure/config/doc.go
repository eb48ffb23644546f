// Package config provides 12-factor configuration management for the engine.
//
// Configuration is loaded from environment variables with sensible defaults.
// CLI flags can override environment variables for development flexibility.
//
// Configuration Sections:
//   - Server: HTTP server settings (port, host)
//   - Explorer: scan root, startup scan, skip list
//   - Cache: listing cache bound and TTL
//   - Logging: log level and output format
//   - RateLimit: per-IP rate limiting configuration
//
// Environment Variables:
//   - PORT, HOST
//   - EXPLORER_ROOT, EXPLORER_SCAN_ON_START, EXPLORER_SKIP
//   - CACHE_MAX_ENTRIES, CACHE_TTL
//   - LOG_LEVEL, LOG_DEV
//   - RATE_LIMIT_RPS, RATE_LIMIT_BURST, RATE_LIMIT_ENABLED
package config
