// Package explorer exposes the filesystem index and search engine as a
// tool-based provider.
//
// Operations are grouped by concern:
//   - DirectoryOps: listing through the cache, refresh, existence checks
//   - SearchOps: index search, glob matching, recent files
//   - ScanOps: background scan lifecycle and index readiness
//   - MetadataOps: stat, MIME detection, directory size, flatten
//   - OpenOps: OS default-application dispatch
//
// All tools take map parameters and return types.Result, so the same surface
// serves the REST execute endpoint and the WebSocket stream.
package explorer
