// Package explorer implements the filesystem index and search engine: the
// entry model, single-directory listing, the background index builder, the
// query engine over the accumulated index, the listing cache, and the
// default-application opener.
//
// Concurrency model: one goroutine per active scan owns all writes to that
// scan's index; search and listing run on request goroutines and take read
// locks only. The listing cache is guarded by its own mutex and no code path
// holds two locks at once.
package explorer
