// Package http provides the REST boundary for the engine: directory listing,
// index search with request-id echo, scan lifecycle, open dispatch, and the
// provider execute surface.
package http
