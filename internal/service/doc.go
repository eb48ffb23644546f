// Package service provides the provider registry for the engine's tool
// surface.
//
// The registry maintains a catalog of service providers and routes tool
// execution by the "<service>.<operation>" ID convention. Registration is
// thread-safe; listing supports category filtering.
package service
