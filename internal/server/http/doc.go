// Package httpserver exposes the log tail, listing, follow, server
// registry, and aggregation services over HTTP with CORS and graceful
// shutdown.
package httpserver
