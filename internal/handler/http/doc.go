// Package http implements the HTTP transport of the BullBear development
// auth server.
//
// It exposes route wiring, request handlers, and middleware. Request tracing,
// access logging and bearer-token checks are handled in this package before
// requests are delegated to an [adapter.AuthBackend].
package http
