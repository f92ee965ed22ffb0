// Package server runs the development auth server: it starts the HTTP
// listener and shuts it down gracefully when its context is cancelled.
package server
