package server

import "context"

// Server defines the lifecycle contract for transport servers managed by
// this package.
type Server interface {
	// Run serves requests until ctx is cancelled, then shuts down
	// gracefully. It returns early if the listener cannot be opened.
	Run(ctx context.Context) error
}
