// Package delivery defines the entrypoint contract for transport adapters.
package delivery

import "context"

// Delivery is implemented by every transport that can serve the application.
type Delivery interface {
	// Serve blocks until the transport stops or the context is cancelled.
	Serve(ctx context.Context) error
}
