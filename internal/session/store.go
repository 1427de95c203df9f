// Package session holds the server-side state behind the browser session
// cookie. Only the opaque session id ever leaves the server.
package session

import "context"

// Store maps opaque session ids to logged-in user ids. Implementations must
// be safe for concurrent use and expire entries after the configured TTL.
type Store interface {
	// Create binds userID to a fresh session id and returns the id.
	Create(ctx context.Context, userID uint) (string, error)

	// Get resolves a session id. ok is false for unknown or expired ids.
	Get(ctx context.Context, id string) (userID uint, ok bool, err error)

	// Delete invalidates a session. Deleting an unknown id is not an error.
	Delete(ctx context.Context, id string) error
}
