// Package session holds the one server-side storage slot the login flow
// writes: a JSON-serialized identity record keyed by session id. The slot is
// last-write-wins; concurrent logins from two clients race and the later
// write survives, which is accepted behavior.
package session

import (
	"context"
	"time"
)

// Store is the narrow contract for the session slot. Get returns
// (nil, nil) when the slot is absent; implementations treat an unreadable
// (corrupted) slot the same way and clear it rather than surface an error.
type Store interface {
	// Put serializes v as JSON and stores it under sid, overwriting any
	// prior value.
	Put(ctx context.Context, sid string, v any, ttl time.Duration) error
	// Get deserializes the slot into dest. Returns false when the slot is
	// absent, expired, or unreadable.
	Get(ctx context.Context, sid string, dest any) (bool, error)
	// Clear removes the slot. Clearing an absent slot is not an error.
	Clear(ctx context.Context, sid string) error
}
