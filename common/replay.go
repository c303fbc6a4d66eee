package common

import (
	"context"
	"time"
)

// ReplayChecker reports whether id was already presented before it expired.
// The first call for an id records it until expiresAt and returns false.
type ReplayChecker interface {
	Seen(ctx context.Context, id string, expiresAt time.Time) bool
}
