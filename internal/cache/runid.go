package cache

import "github.com/google/uuid"

// RunIDGenerator hands out the id that ties one bondgen invocation's log
// lines to the generations it recorded.
type RunIDGenerator interface {
	NewRunID() string
}

// UUIDv7RunIDs generates time-sortable UUIDv7 run ids.
//
// Thread-safety: stateless and safe for concurrent use.
type UUIDv7RunIDs struct{}

// NewRunID returns a hyphenated UUIDv7. It panics if the random source
// fails.
func (UUIDv7RunIDs) NewRunID() string {
	return uuid.Must(uuid.NewV7()).String()
}
