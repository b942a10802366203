package session

import "context"

// Store keeps per-browser game state keyed by an opaque id. Delete
// exists so terminal sessions are torn down rather than left behind.
type Store[T any] interface {
	Get(ctx context.Context, id string) (T, bool, error)
	Put(ctx context.Context, id string, v T) error
	Delete(ctx context.Context, id string) error
	NewID() string
}
