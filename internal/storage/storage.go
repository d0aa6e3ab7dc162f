// Package storage is the durable key-value boundary behind the client-side
// state stores. Each namespace holds one JSON document; state is read once at
// startup and written back on every mutation.
package storage

import (
	"context"
	"errors"
)

// ErrNotFound is returned when a namespace has no stored state yet.
var ErrNotFound = errors.New("no state stored for namespace")

// Store persists JSON-serializable state under a namespace.
type Store interface {
	Load(ctx context.Context, namespace string, v any) error
	Save(ctx context.Context, namespace string, v any) error
	Delete(ctx context.Context, namespace string) error
}
