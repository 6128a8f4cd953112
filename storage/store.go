// Package storage provides the key/value backends behind the two device
// stores: secure storage for the session blob and general storage for
// favorites.
package storage

import (
	"context"
	"errors"
)

// ErrNotExist is returned by Get when the key has never been written or was deleted.
var ErrNotExist = errors.New("storage: key does not exist")

// Store is a durable key/value blob store.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
}
