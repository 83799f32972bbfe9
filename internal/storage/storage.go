// Package storage provides the durable key-value storage the cart and the
// recent-search list persist into.
package storage

import (
	"context"
	"errors"
)

var ErrNotFound = errors.New("key not found")

// Storage is a byte-oriented key-value store. Get returns ErrNotFound for a
// missing key; Delete of a missing key is not an error.
type Storage interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
}
