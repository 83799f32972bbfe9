package storage

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/fjod/go_skincare/pkg/circuitbreaker"
	"github.com/sony/gobreaker/v2"
)

// ErrUnavailable is returned while the breaker in front of a backend is
// open.
var ErrUnavailable = errors.New("storage unavailable")

// BreakerStorage stops calling a failing backend until it recovers. A
// missing key counts as a successful call.
type BreakerStorage struct {
	next Storage
	cb   *gobreaker.CircuitBreaker[[]byte]
}

func WithBreaker(next Storage, name string, log *slog.Logger) *BreakerStorage {
	return &BreakerStorage{
		next: next,
		cb: circuitbreaker.New[[]byte](circuitbreaker.Settings{
			Name:   name,
			Logger: log,
			IsSuccessful: func(err error) bool {
				return err == nil || errors.Is(err, ErrNotFound)
			},
		}),
	}
}

var _ Storage = (*BreakerStorage)(nil)

func (b *BreakerStorage) Get(ctx context.Context, key string) ([]byte, error) {
	v, err := b.cb.Execute(func() ([]byte, error) {
		return b.next.Get(ctx, key)
	})
	return v, translate(err)
}

func (b *BreakerStorage) Set(ctx context.Context, key string, value []byte) error {
	_, err := b.cb.Execute(func() ([]byte, error) {
		return nil, b.next.Set(ctx, key, value)
	})
	return translate(err)
}

func (b *BreakerStorage) Delete(ctx context.Context, key string) error {
	_, err := b.cb.Execute(func() ([]byte, error) {
		return nil, b.next.Delete(ctx, key)
	})
	return translate(err)
}

// State exposes the breaker state for health reporting.
func (b *BreakerStorage) State() gobreaker.State {
	return b.cb.State()
}

func translate(err error) error {
	if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
		return fmt.Errorf("%w: %w", ErrUnavailable, err)
	}
	return err
}
