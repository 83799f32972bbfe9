// Package circuitbreaker builds gobreaker circuit breakers with the
// defaults used across the storefront.
package circuitbreaker

import (
	"log/slog"
	"time"

	"github.com/sony/gobreaker/v2"
)

const (
	DefaultMaxRequests         = 1
	DefaultInterval            = time.Minute
	DefaultTimeout             = 30 * time.Second
	DefaultConsecutiveFailures = 5
)

// Settings configures a breaker. Zero values take the package defaults.
type Settings struct {
	Name                string
	MaxRequests         uint32
	Interval            time.Duration
	Timeout             time.Duration
	ConsecutiveFailures uint32
	// IsSuccessful decides whether an error counts as a failure. Nil means
	// only a nil error is a success.
	IsSuccessful func(err error) bool
	Logger       *slog.Logger
}

// New returns a breaker that opens after ConsecutiveFailures failures in a
// row and half-opens after Timeout.
func New[T any](s Settings) *gobreaker.CircuitBreaker[T] {
	if s.MaxRequests == 0 {
		s.MaxRequests = DefaultMaxRequests
	}
	if s.Interval == 0 {
		s.Interval = DefaultInterval
	}
	if s.Timeout == 0 {
		s.Timeout = DefaultTimeout
	}
	if s.ConsecutiveFailures == 0 {
		s.ConsecutiveFailures = DefaultConsecutiveFailures
	}
	log := s.Logger
	if log == nil {
		log = slog.Default()
	}
	threshold := s.ConsecutiveFailures

	return gobreaker.NewCircuitBreaker[T](gobreaker.Settings{
		Name:        s.Name,
		MaxRequests: s.MaxRequests,
		Interval:    s.Interval,
		Timeout:     s.Timeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= threshold
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			log.Warn("circuit breaker state changed",
				slog.String("breaker", name),
				slog.String("from", from.String()),
				slog.String("to", to.String()))
		},
		IsSuccessful: s.IsSuccessful,
	})
}
