package cart

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/fjod/go_skincare/internal/domain"
	"github.com/fjod/go_skincare/internal/storage"
	"github.com/fjod/go_skincare/pkg/logger"
)

const (
	// DefaultKey is the storage key of a store that is not session scoped.
	DefaultKey = "cart"

	persistVersion = 1
	defaultTimeout = 2 * time.Second
)

// Recorder receives cart events for metrics.
type Recorder interface {
	CartAction(action ActionType)
	PersistError(op string)
}

type nopRecorder struct{}

func (nopRecorder) CartAction(ActionType) {}
func (nopRecorder) PersistError(string)   {}

// persistedCart is the stored layout. IsOpen is never stored.
type persistedCart struct {
	Version   int               `json:"version"`
	Items     []domain.CartItem `json:"items"`
	Total     float64           `json:"total"`
	ItemCount int               `json:"itemCount"`
}

// Store is a cart state container. Dispatches are applied one at a time in
// call order; subscribers are called after each dispatch with the new state.
// Persistence failures are logged and do not affect the in-memory state.
type Store struct {
	mu      sync.Mutex
	state   domain.CartState
	storage storage.Storage
	key     string
	timeout time.Duration
	log     *slog.Logger
	rec     Recorder

	subMu  sync.Mutex
	subs   map[int]func(domain.CartState)
	nextID int
	closed bool
}

type Option func(*Store)

func WithLogger(l *slog.Logger) Option {
	return func(s *Store) { s.log = l }
}

func WithRecorder(r Recorder) Option {
	return func(s *Store) {
		if r != nil {
			s.rec = r
		}
	}
}

// WithTimeout bounds each storage call.
func WithTimeout(d time.Duration) Option {
	return func(s *Store) {
		if d > 0 {
			s.timeout = d
		}
	}
}

// NewStore returns a store persisting under key, rehydrated from st. A
// missing, unreadable or unrecognised entry starts an empty cart.
func NewStore(ctx context.Context, st storage.Storage, key string, opts ...Option) *Store {
	s := &Store{
		storage: st,
		key:     key,
		timeout: defaultTimeout,
		rec:     nopRecorder{},
		subs:    make(map[int]func(domain.CartState)),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.log = logger.OrDefault(s.log)
	s.state = s.rehydrate(ctx)
	return s
}

// State returns a copy of the current state.
func (s *Store) State() domain.CartState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return cloneState(s.state)
}

// Dispatch applies a and returns the resulting state.
func (s *Store) Dispatch(ctx context.Context, a Action) domain.CartState {
	s.mu.Lock()
	s.state = Reduce(s.state, a)
	next := cloneState(s.state)
	if a.persists() {
		s.persist(ctx, next)
	}
	s.mu.Unlock()

	s.rec.CartAction(a.Type)
	s.notify(next)
	return next
}

// Subscribe registers fn for state changes and returns a func that removes
// it. Subscribing to a closed store is a no-op.
func (s *Store) Subscribe(fn func(domain.CartState)) (unsubscribe func()) {
	s.subMu.Lock()
	defer s.subMu.Unlock()
	if s.closed {
		return func() {}
	}

	id := s.nextID
	s.nextID++
	s.subs[id] = fn
	return func() {
		s.subMu.Lock()
		defer s.subMu.Unlock()
		delete(s.subs, id)
	}
}

// Close detaches every subscriber. The store keeps accepting dispatches.
func (s *Store) Close() {
	s.subMu.Lock()
	defer s.subMu.Unlock()
	s.closed = true
	clear(s.subs)
}

func (s *Store) AddToCart(ctx context.Context, item domain.CartItem, quantity int) domain.CartState {
	return s.Dispatch(ctx, AddToCart(item, quantity))
}

func (s *Store) RemoveFromCart(ctx context.Context, id string) domain.CartState {
	return s.Dispatch(ctx, RemoveFromCart(id))
}

func (s *Store) UpdateQuantity(ctx context.Context, id string, quantity int) domain.CartState {
	return s.Dispatch(ctx, UpdateQuantity(id, quantity))
}

func (s *Store) ClearCart(ctx context.Context) domain.CartState {
	return s.Dispatch(ctx, ClearCart())
}

func (s *Store) ToggleCart(ctx context.Context) domain.CartState {
	return s.Dispatch(ctx, ToggleCart())
}

func (s *Store) OpenCart(ctx context.Context) domain.CartState {
	return s.Dispatch(ctx, OpenCart())
}

func (s *Store) CloseCart(ctx context.Context) domain.CartState {
	return s.Dispatch(ctx, CloseCart())
}

func (s *Store) notify(state domain.CartState) {
	s.subMu.Lock()
	fns := make([]func(domain.CartState), 0, len(s.subs))
	for _, fn := range s.subs {
		fns = append(fns, fn)
	}
	s.subMu.Unlock()

	for _, fn := range fns {
		fn(cloneState(state))
	}
}

func (s *Store) persist(ctx context.Context, state domain.CartState) {
	data, err := json.Marshal(persistedCart{
		Version:   persistVersion,
		Items:     state.Items,
		Total:     state.Total,
		ItemCount: state.ItemCount,
	})
	if err == nil {
		ctx, cancel := context.WithTimeout(ctx, s.timeout)
		defer cancel()
		err = s.storage.Set(ctx, s.key, data)
	}
	if err != nil {
		s.rec.PersistError("write")
		s.log.WarnContext(ctx, "failed to persist cart",
			slog.String("key", s.key),
			slog.Any("error", err))
	}
}

func (s *Store) rehydrate(ctx context.Context) domain.CartState {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	data, err := s.storage.Get(ctx, s.key)
	if errors.Is(err, storage.ErrNotFound) {
		return emptyState()
	}
	if err == nil {
		var state domain.CartState
		state, err = decodeCart(data)
		if err == nil {
			return state
		}
	}

	s.rec.PersistError("read")
	s.log.WarnContext(ctx, "starting with an empty cart",
		slog.String("key", s.key),
		slog.Any("error", err))
	return emptyState()
}

// decodeCart parses a stored cart. A missing version is version 0. Totals
// are recomputed from the items and IsOpen is always false.
func decodeCart(data []byte) (domain.CartState, error) {
	var p persistedCart
	if err := json.Unmarshal(data, &p); err != nil {
		return domain.CartState{}, fmt.Errorf("failed to decode cart: %w", err)
	}
	if p.Version > persistVersion {
		return domain.CartState{}, fmt.Errorf("unsupported cart version %d", p.Version)
	}

	items := make([]domain.CartItem, 0, len(p.Items))
	items = append(items, p.Items...)
	state := domain.CartState{Items: items}
	state.Total, state.ItemCount = totals(items)
	return state, nil
}

func cloneState(s domain.CartState) domain.CartState {
	s.Items = append(make([]domain.CartItem, 0, len(s.Items)), s.Items...)
	return s
}
