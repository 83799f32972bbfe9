package cart

import (
	"container/list"
	"context"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/fjod/go_skincare/internal/domain"
	"github.com/fjod/go_skincare/internal/storage"
)

const (
	DefaultMaxSessions = 10000
	DefaultIdleTTL     = 30 * time.Minute
)

type registryEntry struct {
	session  string
	store    *Store
	lastUsed time.Time
}

// Registry keeps one Store per shopper session, loading it from storage on
// first use. At most maxSessions stores stay loaded; the least recently
// used one is evicted first, and Sweep drops stores idle for idleTTL.
// Evicted carts are reloaded from storage on their next use.
type Registry struct {
	storage     storage.Storage
	storeOpts   []Option
	maxSessions int
	idleTTL     time.Duration
	now         func() time.Time

	mu     sync.Mutex
	stores map[string]*list.Element
	lru    *list.List // front is the most recently used
	sfg    singleflight.Group
}

type RegistryOption func(*Registry)

// WithStoreOptions applies opts to every store the registry creates.
func WithStoreOptions(opts ...Option) RegistryOption {
	return func(r *Registry) {
		r.storeOpts = append(r.storeOpts, opts...)
	}
}

func WithMaxSessions(n int) RegistryOption {
	return func(r *Registry) {
		if n > 0 {
			r.maxSessions = n
		}
	}
}

func WithIdleTTL(d time.Duration) RegistryOption {
	return func(r *Registry) {
		if d > 0 {
			r.idleTTL = d
		}
	}
}

func NewRegistry(st storage.Storage, opts ...RegistryOption) *Registry {
	r := &Registry{
		storage:     st,
		maxSessions: DefaultMaxSessions,
		idleTTL:     DefaultIdleTTL,
		now:         time.Now,
		stores:      make(map[string]*list.Element),
		lru:         list.New(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Key is the storage key of a session's cart.
func Key(session string) string {
	return DefaultKey + ":" + session
}

// Get returns the session's store, rehydrating it when it is not loaded.
// Rehydration is not cut short when ctx is cancelled; it is bounded by the
// store timeout instead.
func (r *Registry) Get(ctx context.Context, session string) *Store {
	if s, ok := r.touch(session); ok {
		return s
	}

	v, _, _ := r.sfg.Do(session, func() (interface{}, error) {
		if s, ok := r.touch(session); ok {
			return s, nil
		}

		s := NewStore(context.WithoutCancel(ctx), r.storage, Key(session), r.storeOpts...)
		r.insert(session, s)
		return s, nil
	})
	return v.(*Store)
}

func (r *Registry) touch(session string) (*Store, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	el, ok := r.stores[session]
	if !ok {
		return nil, false
	}
	e := el.Value.(*registryEntry)
	e.lastUsed = r.now()
	r.lru.MoveToFront(el)
	return e.store, true
}

func (r *Registry) insert(session string, s *Store) {
	r.mu.Lock()
	r.stores[session] = r.lru.PushFront(&registryEntry{
		session:  session,
		store:    s,
		lastUsed: r.now(),
	})
	var evicted []*Store
	for r.lru.Len() > r.maxSessions {
		evicted = append(evicted, r.removeLocked(r.lru.Back()))
	}
	r.mu.Unlock()

	for _, s := range evicted {
		s.Close()
	}
}

func (r *Registry) removeLocked(el *list.Element) *Store {
	e := r.lru.Remove(el).(*registryEntry)
	delete(r.stores, e.session)
	return e.store
}

// Evict drops the session's store from memory. The persisted cart stays.
func (r *Registry) Evict(session string) {
	r.mu.Lock()
	el, ok := r.stores[session]
	var s *Store
	if ok {
		s = r.removeLocked(el)
	}
	r.mu.Unlock()
	if ok {
		s.Close()
	}
}

// Sweep evicts every store not used within the idle TTL and returns how
// many were dropped.
func (r *Registry) Sweep() int {
	cutoff := r.now().Add(-r.idleTTL)

	r.mu.Lock()
	var evicted []*Store
	for el := r.lru.Back(); el != nil; el = r.lru.Back() {
		if el.Value.(*registryEntry).lastUsed.After(cutoff) {
			break
		}
		evicted = append(evicted, r.removeLocked(el))
	}
	r.mu.Unlock()

	for _, s := range evicted {
		s.Close()
	}
	return len(evicted)
}

// RunJanitor calls Sweep every interval until ctx is done.
func (r *Registry) RunJanitor(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		interval = r.idleTTL
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			r.Sweep()
		}
	}
}

// Clear empties the session's cart.
func (r *Registry) Clear(ctx context.Context, session string) domain.CartState {
	return r.Get(ctx, session).ClearCart(ctx)
}

// Len returns the number of loaded sessions.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.stores)
}
