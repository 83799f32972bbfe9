package search

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"strings"
	"sync"

	"github.com/fjod/go_skincare/internal/storage"
	"github.com/fjod/go_skincare/pkg/logger"
)

const (
	MaxRecentSearches = 5
	recentSearchesKey = "recentSearches"
)

// RecentSearches keeps the last few distinct queries of each session, most
// recent first. Storage failures are logged and never returned: a failed
// read is an empty list, a failed write leaves the previous list in place.
type RecentSearches struct {
	store storage.Storage
	log   *slog.Logger
	mu    sync.Mutex
}

func NewRecentSearches(store storage.Storage, log *slog.Logger) *RecentSearches {
	return &RecentSearches{
		store: store,
		log:   logger.OrDefault(log),
	}
}

// List returns the stored queries for session.
func (r *RecentSearches) List(ctx context.Context, session string) []string {
	return r.load(ctx, session)
}

// Add puts query at the front of the session's list, dropping an earlier
// identical entry and anything past MaxRecentSearches. Blank queries are
// ignored. It returns the resulting list.
func (r *RecentSearches) Add(ctx context.Context, session, query string) []string {
	query = strings.TrimSpace(query)

	r.mu.Lock()
	defer r.mu.Unlock()

	current := r.load(ctx, session)
	if query == "" {
		return current
	}

	updated := make([]string, 0, MaxRecentSearches)
	updated = append(updated, query)
	for _, q := range current {
		if q != query && len(updated) < MaxRecentSearches {
			updated = append(updated, q)
		}
	}

	data, err := json.Marshal(updated)
	if err == nil {
		err = r.store.Set(ctx, recentKey(session), data)
	}
	if err != nil {
		r.log.WarnContext(ctx, "failed to save recent searches",
			slog.String("session", session),
			slog.Any("error", err))
		return current
	}
	return updated
}

func (r *RecentSearches) Clear(ctx context.Context, session string) {
	if err := r.store.Delete(ctx, recentKey(session)); err != nil {
		r.log.WarnContext(ctx, "failed to clear recent searches",
			slog.String("session", session),
			slog.Any("error", err))
	}
}

func (r *RecentSearches) load(ctx context.Context, session string) []string {
	data, err := r.store.Get(ctx, recentKey(session))
	if errors.Is(err, storage.ErrNotFound) {
		return []string{}
	}
	if err != nil {
		r.log.WarnContext(ctx, "failed to read recent searches",
			slog.String("session", session),
			slog.Any("error", err))
		return []string{}
	}

	var list []string
	if err := json.Unmarshal(data, &list); err != nil {
		r.log.WarnContext(ctx, "discarding corrupt recent searches",
			slog.String("session", session),
			slog.Any("error", err))
		return []string{}
	}
	if len(list) > MaxRecentSearches {
		list = list[:MaxRecentSearches]
	}
	if list == nil {
		list = []string{}
	}
	return list
}

func recentKey(session string) string {
	if session == "" {
		return recentSearchesKey
	}
	return recentSearchesKey + ":" + session
}
