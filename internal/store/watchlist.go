package store

import (
	"context"
	"log/slog"
	"sync"

	"github.com/GoncaloNogueira1/filmhub/internal/domain"
)

// WatchlistStore owns the user's saved-movie set. Alongside the entry
// list it maintains a membership index (movie id set) kept in lockstep
// at every mutation, so the per-card render check is O(1) and never
// touches the network.
//
// Mutations are written server-first: local state changes only after the
// server acknowledges, so a failure needs no rollback. There is no
// single-flight gate; add/remove are keyed by movie id and made safe by
// idempotent merge semantics instead.
type WatchlistStore struct {
	notifier

	repo    domain.WatchlistRepository
	session *SessionStore
	logger  *slog.Logger

	mu      sync.RWMutex
	entries []domain.WatchlistEntry
	index   map[int64]struct{}
	count   int
	loading bool
	lastErr error
}

// NewWatchlistStore creates an empty watchlist bound to the session.
// The store registers itself to clear on logout.
func NewWatchlistStore(repo domain.WatchlistRepository, session *SessionStore, logger *slog.Logger) *WatchlistStore {
	if logger == nil {
		logger = slog.Default()
	}
	s := &WatchlistStore{
		repo:    repo,
		session: session,
		logger:  logger,
		index:   make(map[int64]struct{}),
	}
	session.OnLogout(s.Clear)
	return s
}

// Refresh replaces the whole list from the authoritative server
// snapshot and rebuilds the membership index. This is the only
// operation that re-derives the index instead of patching it. On the
// mount path a failure is recorded and logged rather than breaking the
// surrounding UI; the error is still returned for callers that care.
func (s *WatchlistStore) Refresh(ctx context.Context) error {
	if !s.session.IsAuthenticated() {
		return nil
	}

	s.mu.Lock()
	s.loading = true
	s.lastErr = nil
	s.mu.Unlock()
	s.publish()

	snapshot, err := s.repo.List(ctx)

	s.mu.Lock()
	s.loading = false
	if err != nil {
		s.lastErr = err
		s.mu.Unlock()
		s.publish()
		s.logger.Error("failed to fetch watchlist", "error", err)
		return err
	}

	index := make(map[int64]struct{}, len(snapshot.Entries))
	for _, e := range snapshot.Entries {
		index[e.MovieID] = struct{}{}
	}
	s.entries = snapshot.Entries
	s.index = index
	s.count = snapshot.Count
	s.mu.Unlock()
	s.publish()

	s.logger.Debug("watchlist refreshed", "count", snapshot.Count)
	return nil
}

// Add saves a movie. The server call happens first; on success the
// canonical entry is inserted only if a concurrent Refresh has not
// already delivered it, while the membership index insert is
// unconditional. On failure nothing changed locally, so the error is
// simply raised to the caller.
func (s *WatchlistStore) Add(ctx context.Context, movieID int64) error {
	if !s.session.IsAuthenticated() {
		return domain.ErrAuthFailed
	}

	entry, err := s.repo.Add(ctx, movieID)
	if err != nil {
		s.logger.Error("failed to add to watchlist", "error", err, "movieID", movieID)
		return err
	}

	s.mu.Lock()
	if !s.containsEntryLocked(movieID) && entry != nil {
		s.entries = append(s.entries, *entry)
	}
	s.index[movieID] = struct{}{}
	s.count = len(s.entries)
	s.mu.Unlock()
	s.publish()

	s.logger.Info("added to watchlist", "movieID", movieID)
	return nil
}

// Remove deletes a movie. On success the entry is filtered out by id
// and the id dropped from the index; removing an id that was never
// added is a no-op. On failure local state is untouched.
func (s *WatchlistStore) Remove(ctx context.Context, movieID int64) error {
	if !s.session.IsAuthenticated() {
		return domain.ErrAuthFailed
	}

	if err := s.repo.Remove(ctx, movieID); err != nil {
		s.logger.Error("failed to remove from watchlist", "error", err, "movieID", movieID)
		return err
	}

	s.mu.Lock()
	filtered := s.entries[:0]
	for _, e := range s.entries {
		if e.MovieID != movieID {
			filtered = append(filtered, e)
		}
	}
	s.entries = filtered
	delete(s.index, movieID)
	s.count = len(s.entries)
	s.mu.Unlock()
	s.publish()

	s.logger.Info("removed from watchlist", "movieID", movieID)
	return nil
}

// Contains is the O(1) membership check backing every movie card
// render. It never triggers a network call.
func (s *WatchlistStore) Contains(movieID int64) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.index[movieID]
	return ok
}

// Clear empties the list, index and recorded error. Wired to logout.
func (s *WatchlistStore) Clear() {
	s.mu.Lock()
	s.entries = nil
	s.index = make(map[int64]struct{})
	s.count = 0
	s.lastErr = nil
	s.mu.Unlock()
	s.publish()
}

// Entries returns a copy of the saved entries in server order.
func (s *WatchlistStore) Entries() []domain.WatchlistEntry {
	s.mu.RLock()
	defer s.mu.RUnlock()
	entries := make([]domain.WatchlistEntry, len(s.entries))
	copy(entries, s.entries)
	return entries
}

// Count returns the number of saved movies.
func (s *WatchlistStore) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.count
}

// Loading reports whether a refresh is in flight.
func (s *WatchlistStore) Loading() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loading
}

// Err returns the error recorded by the last refresh, nil after any
// successful refresh or Clear.
func (s *WatchlistStore) Err() error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.lastErr
}

func (s *WatchlistStore) containsEntryLocked(movieID int64) bool {
	for _, e := range s.entries {
		if e.MovieID == movieID {
			return true
		}
	}
	return false
}
