package store

import (
	"context"
	"log/slog"
	"sync"

	"github.com/GoncaloNogueira1/filmhub/internal/domain"
)

// CatalogStore owns the paginated, searchable movie listing. Items keep
// server order and are never de-duplicated client-side; duplicates across
// pages are a backend concern. Only one fetch may be in flight at a time:
// the loading flag is a single-flight gate, and a load requested while
// one is in flight is dropped, never queued.
type CatalogStore struct {
	notifier

	repo     domain.CatalogRepository
	logger   *slog.Logger
	pageSize int

	mu      sync.RWMutex
	items   []domain.Movie
	query   string
	page    int
	hasMore bool
	loading bool
}

// NewCatalogStore creates an empty catalog positioned at the first page.
func NewCatalogStore(repo domain.CatalogRepository, pageSize int, logger *slog.Logger) *CatalogStore {
	if logger == nil {
		logger = slog.Default()
	}
	if pageSize <= 0 {
		pageSize = 20
	}
	return &CatalogStore{
		repo:     repo,
		logger:   logger,
		pageSize: pageSize,
		page:     1,
		hasMore:  true,
	}
}

// LoadPage fetches one page of the unfiltered listing. Page 1 replaces
// the items; later pages append in arrival order. A successful load
// leaves the store in listing mode (query cleared).
func (s *CatalogStore) LoadPage(ctx context.Context, page int) error {
	return s.fetch(ctx, page, "")
}

// Search overwrites the query and fetches a page of results under it.
// Page 1 always resets the items.
func (s *CatalogStore) Search(ctx context.Context, query string, page int) error {
	return s.fetch(ctx, page, query)
}

// LoadMore fetches the next page under the current query.
func (s *CatalogStore) LoadMore(ctx context.Context) error {
	s.mu.RLock()
	query := s.query
	next := s.nextPageLocked()
	s.mu.RUnlock()
	return s.fetch(ctx, next, query)
}

func (s *CatalogStore) fetch(ctx context.Context, page int, query string) error {
	s.mu.Lock()
	if s.loading {
		// Single-flight: the concurrent request is dropped, not queued.
		s.mu.Unlock()
		return nil
	}
	s.loading = true
	s.mu.Unlock()
	s.publish()

	resp, err := s.repo.Movies(ctx, page, query)

	s.mu.Lock()
	s.loading = false
	if err != nil {
		// Items stay untouched; pagination stops until the next
		// explicit, user-triggered load.
		s.hasMore = false
		s.mu.Unlock()
		s.publish()
		s.logger.Error("catalog fetch failed", "error", err, "page", page, "query", query)
		return err
	}

	if page == 1 {
		s.items = resp.Results
	} else {
		s.items = append(s.items, resp.Results...)
	}
	s.query = query
	s.page = page
	// Both signals must hold: a full page AND a server-reported next
	// page. Either alone is vulnerable to off-by-one pagination.
	s.hasMore = len(resp.Results) == s.pageSize && resp.Next
	s.mu.Unlock()
	s.publish()

	s.logger.Debug("catalog page loaded", "page", page, "query", query, "total", s.Len())
	return nil
}

// Reset clears the listing back to its initial state.
func (s *CatalogStore) Reset() {
	s.mu.Lock()
	s.items = nil
	s.query = ""
	s.page = 1
	s.hasMore = true
	s.mu.Unlock()
	s.publish()
}

// NextPage computes the next page number from the item count rather
// than a stored counter, so an out-of-band reset can never leave a
// stale cursor behind.
func (s *CatalogStore) NextPage() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.nextPageLocked()
}

func (s *CatalogStore) nextPageLocked() int {
	return len(s.items)/s.pageSize + 1
}

// Items returns a copy of the loaded listing in server order.
func (s *CatalogStore) Items() []domain.Movie {
	s.mu.RLock()
	defer s.mu.RUnlock()
	items := make([]domain.Movie, len(s.items))
	copy(items, s.items)
	return items
}

// Len returns the number of loaded items.
func (s *CatalogStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.items)
}

// Query returns the active search query, "" in listing mode.
func (s *CatalogStore) Query() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.query
}

// Page returns the most recently loaded page number.
func (s *CatalogStore) Page() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.page
}

// HasMore reports whether forward pagination should continue.
func (s *CatalogStore) HasMore() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.hasMore
}

// Loading reports whether a fetch is in flight.
func (s *CatalogStore) Loading() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loading
}
