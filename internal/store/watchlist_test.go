package store

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GoncaloNogueira1/filmhub/internal/domain"
)

type fakeWatchlistRepo struct {
	mu          sync.Mutex
	listCalls   int
	addCalls    int
	removeCalls int

	listFn   func(ctx context.Context) (*domain.WatchlistSnapshot, error)
	addFn    func(ctx context.Context, movieID int64) (*domain.WatchlistEntry, error)
	removeFn func(ctx context.Context, movieID int64) error
}

func (f *fakeWatchlistRepo) List(ctx context.Context) (*domain.WatchlistSnapshot, error) {
	f.mu.Lock()
	f.listCalls++
	f.mu.Unlock()
	if f.listFn == nil {
		return &domain.WatchlistSnapshot{}, nil
	}
	return f.listFn(ctx)
}

func (f *fakeWatchlistRepo) Add(ctx context.Context, movieID int64) (*domain.WatchlistEntry, error) {
	f.mu.Lock()
	f.addCalls++
	f.mu.Unlock()
	if f.addFn == nil {
		e := watchlistEntry(movieID)
		return &e, nil
	}
	return f.addFn(ctx, movieID)
}

func (f *fakeWatchlistRepo) Remove(ctx context.Context, movieID int64) error {
	f.mu.Lock()
	f.removeCalls++
	f.mu.Unlock()
	if f.removeFn == nil {
		return nil
	}
	return f.removeFn(ctx, movieID)
}

func watchlistEntry(movieID int64) domain.WatchlistEntry {
	return domain.WatchlistEntry{
		ID:      movieID,
		MovieID: movieID,
		Movie:   domain.Movie{ID: movieID, Title: "Movie"},
	}
}

// authedWatchlist builds a watchlist store behind a logged-in session.
func authedWatchlist(t *testing.T, repo *fakeWatchlistRepo) (*WatchlistStore, *SessionStore) {
	t.Helper()
	session := NewSessionStore(memVault(t), &fakeAuthRepo{}, nil)
	session.Login(testProfile(), testTokens())
	return NewWatchlistStore(repo, session, nil), session
}

func TestWatchlistRefreshBuildsIndex(t *testing.T) {
	repo := &fakeWatchlistRepo{listFn: func(ctx context.Context) (*domain.WatchlistSnapshot, error) {
		return &domain.WatchlistSnapshot{
			Entries: []domain.WatchlistEntry{watchlistEntry(7)},
			Count:   1,
		}, nil
	}}
	s, _ := authedWatchlist(t, repo)

	require.NoError(t, s.Refresh(context.Background()))

	assert.True(t, s.Contains(7))
	assert.False(t, s.Contains(8))
	assert.Equal(t, 1, s.Count())
	require.Len(t, s.Entries(), 1)
}

func TestWatchlistRefreshReplacesWholesale(t *testing.T) {
	snapshot := &domain.WatchlistSnapshot{
		Entries: []domain.WatchlistEntry{watchlistEntry(1), watchlistEntry(2)},
		Count:   2,
	}
	repo := &fakeWatchlistRepo{listFn: func(ctx context.Context) (*domain.WatchlistSnapshot, error) {
		return snapshot, nil
	}}
	s, _ := authedWatchlist(t, repo)

	require.NoError(t, s.Add(context.Background(), 99))
	require.True(t, s.Contains(99))

	// The authoritative snapshot wins; the index is fully re-derived.
	require.NoError(t, s.Refresh(context.Background()))
	assert.False(t, s.Contains(99))
	assert.True(t, s.Contains(1))
	assert.True(t, s.Contains(2))
	assert.Equal(t, 2, s.Count())
}

func TestWatchlistAddThenRemoveLeavesNoTrace(t *testing.T) {
	s, _ := authedWatchlist(t, &fakeWatchlistRepo{})

	require.NoError(t, s.Add(context.Background(), 5))
	require.NoError(t, s.Remove(context.Background(), 5))

	assert.False(t, s.Contains(5))
	for _, e := range s.Entries() {
		assert.NotEqual(t, int64(5), e.MovieID)
	}
	assert.Equal(t, 0, s.Count())
}

func TestWatchlistAddTwiceKeepsSingleEntry(t *testing.T) {
	s, _ := authedWatchlist(t, &fakeWatchlistRepo{})

	require.NoError(t, s.Add(context.Background(), 5))
	require.NoError(t, s.Add(context.Background(), 5))

	assert.True(t, s.Contains(5))
	assert.Len(t, s.Entries(), 1)
	assert.Equal(t, 1, s.Count())
}

func TestWatchlistRemoveAbsentIsNoOp(t *testing.T) {
	repo := &fakeWatchlistRepo{}
	s, _ := authedWatchlist(t, repo)
	require.NoError(t, s.Add(context.Background(), 1))

	require.NoError(t, s.Remove(context.Background(), 404))

	assert.True(t, s.Contains(1))
	assert.Len(t, s.Entries(), 1)
}

func TestWatchlistAddFailureIsPureNoOp(t *testing.T) {
	boom := errors.New("boom")
	repo := &fakeWatchlistRepo{addFn: func(ctx context.Context, movieID int64) (*domain.WatchlistEntry, error) {
		return nil, boom
	}}
	s, _ := authedWatchlist(t, repo)

	err := s.Add(context.Background(), 5)
	require.ErrorIs(t, err, boom)

	// No optimistic mutation happened, so there is nothing to roll back.
	assert.False(t, s.Contains(5))
	assert.Empty(t, s.Entries())
}

func TestWatchlistRemoveFailureLeavesState(t *testing.T) {
	boom := errors.New("boom")
	repo := &fakeWatchlistRepo{removeFn: func(ctx context.Context, movieID int64) error {
		return boom
	}}
	s, _ := authedWatchlist(t, repo)
	require.NoError(t, s.Add(context.Background(), 5))

	err := s.Remove(context.Background(), 5)
	require.ErrorIs(t, err, boom)

	assert.True(t, s.Contains(5))
	assert.Len(t, s.Entries(), 1)
}

func TestWatchlistAddSkipsEntryDeliveredByConcurrentRefresh(t *testing.T) {
	repo := &fakeWatchlistRepo{listFn: func(ctx context.Context) (*domain.WatchlistSnapshot, error) {
		return &domain.WatchlistSnapshot{
			Entries: []domain.WatchlistEntry{watchlistEntry(7)},
			Count:   1,
		}, nil
	}}
	s, _ := authedWatchlist(t, repo)
	require.NoError(t, s.Refresh(context.Background()))

	// The server acks the add with the same canonical entry the refresh
	// already delivered; the entry list must not grow.
	require.NoError(t, s.Add(context.Background(), 7))

	assert.True(t, s.Contains(7))
	assert.Len(t, s.Entries(), 1)
}

func TestWatchlistAnonymousMutationsRejectedLocally(t *testing.T) {
	repo := &fakeWatchlistRepo{}
	session := NewSessionStore(memVault(t), &fakeAuthRepo{}, nil)
	s := NewWatchlistStore(repo, session, nil)

	require.ErrorIs(t, s.Add(context.Background(), 1), domain.ErrAuthFailed)
	require.ErrorIs(t, s.Remove(context.Background(), 1), domain.ErrAuthFailed)

	// Rejected before any network call.
	assert.Equal(t, 0, repo.addCalls)
	assert.Equal(t, 0, repo.removeCalls)

	// An anonymous refresh has nothing to fetch.
	require.NoError(t, s.Refresh(context.Background()))
	assert.Equal(t, 0, repo.listCalls)
}

func TestWatchlistClearedOnLogout(t *testing.T) {
	session := NewSessionStore(memVault(t), &fakeAuthRepo{logoutErr: errors.New("server down")}, nil)
	session.Login(testProfile(), testTokens())
	s := NewWatchlistStore(&fakeWatchlistRepo{}, session, nil)

	require.NoError(t, s.Add(context.Background(), 3))
	require.True(t, s.Contains(3))

	// Even a failed server-side logout leaves the client logged out
	// and the watchlist empty.
	session.Logout(context.Background())

	assert.False(t, session.IsAuthenticated())
	assert.False(t, s.Contains(3))
	assert.Empty(t, s.Entries())
	assert.Equal(t, 0, s.Count())
}

func TestWatchlistRefreshFailureRecordsError(t *testing.T) {
	boom := errors.New("boom")
	repo := &fakeWatchlistRepo{listFn: func(ctx context.Context) (*domain.WatchlistSnapshot, error) {
		return nil, boom
	}}
	s, _ := authedWatchlist(t, repo)

	err := s.Refresh(context.Background())
	require.ErrorIs(t, err, boom)
	assert.ErrorIs(t, s.Err(), boom)
	assert.False(t, s.Loading())

	s.Clear()
	assert.NoError(t, s.Err())
}

func TestWatchlistNotifiesSubscribers(t *testing.T) {
	s, _ := authedWatchlist(t, &fakeWatchlistRepo{})

	notified := 0
	cancel := s.Subscribe(func() { notified++ })
	defer cancel()

	require.NoError(t, s.Add(context.Background(), 1))
	assert.Equal(t, 1, notified)

	require.NoError(t, s.Remove(context.Background(), 1))
	assert.Equal(t, 2, notified)
}
