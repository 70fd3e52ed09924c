package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strconv"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GoncaloNogueira1/filmhub/internal/domain"
	"github.com/GoncaloNogueira1/filmhub/internal/store"
)

// staticTokens is an in-memory TokenSource for tests. The access token is
// deliberately not a JWT so the proactive refresh path stays quiet.
type staticTokens struct {
	mu      sync.Mutex
	access  string
	refresh string
	updates int
}

func (s *staticTokens) AccessToken() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.access
}

func (s *staticTokens) RefreshToken() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.refresh
}

func (s *staticTokens) UpdateToken(access string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.access = access
	s.updates++
}

func testClient(t *testing.T, handler http.Handler) (*Client, *staticTokens) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	tokens := &staticTokens{access: "access-1", refresh: "refresh-1"}
	return NewClient(srv.URL, 0, tokens, nil), tokens
}

func TestLoginParsesUserAndTokens(t *testing.T) {
	client, _ := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/api/auth/login/", r.URL.Path)
		require.Empty(t, r.Header.Get("Authorization"))

		var req loginRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "ana@example.com", req.Email)

		json.NewEncoder(w).Encode(loginResponse{
			User:   profileDTO{ID: 42, Email: req.Email, Username: "ana"},
			Tokens: tokensDTO{Access: "acc", Refresh: "ref"},
		})
	}))

	result, err := client.Login(context.Background(), "ana@example.com", "secret")
	require.NoError(t, err)
	assert.Equal(t, int64(42), result.Profile.ID)
	assert.Equal(t, "acc", result.Tokens.Access)
	assert.Equal(t, "ref", result.Tokens.Refresh)
}

func TestMoviesParsesPageAndCursor(t *testing.T) {
	next := "http://example.com/api/movies/?page=2"
	client, _ := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/movies/", r.URL.Path)
		assert.Equal(t, "1", r.URL.Query().Get("page"))
		assert.Equal(t, "20", r.URL.Query().Get("page_size"))
		assert.Equal(t, "dune", r.URL.Query().Get("q"))
		assert.Equal(t, "Bearer access-1", r.Header.Get("Authorization"))

		json.NewEncoder(w).Encode(moviePageDTO{
			Count: 41,
			Next:  &next,
			Results: []movieDTO{
				{ID: 1, Title: "Dune", ReleaseYear: 2021},
				{ID: 2, Title: "Dune: Part Two", ReleaseYear: 2024},
			},
		})
	}))

	page, err := client.Movies(context.Background(), 1, "dune")
	require.NoError(t, err)
	assert.Equal(t, 41, page.Count)
	assert.True(t, page.Next)
	require.Len(t, page.Results, 2)
	assert.Equal(t, "Dune (2021)", page.Results[0].DisplayTitle())
}

func TestMoviesLastPageHasNoCursor(t *testing.T) {
	client, _ := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(moviePageDTO{Count: 1, Next: nil, Results: []movieDTO{{ID: 1}}})
	}))

	page, err := client.Movies(context.Background(), 1, "")
	require.NoError(t, err)
	assert.False(t, page.Next)
}

// The catalog store's continuation arithmetic and the client's page_size
// request parameter must agree, or a full page at a non-default size
// stops pagination after page one.
func TestConfiguredPageSizeDrivesPagination(t *testing.T) {
	const total = 200
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		page, _ := strconv.Atoi(r.URL.Query().Get("page"))
		size, _ := strconv.Atoi(r.URL.Query().Get("page_size"))
		require.Equal(t, 50, size)

		first := (page-1)*size + 1
		results := make([]movieDTO, 0, size)
		for id := first; id < first+size && id <= total; id++ {
			results = append(results, movieDTO{ID: int64(id), Title: fmt.Sprintf("Movie %d", id)})
		}
		var next *string
		if first+size <= total {
			u := fmt.Sprintf("/api/movies/?page=%d", page+1)
			next = &u
		}
		json.NewEncoder(w).Encode(moviePageDTO{Count: total, Next: next, Results: results})
	}))
	t.Cleanup(srv.Close)

	client := NewClient(srv.URL, 50, &staticTokens{access: "access-1"}, nil)
	catalog := store.NewCatalogStore(client, client.PageSize(), nil)

	require.NoError(t, catalog.LoadPage(context.Background(), 1))
	assert.Equal(t, 50, catalog.Len())
	assert.True(t, catalog.HasMore())
	assert.Equal(t, 2, catalog.NextPage())

	require.NoError(t, catalog.LoadMore(context.Background()))
	assert.Equal(t, 100, catalog.Len())
	assert.True(t, catalog.HasMore())
}

func TestPageSizeClampedToBackendBounds(t *testing.T) {
	tokens := &staticTokens{}
	assert.Equal(t, 20, NewClient("http://localhost", 0, tokens, nil).PageSize())
	assert.Equal(t, 50, NewClient("http://localhost", 50, tokens, nil).PageSize())
	assert.Equal(t, 100, NewClient("http://localhost", 500, tokens, nil).PageSize())
}

func TestUnauthorizedTriggersRefreshAndRetry(t *testing.T) {
	var calls int
	mux := http.NewServeMux()
	mux.HandleFunc("/api/watchlist/", func(w http.ResponseWriter, r *http.Request) {
		calls++
		if r.Header.Get("Authorization") != "Bearer access-2" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		json.NewEncoder(w).Encode(watchlistListResponse{Count: 0})
	})
	mux.HandleFunc("/api/auth/refresh/", func(w http.ResponseWriter, r *http.Request) {
		var req refreshRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		require.Equal(t, "refresh-1", req.Refresh)
		json.NewEncoder(w).Encode(refreshResponse{Access: "access-2"})
	})
	client, tokens := testClient(t, mux)

	snapshot, err := client.List(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 0, snapshot.Count)
	assert.Equal(t, 2, calls)
	assert.Equal(t, "access-2", tokens.AccessToken())
	assert.Equal(t, 1, tokens.updates)
}

func TestUnauthorizedWithFailedRefreshIsAuthFailure(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/watchlist/", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	})
	mux.HandleFunc("/api/auth/refresh/", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	})
	client, tokens := testClient(t, mux)

	_, err := client.List(context.Background())
	require.ErrorIs(t, err, domain.ErrAuthFailed)
	assert.Equal(t, 0, tokens.updates)
}

func TestNotFoundMapsToSentinel(t *testing.T) {
	client, _ := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))

	_, err := client.Movie(context.Background(), 999)
	require.ErrorIs(t, err, domain.ErrNotFound)
}

func TestOwnRatingAbsenceIsNotFound(t *testing.T) {
	client, _ := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/movies/7/my-rating/", r.URL.Path)
		w.WriteHeader(http.StatusNotFound)
	}))

	_, err := client.OwnRating(context.Background(), 7)
	require.ErrorIs(t, err, domain.ErrNotFound)
}

func TestValidationErrorsCarryFieldMessages(t *testing.T) {
	client, _ := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"email": ["user with this email already exists."], "age": "must be positive"}`))
	}))

	_, err := client.Register(context.Background(), domain.Registration{Email: "ana@example.com", Password: "pw"})
	var verr *domain.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, []string{"user with this email already exists."}, verr.Fields["email"])
	assert.Equal(t, []string{"must be positive"}, verr.Fields["age"])
}

func TestUnreachableServerIsOffline(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	srv.Close()
	client := NewClient(srv.URL, 0, &staticTokens{}, nil)

	_, err := client.Movies(context.Background(), 1, "")
	require.ErrorIs(t, err, domain.ErrServerOffline)
}

func TestWatchlistAddReturnsCanonicalEntry(t *testing.T) {
	client, _ := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		var req watchlistAddRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		require.Equal(t, int64(7), req.MovieID)

		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(watchlistAddResponse{
			Message:       "added",
			WatchlistItem: watchlistEntryDTO{ID: 3, Movie: movieDTO{ID: 7, Title: "Heat"}},
		})
	}))

	entry, err := client.Add(context.Background(), 7)
	require.NoError(t, err)
	assert.Equal(t, int64(7), entry.MovieID)
	assert.Equal(t, "Heat", entry.Movie.Title)
}

func TestRecommendationsParseStrategy(t *testing.T) {
	client, _ := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/recommendations/", r.URL.Path)
		assert.Equal(t, "10", r.URL.Query().Get("limit"))
		json.NewEncoder(w).Encode(recommendationsResponse{
			Recommendations:  []movieDTO{{ID: 1, Title: "Dune"}},
			Strategy:         "content_based",
			Count:            1,
			UserRatingsCount: 4,
		})
	}))

	set, err := client.Recommendations(context.Background(), 10)
	require.NoError(t, err)
	assert.Equal(t, "content_based", set.Strategy)
	assert.Equal(t, 4, set.UserRatingsCount)
	require.Len(t, set.Movies, 1)
}
