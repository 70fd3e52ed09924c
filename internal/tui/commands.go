package tui

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/GoncaloNogueira1/filmhub/internal/domain"
	"github.com/GoncaloNogueira1/filmhub/internal/service"
	"github.com/GoncaloNogueira1/filmhub/internal/store"
)

// Command factories for async operations

const requestTimeout = 30 * time.Second

// LoginCmd exchanges credentials and installs the session
func LoginCmd(session *store.SessionStore, auth domain.AuthRepository, email, password string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()

		result, err := auth.Login(ctx, email, password)
		if err != nil {
			return ErrMsg{Err: err, Context: "logging in"}
		}

		session.Login(result.Profile, result.Tokens)
		return LoggedInMsg{Profile: result.Profile}
	}
}

// RegisterCmd creates an account; the caller logs in afterwards
func RegisterCmd(auth domain.AuthRepository, reg domain.Registration) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()

		profile, err := auth.Register(ctx, reg)
		if err != nil {
			return ErrMsg{Err: err, Context: "creating account"}
		}
		return RegisteredMsg{Profile: *profile}
	}
}

// LogoutCmd tears down the session and everything hanging off it
func LogoutCmd(session *store.SessionStore) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()

		session.Logout(ctx)
		return LoggedOutMsg{}
	}
}

// LoadPageCmd loads one catalog page, replacing on page one
func LoadPageCmd(catalog *store.CatalogStore, page int) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()

		if err := catalog.LoadPage(ctx, page); err != nil {
			return ErrMsg{Err: err, Context: "loading movies"}
		}
		return PageLoadedMsg{}
	}
}

// LoadMoreCmd appends the next catalog page
func LoadMoreCmd(catalog *store.CatalogStore) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()

		if err := catalog.LoadMore(ctx); err != nil {
			return ErrMsg{Err: err, Context: "loading more movies"}
		}
		return PageLoadedMsg{}
	}
}

// SearchCmd runs a server-side title search from page one
func SearchCmd(catalog *store.CatalogStore, query string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()

		if err := catalog.Search(ctx, query, 1); err != nil {
			return ErrMsg{Err: err, Context: "searching"}
		}
		return PageLoadedMsg{}
	}
}

// RefreshWatchlistCmd re-fetches the authoritative watchlist snapshot
func RefreshWatchlistCmd(watchlist *store.WatchlistStore) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()

		if err := watchlist.Refresh(ctx); err != nil {
			return ErrMsg{Err: err, Context: "loading watchlist"}
		}
		return WatchlistRefreshedMsg{}
	}
}

// ToggleWatchlistCmd adds or removes a movie depending on current membership
func ToggleWatchlistCmd(watchlist *store.WatchlistStore, movie domain.Movie) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()

		if watchlist.Contains(movie.ID) {
			if err := watchlist.Remove(ctx, movie.ID); err != nil {
				return ErrMsg{Err: err, Context: "removing from watchlist"}
			}
			return WatchlistToggledMsg{MovieID: movie.ID, Added: false, Title: movie.Title}
		}

		if err := watchlist.Add(ctx, movie.ID); err != nil {
			return ErrMsg{Err: err, Context: "saving to watchlist"}
		}
		return WatchlistToggledMsg{MovieID: movie.ID, Added: true, Title: movie.Title}
	}
}

// LoadDetailCmd fetches the full movie record plus its rating context
func LoadDetailCmd(catalog domain.CatalogRepository, ratings *service.RatingsService, movieID int64) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()

		movie, err := catalog.Movie(ctx, movieID)
		if err != nil {
			return ErrMsg{Err: err, Context: "loading movie details"}
		}

		// Rating context is decoration; failures degrade to an empty pane.
		summary, _ := ratings.Summary(ctx, movieID)
		own, _ := ratings.OwnRating(ctx, movieID)

		return DetailLoadedMsg{Movie: *movie, Summary: summary, OwnRating: own}
	}
}

// RateCmd submits a 1-5 score for a movie
func RateCmd(ratings *service.RatingsService, movie domain.Movie, score int) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()

		rating, err := ratings.Rate(ctx, movie.ID, score, "")
		if err != nil {
			return ErrMsg{Err: err, Context: "submitting rating"}
		}
		return RatedMsg{Rating: *rating, Title: movie.Title}
	}
}

// LoadRecommendationsCmd fetches the server-computed recommendation set
func LoadRecommendationsCmd(recs *service.RecommendationsService, limit int) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()

		set, err := recs.Recommendations(ctx, limit)
		if err != nil {
			return ErrMsg{Err: err, Context: "loading recommendations"}
		}
		return RecommendationsLoadedMsg{Set: *set}
	}
}

// TickCmd returns a command that ticks after the given duration
func TickCmd(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(time.Time) tea.Msg {
		return TickMsg{}
	})
}

// ClearStatusCmd clears the status bar after a delay
func ClearStatusCmd(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(time.Time) tea.Msg {
		return ClearStatusMsg{}
	})
}
