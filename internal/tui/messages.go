package tui

import (
	"github.com/GoncaloNogueira1/filmhub/internal/domain"
)

// Message types for the TUI

// ErrMsg represents an error
type ErrMsg struct {
	Err     error
	Context string
}

// Error implements the error interface
func (e ErrMsg) Error() string {
	if e.Context != "" {
		return e.Context + ": " + e.Err.Error()
	}
	return e.Err.Error()
}

// StoreChangedMsg signals that one of the stores published a change and
// the views should re-read their state.
type StoreChangedMsg struct{}

// LoggedInMsg signals a successful credential exchange
type LoggedInMsg struct {
	Profile domain.Profile
}

// LoggedOutMsg signals that the session has been torn down
type LoggedOutMsg struct{}

// RegisteredMsg signals a successful account creation
type RegisteredMsg struct {
	Profile domain.Profile
}

// PageLoadedMsg signals that a catalog fetch settled
type PageLoadedMsg struct{}

// WatchlistRefreshedMsg signals that the watchlist snapshot arrived
type WatchlistRefreshedMsg struct{}

// WatchlistToggledMsg signals a completed add or remove
type WatchlistToggledMsg struct {
	MovieID int64
	Added   bool
	Title   string
}

// DetailLoadedMsg carries everything the detail view shows for one movie
type DetailLoadedMsg struct {
	Movie     domain.Movie
	Summary   *domain.RatingSummary
	OwnRating *domain.Rating
}

// RatedMsg signals a submitted rating
type RatedMsg struct {
	Rating domain.Rating
	Title  string
}

// RecommendationsLoadedMsg carries a fresh recommendation set
type RecommendationsLoadedMsg struct {
	Set domain.RecommendationSet
}

// StatusMsg sets a temporary status message
type StatusMsg struct {
	Message string
	IsError bool
}

// ClearStatusMsg clears the status bar message
type ClearStatusMsg struct{}

// TickMsg is a general tick message for the loading spinner
type TickMsg struct{}
