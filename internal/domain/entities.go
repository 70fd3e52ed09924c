package domain

import (
	"fmt"
	"strings"
	"time"
)

// Movie represents a catalog entry served by the filmhub backend.
type Movie struct {
	ID          int64    // Backend identifier (watchlist and rating key)
	TMDBID      int64    // Upstream TMDB identifier
	Title       string   // Display title
	Overview    string   // Plot synopsis (detail view only)
	ReleaseYear int      // Release year, 0 if unknown
	PosterURL   string   // Poster image URL
	BackdropURL string   // Background art URL
	Genres      []string // Genre names
	VoteAverage float64  // Aggregate rating (0-10 scale)
	Popularity  float64  // Server-side popularity metric
	RatingCount int      // Number of local user ratings
}

// DisplayTitle returns the title with the release year appended when known.
func (m Movie) DisplayTitle() string {
	if m.ReleaseYear > 0 {
		return fmt.Sprintf("%s (%d)", m.Title, m.ReleaseYear)
	}
	return m.Title
}

// GenreLine returns genres joined for single-line display.
func (m Movie) GenreLine() string {
	return strings.Join(m.Genres, ", ")
}

// FormattedScore returns the aggregate vote as a short display string.
func (m Movie) FormattedScore() string {
	if m.VoteAverage <= 0 {
		return "-"
	}
	return fmt.Sprintf("%.1f", m.VoteAverage)
}

// Profile represents the authenticated user's account data.
type Profile struct {
	ID                 int64
	Email              string
	Username           string
	FirstName          string
	LastName           string
	Age                int
	Bio                string
	FavoriteGenres     map[string]float64 // genre id -> affinity weight
	EmailNotifications bool
}

// FullName returns the display name, falling back to the username.
func (p Profile) FullName() string {
	name := strings.TrimSpace(p.FirstName + " " + p.LastName)
	if name == "" {
		return p.Username
	}
	return name
}

// Tokens holds the credential pair issued at login.
type Tokens struct {
	Access  string
	Refresh string
}

// WatchlistEntry is a single saved movie, as returned by the server.
type WatchlistEntry struct {
	ID      int64 // Entry identifier
	MovieID int64
	Movie   Movie
	AddedAt time.Time
}

// WatchlistSnapshot is the authoritative full listing returned by the server.
type WatchlistSnapshot struct {
	Entries []WatchlistEntry
	Count   int
}

// CatalogPage is one page of the paginated movie listing.
type CatalogPage struct {
	Results []Movie
	Count   int  // Total results on the server for this query
	Next    bool // Whether the server reports a following page
}

// Rating is the current user's rating of a movie.
type Rating struct {
	MovieID   int64
	Score     int // 1-5
	Comment   string
	UpdatedAt time.Time
}

// RatingSummary is the server-side aggregate for a movie.
type RatingSummary struct {
	MovieID int64
	Average float64
	Count   int
}

// RecommendationSet is an opaque server-computed result set.
// The strategy string describes how the server chose the movies
// (e.g. "content_based", "popularity") and is display-only.
type RecommendationSet struct {
	Movies           []Movie
	Strategy         string
	Count            int
	UserRatingsCount int
}
