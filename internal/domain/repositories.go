package domain

import (
	"context"
)

// LoginResult contains the profile and credential pair issued on login.
type LoginResult struct {
	Profile Profile
	Tokens  Tokens
}

// Registration carries the fields accepted by account creation.
type Registration struct {
	Email    string
	Password string
	Age      int
}

// ProfileUpdate carries a partial profile edit. Nil fields are left unchanged.
type ProfileUpdate struct {
	FirstName          *string
	LastName           *string
	Age                *int
	Bio                *string
	FavoriteGenres     map[string]float64
	EmailNotifications *bool
}

// AuthRepository provides authentication and account operations.
type AuthRepository interface {
	// Login exchanges credentials for a profile and token pair.
	// Invalid credentials surface as a *ValidationError or ErrAuthFailed.
	Login(ctx context.Context, email, password string) (*LoginResult, error)

	// Register creates a new account.
	Register(ctx context.Context, reg Registration) (*Profile, error)

	// Logout invalidates the refresh token server-side.
	Logout(ctx context.Context, refreshToken string) error

	// Refresh exchanges a refresh token for a new access token.
	Refresh(ctx context.Context, refreshToken string) (string, error)

	// Profile returns the current user's profile.
	Profile(ctx context.Context) (*Profile, error)

	// UpdateProfile applies a partial edit and returns the updated profile.
	UpdateProfile(ctx context.Context, update ProfileUpdate) (*Profile, error)
}

// CatalogRepository provides the paginated, searchable movie listing.
type CatalogRepository interface {
	// Movies returns one page of the listing. An empty query lists the
	// whole catalog in server order.
	Movies(ctx context.Context, page int, query string) (*CatalogPage, error)

	// Movie returns full detail for a single movie.
	Movie(ctx context.Context, movieID int64) (*Movie, error)
}

// WatchlistRepository provides the user's saved-movie set.
type WatchlistRepository interface {
	// List returns the authoritative full snapshot.
	List(ctx context.Context) (*WatchlistSnapshot, error)

	// Add saves a movie and returns the canonical entry to insert.
	Add(ctx context.Context, movieID int64) (*WatchlistEntry, error)

	// Remove deletes a movie from the watchlist.
	Remove(ctx context.Context, movieID int64) error
}

// RatingsRepository provides per-user and aggregate movie ratings.
type RatingsRepository interface {
	// Rate creates or replaces the current user's rating.
	Rate(ctx context.Context, movieID int64, score int, comment string) (*Rating, error)

	// OwnRating returns the current user's rating, or ErrNotFound when
	// the movie has not been rated yet.
	OwnRating(ctx context.Context, movieID int64) (*Rating, error)

	// Summary returns the aggregate rating for a movie.
	Summary(ctx context.Context, movieID int64) (*RatingSummary, error)
}

// RecommendationsRepository provides the server-computed recommendation set.
type RecommendationsRepository interface {
	Recommendations(ctx context.Context, limit int) (*RecommendationSet, error)
}
