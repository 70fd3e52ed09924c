package api

import "time"

// Wire types for the filmhub REST API (DRF snake_case JSON).

type movieDTO struct {
	ID          int64    `json:"id"`
	TMDBID      int64    `json:"tmdb_id"`
	Title       string   `json:"title"`
	Overview    string   `json:"overview"`
	ReleaseYear int      `json:"release_year"`
	PosterURL   string   `json:"poster_url"`
	BackdropURL string   `json:"backdrop_url"`
	Genres      []string `json:"genres"`
	VoteAverage float64  `json:"vote_average"`
	Popularity  float64  `json:"popularity"`
	RatingCount int      `json:"rating_count"`
}

type moviePageDTO struct {
	Count    int        `json:"count"`
	Next     *string    `json:"next"`
	Previous *string    `json:"previous"`
	Results  []movieDTO `json:"results"`
}

type profileDTO struct {
	ID                 int64              `json:"id"`
	Email              string             `json:"email"`
	Username           string             `json:"username"`
	FirstName          string             `json:"first_name"`
	LastName           string             `json:"last_name"`
	Age                int                `json:"age"`
	Bio                string             `json:"bio"`
	FavoriteGenres     map[string]float64 `json:"favorite_genres"`
	EmailNotifications bool               `json:"email_notifications"`
}

type tokensDTO struct {
	Access  string `json:"access"`
	Refresh string `json:"refresh"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginResponse struct {
	User   profileDTO `json:"user"`
	Tokens tokensDTO  `json:"tokens"`
}

type registerRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Age      int    `json:"age,omitempty"`
}

type registerResponse struct {
	Message string     `json:"message"`
	User    profileDTO `json:"user"`
}

type logoutRequest struct {
	Refresh string `json:"refresh"`
}

type refreshRequest struct {
	Refresh string `json:"refresh"`
}

type refreshResponse struct {
	Access string `json:"access"`
}

type profileUpdateResponse struct {
	Message string     `json:"message"`
	Profile profileDTO `json:"profile"`
}

type watchlistEntryDTO struct {
	ID      int64     `json:"id"`
	Movie   movieDTO  `json:"movie"`
	AddedAt time.Time `json:"added_at"`
}

type watchlistListResponse struct {
	Watchlist []watchlistEntryDTO `json:"watchlist"`
	Count     int                 `json:"count"`
}

type watchlistAddRequest struct {
	MovieID int64 `json:"movie_id"`
}

type watchlistAddResponse struct {
	Message       string            `json:"message"`
	WatchlistItem watchlistEntryDTO `json:"watchlist_item"`
}

type rateRequest struct {
	Score   int    `json:"score"`
	Comment string `json:"comment,omitempty"`
}

type ratingDTO struct {
	ID        int64     `json:"id"`
	Score     int       `json:"score"`
	Comment   string    `json:"comment"`
	UpdatedAt time.Time `json:"updated_at"`
}

type ratingAggregateDTO struct {
	MovieID      int64   `json:"movie_id"`
	AverageScore float64 `json:"average_score"`
	RatingsCount int     `json:"ratings_count"`
}

type recommendationsResponse struct {
	Recommendations  []movieDTO `json:"recommendations"`
	Strategy         string     `json:"strategy"`
	Count            int        `json:"count"`
	UserRatingsCount int        `json:"user_ratings_count"`
}
