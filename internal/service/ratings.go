package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/GoncaloNogueira1/filmhub/internal/domain"
)

// RatingsService orchestrates rating reads and writes against the backend.
type RatingsService struct {
	ratings domain.RatingsRepository
	logger  *slog.Logger
}

// NewRatingsService creates a new ratings service
func NewRatingsService(ratings domain.RatingsRepository, logger *slog.Logger) *RatingsService {
	if logger == nil {
		logger = slog.Default()
	}
	return &RatingsService{ratings: ratings, logger: logger}
}

// Rate submits the user's score for a movie, creating or replacing the
// previous rating server-side.
func (s *RatingsService) Rate(ctx context.Context, movieID int64, score int, comment string) (*domain.Rating, error) {
	if score < 1 || score > 5 {
		return nil, fmt.Errorf("score must be between 1 and 5, got %d", score)
	}

	rating, err := s.ratings.Rate(ctx, movieID, score, comment)
	if err != nil {
		s.logger.Error("failed to submit rating", "error", err, "movieID", movieID)
		return nil, err
	}

	s.logger.Info("rating submitted", "movieID", movieID, "score", score)
	return rating, nil
}

// OwnRating returns the user's rating for a movie, or nil when the movie
// has not been rated yet. An unrated movie is the normal case, not an
// error, so the not-found response is absorbed here.
func (s *RatingsService) OwnRating(ctx context.Context, movieID int64) (*domain.Rating, error) {
	rating, err := s.ratings.OwnRating(ctx, movieID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, nil
		}
		s.logger.Error("failed to fetch own rating", "error", err, "movieID", movieID)
		return nil, err
	}
	return rating, nil
}

// Summary returns the aggregate rating for a movie.
func (s *RatingsService) Summary(ctx context.Context, movieID int64) (*domain.RatingSummary, error) {
	summary, err := s.ratings.Summary(ctx, movieID)
	if err != nil {
		s.logger.Error("failed to fetch rating summary", "error", err, "movieID", movieID)
		return nil, err
	}
	return summary, nil
}
