package service

import (
	"context"
	"log/slog"

	"github.com/GoncaloNogueira1/filmhub/internal/domain"
)

// DefaultRecommendationLimit bounds how many movies one request asks for.
const DefaultRecommendationLimit = 20

// RecommendationsService fetches the server-computed recommendation set.
// The selection strategy lives entirely on the backend; the client only
// displays whatever strategy label the server reports.
type RecommendationsService struct {
	recs   domain.RecommendationsRepository
	logger *slog.Logger
}

// NewRecommendationsService creates a new recommendations service
func NewRecommendationsService(recs domain.RecommendationsRepository, logger *slog.Logger) *RecommendationsService {
	if logger == nil {
		logger = slog.Default()
	}
	return &RecommendationsService{recs: recs, logger: logger}
}

// Recommendations returns up to limit recommended movies. A limit of zero
// or less falls back to the default.
func (s *RecommendationsService) Recommendations(ctx context.Context, limit int) (*domain.RecommendationSet, error) {
	if limit <= 0 {
		limit = DefaultRecommendationLimit
	}

	set, err := s.recs.Recommendations(ctx, limit)
	if err != nil {
		s.logger.Error("failed to fetch recommendations", "error", err, "limit", limit)
		return nil, err
	}

	s.logger.Info("recommendations fetched", "strategy", set.Strategy, "count", set.Count)
	return set, nil
}
