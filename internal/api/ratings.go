package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/GoncaloNogueira1/filmhub/internal/domain"
)

// Rate creates or replaces the current user's rating for a movie.
func (c *Client) Rate(ctx context.Context, movieID int64, score int, comment string) (*domain.Rating, error) {
	path := fmt.Sprintf("/api/movies/%d/rate/", movieID)
	body, err := c.doRequest(ctx, http.MethodPost, path, nil, rateRequest{Score: score, Comment: comment}, true)
	if err != nil {
		return nil, err
	}

	var dto ratingDTO
	if err := json.Unmarshal(body, &dto); err != nil {
		return nil, fmt.Errorf("failed to parse rating response: %w", err)
	}

	rating := mapRating(movieID, dto)
	return &rating, nil
}

// OwnRating returns the current user's rating for a movie. A movie the
// user has not rated yet surfaces as ErrNotFound; the service layer
// treats that as a normal empty result.
func (c *Client) OwnRating(ctx context.Context, movieID int64) (*domain.Rating, error) {
	path := fmt.Sprintf("/api/movies/%d/my-rating/", movieID)
	body, err := c.doRequest(ctx, http.MethodGet, path, nil, nil, true)
	if err != nil {
		return nil, err
	}

	var dto ratingDTO
	if err := json.Unmarshal(body, &dto); err != nil {
		return nil, fmt.Errorf("failed to parse rating response: %w", err)
	}

	rating := mapRating(movieID, dto)
	return &rating, nil
}

// Summary returns the aggregate rating for a movie.
func (c *Client) Summary(ctx context.Context, movieID int64) (*domain.RatingSummary, error) {
	path := fmt.Sprintf("/api/movies/%d/rating/", movieID)
	body, err := c.doRequest(ctx, http.MethodGet, path, nil, nil, true)
	if err != nil {
		return nil, err
	}

	var dto ratingAggregateDTO
	if err := json.Unmarshal(body, &dto); err != nil {
		return nil, fmt.Errorf("failed to parse rating aggregate: %w", err)
	}

	return &domain.RatingSummary{
		MovieID: dto.MovieID,
		Average: dto.AverageScore,
		Count:   dto.RatingsCount,
	}, nil
}
