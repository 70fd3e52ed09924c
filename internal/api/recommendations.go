package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/GoncaloNogueira1/filmhub/internal/domain"
)

// Recommendations returns the server-computed recommendation set. The
// ranking is entirely server-side; the client treats it as opaque.
func (c *Client) Recommendations(ctx context.Context, limit int) (*domain.RecommendationSet, error) {
	params := url.Values{}
	if limit > 0 {
		params.Set("limit", strconv.Itoa(limit))
	}

	body, err := c.doRequest(ctx, http.MethodGet, "/api/recommendations/", params, nil, true)
	if err != nil {
		return nil, err
	}

	var dto recommendationsResponse
	if err := json.Unmarshal(body, &dto); err != nil {
		return nil, fmt.Errorf("failed to parse recommendations: %w", err)
	}

	return &domain.RecommendationSet{
		Movies:           mapMovies(dto.Recommendations),
		Strategy:         dto.Strategy,
		Count:            dto.Count,
		UserRatingsCount: dto.UserRatingsCount,
	}, nil
}
