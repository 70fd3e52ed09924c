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

// PageSize returns the page size requested from the listing endpoint.
// The catalog store's continuation arithmetic must use the same value.
func (c *Client) PageSize() int { return c.pageSize }

// Movies returns one page of the movie listing, optionally filtered by a
// text query. Server ordering is preserved as-is.
func (c *Client) Movies(ctx context.Context, page int, query string) (*domain.CatalogPage, error) {
	params := url.Values{}
	params.Set("page", strconv.Itoa(page))
	params.Set("page_size", strconv.Itoa(c.pageSize))
	if query != "" {
		params.Set("q", query)
	}

	body, err := c.doRequest(ctx, http.MethodGet, "/api/movies/", params, nil, true)
	if err != nil {
		return nil, err
	}

	var dto moviePageDTO
	if err := json.Unmarshal(body, &dto); err != nil {
		return nil, fmt.Errorf("failed to parse movie page: %w", err)
	}

	return &domain.CatalogPage{
		Results: mapMovies(dto.Results),
		Count:   dto.Count,
		Next:    dto.Next != nil,
	}, nil
}

// Movie returns full detail for a single movie.
func (c *Client) Movie(ctx context.Context, movieID int64) (*domain.Movie, error) {
	path := fmt.Sprintf("/api/movies/%d/", movieID)
	body, err := c.doRequest(ctx, http.MethodGet, path, nil, nil, true)
	if err != nil {
		return nil, err
	}

	var dto movieDTO
	if err := json.Unmarshal(body, &dto); err != nil {
		return nil, fmt.Errorf("failed to parse movie detail: %w", err)
	}

	movie := mapMovie(dto)
	return &movie, nil
}
