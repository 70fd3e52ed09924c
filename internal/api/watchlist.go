package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/GoncaloNogueira1/filmhub/internal/domain"
)

// List returns the authoritative watchlist snapshot.
func (c *Client) List(ctx context.Context) (*domain.WatchlistSnapshot, error) {
	body, err := c.doRequest(ctx, http.MethodGet, "/api/watchlist/", nil, nil, true)
	if err != nil {
		return nil, err
	}

	var dto watchlistListResponse
	if err := json.Unmarshal(body, &dto); err != nil {
		return nil, fmt.Errorf("failed to parse watchlist: %w", err)
	}

	return &domain.WatchlistSnapshot{
		Entries: mapWatchlistEntries(dto.Watchlist),
		Count:   dto.Count,
	}, nil
}

// Add saves a movie to the watchlist and returns the canonical entry.
// The server treats an already-saved movie as success, returning the
// existing entry.
func (c *Client) Add(ctx context.Context, movieID int64) (*domain.WatchlistEntry, error) {
	body, err := c.doRequest(ctx, http.MethodPost, "/api/watchlist/", nil, watchlistAddRequest{MovieID: movieID}, true)
	if err != nil {
		return nil, err
	}

	var dto watchlistAddResponse
	if err := json.Unmarshal(body, &dto); err != nil {
		return nil, fmt.Errorf("failed to parse watchlist add response: %w", err)
	}

	entry := mapWatchlistEntry(dto.WatchlistItem)
	return &entry, nil
}

// Remove deletes a movie from the watchlist.
func (c *Client) Remove(ctx context.Context, movieID int64) error {
	path := fmt.Sprintf("/api/watchlist/%d/", movieID)
	_, err := c.doRequest(ctx, http.MethodDelete, path, nil, nil, true)
	return err
}
