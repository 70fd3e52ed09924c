package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/GoncaloNogueira1/filmhub/internal/domain"
)

const (
	defaultTimeout = 30 * time.Second
	userAgent      = "Filmhub/1.0"

	// Listing page size bounds. The backend caps page_size at 100 and
	// falls back to 20 when the parameter is absent.
	defaultPageSize = 20
	maxPageSize     = 100
)

// TokenSource supplies the credentials attached to authenticated requests.
// The session store satisfies this; the client reads it but only writes
// back through UpdateToken after a successful refresh exchange.
type TokenSource interface {
	AccessToken() string
	RefreshToken() string
	UpdateToken(access string)
}

// Client implements domain.AuthRepository, domain.CatalogRepository,
// domain.WatchlistRepository, domain.RatingsRepository and
// domain.RecommendationsRepository against the filmhub REST backend.
type Client struct {
	baseURL    string
	httpClient *http.Client
	tokens     TokenSource
	logger     *slog.Logger
	pageSize   int

	// Serializes refresh exchanges so concurrent 401s don't race
	refreshMu sync.Mutex
}

// NewClient creates a new filmhub API client. pageSize is the listing
// page size requested from the backend; values outside the backend's
// accepted range are clamped so the reported PageSize always matches
// what the server actually returns.
func NewClient(baseURL string, pageSize int, tokens TokenSource, logger *slog.Logger) *Client {
	if logger == nil {
		logger = slog.Default()
	}
	if pageSize <= 0 {
		pageSize = defaultPageSize
	}
	if pageSize > maxPageSize {
		pageSize = maxPageSize
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: defaultTimeout,
		},
		tokens:   tokens,
		logger:   logger,
		pageSize: pageSize,
	}
}

// doRequest performs a request against the backend. Authenticated requests
// carry the bearer token; on 401 the client attempts one refresh exchange
// and retries the request before giving up with ErrAuthFailed.
func (c *Client) doRequest(ctx context.Context, method, path string, query url.Values, payload interface{}, authed bool) ([]byte, error) {
	if authed {
		// Refresh proactively when the access token is about to lapse,
		// saving the 401 round-trip.
		if tok := c.tokens.AccessToken(); tok != "" && expiringSoon(tok, refreshLeeway) {
			if err := c.refreshAccessToken(ctx); err != nil {
				c.logger.Debug("proactive token refresh failed", "error", err)
			}
		}
	}

	body, status, err := c.send(ctx, method, path, query, payload, authed)
	if err != nil {
		return nil, err
	}

	if status == http.StatusUnauthorized && authed {
		if err := c.refreshAccessToken(ctx); err != nil {
			return nil, domain.ErrAuthFailed
		}
		body, status, err = c.send(ctx, method, path, query, payload, authed)
		if err != nil {
			return nil, err
		}
	}

	if status >= http.StatusBadRequest {
		return nil, c.statusError(status, body)
	}

	return body, nil
}

// send performs a single HTTP exchange and returns the raw body and status.
func (c *Client) send(ctx context.Context, method, path string, query url.Values, payload interface{}, authed bool) ([]byte, int, error) {
	reqURL := c.baseURL + path
	if query != nil {
		reqURL = fmt.Sprintf("%s?%s", reqURL, query.Encode())
	}

	var reqBody io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to encode request: %w", err)
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, reqURL, reqBody)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", userAgent)
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if authed {
		if tok := c.tokens.AccessToken(); tok != "" {
			req.Header.Set("Authorization", "Bearer "+tok)
		}
	}

	c.logger.Debug("api request", "method", method, "url", reqURL)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Error("api request failed", "error", err)
		return nil, 0, domain.ErrServerOffline
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to read response: %w", err)
	}

	return body, resp.StatusCode, nil
}

// refreshAccessToken exchanges the refresh token for a new access token
// and pushes it back into the token source.
func (c *Client) refreshAccessToken(ctx context.Context) error {
	c.refreshMu.Lock()
	defer c.refreshMu.Unlock()

	refresh := c.tokens.RefreshToken()
	if refresh == "" {
		return domain.ErrAuthFailed
	}

	body, status, err := c.send(ctx, http.MethodPost, "/api/auth/refresh/", nil, refreshRequest{Refresh: refresh}, false)
	if err != nil {
		return err
	}
	if status != http.StatusOK {
		c.logger.Warn("token refresh rejected", "status", status)
		return domain.ErrAuthFailed
	}

	var dto refreshResponse
	if err := json.Unmarshal(body, &dto); err != nil {
		return fmt.Errorf("failed to parse refresh response: %w", err)
	}
	if dto.Access == "" {
		return domain.ErrAuthFailed
	}

	c.tokens.UpdateToken(dto.Access)
	c.logger.Debug("access token refreshed")
	return nil
}

// statusError maps an error response onto the domain error taxonomy.
func (c *Client) statusError(status int, body []byte) error {
	switch status {
	case http.StatusNotFound:
		return domain.ErrNotFound
	case http.StatusUnauthorized:
		return domain.ErrAuthFailed
	case http.StatusBadRequest:
		if fields := parseFieldErrors(body); len(fields) > 0 {
			return &domain.ValidationError{Fields: fields}
		}
		return fmt.Errorf("bad request: %s", strings.TrimSpace(string(body)))
	default:
		c.logger.Error("api request error", "status", status, "body", string(body))
		return fmt.Errorf("unexpected status code: %d", status)
	}
}

// parseFieldErrors decodes DRF-style field errors: values may be a list
// of messages or a single string.
func parseFieldErrors(body []byte) map[string][]string {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(body, &raw); err != nil || len(raw) == 0 {
		return nil
	}

	fields := make(map[string][]string, len(raw))
	for name, val := range raw {
		var list []string
		if err := json.Unmarshal(val, &list); err == nil {
			fields[name] = list
			continue
		}
		var single string
		if err := json.Unmarshal(val, &single); err == nil {
			fields[name] = []string{single}
		}
	}
	if len(fields) == 0 {
		return nil
	}
	return fields
}
