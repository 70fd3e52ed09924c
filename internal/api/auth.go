package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/GoncaloNogueira1/filmhub/internal/domain"
)

// Login exchanges credentials for a profile and token pair.
func (c *Client) Login(ctx context.Context, email, password string) (*domain.LoginResult, error) {
	body, err := c.doRequest(ctx, http.MethodPost, "/api/auth/login/", nil, loginRequest{Email: email, Password: password}, false)
	if err != nil {
		return nil, err
	}

	var dto loginResponse
	if err := json.Unmarshal(body, &dto); err != nil {
		return nil, fmt.Errorf("failed to parse login response: %w", err)
	}

	return &domain.LoginResult{
		Profile: mapProfile(dto.User),
		Tokens: domain.Tokens{
			Access:  dto.Tokens.Access,
			Refresh: dto.Tokens.Refresh,
		},
	}, nil
}

// Register creates a new account.
func (c *Client) Register(ctx context.Context, reg domain.Registration) (*domain.Profile, error) {
	body, err := c.doRequest(ctx, http.MethodPost, "/api/auth/register/", nil, registerRequest{
		Email:    reg.Email,
		Password: reg.Password,
		Age:      reg.Age,
	}, false)
	if err != nil {
		return nil, err
	}

	var dto registerResponse
	if err := json.Unmarshal(body, &dto); err != nil {
		return nil, fmt.Errorf("failed to parse register response: %w", err)
	}

	profile := mapProfile(dto.User)
	return &profile, nil
}

// Logout invalidates the refresh token server-side.
func (c *Client) Logout(ctx context.Context, refreshToken string) error {
	_, err := c.doRequest(ctx, http.MethodPost, "/api/auth/logout/", nil, logoutRequest{Refresh: refreshToken}, true)
	return err
}

// Refresh exchanges a refresh token for a new access token. Exposed for
// callers outside the transparent retry path.
func (c *Client) Refresh(ctx context.Context, refreshToken string) (string, error) {
	body, status, err := c.send(ctx, http.MethodPost, "/api/auth/refresh/", nil, refreshRequest{Refresh: refreshToken}, false)
	if err != nil {
		return "", err
	}
	if status != http.StatusOK {
		return "", domain.ErrAuthFailed
	}

	var dto refreshResponse
	if err := json.Unmarshal(body, &dto); err != nil {
		return "", fmt.Errorf("failed to parse refresh response: %w", err)
	}
	if dto.Access == "" {
		return "", domain.ErrAuthFailed
	}
	return dto.Access, nil
}

// Profile returns the current user's profile.
func (c *Client) Profile(ctx context.Context) (*domain.Profile, error) {
	body, err := c.doRequest(ctx, http.MethodGet, "/api/auth/profile/", nil, nil, true)
	if err != nil {
		return nil, err
	}

	var dto profileDTO
	if err := json.Unmarshal(body, &dto); err != nil {
		return nil, fmt.Errorf("failed to parse profile response: %w", err)
	}

	profile := mapProfile(dto)
	return &profile, nil
}

// UpdateProfile applies a partial edit and returns the updated profile.
func (c *Client) UpdateProfile(ctx context.Context, update domain.ProfileUpdate) (*domain.Profile, error) {
	// Only populated fields go on the wire: PATCH semantics.
	payload := map[string]interface{}{}
	if update.FirstName != nil {
		payload["first_name"] = *update.FirstName
	}
	if update.LastName != nil {
		payload["last_name"] = *update.LastName
	}
	if update.Age != nil {
		payload["age"] = *update.Age
	}
	if update.Bio != nil {
		payload["bio"] = *update.Bio
	}
	if update.FavoriteGenres != nil {
		payload["favorite_genres"] = update.FavoriteGenres
	}
	if update.EmailNotifications != nil {
		payload["email_notifications"] = *update.EmailNotifications
	}

	body, err := c.doRequest(ctx, http.MethodPatch, "/api/auth/profile/", nil, payload, true)
	if err != nil {
		return nil, err
	}

	var dto profileUpdateResponse
	if err := json.Unmarshal(body, &dto); err != nil {
		return nil, fmt.Errorf("failed to parse profile update response: %w", err)
	}

	profile := mapProfile(dto.Profile)
	return &profile, nil
}
