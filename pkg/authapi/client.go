package authapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// Client is a Go client for the auth service.
type Client struct {
	BaseURL    string
	HTTPClient *http.Client
}

// NewClient creates a client talking to the service at baseURL.
func NewClient(baseURL string) *Client {
	return &Client{
		BaseURL: strings.TrimSuffix(baseURL, "/"),
		HTTPClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// Login authenticates and returns the credential pair.
func (c *Client) Login(ctx context.Context, username, password string) (TokenResponse, error) {
	var out TokenResponse
	err := c.postJSON(ctx, "/api/login", "", LoginRequest{
		Username: username,
		Password: password,
	}, &out)
	return out, err
}

// Refresh exchanges a refresh credential for a fresh access credential.
// The refresh credential doubles as the bearer credential for the call.
func (c *Client) Refresh(ctx context.Context, refreshToken string) (TokenResponse, error) {
	var out TokenResponse
	err := c.postJSON(ctx, "/api/refresh-token", refreshToken, RefreshRequest{
		RefreshToken: refreshToken,
	}, &out)
	return out, err
}

// Logout revokes the refresh credential's session record.
func (c *Client) Logout(ctx context.Context, refreshToken string) error {
	return c.postJSON(ctx, "/api/logout", refreshToken, RefreshRequest{
		RefreshToken: refreshToken,
	}, nil)
}

// Signup registers a new user.
func (c *Client) Signup(ctx context.Context, req SignupRequest) (UserResponse, error) {
	var out UserResponse
	err := c.postJSON(ctx, "/api/signup", "", req, &out)
	return out, err
}

// Me returns the calling user's own record.
func (c *Client) Me(ctx context.Context, accessToken string) (UserResponse, error) {
	var out UserResponse
	err := c.getJSON(ctx, "/api/user", accessToken, &out)
	return out, err
}

// GetUser looks up another user by username. Requires an admin credential.
func (c *Client) GetUser(ctx context.Context, accessToken, username string) (UserResponse, error) {
	var out UserResponse
	err := c.getJSON(ctx, "/api/user/"+username, accessToken, &out)
	return out, err
}

func (c *Client) postJSON(ctx context.Context, path, bearer string, in, out any) error {
	body, err := json.Marshal(in)
	if err != nil {
		return fmt.Errorf("failed to encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.BaseURL+path, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if bearer != "" {
		req.Header.Set("Authorization", "Bearer "+bearer)
	}

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send request: %w", err)
	}
	return decodeJSON(resp, out, http.StatusOK)
}

func (c *Client) getJSON(ctx context.Context, path, bearer string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.BaseURL+path, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	if bearer != "" {
		req.Header.Set("Authorization", "Bearer "+bearer)
	}

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send request: %w", err)
	}
	return decodeJSON(resp, out, http.StatusOK)
}

// decodeJSON decodes a response into target, turning non-2xx responses
// into a typed *APIError.
func decodeJSON(resp *http.Response, target any, expectedStatus int) error {
	defer resp.Body.Close()

	if resp.StatusCode != expectedStatus {
		var errResp ErrorResponse
		raw, _ := io.ReadAll(resp.Body)
		if err := json.Unmarshal(raw, &errResp); err != nil || errResp.Error == "" {
			return &APIError{
				StatusCode:  resp.StatusCode,
				Code:        ErrorCodeServerError,
				Description: strings.TrimSpace(string(raw)),
			}
		}
		return &APIError{
			StatusCode:  resp.StatusCode,
			Code:        errResp.Error,
			Description: errResp.ErrorDescription,
		}
	}

	if target == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(target); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}
