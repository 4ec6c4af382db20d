package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/jon4hz/crudnote/internal/apperror"
	"github.com/jon4hz/crudnote/internal/config"
	"github.com/jon4hz/crudnote/internal/models"
	"github.com/jon4hz/crudnote/internal/version"
)

const usersPath = "/users"

// Client is a client for the REST backend holding the users collection.
type Client struct {
	baseURL string
	client  *http.Client
}

// New creates a new backend client.
func New(cfg *config.BackendConfig) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Client{
		baseURL: cfg.URL,
		client: &http.Client{
			Timeout: timeout,
		},
	}
}

// ListOptions restricts a users listing.
type ListOptions struct {
	// Limit caps the number of returned records (json-server _limit). 0 lists the full collection.
	Limit int
}

// ListUsers fetches the users collection.
func (c *Client) ListUsers(ctx context.Context, opts *ListOptions) ([]models.User, error) {
	u, err := url.Parse(c.baseURL + usersPath)
	if err != nil {
		return nil, fmt.Errorf("failed to parse URL: %w", err)
	}
	if opts != nil && opts.Limit > 0 {
		query := u.Query()
		query.Set("_limit", strconv.Itoa(opts.Limit))
		u.RawQuery = query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	body, err := c.do(req)
	if err != nil {
		return nil, err
	}

	var users []models.User
	if err := json.Unmarshal(body, &users); err != nil {
		return nil, fmt.Errorf("failed to unmarshal users: %w: %w", apperror.ErrBackendUnavailable, err)
	}
	return users, nil
}

// CreateUser submits a new user record and returns the record created by the backend.
func (c *Client) CreateUser(ctx context.Context, user *models.User) (*models.User, error) {
	jsonBody, err := json.Marshal(user)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request body: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+usersPath, bytes.NewBuffer(jsonBody))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	body, err := c.do(req)
	if err != nil {
		return nil, err
	}

	created := *user
	if len(bytes.TrimSpace(body)) > 0 {
		if err := json.Unmarshal(body, &created); err != nil {
			return nil, fmt.Errorf("failed to unmarshal created user: %w: %w", apperror.ErrBackendUnavailable, err)
		}
	}
	return &created, nil
}

// do executes req and returns the response body of a successful response.
// Every transport or status failure is an apperror.ErrBackendUnavailable.
func (c *Client) do(req *http.Request) ([]byte, error) {
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", fmt.Sprintf("CrudNote/%s", version.Version))

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to execute request: %w: %w", apperror.ErrBackendUnavailable, err)
	}
	defer resp.Body.Close() //nolint:errcheck

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w: %w", apperror.ErrBackendUnavailable, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("%w: %s %s failed with status %d: %s",
			apperror.ErrBackendUnavailable, req.Method, req.URL.Path, resp.StatusCode, string(body))
	}

	return body, nil
}
