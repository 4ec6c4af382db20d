package views

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/jon4hz/crudnote/internal/apperror"
	"github.com/jon4hz/crudnote/internal/version"
)

// HTTPLoader fetches fragments from <baseURL>/views/<name>.html.
type HTTPLoader struct {
	baseURL string
	client  *http.Client
}

// NewHTTPLoader creates a loader fetching fragments below baseURL.
func NewHTTPLoader(baseURL string, timeout time.Duration) *HTTPLoader {
	return &HTTPLoader{
		baseURL: baseURL,
		client: &http.Client{
			Timeout: timeout,
		},
	}
}

func (l *HTTPLoader) Load(ctx context.Context, name string) (string, error) {
	if err := checkName(name); err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, l.baseURL+"/"+fragmentPath(name), nil)
	if err != nil {
		return "", fmt.Errorf("%w: failed to create request: %w", apperror.ErrFragmentUnavailable, err)
	}
	req.Header.Set("Accept", "text/html")
	req.Header.Set("User-Agent", fmt.Sprintf("CrudNote/%s", version.Version))

	resp, err := l.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: failed to execute request: %w", apperror.ErrFragmentUnavailable, err)
	}
	defer resp.Body.Close() //nolint:errcheck

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", fmt.Errorf("%w: could not load view %s: status %d", apperror.ErrFragmentUnavailable, name, resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("%w: failed to read response body: %w", apperror.ErrFragmentUnavailable, err)
	}
	return string(body), nil
}
