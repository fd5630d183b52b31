package productboard

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/stackline/mcp-productboard/internal/logging"
)

// RequestObserver receives one callback per completed HTTP request and is
// used to feed instrumentation without coupling this package to it.
// status is 0 when the request failed at the transport level.
type RequestObserver func(method, endpoint string, status int, duration time.Duration)

// restClient issues authenticated requests against the Productboard API.
// It is stateless across calls apart from the credential and base URL.
type restClient struct {
	baseURL string
	token   string
	httpc   *http.Client
	logger  *slog.Logger
	observe RequestObserver

	retryAttempts int
	retryBase     time.Duration
}

// resolveURL joins a relative path with the base URL. Absolute URLs
// (server-provided next links) pass through verbatim.
func (c *restClient) resolveURL(pathOrURL string) string {
	if strings.HasPrefix(pathOrURL, "http://") || strings.HasPrefix(pathOrURL, "https://") {
		return pathOrURL
	}
	return c.baseURL + pathOrURL
}

// do executes a single request attempt and decodes the JSON response.
// Non-2xx responses produce an UpstreamError carrying the status and a
// body excerpt. Undecodable bodies produce a MalformedResponseError.
func (c *restClient) do(ctx context.Context, method, pathOrURL string, body any) (map[string]any, error) {
	var reqBody io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return nil, err
		}
		reqBody = bytes.NewReader(encoded)
	}

	u := c.resolveURL(pathOrURL)
	req, err := http.NewRequestWithContext(ctx, method, u, reqBody)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("X-Version", apiVersion)
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	start := time.Now()
	resp, err := c.httpc.Do(req)
	duration := time.Since(start)
	if err != nil {
		c.record(method, pathOrURL, 0, duration)
		c.logger.Debug("productboard request failed",
			slog.String("method", method),
			logging.Endpoint(pathOrURL),
			logging.Err(err))
		return nil, err
	}
	defer func() { _ = resp.Body.Close() }()

	c.record(method, pathOrURL, resp.StatusCode, duration)
	c.logger.Debug("productboard request completed",
		slog.String("method", method),
		logging.Endpoint(pathOrURL),
		slog.Int("status", resp.StatusCode),
		slog.Duration(logging.KeyDuration, duration))

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &UpstreamError{
			StatusCode: resp.StatusCode,
			Body:       bodyExcerpt(resp.Body),
		}
	}

	if resp.StatusCode == http.StatusNoContent {
		return nil, nil
	}

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &MalformedResponseError{Cause: err}
	}
	if len(bytes.TrimSpace(raw)) == 0 {
		return nil, nil
	}

	var decoded map[string]any
	if err := json.Unmarshal(raw, &decoded); err != nil {
		return nil, &MalformedResponseError{Cause: err}
	}
	return decoded, nil
}

// get fetches a single page with the configured retry policy applied.
func (c *restClient) get(ctx context.Context, pathOrURL string) (map[string]any, error) {
	return withRetry(ctx, c.retryAttempts, c.retryBase, func(ctx context.Context) (map[string]any, error) {
		return c.do(ctx, http.MethodGet, pathOrURL, nil)
	})
}

func (c *restClient) post(ctx context.Context, path string, body any) (map[string]any, error) {
	return c.do(ctx, http.MethodPost, path, body)
}

func (c *restClient) put(ctx context.Context, path string, body any) (map[string]any, error) {
	return c.do(ctx, http.MethodPut, path, body)
}

func (c *restClient) record(method, endpoint string, status int, duration time.Duration) {
	if c.observe != nil {
		c.observe(method, endpoint, status, duration)
	}
}

// bodyExcerpt reads up to maxBodyExcerpt bytes of an error response body.
// Returns an empty string when the body cannot be read.
func bodyExcerpt(r io.Reader) string {
	raw, err := io.ReadAll(io.LimitReader(r, maxBodyExcerpt))
	if err != nil {
		return ""
	}
	return strings.TrimSpace(string(raw))
}
