package productboard

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestRestClient(srv *httptest.Server, attempts int) *restClient {
	return &restClient{
		baseURL:       srv.URL,
		token:         "pb-test-token",
		httpc:         srv.Client(),
		logger:        testLogger(),
		retryAttempts: attempts,
		retryBase:     time.Millisecond,
	}
}

func TestDoSetsAuthHeaders(t *testing.T) {
	var gotAuth, gotVersion string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotVersion = r.Header.Get("X-Version")
		_, _ = w.Write([]byte(`{"data": []}`))
	}))
	defer srv.Close()

	c := newTestRestClient(srv, 1)
	if _, err := c.get(context.Background(), "/features"); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	if gotAuth != "Bearer pb-test-token" {
		t.Errorf("Expected bearer auth header, got %q", gotAuth)
	}
	if gotVersion != "1" {
		t.Errorf("Expected X-Version header, got %q", gotVersion)
	}
}

func TestDoUpstreamError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"errors": [{"detail": "feature not found"}]}`))
	}))
	defer srv.Close()

	c := newTestRestClient(srv, 1)
	_, err := c.get(context.Background(), "/features/missing")

	var upstream *UpstreamError
	if !errors.As(err, &upstream) {
		t.Fatalf("Expected UpstreamError, got %v", err)
	}
	if upstream.StatusCode != http.StatusNotFound {
		t.Errorf("Expected status 404, got %d", upstream.StatusCode)
	}
	if !strings.Contains(upstream.Body, "feature not found") {
		t.Errorf("Expected body excerpt, got %q", upstream.Body)
	}
}

func TestDoMalformedResponse(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"data": [`))
	}))
	defer srv.Close()

	c := newTestRestClient(srv, 1)
	_, err := c.get(context.Background(), "/features")

	var malformed *MalformedResponseError
	if !errors.As(err, &malformed) {
		t.Fatalf("Expected MalformedResponseError, got %v", err)
	}
}

func TestGetRetriesServerErrors(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) < 3 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		_, _ = w.Write([]byte(`{"data": [{"id": "f1"}]}`))
	}))
	defer srv.Close()

	c := newTestRestClient(srv, 3)
	body, err := c.get(context.Background(), "/features")
	if err != nil {
		t.Fatalf("Expected recovery within the retry budget, got %v", err)
	}
	if calls.Load() != 3 {
		t.Errorf("Expected 3 attempts, got %d", calls.Load())
	}
	if len(pageRecords(body)) != 1 {
		t.Errorf("Expected one record in the recovered page")
	}
}

func TestGetRetriesNonRetryableStatusToo(t *testing.T) {
	// The retry policy is deliberately blunt: a 404 burns all attempts
	// just like a 503 would.
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	c := newTestRestClient(srv, 3)
	_, err := c.get(context.Background(), "/features/missing")
	if err == nil {
		t.Fatal("Expected an error")
	}
	if calls.Load() != 3 {
		t.Errorf("Expected 3 attempts, got %d", calls.Load())
	}
}

func TestDoObserverReceivesRequests(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"data": []}`))
	}))
	defer srv.Close()

	var observedMethod, observedEndpoint string
	var observedStatus int
	c := newTestRestClient(srv, 1)
	c.observe = func(method, endpoint string, status int, duration time.Duration) {
		observedMethod = method
		observedEndpoint = endpoint
		observedStatus = status
	}

	if _, err := c.get(context.Background(), "/features"); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if observedMethod != http.MethodGet || observedEndpoint != "/features" || observedStatus != 200 {
		t.Errorf("Unexpected observation: %s %s %d", observedMethod, observedEndpoint, observedStatus)
	}
}

func TestResolveURL(t *testing.T) {
	c := &restClient{baseURL: "https://api.productboard.com"}

	if got := c.resolveURL("/features"); got != "https://api.productboard.com/features" {
		t.Errorf("Expected base-joined URL, got %q", got)
	}
	absolute := "https://api.productboard.com/features?pageCursor=abc"
	if got := c.resolveURL(absolute); got != absolute {
		t.Errorf("Expected absolute URL verbatim, got %q", got)
	}
}
