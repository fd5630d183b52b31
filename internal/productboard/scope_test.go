package productboard

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newScopeTestClient(srv *httptest.Server, productName string) *client {
	return &client{
		rest:               newTestRestClient(srv, 1),
		scope:              &scopeCache{},
		defaultProductName: productName,
	}
}

func productListHandler(calls *atomic.Int32, products ...Record) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		_ = json.NewEncoder(w).Encode(map[string]any{"data": products})
	}
}

func TestDefaultProductIDCachesHit(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(productListHandler(&calls,
		Record{"id": "p1", "name": "Platform"},
		Record{"id": "p2", "name": "Mobile"},
	))
	defer srv.Close()

	c := newScopeTestClient(srv, "Platform")

	for i := 0; i < 3; i++ {
		id, err := c.DefaultProductID(context.Background())
		require.NoError(t, err)
		assert.Equal(t, "p1", id)
	}
	assert.Equal(t, int32(1), calls.Load(), "expected a single API lookup")
}

func TestDefaultProductIDMatchIsCaseInsensitive(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(productListHandler(&calls, Record{"id": "p1", "name": "PLATFORM"}))
	defer srv.Close()

	c := newScopeTestClient(srv, "platform")
	id, err := c.DefaultProductID(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "p1", id)
}

func TestDefaultProductIDMissNotCached(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(productListHandler(&calls, Record{"id": "p2", "name": "Mobile"}))
	defer srv.Close()

	c := newScopeTestClient(srv, "Platform")

	for i := 0; i < 2; i++ {
		_, err := c.DefaultProductID(context.Background())
		var scopeMiss *ScopeNotFoundError
		require.ErrorAs(t, err, &scopeMiss)
		assert.Equal(t, "Platform", scopeMiss.Name)
	}
	// Each failed resolution retries the API: misses are never cached.
	assert.Equal(t, int32(2), calls.Load())
}

func TestInvalidateDefaultProductForcesRefetch(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(productListHandler(&calls, Record{"id": "p1", "name": "Platform"}))
	defer srv.Close()

	c := newScopeTestClient(srv, "Platform")

	_, err := c.DefaultProductID(context.Background())
	require.NoError(t, err)
	c.InvalidateDefaultProduct()
	_, err = c.DefaultProductID(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int32(2), calls.Load(), "invalidation should force a fresh lookup")
}

func TestDefaultProductIDConcurrentResolution(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(productListHandler(&calls, Record{"id": "p1", "name": "Platform"}))
	defer srv.Close()

	c := newScopeTestClient(srv, "Platform")

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			id, err := c.DefaultProductID(context.Background())
			if err != nil {
				t.Errorf("Unexpected error: %v", err)
				return
			}
			if id != "p1" {
				t.Errorf("Expected p1, got %q", id)
			}
		}()
	}
	wg.Wait()

	// Racing resolvers may each hit the API, but never more often than
	// there are callers, and the cached value stays consistent.
	assert.GreaterOrEqual(t, calls.Load(), int32(1))
	assert.LessOrEqual(t, calls.Load(), int32(10))
	id, ok := c.scope.get()
	require.True(t, ok, "expected a cached id after resolution")
	assert.Equal(t, "p1", id)
}
