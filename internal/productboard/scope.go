package productboard

import (
	"context"
	"strings"
	"sync"
)

// scopeCache memoizes the id of the workspace's default product. The id
// is resolved at most once per process lifetime on the happy path; a
// failed lookup is never cached, so a later call retries it.
//
// Two callers racing before the first resolution completes may both issue
// the lookup. Both writes carry the same upstream id, so the overwrite is
// idempotent and no extra coordination is needed beyond the mutex guarding
// the field itself.
type scopeCache struct {
	mu sync.RWMutex
	id string
}

func (s *scopeCache) get() (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.id, s.id != ""
}

func (s *scopeCache) set(id string) {
	s.mu.Lock()
	s.id = id
	s.mu.Unlock()
}

// Invalidate clears the cached id, forcing the next lookup to hit the API.
func (s *scopeCache) Invalidate() {
	s.mu.Lock()
	s.id = ""
	s.mu.Unlock()
}

// DefaultProductID returns the id of the configured default product,
// resolving and caching it on first use. The product list is a single
// page; workspaces hold a handful of products at most.
func (c *client) DefaultProductID(ctx context.Context) (string, error) {
	if id, ok := c.scope.get(); ok {
		return id, nil
	}

	body, err := c.rest.get(ctx, "/products")
	if err != nil {
		return "", err
	}
	for _, record := range pageRecords(body) {
		name, _ := record["name"].(string)
		if strings.EqualFold(name, c.defaultProductName) {
			id, _ := record["id"].(string)
			if id != "" {
				c.scope.set(id)
				return id, nil
			}
		}
	}
	return "", &ScopeNotFoundError{Name: c.defaultProductName}
}

// InvalidateDefaultProduct clears the cached default product id.
func (c *client) InvalidateDefaultProduct() {
	c.scope.Invalidate()
}
