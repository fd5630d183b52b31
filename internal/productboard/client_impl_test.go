package productboard

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// routedServer dispatches by path and records request details per route.
type routedRequest struct {
	Method string
	Query  url.Values
	Body   map[string]any
}

func newRoutedServer(t *testing.T, responses map[string]any) (*httptest.Server, *[]routedRequest) {
	t.Helper()
	var seen []routedRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var body map[string]any
		if raw, _ := io.ReadAll(r.Body); len(raw) > 0 {
			_ = json.Unmarshal(raw, &body)
		}
		seen = append(seen, routedRequest{Method: r.Method, Query: r.URL.Query(), Body: body})

		resp, ok := responses[r.URL.Path]
		if !ok {
			t.Errorf("Unexpected request for %s", r.URL.Path)
			w.WriteHeader(http.StatusNotFound)
			return
		}
		_ = json.NewEncoder(w).Encode(resp)
	}))
	return srv, &seen
}

func newTypedTestClient(srv *httptest.Server) *client {
	return &client{
		rest:               newTestRestClient(srv, 1),
		scope:              &scopeCache{},
		defaultProductName: "Platform",
	}
}

func TestListFeaturesResolvesDefaultProduct(t *testing.T) {
	srv, seen := newRoutedServer(t, map[string]any{
		"/products": map[string]any{"data": []Record{{"id": "p1", "name": "Platform"}}},
		"/features": map[string]any{"data": []Record{
			{"id": "f1", "name": "A", "parent": map[string]any{"product": map[string]any{"id": "p1"}}},
			{"id": "f2", "name": "B", "parent": map[string]any{"product": map[string]any{"id": "p2"}}},
		}},
	})
	defer srv.Close()
	c := newTypedTestClient(srv)

	result, err := c.ListFeatures(context.Background(), FeatureQuery{
		ListOptions: ListOptions{Limit: 10},
	})
	require.NoError(t, err)
	require.Len(t, result.Items, 1, "features should be scoped to the default product")
	assert.Equal(t, "f1", result.Items[0]["id"])
	assert.Len(t, *seen, 2, "expected products then features")
}

func TestListFeaturesScopeFailurePropagates(t *testing.T) {
	srv, _ := newRoutedServer(t, map[string]any{
		"/products": map[string]any{"data": []Record{{"id": "p2", "name": "Mobile"}}},
	})
	defer srv.Close()
	c := newTypedTestClient(srv)

	_, err := c.ListFeatures(context.Background(), FeatureQuery{})
	var scopeMiss *ScopeNotFoundError
	require.ErrorAs(t, err, &scopeMiss)
}

func TestListFeaturesServerSideFilters(t *testing.T) {
	srv, seen := newRoutedServer(t, map[string]any{
		"/features": map[string]any{"data": []Record{}},
	})
	defer srv.Close()
	c := newTypedTestClient(srv)

	archived := false
	_, err := c.ListFeatures(context.Background(), FeatureQuery{
		NoProductScope: true,
		OwnerEmail:     "pm@example.com",
		Archived:       &archived,
		StatusIDs:      []string{"s1"},
	})
	require.NoError(t, err)

	query := (*seen)[0].Query
	assert.Equal(t, "pm@example.com", query.Get("owner.email"))
	assert.Equal(t, "false", query.Get("archived"))
	assert.Equal(t, "s1", query.Get("status.id"))
}

func TestListFeaturesMultiStatusFiltersClientSide(t *testing.T) {
	srv, seen := newRoutedServer(t, map[string]any{
		"/features": map[string]any{"data": []Record{
			{"id": "f1", "status": map[string]any{"id": "s1", "name": "In progress"}},
			{"id": "f2", "status": map[string]any{"id": "s2", "name": "Done"}},
			{"id": "f3", "status": map[string]any{"id": "s3", "name": "Backlog"}},
		}},
	})
	defer srv.Close()
	c := newTypedTestClient(srv)

	result, err := c.ListFeatures(context.Background(), FeatureQuery{
		NoProductScope: true,
		StatusNames:    []string{"in progress", "DONE"},
	})
	require.NoError(t, err)
	assert.Len(t, result.Items, 2)
	// A multi-valued set cannot be expressed server-side.
	assert.Empty(t, (*seen)[0].Query.Get("status.name"))
}

func TestGetFeatureUnwrapsData(t *testing.T) {
	srv, _ := newRoutedServer(t, map[string]any{
		"/features/f1": map[string]any{"data": Record{"id": "f1", "name": "Dark mode"}},
	})
	defer srv.Close()
	c := newTypedTestClient(srv)

	record, err := c.GetFeature(context.Background(), "f1")
	require.NoError(t, err)
	assert.Equal(t, "Dark mode", record["name"])
}

func TestGetFeatureEmptyID(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	defer srv.Close()
	c := newTypedTestClient(srv)

	_, err := c.GetFeature(context.Background(), "")
	var validation *ValidationError
	require.ErrorAs(t, err, &validation)
}

func TestListReleasesStateFilter(t *testing.T) {
	srv, _ := newRoutedServer(t, map[string]any{
		"/releases": map[string]any{"data": []Record{
			{"id": "r1", "state": "in_progress"},
			{"id": "r2", "state": "completed"},
		}},
	})
	defer srv.Close()
	c := newTypedTestClient(srv)

	result, err := c.ListReleases(context.Background(), ReleaseQuery{State: "IN_PROGRESS"})
	require.NoError(t, err)
	require.Len(t, result.Items, 1)
	assert.Equal(t, "r1", result.Items[0]["id"])
}

func TestMoveFeatureAssignsTargetFirst(t *testing.T) {
	srv, seen := newRoutedServer(t, map[string]any{
		"/feature-release-assignments": map[string]any{"data": Record{}},
	})
	defer srv.Close()
	c := newTypedTestClient(srv)

	record, err := c.MoveFeatureBetweenReleases(context.Background(), "f1", "r1", "r2")
	require.NoError(t, err)
	require.Len(t, *seen, 2, "expected 2 assignment calls")

	first := (*seen)[0].Body["data"].(map[string]any)
	second := (*seen)[1].Body["data"].(map[string]any)
	// Assign to the target before removing from the source, so a failure
	// never strands the feature outside both releases.
	assert.Equal(t, "r2", first["release"].(map[string]any)["id"])
	assert.Equal(t, true, first["isAssigned"])
	assert.Equal(t, "r1", second["release"].(map[string]any)["id"])
	assert.Equal(t, false, second["isAssigned"])
	assert.Equal(t, "r2", record["assignedTo"])
	assert.Equal(t, "r1", record["unassignedFrom"])
}

func TestMoveFeatureRequiresARelease(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	defer srv.Close()
	c := newTypedTestClient(srv)

	_, err := c.MoveFeatureBetweenReleases(context.Background(), "f1", "", "")
	var validation *ValidationError
	require.ErrorAs(t, err, &validation)
}

func TestCreateNotePayload(t *testing.T) {
	srv, seen := newRoutedServer(t, map[string]any{
		"/notes": map[string]any{"data": Record{"id": "n1"}},
	})
	defer srv.Close()
	c := newTypedTestClient(srv)

	record, err := c.CreateNote(context.Background(), NoteInput{
		Title:      "Feedback",
		Content:    "The checkout flow is confusing.",
		DisplayURL: "https://example.slack.com/archives/C1/p1",
		UserEmail:  "cs@example.com",
		CompanyID:  "c1",
		Tags:       []string{"checkout"},
	})
	require.NoError(t, err)
	assert.Equal(t, "n1", record["id"])

	body := (*seen)[0].Body
	assert.Equal(t, "Feedback", body["title"])
	assert.Equal(t, "https://example.slack.com/archives/C1/p1", body["display_url"])
	assert.Equal(t, "cs@example.com", body["user"].(map[string]any)["email"])
	assert.Equal(t, "c1", body["company"].(map[string]any)["id"])
}

func TestListCompaniesTermFilter(t *testing.T) {
	srv, _ := newRoutedServer(t, map[string]any{
		"/companies": map[string]any{"data": []Record{
			{"id": "c1", "name": "Acme Corp", "domain": "acme.com"},
			{"id": "c2", "name": "Globex", "domain": "globex.io"},
		}},
	})
	defer srv.Close()
	c := newTypedTestClient(srv)

	result, err := c.ListCompanies(context.Background(), CompanyQuery{Term: "acme"})
	require.NoError(t, err)
	require.Len(t, result.Items, 1)
	assert.Equal(t, "c1", result.Items[0]["id"])
}

func TestNewClientRequiresToken(t *testing.T) {
	_, err := NewClient(Config{})
	require.ErrorIs(t, err, ErrMissingToken)
}
