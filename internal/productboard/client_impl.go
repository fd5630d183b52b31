package productboard

import (
	"context"
	"net/url"
	"strings"
)

// ListFeatures lists features, scoped to a product. Single status id,
// owner email, and the archived flag are pushed down as server-side query
// parameters; multi-valued status sets and product scoping are applied
// client-side over each fetched page.
func (c *client) ListFeatures(ctx context.Context, q FeatureQuery) (*ListResult, error) {
	productID := q.ProductID
	if productID == "" && !q.NoProductScope {
		id, err := c.DefaultProductID(ctx)
		if err != nil {
			return nil, err
		}
		productID = id
	}

	query := url.Values{}
	if q.OwnerEmail != "" {
		query.Set("owner.email", q.OwnerEmail)
	}
	if q.Archived != nil {
		if *q.Archived {
			query.Set("archived", "true")
		} else {
			query.Set("archived", "false")
		}
	}
	// The API accepts a single status filter; a set of several falls back
	// to client-side matching below.
	if len(q.StatusIDs) == 1 && len(q.StatusNames) == 0 {
		query.Set("status.id", q.StatusIDs[0])
	}
	if len(q.StatusNames) == 1 && len(q.StatusIDs) == 0 {
		query.Set("status.name", q.StatusNames[0])
	}

	statusIDs := toLowerSet(q.StatusIDs)
	statusNames := toLowerSet(q.StatusNames)

	filter := func(r Record) bool {
		if productID != "" && !belongsToProduct(r, productID) {
			return false
		}
		if len(q.StatusIDs) > 1 || len(q.StatusNames) > 1 ||
			(len(q.StatusIDs) > 0 && len(q.StatusNames) > 0) {
			if !matchesStatus(r, statusIDs, statusNames) {
				return false
			}
		}
		return true
	}

	return c.rest.collect(ctx, collectRequest{
		basePath:     "/features",
		query:        query,
		cursor:       q.Cursor,
		filter:       filter,
		limit:        q.Limit,
		autoPaginate: q.AutoPaginate,
		maxPages:     q.MaxPages,
	})
}

// GetFeature fetches a single feature by id.
func (c *client) GetFeature(ctx context.Context, id string) (Record, error) {
	if id == "" {
		return nil, &ValidationError{Message: "feature id is required"}
	}
	body, err := c.rest.get(ctx, "/features/"+url.PathEscape(id))
	if err != nil {
		return nil, err
	}
	record, ok := body["data"].(map[string]any)
	if !ok {
		return nil, &MalformedResponseError{}
	}
	return record, nil
}

// ListReleases lists releases, optionally narrowed to one release group.
func (c *client) ListReleases(ctx context.Context, q ReleaseQuery) (*ListResult, error) {
	query := url.Values{}
	if q.ReleaseGroupID != "" {
		query.Set("releaseGroup.id", q.ReleaseGroupID)
	}

	var filter FilterFunc
	if q.State != "" {
		state := strings.ToLower(q.State)
		filter = func(r Record) bool {
			s, _ := r["state"].(string)
			return strings.ToLower(s) == state
		}
	}

	return c.rest.collect(ctx, collectRequest{
		basePath:     "/releases",
		query:        query,
		cursor:       q.Cursor,
		filter:       filter,
		limit:        q.Limit,
		autoPaginate: q.AutoPaginate,
		maxPages:     q.MaxPages,
	})
}

// ListReleaseAssignments lists feature-release assignments.
func (c *client) ListReleaseAssignments(ctx context.Context, q AssignmentQuery) (*ListResult, error) {
	query := url.Values{}
	if q.FeatureID != "" {
		query.Set("feature.id", q.FeatureID)
	}
	if q.ReleaseID != "" {
		query.Set("release.id", q.ReleaseID)
	}
	if q.ReleaseState != "" {
		query.Set("release.state", q.ReleaseState)
	}

	return c.rest.collect(ctx, collectRequest{
		basePath:     "/feature-release-assignments",
		query:        query,
		cursor:       q.Cursor,
		limit:        q.Limit,
		autoPaginate: q.AutoPaginate,
		maxPages:     q.MaxPages,
	})
}

// SetReleaseAssignment assigns or unassigns a feature to a release.
func (c *client) SetReleaseAssignment(ctx context.Context, featureID, releaseID string, assigned bool) (Record, error) {
	if featureID == "" || releaseID == "" {
		return nil, &ValidationError{Message: "featureId and releaseId are required"}
	}
	body := map[string]any{
		"data": map[string]any{
			"feature":    map[string]any{"id": featureID},
			"release":    map[string]any{"id": releaseID},
			"isAssigned": assigned,
		},
	}
	resp, err := c.rest.put(ctx, "/feature-release-assignments", body)
	if err != nil {
		return nil, err
	}
	if record, ok := resp["data"].(map[string]any); ok {
		return record, nil
	}
	return Record{"feature": featureID, "release": releaseID, "isAssigned": assigned}, nil
}

// MoveFeatureBetweenReleases reassigns a feature from one release to
// another. At least one of fromReleaseID and toReleaseID must be given;
// the request is rejected before any network call otherwise. The target
// assignment happens first so a failure never leaves the feature
// unassigned on both sides.
func (c *client) MoveFeatureBetweenReleases(ctx context.Context, featureID, fromReleaseID, toReleaseID string) (Record, error) {
	if featureID == "" {
		return nil, &ValidationError{Message: "featureId is required"}
	}
	if fromReleaseID == "" && toReleaseID == "" {
		return nil, &ValidationError{Message: "at least one of fromReleaseId and toReleaseId is required"}
	}

	result := Record{"feature": featureID}
	if toReleaseID != "" {
		if _, err := c.SetReleaseAssignment(ctx, featureID, toReleaseID, true); err != nil {
			return nil, err
		}
		result["assignedTo"] = toReleaseID
	}
	if fromReleaseID != "" {
		if _, err := c.SetReleaseAssignment(ctx, featureID, fromReleaseID, false); err != nil {
			return nil, err
		}
		result["unassignedFrom"] = fromReleaseID
	}
	return result, nil
}

// ListNotes lists notes. The notes endpoint supports rich server-side
// filtering, so no client-side filter is needed.
func (c *client) ListNotes(ctx context.Context, q NoteQuery) (*ListResult, error) {
	query := url.Values{}
	if q.Term != "" {
		query.Set("term", q.Term)
	}
	if q.CompanyID != "" {
		query.Set("companyId", q.CompanyID)
	}
	if q.OwnerEmail != "" {
		query.Set("ownerEmail", q.OwnerEmail)
	}
	if q.CreatedFrom != "" {
		query.Set("createdFrom", q.CreatedFrom)
	}
	if q.CreatedTo != "" {
		query.Set("createdTo", q.CreatedTo)
	}

	return c.rest.collect(ctx, collectRequest{
		basePath:     "/notes",
		query:        query,
		cursor:       q.Cursor,
		limit:        q.Limit,
		autoPaginate: q.AutoPaginate,
		maxPages:     q.MaxPages,
	})
}

// CreateNote creates a note attached to an optional user and company.
func (c *client) CreateNote(ctx context.Context, input NoteInput) (Record, error) {
	if input.Title == "" || input.Content == "" {
		return nil, &ValidationError{Message: "title and content are required"}
	}

	payload := map[string]any{
		"title":   input.Title,
		"content": input.Content,
	}
	if input.DisplayURL != "" {
		payload["display_url"] = input.DisplayURL
	}
	if input.UserEmail != "" {
		payload["user"] = map[string]any{"email": input.UserEmail}
	}
	if input.CompanyID != "" {
		payload["company"] = map[string]any{"id": input.CompanyID}
	}
	if len(input.Tags) > 0 {
		payload["tags"] = input.Tags
	}

	resp, err := c.rest.post(ctx, "/notes", payload)
	if err != nil {
		return nil, err
	}
	if data, ok := resp["data"].(map[string]any); ok {
		return data, nil
	}
	return resp, nil
}

// ListCompanies lists companies. Term matching is client-side: the
// companies endpoint has no search parameter.
func (c *client) ListCompanies(ctx context.Context, q CompanyQuery) (*ListResult, error) {
	var filter FilterFunc
	if q.Term != "" {
		term := strings.ToLower(q.Term)
		filter = func(r Record) bool {
			name, _ := r["name"].(string)
			domain, _ := r["domain"].(string)
			return strings.Contains(strings.ToLower(name), term) ||
				strings.Contains(strings.ToLower(domain), term)
		}
	}

	return c.rest.collect(ctx, collectRequest{
		basePath:     "/companies",
		cursor:       q.Cursor,
		filter:       filter,
		limit:        q.Limit,
		autoPaginate: q.AutoPaginate,
		maxPages:     q.MaxPages,
	})
}

// ListProducts returns the workspace's top-level products (single page).
func (c *client) ListProducts(ctx context.Context) ([]Record, error) {
	body, err := c.rest.get(ctx, "/products")
	if err != nil {
		return nil, err
	}
	return pageRecords(body), nil
}

// ListFeatureStatuses returns the workspace's feature statuses (single page).
func (c *client) ListFeatureStatuses(ctx context.Context) ([]Record, error) {
	body, err := c.rest.get(ctx, "/feature-statuses")
	if err != nil {
		return nil, err
	}
	return pageRecords(body), nil
}

// belongsToProduct reports whether a feature's parent chain references the
// given product id. Features nest under either a product or a component;
// component-nested features carry no product reference and fail the match.
func belongsToProduct(r Record, productID string) bool {
	parent, ok := r["parent"].(map[string]any)
	if !ok {
		return false
	}
	product, ok := parent["product"].(map[string]any)
	if !ok {
		return false
	}
	id, _ := product["id"].(string)
	return id == productID
}

// matchesStatus reports whether a feature's status matches any of the
// given id or name sets (both lowercased).
func matchesStatus(r Record, ids, names map[string]struct{}) bool {
	status, ok := r["status"].(map[string]any)
	if !ok {
		return false
	}
	if len(ids) > 0 {
		if id, _ := status["id"].(string); id != "" {
			if _, ok := ids[strings.ToLower(id)]; ok {
				return true
			}
		}
	}
	if len(names) > 0 {
		if name, _ := status["name"].(string); name != "" {
			if _, ok := names[strings.ToLower(name)]; ok {
				return true
			}
		}
	}
	return false
}

func toLowerSet(values []string) map[string]struct{} {
	if len(values) == 0 {
		return nil
	}
	set := make(map[string]struct{}, len(values))
	for _, v := range values {
		set[strings.ToLower(v)] = struct{}{}
	}
	return set
}
