package productboard

import (
	"context"
	"log/slog"
	"net/url"

	"github.com/stackline/mcp-productboard/internal/logging"
)

// Record is an untyped Productboard entity as returned by the API.
type Record = map[string]any

// FilterFunc decides whether a fetched record belongs in the result.
// A nil FilterFunc keeps everything.
type FilterFunc func(Record) bool

// ListResult is the aggregated outcome of a (possibly paginated) listing.
type ListResult struct {
	Items        []Record `json:"items"`
	PagesFetched int      `json:"pagesFetched"`
	HadError     bool     `json:"hadError"`
	NextCursor   string   `json:"nextCursor,omitempty"`
}

// collectRequest parameterizes one collection run. Each entity listing
// supplies its own base path, server-side query parameters, and
// client-side filter strategy; the fetch/filter/accumulate loop is shared.
type collectRequest struct {
	basePath     string
	query        url.Values
	cursor       string
	filter       FilterFunc
	limit        int
	autoPaginate bool
	maxPages     int
}

// collect drives repeated page fetches, applies the filter per page, and
// accumulates matches up to the limit.
//
// A failure on the first page propagates to the caller: no silent empty
// results. A failure after at least one good page degrades to a partial
// result with HadError set. The limit is a hard ceiling, enforced
// mid-page. When autoPaginate is off, exactly one page is fetched
// regardless of available continuation.
func (c *restClient) collect(ctx context.Context, req collectRequest) (*ListResult, error) {
	limit := req.limit
	if limit <= 0 {
		limit = DefaultLimit
	}
	if limit > MaxLimit {
		limit = MaxLimit
	}
	maxPages := req.maxPages
	if maxPages <= 0 {
		maxPages = DefaultMaxPages
	}
	if maxPages > AbsoluteMaxPages {
		maxPages = AbsoluteMaxPages
	}

	result := &ListResult{Items: []Record{}}
	next := req.cursor
	hasNext := true

	for {
		pageURL := nextPageURL(next, req.basePath, req.query)
		body, err := c.get(ctx, pageURL)
		if err != nil {
			if result.PagesFetched == 0 {
				return nil, err
			}
			c.logger.Warn("pagination stopped after partial success",
				logging.Endpoint(req.basePath),
				slog.Int("pages_fetched", result.PagesFetched),
				logging.Err(err))
			result.HadError = true
			return result, nil
		}
		if body == nil {
			if result.PagesFetched == 0 {
				return nil, &MalformedResponseError{}
			}
			result.HadError = true
			return result, nil
		}

		for _, record := range pageRecords(body) {
			if req.filter != nil && !req.filter(record) {
				continue
			}
			result.Items = append(result.Items, record)
			if len(result.Items) == limit {
				break
			}
		}

		next = pageNextCursor(body)
		hasNext = next != ""
		result.PagesFetched++
		result.NextCursor = next

		if !req.autoPaginate || len(result.Items) >= limit || result.PagesFetched >= maxPages || !hasNext {
			return result, nil
		}
	}
}

// pageRecords extracts the record list from a page body. An absent or
// malformed data field yields an empty list, not an error.
func pageRecords(body map[string]any) []Record {
	raw, ok := body["data"].([]any)
	if !ok {
		return nil
	}
	records := make([]Record, 0, len(raw))
	for _, item := range raw {
		if record, ok := item.(map[string]any); ok {
			records = append(records, record)
		}
	}
	return records
}

// pageNextCursor extracts links.next from a page body. Anything that is
// not a non-empty string terminates pagination.
func pageNextCursor(body map[string]any) string {
	links, ok := body["links"].(map[string]any)
	if !ok {
		return ""
	}
	next, ok := links["next"].(string)
	if !ok {
		return ""
	}
	return next
}
