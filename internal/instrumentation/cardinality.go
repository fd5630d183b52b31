package instrumentation

import "strings"

// NormalizeEndpoint reduces an API path or URL to a low-cardinality
// metric label. Entity ids and pagination cursors would otherwise create
// one label value per record.
//
//	/features/abc-123      -> /features/:id
//	/notes?pageCursor=...  -> /notes
//	https://api.example.com/releases -> /releases
func NormalizeEndpoint(endpoint string) string {
	// Strip scheme and host from absolute next-link URLs.
	if i := strings.Index(endpoint, "://"); i >= 0 {
		rest := endpoint[i+3:]
		if j := strings.Index(rest, "/"); j >= 0 {
			endpoint = rest[j:]
		} else {
			endpoint = "/"
		}
	}

	// Drop the query string (cursors, filters).
	if i := strings.Index(endpoint, "?"); i >= 0 {
		endpoint = endpoint[:i]
	}

	// Collapse everything past the collection segment to :id.
	segments := strings.Split(strings.Trim(endpoint, "/"), "/")
	if len(segments) > 1 {
		return "/" + segments[0] + "/:id"
	}
	if segments[0] == "" {
		return "/"
	}
	return "/" + segments[0]
}
