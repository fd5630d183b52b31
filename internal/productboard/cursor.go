package productboard

import (
	"net/url"
	"strings"
)

// nextPageURL maps a pagination token to a fetchable URL. The token is a
// black box: it is classified, never parsed.
//
//   - empty/whitespace: first-page URL from basePath plus the serialized
//     query (url.Values encoding: sorted keys, multi-values in input order)
//   - absolute http(s) URL: used verbatim (server next links are fully
//     qualified; re-normalizing one is a no-op)
//   - leading "/": root-relative path, used verbatim
//   - anything else: opaque cursor, appended as the pageCursor parameter
//
// The same classification applies on every page, not only the first.
func nextPageURL(cursor, basePath string, query url.Values) string {
	cursor = strings.TrimSpace(cursor)

	if cursor == "" {
		if len(query) == 0 {
			return basePath
		}
		return basePath + "?" + query.Encode()
	}

	if strings.HasPrefix(cursor, "http://") || strings.HasPrefix(cursor, "https://") {
		return cursor
	}

	if strings.HasPrefix(cursor, "/") {
		return cursor
	}

	return basePath + "?pageCursor=" + url.QueryEscape(cursor)
}
