package productboard

import (
	"net/url"
	"testing"
)

func TestNextPageURL(t *testing.T) {
	tests := []struct {
		name     string
		cursor   string
		basePath string
		query    url.Values
		want     string
	}{
		{
			name:     "empty cursor without query",
			cursor:   "",
			basePath: "/features",
			want:     "/features",
		},
		{
			name:     "empty cursor with query",
			cursor:   "",
			basePath: "/features",
			query:    url.Values{"owner.email": {"pm@example.com"}},
			want:     "/features?owner.email=pm%40example.com",
		},
		{
			name:     "whitespace cursor treated as empty",
			cursor:   "   ",
			basePath: "/features",
			want:     "/features",
		},
		{
			name:     "absolute https URL used verbatim",
			cursor:   "https://api.productboard.com/features?pageCursor=abc",
			basePath: "/features",
			query:    url.Values{"archived": {"false"}},
			want:     "https://api.productboard.com/features?pageCursor=abc",
		},
		{
			name:     "absolute http URL used verbatim",
			cursor:   "http://localhost:8080/features?pageCursor=abc",
			basePath: "/features",
			want:     "http://localhost:8080/features?pageCursor=abc",
		},
		{
			name:     "root-relative path used verbatim",
			cursor:   "/features?pageCursor=abc",
			basePath: "/features",
			query:    url.Values{"archived": {"false"}},
			want:     "/features?pageCursor=abc",
		},
		{
			name:     "opaque token becomes pageCursor parameter",
			cursor:   "eyJwYWdlIjoyfQ",
			basePath: "/features",
			want:     "/features?pageCursor=eyJwYWdlIjoyfQ",
		},
		{
			name:     "opaque token is query-escaped",
			cursor:   "a b+c",
			basePath: "/notes",
			want:     "/notes?pageCursor=a+b%2Bc",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := nextPageURL(tc.cursor, tc.basePath, tc.query)
			if got != tc.want {
				t.Errorf("nextPageURL(%q) = %q, want %q", tc.cursor, got, tc.want)
			}
		})
	}
}
