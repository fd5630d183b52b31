package productboard

import "time"

// DefaultBaseURL is the public Productboard REST API endpoint.
const DefaultBaseURL = "https://api.productboard.com"

// apiVersion is the value of the X-Version header required by the API.
const apiVersion = "1"

// Default limits for list operations. Auto-pagination is opt-in and the
// caps are deliberately small: bounding response size (and downstream
// context-window cost) wins over completeness.
const (
	// DefaultLimit is the default number of items returned per list call.
	DefaultLimit = 20

	// MaxLimit is the hard ceiling on items per list call.
	MaxLimit = 100

	// DefaultMaxPages is the default page cap when auto-pagination is on.
	DefaultMaxPages = 5

	// AbsoluteMaxPages is the absolute page cap regardless of request.
	AbsoluteMaxPages = 20
)

// Retry policy defaults for single-page fetches.
const (
	// DefaultRetryAttempts is the number of attempts per page fetch.
	DefaultRetryAttempts = 3

	// DefaultRetryBaseDelay is the first backoff interval. Subsequent
	// intervals double: 250ms, 500ms, 1s.
	DefaultRetryBaseDelay = 250 * time.Millisecond
)

// DefaultHTTPTimeout bounds each request attempt with a deadline.
const DefaultHTTPTimeout = 30 * time.Second

// DefaultProductName is the product used to scope queries when the caller
// omits an explicit product filter. Overridable via configuration.
const DefaultProductName = "Platform"

// maxBodyExcerpt caps the response body excerpt carried by UpstreamError.
const maxBodyExcerpt = 512
