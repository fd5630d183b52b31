package productboard

import (
	"context"
	"log/slog"
	"net/http"
	"time"
)

// ListOptions are the pagination controls shared by all list operations.
type ListOptions struct {
	// Limit is the hard ceiling on returned items (1-100, default 20).
	Limit int

	// Cursor resumes a previous listing. Absolute next-link URLs,
	// root-relative paths, and opaque tokens are all accepted.
	Cursor string

	// AutoPaginate fetches successive pages until Limit or MaxPages is
	// reached. Off by default: a single page plus a cursor is returned.
	AutoPaginate bool

	// MaxPages caps the number of pages fetched when auto-paginating.
	MaxPages int
}

// FeatureQuery parameterizes feature listings. Status and owner filters
// translate to server-side query parameters where the API supports them;
// multi-valued status sets and product scoping fall back to client-side
// filtering over fetched pages.
type FeatureQuery struct {
	ListOptions

	// ProductID scopes features to one product. When empty, the default
	// product is resolved and used instead.
	ProductID string

	// NoProductScope disables product scoping entirely.
	NoProductScope bool

	StatusIDs   []string
	StatusNames []string
	OwnerEmail  string
	Archived    *bool
}

// ReleaseQuery parameterizes release listings.
type ReleaseQuery struct {
	ListOptions

	ReleaseGroupID string

	// State filters client-side on the release state field
	// (in_progress, upcoming, completed).
	State string
}

// AssignmentQuery parameterizes feature-release assignment listings.
// FeatureID and ReleaseID are server-side filters.
type AssignmentQuery struct {
	ListOptions

	FeatureID    string
	ReleaseID    string
	ReleaseState string
}

// NoteQuery parameterizes note listings. All filters are server-side
// query parameters understood by the notes endpoint.
type NoteQuery struct {
	ListOptions

	Term        string
	CompanyID   string
	OwnerEmail  string
	CreatedFrom string
	CreatedTo   string
}

// CompanyQuery parameterizes company listings. Term matches client-side
// against company name and domain.
type CompanyQuery struct {
	ListOptions

	Term string
}

// NoteInput is the payload for creating a note.
type NoteInput struct {
	Title      string
	Content    string
	DisplayURL string
	UserEmail  string
	CompanyID  string
	Tags       []string
}

// Client is the Productboard API surface consumed by tool handlers.
type Client interface {
	ListFeatures(ctx context.Context, q FeatureQuery) (*ListResult, error)
	GetFeature(ctx context.Context, id string) (Record, error)

	ListReleases(ctx context.Context, q ReleaseQuery) (*ListResult, error)
	ListReleaseAssignments(ctx context.Context, q AssignmentQuery) (*ListResult, error)
	SetReleaseAssignment(ctx context.Context, featureID, releaseID string, assigned bool) (Record, error)
	MoveFeatureBetweenReleases(ctx context.Context, featureID, fromReleaseID, toReleaseID string) (Record, error)

	ListNotes(ctx context.Context, q NoteQuery) (*ListResult, error)
	CreateNote(ctx context.Context, input NoteInput) (Record, error)

	ListCompanies(ctx context.Context, q CompanyQuery) (*ListResult, error)

	ListProducts(ctx context.Context) ([]Record, error)
	ListFeatureStatuses(ctx context.Context) ([]Record, error)

	DefaultProductID(ctx context.Context) (string, error)
	InvalidateDefaultProduct()
}

// Config configures a Client.
type Config struct {
	// Token is the Productboard API bearer token. Required.
	Token string

	// BaseURL overrides the API endpoint. Defaults to DefaultBaseURL.
	BaseURL string

	// DefaultProductName is the product resolved when a feature query
	// omits an explicit product scope. Defaults to DefaultProductName.
	DefaultProductName string

	// HTTPTimeout bounds each request attempt. Defaults to
	// DefaultHTTPTimeout.
	HTTPTimeout time.Duration

	// RetryAttempts and RetryBaseDelay tune the per-page retry policy.
	RetryAttempts  int
	RetryBaseDelay time.Duration

	// Logger receives request-level debug logging. Defaults to
	// slog.Default().
	Logger *slog.Logger

	// Observer, when set, receives one callback per HTTP request.
	Observer RequestObserver

	// HTTPClient overrides the transport, mainly for tests.
	HTTPClient *http.Client
}

// client implements Client on top of the shared fetch/filter/accumulate
// core.
type client struct {
	rest               *restClient
	scope              *scopeCache
	defaultProductName string
}

// NewClient validates the configuration and returns a ready Client.
// A missing token is a configuration error surfaced immediately.
func NewClient(cfg Config) (Client, error) {
	if cfg.Token == "" {
		return nil, ErrMissingToken
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.DefaultProductName == "" {
		cfg.DefaultProductName = DefaultProductName
	}
	if cfg.HTTPTimeout <= 0 {
		cfg.HTTPTimeout = DefaultHTTPTimeout
	}
	if cfg.RetryAttempts <= 0 {
		cfg.RetryAttempts = DefaultRetryAttempts
	}
	if cfg.RetryBaseDelay <= 0 {
		cfg.RetryBaseDelay = DefaultRetryBaseDelay
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	httpc := cfg.HTTPClient
	if httpc == nil {
		httpc = &http.Client{Timeout: cfg.HTTPTimeout}
	}

	return &client{
		rest: &restClient{
			baseURL:       cfg.BaseURL,
			token:         cfg.Token,
			httpc:         httpc,
			logger:        cfg.Logger,
			observe:       cfg.Observer,
			retryAttempts: cfg.RetryAttempts,
			retryBase:     cfg.RetryBaseDelay,
		},
		scope:              &scopeCache{},
		defaultProductName: cfg.DefaultProductName,
	}, nil
}
