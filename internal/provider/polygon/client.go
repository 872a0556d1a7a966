package polygon

import (
	"errors"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
)

// DefaultBaseURL is the public Polygon.io REST endpoint.
const DefaultBaseURL = "https://api.polygon.io"

const (
	defaultSearchLimit  = 50
	defaultHistoryLimit = 500
	defaultNewsLimit    = 10
	maxNewsLimit        = 1000
)

// HTTPClient describes an HTTP client.
//
//go:generate mockgen -package=polygon_test -destination=mock_http_client_test.go -source=client.go HTTPClient
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// AuthMode selects how the API key travels with each request.
type AuthMode string

const (
	// AuthQuery sends the key as the apiKey query parameter.
	AuthQuery AuthMode = "query"
	// AuthBearer sends the key as an Authorization bearer token.
	AuthBearer AuthMode = "bearer"
)

// Client talks to the Polygon REST API. It implements
// provider.TickerResolver, provider.QuoteFetcher, provider.HistoryFetcher
// and provider.NewsFetcher. A Client is safe for concurrent use.
type Client struct {
	// baseURL is the scheme and host, without a trailing slash.
	baseURL string
	apiKey  string
	auth    AuthMode
	// httpClient is shared by every call and must be safe for concurrent use.
	httpClient HTTPClient
	logger     *slog.Logger

	searchLimit  int
	historyLimit int
}

// Option configures a Client.
type Option func(*Client)

// WithBaseURL sets the base URL for the API.
func WithBaseURL(baseURL string) Option {
	return func(c *Client) {
		c.baseURL = strings.TrimRight(baseURL, "/")
	}
}

// WithHTTPClient sets the HTTP client used for every request.
func WithHTTPClient(httpClient HTTPClient) Option {
	return func(c *Client) {
		c.httpClient = httpClient
	}
}

// WithAuthMode chooses between query-parameter and bearer authentication.
func WithAuthMode(mode AuthMode) Option {
	return func(c *Client) {
		if mode != "" {
			c.auth = mode
		}
	}
}

// WithLogger sets the logger used for degraded lookups.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithSearchLimit sets the page size for ticker search.
func WithSearchLimit(n int) Option {
	return func(c *Client) {
		if n > 0 {
			c.searchLimit = n
		}
	}
}

// WithHistoryLimit caps the number of bars requested per range.
func WithHistoryLimit(n int) Option {
	return func(c *Client) {
		if n > 0 {
			c.historyLimit = n
		}
	}
}

// New creates a Polygon client. The key is required.
func New(apiKey string, options ...Option) (*Client, error) {
	if strings.TrimSpace(apiKey) == "" {
		return nil, errors.New("polygon: api key is required")
	}
	c := &Client{
		baseURL:      DefaultBaseURL,
		apiKey:       apiKey,
		auth:         AuthQuery,
		httpClient:   http.DefaultClient,
		logger:       slog.Default(),
		searchLimit:  defaultSearchLimit,
		historyLimit: defaultHistoryLimit,
	}
	for _, option := range options {
		option(c)
	}
	if _, err := url.ParseRequestURI(c.baseURL); err != nil {
		return nil, errors.New("polygon: invalid base url " + c.baseURL)
	}
	return c, nil
}

// endpoint joins path onto the base URL and attaches the key when the
// client authenticates by query parameter.
func (c *Client) endpoint(path string, query url.Values) string {
	if query == nil {
		query = url.Values{}
	}
	if c.auth != AuthBearer {
		query.Set("apiKey", c.apiKey)
	}
	if len(query) == 0 {
		return c.baseURL + path
	}
	return c.baseURL + path + "?" + query.Encode()
}

func (c *Client) bearer() string {
	if c.auth == AuthBearer {
		return c.apiKey
	}
	return ""
}
