package api

import (
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"github.com/assetdesk/assetdesk/session"
)

const defaultUserAgent = "assetdesk/0.1"

// Client talks to one AssetMart backend. The base URL is fixed at
// construction; pick it with the locator first. Tokens come from the
// injected session store, never from the Client itself.
type Client struct {
	baseURL    string
	httpClient *http.Client
	store      session.Store
	logger     *slog.Logger
	userAgent  string
}

type Option func(*Client)

func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) {
		c.httpClient = httpClient
	}
}

func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) {
		c.logger = logger
	}
}

func WithUserAgent(userAgent string) Option {
	return func(c *Client) {
		c.userAgent = userAgent
	}
}

func NewClient(baseURL string, store session.Store, opts ...Option) *Client {
	if baseURL == "" {
		baseURL = "http://localhost:8000/api/v1"
	}

	c := &Client{
		baseURL:    strings.TrimSuffix(baseURL, "/"),
		httpClient: &http.Client{},
		store:      store,
		logger:     slog.New(slog.NewTextHandler(io.Discard, nil)),
		userAgent:  defaultUserAgent,
	}
	for _, opt := range opts {
		opt(c)
	}

	return c
}

// BaseURL reports the backend this client is bound to.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// requiredToken is the gate for operations that must not go on the wire
// without a session. It fails locally, no request is made.
func (c *Client) requiredToken() (string, error) {
	token, err := c.store.AccessToken()
	if errors.Is(err, session.ErrNoToken) {
		return "", ErrMissingAccessToken
	}
	if err != nil {
		return "", err
	}
	return token, nil
}

// implicitToken attaches a session when there is one. With an empty store
// the request goes out unauthenticated and the server decides.
func (c *Client) implicitToken() (string, error) {
	token, err := c.store.AccessToken()
	if errors.Is(err, session.ErrNoToken) {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return token, nil
}
