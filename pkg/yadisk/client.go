// Package yadisk is a client for the Yandex.Disk REST API. Every operation
// funnels through one request pipeline that merges headers, retries transient
// failures, classifies error responses and decodes JSON results. Listings are
// exposed as forward-only cursors and transfers are driven through
// single-use server-issued URLs.
package yadisk

import (
	"net/http"
	"sync"

	"github.com/hashicorp/go-multierror"
)

// ClientConfig configures a Client.
type ClientConfig struct {
	// ID and Secret identify the OAuth application.
	ID     string
	Secret string
	// Token is the OAuth token sent with every request.
	Token string
	// Defaults are applied to every call before operation defaults.
	Defaults Options
	// BaseURL overrides the API root.
	BaseURL string
	// HTTPClient, when set, is called once per new session.
	HTTPClient func() *http.Client
	Logger     Logger
}

type sessionKey struct {
	token    string
	identity string
}

// Client is safe for concurrent use. The token, logger and session cache are
// guarded by mu.
type Client struct {
	id            string
	secret        string
	defaults      Options
	baseURL       string
	newHTTPClient func() *http.Client

	mu       sync.Mutex
	token    string
	logger   Logger
	sessions map[sessionKey]*Session
}

// NewClient validates cfg and returns a client. No network calls are made.
//
// Example:
//
//	client, err := yadisk.NewClient(yadisk.ClientConfig{Token: token})
//	if err != nil {
//		return err
//	}
//	defer client.Close()
func NewClient(cfg ClientConfig) (*Client, error) {
	if err := cfg.Defaults.Validate(); err != nil {
		return nil, err
	}
	c := &Client{
		id:            cfg.ID,
		secret:        cfg.Secret,
		token:         cfg.Token,
		defaults:      cfg.Defaults,
		baseURL:       cfg.BaseURL,
		newHTTPClient: cfg.HTTPClient,
		logger:        cfg.Logger,
		sessions:      make(map[sessionKey]*Session),
	}
	if c.baseURL == "" {
		c.baseURL = customRootURL
	}
	if c.logger == nil {
		c.logger = noopLogger{}
	}
	return c, nil
}

// SetLogger installs l for all later requests.
func (c *Client) SetLogger(l Logger) {
	if l == nil {
		l = noopLogger{}
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.logger = l
}

// log returns the installed logger.
func (c *Client) log() Logger {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.logger
}

// Token returns the current OAuth token.
func (c *Client) Token() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.token
}

// SetToken replaces the token used by later calls. Sessions cached for the
// old token stay in the cache until Close or ClearSessionCache.
func (c *Client) SetToken(token string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.token = token
}

// Session returns the cached session for the client's token and identity,
// creating it on first use.
func (c *Client) Session(identity string) *Session {
	return c.SessionForToken(c.Token(), identity)
}

// SessionForToken returns the cached session for token and identity. When
// two goroutines race to create the same session, one wins and the other's
// session is closed.
func (c *Client) SessionForToken(token, identity string) *Session {
	key := sessionKey{token: token, identity: identity}

	c.mu.Lock()
	if s, ok := c.sessions[key]; ok {
		c.mu.Unlock()
		return s
	}
	c.mu.Unlock()

	var httpClient *http.Client
	if c.newHTTPClient != nil {
		httpClient = c.newHTTPClient()
	}
	created := NewSession(token, httpClient, c.log())

	c.mu.Lock()
	defer c.mu.Unlock()
	if s, ok := c.sessions[key]; ok {
		if err := created.Close(); err != nil {
			c.logger.Warnf("Closing duplicate session: %v", err)
		}
		return s
	}
	c.sessions[key] = created
	c.logger.Debugf("Created session for identity %q", identity)
	return created
}

// sessionFor picks the session named by opts.
func (c *Client) sessionFor(opts Options) *Session {
	return c.Session(opts.Identity)
}

// ClearSessionCache forgets every cached session without closing it.
func (c *Client) ClearSessionCache() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.sessions = make(map[sessionKey]*Session)
}

// Close closes every cached session and empties the cache. The client can
// still be used afterwards; new sessions are created on demand.
func (c *Client) Close() error {
	c.mu.Lock()
	sessions := c.sessions
	c.sessions = make(map[sessionKey]*Session)
	c.mu.Unlock()

	var result *multierror.Error
	for _, s := range sessions {
		if err := s.Close(); err != nil {
			result = multierror.Append(result, err)
		}
	}
	return result.ErrorOrNil()
}

// SetCustomRootEndpoint points new clients at a different API root. It is
// meant for tests against a fake server.
func SetCustomRootEndpoint(rootURL string) {
	customRootURL = rootURL
}

// options copies the call options, filling listing parameters from the
// client defaults.
func (c *Client) options(opts *Options) Options {
	var o Options
	if opts != nil {
		o = *opts
	}
	if o.Fields == nil {
		o.Fields = c.defaults.Fields
	}
	if o.Limit == nil {
		o.Limit = c.defaults.Limit
	}
	return o
}
