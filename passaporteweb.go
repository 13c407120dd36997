// Package passaporteweb is a Go client for the PassaporteWeb identity
// service. It maps the service's Identity and Notification records onto local
// instances with typed attributes, a persistence lifecycle, and selective
// create/update payloads.
//
// Instances are not safe for concurrent mutation: each one is owned by the
// caller holding it, and every operation issues at most one HTTP call and
// blocks until it resolves.
package passaporteweb

import "log/slog"

// Client is the entry point to the service. Construct one with New and reach
// the resource kinds through its Identities and Notifications fields.
type Client struct {
	transport Transport
	app       AppCredentials
	user      Credentials // nil when no user token is configured
	logger    *slog.Logger

	Identities    *IdentityService
	Notifications *NotificationService
}

// New creates a Client using the default HTTP transport.
func New(cfg *Config) (*Client, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	t, err := NewHTTPTransport(cfg.URL, cfg.Timeout, logger)
	if err != nil {
		return nil, err
	}
	return NewWithTransport(cfg, t)
}

// NewWithTransport creates a Client over a caller-supplied Transport, e.g. a
// WithRetry-wrapped one or a test double.
func NewWithTransport(cfg *Config, t Transport) (*Client, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	c := &Client{
		transport: t,
		app:       AppCredentials{Token: cfg.ApplicationToken, Secret: cfg.ApplicationSecret},
		logger:    logger,
	}
	if cfg.UserToken != "" {
		c.user = UserToken(cfg.UserToken)
	}
	c.bindServices()
	return c, nil
}

// WithUserToken returns a copy of the client whose user-scoped calls carry
// the given session token. The receiver is left untouched.
func (c *Client) WithUserToken(token string) *Client {
	clone := *c
	clone.user = UserToken(token)
	clone.bindServices()
	return &clone
}

func (c *Client) bindServices() {
	c.Identities = &IdentityService{c: c}
	c.Notifications = &NotificationService{c: c}
}

// appCreds returns the application credential pair.
func (c *Client) appCreds() Credentials {
	return c.app
}

// userCreds returns the configured user token, falling back to application
// credentials when none is set. Whether the fallback is acceptable for a
// given call is the service's decision, not the client's.
func (c *Client) userCreds() Credentials {
	if c.user != nil {
		return c.user
	}
	return c.app
}
