// Package watson holds the transport shared by the cloud service clients:
// authentication, request construction, JSON decoding and error mapping.
package watson

import (
	"bytes"
	"context"
	"encoding/base64"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/go-logr/logr"
	json "github.com/goccy/go-json"
	"github.com/google/uuid"
)

// Service names used in errors and logs
const (
	ServiceSpeechToText        = "speech_to_text"
	ServiceTextToSpeech        = "text_to_speech"
	ServiceLanguageTranslation = "language_translation"
	ServiceVisualRecognition   = "visual_recognition"
)

// TransactionHeader carries the per-request ID
const TransactionHeader = "X-Global-Transaction-Id"

// AuthScheme selects how credentials are attached to requests
type AuthScheme int

const (
	// BasicAuth sends username and password in the Authorization header
	BasicAuth AuthScheme = iota
	// APIKeyQuery sends the API key as the api_key query parameter
	APIKeyQuery
)

// Credentials for a single service
type Credentials struct {
	Username string
	Password string
	APIKey   string
}

// Config describes one service client
type Config struct {
	Service     string
	Endpoint    string
	Credentials Credentials
	Auth        AuthScheme
	Timeout     time.Duration
	HTTPClient  *http.Client
}

// Client is an authenticated HTTP client bound to one service endpoint
type Client struct {
	service    string
	endpoint   *url.URL
	creds      Credentials
	auth       AuthScheme
	httpClient *http.Client
	logger     logr.Logger
}

// NewClient validates the endpoint and builds a client
func NewClient(cfg Config, logger logr.Logger) (*Client, error) {
	if cfg.Service == "" {
		return nil, fmt.Errorf("service name is required")
	}
	u, err := url.Parse(strings.TrimRight(cfg.Endpoint, "/"))
	if err != nil {
		return nil, fmt.Errorf("%s: invalid endpoint %q: %w", cfg.Service, cfg.Endpoint, err)
	}
	if u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("%s: endpoint %q must be an absolute URL", cfg.Service, cfg.Endpoint)
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		timeout := cfg.Timeout
		if timeout == 0 {
			timeout = 60 * time.Second
		}
		httpClient = &http.Client{Timeout: timeout}
	}

	return &Client{
		service:    cfg.Service,
		endpoint:   u,
		creds:      cfg.Credentials,
		auth:       cfg.Auth,
		httpClient: httpClient,
		logger:     logger.WithName(cfg.Service),
	}, nil
}

// Service returns the service name
func (c *Client) Service() string {
	return c.service
}

// Logger returns the client's logger
func (c *Client) Logger() logr.Logger {
	return c.logger
}

// URL resolves a path and query against the endpoint
func (c *Client) URL(path string, query url.Values) *url.URL {
	u := *c.endpoint
	u.Path = strings.TrimRight(u.Path, "/") + "/" + strings.TrimLeft(path, "/")
	if query != nil {
		u.RawQuery = query.Encode()
	}
	return &u
}

// CheckCredentials reports whether the credentials required by the auth scheme are present
func (c *Client) CheckCredentials() error {
	switch c.auth {
	case APIKeyQuery:
		if c.creds.APIKey == "" {
			return NewServiceError(c.service, 0, "missing_credentials", "api key is not configured")
		}
	default:
		if c.creds.Username == "" || c.creds.Password == "" {
			return NewServiceError(c.service, 0, "missing_credentials", "username and password are not configured")
		}
	}
	return nil
}

// AuthHeader returns headers carrying the credentials, for non-HTTP transports
func (c *Client) AuthHeader() http.Header {
	h := http.Header{}
	if c.auth == BasicAuth {
		token := base64.StdEncoding.EncodeToString([]byte(c.creds.Username + ":" + c.creds.Password))
		h.Set("Authorization", "Basic "+token)
	}
	h.Set(TransactionHeader, uuid.NewString())
	return h
}

// NewRequest builds an authenticated request
func (c *Client) NewRequest(ctx context.Context, method, path string, query url.Values, body io.Reader) (*http.Request, error) {
	if err := c.CheckCredentials(); err != nil {
		return nil, err
	}

	if c.auth == APIKeyQuery {
		if query == nil {
			query = url.Values{}
		}
		query.Set("api_key", c.creds.APIKey)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.URL(path, query).String(), body)
	if err != nil {
		return nil, fmt.Errorf("failed to create %s request: %w", c.service, err)
	}
	if c.auth == BasicAuth {
		req.SetBasicAuth(c.creds.Username, c.creds.Password)
	}
	req.Header.Set(TransactionHeader, uuid.NewString())
	return req, nil
}

// NewJSONRequest builds an authenticated request with a JSON body
func (c *Client) NewJSONRequest(ctx context.Context, method, path string, query url.Values, payload interface{}) (*http.Request, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal %s request: %w", c.service, err)
	}
	req, err := c.NewRequest(ctx, method, path, query, bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	return req, nil
}

// Do sends the request. Non-2xx responses are returned as *ServiceError and the body is closed.
func (c *Client) Do(req *http.Request) (*http.Response, error) {
	start := time.Now()
	transaction := req.Header.Get(TransactionHeader)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Error(err, "Request failed", "method", req.Method, "path", req.URL.Path, "transaction", transaction)
		return nil, fmt.Errorf("%s request failed: %w", c.service, err)
	}

	c.logger.V(1).Info("Request completed", "method", req.Method, "path", req.URL.Path,
		"status", resp.StatusCode, "duration", time.Since(start), "transaction", transaction)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		defer resp.Body.Close()
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 64*1024))
		return nil, ParseErrorBody(c.service, resp.StatusCode, body)
	}
	return resp, nil
}

// DoJSON sends the request and decodes a JSON response into out
func (c *Client) DoJSON(req *http.Request, out interface{}) error {
	req.Header.Set("Accept", "application/json")

	resp, err := c.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode %s response: %w", c.service, err)
	}
	return nil
}
