package api

import (
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/slok/jiffybox/internal/log"
	"github.com/slok/jiffybox/internal/model"
)

const (
	// DefaultBaseURL is the JiffyBox API endpoint.
	DefaultBaseURL = "https://api.jiffybox.de/"
	// DefaultVersion is the API version used in the request path.
	DefaultVersion = "v1.0"
	// DefaultTimeout is the default timeout of a single request.
	DefaultTimeout = 30 * time.Second
)

// Provider collections.
const (
	CollectionBoxes         = "jiffyBoxes"
	CollectionBackups       = "backups"
	CollectionDistributions = "distributions"
	CollectionIPs           = "ips"
	CollectionPlans         = "plans"
	CollectionDoc           = "doc"
)

const redactedToken = "<token>"

//go:generate mockery --case underscore --output apimock --outpkg apimock --name Invoker

// Invoker executes a request against the provider and decodes its envelope.
type Invoker interface {
	Do(ctx context.Context, req Request) (*Response, error)
}

// Request is a single provider call.
type Request struct {
	// Method is one of GET, POST, PUT or DELETE. Empty means GET.
	Method string
	// Collection is the resource collection. Empty means CollectionBoxes.
	Collection string
	// ID is the optional resource identifier appended to the collection path.
	ID *int
	// Payload is form encoded as the body of POST and PUT requests.
	Payload map[string]string
}

// ClientConfig is the configuration of the API client.
type ClientConfig struct {
	// Token is the API token, it's part of the request path.
	Token string
	// BaseURL is the API endpoint. Default: DefaultBaseURL.
	BaseURL string
	// Version is the API version. Default: DefaultVersion.
	Version string
	// Timeout is the timeout of each request. Default: DefaultTimeout.
	// Ignored when HTTPClient is set.
	Timeout time.Duration
	// VerifyTLS enables TLS certificate and host verification.
	//
	// Verification is disabled by default to keep working with the provider's
	// historical self-signed setup. This is an explicit opt-out, set it to true
	// whenever the endpoint has a valid certificate. Ignored when HTTPClient is set.
	VerifyTLS bool
	// HTTPClient is the HTTP client used for the requests, when set it's used as is.
	HTTPClient *http.Client
	Logger     log.Logger
}

func (c *ClientConfig) defaults() error {
	if c.Token == "" {
		return fmt.Errorf("token is required: %w", model.ErrNotValid)
	}

	if c.BaseURL == "" {
		c.BaseURL = DefaultBaseURL
	}
	if !strings.HasSuffix(c.BaseURL, "/") {
		c.BaseURL += "/"
	}

	if c.Version == "" {
		c.Version = DefaultVersion
	}

	if c.Timeout < 0 {
		return fmt.Errorf("timeout can't be negative: %w", model.ErrNotValid)
	}
	if c.Timeout == 0 {
		c.Timeout = DefaultTimeout
	}

	if c.HTTPClient == nil {
		c.HTTPClient = &http.Client{
			Timeout:   c.Timeout,
			Transport: newTransport(c.VerifyTLS),
		}
	}

	if c.Logger == nil {
		c.Logger = log.Noop
	}
	c.Logger = c.Logger.WithValues(log.Kv{"svc": "api.Client"})

	return nil
}

func newTransport(verifyTLS bool) *http.Transport {
	t := http.DefaultTransport.(*http.Transport).Clone()
	t.TLSClientConfig = &tls.Config{
		InsecureSkipVerify: !verifyTLS, //nolint:gosec // Opt-out documented on ClientConfig.VerifyTLS.
	}
	return t
}

// Client executes requests against the provider API.
//
// The client has no retries, every failure is final for that call.
type Client struct {
	root       string
	token      string
	httpClient *http.Client
	logger     log.Logger
}

// NewClient returns a new API client.
func NewClient(cfg ClientConfig) (*Client, error) {
	if err := cfg.defaults(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &Client{
		root:       cfg.BaseURL + cfg.Token + "/" + cfg.Version + "/",
		token:      cfg.Token,
		httpClient: cfg.HTTPClient,
		logger:     cfg.Logger,
	}, nil
}

// URL returns the target URL of a collection and an optional resource id.
func (c *Client) URL(collection string, id *int) string {
	if collection == "" {
		collection = CollectionBoxes
	}

	u := c.root + collection
	if id != nil {
		u += "/" + strconv.Itoa(*id)
	}
	return u
}

// Do executes the request and decodes the response envelope.
func (c *Client) Do(ctx context.Context, req Request) (*Response, error) {
	raw, err := c.Execute(ctx, req)
	if err != nil {
		return nil, err
	}

	resp, err := Decode(raw)
	if err != nil {
		return nil, fmt.Errorf("could not decode response: %w", err)
	}

	if len(resp.Messages) > 0 {
		c.logger.Debugf("Provider returned %d messages", len(resp.Messages))
	}

	return resp, nil
}

// Execute executes the request and returns the raw response body.
//
// HTTP status codes are not inspected, the provider reports problems in the body.
func (c *Client) Execute(ctx context.Context, req Request) ([]byte, error) {
	method := strings.ToUpper(req.Method)
	if method == "" {
		method = http.MethodGet
	}

	var (
		body    io.Reader
		encoded string
	)
	switch method {
	case http.MethodPost, http.MethodPut:
		encoded = EncodeForm(req.Payload)
		body = strings.NewReader(encoded)
	case http.MethodGet, http.MethodDelete:
		if len(req.Payload) > 0 {
			c.logger.Debugf("Ignoring payload on %s request", method)
		}
	default:
		return nil, fmt.Errorf("unsupported method %q: %w", req.Method, model.ErrNotValid)
	}

	httpReq, err := http.NewRequestWithContext(ctx, method, c.URL(req.Collection, req.ID), body)
	if err != nil {
		return nil, fmt.Errorf("could not create request: %w: %w", model.ErrNotValid, c.redact(err))
	}

	if body != nil {
		httpReq.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	}
	if method == http.MethodPut {
		httpReq.ContentLength = int64(len(encoded))
	}

	logger := c.logger.WithValues(log.Kv{"method": method, "collection": collectionOrDefault(req.Collection)})
	logger.Debugf("Executing request")

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("could not execute request: %w: %w", model.ErrTransport, c.redact(err))
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("could not read response body: %w: %w", model.ErrTransport, c.redact(err))
	}

	logger.Debugf("Got HTTP %d with %d bytes", resp.StatusCode, len(data))

	return data, nil
}

// redact removes the token from URLs embedded in net/http errors.
func (c *Client) redact(err error) error {
	var urlErr *url.Error
	if errors.As(err, &urlErr) {
		urlErr.URL = strings.ReplaceAll(urlErr.URL, c.token, redactedToken)
	}
	return err
}

func collectionOrDefault(collection string) string {
	if collection == "" {
		return CollectionBoxes
	}
	return collection
}
