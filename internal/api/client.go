package api

import (
	"context"
	"fmt"
	"sync"

	http "github.com/bogdanfinn/fhttp"
	tls_client "github.com/bogdanfinn/tls-client"
	"github.com/bogdanfinn/tls-client/profiles"

	apierrors "github.com/diogo/kondate/internal/errors"
	"github.com/diogo/kondate/internal/models"
)

// GeminiClientInterface is what the chat session needs from a model client
type GeminiClientInterface interface {
	GenerateContent(ctx context.Context, req models.GenerateRequest) (*models.Reply, error)
	GetModel() models.Model
	SetModel(model models.Model)
	Close()
}

// HTTPDoer is the subset of tls_client.HttpClient the client uses
type HTTPDoer interface {
	Do(req *http.Request) (*http.Response, error)
	CloseIdleConnections()
}

// GeminiClient talks to the Gemini generateContent REST endpoint
type GeminiClient struct {
	httpClient     HTTPDoer
	apiKey         string
	endpoint       string
	model          models.Model
	timeoutSeconds int
	mu             sync.RWMutex
	closed         bool
}

// Ensure GeminiClient implements GeminiClientInterface
var _ GeminiClientInterface = (*GeminiClient)(nil)

// ClientOption is a function that configures the client
type ClientOption func(*GeminiClient)

// WithModel sets the model requests are sent to
func WithModel(model models.Model) ClientOption {
	return func(c *GeminiClient) {
		c.model = model
	}
}

// WithEndpoint overrides the API base URL
func WithEndpoint(endpoint string) ClientOption {
	return func(c *GeminiClient) {
		if endpoint != "" {
			c.endpoint = endpoint
		}
	}
}

// WithTimeoutSeconds sets a request timeout; 0 disables it
func WithTimeoutSeconds(seconds int) ClientOption {
	return func(c *GeminiClient) {
		c.timeoutSeconds = seconds
	}
}

// WithHTTPClient injects the transport (used by tests)
func WithHTTPClient(doer HTTPDoer) ClientOption {
	return func(c *GeminiClient) {
		c.httpClient = doer
	}
}

// NewClient creates a new GeminiClient
func NewClient(apiKey string, opts ...ClientOption) (*GeminiClient, error) {
	if apiKey == "" {
		return nil, apierrors.ErrMissingAPIKey
	}

	client := &GeminiClient{
		apiKey:   apiKey,
		endpoint: models.EndpointBase,
		model:    models.DefaultModel,
	}

	for _, opt := range opts {
		opt(client)
	}

	if client.httpClient == nil {
		options := []tls_client.HttpClientOption{
			tls_client.WithTimeoutSeconds(client.timeoutSeconds),
			tls_client.WithClientProfile(profiles.Chrome_120),
			tls_client.WithNotFollowRedirects(),
		}

		httpClient, err := tls_client.NewHttpClient(tls_client.NewNoopLogger(), options...)
		if err != nil {
			return nil, fmt.Errorf("failed to create HTTP client: %w", err)
		}
		client.httpClient = httpClient
	}

	return client, nil
}

// Close releases idle connections. Further requests fail.
func (c *GeminiClient) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return
	}
	c.closed = true
	c.httpClient.CloseIdleConnections()
}

// IsClosed returns whether the client is closed
func (c *GeminiClient) IsClosed() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.closed
}

// GetModel returns the model requests are sent to
func (c *GeminiClient) GetModel() models.Model {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.model
}

// SetModel changes the model requests are sent to
func (c *GeminiClient) SetModel(model models.Model) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.model = model
}

// Endpoint returns the API base URL
func (c *GeminiClient) Endpoint() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.endpoint
}
