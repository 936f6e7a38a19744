package judge0

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

const (
	// DefaultBaseURL is the Judge0 CE endpoint published on RapidAPI.
	DefaultBaseURL = "https://judge0-ce.p.rapidapi.com"
	// DefaultHost is sent as X-RapidAPI-Host.
	DefaultHost = "judge0-ce.p.rapidapi.com"
)

// ErrMockNotImplemented indicates no behavior is configured for a mock method.
var ErrMockNotImplemented = errors.New("mock method not implemented")

// Client is the interface for the remote execution service.
type Client interface {
	// Submit runs a submission synchronously and returns its decoded result.
	Submit(ctx context.Context, sub Submission) (*Result, error)

	// Languages lists the languages the remote service accepts.
	Languages(ctx context.Context) ([]Language, error)
}

// Config describes how to reach the service.
type Config struct {
	BaseURL string
	Host    string
	APIKey  string
	// Timeout bounds each outbound call. Zero leaves the call unbounded.
	Timeout time.Duration
}

// APIError captures non-success HTTP responses.
type APIError struct {
	StatusCode int
	Body       string
}

func (e *APIError) Error() string {
	if strings.TrimSpace(e.Body) == "" {
		return fmt.Sprintf("judge0 api error: status %d", e.StatusCode)
	}
	return fmt.Sprintf("judge0 api error: status %d: %s", e.StatusCode, strings.TrimSpace(e.Body))
}

// HTTPClient talks to Judge0 over HTTP.
type HTTPClient struct {
	baseURL    string
	host       string
	apiKey     string
	httpClient *http.Client
}

// Option customizes an HTTPClient.
type Option func(*HTTPClient)

// WithHTTPClient overrides the underlying *http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *HTTPClient) {
		if hc != nil {
			c.httpClient = hc
		}
	}
}

// WithBaseURL overrides the configured base URL.
func WithBaseURL(baseURL string) Option {
	return func(c *HTTPClient) {
		if strings.TrimSpace(baseURL) != "" {
			c.baseURL = strings.TrimRight(baseURL, "/")
		}
	}
}

// NewClient creates a Judge0 client. Empty BaseURL and Host fall back to the
// RapidAPI defaults. An empty APIKey is allowed; the caller decides whether
// that is a misconfiguration.
func NewClient(cfg Config, opts ...Option) *HTTPClient {
	baseURL := strings.TrimRight(cfg.BaseURL, "/")
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	host := cfg.Host
	if host == "" {
		host = DefaultHost
	}

	c := &HTTPClient{
		baseURL:    baseURL,
		host:       host,
		apiKey:     cfg.APIKey,
		httpClient: &http.Client{Timeout: cfg.Timeout},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Submit posts a submission in synchronous base64 mode.
func (c *HTTPClient) Submit(ctx context.Context, sub Submission) (*Result, error) {
	body, err := c.doRequest(ctx, http.MethodPost, "/submissions?base64_encoded=true&wait=true", sub)
	if err != nil {
		return nil, err
	}

	var wire wireResult
	if err := json.Unmarshal(body, &wire); err != nil {
		return nil, fmt.Errorf("decoding submission result: %w", err)
	}
	return wire.decode()
}

// Languages fetches the remote language list.
func (c *HTTPClient) Languages(ctx context.Context) ([]Language, error) {
	body, err := c.doRequest(ctx, http.MethodGet, "/languages", nil)
	if err != nil {
		return nil, err
	}

	var langs []Language
	if err := json.Unmarshal(body, &langs); err != nil {
		return nil, fmt.Errorf("decoding languages: %w", err)
	}
	return langs, nil
}

func (c *HTTPClient) doRequest(ctx context.Context, method, path string, payload any) ([]byte, error) {
	var bodyReader io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("marshaling payload: %w", err)
		}
		bodyReader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, bodyReader)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("X-RapidAPI-Key", c.apiKey)
	req.Header.Set("X-RapidAPI-Host", c.host)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("calling judge0: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &APIError{StatusCode: resp.StatusCode, Body: string(body)}
	}
	return body, nil
}

// MockClient is an injectable fake for tests.
type MockClient struct {
	SubmitFn    func(ctx context.Context, sub Submission) (*Result, error)
	LanguagesFn func(ctx context.Context) ([]Language, error)
}

// Submit invokes SubmitFn or returns ErrMockNotImplemented.
func (m *MockClient) Submit(ctx context.Context, sub Submission) (*Result, error) {
	if m.SubmitFn == nil {
		return nil, ErrMockNotImplemented
	}
	return m.SubmitFn(ctx, sub)
}

// Languages invokes LanguagesFn or returns ErrMockNotImplemented.
func (m *MockClient) Languages(ctx context.Context) ([]Language, error) {
	if m.LanguagesFn == nil {
		return nil, ErrMockNotImplemented
	}
	return m.LanguagesFn(ctx)
}
