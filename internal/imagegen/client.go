package imagegen

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Generator turns a prompt into a reference to a generated image.
// *Client implements it; tests substitute their own.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// Ensure Client implements Generator at compile time.
var _ Generator = (*Client)(nil)

// CredentialSource yields the bearer token. It is consulted on every request.
type CredentialSource func() string

// Options configure a Client.
type Options struct {
	Endpoint    string
	Model       string // omitted from the request when empty
	Size        string
	StyleSuffix string
	Credentials CredentialSource
	Timeout     time.Duration // zero keeps the transport default
	HTTPClient  *http.Client
}

// Client talks to an OpenAI-compatible image generation endpoint.
type Client struct {
	endpoint    *url.URL
	model       string
	size        string
	styleSuffix string
	credentials CredentialSource
	http        *http.Client
	userAgent   string
}

const (
	defaultSize      = "512x512"
	defaultUserAgent = "creahut/0.1"
	imageCount       = 1
	errorBodyLimit   = 512
)

// ErrMalformedResponse marks a 2xx response that did not carry a usable image.
var ErrMalformedResponse = errors.New("malformed image response")

// APIError is returned for non-2xx responses.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("image api returned status %d", e.Status)
	}
	return fmt.Sprintf("image api returned status %d: %s", e.Status, e.Message)
}

// NewClient builds a Client for the given options.
func NewClient(opts Options) (*Client, error) {
	endpoint, err := parseEndpoint(opts.Endpoint)
	if err != nil {
		return nil, err
	}

	httpClient := opts.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: opts.Timeout}
	}

	size := strings.TrimSpace(opts.Size)
	if size == "" {
		size = defaultSize
	}

	creds := opts.Credentials
	if creds == nil {
		creds = func() string { return "" }
	}

	return &Client{
		endpoint:    endpoint,
		model:       strings.TrimSpace(opts.Model),
		size:        size,
		styleSuffix: opts.StyleSuffix,
		credentials: creds,
		http:        httpClient,
		userAgent:   defaultUserAgent,
	}, nil
}

// StyledPrompt returns the text actually sent for prompt.
func (c *Client) StyledPrompt(prompt string) string {
	return prompt + c.styleSuffix
}

// Generate requests one image for prompt and returns its URL.
func (c *Client) Generate(ctx context.Context, prompt string) (string, error) {
	if c == nil {
		return "", fmt.Errorf("client is nil")
	}

	payload := generationRequest{
		Model:  c.model,
		Prompt: c.StyledPrompt(prompt),
		N:      imageCount,
		Size:   c.size,
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint.String(), bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.credentials())
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("X-Request-ID", RequestIDFromContext(ctx))

	resp, err := c.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("execute request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", newAPIError(resp)
	}

	var decoded generationResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return "", fmt.Errorf("%w: decode response: %v", ErrMalformedResponse, err)
	}
	if len(decoded.Data) == 0 {
		return "", fmt.Errorf("%w: no images in response", ErrMalformedResponse)
	}
	ref := strings.TrimSpace(decoded.Data[0].URL)
	if ref == "" {
		return "", fmt.Errorf("%w: first image has no url", ErrMalformedResponse)
	}
	return ref, nil
}

func newAPIError(resp *http.Response) *APIError {
	raw, _ := io.ReadAll(io.LimitReader(resp.Body, errorBodyLimit))
	apiErr := &APIError{Status: resp.StatusCode}

	var envelope errorResponse
	if err := json.Unmarshal(raw, &envelope); err == nil && envelope.Error != nil && envelope.Error.Message != "" {
		apiErr.Message = envelope.Error.Message
		return apiErr
	}
	apiErr.Message = strings.TrimSpace(string(raw))
	return apiErr
}

type requestIDKey struct{}

// WithRequestID tags ctx so the id is sent as X-Request-ID.
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey{}, id)
}

// RequestIDFromContext returns the id set by WithRequestID, or a fresh one.
func RequestIDFromContext(ctx context.Context) string {
	if id, ok := ctx.Value(requestIDKey{}).(string); ok && id != "" {
		return id
	}
	return uuid.NewString()
}

// NewRequestID returns a random correlation id.
func NewRequestID() string {
	return uuid.NewString()
}

func parseEndpoint(raw string) (*url.URL, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return nil, fmt.Errorf("image endpoint is empty")
	}
	if !strings.Contains(trimmed, "://") {
		trimmed = "https://" + trimmed
	}
	u, err := url.Parse(trimmed)
	if err != nil {
		return nil, fmt.Errorf("parse endpoint %q: %w", raw, err)
	}
	if u.Host == "" {
		return nil, fmt.Errorf("parse endpoint %q: missing host", raw)
	}
	u.Fragment = ""
	return u, nil
}
