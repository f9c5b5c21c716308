package sudomock

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

	"github.com/rs/zerolog"

	"sudomock-connector/internal/infra"
)

// DefaultBaseURL is the fixed production host of the rendering service.
const DefaultBaseURL = "https://api.sudomock.com"

// ErrMissingAPIKey indicates that the client was configured without
// credentials.
var ErrMissingAPIKey = errors.New("sudomock: api key is required")

// Options configures the SudoMock client.
type Options struct {
	APIKey         string
	BaseURL        string
	HTTPClient     *http.Client
	Logger         *infra.Logger
	RequestTimeout time.Duration
}

// Client performs authenticated HTTP calls against the SudoMock rendering
// API. It owns the credential header; callers never attach it themselves.
type Client struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
	logger     *infra.Logger
}

// NewClient constructs a client with sane defaults and injected
// dependencies.
func NewClient(opts Options) (*Client, error) {
	httpClient := opts.HTTPClient
	if httpClient == nil {
		timeout := opts.RequestTimeout
		if timeout <= 0 {
			timeout = 45 * time.Second
		}
		httpClient = &http.Client{Timeout: timeout}
	}
	baseURL := strings.TrimRight(opts.BaseURL, "/")
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	var logger *infra.Logger
	if opts.Logger != nil {
		logger = opts.Logger
	} else {
		discard := zerolog.New(io.Discard)
		l := infra.Logger(discard)
		logger = &l
	}
	return &Client{
		apiKey:     strings.TrimSpace(opts.APIKey),
		baseURL:    baseURL,
		httpClient: httpClient,
		logger:     logger,
	}, nil
}

// HasCredentials reports whether the client can perform remote calls.
func (c *Client) HasCredentials() bool {
	return c.apiKey != ""
}

// UploadTemplate registers a PSD template from a public URL. The optional
// name is omitted from the body when empty and the service derives one from
// the filename.
func (c *Client) UploadTemplate(ctx context.Context, fileURL, name string) (map[string]any, error) {
	body := uploadRequest{PsdFileURL: fileURL, PsdName: name}
	decoded, _, err := c.do(ctx, http.MethodPost, "/api/v1/psd/upload", nil, body)
	return decoded, err
}

// Render submits a render request and returns both the raw reply and its
// typed view.
func (c *Client) Render(ctx context.Context, req RenderRequest) (*RenderResult, error) {
	decoded, raw, err := c.do(ctx, http.MethodPost, "/api/v1/renders", nil, req)
	if err != nil {
		return nil, err
	}
	var typed RenderResponse
	if err := json.Unmarshal(raw, &typed); err != nil {
		return nil, fmt.Errorf("sudomock: decode render response: %w", err)
	}
	c.logger.Debug().
		Str("mockup_uuid", req.MockupUUID).
		Int("smart_objects", len(req.SmartObjects)).
		Int("print_files", len(typed.PrintFiles())).
		Msg("sudomock: render complete")
	return &RenderResult{Raw: decoded, Response: typed}, nil
}

// AccountInfo fetches account details, subscription and usage statistics.
func (c *Client) AccountInfo(ctx context.Context) (map[string]any, error) {
	decoded, _, err := c.do(ctx, http.MethodGet, "/api/v1/me", nil, nil)
	return decoded, err
}

// VerifyCredentials checks that the configured API key is accepted.
func (c *Client) VerifyCredentials(ctx context.Context) error {
	_, err := c.AccountInfo(ctx)
	return err
}

// ListTemplates fetches one page of the template listing.
func (c *Client) ListTemplates(ctx context.Context, query ListQuery) (*MockupPage, error) {
	_, raw, err := c.do(ctx, http.MethodGet, "/api/v1/mockups", query.values(), nil)
	if err != nil {
		return nil, err
	}
	var typed listResponse
	if err := json.Unmarshal(raw, &typed); err != nil {
		return nil, fmt.Errorf("sudomock: decode mockup listing: %w", err)
	}
	return &MockupPage{Mockups: typed.Data.Mockups}, nil
}

// GetTemplate fetches one template by identifier.
func (c *Client) GetTemplate(ctx context.Context, uuid string) (map[string]any, error) {
	decoded, _, err := c.do(ctx, http.MethodGet, "/api/v1/mockups/"+url.PathEscape(uuid), nil, nil)
	return decoded, err
}

// UpdateTemplate renames a template.
func (c *Client) UpdateTemplate(ctx context.Context, uuid, name string) (map[string]any, error) {
	body := updateRequest{Name: name}
	decoded, _, err := c.do(ctx, http.MethodPatch, "/api/v1/mockups/"+url.PathEscape(uuid), nil, body)
	return decoded, err
}

// DeleteTemplate removes a template by identifier.
func (c *Client) DeleteTemplate(ctx context.Context, uuid string) (map[string]any, error) {
	decoded, _, err := c.do(ctx, http.MethodDelete, "/api/v1/mockups/"+url.PathEscape(uuid), nil, nil)
	return decoded, err
}

// do is the single call path: it attaches the credential header, executes
// the request and turns non-2xx replies into discriminated errors. The reply
// body is returned decoded as a generic map plus raw for typed re-decoding.
func (c *Client) do(ctx context.Context, method, path string, query url.Values, payload any) (map[string]any, []byte, error) {
	if !c.HasCredentials() {
		return nil, nil, ErrMissingAPIKey
	}
	var reader io.Reader
	if payload != nil {
		body, err := json.Marshal(payload)
		if err != nil {
			return nil, nil, fmt.Errorf("sudomock: encode request: %w", err)
		}
		reader = bytes.NewReader(body)
	}
	endpoint := c.baseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, method, endpoint, reader)
	if err != nil {
		return nil, nil, fmt.Errorf("sudomock: build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-API-KEY", c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, nil, fmt.Errorf("sudomock: http request: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, nil, fmt.Errorf("sudomock: read response: %w", err)
	}
	if resp.StatusCode == http.StatusTooManyRequests {
		return nil, nil, newRateLimitError(resp.Header, raw)
	}
	if resp.StatusCode >= 300 {
		return nil, nil, newAPIError(resp.StatusCode, raw)
	}

	var decoded map[string]any
	if len(raw) > 0 {
		if err := json.Unmarshal(raw, &decoded); err != nil {
			return nil, nil, fmt.Errorf("sudomock: decode response: %w", err)
		}
	}
	return decoded, raw, nil
}
