package sudomock

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"
)

// DefaultRetryAfter is assumed when a 429 reply carries no Retry-After
// header.
const DefaultRetryAfter = 60

// RateLimitTypeConcurrent is the error type the service reports when the
// concurrent-operation ceiling, not the per-minute budget, was hit.
const RateLimitTypeConcurrent = "concurrent_limit_exceeded"

// APIError reports a non-2xx reply other than a rate limit.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("sudomock: status %d: %s", e.StatusCode, e.Message)
}

// RateLimitError reports an HTTP 429 reply together with the retry guidance
// parsed from its headers and body.
type RateLimitError struct {
	// RetryAfter is the wait in seconds; DefaultRetryAfter when the header
	// was absent or unparsable.
	RetryAfter int
	// Reset is the RateLimit-Reset timestamp, nil when not reported.
	Reset *int
	// Type, Resource, Current and Limit come from the structured error body
	// and may be zero when the body carried none.
	Type     string
	Resource string
	Current  int
	Limit    int
	// Details is the raw error object from the body, passed through to
	// continue-on-fail output items.
	Details map[string]any
}

func (e *RateLimitError) Error() string {
	return fmt.Sprintf("sudomock: rate limited, retry after %d seconds", e.RetryAfter)
}

func newRateLimitError(header http.Header, raw []byte) *RateLimitError {
	e := &RateLimitError{RetryAfter: DefaultRetryAfter}
	if v, ok := headerInt(header, "Retry-After"); ok {
		e.RetryAfter = v
	}
	if v, ok := headerInt(header, "RateLimit-Reset"); ok {
		reset := v
		e.Reset = &reset
	}

	var body struct {
		Error struct {
			Type     string `json:"type"`
			Resource string `json:"resource"`
			Current  int    `json:"current"`
			Limit    int    `json:"limit"`
		} `json:"error"`
	}
	if err := json.Unmarshal(raw, &body); err == nil {
		e.Type = body.Error.Type
		e.Resource = body.Error.Resource
		e.Current = body.Error.Current
		e.Limit = body.Error.Limit
	}
	var generic map[string]any
	if err := json.Unmarshal(raw, &generic); err == nil {
		if inner, ok := generic["error"].(map[string]any); ok {
			e.Details = inner
		}
	}
	return e
}

// headerInt finds a header by case-insensitive name and parses it as an
// integer. Header.Get alone is not enough: replies that bypassed Go's
// canonicalization (proxies, recorded fixtures) can carry any casing.
func headerInt(header http.Header, name string) (int, bool) {
	value := strings.TrimSpace(header.Get(name))
	if value == "" {
		for key, values := range header {
			if strings.EqualFold(key, name) && len(values) > 0 {
				value = strings.TrimSpace(values[0])
				break
			}
		}
	}
	if value == "" {
		return 0, false
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return 0, false
	}
	return n, true
}

func newAPIError(status int, raw []byte) *APIError {
	message := extractMessage(raw)
	if message == "" {
		message = http.StatusText(status)
	}
	return &APIError{StatusCode: status, Message: message}
}

// extractMessage digs a human-readable message out of the common error body
// shapes: {"message": ...}, {"error": "..."} and {"error": {"message": ...}}.
func extractMessage(raw []byte) string {
	var body struct {
		Message string          `json:"message"`
		Error   json.RawMessage `json:"error"`
	}
	if err := json.Unmarshal(raw, &body); err != nil {
		return strings.TrimSpace(string(raw))
	}
	if body.Message != "" {
		return body.Message
	}
	if len(body.Error) > 0 {
		var asString string
		if err := json.Unmarshal(body.Error, &asString); err == nil {
			return asString
		}
		var asObject struct {
			Message string `json:"message"`
		}
		if err := json.Unmarshal(body.Error, &asObject); err == nil && asObject.Message != "" {
			return asObject.Message
		}
	}
	return ""
}
