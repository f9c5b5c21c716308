package connector

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"sudomock-connector/internal/domain"
	"sudomock-connector/internal/providers/sudomock"
)

// ItemError is a fatal run error tied to the input item that caused it.
type ItemError struct {
	Index int
	Op    domain.Operation
	Err   error
}

func (e *ItemError) Error() string {
	return fmt.Sprintf("item %d: %s: %v", e.Index, e.Op, e.Err)
}

func (e *ItemError) Unwrap() error {
	return e.Err
}

// classify turns a failed item into either a structured error result
// (continue-on-fail policy) or a fatal ItemError (fail-fast policy). Rate
// limits get dedicated retry guidance; everything else is reported with its
// status code when one is known.
func classify(err error, op domain.Operation, index int, continueOnFail bool) (Result, error) {
	var rateLimited *sudomock.RateLimitError
	if errors.As(err, &rateLimited) {
		message := rateLimitMessage(rateLimited)
		if !continueOnFail {
			return Result{}, &ItemError{Index: index, Op: op, Err: errors.New(message)}
		}
		errorType := rateLimited.Type
		if errorType == "" {
			errorType = "rate_limit_exceeded"
		}
		payload := map[string]any{
			"error":        message,
			"operation":    op.String(),
			"statusCode":   http.StatusTooManyRequests,
			"retryAfter":   rateLimited.RetryAfter,
			"errorType":    errorType,
			"errorDetails": rateLimited.Details,
		}
		if rateLimited.Reset != nil {
			payload["rateLimitReset"] = *rateLimited.Reset
		}
		return Result{JSON: payload, PairedItem: index}, nil
	}

	if !continueOnFail {
		return Result{}, &ItemError{Index: index, Op: op, Err: err}
	}
	payload := map[string]any{
		"error":     err.Error(),
		"operation": op.String(),
	}
	var apiErr *sudomock.APIError
	if errors.As(err, &apiErr) {
		payload["statusCode"] = apiErr.StatusCode
	}
	return Result{JSON: payload, PairedItem: index}, nil
}

// rateLimitMessage builds the human-readable retry guidance. Concurrent
// limits name the affected resource; the "concurrent-" prefix the service
// puts on resource names is stripped for readability.
func rateLimitMessage(e *sudomock.RateLimitError) string {
	if e.Type == sudomock.RateLimitTypeConcurrent {
		resource := strings.TrimPrefix(e.Resource, "concurrent-")
		if resource == "" {
			resource = "request"
		}
		return fmt.Sprintf("Concurrent %s limit reached (%d/%d). Please wait %d seconds and try again.",
			resource, e.Current, e.Limit, e.RetryAfter)
	}
	return fmt.Sprintf("Rate limit exceeded (%d requests/minute). Please retry after %d seconds.",
		e.Limit, e.RetryAfter)
}
