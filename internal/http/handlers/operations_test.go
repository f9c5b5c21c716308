package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"sudomock-connector/internal/connector"
	"sudomock-connector/internal/providers/sudomock"
)

type stubAPI struct {
	get func(ctx context.Context, uuid string) (map[string]any, error)
	me  func(ctx context.Context) (map[string]any, error)
}

func (s *stubAPI) UploadTemplate(ctx context.Context, fileURL, name string) (map[string]any, error) {
	return nil, nil
}

func (s *stubAPI) Render(ctx context.Context, req sudomock.RenderRequest) (*sudomock.RenderResult, error) {
	return nil, nil
}

func (s *stubAPI) AccountInfo(ctx context.Context) (map[string]any, error) {
	return s.me(ctx)
}

func (s *stubAPI) ListTemplates(ctx context.Context, query sudomock.ListQuery) (*sudomock.MockupPage, error) {
	return &sudomock.MockupPage{}, nil
}

func (s *stubAPI) GetTemplate(ctx context.Context, uuid string) (map[string]any, error) {
	return s.get(ctx, uuid)
}

func (s *stubAPI) UpdateTemplate(ctx context.Context, uuid, name string) (map[string]any, error) {
	return nil, nil
}

func (s *stubAPI) DeleteTemplate(ctx context.Context, uuid string) (map[string]any, error) {
	return nil, nil
}

func newTestApp(api connector.API) (*App, http.Handler) {
	logger := zerolog.New(io.Discard)
	app := NewApp(connector.NewRunner(api, logger), nil, logger)

	r := chi.NewRouter()
	r.Get("/v1/healthz", app.Health)
	r.Post("/v1/operations/{operation}", app.RunOperation)
	return app, r
}

func TestRunOperationHandler(t *testing.T) {
	api := &stubAPI{
		get: func(ctx context.Context, uuid string) (map[string]any, error) {
			return map[string]any{"uuid": uuid, "name": "Tee Front"}, nil
		},
	}
	_, router := newTestApp(api)

	body, _ := json.Marshal(map[string]any{
		"items": []map[string]any{{"mockupUuid": "m-1"}},
	})
	req := httptest.NewRequest(http.MethodPost, "/v1/operations/getTemplate", bytes.NewReader(body))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}
	var resp struct {
		Operation string `json:"operation"`
		Results   []struct {
			JSON       map[string]any `json:"json"`
			PairedItem int            `json:"pairedItem"`
		} `json:"results"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Operation != "getTemplate" || len(resp.Results) != 1 {
		t.Fatalf("response = %+v", resp)
	}
	if resp.Results[0].JSON["uuid"] != "m-1" {
		t.Fatalf("result = %#v", resp.Results[0].JSON)
	}
}

func TestRunOperationHandlerDefaultsToOneEmptyItem(t *testing.T) {
	var calls int
	api := &stubAPI{
		me: func(ctx context.Context) (map[string]any, error) {
			calls++
			return map[string]any{"plan": "pro"}, nil
		},
	}
	_, router := newTestApp(api)

	req := httptest.NewRequest(http.MethodPost, "/v1/operations/getAccountInfo", strings.NewReader(`{}`))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}
	if calls != 1 {
		t.Fatalf("account calls = %d, want 1", calls)
	}
}

func TestRunOperationHandlerRejectsUnknownOperation(t *testing.T) {
	_, router := newTestApp(&stubAPI{})

	req := httptest.NewRequest(http.MethodPost, "/v1/operations/renderAll", strings.NewReader(`{}`))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
}

func TestRunOperationHandlerFailFast(t *testing.T) {
	api := &stubAPI{
		get: func(ctx context.Context, uuid string) (map[string]any, error) {
			return nil, &sudomock.APIError{StatusCode: 404, Message: "template not found"}
		},
	}
	_, router := newTestApp(api)

	body, _ := json.Marshal(map[string]any{
		"items": []map[string]any{{"mockupUuid": "m-404"}},
	})
	req := httptest.NewRequest(http.MethodPost, "/v1/operations/getTemplate", bytes.NewReader(body))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadGateway {
		t.Fatalf("status = %d, want 502, body = %s", rec.Code, rec.Body.String())
	}
	if !strings.Contains(rec.Body.String(), "item 0") {
		t.Fatalf("error should name the failing item: %s", rec.Body.String())
	}
}

func TestRunOperationHandlerRejectsBadParameters(t *testing.T) {
	_, router := newTestApp(&stubAPI{})

	// mockupUuid is missing, so the failure never reaches the remote API and
	// must read as a caller mistake, not an upstream one.
	body, _ := json.Marshal(map[string]any{
		"items": []map[string]any{{"smartObjects": []any{}}},
	})
	req := httptest.NewRequest(http.MethodPost, "/v1/operations/render", bytes.NewReader(body))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400, body = %s", rec.Code, rec.Body.String())
	}
	if !strings.Contains(rec.Body.String(), "mockupUuid") {
		t.Fatalf("error should name the missing parameter: %s", rec.Body.String())
	}
}

func TestVerifyCredentialsHandler(t *testing.T) {
	logger := zerolog.New(io.Discard)

	transport := roundTripFunc(func(req *http.Request) (*http.Response, error) {
		status := http.StatusOK
		if req.Header.Get("X-API-KEY") != "good-key" {
			status = http.StatusUnauthorized
		}
		return &http.Response{
			StatusCode: status,
			Header:     http.Header{"Content-Type": []string{"application/json"}},
			Body:       io.NopCloser(strings.NewReader(`{"success":true}`)),
		}, nil
	})

	for _, tc := range []struct {
		key  string
		want int
	}{
		{key: "good-key", want: http.StatusOK},
		{key: "bad-key", want: http.StatusUnauthorized},
	} {
		client, err := sudomock.NewClient(sudomock.Options{
			APIKey:     tc.key,
			HTTPClient: &http.Client{Transport: transport},
		})
		if err != nil {
			t.Fatalf("new client: %v", err)
		}
		app := NewApp(nil, client, logger)

		req := httptest.NewRequest(http.MethodGet, "/v1/credentials/verify", nil)
		rec := httptest.NewRecorder()
		app.VerifyCredentials(rec, req)

		if rec.Code != tc.want {
			t.Fatalf("key %q: status = %d, want %d", tc.key, rec.Code, tc.want)
		}
	}
}

type roundTripFunc func(*http.Request) (*http.Response, error)

func (f roundTripFunc) RoundTrip(req *http.Request) (*http.Response, error) {
	return f(req)
}
