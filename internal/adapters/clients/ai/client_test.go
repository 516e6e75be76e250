package ai

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"reflect"
	"testing"
	"time"

	"github.com/taskfolio/taskfolio/internal/domain"
	"github.com/taskfolio/taskfolio/internal/platform/config"
	"github.com/taskfolio/taskfolio/internal/platform/httpclient"
)

// newTestClient creates an httpclient.Client pointing at the given test server
// with circuit breaker and retry configured for fast test execution.
func newTestClient(t *testing.T, baseURL string) *httpclient.Client {
	t.Helper()

	cfg := &config.ClientConfig{
		BaseURL: baseURL,
		Timeout: 5 * time.Second,
		Retry: config.RetryConfig{
			MaxAttempts:     1,
			InitialInterval: 10 * time.Millisecond,
			MaxInterval:     10 * time.Millisecond,
			Multiplier:      1,
		},
		CircuitBreaker: config.CircuitBreakerConfig{
			MaxFailures:   5,
			Timeout:       30 * time.Second,
			HalfOpenLimit: 1,
		},
	}

	return httpclient.New(cfg, "ai-completion-test", nil, slog.Default())
}

func completionHandler(t *testing.T, text string) http.HandlerFunc {
	t.Helper()

	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/v1/completions" {
			t.Errorf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/json")
		err := json.NewEncoder(w).Encode(map[string]any{
			"choices": []map[string]any{{"text": text}},
		})
		if err != nil {
			t.Errorf("encoding response: %v", err)
		}
	}
}

func TestComplete_SplitsLines(t *testing.T) {
	t.Parallel()

	ts := httptest.NewServer(completionHandler(t, "Buy milk\nWalk the dog\n\nCall dentist\n"))
	defer ts.Close()

	client := New(newTestClient(t, ts.URL), "completion-small", slog.Default())

	lines, err := client.Complete(context.Background(), "suggest things")
	if err != nil {
		t.Fatalf("Complete() error = %v", err)
	}

	want := []string{"Buy milk", "Walk the dog", "Call dentist"}
	if !reflect.DeepEqual(lines, want) {
		t.Errorf("lines = %v, want %v", lines, want)
	}
}

func TestComplete_StripsListMarkers(t *testing.T) {
	t.Parallel()

	ts := httptest.NewServer(completionHandler(t, "- Buy milk\n* Walk the dog\n"))
	defer ts.Close()

	client := New(newTestClient(t, ts.URL), "completion-small", slog.Default())

	lines, err := client.Complete(context.Background(), "suggest things")
	if err != nil {
		t.Fatalf("Complete() error = %v", err)
	}

	want := []string{"Buy milk", "Walk the dog"}
	if !reflect.DeepEqual(lines, want) {
		t.Errorf("lines = %v, want %v", lines, want)
	}
}

func TestComplete_SendsModelAndPrompt(t *testing.T) {
	t.Parallel()

	var got completionRequest
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			t.Errorf("decoding request: %v", err)
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"choices": []map[string]any{{"text": "ok"}},
		})
	}))
	defer ts.Close()

	client := New(newTestClient(t, ts.URL), "completion-small", slog.Default())

	if _, err := client.Complete(context.Background(), "the prompt"); err != nil {
		t.Fatalf("Complete() error = %v", err)
	}

	if got.Model != "completion-small" {
		t.Errorf("model = %q, want %q", got.Model, "completion-small")
	}
	if got.Prompt != "the prompt" {
		t.Errorf("prompt = %q, want %q", got.Prompt, "the prompt")
	}
}

func TestComplete_BadRequestMapsToValidation(t *testing.T) {
	t.Parallel()

	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		_ = json.NewEncoder(w).Encode(map[string]any{
			"error": map[string]any{"message": "prompt too long", "type": "invalid_request"},
		})
	}))
	defer ts.Close()

	client := New(newTestClient(t, ts.URL), "completion-small", slog.Default())

	_, err := client.Complete(context.Background(), "suggest things")
	if !errors.Is(err, domain.ErrValidation) {
		t.Errorf("error = %v, want domain.ErrValidation", err)
	}
}

func TestComplete_ServerErrorMapsToUnavailable(t *testing.T) {
	t.Parallel()

	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer ts.Close()

	client := New(newTestClient(t, ts.URL), "completion-small", slog.Default())

	_, err := client.Complete(context.Background(), "suggest things")
	if !errors.Is(err, domain.ErrUnavailable) {
		t.Errorf("error = %v, want domain.ErrUnavailable", err)
	}
}

func TestComplete_UnauthorizedMapsToForbidden(t *testing.T) {
	t.Parallel()

	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer ts.Close()

	client := New(newTestClient(t, ts.URL), "completion-small", slog.Default())

	_, err := client.Complete(context.Background(), "suggest things")
	if !errors.Is(err, domain.ErrForbidden) {
		t.Errorf("error = %v, want domain.ErrForbidden", err)
	}
}

func TestComplete_NetworkErrorMapsToUnavailable(t *testing.T) {
	t.Parallel()

	// Closed server: connection refused.
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {}))
	ts.Close()

	client := New(newTestClient(t, ts.URL), "completion-small", slog.Default())

	_, err := client.Complete(context.Background(), "suggest things")
	if !errors.Is(err, domain.ErrUnavailable) {
		t.Errorf("error = %v, want domain.ErrUnavailable", err)
	}
}

func TestComplete_EmptyChoicesMapsToUnavailable(t *testing.T) {
	t.Parallel()

	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{"choices": []any{}})
	}))
	defer ts.Close()

	client := New(newTestClient(t, ts.URL), "completion-small", slog.Default())

	_, err := client.Complete(context.Background(), "suggest things")
	if !errors.Is(err, domain.ErrUnavailable) {
		t.Errorf("error = %v, want domain.ErrUnavailable", err)
	}
}

func TestClient_HealthCheck_FreshBreakerIsHealthy(t *testing.T) {
	t.Parallel()

	client := New(newTestClient(t, "http://localhost"), "completion-small", slog.Default())

	if client.Name() != "ai-completion-test" {
		t.Errorf("Name() = %q, want %q", client.Name(), "ai-completion-test")
	}
	if err := client.HealthCheck(context.Background()); err != nil {
		t.Errorf("HealthCheck() = %v, want nil", err)
	}
}

func TestTranslateHTTPError_UnexpectedStatus(t *testing.T) {
	t.Parallel()

	resp := &http.Response{
		StatusCode: http.StatusTeapot,
		Header:     http.Header{},
	}

	err := translateHTTPError(resp)
	if err == nil {
		t.Fatal("expected error for unexpected status")
	}
	if errors.Is(err, domain.ErrValidation) || errors.Is(err, domain.ErrUnavailable) {
		t.Errorf("unexpected status should not map to a sentinel, got %v", err)
	}
}
