// Package ai implements the outbound adapter for the text-completion
// service used by the AiItemSuggestions context. It translates between the
// completion API's wire representation and the plain prompt/lines contract
// of [ports.CompletionClient], and maps HTTP failures to domain errors.
//
// The underlying [httpclient.Client] provides circuit breaking, retry with
// exponential backoff, rate limiting, and OpenTelemetry tracing for every
// outbound call, and doubles as the health checker for the readiness probe.
package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/sony/gobreaker/v2"

	"github.com/taskfolio/taskfolio/internal/domain"
	"github.com/taskfolio/taskfolio/internal/platform/httpclient"
	"github.com/taskfolio/taskfolio/internal/ports"
)

// Compile-time interface checks.
var (
	_ ports.CompletionClient = (*Client)(nil)
	_ ports.HealthChecker    = (*Client)(nil)
)

const completionsPath = "/v1/completions"

// completionRequest is the wire format for POST /v1/completions.
type completionRequest struct {
	Model  string `json:"model"`
	Prompt string `json:"prompt"`
}

// completionResponse is the wire format of a successful completion.
// Only the first choice is used.
type completionResponse struct {
	Choices []struct {
		Text string `json:"text"`
	} `json:"choices"`
}

// Client is the outbound adapter for the completion model API. It implements
// [ports.CompletionClient] and, via the underlying circuit breaker,
// [ports.HealthChecker].
type Client struct {
	http   *httpclient.Client
	model  string
	logger *slog.Logger
}

// New creates a completion client that sends requests through the given
// [httpclient.Client]. The client's BaseURL should point to the completion
// API root; model names the model requested on every call.
func New(client *httpclient.Client, model string, logger *slog.Logger) *Client {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Client{http: client, model: model, logger: logger}
}

// Complete sends the prompt to the completion API and returns the model's
// reply split into trimmed, non-empty lines. Transport failures, open
// circuit breaker, and 5xx responses map to [domain.ErrUnavailable]; the
// caller decides how to present that to its own clients.
func (c *Client) Complete(ctx context.Context, prompt string) ([]string, error) {
	body, err := json.Marshal(completionRequest{Model: c.model, Prompt: prompt})
	if err != nil {
		return nil, fmt.Errorf("marshaling completion request: %w", err)
	}

	url := c.http.BaseURL() + completionsPath
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("creating completion request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(ctx, req)
	if err != nil {
		// httpclient.Do can return both resp and err when retries are
		// exhausted on a retryable status. Translate the final response
		// rather than returning the raw retry error.
		if resp != nil {
			defer c.closeBody(ctx, resp)
			return nil, translateHTTPError(resp)
		}
		if isBreakerErr(err) {
			return nil, fmt.Errorf("completion model rejected by circuit breaker: %w", domain.ErrUnavailable)
		}
		c.logger.ErrorContext(ctx, "completion request failed",
			slog.String("model", c.model),
			slog.String("error", err.Error()),
		)
		return nil, fmt.Errorf("completion model unreachable: %w", domain.ErrUnavailable)
	}
	defer c.closeBody(ctx, resp)

	if resp.StatusCode != http.StatusOK {
		return nil, translateHTTPError(resp)
	}

	var dto completionResponse
	if err := json.NewDecoder(resp.Body).Decode(&dto); err != nil {
		return nil, fmt.Errorf("decoding completion response: %w", err)
	}
	if len(dto.Choices) == 0 {
		return nil, fmt.Errorf("completion response has no choices: %w", domain.ErrUnavailable)
	}

	return splitLines(dto.Choices[0].Text), nil
}

// Name identifies the downstream in health reports and traces.
func (c *Client) Name() string {
	return c.http.Name()
}

// HealthCheck reports the completion API's availability from the circuit
// breaker state. No network call is made.
func (c *Client) HealthCheck(ctx context.Context) error {
	return c.http.HealthCheck(ctx)
}

func (c *Client) closeBody(ctx context.Context, resp *http.Response) {
	if err := resp.Body.Close(); err != nil {
		c.logger.WarnContext(ctx, "failed to close response body",
			slog.String("error", err.Error()),
		)
	}
}

// splitLines breaks the raw completion text into trimmed, non-empty lines.
// Leading list markers ("- ", "* ") are stripped; models add them despite
// prompt instructions.
func splitLines(text string) []string {
	raw := strings.Split(text, "\n")
	lines := make([]string, 0, len(raw))
	for _, l := range raw {
		l = strings.TrimSpace(l)
		l = strings.TrimPrefix(l, "- ")
		l = strings.TrimPrefix(l, "* ")
		if l == "" {
			continue
		}
		lines = append(lines, l)
	}
	return lines
}

func isBreakerErr(err error) bool {
	return errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests)
}
