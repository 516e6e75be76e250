package ai

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/taskfolio/taskfolio/internal/domain"
)

// maxErrorBodySize limits how much of an error response body is read.
const maxErrorBodySize = 1 << 20 // 1 MB

// errorEnvelope is the completion API's error response format.
type errorEnvelope struct {
	Error struct {
		Message string `json:"message"`
		Type    string `json:"type"`
	} `json:"error"`
}

// translateHTTPError maps a completion API error response to a domain error.
// The error body's message, when present, is used for context.
func translateHTTPError(resp *http.Response) error {
	detail := parseErrorMessage(resp)
	if detail == "" {
		detail = http.StatusText(resp.StatusCode)
	}

	switch {
	case resp.StatusCode == http.StatusBadRequest || resp.StatusCode == http.StatusUnprocessableEntity:
		return fmt.Errorf("completion model rejected prompt: %s: %w", detail, domain.ErrValidation)

	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return fmt.Errorf("completion model denied access: %s: %w", detail, domain.ErrForbidden)

	case resp.StatusCode == http.StatusNotFound:
		return fmt.Errorf("completion model not found: %s: %w", detail, domain.ErrNotFound)

	case resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= http.StatusInternalServerError:
		return fmt.Errorf("completion model unavailable: %s: %w", detail, domain.ErrUnavailable)

	default:
		return fmt.Errorf("completion model returned unexpected status %d: %s", resp.StatusCode, detail)
	}
}

// parseErrorMessage attempts to extract the error message from a JSON error
// body. Returns an empty string if the body is missing or unparseable.
func parseErrorMessage(resp *http.Response) string {
	if resp.Body == nil {
		return ""
	}
	if !strings.HasPrefix(resp.Header.Get("Content-Type"), "application/json") {
		return ""
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxErrorBodySize))
	if err != nil {
		return ""
	}

	var env errorEnvelope
	if err := json.Unmarshal(body, &env); err != nil {
		return ""
	}
	return env.Error.Message
}
