// Package handlers contains the inbound HTTP handlers. Handlers decode and
// shape-validate requests, resolve the caller from the X-User-ID header, and
// dispatch typed commands and queries over the in-process bus; all business
// rules live behind it.
package handlers

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/taskfolio/taskfolio/internal/adapters/http/dto"
	"github.com/taskfolio/taskfolio/internal/domain"
)

// ownerHeader carries the calling user's ID. Authentication proper is
// upstream of this service; the header is trusted as-is.
const ownerHeader = "X-User-ID"

// ownerID extracts the calling user's ID from the request headers. The value
// is parsed into a UserID by the application layer; here only presence is
// checked.
func ownerID(r *http.Request) (string, error) {
	id := strings.TrimSpace(r.Header.Get(ownerHeader))
	if id == "" {
		return "", fmt.Errorf("missing %s header: %w", ownerHeader, domain.ErrValidation)
	}
	return id, nil
}

// queryInt parses an optional integer query parameter. Absent or blank
// values yield the fallback; malformed values yield a validation error.
func queryInt(r *http.Request, param string, fallback int) (int, error) {
	raw := r.URL.Query().Get(param)
	if raw == "" {
		return fallback, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, domain.NewValidationError(param, "must be a valid integer")
	}
	return v, nil
}

// pagingParams parses the shared page/limit/sort query parameters. Page
// defaults to 1; an absent limit falls back to defaultLimit (0 lets the
// application service pick its own).
func pagingParams(r *http.Request, defaultLimit int) (page, limit int, sort string, err error) {
	page, err = queryInt(r, "page", 1)
	if err != nil {
		return 0, 0, "", err
	}
	limit, err = queryInt(r, "limit", defaultLimit)
	if err != nil {
		return 0, 0, "", err
	}
	return page, limit, r.URL.Query().Get("sort"), nil
}

// writeJSON writes a JSON response with the given status code.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("failed to encode response", slog.Any("error", err))
	}
}

// maxJSONBodyBytes is the maximum allowed size for a JSON request body (1 MB).
const maxJSONBodyBytes = 1 << 20

// decodeJSONBody decodes the request body as JSON into dst. The body is
// limited to maxJSONBodyBytes to prevent resource exhaustion. On failure,
// it writes a 400 error response and returns false.
func decodeJSONBody(w http.ResponseWriter, r *http.Request, dst any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxJSONBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		dto.WriteErrorResponse(w, r, &domain.ValidationError{
			Fields: map[string]string{"body": "invalid JSON"},
		})
		return false
	}
	return true
}

// validatable is implemented by request DTOs that support validation.
type validatable interface {
	Validate() error
}

// decodeAndValidate decodes the JSON request body into dst and validates it.
// On decode or validation failure it writes an error response and returns false.
func decodeAndValidate[T validatable](w http.ResponseWriter, r *http.Request, dst T) bool {
	if !decodeJSONBody(w, r, dst) {
		return false
	}
	if err := dst.Validate(); err != nil {
		dto.WriteErrorResponse(w, r, err)
		return false
	}
	return true
}
