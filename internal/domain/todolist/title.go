package todolist

import (
	"fmt"
	"strings"

	"github.com/taskfolio/taskfolio/internal/domain"
)

// MaxTitleLength is the maximum length of a list or todo title after trimming.
const MaxTitleLength = 200

// Title is a validated, trimmed title for lists and todos. Construct via
// NewTitle; equality is by value.
type Title struct {
	value string
}

// NewTitle trims surrounding whitespace and validates the result. It rejects
// empty or whitespace-only input and input longer than MaxTitleLength after
// trimming.
func NewTitle(raw string) (Title, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return Title{}, domain.NewValidationError("title", domain.MsgRequired)
	}
	if len([]rune(trimmed)) > MaxTitleLength {
		return Title{}, domain.NewValidationError("title",
			fmt.Sprintf("must be at most %d characters, got %d", MaxTitleLength, len([]rune(trimmed))))
	}
	return Title{value: trimmed}, nil
}

// String returns the validated title text.
func (t Title) String() string { return t.value }

// EqualsFold reports whether two titles match case-insensitively.
func (t Title) EqualsFold(other Title) bool {
	return strings.EqualFold(t.value, other.value)
}
