package user

import (
	"fmt"
	"strings"

	"github.com/taskfolio/taskfolio/internal/domain"
)

// MaxNameLength is the maximum length of a user name after trimming.
const MaxNameLength = 50

// Name is a validated, trimmed user name. Construct via NewName; equality is
// by value.
type Name struct {
	value string
}

// NewName trims surrounding whitespace and validates the result.
func NewName(raw string) (Name, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return Name{}, domain.NewValidationError("user_name", domain.MsgRequired)
	}
	if len([]rune(trimmed)) > MaxNameLength {
		return Name{}, domain.NewValidationError("user_name",
			fmt.Sprintf("must be at most %d characters, got %d", MaxNameLength, len([]rune(trimmed))))
	}
	return Name{value: trimmed}, nil
}

// String returns the validated name.
func (n Name) String() string { return n.value }

// IsZero reports whether the name is the invalid zero value.
func (n Name) IsZero() bool { return n.value == "" }
