package user

import (
	"fmt"
	"net/mail"
	"strings"

	"github.com/taskfolio/taskfolio/internal/domain"
)

// MaxEmailLength bounds an address per RFC 5321.
const MaxEmailLength = 254

// Email is a validated, lower-cased email address. Construct via NewEmail;
// equality is by value.
type Email struct {
	value string
}

// NewEmail trims, validates, and normalizes an email address to lower case.
func NewEmail(raw string) (Email, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return Email{}, domain.NewValidationError("email", domain.MsgRequired)
	}
	if len(trimmed) > MaxEmailLength {
		return Email{}, domain.NewValidationError("email",
			fmt.Sprintf("must be at most %d characters", MaxEmailLength))
	}

	addr, err := mail.ParseAddress(trimmed)
	if err != nil || addr.Address != trimmed {
		return Email{}, domain.NewValidationError("email", fmt.Sprintf("invalid address %q", trimmed))
	}

	return Email{value: strings.ToLower(trimmed)}, nil
}

// String returns the normalized address.
func (e Email) String() string { return e.value }

// IsZero reports whether the email is the invalid zero value.
func (e Email) IsZero() bool { return e.value == "" }
