// Package user contains the Users bounded context: the User aggregate and
// its value objects. Users own to-do lists in the ToDoLists context; the
// UserID value object is the only type shared across the context boundary.
package user

import (
	"github.com/google/uuid"

	"github.com/taskfolio/taskfolio/internal/domain"
)

// UserID identifies a User aggregate. Construct via NewUserID or ParseUserID;
// the zero value is invalid and rejected by ParseUserID.
type UserID struct {
	value uuid.UUID
}

// NewUserID generates a fresh random identifier.
func NewUserID() UserID {
	return UserID{value: uuid.New()}
}

// ParseUserID parses the canonical string form of a user identifier.
// Malformed input and the all-zero identifier fail with a validation error.
func ParseUserID(raw string) (UserID, error) {
	id, err := uuid.Parse(raw)
	if err != nil {
		return UserID{}, domain.NewValidationError("user_id", "must be a valid UUID")
	}
	if id == uuid.Nil {
		return UserID{}, domain.NewValidationError("user_id", "must not be the zero UUID")
	}
	return UserID{value: id}, nil
}

// String returns the canonical string form.
func (id UserID) String() string { return id.value.String() }

// IsZero reports whether the identifier is the invalid zero value.
func (id UserID) IsZero() bool { return id.value == uuid.Nil }

// UUID returns the underlying uuid for the persistence layer.
func (id UserID) UUID() uuid.UUID { return id.value }
