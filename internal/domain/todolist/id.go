package todolist

import (
	"github.com/google/uuid"

	"github.com/taskfolio/taskfolio/internal/domain"
)

// ListID identifies a ToDoList aggregate. Construct via NewListID or
// ParseListID; the zero value is invalid.
type ListID struct {
	value uuid.UUID
}

// NewListID generates a fresh random identifier.
func NewListID() ListID {
	return ListID{value: uuid.New()}
}

// ParseListID parses the canonical string form of a list identifier.
// Malformed input and the all-zero identifier fail with a validation error.
func ParseListID(raw string) (ListID, error) {
	id, err := uuid.Parse(raw)
	if err != nil {
		return ListID{}, domain.NewValidationError("list_id", "must be a valid UUID")
	}
	if id == uuid.Nil {
		return ListID{}, domain.NewValidationError("list_id", "must not be the zero UUID")
	}
	return ListID{value: id}, nil
}

// String returns the canonical string form.
func (id ListID) String() string { return id.value.String() }

// IsZero reports whether the identifier is the invalid zero value.
func (id ListID) IsZero() bool { return id.value == uuid.Nil }

// UUID returns the underlying uuid for the persistence layer.
func (id ListID) UUID() uuid.UUID { return id.value }

// TodoID identifies a ToDo entity within its owning list.
type TodoID struct {
	value uuid.UUID
}

// NewTodoID generates a fresh random identifier.
func NewTodoID() TodoID {
	return TodoID{value: uuid.New()}
}

// ParseTodoID parses the canonical string form of a todo identifier.
// Malformed input and the all-zero identifier fail with a validation error.
func ParseTodoID(raw string) (TodoID, error) {
	id, err := uuid.Parse(raw)
	if err != nil {
		return TodoID{}, domain.NewValidationError("todo_id", "must be a valid UUID")
	}
	if id == uuid.Nil {
		return TodoID{}, domain.NewValidationError("todo_id", "must not be the zero UUID")
	}
	return TodoID{value: id}, nil
}

// String returns the canonical string form.
func (id TodoID) String() string { return id.value.String() }

// IsZero reports whether the identifier is the invalid zero value.
func (id TodoID) IsZero() bool { return id.value == uuid.Nil }

// UUID returns the underlying uuid for the persistence layer.
func (id TodoID) UUID() uuid.UUID { return id.value }
