// Package todolist contains the ToDoLists bounded context: the List
// aggregate root, its owned ToDo entities, value objects, domain events,
// and the query criteria consumed by the repository.
package todolist

import (
	"fmt"
	"time"

	"github.com/taskfolio/taskfolio/internal/domain"
	"github.com/taskfolio/taskfolio/internal/domain/user"
)

// MaxTodos is the maximum number of todos a single list may hold.
const MaxTodos = 100

// List is the ToDoList aggregate root: a named, owner-scoped task
// collection. It exclusively owns its ToDo entities; every state change
// flows through a List method, which enforces the aggregate invariants and
// records domain events. Timestamps are caller-supplied rather than read
// from the wall clock, keeping the aggregate deterministic under test.
type List struct {
	domain.EventRecorder

	id        ListID
	ownerID   user.UserID
	title     Title
	todos     []*ToDo
	createdAt time.Time
	updatedAt time.Time
	version   int
}

// New creates a list with an empty todo collection. The owner is immutable
// for the lifetime of the aggregate.
func New(id ListID, owner user.UserID, title Title, now time.Time) (*List, error) {
	if id.IsZero() {
		return nil, domain.NewValidationError("list_id", domain.MsgRequired)
	}
	if owner.IsZero() {
		return nil, domain.NewValidationError("owner_id", domain.MsgRequired)
	}
	return &List{
		id:        id,
		ownerID:   owner,
		title:     title,
		createdAt: now,
		updatedAt: now,
	}, nil
}

// Rehydrate reconstructs a persisted list for the storage adapter. The
// version is the optimistic-concurrency stamp read from the row.
func Rehydrate(id ListID, owner user.UserID, title Title, todos []*ToDo, createdAt, updatedAt time.Time, version int) *List {
	return &List{
		id:        id,
		ownerID:   owner,
		title:     title,
		todos:     todos,
		createdAt: createdAt,
		updatedAt: updatedAt,
		version:   version,
	}
}

// AddTodo creates a todo and appends it to the list. It fails when the list
// is at capacity or when the title collides case-insensitively with an
// existing todo's title. On success it bumps updatedAt and records a
// TodoAdded event.
func (l *List) AddTodo(title Title, now time.Time) (*ToDo, error) {
	if len(l.todos) >= MaxTodos {
		return nil, domain.NewValidationError("todos",
			fmt.Sprintf("list is at capacity (%d todos)", MaxTodos))
	}
	for _, existing := range l.todos {
		if existing.title.EqualsFold(title) {
			return nil, fmt.Errorf("todo titled %q already exists in list: %w", title, domain.ErrConflict)
		}
	}

	td := newToDo(title, now)
	l.todos = append(l.todos, td)
	l.updatedAt = now
	l.Record(TodoAdded{List: l.id, Todo: td.id, Title: title.String(), At: now})
	return td, nil
}

// RemoveTodo removes the todo with the given id, bumping updatedAt.
func (l *List) RemoveTodo(id TodoID, now time.Time) error {
	for i, td := range l.todos {
		if td.id == id {
			l.todos = append(l.todos[:i], l.todos[i+1:]...)
			l.updatedAt = now
			return nil
		}
	}
	return fmt.Errorf("todo %s: %w", id, domain.ErrNotFound)
}

// Rename replaces the list title, bumping updatedAt.
func (l *List) Rename(title Title, now time.Time) {
	l.title = title
	l.updatedAt = now
}

// CompleteTodo marks the todo with the given id completed. Completing an
// already completed todo is a no-op: completedAt is unchanged and no second
// TodoCompleted event is recorded.
func (l *List) CompleteTodo(id TodoID, now time.Time) error {
	td, err := l.todo(id)
	if err != nil {
		return err
	}
	if td.markCompleted(now) {
		l.updatedAt = now
		l.Record(TodoCompleted{List: l.id, Todo: td.id, At: now})
	}
	return nil
}

// ReopenTodo clears the completion state of the todo with the given id.
// No event is recorded.
func (l *List) ReopenTodo(id TodoID, now time.Time) error {
	td, err := l.todo(id)
	if err != nil {
		return err
	}
	if td.completed {
		td.markIncomplete()
		l.updatedAt = now
	}
	return nil
}

// RenameTodo replaces a todo's title, preserving its completion state. The
// new title must not collide case-insensitively with another todo's title.
func (l *List) RenameTodo(id TodoID, title Title, now time.Time) error {
	td, err := l.todo(id)
	if err != nil {
		return err
	}
	for _, existing := range l.todos {
		if existing.id != id && existing.title.EqualsFold(title) {
			return fmt.Errorf("todo titled %q already exists in list: %w", title, domain.ErrConflict)
		}
	}
	td.rename(title)
	l.updatedAt = now
	return nil
}

func (l *List) todo(id TodoID) (*ToDo, error) {
	for _, td := range l.todos {
		if td.id == id {
			return td, nil
		}
	}
	return nil, fmt.Errorf("todo %s: %w", id, domain.ErrNotFound)
}

// IsOwnedBy reports whether the given user owns this list.
func (l *List) IsOwnedBy(owner user.UserID) bool { return l.ownerID == owner }

// ID returns the list identifier.
func (l *List) ID() ListID { return l.id }

// OwnerID returns the owning user's identifier.
func (l *List) OwnerID() user.UserID { return l.ownerID }

// Title returns the list title.
func (l *List) Title() Title { return l.title }

// Todos returns the todos in insertion order. The slice is a copy; the
// entities themselves expose no exported mutators.
func (l *List) Todos() []*ToDo {
	todos := make([]*ToDo, len(l.todos))
	copy(todos, l.todos)
	return todos
}

// TodoCount returns the number of todos in the list.
func (l *List) TodoCount() int { return len(l.todos) }

// CreatedAt returns the creation timestamp.
func (l *List) CreatedAt() time.Time { return l.createdAt }

// UpdatedAt returns the timestamp of the last visible state change.
func (l *List) UpdatedAt() time.Time { return l.updatedAt }

// Version returns the optimistic-concurrency stamp loaded from storage.
// Zero for aggregates that have never been persisted.
func (l *List) Version() int { return l.version }
