package contracts

import (
	"github.com/taskfolio/taskfolio/internal/domain"
	"github.com/taskfolio/taskfolio/internal/domain/todolist"
	"github.com/taskfolio/taskfolio/internal/domain/user"
)

// FromDomainEvent translates an internal domain event to its cross-module
// contract. Events with no integration contract return ok=false; callers
// simply skip them.
func FromDomainEvent(event domain.Event) (contract any, ok bool) {
	switch e := event.(type) {
	case user.Registered:
		return UserRegistered{
			UserID:     e.User.String(),
			Email:      e.Email,
			OccurredAt: e.At,
		}, true
	case user.Deleted:
		return UserDeleted{
			UserID:     e.User.String(),
			OccurredAt: e.At,
		}, true
	case todolist.TodoAdded:
		return TodoItemAdded{
			ListID:     e.List.String(),
			TodoID:     e.Todo.String(),
			Title:      e.Title,
			OccurredAt: e.At,
		}, true
	case todolist.TodoCompleted:
		return TodoItemCompleted{
			ListID:     e.List.String(),
			TodoID:     e.Todo.String(),
			OccurredAt: e.At,
		}, true
	default:
		return nil, false
	}
}
