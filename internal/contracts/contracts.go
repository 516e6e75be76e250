// Package contracts holds the integration events and cross-module query
// shapes shared between bounded contexts. Contracts carry only primitives so
// no context leaks its domain types across the module boundary; translators
// map internal domain events onto them.
package contracts

import "time"

// UserRegistered is published after a new account is persisted.
type UserRegistered struct {
	UserID     string
	Email      string
	OccurredAt time.Time
}

// UserDeleted is published after an account is removed. Consumers cascade
// removal of the user's data in their own context.
type UserDeleted struct {
	UserID     string
	OccurredAt time.Time
}

// TodoItemAdded is published after a todo is added to a list.
type TodoItemAdded struct {
	ListID     string
	TodoID     string
	Title      string
	OccurredAt time.Time
}

// TodoItemCompleted is published the first time a todo is completed.
type TodoItemCompleted struct {
	ListID     string
	TodoID     string
	OccurredAt time.Time
}

// ListSnapshotQuery asks the ToDoLists context for a flat snapshot of one
// list. Used by the AiItemSuggestions context, which must not import the
// ToDoLists domain.
type ListSnapshotQuery struct {
	ListID  string
	OwnerID string
}

// ListSnapshot is the reply to ListSnapshotQuery.
type ListSnapshot struct {
	ListID     string
	Title      string
	ItemTitles []string
}
