package todolist

import "time"

// TodoAdded is recorded when a todo is appended to a list.
type TodoAdded struct {
	List  ListID
	Todo  TodoID
	Title string
	At    time.Time
}

// EventName implements domain.Event.
func (e TodoAdded) EventName() string { return "todolist.item_added" }

// OccurredAt implements domain.Event.
func (e TodoAdded) OccurredAt() time.Time { return e.At }

// TodoCompleted is recorded the first time a todo transitions to completed.
// Re-completing an already completed todo records nothing.
type TodoCompleted struct {
	List ListID
	Todo TodoID
	At   time.Time
}

// EventName implements domain.Event.
func (e TodoCompleted) EventName() string { return "todolist.item_completed" }

// OccurredAt implements domain.Event.
func (e TodoCompleted) OccurredAt() time.Time { return e.At }
