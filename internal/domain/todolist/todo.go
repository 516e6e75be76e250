package todolist

import (
	"time"

	"github.com/taskfolio/taskfolio/internal/domain"
)

// ToDo is a task entity owned exclusively by a List. All mutators are
// unexported so that mutation flows only through the owning aggregate,
// keeping the aggregate's invariants enforceable in one place.
type ToDo struct {
	id          TodoID
	title       Title
	completed   bool
	createdAt   time.Time
	completedAt *time.Time
}

func newToDo(title Title, now time.Time) *ToDo {
	return &ToDo{
		id:        NewTodoID(),
		title:     title,
		createdAt: now,
	}
}

// RehydrateToDo reconstructs a persisted todo for the storage adapter.
// It re-checks the completion invariant: completedAt is present iff the
// todo is completed.
func RehydrateToDo(id TodoID, title Title, completed bool, createdAt time.Time, completedAt *time.Time) (*ToDo, error) {
	if completed == (completedAt == nil) {
		return nil, domain.NewValidationError("completed_at", "must be set exactly when the todo is completed")
	}
	return &ToDo{
		id:          id,
		title:       title,
		completed:   completed,
		createdAt:   createdAt,
		completedAt: completedAt,
	}, nil
}

// markCompleted sets the completion flag and timestamp. Marking an already
// completed todo is a no-op; the return value reports whether a transition
// happened so the aggregate does not re-record the completion event.
func (t *ToDo) markCompleted(now time.Time) bool {
	if t.completed {
		return false
	}
	t.completed = true
	t.completedAt = &now
	return true
}

// markIncomplete clears the completion flag and timestamp.
func (t *ToDo) markIncomplete() {
	t.completed = false
	t.completedAt = nil
}

// rename replaces the title, preserving completion state.
func (t *ToDo) rename(title Title) {
	t.title = title
}

// ID returns the todo identifier.
func (t *ToDo) ID() TodoID { return t.id }

// Title returns the todo title.
func (t *ToDo) Title() Title { return t.title }

// IsCompleted reports whether the todo has been completed.
func (t *ToDo) IsCompleted() bool { return t.completed }

// CreatedAt returns the creation timestamp.
func (t *ToDo) CreatedAt() time.Time { return t.createdAt }

// CompletedAt returns the completion timestamp, or nil when incomplete.
func (t *ToDo) CompletedAt() *time.Time {
	if t.completedAt == nil {
		return nil
	}
	at := *t.completedAt
	return &at
}
