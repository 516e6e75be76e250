package todolist

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/taskfolio/taskfolio/internal/domain"
	"github.com/taskfolio/taskfolio/internal/domain/user"
)

var baseTime = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

func mustTitle(t *testing.T, raw string) Title {
	t.Helper()
	title, err := NewTitle(raw)
	if err != nil {
		t.Fatalf("NewTitle(%q) error = %v", raw, err)
	}
	return title
}

func newList(t *testing.T) *List {
	t.Helper()
	l, err := New(NewListID(), user.NewUserID(), mustTitle(t, "Groceries"), baseTime)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	return l
}

func TestNew(t *testing.T) {
	t.Parallel()

	owner := user.NewUserID()
	id := NewListID()
	l, err := New(id, owner, mustTitle(t, "Groceries"), baseTime)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	if l.ID() != id {
		t.Errorf("ID() = %v, want %v", l.ID(), id)
	}
	if !l.IsOwnedBy(owner) {
		t.Error("IsOwnedBy(owner) = false, want true")
	}
	if l.TodoCount() != 0 {
		t.Errorf("TodoCount() = %d, want 0", l.TodoCount())
	}
	if !l.CreatedAt().Equal(baseTime) || !l.UpdatedAt().Equal(baseTime) {
		t.Errorf("timestamps = %v/%v, want %v", l.CreatedAt(), l.UpdatedAt(), baseTime)
	}
}

func TestNew_ZeroOwnerFails(t *testing.T) {
	t.Parallel()

	_, err := New(NewListID(), user.UserID{}, mustTitle(t, "Groceries"), baseTime)
	if !errors.Is(err, domain.ErrValidation) {
		t.Errorf("New(zero owner) error = %v, want ErrValidation", err)
	}
}

func TestList_AddTodo(t *testing.T) {
	t.Parallel()

	l := newList(t)
	later := baseTime.Add(time.Hour)

	td, err := l.AddTodo(mustTitle(t, "Milk"), later)
	if err != nil {
		t.Fatalf("AddTodo() error = %v", err)
	}

	if td.Title().String() != "Milk" {
		t.Errorf("Title() = %q, want %q", td.Title(), "Milk")
	}
	if td.IsCompleted() {
		t.Error("new todo IsCompleted() = true, want false")
	}
	if l.TodoCount() != 1 {
		t.Errorf("TodoCount() = %d, want 1", l.TodoCount())
	}
	if !l.UpdatedAt().Equal(later) {
		t.Errorf("UpdatedAt() = %v, want %v", l.UpdatedAt(), later)
	}

	events := l.DrainEvents()
	if len(events) != 1 {
		t.Fatalf("DrainEvents() = %d events, want 1", len(events))
	}
	added, ok := events[0].(TodoAdded)
	if !ok {
		t.Fatalf("event type = %T, want TodoAdded", events[0])
	}
	if added.Todo != td.ID() || added.Title != "Milk" {
		t.Errorf("TodoAdded = %+v, want todo %v title Milk", added, td.ID())
	}
}

func TestList_AddTodo_CaseInsensitiveDuplicateFails(t *testing.T) {
	t.Parallel()

	l := newList(t)
	if _, err := l.AddTodo(mustTitle(t, "Buy milk"), baseTime); err != nil {
		t.Fatalf("AddTodo() error = %v", err)
	}

	_, err := l.AddTodo(mustTitle(t, "BUY MILK"), baseTime)
	if !errors.Is(err, domain.ErrConflict) {
		t.Errorf("AddTodo(duplicate) error = %v, want ErrConflict", err)
	}
	if l.TodoCount() != 1 {
		t.Errorf("TodoCount() = %d after failed add, want 1", l.TodoCount())
	}
}

func TestList_AddTodo_CapacityExceededFails(t *testing.T) {
	t.Parallel()

	l := newList(t)
	for i := 0; i < MaxTodos; i++ {
		if _, err := l.AddTodo(mustTitle(t, fmt.Sprintf("item %d", i)), baseTime); err != nil {
			t.Fatalf("AddTodo(%d) error = %v", i, err)
		}
	}

	_, err := l.AddTodo(mustTitle(t, "one more"), baseTime)
	if !errors.Is(err, domain.ErrValidation) {
		t.Errorf("AddTodo at capacity error = %v, want ErrValidation", err)
	}
	if l.TodoCount() != MaxTodos {
		t.Errorf("TodoCount() = %d, want %d", l.TodoCount(), MaxTodos)
	}
}

func TestList_RemoveTodo(t *testing.T) {
	t.Parallel()

	l := newList(t)
	td, err := l.AddTodo(mustTitle(t, "Milk"), baseTime)
	if err != nil {
		t.Fatalf("AddTodo() error = %v", err)
	}

	later := baseTime.Add(time.Minute)
	if err := l.RemoveTodo(td.ID(), later); err != nil {
		t.Fatalf("RemoveTodo() error = %v", err)
	}
	if l.TodoCount() != 0 {
		t.Errorf("TodoCount() = %d, want 0", l.TodoCount())
	}
	if !l.UpdatedAt().Equal(later) {
		t.Errorf("UpdatedAt() = %v, want %v", l.UpdatedAt(), later)
	}

	if err := l.RemoveTodo(NewTodoID(), later); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("RemoveTodo(unknown) error = %v, want ErrNotFound", err)
	}
}

func TestList_CompleteTodo_Idempotent(t *testing.T) {
	t.Parallel()

	l := newList(t)
	td, err := l.AddTodo(mustTitle(t, "Milk"), baseTime)
	if err != nil {
		t.Fatalf("AddTodo() error = %v", err)
	}
	l.DrainEvents()

	first := baseTime.Add(time.Hour)
	if err := l.CompleteTodo(td.ID(), first); err != nil {
		t.Fatalf("CompleteTodo() error = %v", err)
	}
	if !td.IsCompleted() {
		t.Fatal("IsCompleted() = false after CompleteTodo")
	}
	if got := td.CompletedAt(); got == nil || !got.Equal(first) {
		t.Fatalf("CompletedAt() = %v, want %v", got, first)
	}

	// Completing again must not move completedAt or re-record the event.
	second := first.Add(time.Hour)
	if err := l.CompleteTodo(td.ID(), second); err != nil {
		t.Fatalf("CompleteTodo(again) error = %v", err)
	}
	if got := td.CompletedAt(); got == nil || !got.Equal(first) {
		t.Errorf("CompletedAt() after re-complete = %v, want unchanged %v", got, first)
	}

	events := l.DrainEvents()
	if len(events) != 1 {
		t.Fatalf("DrainEvents() = %d events, want exactly 1 TodoCompleted", len(events))
	}
	if _, ok := events[0].(TodoCompleted); !ok {
		t.Errorf("event type = %T, want TodoCompleted", events[0])
	}
}

func TestList_ReopenTodo(t *testing.T) {
	t.Parallel()

	l := newList(t)
	td, err := l.AddTodo(mustTitle(t, "Milk"), baseTime)
	if err != nil {
		t.Fatalf("AddTodo() error = %v", err)
	}
	if err := l.CompleteTodo(td.ID(), baseTime.Add(time.Hour)); err != nil {
		t.Fatalf("CompleteTodo() error = %v", err)
	}

	if err := l.ReopenTodo(td.ID(), baseTime.Add(2*time.Hour)); err != nil {
		t.Fatalf("ReopenTodo() error = %v", err)
	}
	if td.IsCompleted() {
		t.Error("IsCompleted() = true after reopen, want false")
	}
	if td.CompletedAt() != nil {
		t.Errorf("CompletedAt() = %v after reopen, want nil", td.CompletedAt())
	}
}

func TestList_Rename(t *testing.T) {
	t.Parallel()

	l := newList(t)
	later := baseTime.Add(time.Minute)

	l.Rename(mustTitle(t, "Weekend shopping"), later)
	if l.Title().String() != "Weekend shopping" {
		t.Errorf("Title() = %q, want %q", l.Title(), "Weekend shopping")
	}
	if !l.UpdatedAt().Equal(later) {
		t.Errorf("UpdatedAt() = %v, want %v", l.UpdatedAt(), later)
	}
}

func TestList_RenameTodo_DuplicateFails(t *testing.T) {
	t.Parallel()

	l := newList(t)
	if _, err := l.AddTodo(mustTitle(t, "Milk"), baseTime); err != nil {
		t.Fatalf("AddTodo() error = %v", err)
	}
	td, err := l.AddTodo(mustTitle(t, "Eggs"), baseTime)
	if err != nil {
		t.Fatalf("AddTodo() error = %v", err)
	}

	if err := l.RenameTodo(td.ID(), mustTitle(t, "MILK"), baseTime); !errors.Is(err, domain.ErrConflict) {
		t.Errorf("RenameTodo(duplicate) error = %v, want ErrConflict", err)
	}

	// Renaming to its own title (different case) is allowed.
	if err := l.RenameTodo(td.ID(), mustTitle(t, "EGGS"), baseTime); err != nil {
		t.Errorf("RenameTodo(self, case change) error = %v", err)
	}
}

func TestList_Todos_ReturnsCopy(t *testing.T) {
	t.Parallel()

	l := newList(t)
	if _, err := l.AddTodo(mustTitle(t, "Milk"), baseTime); err != nil {
		t.Fatalf("AddTodo() error = %v", err)
	}

	todos := l.Todos()
	todos[0] = nil
	if l.Todos()[0] == nil {
		t.Error("mutating returned slice affected the aggregate")
	}
}

func TestRehydrateToDo_InvariantChecked(t *testing.T) {
	t.Parallel()

	completedAt := baseTime

	tests := []struct {
		name        string
		completed   bool
		completedAt *time.Time
		wantErr     bool
	}{
		{"incomplete without timestamp", false, nil, false},
		{"completed with timestamp", true, &completedAt, false},
		{"completed without timestamp", true, nil, true},
		{"incomplete with timestamp", false, &completedAt, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			_, err := RehydrateToDo(NewTodoID(), mustTitle(t, "Milk"), tt.completed, baseTime, tt.completedAt)
			if (err != nil) != tt.wantErr {
				t.Errorf("RehydrateToDo() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
