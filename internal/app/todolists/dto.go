package todolists

import (
	"time"

	"github.com/taskfolio/taskfolio/internal/domain/paging"
	"github.com/taskfolio/taskfolio/internal/domain/todolist"
)

// ListSummary is the flat projection of a list without its items.
type ListSummary struct {
	ID        string
	Title     string
	TodoCount int
	CreatedAt time.Time
	UpdatedAt time.Time
}

// ListDetail is the full projection of a list including its items in
// insertion order.
type ListDetail struct {
	ListSummary
	Items []TodoItem
}

// TodoItem is the projection of a single todo.
type TodoItem struct {
	ID          string
	Title       string
	IsCompleted bool
	CreatedAt   time.Time
	CompletedAt *time.Time
}

// BulkAddError records one rejected title within an AddItems command.
type BulkAddError struct {
	Title string
	Err   error
}

// BulkAddResult holds the outcomes of an AddItems command: accepted items
// and per-title failures.
type BulkAddResult struct {
	Added  []TodoItem
	Errors []BulkAddError
}

// ListPage is one page of list summaries.
type ListPage = paging.Result[ListSummary]

func toSummary(l *todolist.List) ListSummary {
	return ListSummary{
		ID:        l.ID().String(),
		Title:     l.Title().String(),
		TodoCount: l.TodoCount(),
		CreatedAt: l.CreatedAt(),
		UpdatedAt: l.UpdatedAt(),
	}
}

func toDetail(l *todolist.List) ListDetail {
	items := make([]TodoItem, 0, l.TodoCount())
	for _, td := range l.Todos() {
		items = append(items, toItem(td))
	}
	return ListDetail{ListSummary: toSummary(l), Items: items}
}

func toItem(td *todolist.ToDo) TodoItem {
	return TodoItem{
		ID:          td.ID().String(),
		Title:       td.Title().String(),
		IsCompleted: td.IsCompleted(),
		CreatedAt:   td.CreatedAt(),
		CompletedAt: td.CompletedAt(),
	}
}
