// Package todolists provides the application service of the ToDoLists
// bounded context. It orchestrates use cases by validating command input
// into value objects, loading the List aggregate, invoking its behavior,
// persisting the result, and publishing the recorded domain events as
// integration contracts. Business rules live in the domain package; this
// layer contains coordination only.
package todolists

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/taskfolio/taskfolio/internal/contracts"
	"github.com/taskfolio/taskfolio/internal/domain"
	"github.com/taskfolio/taskfolio/internal/domain/todolist"
	"github.com/taskfolio/taskfolio/internal/domain/user"
	"github.com/taskfolio/taskfolio/internal/ports"
)

// Service implements the ToDoLists use cases. All state changes flow
// through the List aggregate; the service never mutates todos directly.
type Service struct {
	lists  ports.ToDoListRepository
	bus    ports.Bus
	clock  ports.Clock
	logger *slog.Logger
}

// NewService creates the ToDoLists application service. A nil logger
// discards all output.
func NewService(lists ports.ToDoListRepository, bus ports.Bus, clock ports.Clock, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Service{
		lists:  lists,
		bus:    bus,
		clock:  clock,
		logger: logger,
	}
}

// CreateList creates an empty list owned by the command's owner.
func (s *Service) CreateList(ctx context.Context, cmd CreateList) (ListDetail, error) {
	owner, err := user.ParseUserID(cmd.OwnerID)
	if err != nil {
		return ListDetail{}, err
	}
	title, err := todolist.NewTitle(cmd.Title)
	if err != nil {
		return ListDetail{}, err
	}

	list, err := todolist.New(todolist.NewListID(), owner, title, s.clock.Now())
	if err != nil {
		return ListDetail{}, err
	}

	if err := s.lists.Add(ctx, list); err != nil {
		s.logger.ErrorContext(ctx, "failed to persist new list",
			slog.String("operation", "CreateList"),
			slog.String("owner_id", cmd.OwnerID),
			slog.Any("error", err),
		)
		return ListDetail{}, fmt.Errorf("persisting list: %w", err)
	}

	s.logger.InfoContext(ctx, "list created",
		slog.String("list_id", list.ID().String()),
		slog.String("owner_id", owner.String()),
	)
	s.publishEvents(ctx, list)
	return toDetail(list), nil
}

// RenameList replaces a list's title.
func (s *Service) RenameList(ctx context.Context, cmd RenameList) (ListDetail, error) {
	title, err := todolist.NewTitle(cmd.Title)
	if err != nil {
		return ListDetail{}, err
	}
	list, err := s.loadOwned(ctx, cmd.OwnerID, cmd.ListID)
	if err != nil {
		return ListDetail{}, err
	}

	list.Rename(title, s.clock.Now())
	return s.save(ctx, "RenameList", list)
}

// DeleteList removes a list and all of its todos.
func (s *Service) DeleteList(ctx context.Context, cmd DeleteList) (struct{}, error) {
	list, err := s.loadOwned(ctx, cmd.OwnerID, cmd.ListID)
	if err != nil {
		return struct{}{}, err
	}

	if err := s.lists.Delete(ctx, list.ID()); err != nil {
		s.logger.ErrorContext(ctx, "failed to delete list",
			slog.String("operation", "DeleteList"),
			slog.String("list_id", cmd.ListID),
			slog.Any("error", err),
		)
		return struct{}{}, fmt.Errorf("deleting list: %w", err)
	}

	s.logger.InfoContext(ctx, "list deleted", slog.String("list_id", cmd.ListID))
	return struct{}{}, nil
}

// AddItem appends one todo to a list.
func (s *Service) AddItem(ctx context.Context, cmd AddItem) (TodoItem, error) {
	title, err := todolist.NewTitle(cmd.Title)
	if err != nil {
		return TodoItem{}, err
	}
	list, err := s.loadOwned(ctx, cmd.OwnerID, cmd.ListID)
	if err != nil {
		return TodoItem{}, err
	}

	td, err := list.AddTodo(title, s.clock.Now())
	if err != nil {
		return TodoItem{}, err
	}

	if _, err := s.save(ctx, "AddItem", list); err != nil {
		return TodoItem{}, err
	}
	return toItem(td), nil
}

// AddItems appends several todos with partial-success semantics: each title
// is validated and applied independently, and the aggregate is saved once if
// at least one title was accepted. Rejected titles are reported per entry;
// the command as a whole fails only on load or save errors.
func (s *Service) AddItems(ctx context.Context, cmd AddItems) (BulkAddResult, error) {
	list, err := s.loadOwned(ctx, cmd.OwnerID, cmd.ListID)
	if err != nil {
		return BulkAddResult{}, err
	}

	var result BulkAddResult
	now := s.clock.Now()
	for _, raw := range cmd.Titles {
		title, err := todolist.NewTitle(raw)
		if err != nil {
			result.Errors = append(result.Errors, BulkAddError{Title: raw, Err: err})
			continue
		}
		td, err := list.AddTodo(title, now)
		if err != nil {
			result.Errors = append(result.Errors, BulkAddError{Title: raw, Err: err})
			continue
		}
		result.Added = append(result.Added, toItem(td))
	}

	if len(result.Added) == 0 {
		return result, nil
	}
	if _, err := s.save(ctx, "AddItems", list); err != nil {
		return BulkAddResult{}, err
	}

	s.logger.InfoContext(ctx, "bulk add finished",
		slog.String("list_id", cmd.ListID),
		slog.Int("added", len(result.Added)),
		slog.Int("rejected", len(result.Errors)),
	)
	return result, nil
}

// RemoveItem deletes one todo from a list.
func (s *Service) RemoveItem(ctx context.Context, cmd RemoveItem) (struct{}, error) {
	todoID, err := todolist.ParseTodoID(cmd.TodoID)
	if err != nil {
		return struct{}{}, err
	}
	list, err := s.loadOwned(ctx, cmd.OwnerID, cmd.ListID)
	if err != nil {
		return struct{}{}, err
	}

	if err := list.RemoveTodo(todoID, s.clock.Now()); err != nil {
		return struct{}{}, err
	}
	_, err = s.save(ctx, "RemoveItem", list)
	return struct{}{}, err
}

// RenameItem replaces one todo's title, preserving its completion state.
func (s *Service) RenameItem(ctx context.Context, cmd RenameItem) (TodoItem, error) {
	todoID, err := todolist.ParseTodoID(cmd.TodoID)
	if err != nil {
		return TodoItem{}, err
	}
	title, err := todolist.NewTitle(cmd.Title)
	if err != nil {
		return TodoItem{}, err
	}
	list, err := s.loadOwned(ctx, cmd.OwnerID, cmd.ListID)
	if err != nil {
		return TodoItem{}, err
	}

	if err := list.RenameTodo(todoID, title, s.clock.Now()); err != nil {
		return TodoItem{}, err
	}
	if _, err := s.save(ctx, "RenameItem", list); err != nil {
		return TodoItem{}, err
	}
	return s.itemFrom(list, todoID)
}

// CompleteItem marks one todo completed. Completing an already completed
// todo succeeds without changing its completion timestamp.
func (s *Service) CompleteItem(ctx context.Context, cmd CompleteItem) (TodoItem, error) {
	todoID, err := todolist.ParseTodoID(cmd.TodoID)
	if err != nil {
		return TodoItem{}, err
	}
	list, err := s.loadOwned(ctx, cmd.OwnerID, cmd.ListID)
	if err != nil {
		return TodoItem{}, err
	}

	if err := list.CompleteTodo(todoID, s.clock.Now()); err != nil {
		return TodoItem{}, err
	}
	if _, err := s.save(ctx, "CompleteItem", list); err != nil {
		return TodoItem{}, err
	}
	return s.itemFrom(list, todoID)
}

// ReopenItem clears one todo's completion state.
func (s *Service) ReopenItem(ctx context.Context, cmd ReopenItem) (TodoItem, error) {
	todoID, err := todolist.ParseTodoID(cmd.TodoID)
	if err != nil {
		return TodoItem{}, err
	}
	list, err := s.loadOwned(ctx, cmd.OwnerID, cmd.ListID)
	if err != nil {
		return TodoItem{}, err
	}

	if err := list.ReopenTodo(todoID, s.clock.Now()); err != nil {
		return TodoItem{}, err
	}
	if _, err := s.save(ctx, "ReopenItem", list); err != nil {
		return TodoItem{}, err
	}
	return s.itemFrom(list, todoID)
}

// GetList returns the detail projection of one list.
func (s *Service) GetList(ctx context.Context, q GetList) (ListDetail, error) {
	list, err := s.loadOwned(ctx, q.OwnerID, q.ListID)
	if err != nil {
		return ListDetail{}, err
	}
	return toDetail(list), nil
}

// ListLists returns one page of list summaries for the owner.
func (s *Service) ListLists(ctx context.Context, q ListLists) (ListPage, error) {
	owner, err := user.ParseUserID(q.OwnerID)
	if err != nil {
		return ListPage{}, err
	}

	criteria, err := todolist.NewCriteriaBuilder().
		ForOwner(owner).
		WithPaging(q.Page, q.Limit).
		WithSort(q.Sort).
		WithTitleContains(q.TitleContains).
		Build()
	if err != nil {
		return ListPage{}, err
	}

	page, err := s.lists.Find(ctx, criteria)
	if err != nil {
		s.logger.ErrorContext(ctx, "failed to query lists",
			slog.String("operation", "ListLists"),
			slog.String("owner_id", q.OwnerID),
			slog.Any("error", err),
		)
		return ListPage{}, fmt.Errorf("querying lists: %w", err)
	}

	summaries := make([]ListSummary, 0, len(page.Items))
	for _, list := range page.Items {
		summaries = append(summaries, toSummary(list))
	}
	return ListPage{
		Items:       summaries,
		TotalItems:  page.TotalItems,
		TotalPages:  page.TotalPages,
		CurrentPage: page.CurrentPage,
		Limit:       page.Limit,
	}, nil
}

// Snapshot answers the cross-context ListSnapshotQuery with a flat view of
// one list: its title and the titles of its todos in insertion order.
func (s *Service) Snapshot(ctx context.Context, q contracts.ListSnapshotQuery) (contracts.ListSnapshot, error) {
	list, err := s.loadOwned(ctx, q.OwnerID, q.ListID)
	if err != nil {
		return contracts.ListSnapshot{}, err
	}

	titles := make([]string, 0, list.TodoCount())
	for _, td := range list.Todos() {
		titles = append(titles, td.Title().String())
	}
	return contracts.ListSnapshot{
		ListID:     list.ID().String(),
		Title:      list.Title().String(),
		ItemTitles: titles,
	}, nil
}

// OnUserDeleted cascades an account removal by deleting every list the user
// owned.
func (s *Service) OnUserDeleted(ctx context.Context, event contracts.UserDeleted) error {
	owner, err := user.ParseUserID(event.UserID)
	if err != nil {
		return fmt.Errorf("user deleted event carries invalid user id %q: %w", event.UserID, err)
	}

	removed, err := s.lists.DeleteByOwner(ctx, owner)
	if err != nil {
		s.logger.ErrorContext(ctx, "failed to cascade user deletion",
			slog.String("operation", "OnUserDeleted"),
			slog.String("user_id", event.UserID),
			slog.Any("error", err),
		)
		return fmt.Errorf("deleting lists of user %s: %w", event.UserID, err)
	}

	s.logger.InfoContext(ctx, "cascaded user deletion",
		slog.String("user_id", event.UserID),
		slog.Int64("lists_removed", removed),
	)
	return nil
}

// loadOwned fetches a list and verifies the caller owns it. A list owned by
// someone else yields domain.ErrForbidden regardless of its existence being
// known to the caller.
func (s *Service) loadOwned(ctx context.Context, rawOwner, rawList string) (*todolist.List, error) {
	owner, err := user.ParseUserID(rawOwner)
	if err != nil {
		return nil, err
	}
	listID, err := todolist.ParseListID(rawList)
	if err != nil {
		return nil, err
	}

	list, err := s.lists.GetByID(ctx, listID)
	if err != nil {
		return nil, err
	}
	if !list.IsOwnedBy(owner) {
		return nil, fmt.Errorf("list %s is not owned by user %s: %w", listID, owner, domain.ErrForbidden)
	}
	return list, nil
}

// save persists a mutated aggregate and publishes its recorded events. A
// stale version surfaces as domain.ErrConcurrency for the caller to retry.
func (s *Service) save(ctx context.Context, operation string, list *todolist.List) (ListDetail, error) {
	if err := s.lists.Update(ctx, list); err != nil {
		if !errors.Is(err, domain.ErrConcurrency) {
			s.logger.ErrorContext(ctx, "failed to persist list",
				slog.String("operation", operation),
				slog.String("list_id", list.ID().String()),
				slog.Any("error", err),
			)
		}
		return ListDetail{}, fmt.Errorf("persisting list: %w", err)
	}
	s.publishEvents(ctx, list)
	return toDetail(list), nil
}

// publishEvents drains the aggregate's recorded events, translates them to
// integration contracts, and publishes them. Publishing happens after the
// state change committed; a failing subscriber is logged, not surfaced, so
// a side effect cannot roll back a persisted change.
func (s *Service) publishEvents(ctx context.Context, list *todolist.List) {
	for _, event := range list.DrainEvents() {
		contract, ok := contracts.FromDomainEvent(event)
		if !ok {
			continue
		}
		if err := s.bus.Publish(ctx, contract); err != nil {
			s.logger.ErrorContext(ctx, "failed to publish integration event",
				slog.String("event", event.EventName()),
				slog.String("list_id", list.ID().String()),
				slog.Any("error", err),
			)
		}
	}
}

func (s *Service) itemFrom(list *todolist.List, id todolist.TodoID) (TodoItem, error) {
	for _, td := range list.Todos() {
		if td.ID() == id {
			return toItem(td), nil
		}
	}
	return TodoItem{}, fmt.Errorf("todo %s: %w", id, domain.ErrNotFound)
}
