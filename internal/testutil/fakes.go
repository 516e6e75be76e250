// Package testutil provides hand-written in-memory fakes for the repository
// and client ports, used by application and adapter tests. The fakes honor
// the same error contracts as the real adapters, including optimistic
// version stamping, so handler tests exercise the full error taxonomy.
package testutil

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/taskfolio/taskfolio/internal/domain"
	"github.com/taskfolio/taskfolio/internal/domain/paging"
	"github.com/taskfolio/taskfolio/internal/domain/todolist"
	"github.com/taskfolio/taskfolio/internal/domain/user"
	"github.com/taskfolio/taskfolio/internal/ports"
)

// Compile-time checks.
var (
	_ ports.ToDoListRepository = (*ToDoListRepo)(nil)
	_ ports.UserRepository     = (*UserRepo)(nil)
	_ ports.CompletionClient   = (*CompletionClient)(nil)
)

// ToDoListRepo is an in-memory ports.ToDoListRepository.
type ToDoListRepo struct {
	mu       sync.Mutex
	lists    map[todolist.ListID]*storedList
	FailWith error // when set, every call fails with this error
}

type storedList struct {
	list    *todolist.List
	version int
}

// NewToDoListRepo creates an empty in-memory list repository.
func NewToDoListRepo() *ToDoListRepo {
	return &ToDoListRepo{lists: make(map[todolist.ListID]*storedList)}
}

func (r *ToDoListRepo) GetByID(ctx context.Context, id todolist.ListID) (*todolist.List, error) {
	if err := r.guard(ctx); err != nil {
		return nil, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	stored, ok := r.lists[id]
	if !ok {
		return nil, fmt.Errorf("list %s: %w", id, domain.ErrNotFound)
	}
	return r.rehydrate(stored), nil
}

func (r *ToDoListRepo) Find(ctx context.Context, criteria todolist.Criteria) (paging.Result[*todolist.List], error) {
	if err := r.guard(ctx); err != nil {
		return paging.Result[*todolist.List]{}, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	var matched []*todolist.List
	for _, stored := range r.lists {
		list := r.rehydrate(stored)
		if !list.IsOwnedBy(criteria.Owner()) {
			continue
		}
		if s := criteria.TitleContains(); s != "" &&
			!strings.Contains(strings.ToLower(list.Title().String()), strings.ToLower(s)) {
			continue
		}
		matched = append(matched, list)
	}

	sortLists(matched, criteria.Sort())

	total := int64(len(matched))
	offset := criteria.Paging().Offset()
	if offset > len(matched) {
		offset = len(matched)
	}
	end := offset + criteria.Paging().Limit()
	if end > len(matched) {
		end = len(matched)
	}

	return paging.NewResult(matched[offset:end], total, criteria.Paging())
}

func (r *ToDoListRepo) Add(ctx context.Context, list *todolist.List) error {
	if err := r.guard(ctx); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.lists[list.ID()]; exists {
		return fmt.Errorf("list %s: %w", list.ID(), domain.ErrConflict)
	}
	r.lists[list.ID()] = &storedList{list: snapshot(list, 1), version: 1}
	return nil
}

func (r *ToDoListRepo) Update(ctx context.Context, list *todolist.List) error {
	if err := r.guard(ctx); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	stored, ok := r.lists[list.ID()]
	if !ok {
		return fmt.Errorf("list %s: %w", list.ID(), domain.ErrNotFound)
	}
	if stored.version != list.Version() {
		return fmt.Errorf("list %s version %d is stale: %w", list.ID(), list.Version(), domain.ErrConcurrency)
	}
	next := stored.version + 1
	r.lists[list.ID()] = &storedList{list: snapshot(list, next), version: next}
	return nil
}

func (r *ToDoListRepo) Delete(ctx context.Context, id todolist.ListID) error {
	if err := r.guard(ctx); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.lists[id]; !ok {
		return fmt.Errorf("list %s: %w", id, domain.ErrNotFound)
	}
	delete(r.lists, id)
	return nil
}

func (r *ToDoListRepo) DeleteByOwner(ctx context.Context, owner user.UserID) (int64, error) {
	if err := r.guard(ctx); err != nil {
		return 0, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	var removed int64
	for id, stored := range r.lists {
		if stored.list.IsOwnedBy(owner) {
			delete(r.lists, id)
			removed++
		}
	}
	return removed, nil
}

func (r *ToDoListRepo) guard(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return r.FailWith
}

// rehydrate returns an independent copy so callers cannot mutate the store
// without going through Update.
func (r *ToDoListRepo) rehydrate(stored *storedList) *todolist.List {
	return snapshot(stored.list, stored.version)
}

func snapshot(list *todolist.List, version int) *todolist.List {
	todos := make([]*todolist.ToDo, 0, list.TodoCount())
	for _, td := range list.Todos() {
		copied, err := todolist.RehydrateToDo(td.ID(), td.Title(), td.IsCompleted(), td.CreatedAt(), td.CompletedAt())
		if err != nil {
			panic(err) // stored entities always satisfy the invariant
		}
		todos = append(todos, copied)
	}
	return todolist.Rehydrate(list.ID(), list.OwnerID(), list.Title(), todos,
		list.CreatedAt(), list.UpdatedAt(), version)
}

func sortLists(lists []*todolist.List, s paging.Sort[todolist.SortField]) {
	less := func(a, b *todolist.List) bool {
		switch s.Field {
		case todolist.SortByTitle:
			return strings.ToLower(a.Title().String()) < strings.ToLower(b.Title().String())
		case todolist.SortByCreatedAt:
			return a.CreatedAt().Before(b.CreatedAt())
		default:
			return a.UpdatedAt().Before(b.UpdatedAt())
		}
	}
	sort.SliceStable(lists, func(i, j int) bool {
		if s.Ascending() {
			return less(lists[i], lists[j])
		}
		return less(lists[j], lists[i])
	})
}

// UserRepo is an in-memory ports.UserRepository.
type UserRepo struct {
	mu       sync.Mutex
	users    map[user.UserID]*storedUser
	FailWith error
}

type storedUser struct {
	user    *user.User
	version int
}

// NewUserRepo creates an empty in-memory user repository.
func NewUserRepo() *UserRepo {
	return &UserRepo{users: make(map[user.UserID]*storedUser)}
}

func (r *UserRepo) GetByID(ctx context.Context, id user.UserID) (*user.User, error) {
	if err := r.guard(ctx); err != nil {
		return nil, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	stored, ok := r.users[id]
	if !ok {
		return nil, fmt.Errorf("user %s: %w", id, domain.ErrNotFound)
	}
	return r.rehydrate(stored), nil
}

func (r *UserRepo) Find(ctx context.Context, criteria user.Criteria) (paging.Result[*user.User], error) {
	if err := r.guard(ctx); err != nil {
		return paging.Result[*user.User]{}, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	var matched []*user.User
	for _, stored := range r.users {
		u := r.rehydrate(stored)
		if s := criteria.EmailContains(); s != "" &&
			!strings.Contains(u.Email().String(), strings.ToLower(s)) {
			continue
		}
		matched = append(matched, u)
	}

	sortUsers(matched, criteria.Sort())

	total := int64(len(matched))
	offset := criteria.Paging().Offset()
	if offset > len(matched) {
		offset = len(matched)
	}
	end := offset + criteria.Paging().Limit()
	if end > len(matched) {
		end = len(matched)
	}

	return paging.NewResult(matched[offset:end], total, criteria.Paging())
}

func (r *UserRepo) Add(ctx context.Context, u *user.User) error {
	if err := r.guard(ctx); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, stored := range r.users {
		if stored.user.Email() == u.Email() {
			return fmt.Errorf("email %s already registered: %w", u.Email(), domain.ErrConflict)
		}
		if stored.user.Name() == u.Name() {
			return fmt.Errorf("user name %s already taken: %w", u.Name(), domain.ErrConflict)
		}
	}
	r.users[u.ID()] = &storedUser{user: copyUser(u, 1), version: 1}
	return nil
}

func (r *UserRepo) Update(ctx context.Context, u *user.User) error {
	if err := r.guard(ctx); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	stored, ok := r.users[u.ID()]
	if !ok {
		return fmt.Errorf("user %s: %w", u.ID(), domain.ErrNotFound)
	}
	if stored.version != u.Version() {
		return fmt.Errorf("user %s version %d is stale: %w", u.ID(), u.Version(), domain.ErrConcurrency)
	}
	next := stored.version + 1
	r.users[u.ID()] = &storedUser{user: copyUser(u, next), version: next}
	return nil
}

func (r *UserRepo) Delete(ctx context.Context, id user.UserID) error {
	if err := r.guard(ctx); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.users[id]; !ok {
		return fmt.Errorf("user %s: %w", id, domain.ErrNotFound)
	}
	delete(r.users, id)
	return nil
}

func (r *UserRepo) ExistsByEmail(ctx context.Context, email user.Email) (bool, error) {
	if err := r.guard(ctx); err != nil {
		return false, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, stored := range r.users {
		if stored.user.Email() == email {
			return true, nil
		}
	}
	return false, nil
}

func (r *UserRepo) ExistsByName(ctx context.Context, name user.Name) (bool, error) {
	if err := r.guard(ctx); err != nil {
		return false, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, stored := range r.users {
		if stored.user.Name() == name {
			return true, nil
		}
	}
	return false, nil
}

func (r *UserRepo) guard(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return r.FailWith
}

func (r *UserRepo) rehydrate(stored *storedUser) *user.User {
	return copyUser(stored.user, stored.version)
}

func copyUser(u *user.User, version int) *user.User {
	return user.Rehydrate(u.ID(), u.Email(), u.Name(), u.CreatedAt(), version)
}

func sortUsers(users []*user.User, s paging.Sort[user.SortField]) {
	less := func(a, b *user.User) bool {
		switch s.Field {
		case user.SortByUserName:
			return a.Name().String() < b.Name().String()
		case user.SortByEmail:
			return a.Email().String() < b.Email().String()
		default:
			return a.CreatedAt().Before(b.CreatedAt())
		}
	}
	sort.SliceStable(users, func(i, j int) bool {
		if s.Ascending() {
			return less(users[i], users[j])
		}
		return less(users[j], users[i])
	})
}

// CompletionClient is a canned ports.CompletionClient. Lines is returned for
// every prompt; Prompts records what was sent.
type CompletionClient struct {
	mu      sync.Mutex
	Lines   []string
	Err     error
	Prompts []string
}

func (c *CompletionClient) Complete(ctx context.Context, prompt string) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	c.mu.Lock()
	c.Prompts = append(c.Prompts, prompt)
	c.mu.Unlock()

	if c.Err != nil {
		return nil, c.Err
	}
	return c.Lines, nil
}
