package ports

import (
	"context"

	"github.com/taskfolio/taskfolio/internal/domain/paging"
	"github.com/taskfolio/taskfolio/internal/domain/todolist"
	"github.com/taskfolio/taskfolio/internal/domain/user"
)

// ToDoListRepository abstracts persistence for the List aggregate.
// Implementations are safe for concurrent use and retain no per-request
// state. All methods respect context cancellation.
type ToDoListRepository interface {
	// GetByID loads a list with its todos.
	// Returns domain.ErrNotFound if the list does not exist.
	GetByID(ctx context.Context, id todolist.ListID) (*todolist.List, error)

	// Find returns one page of lists matching the criteria, with todos
	// populated, ordered per the criteria's sort selection.
	Find(ctx context.Context, criteria todolist.Criteria) (paging.Result[*todolist.List], error)

	// Add persists a new aggregate.
	Add(ctx context.Context, list *todolist.List) error

	// Update persists a mutated aggregate using its version as an
	// optimistic-concurrency stamp. Returns domain.ErrConcurrency if the
	// stored version no longer matches, domain.ErrNotFound if the row is
	// gone.
	Update(ctx context.Context, list *todolist.List) error

	// Delete removes a list and its todos.
	// Returns domain.ErrNotFound if the list does not exist.
	Delete(ctx context.Context, id todolist.ListID) error

	// DeleteByOwner removes every list owned by the given user and
	// returns the number of lists removed.
	DeleteByOwner(ctx context.Context, owner user.UserID) (int64, error)
}

// UserRepository abstracts persistence for the User aggregate.
type UserRepository interface {
	// GetByID loads a user.
	// Returns domain.ErrNotFound if the user does not exist.
	GetByID(ctx context.Context, id user.UserID) (*user.User, error)

	// Find returns one page of users matching the criteria.
	Find(ctx context.Context, criteria user.Criteria) (paging.Result[*user.User], error)

	// Add persists a new account. Returns domain.ErrConflict if the email
	// or user name is already taken.
	Add(ctx context.Context, u *user.User) error

	// Update persists a mutated account using its version stamp. Returns
	// domain.ErrConcurrency on a stale version, domain.ErrConflict on a
	// uniqueness violation.
	Update(ctx context.Context, u *user.User) error

	// Delete removes an account.
	// Returns domain.ErrNotFound if the user does not exist.
	Delete(ctx context.Context, id user.UserID) error

	// ExistsByEmail reports whether an account with the given normalized
	// email exists.
	ExistsByEmail(ctx context.Context, email user.Email) (bool, error)

	// ExistsByName reports whether an account with the given user name
	// exists.
	ExistsByName(ctx context.Context, name user.Name) (bool, error)
}
