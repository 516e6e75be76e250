// Package users provides the application service of the Users bounded
// context: account registration, lookup, renaming, and deletion. Deleting
// an account publishes a UserDeleted contract that other contexts consume
// to cascade removal of the user's data.
package users

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/taskfolio/taskfolio/internal/contracts"
	"github.com/taskfolio/taskfolio/internal/domain"
	"github.com/taskfolio/taskfolio/internal/domain/user"
	"github.com/taskfolio/taskfolio/internal/ports"
)

// Service implements the Users use cases.
type Service struct {
	users  ports.UserRepository
	bus    ports.Bus
	clock  ports.Clock
	logger *slog.Logger
}

// NewService creates the Users application service. A nil logger discards
// all output.
func NewService(users ports.UserRepository, bus ports.Bus, clock ports.Clock, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Service{
		users:  users,
		bus:    bus,
		clock:  clock,
		logger: logger,
	}
}

// RegisterUser creates an account after checking email and user name
// uniqueness. The repository re-checks both under its unique indexes, so a
// race between the pre-check and the insert still fails cleanly with
// domain.ErrConflict.
func (s *Service) RegisterUser(ctx context.Context, cmd RegisterUser) (Account, error) {
	email, err := user.NewEmail(cmd.Email)
	if err != nil {
		return Account{}, err
	}
	name, err := user.NewName(cmd.UserName)
	if err != nil {
		return Account{}, err
	}

	if taken, err := s.users.ExistsByEmail(ctx, email); err != nil {
		return Account{}, fmt.Errorf("checking email uniqueness: %w", err)
	} else if taken {
		return Account{}, fmt.Errorf("email %s already registered: %w", email, domain.ErrConflict)
	}
	if taken, err := s.users.ExistsByName(ctx, name); err != nil {
		return Account{}, fmt.Errorf("checking user name uniqueness: %w", err)
	} else if taken {
		return Account{}, fmt.Errorf("user name %s already taken: %w", name, domain.ErrConflict)
	}

	u, err := user.Register(user.NewUserID(), email, name, s.clock.Now())
	if err != nil {
		return Account{}, err
	}

	if err := s.users.Add(ctx, u); err != nil {
		s.logger.ErrorContext(ctx, "failed to persist new user",
			slog.String("operation", "RegisterUser"),
			slog.Any("error", err),
		)
		return Account{}, fmt.Errorf("persisting user: %w", err)
	}

	s.logger.InfoContext(ctx, "user registered", slog.String("user_id", u.ID().String()))
	s.publishEvents(ctx, u)
	return toAccount(u), nil
}

// RenameUser replaces the account's user name. Uniqueness is enforced by
// the repository on save.
func (s *Service) RenameUser(ctx context.Context, cmd RenameUser) (Account, error) {
	id, err := user.ParseUserID(cmd.UserID)
	if err != nil {
		return Account{}, err
	}
	name, err := user.NewName(cmd.UserName)
	if err != nil {
		return Account{}, err
	}

	u, err := s.users.GetByID(ctx, id)
	if err != nil {
		return Account{}, err
	}
	u.Rename(name)

	if err := s.users.Update(ctx, u); err != nil {
		s.logger.ErrorContext(ctx, "failed to persist user rename",
			slog.String("operation", "RenameUser"),
			slog.String("user_id", cmd.UserID),
			slog.Any("error", err),
		)
		return Account{}, fmt.Errorf("persisting user: %w", err)
	}
	return toAccount(u), nil
}

// DeleteUser removes an account and publishes UserDeleted so other contexts
// cascade. The event is published only after the delete committed.
func (s *Service) DeleteUser(ctx context.Context, cmd DeleteUser) (struct{}, error) {
	id, err := user.ParseUserID(cmd.UserID)
	if err != nil {
		return struct{}{}, err
	}

	u, err := s.users.GetByID(ctx, id)
	if err != nil {
		return struct{}{}, err
	}
	u.MarkDeleted(s.clock.Now())

	if err := s.users.Delete(ctx, id); err != nil {
		s.logger.ErrorContext(ctx, "failed to delete user",
			slog.String("operation", "DeleteUser"),
			slog.String("user_id", cmd.UserID),
			slog.Any("error", err),
		)
		return struct{}{}, fmt.Errorf("deleting user: %w", err)
	}

	s.logger.InfoContext(ctx, "user deleted", slog.String("user_id", cmd.UserID))
	s.publishEvents(ctx, u)
	return struct{}{}, nil
}

// GetUser returns one account.
func (s *Service) GetUser(ctx context.Context, q GetUser) (Account, error) {
	id, err := user.ParseUserID(q.UserID)
	if err != nil {
		return Account{}, err
	}

	u, err := s.users.GetByID(ctx, id)
	if err != nil {
		return Account{}, err
	}
	return toAccount(u), nil
}

// ListUsers returns one page of accounts.
func (s *Service) ListUsers(ctx context.Context, q ListUsers) (AccountPage, error) {
	criteria, err := user.NewCriteriaBuilder().
		WithPaging(q.Page, q.Limit).
		WithSort(q.Sort).
		WithEmailContains(q.EmailContains).
		Build()
	if err != nil {
		return AccountPage{}, err
	}

	page, err := s.users.Find(ctx, criteria)
	if err != nil {
		s.logger.ErrorContext(ctx, "failed to query users",
			slog.String("operation", "ListUsers"),
			slog.Any("error", err),
		)
		return AccountPage{}, fmt.Errorf("querying users: %w", err)
	}

	accounts := make([]Account, 0, len(page.Items))
	for _, u := range page.Items {
		accounts = append(accounts, toAccount(u))
	}
	return AccountPage{
		Items:       accounts,
		TotalItems:  page.TotalItems,
		TotalPages:  page.TotalPages,
		CurrentPage: page.CurrentPage,
		Limit:       page.Limit,
	}, nil
}

// publishEvents drains the aggregate's recorded events and publishes their
// contract forms. Failures are logged, not surfaced: the state change has
// already committed.
func (s *Service) publishEvents(ctx context.Context, u *user.User) {
	for _, event := range u.DrainEvents() {
		contract, ok := contracts.FromDomainEvent(event)
		if !ok {
			continue
		}
		if err := s.bus.Publish(ctx, contract); err != nil {
			s.logger.ErrorContext(ctx, "failed to publish integration event",
				slog.String("event", event.EventName()),
				slog.String("user_id", u.ID().String()),
				slog.Any("error", err),
			)
		}
	}
}
