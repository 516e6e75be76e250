package users_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taskfolio/taskfolio/internal/app/todolists"
	"github.com/taskfolio/taskfolio/internal/app/users"
	"github.com/taskfolio/taskfolio/internal/bus"
	"github.com/taskfolio/taskfolio/internal/contracts"
	"github.com/taskfolio/taskfolio/internal/domain"
	"github.com/taskfolio/taskfolio/internal/platform/clock"
	"github.com/taskfolio/taskfolio/internal/testutil"
)

type fixture struct {
	service *users.Service
	repo    *testutil.UserRepo
	bus     *bus.Bus
	clock   *clock.Fixed
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	repo := testutil.NewUserRepo()
	b := bus.New(nil)
	clk := clock.NewFixed(time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC))
	svc := users.NewService(repo, b, clk, nil)
	users.Register(b, svc)

	return &fixture{service: svc, repo: repo, bus: b, clock: clk}
}

func (f *fixture) register(t *testing.T, email, name string) users.Account {
	t.Helper()
	account, err := f.service.RegisterUser(context.Background(), users.RegisterUser{
		Email:    email,
		UserName: name,
	})
	require.NoError(t, err)
	return account
}

func TestRegisterUser(t *testing.T) {
	f := newFixture(t)

	account := f.register(t, "Ada@Example.com", "ada")

	assert.NotEmpty(t, account.ID)
	assert.Equal(t, "ada@example.com", account.Email)
	assert.Equal(t, "ada", account.UserName)
	assert.Equal(t, f.clock.At, account.CreatedAt)
}

func TestRegisterUserValidation(t *testing.T) {
	f := newFixture(t)

	tests := []struct {
		name string
		cmd  users.RegisterUser
	}{
		{name: "malformed email", cmd: users.RegisterUser{Email: "not-an-email", UserName: "ada"}},
		{name: "blank email", cmd: users.RegisterUser{Email: "  ", UserName: "ada"}},
		{name: "blank user name", cmd: users.RegisterUser{Email: "ada@example.com", UserName: " "}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.service.RegisterUser(context.Background(), tt.cmd)
			require.ErrorIs(t, err, domain.ErrValidation)
		})
	}
}

func TestRegisterUserUniqueness(t *testing.T) {
	f := newFixture(t)
	f.register(t, "ada@example.com", "ada")

	// Email comparison is case-insensitive via normalization.
	_, err := f.service.RegisterUser(context.Background(), users.RegisterUser{
		Email:    "ADA@EXAMPLE.COM",
		UserName: "other",
	})
	require.ErrorIs(t, err, domain.ErrConflict)

	_, err = f.service.RegisterUser(context.Background(), users.RegisterUser{
		Email:    "other@example.com",
		UserName: "ada",
	})
	require.ErrorIs(t, err, domain.ErrConflict)
}

func TestRegisterUserPublishesEvent(t *testing.T) {
	f := newFixture(t)

	var received []contracts.UserRegistered
	bus.Subscribe[contracts.UserRegistered](f.bus, "test.capture", func(_ context.Context, e contracts.UserRegistered) error {
		received = append(received, e)
		return nil
	})

	account := f.register(t, "ada@example.com", "ada")

	require.Len(t, received, 1)
	assert.Equal(t, account.ID, received[0].UserID)
	assert.Equal(t, "ada@example.com", received[0].Email)
}

func TestRenameUser(t *testing.T) {
	f := newFixture(t)
	account := f.register(t, "ada@example.com", "ada")

	renamed, err := f.service.RenameUser(context.Background(), users.RenameUser{
		UserID:   account.ID,
		UserName: "countess",
	})
	require.NoError(t, err)
	assert.Equal(t, "countess", renamed.UserName)

	fetched, err := f.service.GetUser(context.Background(), users.GetUser{UserID: account.ID})
	require.NoError(t, err)
	assert.Equal(t, "countess", fetched.UserName)
}

func TestGetUserNotFound(t *testing.T) {
	f := newFixture(t)

	_, err := f.service.GetUser(context.Background(), users.GetUser{
		UserID: "0e0f7f7a-64a4-4c68-9bbd-1fbbb3a7fb7e",
	})
	require.ErrorIs(t, err, domain.ErrNotFound)
}

func TestDeleteUserCascadesToLists(t *testing.T) {
	f := newFixture(t)

	listRepo := testutil.NewToDoListRepo()
	listService := todolists.NewService(listRepo, f.bus, f.clock, nil)
	todolists.Register(f.bus, listService)

	account := f.register(t, "ada@example.com", "ada")
	_, err := listService.CreateList(context.Background(), todolists.CreateList{
		OwnerID: account.ID,
		Title:   "Groceries",
	})
	require.NoError(t, err)

	_, err = f.service.DeleteUser(context.Background(), users.DeleteUser{UserID: account.ID})
	require.NoError(t, err)

	_, err = f.service.GetUser(context.Background(), users.GetUser{UserID: account.ID})
	require.ErrorIs(t, err, domain.ErrNotFound)

	page, err := listService.ListLists(context.Background(), todolists.ListLists{OwnerID: account.ID})
	require.NoError(t, err)
	assert.Empty(t, page.Items)
}

func TestListUsers(t *testing.T) {
	f := newFixture(t)
	f.register(t, "ada@example.com", "ada")
	f.clock.Advance(time.Minute)
	f.register(t, "grace@example.com", "grace")
	f.clock.Advance(time.Minute)
	f.register(t, "edsger@example.net", "edsger")

	// Default sort is createdAt descending.
	page, err := f.service.ListUsers(context.Background(), users.ListUsers{})
	require.NoError(t, err)
	assert.Equal(t, int64(3), page.TotalItems)
	require.Len(t, page.Items, 3)
	assert.Equal(t, "edsger", page.Items[0].UserName)

	page, err = f.service.ListUsers(context.Background(), users.ListUsers{
		Sort:  "userName",
		Limit: 2,
	})
	require.NoError(t, err)
	assert.Equal(t, 2, page.TotalPages)
	require.Len(t, page.Items, 2)
	assert.Equal(t, "ada", page.Items[0].UserName)
	assert.Equal(t, "edsger", page.Items[1].UserName)

	page, err = f.service.ListUsers(context.Background(), users.ListUsers{
		EmailContains: "example.com",
	})
	require.NoError(t, err)
	assert.Equal(t, int64(2), page.TotalItems)
}

func TestListUsersInvalidSort(t *testing.T) {
	f := newFixture(t)

	_, err := f.service.ListUsers(context.Background(), users.ListUsers{Sort: "bogus"})
	require.ErrorIs(t, err, domain.ErrValidation)
}
