package users

import (
	"time"

	"github.com/taskfolio/taskfolio/internal/domain/paging"
	"github.com/taskfolio/taskfolio/internal/domain/user"
)

// Account is the projection of one user.
type Account struct {
	ID        string
	Email     string
	UserName  string
	CreatedAt time.Time
}

// AccountPage is one page of accounts.
type AccountPage = paging.Result[Account]

func toAccount(u *user.User) Account {
	return Account{
		ID:        u.ID().String(),
		Email:     u.Email().String(),
		UserName:  u.Name().String(),
		CreatedAt: u.CreatedAt(),
	}
}
