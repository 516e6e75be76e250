package user

import (
	"time"

	"github.com/taskfolio/taskfolio/internal/domain"
)

// User is the Users aggregate root: an account identified by a globally
// unique email and user name. Uniqueness across aggregates is enforced by
// the persistence layer; the aggregate enforces local invariants only.
type User struct {
	domain.EventRecorder

	id        UserID
	email     Email
	name      Name
	createdAt time.Time
	version   int
}

// Register creates a new user account and records a Registered event.
func Register(id UserID, email Email, name Name, now time.Time) (*User, error) {
	if id.IsZero() {
		return nil, domain.NewValidationError("user_id", domain.MsgRequired)
	}
	if email.IsZero() {
		return nil, domain.NewValidationError("email", domain.MsgRequired)
	}
	if name.IsZero() {
		return nil, domain.NewValidationError("user_name", domain.MsgRequired)
	}

	u := &User{
		id:        id,
		email:     email,
		name:      name,
		createdAt: now,
	}
	u.Record(Registered{User: id, Email: email.String(), At: now})
	return u, nil
}

// Rehydrate reconstructs a persisted user for the storage adapter.
func Rehydrate(id UserID, email Email, name Name, createdAt time.Time, version int) *User {
	return &User{
		id:        id,
		email:     email,
		name:      name,
		createdAt: createdAt,
		version:   version,
	}
}

// Rename replaces the user name. Global uniqueness is checked by the
// repository on save.
func (u *User) Rename(name Name) {
	u.name = name
}

// MarkDeleted records the Deleted event. The application layer calls this
// before removing the row so the cascade event is published only after the
// delete commits.
func (u *User) MarkDeleted(now time.Time) {
	u.Record(Deleted{User: u.id, At: now})
}

// ID returns the user identifier.
func (u *User) ID() UserID { return u.id }

// Email returns the account email.
func (u *User) Email() Email { return u.email }

// Name returns the account user name.
func (u *User) Name() Name { return u.name }

// CreatedAt returns the registration timestamp.
func (u *User) CreatedAt() time.Time { return u.createdAt }

// Version returns the optimistic-concurrency stamp loaded from storage.
func (u *User) Version() int { return u.version }
