package user

import "time"

// Registered is recorded when a new account is created.
type Registered struct {
	User  UserID
	Email string
	At    time.Time
}

// EventName implements domain.Event.
func (e Registered) EventName() string { return "user.registered" }

// OccurredAt implements domain.Event.
func (e Registered) OccurredAt() time.Time { return e.At }

// Deleted is recorded when an account is removed. Downstream contexts
// cascade-delete the user's data when the translated integration event is
// published.
type Deleted struct {
	User UserID
	At   time.Time
}

// EventName implements domain.Event.
func (e Deleted) EventName() string { return "user.deleted" }

// OccurredAt implements domain.Event.
func (e Deleted) OccurredAt() time.Time { return e.At }
