package users

// RegisterUser creates an account. Email and user name must be globally
// unique; the email is normalized to lower case before the check.
type RegisterUser struct {
	Email    string
	UserName string
}

// RenameUser replaces the account's user name.
type RenameUser struct {
	UserID   string
	UserName string
}

// DeleteUser removes an account. Consumers of the resulting UserDeleted
// event cascade removal of the user's data in their own context.
type DeleteUser struct {
	UserID string
}

// GetUser returns one account.
type GetUser struct {
	UserID string
}

// ListUsers returns one page of accounts. Sort accepts "userName", "email",
// "createdAt", each optionally prefixed with '-' for descending; empty
// selects createdAt descending. A Limit of 0 selects the default page size.
type ListUsers struct {
	Page          int
	Limit         int
	Sort          string
	EmailContains string
}
