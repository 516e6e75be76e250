package todolists

// Commands and queries of the ToDoLists context. All fields are primitives
// as received from the inbound adapter; the handlers validate them into
// value objects before touching any aggregate.

// CreateList creates a new, empty list for the owner.
type CreateList struct {
	OwnerID string
	Title   string
}

// RenameList replaces a list's title.
type RenameList struct {
	OwnerID string
	ListID  string
	Title   string
}

// DeleteList removes a list and its todos.
type DeleteList struct {
	OwnerID string
	ListID  string
}

// AddItem appends one todo to a list.
type AddItem struct {
	OwnerID string
	ListID  string
	Title   string
}

// AddItems appends several todos to a list with partial-success semantics:
// each title succeeds or fails independently, and the aggregate is saved
// once if at least one title was accepted.
type AddItems struct {
	OwnerID string
	ListID  string
	Titles  []string
}

// RemoveItem deletes one todo from a list.
type RemoveItem struct {
	OwnerID string
	ListID  string
	TodoID  string
}

// RenameItem replaces one todo's title, preserving its completion state.
type RenameItem struct {
	OwnerID string
	ListID  string
	TodoID  string
	Title   string
}

// CompleteItem marks one todo completed. Idempotent.
type CompleteItem struct {
	OwnerID string
	ListID  string
	TodoID  string
}

// ReopenItem clears one todo's completion state.
type ReopenItem struct {
	OwnerID string
	ListID  string
	TodoID  string
}

// GetList returns the detail projection of one list.
type GetList struct {
	OwnerID string
	ListID  string
}

// ListLists returns one page of list summaries for the owner. Sort accepts
// "title", "createdAt", "updatedAt", each optionally prefixed with '-' for
// descending; empty selects updatedAt descending. A Limit of 0 selects the
// default page size.
type ListLists struct {
	OwnerID       string
	Page          int
	Limit         int
	Sort          string
	TitleContains string
}
