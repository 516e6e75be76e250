package todolist

import (
	"github.com/taskfolio/taskfolio/internal/domain"
	"github.com/taskfolio/taskfolio/internal/domain/paging"
	"github.com/taskfolio/taskfolio/internal/domain/user"
)

// SortField enumerates the columns list queries may be ordered by.
type SortField string

const (
	SortByTitle     SortField = "title"
	SortByCreatedAt SortField = "created_at"
	SortByUpdatedAt SortField = "updated_at"
)

// sortFields is the explicit mapping table consumed by paging.ParseSort.
// Keys are the lower-cased forms accepted on the wire.
func sortFields() map[string]SortField {
	return map[string]SortField{
		"title":     SortByTitle,
		"createdat": SortByCreatedAt,
		"updatedat": SortByUpdatedAt,
	}
}

// Criteria is an immutable filter/sort/paging specification for list
// queries. Construct only via CriteriaBuilder.
type Criteria struct {
	paging        paging.Parameters
	owner         user.UserID
	titleContains string
	sort          paging.Sort[SortField]
}

// Paging returns the pagination parameters.
func (c Criteria) Paging() paging.Parameters { return c.paging }

// Owner returns the owner scope. Every list query is owner-scoped.
func (c Criteria) Owner() user.UserID { return c.owner }

// TitleContains returns the optional case-insensitive title filter;
// empty means no filter.
func (c Criteria) TitleContains() string { return c.titleContains }

// Sort returns the parsed sort selection.
func (c Criteria) Sort() paging.Sort[SortField] { return c.sort }

// CriteriaBuilder accumulates query inputs and validates them on Build.
// The first validation failure encountered is retained and returned.
type CriteriaBuilder struct {
	criteria Criteria
	err      error
}

// NewCriteriaBuilder starts a builder with default paging (page 1, default
// limit) and the default sort (updatedAt descending).
func NewCriteriaBuilder() *CriteriaBuilder {
	b := &CriteriaBuilder{}
	b.criteria.paging, _ = paging.NewParameters(1, paging.DefaultLimit)
	b.criteria.sort = paging.Sort[SortField]{Field: SortByUpdatedAt, Direction: paging.Descending}
	return b
}

// WithPaging validates and sets the pagination parameters.
func (b *CriteriaBuilder) WithPaging(page, limit int) *CriteriaBuilder {
	if b.err != nil {
		return b
	}
	b.criteria.paging, b.err = paging.NewParameters(page, limit)
	return b
}

// ForOwner scopes the query to the given owner.
func (b *CriteriaBuilder) ForOwner(owner user.UserID) *CriteriaBuilder {
	if b.err != nil {
		return b
	}
	b.criteria.owner = owner
	return b
}

// WithTitleContains sets an optional case-insensitive title substring filter.
func (b *CriteriaBuilder) WithTitleContains(s string) *CriteriaBuilder {
	if b.err != nil {
		return b
	}
	b.criteria.titleContains = s
	return b
}

// WithSort parses a raw sort expression ("title", "-updatedAt", ...) against
// the list sort fields. Empty input keeps the default sort.
func (b *CriteriaBuilder) WithSort(raw string) *CriteriaBuilder {
	if b.err != nil {
		return b
	}
	b.criteria.sort, b.err = paging.ParseSort(raw, sortFields(), SortByUpdatedAt, paging.Descending)
	return b
}

// Build validates the combination and returns the immutable criteria, or the
// first validation failure encountered while building.
func (b *CriteriaBuilder) Build() (Criteria, error) {
	if b.err != nil {
		return Criteria{}, b.err
	}
	if b.criteria.owner.IsZero() {
		return Criteria{}, domain.NewValidationError("owner_id", domain.MsgRequired)
	}
	return b.criteria, nil
}
