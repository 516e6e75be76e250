package user

import (
	"github.com/taskfolio/taskfolio/internal/domain/paging"
)

// SortField enumerates the columns user queries may be ordered by.
type SortField string

const (
	SortByUserName  SortField = "user_name"
	SortByEmail     SortField = "email"
	SortByCreatedAt SortField = "created_at"
)

func sortFields() map[string]SortField {
	return map[string]SortField{
		"username":  SortByUserName,
		"email":     SortByEmail,
		"createdat": SortByCreatedAt,
	}
}

// Criteria is an immutable filter/sort/paging specification for user
// queries. Construct only via CriteriaBuilder.
type Criteria struct {
	paging        paging.Parameters
	emailContains string
	sort          paging.Sort[SortField]
}

// Paging returns the pagination parameters.
func (c Criteria) Paging() paging.Parameters { return c.paging }

// EmailContains returns the optional case-insensitive email filter;
// empty means no filter.
func (c Criteria) EmailContains() string { return c.emailContains }

// Sort returns the parsed sort selection.
func (c Criteria) Sort() paging.Sort[SortField] { return c.sort }

// CriteriaBuilder accumulates query inputs and validates them on Build.
type CriteriaBuilder struct {
	criteria Criteria
	err      error
}

// NewCriteriaBuilder starts a builder with default paging and the default
// sort (createdAt descending).
func NewCriteriaBuilder() *CriteriaBuilder {
	b := &CriteriaBuilder{}
	b.criteria.paging, _ = paging.NewParameters(1, paging.DefaultLimit)
	b.criteria.sort = paging.Sort[SortField]{Field: SortByCreatedAt, Direction: paging.Descending}
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

// WithEmailContains sets an optional case-insensitive email substring filter.
func (b *CriteriaBuilder) WithEmailContains(s string) *CriteriaBuilder {
	if b.err != nil {
		return b
	}
	b.criteria.emailContains = s
	return b
}

// WithSort parses a raw sort expression against the user sort fields.
func (b *CriteriaBuilder) WithSort(raw string) *CriteriaBuilder {
	if b.err != nil {
		return b
	}
	b.criteria.sort, b.err = paging.ParseSort(raw, sortFields(), SortByCreatedAt, paging.Descending)
	return b
}

// Build returns the immutable criteria, or the first validation failure
// encountered while building.
func (b *CriteriaBuilder) Build() (Criteria, error) {
	if b.err != nil {
		return Criteria{}, b.err
	}
	return b.criteria, nil
}
