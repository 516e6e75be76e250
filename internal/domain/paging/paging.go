// Package paging provides the shared query core used by every bounded
// context: validated pagination parameters, paged results with derived
// totals, and a generic sort-parameter parser. All types are immutable
// after construction; invalid instances cannot be built.
package paging

import (
	"fmt"

	"github.com/taskfolio/taskfolio/internal/domain"
)

const (
	// DefaultLimit is the page size used when the caller does not ask
	// for one.
	DefaultLimit = 20

	// MaxLimit caps the page size a caller may request.
	MaxLimit = 100
)

// Parameters is a validated pagination request. Construct via NewParameters;
// the zero value is not valid.
type Parameters struct {
	page  int
	limit int
}

// NewParameters validates page and limit and returns immutable Parameters.
// Page must be >= 1. A limit of 0 selects DefaultLimit; otherwise the limit
// must be between 1 and MaxLimit.
func NewParameters(page, limit int) (Parameters, error) {
	if page < 1 {
		return Parameters{}, domain.NewValidationError("page", fmt.Sprintf("must be >= 1, got %d", page))
	}
	if limit == 0 {
		limit = DefaultLimit
	}
	if limit < 1 || limit > MaxLimit {
		return Parameters{}, domain.NewValidationError("limit", fmt.Sprintf("must be 1-%d, got %d", MaxLimit, limit))
	}
	return Parameters{page: page, limit: limit}, nil
}

// Page returns the 1-based page number.
func (p Parameters) Page() int { return p.page }

// Limit returns the page size.
func (p Parameters) Limit() int { return p.limit }

// Offset returns the number of rows to skip for this page.
func (p Parameters) Offset() int { return (p.page - 1) * p.limit }

// Result is one page of query output plus the metadata clients need for
// pagination. Construct via NewResult.
type Result[T any] struct {
	Items       []T
	TotalItems  int64
	TotalPages  int
	CurrentPage int
	Limit       int
}

// NewResult builds a Result from repository output. TotalPages is the
// ceiling of totalItems/limit; the original page and limit are retained for
// echo-back to the caller.
func NewResult[T any](items []T, totalItems int64, params Parameters) (Result[T], error) {
	if totalItems < 0 {
		return Result[T]{}, domain.NewValidationError("total_items", fmt.Sprintf("must be >= 0, got %d", totalItems))
	}
	if items == nil {
		items = []T{}
	}

	limit := int64(params.Limit())
	totalPages := int((totalItems + limit - 1) / limit)

	return Result[T]{
		Items:       items,
		TotalItems:  totalItems,
		TotalPages:  totalPages,
		CurrentPage: params.Page(),
		Limit:       params.Limit(),
	}, nil
}
