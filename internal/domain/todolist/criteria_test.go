package todolist

import (
	"errors"
	"testing"

	"github.com/taskfolio/taskfolio/internal/domain"
	"github.com/taskfolio/taskfolio/internal/domain/paging"
	"github.com/taskfolio/taskfolio/internal/domain/user"
)

func TestCriteriaBuilder_Defaults(t *testing.T) {
	t.Parallel()

	owner := user.NewUserID()
	criteria, err := NewCriteriaBuilder().ForOwner(owner).Build()
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}

	if criteria.Owner() != owner {
		t.Errorf("Owner() = %v, want %v", criteria.Owner(), owner)
	}
	if criteria.Paging().Page() != 1 || criteria.Paging().Limit() != paging.DefaultLimit {
		t.Errorf("Paging() = page %d limit %d, want 1/%d",
			criteria.Paging().Page(), criteria.Paging().Limit(), paging.DefaultLimit)
	}
	if criteria.Sort().Field != SortByUpdatedAt || criteria.Sort().Ascending() {
		t.Errorf("Sort() = %+v, want updated_at descending", criteria.Sort())
	}
}

func TestCriteriaBuilder_FullSpecification(t *testing.T) {
	t.Parallel()

	owner := user.NewUserID()
	criteria, err := NewCriteriaBuilder().
		WithPaging(3, 10).
		ForOwner(owner).
		WithTitleContains("grocer").
		WithSort("-title").
		Build()
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}

	if criteria.Paging().Page() != 3 || criteria.Paging().Limit() != 10 {
		t.Errorf("Paging() = %d/%d, want 3/10", criteria.Paging().Page(), criteria.Paging().Limit())
	}
	if criteria.TitleContains() != "grocer" {
		t.Errorf("TitleContains() = %q, want %q", criteria.TitleContains(), "grocer")
	}
	if criteria.Sort().Field != SortByTitle || criteria.Sort().Ascending() {
		t.Errorf("Sort() = %+v, want title descending", criteria.Sort())
	}
}

func TestCriteriaBuilder_FirstErrorWins(t *testing.T) {
	t.Parallel()

	// Invalid paging comes first; the later invalid sort must not mask it.
	_, err := NewCriteriaBuilder().
		WithPaging(0, 10).
		ForOwner(user.NewUserID()).
		WithSort("bogus").
		Build()
	if err == nil {
		t.Fatal("Build() = nil error, want error")
	}

	var verr *domain.ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("errors.As(err, *ValidationError) = false, got %T", err)
	}
	if _, ok := verr.Fields["page"]; !ok {
		t.Errorf("first error should be the paging failure, got fields %v", verr.Fields)
	}
}

func TestCriteriaBuilder_MissingOwnerFails(t *testing.T) {
	t.Parallel()

	_, err := NewCriteriaBuilder().WithPaging(1, 10).Build()
	if !errors.Is(err, domain.ErrValidation) {
		t.Errorf("Build() without owner error = %v, want ErrValidation", err)
	}
}

func TestCriteriaBuilder_InvalidSortFails(t *testing.T) {
	t.Parallel()

	_, err := NewCriteriaBuilder().ForOwner(user.NewUserID()).WithSort("priority").Build()
	if !errors.Is(err, domain.ErrValidation) {
		t.Errorf("Build() with bad sort error = %v, want ErrValidation", err)
	}
}
