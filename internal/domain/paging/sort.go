package paging

import (
	"fmt"
	"sort"
	"strings"

	"github.com/taskfolio/taskfolio/internal/domain"
)

// Direction is the ordering direction of a sort selection.
type Direction string

const (
	Ascending  Direction = "asc"
	Descending Direction = "desc"
)

// Sort is a parsed sort selection over a context-specific field type.
type Sort[F comparable] struct {
	Field     F
	Direction Direction
}

// Ascending reports whether the selection orders ascending.
func (s Sort[F]) Ascending() bool { return s.Direction == Ascending }

// ParseSort parses a raw sort expression against an explicit field mapping
// table. It is a pure function: the same input always yields the same output.
//
// An empty or all-whitespace expression yields the defaults. A leading '-'
// selects descending order and is stripped before the case-insensitive field
// lookup. An unmapped field name fails with a validation error naming the
// unsupported field and the supported set.
func ParseSort[F comparable](raw string, fields map[string]F, defaultField F, defaultDir Direction) (Sort[F], error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return Sort[F]{Field: defaultField, Direction: defaultDir}, nil
	}

	dir := Ascending
	name := raw
	if strings.HasPrefix(name, "-") {
		dir = Descending
		name = name[1:]
	}

	field, ok := fields[strings.ToLower(name)]
	if !ok {
		return Sort[F]{}, domain.NewValidationError("sort",
			fmt.Sprintf("unsupported field %q, supported: %s", name, strings.Join(supportedFields(fields), ", ")))
	}

	return Sort[F]{Field: field, Direction: dir}, nil
}

func supportedFields[F comparable](fields map[string]F) []string {
	names := make([]string, 0, len(fields))
	for name := range fields {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
