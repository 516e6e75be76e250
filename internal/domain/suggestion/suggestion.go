// Package suggestion contains the AiItemSuggestions bounded context's pure
// domain logic: prompt construction for the completion model and filtering
// of candidate item titles against a list's existing todos. All functions
// are deterministic; the model call itself lives behind a client port.
package suggestion

import (
	"fmt"
	"strings"

	"github.com/taskfolio/taskfolio/internal/domain"
	"github.com/taskfolio/taskfolio/internal/domain/todolist"
)

const (
	// MinCount and MaxCount bound how many suggestions one request may ask for.
	MinCount = 1
	MaxCount = 10

	// DefaultCount is used when the caller does not ask for a count.
	DefaultCount = 5
)

// ValidateCount checks the requested suggestion count. Zero selects
// DefaultCount.
func ValidateCount(count int) (int, error) {
	if count == 0 {
		return DefaultCount, nil
	}
	if count < MinCount || count > MaxCount {
		return 0, domain.NewValidationError("count",
			fmt.Sprintf("must be %d-%d, got %d", MinCount, MaxCount, count))
	}
	return count, nil
}

// BuildPrompt renders the completion prompt for a list. Existing item
// titles are included so the model avoids proposing duplicates.
func BuildPrompt(listTitle string, existing []string, count int) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Suggest %d new to-do items for a list titled %q.\n", count, listTitle)
	if len(existing) > 0 {
		b.WriteString("The list already contains:\n")
		for _, title := range existing {
			fmt.Fprintf(&b, "- %s\n", title)
		}
	}
	b.WriteString("Reply with one item title per line, no numbering, no commentary.")
	return b.String()
}

// FilterCandidates normalizes raw model output into at most max usable item
// titles. It trims each candidate, drops empties, anything that fails Title
// validation, case-insensitive duplicates of existing titles, and
// case-insensitive duplicates within the candidate set itself. Input order
// is preserved.
func FilterCandidates(candidates, existing []string, max int) []string {
	seen := make(map[string]bool, len(existing)+len(candidates))
	for _, title := range existing {
		seen[strings.ToLower(strings.TrimSpace(title))] = true
	}

	out := make([]string, 0, max)
	for _, raw := range candidates {
		title, err := todolist.NewTitle(raw)
		if err != nil {
			continue
		}
		key := strings.ToLower(title.String())
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, title.String())
		if len(out) == max {
			break
		}
	}
	return out
}
