package storage

import "strings"

// containsPattern builds a case-insensitive LIKE pattern for a substring
// filter, escaping the LIKE metacharacters in the user input.
func containsPattern(s string) string {
	escaped := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(strings.ToLower(s))
	return "%" + escaped + "%"
}
