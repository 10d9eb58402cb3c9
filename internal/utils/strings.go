package utils

import "strings"

// NormalizeSpace trims and collapses repeated whitespace into a single space.
// Customer-entered names arrive with stray padding often enough to matter.
func NormalizeSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
