// Package strings holds text helpers shared by the formatters and the event recorder.
package strings

import (
	"strings"
)

const (
	// DefaultCellMaxLen bounds free text in table cells.
	DefaultCellMaxLen = 60

	// MaxEventMessageLen is the longest note the events API accepts.
	MaxEventMessageLen = 1024

	// minTruncateLen leaves room for one rune and the ellipsis.
	minTruncateLen = 4

	ellipsis = "..."
)

// SingleLine collapses all whitespace runs in s into single spaces and
// shortens the result to at most maxLen runes, ending in "..." when cut.
// maxLen values below 4 are raised to 4.
func SingleLine(s string, maxLen int) string {
	if maxLen < minTruncateLen {
		maxLen = minTruncateLen
	}

	s = strings.Join(strings.Fields(s), " ")

	runes := []rune(s)
	if len(runes) <= maxLen {
		return s
	}
	return string(runes[:maxLen-len(ellipsis)]) + ellipsis
}
