package ui

import "fmt"

// Status marks prefixed to one-line messages.
const (
	SymbolSuccess = "✓"
	SymbolError   = "✗"
)

// Successf formats a confirmation line, e.g. "✓ Loaded 10 wines".
func Successf(format string, args ...any) string {
	return SymbolSuccess + " " + fmt.Sprintf(format, args...)
}

// Error prefixes msg with the error mark.
func Error(msg string) string {
	return SymbolError + " " + msg
}

// Hint renders secondary text such as separators and suggestions.
func Hint(msg string) string {
	return Muted.Render(msg)
}

// Count pairs n with the matching noun form, e.g. "1 review" or "3 reviews".
func Count(n int, singular, plural string) string {
	noun := plural
	if n == 1 {
		noun = singular
	}
	return fmt.Sprintf("%d %s", n, noun)
}
