package query

import (
	"fmt"
	"strings"
)

// Quote wraps s so it lexes as a single token. Values without whitespace or
// quote characters are returned unchanged. There is no escape syntax, so a
// value holding both quote characters cannot be quoted.
func Quote(s string) (string, error) {
	if s != "" && !strings.ContainsAny(s, " \t\r\n'\"") {
		return s, nil
	}
	switch {
	case !strings.Contains(s, "'"):
		return "'" + s + "'", nil
	case !strings.Contains(s, `"`):
		return `"` + s + `"`, nil
	}
	return "", fmt.Errorf("cannot quote %q: it contains both quote characters", s)
}

// JoinArgs rebuilds a query line from arguments already split by a shell.
func JoinArgs(args []string) (string, error) {
	parts := make([]string, len(args))
	for i, arg := range args {
		q, err := Quote(arg)
		if err != nil {
			return "", err
		}
		parts[i] = q
	}
	return strings.Join(parts, " "), nil
}
