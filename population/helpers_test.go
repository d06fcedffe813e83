package population

import (
	"fmt"
	"strings"
)

// parseDisplayName parses "Name (23)".
func parseDisplayName(s string, name *string, age *int) (int, error) {
	open := strings.LastIndex(s, " (")
	if open < 0 {
		return 0, fmt.Errorf("no age suffix in %q", s)
	}
	*name = s[:open]
	n, err := fmt.Sscanf(s[open:], " (%d)", age)
	return n + 1, err
}
