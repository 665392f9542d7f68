package domain

import (
	"strconv"
	"strings"
)

const (
	DefaultWindowDays = 30
	MaxWindowDays     = 366
)

// ParseWindowSelector turns a range selector ("1", "7", "30", "14", "90d")
// into a number of days. Empty, malformed, negative or oversized selectors
// resolve to DefaultWindowDays and ok is false.
func ParseWindowSelector(selector string) (days int, ok bool) {
	s := strings.TrimSpace(selector)
	s = strings.TrimSuffix(s, "d")
	if s == "" {
		return DefaultWindowDays, false
	}

	n, err := strconv.Atoi(s)
	if err != nil || n < 0 || n > MaxWindowDays {
		return DefaultWindowDays, false
	}
	return n, true
}
