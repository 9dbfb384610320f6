package utils

import "strings"

func Ptr[T any](v T) *T {
	return &v
}

// Returns nil on an empty or all whitespace string
func StringOrNil(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}

// IntOrNil treats zero as absent, matching how the entry forms submit
// optional numeric fields such as jersey numbers.
func IntOrNil(v int) *int {
	if v == 0 {
		return nil
	}
	return &v
}
