// Package schedule holds the pure scheduling core: HH:MM clock arithmetic
// and slot enumeration. Nothing here touches the database.
package schedule

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// ErrBadClock is returned when a clock string is not valid HH:MM.
var ErrBadClock = errors.New("time must be in HH:MM format")

var clockPattern = regexp.MustCompile(`^([0-1]?[0-9]|2[0-3]):[0-5][0-9]$`)

// ToMinutes parses an HH:MM clock string into a minute offset from midnight
// (0..1439).
func ToMinutes(clock string) (int, error) {
	if !clockPattern.MatchString(clock) {
		return 0, fmt.Errorf("%q: %w", clock, ErrBadClock)
	}
	parts := strings.SplitN(clock, ":", 2)
	h, _ := strconv.Atoi(parts[0])
	m, _ := strconv.Atoi(parts[1])
	return h*60 + m, nil
}

// FromMinutes formats a minute offset as a zero-padded HH:MM string.
func FromMinutes(n int) string {
	return fmt.Sprintf("%02d:%02d", n/60, n%60)
}

// IsValidRange reports whether both clock strings parse and end is strictly
// after start.
func IsValidRange(start, end string) bool {
	s, err := ToMinutes(start)
	if err != nil {
		return false
	}
	e, err := ToMinutes(end)
	if err != nil {
		return false
	}
	return e > s
}
