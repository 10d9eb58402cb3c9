package scheduling

import (
	"fmt"
	"strconv"
	"strings"

	"tablebook/internal/domain"
)

// ReservationMinutes is the fixed length of every reservation window.
const ReservationMinutes = 150

// ParseMinutes converts an HH:MM wall-clock string to minutes since midnight.
func ParseMinutes(hhmm string) (int, error) {
	s := strings.TrimSpace(hhmm)
	parts := strings.SplitN(s, ":", 2)
	if len(parts) != 2 {
		return 0, domain.ValidationError{Field: "time", Msg: fmt.Sprintf("invalid time %q", hhmm)}
	}
	h, err := strconv.Atoi(parts[0])
	if err != nil || h < 0 || h > 23 {
		return 0, domain.ValidationError{Field: "time", Msg: fmt.Sprintf("invalid hour in %q", hhmm)}
	}
	m, err := strconv.Atoi(parts[1])
	if err != nil || m < 0 || m > 59 {
		return 0, domain.ValidationError{Field: "time", Msg: fmt.Sprintf("invalid minute in %q", hhmm)}
	}
	return h*60 + m, nil
}

// FormatMinutes renders minutes since midnight as zero-padded HH:MM.
func FormatMinutes(mins int) string {
	return fmt.Sprintf("%02d:%02d", mins/60, mins%60)
}

// WindowEnd computes the end time of a reservation starting at the given
// HH:MM time. The window never crosses midnight with the canonical slots
// (latest start 19:30 ends 22:00).
func WindowEnd(start string) (string, error) {
	mins, err := ParseMinutes(start)
	if err != nil {
		return "", err
	}
	return FormatMinutes(mins + ReservationMinutes), nil
}
