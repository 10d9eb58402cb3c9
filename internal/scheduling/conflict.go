package scheduling

import "tablebook/internal/domain/models"

// Overlaps reports whether two half-open [start,end) windows, given in
// minutes since midnight, intersect. Touching endpoints do not overlap: a
// booking ending 18:00 coexists with one starting 18:00.
func Overlaps(s1, e1, s2, e2 int) bool {
	return s1 < e2 && e1 > s2
}

// HasConflict reports whether the candidate [start,end) window collides with
// any of the given bookings. Callers pass bookings already filtered to the
// same table and confirmed status; no filtering happens here. Bookings with
// unparsable times are treated as conflicting rather than silently free.
func HasConflict(start, end string, existing []models.Booking) bool {
	s1, err := ParseMinutes(start)
	if err != nil {
		return true
	}
	e1, err := ParseMinutes(end)
	if err != nil {
		return true
	}
	for _, b := range existing {
		s2, err := ParseMinutes(b.StartTime)
		if err != nil {
			return true
		}
		e2, err := ParseMinutes(b.EndTime)
		if err != nil {
			return true
		}
		if Overlaps(s1, e1, s2, e2) {
			return true
		}
	}
	return false
}
