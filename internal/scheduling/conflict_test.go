package scheduling

import (
	"testing"

	"tablebook/internal/domain/models"
)

func booked(start, end string) models.Booking {
	return models.Booking{StartTime: start, EndTime: end, Status: models.StatusConfirmed}
}

func TestHasConflictOverlap(t *testing.T) {
	existing := []models.Booking{booked("18:00", "20:30")}

	cases := []struct {
		name       string
		start, end string
		want       bool
	}{
		{"identical window", "18:00", "20:30", true},
		{"contained", "18:30", "19:00", true},
		{"overlaps head", "17:00", "18:30", true},
		{"overlaps tail", "20:00", "22:30", true},
		{"one minute overlap", "20:29", "22:59", true},
		{"touching end", "20:30", "23:00", false},
		{"touching start", "15:30", "18:00", false},
		{"well before", "11:00", "13:30", false},
	}
	for _, c := range cases {
		if got := HasConflict(c.start, c.end, existing); got != c.want {
			t.Errorf("%s: HasConflict(%s,%s) = %v, want %v", c.name, c.start, c.end, got, c.want)
		}
	}
}

func TestHasConflictEmpty(t *testing.T) {
	if HasConflict("18:00", "20:30", nil) {
		t.Fatalf("no bookings should mean no conflict")
	}
}

func TestHasConflictMultipleBookings(t *testing.T) {
	existing := []models.Booking{
		booked("11:00", "13:30"),
		booked("16:00", "18:30"),
	}
	if !HasConflict("13:00", "15:30", existing) {
		t.Errorf("window crossing first booking should conflict")
	}
	if HasConflict("13:30", "16:00", existing) {
		t.Errorf("window exactly between bookings should not conflict")
	}
}

func TestHasConflictBadTimesFailClosed(t *testing.T) {
	if !HasConflict("not-a-time", "20:30", nil) {
		t.Errorf("unparsable candidate start should count as conflicting")
	}
	if !HasConflict("18:00", "20:30", []models.Booking{booked("junk", "20:00")}) {
		t.Errorf("unparsable existing booking should count as conflicting")
	}
}
