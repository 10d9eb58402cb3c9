package scheduling

// Canonical slot grid: first seating 11:00, last seating 19:30, every 30
// minutes. The grid is the same for every date and does not consult opening
// hours configuration.
const (
	slotFirstMinutes = 11 * 60
	slotLastMinutes  = 19*60 + 30
	slotStepMinutes  = 30
)

// TimeSlots returns the ordered list of offerable start times as HH:MM
// strings. Always 18 entries, 11:00 through 19:30.
func TimeSlots() []string {
	slots := make([]string, 0, (slotLastMinutes-slotFirstMinutes)/slotStepMinutes+1)
	for m := slotFirstMinutes; m <= slotLastMinutes; m += slotStepMinutes {
		slots = append(slots, FormatMinutes(m))
	}
	return slots
}

// IsBookableSlot reports whether the given HH:MM start time sits on the
// canonical grid. Booking commits reject off-grid starts.
func IsBookableSlot(start string) bool {
	mins, err := ParseMinutes(start)
	if err != nil {
		return false
	}
	if mins < slotFirstMinutes || mins > slotLastMinutes {
		return false
	}
	return (mins-slotFirstMinutes)%slotStepMinutes == 0
}
