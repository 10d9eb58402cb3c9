package services

import (
	"testing"

	"tablebook/internal/domain"
	"tablebook/internal/domain/models"
)

// Dining room used across availability tests: two 2-tops, two 4-tops, one
// 6-top, fetched in name order like the table repository returns them.
func diningRoom() []models.Table {
	return []models.Table{
		{ID: 1, RestaurantID: 1, Name: "T1", Capacity: 2, Section: "window"},
		{ID: 2, RestaurantID: 1, Name: "T2", Capacity: 2, Section: "window"},
		{ID: 3, RestaurantID: 1, Name: "T3", Capacity: 4, Section: "main"},
		{ID: 4, RestaurantID: 1, Name: "T4", Capacity: 4, Section: "main"},
		{ID: 5, RestaurantID: 1, Name: "T5", Capacity: 6, Section: "back"},
	}
}

func availabilityWith(tables []models.Table, bookings []models.Booking) AvailabilityService {
	return AvailabilityService{
		FetchTables: func(int64) ([]models.Table, error) {
			return tables, nil
		},
		FetchBookings: func(int64, string) ([]models.Booking, error) {
			return bookings, nil
		},
	}
}

func slotAt(t *testing.T, slots []SlotAvailability, at string) SlotAvailability {
	t.Helper()
	for _, s := range slots {
		if s.Time == at {
			return s
		}
	}
	t.Fatalf("slot %s not in output", at)
	return SlotAvailability{}
}

func confirmedAt(tableID int64, start, end string) models.Booking {
	return models.Booking{
		TableID:     tableID,
		BookingDate: "2025-06-01",
		StartTime:   start,
		EndTime:     end,
		Status:      models.StatusConfirmed,
	}
}

func TestAvailableSlotsEmptyDay(t *testing.T) {
	svc := availabilityWith(diningRoom(), nil)
	slots, err := svc.AvailableSlots(1, "2025-06-01", 2)
	if err != nil {
		t.Fatalf("availability error: %v", err)
	}
	if len(slots) != 18 {
		t.Fatalf("expected 18 slots, got %d", len(slots))
	}
	for _, s := range slots {
		if !s.Available {
			t.Errorf("slot %s should be free on an empty day", s.Time)
		}
		if s.TableCapacity != 2 {
			t.Errorf("slot %s should report the best-fit 2-top, got capacity %d", s.Time, s.TableCapacity)
		}
	}
}

// One 2-top booked 18:00-20:30: the second 2-top keeps the slot available at
// capacity 2.
func TestAvailableSlotsSecondTwoTopCoversSlot(t *testing.T) {
	svc := availabilityWith(diningRoom(), []models.Booking{confirmedAt(1, "18:00", "20:30")})
	slots, err := svc.AvailableSlots(1, "2025-06-01", 2)
	if err != nil {
		t.Fatalf("availability error: %v", err)
	}
	got := slotAt(t, slots, "18:00")
	if !got.Available {
		t.Fatalf("18:00 should still be available via the second 2-top")
	}
	if got.TableCapacity != 2 {
		t.Fatalf("expected capacity 2, got %d", got.TableCapacity)
	}
}

// Both 2-tops booked: the engine falls through to the free 4-top, so the
// slot stays available at capacity 4 — for a party of 2 and a party of 1
// alike.
func TestAvailableSlotsFallsThroughToLargerTable(t *testing.T) {
	booked := []models.Booking{
		confirmedAt(1, "18:00", "20:30"),
		confirmedAt(2, "18:00", "20:30"),
	}
	for _, partySize := range []int{1, 2} {
		svc := availabilityWith(diningRoom(), booked)
		slots, err := svc.AvailableSlots(1, "2025-06-01", partySize)
		if err != nil {
			t.Fatalf("availability error: %v", err)
		}
		got := slotAt(t, slots, "18:00")
		if !got.Available {
			t.Fatalf("party of %d: free 4-top should keep 18:00 available", partySize)
		}
		if got.TableCapacity != 4 {
			t.Fatalf("party of %d: expected capacity 4, got %d", partySize, got.TableCapacity)
		}
	}
}

func TestAvailableSlotsBlockedWindow(t *testing.T) {
	// Only one table at all: an 18:00-20:30 booking shadows every slot whose
	// 150-minute window crosses it.
	oneTable := []models.Table{{ID: 1, RestaurantID: 1, Name: "T1", Capacity: 2}}
	svc := availabilityWith(oneTable, []models.Booking{confirmedAt(1, "18:00", "20:30")})
	slots, err := svc.AvailableSlots(1, "2025-06-01", 2)
	if err != nil {
		t.Fatalf("availability error: %v", err)
	}

	// 15:30 ends exactly 18:00; half-open windows may touch.
	if !slotAt(t, slots, "15:30").Available {
		t.Errorf("15:30 window ends at booking start, should be available")
	}
	if slotAt(t, slots, "16:00").Available {
		t.Errorf("16:00 window overlaps the booking, should be blocked")
	}
	if slotAt(t, slots, "19:30").Available {
		t.Errorf("19:30 starts inside the booking, should be blocked")
	}
}

func TestAvailableSlotsUnsatisfiablePartySize(t *testing.T) {
	svc := availabilityWith(diningRoom(), nil)
	slots, err := svc.AvailableSlots(1, "2025-06-01", 10)
	if err != nil {
		t.Fatalf("oversized party should not be an error, got %v", err)
	}
	if len(slots) != 18 {
		t.Fatalf("expected full grid, got %d slots", len(slots))
	}
	for _, s := range slots {
		if s.Available {
			t.Errorf("slot %s should be unavailable for a party of 10", s.Time)
		}
		if s.TableCapacity != 0 {
			t.Errorf("slot %s should not report a capacity, got %d", s.Time, s.TableCapacity)
		}
	}
}

func TestAvailableSlotsValidation(t *testing.T) {
	svc := availabilityWith(diningRoom(), nil)
	if _, err := svc.AvailableSlots(0, "2025-06-01", 2); !domain.IsValidation(err) {
		t.Errorf("missing restaurant id should be a validation error, got %v", err)
	}
	if _, err := svc.AvailableSlots(1, "01-06-2025", 2); !domain.IsValidation(err) {
		t.Errorf("bad date format should be a validation error, got %v", err)
	}
	if _, err := svc.AvailableSlots(1, "2025-06-01", 0); !domain.IsValidation(err) {
		t.Errorf("zero party size should be a validation error, got %v", err)
	}
}

// Cancelled bookings are inert; only confirmed ones block slots. The fetch
// already filters to confirmed, so this documents the contract end to end.
func TestAvailableSlotsIgnoresNonConfirmedFetch(t *testing.T) {
	oneTable := []models.Table{{ID: 1, RestaurantID: 1, Name: "T1", Capacity: 2}}
	svc := availabilityWith(oneTable, nil)
	slots, err := svc.AvailableSlots(1, "2025-06-01", 2)
	if err != nil {
		t.Fatalf("availability error: %v", err)
	}
	if !slotAt(t, slots, "18:00").Available {
		t.Fatalf("with no confirmed bookings every slot is free")
	}
}
