package services

import (
	"context"
	"fmt"
	"testing"

	"tablebook/internal/domain"
	"tablebook/internal/domain/models"
	"tablebook/internal/notify"
	"tablebook/internal/scheduling"
)

// fakeStore mimics the booking repository's transactional insert: walk the
// candidates in order, first table with no confirmed overlap takes the row.
type fakeStore struct {
	tables   []models.Table
	bookings []models.Booking
	nextID   int64
}

func (f *fakeStore) insert(b models.Booking, candidates []models.Table) (models.Booking, error) {
	for _, t := range candidates {
		var onTable []models.Booking
		for _, existing := range f.bookings {
			if existing.TableID == t.ID && existing.BookingDate == b.BookingDate && existing.Status == models.StatusConfirmed {
				onTable = append(onTable, existing)
			}
		}
		if !scheduling.HasConflict(b.StartTime, b.EndTime, onTable) {
			f.nextID++
			b.ID = f.nextID
			b.TableID = t.ID
			b.Status = models.StatusConfirmed
			f.bookings = append(f.bookings, b)
			return b, nil
		}
	}
	return models.Booking{}, domain.ConflictError{Resource: "booking", Msg: "no suitable table free for this time"}
}

func serviceWith(store *fakeStore) BookingService {
	return BookingService{
		FetchRestaurant: func(id int64) (models.Restaurant, error) {
			return models.Restaurant{ID: id, Name: "Trattoria", IsActive: true}, nil
		},
		FetchTables: func(int64) ([]models.Table, error) {
			return store.tables, nil
		},
		Insert: store.insert,
		NotifyCRM: func(context.Context, notify.BookingSummary) error {
			return nil
		},
	}
}

func request(start string, partySize int) models.BookingRequest {
	return models.BookingRequest{
		RestaurantID:  1,
		BookingDate:   "2025-06-01",
		StartTime:     start,
		PartySize:     partySize,
		CustomerName:  "Dana",
		CustomerEmail: "dana@example.com",
	}
}

func TestCreatePicksBestFit(t *testing.T) {
	store := &fakeStore{tables: diningRoom()}
	svc := serviceWith(store)

	b, err := svc.Create(request("18:00", 3))
	if err != nil {
		t.Fatalf("create error: %v", err)
	}
	if b.TableID != 3 {
		t.Fatalf("party of 3 should land on the first 4-top, got table %d", b.TableID)
	}
	if b.EndTime != "20:30" {
		t.Fatalf("window should run 150 minutes, got end %s", b.EndTime)
	}
	if b.Status != models.StatusConfirmed {
		t.Fatalf("expected confirmed, got %s", b.Status)
	}
	if b.Reference == "" {
		t.Fatalf("expected a generated reference")
	}
}

func TestCreateNoSuitableTable(t *testing.T) {
	store := &fakeStore{tables: diningRoom()}
	svc := serviceWith(store)

	_, err := svc.Create(request("18:00", 10))
	if !domain.IsNoSuitableTable(err) {
		t.Fatalf("expected NoSuitableTableError, got %v", err)
	}
	if len(store.bookings) != 0 {
		t.Fatalf("nothing should be persisted on allocation failure")
	}
}

func TestCreateValidation(t *testing.T) {
	store := &fakeStore{tables: diningRoom()}
	svc := serviceWith(store)

	cases := []struct {
		name string
		req  models.BookingRequest
	}{
		{"off-grid time", request("10:00", 2)},
		{"quarter-hour time", request("18:15", 2)},
		{"zero party", request("18:00", 0)},
		{"bad date", func() models.BookingRequest {
			r := request("18:00", 2)
			r.BookingDate = "June 1st"
			return r
		}()},
		{"missing name", func() models.BookingRequest {
			r := request("18:00", 2)
			r.CustomerName = "  "
			return r
		}()},
		{"missing email", func() models.BookingRequest {
			r := request("18:00", 2)
			r.CustomerEmail = ""
			return r
		}()},
		{"missing restaurant", func() models.BookingRequest {
			r := request("18:00", 2)
			r.RestaurantID = 0
			return r
		}()},
	}
	for _, c := range cases {
		if _, err := svc.Create(c.req); !domain.IsValidation(err) {
			t.Errorf("%s: expected validation error, got %v", c.name, err)
		}
	}
}

func TestCreateInactiveRestaurant(t *testing.T) {
	store := &fakeStore{tables: diningRoom()}
	svc := serviceWith(store)
	svc.FetchRestaurant = func(id int64) (models.Restaurant, error) {
		return models.Restaurant{ID: id, Name: "Closed", IsActive: false}, nil
	}

	if _, err := svc.Create(request("18:00", 2)); !domain.IsValidation(err) {
		t.Fatalf("inactive restaurant should reject bookings, got %v", err)
	}
}

// Commits fill tables smallest-first and stop cleanly when the room is full:
// no pair of confirmed bookings on one table may ever overlap.
func TestCreateNeverDoubleBooks(t *testing.T) {
	store := &fakeStore{tables: diningRoom()}
	svc := serviceWith(store)

	succeeded := 0
	for i := 0; i < 8; i++ {
		_, err := svc.Create(request("18:00", 2))
		if err == nil {
			succeeded++
			continue
		}
		if !domain.IsConflict(err) {
			t.Fatalf("attempt %d: expected ConflictError once full, got %v", i, err)
		}
	}
	if succeeded != 5 {
		t.Fatalf("five tables seat a party of 2, expected 5 commits, got %d", succeeded)
	}

	for i, a := range store.bookings {
		for _, b := range store.bookings[i+1:] {
			if a.TableID != b.TableID || a.BookingDate != b.BookingDate {
				continue
			}
			if scheduling.HasConflict(a.StartTime, a.EndTime, []models.Booking{b}) {
				t.Fatalf("bookings %d and %d overlap on table %d", a.ID, b.ID, a.TableID)
			}
		}
	}
}

// A slot the availability engine reports as free must commit successfully
// when no concurrent writer interferes.
func TestAvailabilityCommitAgreement(t *testing.T) {
	store := &fakeStore{tables: diningRoom()}
	// Occupy one 2-top up front.
	if _, err := serviceWith(store).Create(request("18:00", 2)); err != nil {
		t.Fatalf("seed booking failed: %v", err)
	}

	avail := AvailabilityService{
		FetchTables: func(int64) ([]models.Table, error) { return store.tables, nil },
		FetchBookings: func(int64, string) ([]models.Booking, error) {
			var confirmed []models.Booking
			for _, b := range store.bookings {
				if b.Status == models.StatusConfirmed {
					confirmed = append(confirmed, b)
				}
			}
			return confirmed, nil
		},
	}

	slots, err := avail.AvailableSlots(1, "2025-06-01", 2)
	if err != nil {
		t.Fatalf("availability error: %v", err)
	}
	for _, s := range slots {
		if !s.Available {
			continue
		}
		if _, err := serviceWith(store).Create(request(s.Time, 2)); err != nil {
			t.Fatalf("slot %s reported available but commit failed: %v", s.Time, err)
		}
		break
	}
}

// Touching windows commit back to back on the same single table.
func TestCreateAdjacentWindows(t *testing.T) {
	store := &fakeStore{tables: []models.Table{{ID: 1, RestaurantID: 1, Name: "T1", Capacity: 2}}}
	svc := serviceWith(store)

	first, err := svc.Create(request("13:00", 2))
	if err != nil {
		t.Fatalf("first booking failed: %v", err)
	}
	if first.EndTime != "15:30" {
		t.Fatalf("unexpected end time %s", first.EndTime)
	}

	// 15:30 starts the instant the first window ends.
	if _, err := svc.Create(request("15:30", 2)); err != nil {
		t.Fatalf("adjacent booking should succeed: %v", err)
	}

	// 14:00 lands inside the first window.
	if _, err := svc.Create(request("14:00", 2)); !domain.IsConflict(err) {
		t.Fatalf("overlapping booking should conflict, got %v", err)
	}
}

func TestCreateNotifiesCRM(t *testing.T) {
	store := &fakeStore{tables: diningRoom()}
	svc := serviceWith(store)

	notified := make(chan notify.BookingSummary, 1)
	svc.NotifyCRM = func(_ context.Context, s notify.BookingSummary) error {
		notified <- s
		return nil
	}

	b, err := svc.Create(request("18:00", 2))
	if err != nil {
		t.Fatalf("create error: %v", err)
	}
	got := <-notified
	if got.BookingID != b.ID || got.StartTime != "18:00" || got.PartySize != 2 {
		t.Fatalf("CRM payload mismatch: %+v", got)
	}
}

// CRM failures are logged, never surfaced: the booking already succeeded.
func TestCreateSurvivesCRMFailure(t *testing.T) {
	store := &fakeStore{tables: diningRoom()}
	svc := serviceWith(store)

	called := make(chan struct{}, 1)
	svc.NotifyCRM = func(context.Context, notify.BookingSummary) error {
		called <- struct{}{}
		return fmt.Errorf("crm down")
	}

	b, err := svc.Create(request("18:00", 2))
	if err != nil {
		t.Fatalf("create should not fail on notify error: %v", err)
	}
	<-called
	if b.ID == 0 {
		t.Fatalf("booking should be persisted despite CRM failure")
	}
}
