package services

import (
	"database/sql"

	intconfig "tablebook/internal/config"
	"tablebook/internal/domain"
	"tablebook/internal/domain/models"
	"tablebook/internal/repositories"
	"tablebook/internal/scheduling"
	"tablebook/internal/utils"
)

// SlotAvailability is one row of the availability grid the booking UI renders.
// TableCapacity is the capacity of the first-fit table when available.
type SlotAvailability struct {
	Time          string `json:"time"`
	Available     bool   `json:"available"`
	TableCapacity int    `json:"table_capacity,omitempty"`
}

// AvailabilityService composes the slot grid, the table inventory and the
// day's confirmed bookings into a bookable-slot report. Read-only: it never
// reserves or locks anything, so a race against a concurrent commit is
// resolved later by the commit's own transactional re-check.
type AvailabilityService struct {
	TableRepo   repositories.TableRepository
	BookingRepo repositories.BookingRepository
	DB          *sql.DB

	// Test hooks; production wiring falls back to the repositories.
	FetchTables   func(restaurantID int64) ([]models.Table, error)
	FetchBookings func(restaurantID int64, date string) ([]models.Booking, error)
}

func (s AvailabilityService) db() *sql.DB {
	if s.DB != nil {
		return s.DB
	}
	return intconfig.DB
}

func (s AvailabilityService) tables(restaurantID int64) ([]models.Table, error) {
	if s.FetchTables != nil {
		return s.FetchTables(restaurantID)
	}
	repo := s.TableRepo
	if repo.DB == nil {
		repo = repositories.TableRepository{DB: s.db()}
	}
	return repo.ListByRestaurant(restaurantID)
}

func (s AvailabilityService) bookings(restaurantID int64, date string) ([]models.Booking, error) {
	if s.FetchBookings != nil {
		return s.FetchBookings(restaurantID, date)
	}
	repo := s.BookingRepo
	if repo.DB == nil {
		repo = repositories.BookingRepository{DB: s.db()}
	}
	return repo.ListConfirmedForDate(restaurantID, date)
}

// AvailableSlots reports, for every canonical slot on the date, whether any
// table seating partySize is free for the full 150-minute window. Tables are
// tried smallest-first, so the reported capacity is the best fit for that
// slot. A party no table can seat yields all-unavailable, not an error.
func (s AvailabilityService) AvailableSlots(restaurantID int64, date string, partySize int) ([]SlotAvailability, error) {
	if restaurantID <= 0 {
		return nil, domain.ValidationError{Field: "restaurant_id", Msg: "required"}
	}
	if partySize <= 0 {
		return nil, domain.ValidationError{Field: "party_size", Msg: "must be positive"}
	}
	if _, err := utils.ParseDate(date); err != nil {
		return nil, domain.ValidationError{Field: "booking_date", Msg: "expected YYYY-MM-DD", Err: err}
	}

	inventory, err := s.tables(restaurantID)
	if err != nil {
		return nil, domain.InternalError{Msg: "failed to load tables", Err: err}
	}
	booked, err := s.bookings(restaurantID, date)
	if err != nil {
		return nil, domain.InternalError{Msg: "failed to load bookings", Err: err}
	}

	suitable := scheduling.SuitableTables(partySize, inventory)

	byTable := make(map[int64][]models.Booking, len(suitable))
	for _, b := range booked {
		byTable[b.TableID] = append(byTable[b.TableID], b)
	}

	slots := scheduling.TimeSlots()
	out := make([]SlotAvailability, 0, len(slots))
	for _, slot := range slots {
		end, err := scheduling.WindowEnd(slot)
		if err != nil {
			return nil, domain.InternalError{Msg: "bad canonical slot", Err: err}
		}
		entry := SlotAvailability{Time: slot}
		for _, table := range suitable {
			if !scheduling.HasConflict(slot, end, byTable[table.ID]) {
				entry.Available = true
				entry.TableCapacity = table.Capacity
				break
			}
		}
		out = append(out, entry)
	}
	return out, nil
}
