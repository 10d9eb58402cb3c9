package services

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	intconfig "tablebook/internal/config"
	"tablebook/internal/domain"
	"tablebook/internal/domain/models"
	"tablebook/internal/notify"
	"tablebook/internal/repositories"
	"tablebook/internal/scheduling"
	"tablebook/internal/utils"
)

// BookingService owns the commit path: allocate the best-fit table, compute
// the window, persist atomically, then notify the CRM best-effort.
type BookingService struct {
	TableRepo      repositories.TableRepository
	BookingRepo    repositories.BookingRepository
	RestaurantRepo repositories.RestaurantRepository
	CRM            *notify.CRMClient
	DB             *sql.DB
	RequestID      string

	// Test hooks; production wiring falls back to the repositories.
	FetchRestaurant func(id int64) (models.Restaurant, error)
	FetchTables     func(restaurantID int64) ([]models.Table, error)
	Insert          func(b models.Booking, candidates []models.Table) (models.Booking, error)
	NotifyCRM       func(ctx context.Context, summary notify.BookingSummary) error
}

func (s BookingService) db() *sql.DB {
	if s.DB != nil {
		return s.DB
	}
	return intconfig.DB
}

func (s BookingService) restaurant(id int64) (models.Restaurant, error) {
	if s.FetchRestaurant != nil {
		return s.FetchRestaurant(id)
	}
	repo := s.RestaurantRepo
	if repo.DB == nil {
		repo = repositories.RestaurantRepository{DB: s.db()}
	}
	return repo.GetByID(id)
}

func (s BookingService) tables(restaurantID int64) ([]models.Table, error) {
	if s.FetchTables != nil {
		return s.FetchTables(restaurantID)
	}
	repo := s.TableRepo
	if repo.DB == nil {
		repo = repositories.TableRepository{DB: s.db()}
	}
	return repo.ListByRestaurant(restaurantID)
}

func (s BookingService) insert(b models.Booking, candidates []models.Table) (models.Booking, error) {
	if s.Insert != nil {
		return s.Insert(b, candidates)
	}
	repo := s.BookingRepo
	if repo.DB == nil {
		repo = repositories.BookingRepository{DB: s.db()}
	}
	return repo.InsertConfirmed(b, candidates)
}

func (s BookingService) bookings() repositories.BookingRepository {
	repo := s.BookingRepo
	if repo.DB == nil {
		repo = repositories.BookingRepository{DB: s.db()}
	}
	return repo
}

func validateRequest(req models.BookingRequest) error {
	if req.RestaurantID <= 0 {
		return domain.ValidationError{Field: "restaurant_id", Msg: "required"}
	}
	if req.PartySize <= 0 {
		return domain.ValidationError{Field: "party_size", Msg: "must be positive"}
	}
	if _, err := utils.ParseDate(req.BookingDate); err != nil {
		return domain.ValidationError{Field: "booking_date", Msg: "expected YYYY-MM-DD", Err: err}
	}
	if !scheduling.IsBookableSlot(req.StartTime) {
		return domain.ValidationError{Field: "start_time", Msg: fmt.Sprintf("%q is not an offered seating time", req.StartTime)}
	}
	if strings.TrimSpace(req.CustomerName) == "" {
		return domain.ValidationError{Field: "customer_name", Msg: "required"}
	}
	if strings.TrimSpace(req.CustomerEmail) == "" {
		return domain.ValidationError{Field: "customer_email", Msg: "required"}
	}
	return nil
}

// Create commits a reservation. The table is re-derived from current
// inventory here, not taken from a prior availability response. The insert
// transaction walks the suitable tables in best-fit order and re-checks
// overlap under row locks, so a slot availability just reported stays
// bookable absent concurrent writers, and losing a race surfaces as a
// ConflictError rather than a double booking.
func (s BookingService) Create(req models.BookingRequest) (models.Booking, error) {
	if err := validateRequest(req); err != nil {
		return models.Booking{}, err
	}

	rest, err := s.restaurant(req.RestaurantID)
	if err != nil {
		return models.Booking{}, err
	}
	if !rest.IsActive {
		return models.Booking{}, domain.ValidationError{Field: "restaurant_id", Msg: "restaurant is not accepting bookings"}
	}

	inventory, err := s.tables(req.RestaurantID)
	if err != nil {
		return models.Booking{}, domain.InternalError{Msg: "failed to load tables", Err: err}
	}

	table, ok := scheduling.SelectTable(req.PartySize, inventory)
	if !ok {
		return models.Booking{}, domain.NoSuitableTableError{PartySize: req.PartySize}
	}

	end, err := scheduling.WindowEnd(req.StartTime)
	if err != nil {
		return models.Booking{}, err
	}

	candidates := scheduling.SuitableTables(req.PartySize, inventory)
	saved, err := s.insert(models.Booking{
		Reference:       uuid.NewString(),
		RestaurantID:    req.RestaurantID,
		TableID:         table.ID,
		BookingDate:     strings.TrimSpace(req.BookingDate),
		StartTime:       req.StartTime,
		EndTime:         end,
		PartySize:       req.PartySize,
		CustomerName:    utils.NormalizeSpace(req.CustomerName),
		CustomerEmail:   strings.TrimSpace(req.CustomerEmail),
		CustomerPhone:   strings.TrimSpace(req.CustomerPhone),
		SpecialRequests: strings.TrimSpace(req.SpecialRequests),
	}, candidates)
	if err != nil {
		return models.Booking{}, err
	}

	utils.LogEvent(s.RequestID, "booking", "create",
		fmt.Sprintf("booking_id=%d table_id=%d date=%s start=%s party=%d",
			saved.ID, saved.TableID, saved.BookingDate, saved.StartTime, saved.PartySize))

	s.notifyAsync(saved)
	return saved, nil
}

// notifyAsync pushes the booking to the CRM without blocking or failing the
// commit. The booking already succeeded; delivery problems are warnings.
func (s BookingService) notifyAsync(b models.Booking) {
	send := s.NotifyCRM
	if send == nil {
		if !s.CRM.Enabled() {
			return
		}
		send = s.CRM.Notify
	}
	requestID := s.RequestID
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := send(ctx, notify.BookingSummary{
			BookingID:       b.ID,
			Reference:       b.Reference,
			RestaurantID:    b.RestaurantID,
			BookingDate:     b.BookingDate,
			StartTime:       b.StartTime,
			PartySize:       b.PartySize,
			CustomerName:    b.CustomerName,
			CustomerEmail:   b.CustomerEmail,
			CustomerPhone:   b.CustomerPhone,
			SpecialRequests: b.SpecialRequests,
		}); err != nil {
			utils.LogEvent(requestID, "booking", "crm_notify_failed",
				fmt.Sprintf("booking_id=%d err=%v", b.ID, err))
		}
	}()
}

// List returns every booking for a restaurant, newest date last.
func (s BookingService) List(restaurantID int64) ([]models.Booking, error) {
	if restaurantID <= 0 {
		return nil, domain.ValidationError{Field: "restaurant_id", Msg: "required"}
	}
	return s.bookings().ListByRestaurant(restaurantID)
}

func (s BookingService) Get(id int64) (models.Booking, error) {
	if id <= 0 {
		return models.Booking{}, domain.ValidationError{Field: "id", Msg: "invalid booking id"}
	}
	return s.bookings().GetByID(id)
}

// Cancel frees the table for the window; the row stays for history.
func (s BookingService) Cancel(id int64) error {
	if err := s.bookings().UpdateStatus(id, models.StatusCancelled); err != nil {
		return err
	}
	utils.LogEvent(s.RequestID, "booking", "cancel", fmt.Sprintf("booking_id=%d", id))
	return nil
}

// Complete marks a finished visit. Completed bookings no longer block slots.
func (s BookingService) Complete(id int64) error {
	if err := s.bookings().UpdateStatus(id, models.StatusCompleted); err != nil {
		return err
	}
	utils.LogEvent(s.RequestID, "booking", "complete", fmt.Sprintf("booking_id=%d", id))
	return nil
}
