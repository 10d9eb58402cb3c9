package repositories

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"

	intconfig "tablebook/internal/config"
	intdb "tablebook/internal/db"
	"tablebook/internal/domain"
	"tablebook/internal/domain/models"
)

type BookingRepository struct {
	DB *sql.DB
}

func (r BookingRepository) db() *sql.DB {
	if r.DB != nil {
		return r.DB
	}
	return intconfig.DB
}

const bookingColumns = `id, reference, restaurant_id, table_id, booking_date,
	start_time, end_time, party_size, status,
	customer_name, customer_email, COALESCE(customer_phone, ''), COALESCE(special_requests, ''),
	COALESCE(DATE_FORMAT(created_at, '%Y-%m-%d %H:%i:%s'), '')`

func scanBooking(row interface{ Scan(...any) error }) (models.Booking, error) {
	var b models.Booking
	err := row.Scan(
		&b.ID,
		&b.Reference,
		&b.RestaurantID,
		&b.TableID,
		&b.BookingDate,
		&b.StartTime,
		&b.EndTime,
		&b.PartySize,
		&b.Status,
		&b.CustomerName,
		&b.CustomerEmail,
		&b.CustomerPhone,
		&b.SpecialRequests,
		&b.CreatedAt,
	)
	return b, err
}

// ListConfirmedForDate returns confirmed bookings for a restaurant on one
// date. The availability engine groups them per table itself.
func (r BookingRepository) ListConfirmedForDate(restaurantID int64, date string) ([]models.Booking, error) {
	if restaurantID <= 0 {
		return nil, fmt.Errorf("invalid restaurant id")
	}
	rows, err := r.db().Query(`
		SELECT `+bookingColumns+`
		FROM bookings
		WHERE restaurant_id = ? AND booking_date = ? AND status = ?
		ORDER BY start_time
	`, restaurantID, strings.TrimSpace(date), models.StatusConfirmed)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.Booking
	for rows.Next() {
		b, err := scanBooking(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, b)
	}
	return out, rows.Err()
}

// ListByRestaurant returns every booking for the admin view, ordered by date
// then start time.
func (r BookingRepository) ListByRestaurant(restaurantID int64) ([]models.Booking, error) {
	if restaurantID <= 0 {
		return nil, fmt.Errorf("invalid restaurant id")
	}
	rows, err := r.db().Query(`
		SELECT `+bookingColumns+`
		FROM bookings
		WHERE restaurant_id = ?
		ORDER BY booking_date, start_time
	`, restaurantID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.Booking
	for rows.Next() {
		b, err := scanBooking(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, b)
	}
	return out, rows.Err()
}

func (r BookingRepository) GetByID(id int64) (models.Booking, error) {
	if id <= 0 {
		return models.Booking{}, fmt.Errorf("invalid booking id")
	}
	b, err := scanBooking(r.db().QueryRow(`
		SELECT `+bookingColumns+`
		FROM bookings
		WHERE id = ? LIMIT 1
	`, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Booking{}, domain.NotFoundError{Resource: "booking", Err: err}
		}
		return models.Booking{}, err
	}
	return b, nil
}

// InsertConfirmed persists a confirmed booking atomically. Candidates are
// the suitable tables in best-fit order; inside one transaction each table
// row is locked and its confirmed bookings re-checked for overlap, and the
// first conflict-free table takes the insert. Two racing commits serialize
// on the row locks; a commit finding every candidate occupied gets a
// ConflictError, never a double booking. Candidates are always pre-sorted
// the same way, so lock acquisition order is consistent across callers.
// HH:MM strings are zero-padded, so the SQL string comparison matches the
// numeric overlap test.
func (r BookingRepository) InsertConfirmed(b models.Booking, candidates []models.Table) (models.Booking, error) {
	if len(candidates) == 0 {
		return models.Booking{}, domain.ConflictError{Resource: "booking", Msg: "no candidate tables"}
	}

	conn := r.db()
	tx, err := conn.Begin()
	if err != nil {
		return models.Booking{}, err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	var tableID int64
	for _, t := range candidates {
		var lockedID int64
		err = tx.QueryRow(`SELECT id FROM tables WHERE id = ? FOR UPDATE`, t.ID).Scan(&lockedID)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				// Table deleted since inventory was read; try the next.
				err = nil
				continue
			}
			return models.Booking{}, err
		}

		var clashes int
		err = tx.QueryRow(`
			SELECT COUNT(*)
			FROM bookings
			WHERE table_id = ? AND booking_date = ? AND status = ?
			  AND start_time < ? AND end_time > ?
		`, t.ID, b.BookingDate, models.StatusConfirmed, b.EndTime, b.StartTime).Scan(&clashes)
		if err != nil {
			return models.Booking{}, err
		}
		if clashes == 0 {
			tableID = t.ID
			break
		}
	}
	if tableID == 0 {
		err = domain.ConflictError{Resource: "booking", Msg: "no suitable table free for this time"}
		return models.Booking{}, err
	}
	b.TableID = tableID

	res, err := tx.Exec(`
		INSERT INTO bookings
			(reference, restaurant_id, table_id, booking_date, start_time, end_time,
			 party_size, status, customer_name, customer_email, customer_phone, special_requests)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`,
		b.Reference,
		b.RestaurantID,
		b.TableID,
		b.BookingDate,
		b.StartTime,
		b.EndTime,
		b.PartySize,
		models.StatusConfirmed,
		strings.TrimSpace(b.CustomerName),
		strings.TrimSpace(b.CustomerEmail),
		intdb.NullIfEmpty(strings.TrimSpace(b.CustomerPhone)),
		intdb.NullIfEmpty(strings.TrimSpace(b.SpecialRequests)),
	)
	if err != nil {
		return models.Booking{}, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return models.Booking{}, err
	}
	if err = tx.Commit(); err != nil {
		return models.Booking{}, err
	}

	b.ID = id
	b.Status = models.StatusConfirmed
	return b, nil
}

// UpdateStatus moves a booking to cancelled or completed. Management flow
// only; the booking core never mutates persisted bookings.
func (r BookingRepository) UpdateStatus(id int64, status string) error {
	if id <= 0 {
		return fmt.Errorf("invalid booking id")
	}
	switch status {
	case models.StatusCancelled, models.StatusCompleted:
	default:
		return domain.ValidationError{Field: "status", Msg: fmt.Sprintf("unsupported transition to %q", status)}
	}
	res, err := r.db().Exec(`UPDATE bookings SET status=? WHERE id=?`, status, id)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return domain.NotFoundError{Resource: "booking"}
	}
	return nil
}
