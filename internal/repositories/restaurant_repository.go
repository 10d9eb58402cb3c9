package repositories

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"

	intconfig "tablebook/internal/config"
	"tablebook/internal/domain"
	"tablebook/internal/domain/models"
)

type RestaurantRepository struct {
	DB *sql.DB
}

func (r RestaurantRepository) db() *sql.DB {
	if r.DB != nil {
		return r.DB
	}
	return intconfig.DB
}

func (r RestaurantRepository) list(where string, args ...any) ([]models.Restaurant, error) {
	rows, err := r.db().Query(`
		SELECT id, name, COALESCE(address, ''), COALESCE(phone, ''), is_active
		FROM restaurants `+where+`
		ORDER BY name
	`, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.Restaurant
	for rows.Next() {
		var m models.Restaurant
		if err := rows.Scan(&m.ID, &m.Name, &m.Address, &m.Phone, &m.IsActive); err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, rows.Err()
}

// ListActive returns restaurants open for new bookings.
func (r RestaurantRepository) ListActive() ([]models.Restaurant, error) {
	return r.list(`WHERE is_active = 1`)
}

// ListAll includes deactivated restaurants for the admin view.
func (r RestaurantRepository) ListAll() ([]models.Restaurant, error) {
	return r.list(``)
}

func (r RestaurantRepository) GetByID(id int64) (models.Restaurant, error) {
	if id <= 0 {
		return models.Restaurant{}, fmt.Errorf("invalid restaurant id")
	}
	var m models.Restaurant
	err := r.db().QueryRow(`
		SELECT id, name, COALESCE(address, ''), COALESCE(phone, ''), is_active
		FROM restaurants
		WHERE id = ? LIMIT 1
	`, id).Scan(&m.ID, &m.Name, &m.Address, &m.Phone, &m.IsActive)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Restaurant{}, domain.NotFoundError{Resource: "restaurant", Err: err}
		}
		return models.Restaurant{}, err
	}
	return m, nil
}

func (r RestaurantRepository) Create(m models.Restaurant) (models.Restaurant, error) {
	res, err := r.db().Exec(`
		INSERT INTO restaurants (name, address, phone, is_active)
		VALUES (?, ?, ?, 1)
	`, strings.TrimSpace(m.Name), strings.TrimSpace(m.Address), strings.TrimSpace(m.Phone))
	if err != nil {
		return models.Restaurant{}, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return models.Restaurant{}, err
	}
	m.ID = id
	m.IsActive = true
	return m, nil
}

// Update performs PATCH-style updates based on key presence.
func (r RestaurantRepository) Update(id int64, upd models.RestaurantUpdate) error {
	if id <= 0 {
		return fmt.Errorf("invalid restaurant id")
	}
	sets := []string{}
	args := []any{}

	if upd.Name != nil {
		sets = append(sets, "name=?")
		args = append(args, strings.TrimSpace(*upd.Name))
	}
	if upd.Address != nil {
		sets = append(sets, "address=?")
		args = append(args, strings.TrimSpace(*upd.Address))
	}
	if upd.Phone != nil {
		sets = append(sets, "phone=?")
		args = append(args, strings.TrimSpace(*upd.Phone))
	}
	if upd.IsActive != nil {
		sets = append(sets, "is_active=?")
		args = append(args, *upd.IsActive)
	}
	if len(sets) == 0 {
		return nil
	}
	args = append(args, id)
	_, err := r.db().Exec(`UPDATE restaurants SET `+strings.Join(sets, ",")+` WHERE id=?`, args...)
	return err
}

// Deactivate is a soft delete; bookings and tables stay in place.
func (r RestaurantRepository) Deactivate(id int64) error {
	if id <= 0 {
		return fmt.Errorf("invalid restaurant id")
	}
	_, err := r.db().Exec(`UPDATE restaurants SET is_active=0 WHERE id=?`, id)
	return err
}
