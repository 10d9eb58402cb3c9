package repositories

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"

	intconfig "tablebook/internal/config"
	"tablebook/internal/domain/models"
)

type TableRepository struct {
	DB *sql.DB
}

func (r TableRepository) db() *sql.DB {
	if r.DB != nil {
		return r.DB
	}
	return intconfig.DB
}

// ListByRestaurant returns the restaurant's inventory ordered by name, the
// stable fetch order the allocator's tie-break documents.
func (r TableRepository) ListByRestaurant(restaurantID int64) ([]models.Table, error) {
	if restaurantID <= 0 {
		return nil, fmt.Errorf("invalid restaurant id")
	}
	rows, err := r.db().Query(`
		SELECT id, restaurant_id, name, capacity, COALESCE(section, '')
		FROM tables
		WHERE restaurant_id = ?
		ORDER BY name
	`, restaurantID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tables []models.Table
	for rows.Next() {
		var t models.Table
		if err := rows.Scan(&t.ID, &t.RestaurantID, &t.Name, &t.Capacity, &t.Section); err != nil {
			return nil, err
		}
		tables = append(tables, t)
	}
	return tables, rows.Err()
}

func (r TableRepository) GetByID(id int64) (models.Table, error) {
	if id <= 0 {
		return models.Table{}, fmt.Errorf("invalid table id")
	}
	var t models.Table
	err := r.db().QueryRow(`
		SELECT id, restaurant_id, name, capacity, COALESCE(section, '')
		FROM tables
		WHERE id = ? LIMIT 1
	`, id).Scan(&t.ID, &t.RestaurantID, &t.Name, &t.Capacity, &t.Section)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Table{}, fmt.Errorf("table not found")
		}
		return models.Table{}, err
	}
	return t, nil
}

func (r TableRepository) Create(t models.Table) (models.Table, error) {
	res, err := r.db().Exec(`
		INSERT INTO tables (restaurant_id, name, capacity, section)
		VALUES (?, ?, ?, ?)
	`, t.RestaurantID, strings.TrimSpace(t.Name), t.Capacity, strings.TrimSpace(t.Section))
	if err != nil {
		return models.Table{}, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return models.Table{}, err
	}
	t.ID = id
	return t, nil
}

// Update performs PATCH-style updates based on key presence.
func (r TableRepository) Update(id int64, upd models.TableUpdate) error {
	if id <= 0 {
		return fmt.Errorf("invalid table id")
	}
	sets := []string{}
	args := []any{}

	if upd.Name != nil {
		sets = append(sets, "name=?")
		args = append(args, strings.TrimSpace(*upd.Name))
	}
	if upd.Capacity != nil {
		sets = append(sets, "capacity=?")
		args = append(args, *upd.Capacity)
	}
	if upd.Section != nil {
		sets = append(sets, "section=?")
		args = append(args, strings.TrimSpace(*upd.Section))
	}
	if len(sets) == 0 {
		return nil
	}
	args = append(args, id)
	_, err := r.db().Exec(`UPDATE tables SET `+strings.Join(sets, ",")+` WHERE id=?`, args...)
	return err
}

func (r TableRepository) Delete(id int64) error {
	if id <= 0 {
		return fmt.Errorf("invalid table id")
	}
	_, err := r.db().Exec(`DELETE FROM tables WHERE id=?`, id)
	return err
}
