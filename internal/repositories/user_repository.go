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

type UserRepository struct {
	DB *sql.DB
}

func (r UserRepository) db() *sql.DB {
	if r.DB != nil {
		return r.DB
	}
	return intconfig.DB
}

// GetByEmail returns the user plus password hash for login.
func (r UserRepository) GetByEmail(email string) (models.User, string, error) {
	var (
		u    models.User
		hash string
	)
	err := r.db().QueryRow(`
		SELECT id, name, email, password_hash, role, status
		FROM users
		WHERE email = ? LIMIT 1
	`, strings.TrimSpace(email)).Scan(&u.ID, &u.Name, &u.Email, &hash, &u.Role, &u.Status)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.User{}, "", domain.NotFoundError{Resource: "user", Err: err}
		}
		return models.User{}, "", err
	}
	return u, hash, nil
}

func (r UserRepository) List() ([]models.User, error) {
	rows, err := r.db().Query(`
		SELECT id, name, email, role, status
		FROM users
		ORDER BY name
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.User
	for rows.Next() {
		var u models.User
		if err := rows.Scan(&u.ID, &u.Name, &u.Email, &u.Role, &u.Status); err != nil {
			return nil, err
		}
		out = append(out, u)
	}
	return out, rows.Err()
}

func (r UserRepository) Create(u models.User, passwordHash string) (models.User, error) {
	res, err := r.db().Exec(`
		INSERT INTO users (name, email, password_hash, role, status)
		VALUES (?, ?, ?, ?, ?)
	`, strings.TrimSpace(u.Name), strings.TrimSpace(u.Email), passwordHash, u.Role, u.Status)
	if err != nil {
		return models.User{}, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return models.User{}, err
	}
	u.ID = id
	return u, nil
}

func (r UserRepository) Delete(id int64) error {
	if id <= 0 {
		return fmt.Errorf("invalid user id")
	}
	_, err := r.db().Exec(`DELETE FROM users WHERE id=?`, id)
	return err
}

// CountByEmail backs duplicate-registration checks.
func (r UserRepository) CountByEmail(email string) (int, error) {
	var n int
	err := r.db().QueryRow(`SELECT COUNT(*) FROM users WHERE email = ?`, strings.TrimSpace(email)).Scan(&n)
	return n, err
}
