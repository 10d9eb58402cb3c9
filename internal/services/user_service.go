package services

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	intconfig "tablebook/internal/config"
	"tablebook/internal/domain"
	"tablebook/internal/domain/models"
	"tablebook/internal/repositories"
	"tablebook/internal/utils"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

const tokenTTL = 24 * time.Hour

// UserService covers staff accounts and login. Customers book without one.
type UserService struct {
	Repo      repositories.UserRepository
	DB        *sql.DB
	JWTSecret []byte
	RequestID string
}

func (s UserService) db() *sql.DB {
	if s.DB != nil {
		return s.DB
	}
	return intconfig.DB
}

func (s UserService) users() repositories.UserRepository {
	repo := s.Repo
	if repo.DB == nil {
		repo = repositories.UserRepository{DB: s.db()}
	}
	return repo
}

// Login verifies credentials and issues a signed token.
func (s UserService) Login(email, password string) (string, models.User, error) {
	if strings.TrimSpace(email) == "" || password == "" {
		return "", models.User{}, domain.ValidationError{Field: "email", Msg: "email and password are required"}
	}

	user, hash, err := s.users().GetByEmail(email)
	if err != nil {
		if domain.IsNotFound(err) {
			return "", models.User{}, domain.ValidationError{Field: "email", Msg: "invalid email or password"}
		}
		return "", models.User{}, domain.InternalError{Err: err}
	}
	if user.Status != "active" {
		return "", models.User{}, domain.ValidationError{Field: "email", Msg: "account is disabled"}
	}

	if err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)); err != nil {
		return "", models.User{}, domain.ValidationError{Field: "email", Msg: "invalid email or password"}
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id": user.ID,
		"role":    user.Role,
		"exp":     time.Now().Add(tokenTTL).Unix(),
	})
	signed, err := token.SignedString(s.JWTSecret)
	if err != nil {
		return "", models.User{}, domain.InternalError{Err: err}
	}

	utils.LogEvent(s.RequestID, "auth", "login", fmt.Sprintf("user_id=%d", user.ID))
	return signed, user, nil
}

// Register creates a staff account. Role defaults to "staff".
func (s UserService) Register(name, email, password, role string) (models.User, error) {
	if strings.TrimSpace(name) == "" {
		return models.User{}, domain.ValidationError{Field: "name", Msg: "required"}
	}
	email = strings.TrimSpace(email)
	if email == "" || !strings.Contains(email, "@") {
		return models.User{}, domain.ValidationError{Field: "email", Msg: "valid email is required"}
	}
	if len(password) < 8 {
		return models.User{}, domain.ValidationError{Field: "password", Msg: "must be at least 8 characters"}
	}
	if role == "" {
		role = "staff"
	}

	n, err := s.users().CountByEmail(email)
	if err != nil {
		return models.User{}, domain.InternalError{Err: err}
	}
	if n > 0 {
		return models.User{}, domain.ConflictError{Resource: "user", Msg: "email already registered"}
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return models.User{}, domain.InternalError{Err: err}
	}

	created, err := s.users().Create(models.User{
		Name:   strings.TrimSpace(name),
		Email:  email,
		Role:   role,
		Status: "active",
	}, string(hash))
	if err != nil {
		return models.User{}, domain.InternalError{Err: err}
	}

	utils.LogEvent(s.RequestID, "auth", "register", fmt.Sprintf("user_id=%d role=%s", created.ID, created.Role))
	return created, nil
}

func (s UserService) List() ([]models.User, error) {
	return s.users().List()
}

func (s UserService) Delete(id int64) error {
	if id <= 0 {
		return domain.ValidationError{Field: "id", Msg: "invalid user id"}
	}
	if err := s.users().Delete(id); err != nil {
		return domain.InternalError{Err: err}
	}
	utils.LogEvent(s.RequestID, "user", "delete", fmt.Sprintf("user_id=%d", id))
	return nil
}
