package services

import (
	"testing"

	"tablebook/internal/domain"
	"tablebook/internal/repositories"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

func userServiceWith(t *testing.T) (UserService, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return UserService{
		Repo:      repositories.UserRepository{DB: db},
		JWTSecret: []byte("test-secret"),
	}, mock
}

func TestLoginIssuesTokenWithRoleClaim(t *testing.T) {
	svc, mock := userServiceWith(t)

	hash, err := bcrypt.GenerateFromPassword([]byte("correct horse"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("bcrypt: %v", err)
	}
	mock.ExpectQuery("SELECT id, name, email, password_hash, role, status").
		WithArgs("maria@example.com").
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "email", "password_hash", "role", "status"}).
			AddRow(7, "Maria", "maria@example.com", string(hash), "admin", "active"))

	token, user, err := svc.Login("maria@example.com", "correct horse")
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if user.ID != 7 || user.Role != "admin" {
		t.Errorf("user = %+v", user)
	}

	parsed, err := jwt.Parse(token, func(*jwt.Token) (any, error) { return []byte("test-secret"), nil })
	if err != nil || !parsed.Valid {
		t.Fatalf("issued token does not verify: %v", err)
	}
	claims := parsed.Claims.(jwt.MapClaims)
	if claims["role"] != "admin" {
		t.Errorf("role claim = %v, want admin", claims["role"])
	}
	if int64(claims["user_id"].(float64)) != 7 {
		t.Errorf("user_id claim = %v, want 7", claims["user_id"])
	}
}

func TestLoginRejectsWrongPassword(t *testing.T) {
	svc, mock := userServiceWith(t)

	hash, _ := bcrypt.GenerateFromPassword([]byte("right"), bcrypt.MinCost)
	mock.ExpectQuery("SELECT id, name, email, password_hash, role, status").
		WithArgs("maria@example.com").
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "email", "password_hash", "role", "status"}).
			AddRow(7, "Maria", "maria@example.com", string(hash), "admin", "active"))

	if _, _, err := svc.Login("maria@example.com", "wrong"); !domain.IsValidation(err) {
		t.Fatalf("err = %v, want validation error", err)
	}
}

func TestLoginRejectsDisabledAccount(t *testing.T) {
	svc, mock := userServiceWith(t)

	hash, _ := bcrypt.GenerateFromPassword([]byte("pw"), bcrypt.MinCost)
	mock.ExpectQuery("SELECT id, name, email, password_hash, role, status").
		WithArgs("old@example.com").
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "email", "password_hash", "role", "status"}).
			AddRow(3, "Old", "old@example.com", string(hash), "staff", "disabled"))

	if _, _, err := svc.Login("old@example.com", "pw"); !domain.IsValidation(err) {
		t.Fatalf("err = %v, want validation error", err)
	}
}

func TestRegisterRejectsDuplicateEmail(t *testing.T) {
	svc, mock := userServiceWith(t)

	mock.ExpectQuery("SELECT COUNT").
		WithArgs("maria@example.com").
		WillReturnRows(sqlmock.NewRows([]string{"n"}).AddRow(1))

	if _, err := svc.Register("Maria", "maria@example.com", "password123", ""); !domain.IsConflict(err) {
		t.Fatalf("err = %v, want conflict", err)
	}
}

func TestRegisterValidation(t *testing.T) {
	svc, _ := userServiceWith(t)

	cases := []struct {
		name, userName, email, password string
	}{
		{"missing name", "", "a@b.co", "password123"},
		{"bad email", "A", "not-an-email", "password123"},
		{"short password", "A", "a@b.co", "short"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := svc.Register(tc.userName, tc.email, tc.password, ""); !domain.IsValidation(err) {
				t.Fatalf("err = %v, want validation error", err)
			}
		})
	}
}

func TestRegisterDefaultsToStaffRole(t *testing.T) {
	svc, mock := userServiceWith(t)

	mock.ExpectQuery("SELECT COUNT").
		WithArgs("new@example.com").
		WillReturnRows(sqlmock.NewRows([]string{"n"}).AddRow(0))
	mock.ExpectExec("INSERT INTO users").
		WithArgs("New", "new@example.com", sqlmock.AnyArg(), "staff", "active").
		WillReturnResult(sqlmock.NewResult(11, 1))

	user, err := svc.Register("New", "new@example.com", "password123", "")
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	if user.ID != 11 || user.Role != "staff" {
		t.Errorf("user = %+v", user)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("expectations: %v", err)
	}
}
