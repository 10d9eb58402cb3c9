package repositories

import (
	"testing"

	"github.com/DATA-DOG/go-sqlmock"

	"tablebook/internal/domain/models"
)

func TestListByRestaurantMapsRows(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	cols := []string{"id", "restaurant_id", "name", "capacity", "section"}
	mock.ExpectQuery("SELECT (.+) FROM tables").
		WithArgs(int64(1)).
		WillReturnRows(sqlmock.NewRows(cols).
			AddRow(1, 1, "T1", 2, "window").
			AddRow(3, 1, "T3", 4, "main"))

	repo := TableRepository{DB: db}
	tables, err := repo.ListByRestaurant(1)
	if err != nil {
		t.Fatalf("list error: %v", err)
	}
	if len(tables) != 2 {
		t.Fatalf("expected 2 tables, got %d", len(tables))
	}
	if tables[0].Name != "T1" || tables[0].Capacity != 2 {
		t.Fatalf("first table mapped wrong: %+v", tables[0])
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestListByRestaurantInvalidID(t *testing.T) {
	repo := TableRepository{}
	if _, err := repo.ListByRestaurant(0); err == nil {
		t.Fatalf("expected error for restaurant id 0")
	}
}

func TestTableUpdateOnlyPresentFields(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	capacity := 6
	mock.ExpectExec("UPDATE tables SET capacity=\\? WHERE id=\\?").
		WithArgs(6, int64(5)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	repo := TableRepository{DB: db}
	if err := repo.Update(5, models.TableUpdate{Capacity: &capacity}); err != nil {
		t.Fatalf("update error: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestTableUpdateNoFieldsIsNoop(t *testing.T) {
	repo := TableRepository{}
	if err := repo.Update(5, models.TableUpdate{}); err != nil {
		t.Fatalf("empty patch should be a no-op, got %v", err)
	}
}

func TestTableCreateReturnsGeneratedID(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	mock.ExpectExec("INSERT INTO tables").
		WithArgs(int64(1), "T9", 8, "patio").
		WillReturnResult(sqlmock.NewResult(9, 1))

	repo := TableRepository{DB: db}
	created, err := repo.Create(models.Table{RestaurantID: 1, Name: "T9", Capacity: 8, Section: "patio"})
	if err != nil {
		t.Fatalf("create error: %v", err)
	}
	if created.ID != 9 {
		t.Fatalf("expected id 9, got %d", created.ID)
	}
}
