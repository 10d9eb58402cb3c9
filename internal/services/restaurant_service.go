package services

import (
	"database/sql"
	"fmt"
	"strings"

	intconfig "tablebook/internal/config"
	"tablebook/internal/domain"
	"tablebook/internal/domain/models"
	"tablebook/internal/repositories"
	"tablebook/internal/utils"
)

// RestaurantService handles restaurant and table management. None of this
// runs in the booking flow; the allocator sees tables as read-only input.
type RestaurantService struct {
	RestaurantRepo repositories.RestaurantRepository
	TableRepo      repositories.TableRepository
	DB             *sql.DB
	RequestID      string
}

func (s RestaurantService) db() *sql.DB {
	if s.DB != nil {
		return s.DB
	}
	return intconfig.DB
}

func (s RestaurantService) restaurants() repositories.RestaurantRepository {
	repo := s.RestaurantRepo
	if repo.DB == nil {
		repo = repositories.RestaurantRepository{DB: s.db()}
	}
	return repo
}

func (s RestaurantService) tableRepo() repositories.TableRepository {
	repo := s.TableRepo
	if repo.DB == nil {
		repo = repositories.TableRepository{DB: s.db()}
	}
	return repo
}

func (s RestaurantService) ListActive() ([]models.Restaurant, error) {
	return s.restaurants().ListActive()
}

func (s RestaurantService) ListAll() ([]models.Restaurant, error) {
	return s.restaurants().ListAll()
}

func (s RestaurantService) Get(id int64) (models.Restaurant, error) {
	if id <= 0 {
		return models.Restaurant{}, domain.ValidationError{Field: "id", Msg: "invalid restaurant id"}
	}
	return s.restaurants().GetByID(id)
}

func (s RestaurantService) Create(m models.Restaurant) (models.Restaurant, error) {
	if strings.TrimSpace(m.Name) == "" {
		return models.Restaurant{}, domain.ValidationError{Field: "name", Msg: "required"}
	}
	created, err := s.restaurants().Create(m)
	if err != nil {
		return models.Restaurant{}, domain.InternalError{Err: err}
	}
	utils.LogEvent(s.RequestID, "restaurant", "create", fmt.Sprintf("restaurant_id=%d", created.ID))
	return created, nil
}

func (s RestaurantService) Update(id int64, upd models.RestaurantUpdate) error {
	if id <= 0 {
		return domain.ValidationError{Field: "id", Msg: "invalid restaurant id"}
	}
	if upd.Name != nil && strings.TrimSpace(*upd.Name) == "" {
		return domain.ValidationError{Field: "name", Msg: "cannot be empty"}
	}
	if err := s.restaurants().Update(id, upd); err != nil {
		return domain.InternalError{Err: err}
	}
	return nil
}

func (s RestaurantService) Deactivate(id int64) error {
	if id <= 0 {
		return domain.ValidationError{Field: "id", Msg: "invalid restaurant id"}
	}
	if err := s.restaurants().Deactivate(id); err != nil {
		return domain.InternalError{Err: err}
	}
	utils.LogEvent(s.RequestID, "restaurant", "deactivate", fmt.Sprintf("restaurant_id=%d", id))
	return nil
}

func (s RestaurantService) ListTables(restaurantID int64) ([]models.Table, error) {
	if restaurantID <= 0 {
		return nil, domain.ValidationError{Field: "restaurant_id", Msg: "required"}
	}
	return s.tableRepo().ListByRestaurant(restaurantID)
}

func (s RestaurantService) CreateTable(t models.Table) (models.Table, error) {
	if t.RestaurantID <= 0 {
		return models.Table{}, domain.ValidationError{Field: "restaurant_id", Msg: "required"}
	}
	if strings.TrimSpace(t.Name) == "" {
		return models.Table{}, domain.ValidationError{Field: "name", Msg: "required"}
	}
	if t.Capacity <= 0 {
		return models.Table{}, domain.ValidationError{Field: "capacity", Msg: "must be positive"}
	}
	created, err := s.tableRepo().Create(t)
	if err != nil {
		return models.Table{}, domain.InternalError{Err: err}
	}
	utils.LogEvent(s.RequestID, "restaurant", "create_table",
		fmt.Sprintf("restaurant_id=%d table_id=%d capacity=%d", created.RestaurantID, created.ID, created.Capacity))
	return created, nil
}

// UpdateTable edits inventory. Capacity edits are not re-validated against
// existing bookings, matching reference behavior: a booking created when the
// table was larger keeps its party size. Flagged in DESIGN.md.
func (s RestaurantService) UpdateTable(id int64, upd models.TableUpdate) error {
	if id <= 0 {
		return domain.ValidationError{Field: "id", Msg: "invalid table id"}
	}
	if upd.Capacity != nil && *upd.Capacity <= 0 {
		return domain.ValidationError{Field: "capacity", Msg: "must be positive"}
	}
	if err := s.tableRepo().Update(id, upd); err != nil {
		return domain.InternalError{Err: err}
	}
	return nil
}

func (s RestaurantService) DeleteTable(id int64) error {
	if id <= 0 {
		return domain.ValidationError{Field: "id", Msg: "invalid table id"}
	}
	if err := s.tableRepo().Delete(id); err != nil {
		return domain.InternalError{Err: err}
	}
	utils.LogEvent(s.RequestID, "restaurant", "delete_table", fmt.Sprintf("table_id=%d", id))
	return nil
}
