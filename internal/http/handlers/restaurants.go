package handlers

import (
	"net/http"

	"tablebook/internal/domain/models"
	"tablebook/internal/http/middleware"
	"tablebook/internal/services"

	"github.com/gin-gonic/gin"
)

func restaurantService(c *gin.Context) services.RestaurantService {
	return services.RestaurantService{RequestID: middleware.GetRequestID(c)}
}

// GET /api/restaurants
func GetRestaurants(c *gin.Context) {
	restaurants, err := restaurantService(c).ListActive()
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"restaurants": restaurants})
}

// GET /api/restaurants/all (admin, includes deactivated)
func GetAllRestaurants(c *gin.Context) {
	restaurants, err := restaurantService(c).ListAll()
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"restaurants": restaurants})
}

// GET /api/restaurants/:id
func GetRestaurantByID(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	restaurant, err := restaurantService(c).Get(id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, restaurant)
}

// POST /api/restaurants (admin)
func CreateRestaurant(c *gin.Context) {
	var req models.Restaurant
	if !BindJSONOrError(c, &req) {
		return
	}
	created, err := restaurantService(c).Create(req)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusCreated, created)
}

// PUT /api/restaurants/:id (admin)
func UpdateRestaurant(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var upd models.RestaurantUpdate
	if !BindJSONOrError(c, &upd) {
		return
	}
	if err := restaurantService(c).Update(id, upd); err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "restaurant updated"})
}

// DELETE /api/restaurants/:id (admin, soft delete)
func DeleteRestaurant(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	if err := restaurantService(c).Deactivate(id); err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "restaurant deactivated"})
}

// GET /api/restaurants/:id/tables
func GetRestaurantTables(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	tables, err := restaurantService(c).ListTables(id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"tables": tables})
}

// POST /api/restaurants/:id/tables (admin)
func CreateRestaurantTable(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req models.Table
	if !BindJSONOrError(c, &req) {
		return
	}
	req.RestaurantID = id
	created, err := restaurantService(c).CreateTable(req)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusCreated, created)
}

// PUT /api/tables/:id (admin)
func UpdateTable(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var upd models.TableUpdate
	if !BindJSONOrError(c, &upd) {
		return
	}
	if err := restaurantService(c).UpdateTable(id, upd); err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "table updated"})
}

// DELETE /api/tables/:id (admin)
func DeleteTable(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	if err := restaurantService(c).DeleteTable(id); err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "table deleted"})
}
