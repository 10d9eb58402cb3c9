package handlers

import (
	"net/http"
	"strconv"

	"tablebook/internal/scheduling"
	"tablebook/internal/services"

	"github.com/gin-gonic/gin"
)

// GET /api/availability?restaurant_id=1&date=2025-06-01&party_size=2
func GetAvailability(c *gin.Context) {
	restaurantID, err := strconv.ParseInt(c.Query("restaurant_id"), 10, 64)
	if err != nil || restaurantID <= 0 {
		respondError(c, http.StatusBadRequest, "validation_error", "restaurant_id is required", nil)
		return
	}
	partySize, err := strconv.Atoi(c.Query("party_size"))
	if err != nil || partySize <= 0 {
		respondError(c, http.StatusBadRequest, "validation_error", "party_size must be a positive integer", nil)
		return
	}
	date := c.Query("date")

	svc := services.AvailabilityService{}
	slots, err := svc.AvailableSlots(restaurantID, date, partySize)
	if err != nil {
		RespondDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"restaurant_id": restaurantID,
		"date":          date,
		"party_size":    partySize,
		"slots":         slots,
	})
}

// GET /api/time-slots
// The canonical seating grid; identical for every date.
func GetTimeSlots(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"slots": scheduling.TimeSlots()})
}
