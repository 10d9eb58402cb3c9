package handlers

import (
	"net/http"
	"strconv"

	"tablebook/internal/domain/models"
	"tablebook/internal/http/middleware"
	"tablebook/internal/services"

	"github.com/gin-gonic/gin"
)

func bookingService(c *gin.Context) services.BookingService {
	return services.BookingService{
		CRM:       crm,
		RequestID: middleware.GetRequestID(c),
	}
}

func pathID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		respondError(c, http.StatusBadRequest, "invalid_id", "invalid id in path", nil)
		return 0, false
	}
	return id, true
}

// POST /api/bookings
func CreateBooking(c *gin.Context) {
	var req models.BookingRequest
	if !BindJSONOrError(c, &req) {
		return
	}

	booking, err := bookingService(c).Create(req)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusCreated, booking)
}

// GET /api/bookings?restaurant_id=1 (admin)
func GetBookings(c *gin.Context) {
	restaurantID, err := strconv.ParseInt(c.Query("restaurant_id"), 10, 64)
	if err != nil || restaurantID <= 0 {
		respondError(c, http.StatusBadRequest, "validation_error", "restaurant_id is required", nil)
		return
	}

	bookings, err := bookingService(c).List(restaurantID)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"bookings": bookings})
}

// GET /api/bookings/:id
func GetBookingByID(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	booking, err := bookingService(c).Get(id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, booking)
}

// PUT /api/bookings/:id/cancel (admin)
func CancelBooking(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	if err := bookingService(c).Cancel(id); err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "booking cancelled"})
}

// PUT /api/bookings/:id/complete (admin)
func CompleteBooking(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	if err := bookingService(c).Complete(id); err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "booking completed"})
}

// GET /api/bookings/:id/confirmation
func GetBookingConfirmationPDF(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	svc := services.DocsService{RequestID: middleware.GetRequestID(c)}
	pdf, filename, err := svc.GenerateConfirmation(id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(http.StatusOK, "application/pdf", pdf)
}
