package api

import (
	"log"
	stdhttp "net/http"

	intconfig "tablebook/internal/config"
	h "tablebook/internal/http/handlers"
	"tablebook/internal/http/middleware"

	"github.com/gin-gonic/gin"
)

func NewRouter(env intconfig.Env) *gin.Engine {
	h.Init(env)

	r := gin.New()
	r.Use(middleware.RequestID(), middleware.Logger(), gin.Recovery(), middleware.CORS())

	if err := r.SetTrustedProxies(nil); err != nil {
		log.Printf("warning: failed to set trusted proxies: %v", err)
	}

	r.OPTIONS("/*path", func(c *gin.Context) { c.AbortWithStatus(stdhttp.StatusNoContent) })

	r.NoRoute(func(c *gin.Context) {
		c.JSON(stdhttp.StatusNotFound, gin.H{
			"error":  "route not found",
			"path":   c.Request.URL.Path,
			"method": c.Request.Method,
		})
	})

	api := r.Group("/api")

	// Staff can work bookings; admin additionally manages inventory and users.
	staff := api.Group("")
	staff.Use(middleware.RequireAuth([]byte(env.JWTSecret)), middleware.RequireRoles("admin", "owner", "staff"))
	admin := api.Group("")
	admin.Use(middleware.RequireAuth([]byte(env.JWTSecret)), middleware.RequireRoles("admin", "owner"))

	{
		api.GET("/health", h.Health)
		api.GET("/db-check", h.DBCheck)

		// Auth
		api.POST("/auth/login", h.Login)
		admin.POST("/auth/register", h.Register)

		// Public booking surface
		api.GET("/time-slots", h.GetTimeSlots)
		api.GET("/availability", h.GetAvailability)
		api.POST("/bookings", h.CreateBooking)
		api.GET("/bookings/:id", h.GetBookingByID)
		api.GET("/bookings/:id/confirmation", h.GetBookingConfirmationPDF)

		// Staff booking management
		staff.GET("/bookings", h.GetBookings)
		staff.PUT("/bookings/:id/cancel", h.CancelBooking)
		staff.PUT("/bookings/:id/complete", h.CompleteBooking)

		// Restaurants and inventory
		api.GET("/restaurants", h.GetRestaurants)
		api.GET("/restaurants/:id", h.GetRestaurantByID)
		api.GET("/restaurants/:id/tables", h.GetRestaurantTables)

		admin.GET("/restaurants/all", h.GetAllRestaurants)
		admin.POST("/restaurants", h.CreateRestaurant)
		admin.PUT("/restaurants/:id", h.UpdateRestaurant)
		admin.DELETE("/restaurants/:id", h.DeleteRestaurant)
		admin.POST("/restaurants/:id/tables", h.CreateRestaurantTable)
		admin.PUT("/tables/:id", h.UpdateTable)
		admin.DELETE("/tables/:id", h.DeleteTable)

		// Users
		admin.GET("/users", h.GetUsers)
		admin.DELETE("/users/:id", h.DeleteUser)
	}

	return r
}
