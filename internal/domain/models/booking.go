package models

// Booking statuses. Only confirmed bookings participate in conflict checks.
const (
	StatusConfirmed = "confirmed"
	StatusCancelled = "cancelled"
	StatusCompleted = "completed"
)

// Booking occupies one table for a fixed 150-minute window on a single date.
// Dates are YYYY-MM-DD, times HH:MM wall clock (restaurant-local, no timezone
// normalization).
type Booking struct {
	ID              int64  `json:"id"`
	Reference       string `json:"reference"`
	RestaurantID    int64  `json:"restaurant_id"`
	TableID         int64  `json:"table_id"`
	BookingDate     string `json:"booking_date"`
	StartTime       string `json:"start_time"`
	EndTime         string `json:"end_time"`
	PartySize       int    `json:"party_size"`
	Status          string `json:"status"`
	CustomerName    string `json:"customer_name"`
	CustomerEmail   string `json:"customer_email"`
	CustomerPhone   string `json:"customer_phone,omitempty"`
	SpecialRequests string `json:"special_requests,omitempty"`
	CreatedAt       string `json:"created_at,omitempty"`
}

// BookingRequest is the customer-facing create payload. Phone and special
// requests are optional and never influence allocation.
type BookingRequest struct {
	RestaurantID    int64  `json:"restaurant_id"`
	BookingDate     string `json:"booking_date"`
	StartTime       string `json:"start_time"`
	PartySize       int    `json:"party_size"`
	CustomerName    string `json:"customer_name"`
	CustomerEmail   string `json:"customer_email"`
	CustomerPhone   string `json:"customer_phone"`
	SpecialRequests string `json:"special_requests"`
}
