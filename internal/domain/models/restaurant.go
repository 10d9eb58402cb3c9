package models

// Restaurant is the tenant owning tables and bookings. Deactivation is a soft
// delete; inactive restaurants keep their history but take no new bookings.
type Restaurant struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	Address  string `json:"address,omitempty"`
	Phone    string `json:"phone,omitempty"`
	IsActive bool   `json:"is_active"`
}

// RestaurantUpdate supports PATCH-style updates via key presence.
type RestaurantUpdate struct {
	Name     *string `json:"name"`
	Address  *string `json:"address"`
	Phone    *string `json:"phone"`
	IsActive *bool   `json:"is_active"`
}
