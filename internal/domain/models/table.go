package models

// Table is one seatable unit of a restaurant's inventory. Capacity drives
// allocation; Section is a display label only.
type Table struct {
	ID           int64  `json:"id"`
	RestaurantID int64  `json:"restaurant_id"`
	Name         string `json:"name"`
	Capacity     int    `json:"capacity"`
	Section      string `json:"section"`
}

// TableUpdate supports PATCH-style updates via key presence.
type TableUpdate struct {
	Name     *string `json:"name"`
	Capacity *int    `json:"capacity"`
	Section  *string `json:"section"`
}
