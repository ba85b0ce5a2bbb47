package models

// Venue is pure reference data for match locations.
type Venue struct {
	ID       int      `json:"id"`
	Name     string   `json:"name"`
	Address  *string  `json:"address,omitempty"`
	Latitude *float64 `json:"latitude,omitempty"`
	Longitude *float64 `json:"longitude,omitempty"`
	Capacity *int     `json:"capacity,omitempty"`
	Surface  *string  `json:"surface,omitempty"`
	Active   bool     `json:"active"`
}
