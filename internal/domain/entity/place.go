package entity

import (
	"time"
)

// Location is a geographic coordinate resolved from a free-text address.
type Location struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// Place is a geotagged record owned by exactly one User (CreatorID).
// The owner's linkage row in user_places is maintained together with the
// place row inside a single transaction on create and delete.
type Place struct {
	ID          string
	Title       string
	Description string
	Address     string
	Location    Location
	ImageURL    string
	CreatorID   string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
