package domain

import "time"

// Coordinates is a geographic point used for nearest-store lookups.
type Coordinates struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// Store represents a physical shop unit.
type Store struct {
	ID           string       `json:"id"`
	Name         string       `json:"name"`
	Address      string       `json:"address"`
	Neighborhood string       `json:"neighborhood"`
	City         string       `json:"city"`
	State        string       `json:"state"`
	ZipCode      string       `json:"zipCode"`
	Phone        string       `json:"phone,omitempty"`
	WhatsappLink string       `json:"whatsappLink"`
	OpeningHours string       `json:"openingHours,omitempty"`
	Coordinates  *Coordinates `json:"coordinates,omitempty"`
	IsActive     bool         `json:"isActive"`
	CreatedAt    time.Time    `json:"createdAt"`
	UpdatedAt    time.Time    `json:"updatedAt"`
}

// StoreDistance is a store annotated with its distance from a query point,
// in kilometers.
type StoreDistance struct {
	Store
	Distance float64 `json:"distance"`
}

// StoreHours reports a store's published hours and whether it is open right
// now.
type StoreHours struct {
	StoreID string `json:"storeId"`
	Hours   string `json:"hours"`
	IsOpen  bool   `json:"isOpen"`
}
