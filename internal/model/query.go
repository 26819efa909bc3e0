package model

// Range is an optional numeric interval. A nil bound means unconstrained.
type Range struct {
	Min *int `json:"min"`
	Max *int `json:"max"`
}

// SearchFilters represents the user's explicit search criteria.
// All fields are independently optional.
type SearchFilters struct {
	Price    Range   `json:"price"`
	FuelType *string `json:"fuelType,omitempty"`
	Mileage  Range   `json:"mileage"`
	Color    *string `json:"color,omitempty"`
}

// SearchResponse is the envelope returned by POST /api/search.
type SearchResponse struct {
	OK   bool             `json:"ok"`
	Data []Recommendation `json:"data"`
}
