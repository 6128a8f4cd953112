package models

// Category values a listing can carry. CategoryAll is only a query value.
const (
	CategoryAll       = "All"
	CategoryApartment = "Apartment"
	CategoryHouse     = "House"
	CategoryOffice    = "Office"
	CategoryLand      = "Land"
)

// Categories lists the listing types in menu order.
var Categories = []string{CategoryApartment, CategoryHouse, CategoryOffice, CategoryLand}

type Property struct {
	ID           int      `json:"id"`
	Title        string   `json:"title"`
	Type         string   `json:"type"`
	Price        float64  `json:"price"`
	Location     string   `json:"location"`
	Latitude     *float64 `json:"latitude,omitempty"`
	Longitude    *float64 `json:"longitude,omitempty"`
	Rating       float64  `json:"rating"`
	ReviewsCount int      `json:"reviews_count"`
	Bedrooms     int      `json:"bedrooms"`
	Bathrooms    int      `json:"bathrooms"`
	Status       string   `json:"status"`
	ImageURI     string   `json:"image_uri"`
	Description  string   `json:"description,omitempty"`
	Agent        Agent    `json:"agent"`
}

type Agent struct {
	Name          string `json:"name"`
	ImageURI      string `json:"image_uri"`
	ContactNumber string `json:"contact_number"`
}

type Coordinate struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// Coordinate reports the listing position, or false when either half is missing.
func (p Property) Coordinate() (Coordinate, bool) {
	if p.Latitude == nil || p.Longitude == nil {
		return Coordinate{}, false
	}
	return Coordinate{Latitude: *p.Latitude, Longitude: *p.Longitude}, true
}

// Valid reports whether c is within latitude/longitude bounds.
func (c Coordinate) Valid() bool {
	return c.Latitude >= -90 && c.Latitude <= 90 && c.Longitude >= -180 && c.Longitude <= 180
}
