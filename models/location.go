package models

import (
	"fmt"
	"strings"
)

// Coordinates is a latitude/longitude pair in decimal degrees
type Coordinates struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// LocationQuery selects a location either by free-text name or by coordinates
type LocationQuery struct {
	Name        string
	Coordinates *Coordinates
}

// ByName builds a query for a free-text location name
func ByName(name string) LocationQuery {
	return LocationQuery{Name: strings.TrimSpace(name)}
}

// ByCoordinates builds a query for a latitude/longitude pair
func ByCoordinates(c Coordinates) LocationQuery {
	return LocationQuery{Coordinates: &c}
}

// IsCoordinates reports whether the query uses coordinates instead of a name
func (q LocationQuery) IsCoordinates() bool {
	return q.Coordinates != nil
}

func (q LocationQuery) String() string {
	if q.Coordinates != nil {
		return fmt.Sprintf("%.4f,%.4f", q.Coordinates.Latitude, q.Coordinates.Longitude)
	}
	return q.Name
}
