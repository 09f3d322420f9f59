package models

import (
	"time"
)

// Category is the upstream weather group, e.g. "Clear" or "Rain"
type Category string

// Categories with a dedicated icon. Any other value is still a valid Category.
const (
	CategoryClear        Category = "Clear"
	CategoryClouds       Category = "Clouds"
	CategoryRain         Category = "Rain"
	CategoryDrizzle      Category = "Drizzle"
	CategoryThunderstorm Category = "Thunderstorm"
	CategorySnow         Category = "Snow"
	CategoryMist         Category = "Mist"
	CategoryFog          Category = "Fog"
	CategoryHaze         Category = "Haze"
)

// CurrentConditions is a point-in-time weather snapshot for a location
type CurrentConditions struct {
	Location    string      `json:"location"`    // display name resolved by the provider
	Coordinates Coordinates `json:"coordinates"` // where the observation applies
	Temperature float64     `json:"temperature"` // in the configured unit system
	FeelsLike   float64     `json:"feelsLike"`
	Humidity    int         `json:"humidity"`  // percentage
	WindSpeed   float64     `json:"windSpeed"` // m/s (metric) or mph (imperial)
	Category    Category    `json:"category"`
	Description string      `json:"description"`
	Timestamp   time.Time   `json:"timestamp"` // time of observation
}
