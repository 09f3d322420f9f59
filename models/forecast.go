package models

import (
	"time"
)

// ForecastSample is one daily snapshot taken from a fine-grained forecast feed
type ForecastSample struct {
	Timestamp   time.Time `json:"timestamp"` // time this sample is for
	Temperature float64   `json:"temperature"`
	Category    Category  `json:"category"`
	Description string    `json:"description"`
}
