// Package render turns weather data into display cards.
package render

import (
	"fmt"
	"math"
	"strings"

	"weather-widget/models"
)

// Units holds the display suffixes for a unit system
type Units struct {
	Temperature string
	Wind        string
}

// UnitsFor returns the suffixes for "metric" or "imperial"; anything else is metric
func UnitsFor(system string) Units {
	if system == "imperial" {
		return Units{Temperature: "°F", Wind: "mph"}
	}
	return Units{Temperature: "°C", Wind: "m/s"}
}

// Card is one rendered location. Cards are never updated once built.
type Card struct {
	Title       string        `json:"title"`
	Category    string        `json:"category"`
	Class       string        `json:"class"`
	Icon        string        `json:"icon"`
	Temperature string        `json:"temperature"`
	Description string        `json:"description"`
	Humidity    string        `json:"humidity"`
	Wind        string        `json:"wind"`
	FeelsLike   string        `json:"feelsLike"`
	Forecast    []ForecastDay `json:"forecast"`
}

// ForecastDay is one entry of the card's forecast strip
type ForecastDay struct {
	Weekday     string `json:"weekday"`
	Icon        string `json:"icon"`
	Temperature string `json:"temperature"`
}

// NewCard builds the card for a location from its current conditions and daily samples
func NewCard(title string, current models.CurrentConditions, forecast []models.ForecastSample, units Units) Card {
	card := Card{
		Title:       title,
		Category:    string(current.Category),
		Class:       strings.ToLower(string(current.Category)),
		Icon:        IconFor(current.Category),
		Temperature: fmt.Sprintf("%d%s", round(current.Temperature), units.Temperature),
		Description: current.Description,
		Humidity:    fmt.Sprintf("%d%%", current.Humidity),
		Wind:        fmt.Sprintf("%d %s", round(current.WindSpeed), units.Wind),
		FeelsLike:   fmt.Sprintf("%d%s", round(current.FeelsLike), units.Temperature),
		Forecast:    make([]ForecastDay, 0, len(forecast)),
	}
	for _, sample := range forecast {
		card.Forecast = append(card.Forecast, ForecastDay{
			Weekday:     sample.Timestamp.Format("Mon"),
			Icon:        IconFor(sample.Category),
			Temperature: fmt.Sprintf("%d%s", round(sample.Temperature), units.Temperature),
		})
	}
	return card
}

// round halves toward positive infinity, so -2.5 becomes -2
func round(v float64) int {
	return int(math.Floor(v + 0.5))
}
