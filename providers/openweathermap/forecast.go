package openweathermap

import (
	"context"
	"time"

	"weather-widget/models"
)

const (
	// SamplesPerDay is the number of 3-hour steps in 24 hours
	SamplesPerDay = 8

	// ForecastDays is the number of daily samples kept
	ForecastDays = 3
)

// forecastResponse represents the /forecast response structure
type forecastResponse struct {
	City struct {
		Name     string `json:"name"`
		Timezone int    `json:"timezone"` // shift in seconds from UTC
	} `json:"city"`
	List []struct {
		Dt   int64 `json:"dt"`
		Main struct {
			Temp float64 `json:"temp"`
		} `json:"main"`
		Weather []struct {
			Main        string `json:"main"`
			Description string `json:"description"`
		} `json:"weather"`
	} `json:"list"`
}

// FetchForecast fetches the 3-hour forecast and keeps one sample per day.
// A short list yields fewer samples, never an error.
func (p *Provider) FetchForecast(ctx context.Context, query models.LocationQuery) ([]models.ForecastSample, error) {
	var resp forecastResponse
	if err := p.get(ctx, "/forecast", query, &resp); err != nil {
		return nil, err
	}

	// timestamps carry the city's offset so weekdays match the place, not the server
	zone := time.FixedZone("", resp.City.Timezone)
	daily := SelectDaily(resp.List)
	samples := make([]models.ForecastSample, 0, len(daily))
	for _, item := range daily {
		sample := models.ForecastSample{
			Timestamp:   time.Unix(item.Dt, 0).In(zone),
			Temperature: item.Main.Temp,
		}
		if len(item.Weather) > 0 {
			sample.Category = models.Category(item.Weather[0].Main)
			sample.Description = item.Weather[0].Description
		}
		samples = append(samples, sample)
	}
	return samples, nil
}

// SelectDaily takes every SamplesPerDay-th element (index 0, 8, 16) and stops
// at ForecastDays elements or at the end of items, whichever comes first.
func SelectDaily[T any](items []T) []T {
	out := make([]T, 0, ForecastDays)
	for day := 0; day < ForecastDays; day++ {
		idx := day * SamplesPerDay
		if idx >= len(items) {
			break
		}
		out = append(out, items[idx])
	}
	return out
}
