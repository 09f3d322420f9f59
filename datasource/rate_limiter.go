package datasource

import (
	"context"
	"fmt"

	"weather-widget/models"

	"golang.org/x/time/rate"
)

// RateLimitedProvider wraps a WeatherProvider with one limiter per endpoint
type RateLimitedProvider struct {
	provider        WeatherProvider
	currentLimiter  *rate.Limiter
	forecastLimiter *rate.Limiter
	name            string
}

// NewRateLimitedProvider creates a rate limited provider.
// rps is the maximum requests per second allowed per endpoint (can be fractional)
// burst is the maximum burst size allowed
func NewRateLimitedProvider(provider WeatherProvider, rps float64, burst int) *RateLimitedProvider {
	return &RateLimitedProvider{
		provider:        provider,
		currentLimiter:  rate.NewLimiter(rate.Limit(rps), burst),
		forecastLimiter: rate.NewLimiter(rate.Limit(rps), burst),
		name:            fmt.Sprintf("%s [Rate Limited]", provider.Name()),
	}
}

// FetchCurrent waits for the current-conditions limiter before forwarding
func (r *RateLimitedProvider) FetchCurrent(ctx context.Context, query models.LocationQuery) (models.CurrentConditions, error) {
	if err := r.currentLimiter.Wait(ctx); err != nil {
		return models.CurrentConditions{}, fmt.Errorf("rate limit wait canceled: %w", err)
	}
	return r.provider.FetchCurrent(ctx, query)
}

// FetchForecast waits for the forecast limiter before forwarding
func (r *RateLimitedProvider) FetchForecast(ctx context.Context, query models.LocationQuery) ([]models.ForecastSample, error) {
	if err := r.forecastLimiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limit wait canceled: %w", err)
	}
	return r.provider.FetchForecast(ctx, query)
}

// Name returns the provider name
func (r *RateLimitedProvider) Name() string {
	return r.name
}

var _ WeatherProvider = (*RateLimitedProvider)(nil)
