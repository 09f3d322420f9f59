// Package datasourcetest provides an in-memory WeatherProvider for tests.
package datasourcetest

import (
	"context"
	"strings"
	"sync"

	"weather-widget/datasource"
	"weather-widget/models"
)

// Provider serves canned responses keyed by lower-cased query string.
// Unknown names fail with datasource.ErrNotFound.
type Provider struct {
	Current  map[string]models.CurrentConditions
	Forecast map[string][]models.ForecastSample

	// Err, when set, is returned by every call
	Err error

	mutex         sync.Mutex
	currentCalls  []models.LocationQuery
	forecastCalls []models.LocationQuery
}

// New creates an empty fake provider
func New() *Provider {
	return &Provider{
		Current:  make(map[string]models.CurrentConditions),
		Forecast: make(map[string][]models.ForecastSample),
	}
}

// Add registers conditions and forecast under a query string (name or "lat,lon")
func (p *Provider) Add(query string, current models.CurrentConditions, forecast []models.ForecastSample) {
	key := strings.ToLower(query)
	p.Current[key] = current
	p.Forecast[key] = forecast
}

func (p *Provider) Name() string { return "Fake" }

func (p *Provider) FetchCurrent(ctx context.Context, query models.LocationQuery) (models.CurrentConditions, error) {
	p.mutex.Lock()
	p.currentCalls = append(p.currentCalls, query)
	p.mutex.Unlock()

	if p.Err != nil {
		return models.CurrentConditions{}, p.Err
	}
	current, ok := p.Current[strings.ToLower(query.String())]
	if !ok {
		return models.CurrentConditions{}, datasource.ErrNotFound
	}
	return current, nil
}

func (p *Provider) FetchForecast(ctx context.Context, query models.LocationQuery) ([]models.ForecastSample, error) {
	p.mutex.Lock()
	p.forecastCalls = append(p.forecastCalls, query)
	p.mutex.Unlock()

	if p.Err != nil {
		return nil, p.Err
	}
	forecast, ok := p.Forecast[strings.ToLower(query.String())]
	if !ok {
		return nil, datasource.ErrNotFound
	}
	return forecast, nil
}

// Calls returns the number of current and forecast requests seen so far
func (p *Provider) Calls() (current, forecast int) {
	p.mutex.Lock()
	defer p.mutex.Unlock()
	return len(p.currentCalls), len(p.forecastCalls)
}

// ForecastQueries returns the forecast queries in call order
func (p *Provider) ForecastQueries() []models.LocationQuery {
	p.mutex.Lock()
	defer p.mutex.Unlock()
	return append([]models.LocationQuery(nil), p.forecastCalls...)
}

var _ datasource.WeatherProvider = (*Provider)(nil)
