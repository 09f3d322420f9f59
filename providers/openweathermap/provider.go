package openweathermap

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strconv"
	"time"

	"weather-widget/datasource"
	"weather-widget/models"

	"github.com/go-resty/resty/v2"
)

// DefaultBaseURL is the OpenWeatherMap 2.5 API root
const DefaultBaseURL = datasource.DefaultOpenWeatherMapURL

// Provider talks to the OpenWeatherMap current weather and 5 day / 3 hour forecast endpoints
type Provider struct {
	apiKey string
	units  string
	client *resty.Client
}

// Ensure Provider implements datasource.WeatherProvider
var _ datasource.WeatherProvider = (*Provider)(nil)

// New creates an OpenWeatherMap provider. An empty baseURL selects DefaultBaseURL
// and empty units selects metric.
func New(apiKey, baseURL, units string) *Provider {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if units == "" {
		units = datasource.UnitsMetric
	}
	return &Provider{
		apiKey: apiKey,
		units:  units,
		client: resty.New().
			SetBaseURL(baseURL).
			SetHeader("Accept", "application/json"),
	}
}

// SetTimeout limits each request; zero means no timeout
func (p *Provider) SetTimeout(timeout time.Duration) {
	p.client.SetTimeout(timeout)
}

// Name returns the provider name
func (p *Provider) Name() string {
	return "OpenWeatherMap"
}

// currentResponse represents the /weather response structure
type currentResponse struct {
	Coord struct {
		Lat float64 `json:"lat"`
		Lon float64 `json:"lon"`
	} `json:"coord"`
	Weather []struct {
		Main        string `json:"main"`
		Description string `json:"description"`
	} `json:"weather"`
	Main struct {
		Temp      float64 `json:"temp"`
		FeelsLike float64 `json:"feels_like"`
		Humidity  int     `json:"humidity"`
	} `json:"main"`
	Wind struct {
		Speed float64 `json:"speed"`
	} `json:"wind"`
	Dt       int64  `json:"dt"`
	Timezone int    `json:"timezone"`
	Name     string `json:"name"`
}

// FetchCurrent fetches current conditions by name or coordinates.
// Any non-success status is reported as datasource.ErrNotFound.
func (p *Provider) FetchCurrent(ctx context.Context, query models.LocationQuery) (models.CurrentConditions, error) {
	var resp currentResponse
	if err := p.get(ctx, "/weather", query, &resp); err != nil {
		return models.CurrentConditions{}, err
	}

	data := models.CurrentConditions{
		Location: resp.Name,
		Coordinates: models.Coordinates{
			Latitude:  resp.Coord.Lat,
			Longitude: resp.Coord.Lon,
		},
		Temperature: resp.Main.Temp,
		FeelsLike:   resp.Main.FeelsLike,
		Humidity:    resp.Main.Humidity,
		WindSpeed:   resp.Wind.Speed,
		Timestamp:   time.Unix(resp.Dt, 0).In(time.FixedZone("", resp.Timezone)),
	}
	if len(resp.Weather) > 0 {
		data.Category = models.Category(resp.Weather[0].Main)
		data.Description = resp.Weather[0].Description
	}
	return data, nil
}

// get issues one request and decodes the body into target
func (p *Provider) get(ctx context.Context, path string, query models.LocationQuery, target interface{}) error {
	params := map[string]string{
		"appid": p.apiKey,
		"units": p.units,
	}
	if query.IsCoordinates() {
		params["lat"] = strconv.FormatFloat(query.Coordinates.Latitude, 'f', -1, 64)
		params["lon"] = strconv.FormatFloat(query.Coordinates.Longitude, 'f', -1, 64)
	} else {
		params["q"] = query.Name
	}

	resp, err := p.client.R().
		SetContext(ctx).
		SetQueryParams(params).
		Get(path)
	if err != nil {
		return fmt.Errorf("%w: failed to execute request: %w", datasource.ErrNetwork, err)
	}

	if !resp.IsSuccess() {
		log.Printf("%s %s for %q returned status %d", p.Name(), path, query.String(), resp.StatusCode())
		return fmt.Errorf("%w: %s (status %d)", datasource.ErrNotFound, query.String(), resp.StatusCode())
	}

	if err := json.Unmarshal(resp.Body(), target); err != nil {
		return fmt.Errorf("%w: failed to parse API response: %w", datasource.ErrNetwork, err)
	}
	return nil
}
