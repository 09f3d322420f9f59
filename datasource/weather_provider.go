package datasource

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"weather-widget/models"

	"gopkg.in/yaml.v3"
)

// WeatherProvider is an interface for services that can fetch current conditions and forecasts
type WeatherProvider interface {
	// FetchCurrent fetches current conditions for a location name or coordinates
	FetchCurrent(ctx context.Context, query models.LocationQuery) (models.CurrentConditions, error)

	// FetchForecast fetches one sample per day for the next days, at most three
	FetchForecast(ctx context.Context, query models.LocationQuery) ([]models.ForecastSample, error)

	// Name returns the provider's name
	Name() string
}

// Upstream endpoints used when the configuration leaves them empty
const (
	DefaultOpenWeatherMapURL = "https://api.openweathermap.org/data/2.5"
	DefaultIPLookupURL       = "http://ip-api.com/json"
)

// Unit systems accepted by the upstream API
const (
	UnitsMetric   = "metric"
	UnitsImperial = "imperial"
)

// Config represents the application configuration
type Config struct {
	OpenWeatherMap struct {
		APIKey         string `json:"apiKey" yaml:"apiKey"`
		BaseURL        string `json:"baseURL" yaml:"baseURL"`
		Units          string `json:"units" yaml:"units"`
		TimeoutSeconds int    `json:"timeoutSeconds" yaml:"timeoutSeconds"` // 0 disables the client timeout
	} `json:"openWeatherMap" yaml:"openWeatherMap"`

	RateLimit struct {
		Enabled bool    `json:"enabled" yaml:"enabled"`
		RPS     float64 `json:"rps" yaml:"rps"`
		Burst   int     `json:"burst" yaml:"burst"`
	} `json:"rateLimit" yaml:"rateLimit"`

	Cache struct {
		TTLSeconds int `json:"ttlSeconds" yaml:"ttlSeconds"` // 0 disables caching
	} `json:"cache" yaml:"cache"`

	Geolocation struct {
		// Mode is one of "ip", "static" or "none"
		Mode        string  `json:"mode" yaml:"mode"`
		Latitude    float64 `json:"latitude" yaml:"latitude"`
		Longitude   float64 `json:"longitude" yaml:"longitude"`
		IPLookupURL string  `json:"ipLookupURL" yaml:"ipLookupURL"`
	} `json:"geolocation" yaml:"geolocation"`

	Server struct {
		Port               int `json:"port" yaml:"port"`
		SessionIdleMinutes int `json:"sessionIdleMinutes" yaml:"sessionIdleMinutes"`
	} `json:"server" yaml:"server"`
}

// LoadConfig loads configuration from a JSON or YAML file. A missing file
// yields the default configuration. Environment variables override the file.
func LoadConfig(filename string) (*Config, error) {
	config := DefaultConfig()

	data, err := os.ReadFile(filename)
	switch {
	case errors.Is(err, os.ErrNotExist):
	case err != nil:
		return nil, fmt.Errorf("failed to read config: %w", err)
	default:
		switch strings.ToLower(filepath.Ext(filename)) {
		case ".yaml", ".yml":
			err = yaml.Unmarshal(data, config)
		default:
			err = json.Unmarshal(data, config)
		}
		if err != nil {
			return nil, fmt.Errorf("failed to parse config %s: %w", filename, err)
		}
	}

	config.applyEnv()
	if err := config.Validate(); err != nil {
		return nil, err
	}
	return config, nil
}

// DefaultConfig creates a default configuration
func DefaultConfig() *Config {
	config := &Config{}
	config.OpenWeatherMap.BaseURL = DefaultOpenWeatherMapURL
	config.OpenWeatherMap.Units = UnitsMetric
	config.RateLimit.RPS = 1.0
	config.RateLimit.Burst = 5
	config.Geolocation.Mode = "ip"
	config.Geolocation.IPLookupURL = DefaultIPLookupURL
	config.Server.Port = 8080
	config.Server.SessionIdleMinutes = 60
	return config
}

func (c *Config) applyEnv() {
	if key := os.Getenv("OPENWEATHERMAP_API_KEY"); key != "" {
		c.OpenWeatherMap.APIKey = key
	}
	if units := os.Getenv("WEATHER_UNITS"); units != "" {
		c.OpenWeatherMap.Units = units
	}
}

// Validate checks the settings that have no sensible fallback
func (c *Config) Validate() error {
	switch c.OpenWeatherMap.Units {
	case UnitsMetric, UnitsImperial:
	default:
		return fmt.Errorf("unsupported units %q", c.OpenWeatherMap.Units)
	}
	switch c.Geolocation.Mode {
	case "ip", "static", "none":
	default:
		return fmt.Errorf("unsupported geolocation mode %q", c.Geolocation.Mode)
	}
	if c.Server.SessionIdleMinutes <= 0 {
		return errors.New("server.sessionIdleMinutes must be positive")
	}
	if c.RateLimit.Enabled && (c.RateLimit.RPS <= 0 || c.RateLimit.Burst <= 0) {
		return errors.New("rate limit requires positive rps and burst")
	}
	return nil
}
