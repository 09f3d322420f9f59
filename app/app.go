// Package app assembles providers and locators from configuration.
package app

import (
	"errors"
	"log"
	"time"

	"weather-widget/cache"
	"weather-widget/datasource"
	"weather-widget/geo"
	"weather-widget/providers/openweathermap"
)

// NewProvider builds the OpenWeatherMap provider with the optional rate limiter and cache
func NewProvider(config *datasource.Config) (datasource.WeatherProvider, error) {
	if config.OpenWeatherMap.APIKey == "" {
		return nil, errors.New("no OpenWeatherMap API key provided")
	}

	owm := openweathermap.New(config.OpenWeatherMap.APIKey, config.OpenWeatherMap.BaseURL, config.OpenWeatherMap.Units)
	if config.OpenWeatherMap.TimeoutSeconds > 0 {
		owm.SetTimeout(time.Duration(config.OpenWeatherMap.TimeoutSeconds) * time.Second)
	}

	var provider datasource.WeatherProvider = owm
	if config.RateLimit.Enabled {
		provider = datasource.NewRateLimitedProvider(provider, config.RateLimit.RPS, config.RateLimit.Burst)
		log.Printf("Applied rate limiting to %s (%.2f rps, burst %d)", owm.Name(), config.RateLimit.RPS, config.RateLimit.Burst)
	}
	if config.Cache.TTLSeconds > 0 {
		ttl := time.Duration(config.Cache.TTLSeconds) * time.Second
		provider = cache.NewCachedProvider(provider, ttl)
		log.Printf("Caching %s responses for %s", owm.Name(), ttl)
	}
	return provider, nil
}

// NewLocator returns the position source used by terminal clients
func NewLocator(config *datasource.Config) geo.Locator {
	switch config.Geolocation.Mode {
	case "static":
		return geo.Static(config.Geolocation.Latitude, config.Geolocation.Longitude)
	case "ip":
		return geo.NewIPLocator(config.Geolocation.IPLookupURL)
	default:
		return geo.Unsupported()
	}
}
