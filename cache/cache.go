package cache

import (
	"context"
	"log"
	"strings"
	"sync"
	"time"

	"weather-widget/datasource"
	"weather-widget/models"

	gocache "github.com/patrickmn/go-cache"
)

// CachedProvider wraps a WeatherProvider and keeps responses for a fixed duration
type CachedProvider struct {
	provider       datasource.WeatherProvider
	store          *gocache.Cache
	mutex          sync.Mutex
	cacheHitCount  int
	cacheMissCount int
}

// NewCachedProvider creates a new cached wrapper around a provider
func NewCachedProvider(provider datasource.WeatherProvider, cacheDuration time.Duration) *CachedProvider {
	return &CachedProvider{
		provider: provider,
		store:    gocache.New(cacheDuration, 2*cacheDuration),
	}
}

// Name returns the name of the underlying provider with [Cached] suffix
func (c *CachedProvider) Name() string {
	return c.provider.Name() + " [Cached]"
}

// cacheKey folds case so "Paris" and "paris" share an entry
func cacheKey(kind string, query models.LocationQuery) string {
	return kind + ":" + strings.ToLower(query.String())
}

// FetchCurrent fetches current conditions, using the cache when available
func (c *CachedProvider) FetchCurrent(ctx context.Context, query models.LocationQuery) (models.CurrentConditions, error) {
	key := cacheKey("current", query)
	if cached, found := c.store.Get(key); found {
		c.hit(key)
		return cached.(models.CurrentConditions), nil
	}
	c.miss(key)

	data, err := c.provider.FetchCurrent(ctx, query)
	if err != nil {
		return models.CurrentConditions{}, err
	}
	c.store.Set(key, data, gocache.DefaultExpiration)
	return data, nil
}

// FetchForecast fetches forecast samples, using the cache when available
func (c *CachedProvider) FetchForecast(ctx context.Context, query models.LocationQuery) ([]models.ForecastSample, error) {
	key := cacheKey("forecast", query)
	if cached, found := c.store.Get(key); found {
		c.hit(key)
		samples := cached.([]models.ForecastSample)
		return append([]models.ForecastSample(nil), samples...), nil
	}
	c.miss(key)

	samples, err := c.provider.FetchForecast(ctx, query)
	if err != nil {
		return nil, err
	}
	c.store.Set(key, append([]models.ForecastSample(nil), samples...), gocache.DefaultExpiration)
	return samples, nil
}

func (c *CachedProvider) hit(key string) {
	c.mutex.Lock()
	c.cacheHitCount++
	c.mutex.Unlock()
	log.Printf("Cache HIT for %s from %s", key, c.provider.Name())
}

func (c *CachedProvider) miss(key string) {
	c.mutex.Lock()
	c.cacheMissCount++
	c.mutex.Unlock()
	log.Printf("Cache MISS for %s from %s, fetching fresh data...", key, c.provider.Name())
}

// CacheStats returns statistics about cache hits and misses
func (c *CachedProvider) CacheStats() (hits, misses int) {
	c.mutex.Lock()
	defer c.mutex.Unlock()
	return c.cacheHitCount, c.cacheMissCount
}

// Ensure CachedProvider implements the WeatherProvider interface
var _ datasource.WeatherProvider = (*CachedProvider)(nil)
