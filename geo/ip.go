package geo

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	"weather-widget/datasource"
	"weather-widget/models"

	"github.com/go-resty/resty/v2"
)

// DefaultIPLookupURL answers with the caller's approximate position
const DefaultIPLookupURL = datasource.DefaultIPLookupURL

// IPLocator approximates the current position from the public IP address
type IPLocator struct {
	url    string
	client *resty.Client
}

// NewIPLocator creates a locator querying the given ip-api compatible endpoint
func NewIPLocator(url string) *IPLocator {
	if url == "" {
		url = DefaultIPLookupURL
	}
	return &IPLocator{
		url:    url,
		client: resty.New().SetHeader("Accept", "application/json"),
	}
}

type ipResponse struct {
	Status  string  `json:"status"`
	Message string  `json:"message"`
	Lat     float64 `json:"lat"`
	Lon     float64 `json:"lon"`
	City    string  `json:"city"`
}

// Locate asks the lookup service for a position. Every failure is reported
// as ErrUnsupported since the host has no other position source.
func (l *IPLocator) Locate(ctx context.Context) (models.Coordinates, error) {
	resp, err := l.client.R().SetContext(ctx).Get(l.url)
	if err != nil {
		return models.Coordinates{}, fmt.Errorf("%w: ip lookup: %w", ErrUnsupported, err)
	}
	if !resp.IsSuccess() {
		return models.Coordinates{}, fmt.Errorf("%w: ip lookup returned %s", ErrUnsupported, resp.Status())
	}

	var data ipResponse
	if err := json.Unmarshal(resp.Body(), &data); err != nil {
		return models.Coordinates{}, fmt.Errorf("%w: failed to parse ip lookup: %w", ErrUnsupported, err)
	}
	if data.Status != "success" {
		return models.Coordinates{}, fmt.Errorf("%w: ip lookup failed: %s", ErrUnsupported, data.Message)
	}

	log.Printf("Resolved IP position near %s (%.4f, %.4f)", data.City, data.Lat, data.Lon)
	return models.Coordinates{Latitude: data.Lat, Longitude: data.Lon}, nil
}
