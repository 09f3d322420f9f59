package widget

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"weather-widget/datasource"
	"weather-widget/datasource/datasourcetest"
	"weather-widget/geo"
	"weather-widget/models"
	"weather-widget/render"
)

type recorder struct {
	mutex         sync.Mutex
	cards         []render.Card
	notifications []string
	loading       []bool
}

func (r *recorder) AppendCard(card render.Card) {
	r.mutex.Lock()
	defer r.mutex.Unlock()
	r.cards = append(r.cards, card)
}

func (r *recorder) SetLoading(loading bool) {
	r.mutex.Lock()
	defer r.mutex.Unlock()
	r.loading = append(r.loading, loading)
}

func (r *recorder) Notify(message string) {
	r.mutex.Lock()
	defer r.mutex.Unlock()
	r.notifications = append(r.notifications, message)
}

func parisProvider() *datasourcetest.Provider {
	fake := datasourcetest.New()
	start := time.Date(2026, 10, 16, 12, 0, 0, 0, time.UTC)
	fake.Add("Paris",
		models.CurrentConditions{
			Location:    "Paris",
			Temperature: 20,
			FeelsLike:   19,
			Humidity:    60,
			WindSpeed:   3,
			Category:    models.CategoryClear,
			Description: "clear sky",
		},
		[]models.ForecastSample{
			{Timestamp: start, Temperature: 21, Category: models.CategoryClear},
			{Timestamp: start.Add(24 * time.Hour), Temperature: 18, Category: models.CategoryClouds},
			{Timestamp: start.Add(48 * time.Hour), Temperature: 16, Category: models.CategoryRain},
		})
	return fake
}

func newTestController(p datasource.WeatherProvider) (*Controller, *recorder) {
	rec := &recorder{}
	return NewController(p, rec, rec, render.UnitsFor("metric")), rec
}

func TestAddParis(t *testing.T) {
	c, rec := newTestController(parisProvider())

	card, err := c.Add(context.Background(), "Paris")
	if err != nil {
		t.Fatalf("Add failed: %v", err)
	}
	if card == nil {
		t.Fatal("expected a card")
	}
	if len(rec.cards) != 1 {
		t.Fatalf("expected one rendered card, got %d", len(rec.cards))
	}

	got := rec.cards[0]
	if got.Title != "Paris" || got.Temperature != "20°C" || got.Category != "Clear" || got.Humidity != "60%" || got.Wind != "3 m/s" {
		t.Fatalf("unexpected card: %+v", got)
	}
	if len(got.Forecast) != 3 {
		t.Fatalf("expected 3 forecast entries, got %d", len(got.Forecast))
	}
	if keys := c.Session().Keys(); len(keys) != 1 || keys[0] != "paris" {
		t.Fatalf("unexpected session keys %v", keys)
	}
	if len(rec.notifications) != 0 {
		t.Fatalf("unexpected notifications %v", rec.notifications)
	}
}

func TestAddSameCityDifferentCaseIsNoOp(t *testing.T) {
	fake := parisProvider()
	c, rec := newTestController(fake)
	ctx := context.Background()

	if _, err := c.Add(ctx, "Paris"); err != nil {
		t.Fatalf("first Add failed: %v", err)
	}
	for _, name := range []string{"paris", "PARIS", "  Paris  ", "Paris"} {
		card, err := c.Add(ctx, name)
		if card != nil || err != nil {
			t.Fatalf("Add(%q): expected no-op, got %v, %v", name, card, err)
		}
	}

	if len(rec.cards) != 1 {
		t.Fatalf("expected exactly one card, got %d", len(rec.cards))
	}
	if currentCalls, forecastCalls := fake.Calls(); currentCalls != 1 || forecastCalls != 1 {
		t.Fatalf("duplicate adds must not reach the network, got %d/%d calls", currentCalls, forecastCalls)
	}
}

func TestAddUnknownCity(t *testing.T) {
	c, rec := newTestController(parisProvider())

	card, err := c.Add(context.Background(), "Nowhereville")
	if card != nil {
		t.Fatal("expected no card")
	}
	var failure *Failure
	if !errors.As(err, &failure) || failure.Message != MsgCityNotFound {
		t.Fatalf("expected %q failure, got %v", MsgCityNotFound, err)
	}
	if !errors.Is(err, datasource.ErrNotFound) {
		t.Fatalf("failure should wrap ErrNotFound: %v", err)
	}
	if len(rec.notifications) != 1 || rec.notifications[0] != MsgCityNotFound {
		t.Fatalf("unexpected notifications %v", rec.notifications)
	}
	if len(rec.cards) != 0 || len(c.Session().Keys()) != 0 {
		t.Fatal("failed add must not change state")
	}
	if c.State() != Idle {
		t.Fatalf("expected idle after failure, got %s", c.State())
	}

	// the key is not burned by the failure
	if c.Session().Has(Key("Nowhereville")) {
		t.Fatal("failed key must not be committed")
	}
}

func TestAddForecastFailure(t *testing.T) {
	fake := parisProvider()
	delete(fake.Forecast, "paris")
	c, rec := newTestController(fake)

	_, err := c.Add(context.Background(), "Paris")
	var failure *Failure
	if !errors.As(err, &failure) || failure.Message != MsgForecastNotFound {
		t.Fatalf("expected %q failure, got %v", MsgForecastNotFound, err)
	}
	if len(rec.cards) != 0 || c.Session().Has("paris") {
		t.Fatal("failed add must not change state")
	}
}

func TestAddNetworkFailure(t *testing.T) {
	fake := parisProvider()
	fake.Err = datasource.ErrNetwork
	c, rec := newTestController(fake)

	if _, err := c.Add(context.Background(), "Paris"); err == nil {
		t.Fatal("expected error")
	}
	if len(rec.notifications) != 1 || rec.notifications[0] != MsgServiceUnreachable {
		t.Fatalf("unexpected notifications %v", rec.notifications)
	}
}

func TestAddEmptyInputIgnored(t *testing.T) {
	fake := parisProvider()
	c, rec := newTestController(fake)

	card, err := c.Add(context.Background(), "   ")
	if card != nil || err != nil {
		t.Fatalf("expected no-op, got %v, %v", card, err)
	}
	if currentCalls, _ := fake.Calls(); currentCalls != 0 || len(rec.loading) != 0 {
		t.Fatal("empty input must not start loading")
	}
}

func TestLoadingIndicatorToggles(t *testing.T) {
	c, rec := newTestController(parisProvider())

	_, _ = c.Add(context.Background(), "Paris")
	_, _ = c.Add(context.Background(), "Nowhereville")

	want := []bool{true, false, true, false}
	if len(rec.loading) != len(want) {
		t.Fatalf("expected loading transitions %v, got %v", want, rec.loading)
	}
	for i := range want {
		if rec.loading[i] != want[i] {
			t.Fatalf("expected loading transitions %v, got %v", want, rec.loading)
		}
	}
	if c.State() != Idle {
		t.Fatalf("expected idle, got %s", c.State())
	}
}

func TestGeolocationDenied(t *testing.T) {
	fake := parisProvider()
	c, rec := newTestController(fake)

	_, err := c.AddCurrentLocation(context.Background(), geo.Denied())
	if !errors.Is(err, geo.ErrPermissionDenied) {
		t.Fatalf("expected ErrPermissionDenied, got %v", err)
	}
	if len(rec.notifications) != 1 || rec.notifications[0] != MsgGeolocationDenied {
		t.Fatalf("unexpected notifications %v", rec.notifications)
	}
	if currentCalls, forecastCalls := fake.Calls(); currentCalls != 0 || forecastCalls != 0 {
		t.Fatal("denied geolocation must not issue network calls")
	}
	if len(rec.loading) != 0 || len(rec.cards) != 0 {
		t.Fatal("denied geolocation must not load or render")
	}
}

func TestGeolocationUnsupported(t *testing.T) {
	fake := parisProvider()
	c, rec := newTestController(fake)

	if _, err := c.AddCurrentLocation(context.Background(), geo.Unsupported()); !errors.Is(err, geo.ErrUnsupported) {
		t.Fatalf("expected ErrUnsupported, got %v", err)
	}
	if len(rec.notifications) != 1 || rec.notifications[0] != MsgGeolocationMissing {
		t.Fatalf("unexpected notifications %v", rec.notifications)
	}
	if currentCalls, _ := fake.Calls(); currentCalls != 0 {
		t.Fatal("unsupported geolocation must not issue network calls")
	}
}

func TestGeolocationUsesResolvedName(t *testing.T) {
	fake := parisProvider()
	coords := models.Coordinates{Latitude: 48.85, Longitude: 2.35}
	fake.Current[models.ByCoordinates(coords).String()] = fake.Current["paris"]
	c, rec := newTestController(fake)

	card, err := c.AddCurrentLocation(context.Background(), geo.Static(coords.Latitude, coords.Longitude))
	if err != nil {
		t.Fatalf("AddCurrentLocation failed: %v", err)
	}
	if card == nil || card.Title != "Paris" {
		t.Fatalf("expected Paris card, got %+v", card)
	}
	queries := fake.ForecastQueries()
	if len(queries) != 1 || queries[0].IsCoordinates() || queries[0].Name != "Paris" {
		t.Fatalf("forecast must use the resolved name, got %+v", queries)
	}

	// a typed add of the same place is now a duplicate
	if card, err := c.Add(context.Background(), "paris"); card != nil || err != nil {
		t.Fatalf("expected no-op, got %v, %v", card, err)
	}
	if len(rec.cards) != 1 {
		t.Fatalf("expected one card, got %d", len(rec.cards))
	}
}

func TestGeolocationAlreadyAdded(t *testing.T) {
	fake := parisProvider()
	coords := models.Coordinates{Latitude: 48.85, Longitude: 2.35}
	fake.Current[models.ByCoordinates(coords).String()] = fake.Current["paris"]
	c, rec := newTestController(fake)

	if _, err := c.Add(context.Background(), "Paris"); err != nil {
		t.Fatalf("Add failed: %v", err)
	}
	card, err := c.AddCurrentLocation(context.Background(), geo.Position(coords))
	if card != nil || err != nil {
		t.Fatalf("expected no-op, got %v, %v", card, err)
	}
	if _, forecastCalls := fake.Calls(); forecastCalls != 1 {
		t.Fatalf("duplicate location must skip the forecast call, got %d", forecastCalls)
	}
	if len(rec.cards) != 1 || c.State() != Idle {
		t.Fatal("expected one card and idle state")
	}
}

func TestGeolocationFetchFailure(t *testing.T) {
	c, rec := newTestController(parisProvider())

	_, err := c.AddCurrentLocation(context.Background(), geo.Static(0, 0))
	var failure *Failure
	if !errors.As(err, &failure) || failure.Message != MsgCurrentLocationFailed {
		t.Fatalf("expected %q failure, got %v", MsgCurrentLocationFailed, err)
	}
	if len(rec.cards) != 0 || len(c.Session().Keys()) != 0 {
		t.Fatal("failed add must not change state")
	}
}

// blockingProvider holds FetchCurrent until release is closed
type blockingProvider struct {
	*datasourcetest.Provider
	started chan struct{}
	release chan struct{}
}

func (b *blockingProvider) FetchCurrent(ctx context.Context, q models.LocationQuery) (models.CurrentConditions, error) {
	b.started <- struct{}{}
	<-b.release
	return b.Provider.FetchCurrent(ctx, q)
}

func TestConcurrentAddsOfSameCityFetchOnce(t *testing.T) {
	bp := &blockingProvider{
		Provider: parisProvider(),
		started:  make(chan struct{}, 2),
		release:  make(chan struct{}),
	}
	c, rec := newTestController(bp)

	done := make(chan struct{})
	go func() {
		defer close(done)
		_, _ = c.Add(context.Background(), "Paris")
	}()
	<-bp.started

	if c.State() != Loading {
		t.Fatalf("expected loading while fetch is in flight, got %s", c.State())
	}
	card, err := c.Add(context.Background(), "paris")
	if card != nil || err != nil {
		t.Fatalf("in-flight duplicate should be a no-op, got %v, %v", card, err)
	}

	close(bp.release)
	<-done

	if len(rec.cards) != 1 {
		t.Fatalf("expected one card, got %d", len(rec.cards))
	}
}
