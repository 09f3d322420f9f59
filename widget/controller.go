// Package widget implements the add-location workflow behind the weather cards.
package widget

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"sync"

	"weather-widget/datasource"
	"weather-widget/geo"
	"weather-widget/models"
	"weather-widget/render"
)

// Notification texts shown to the user
const (
	MsgCityNotFound          = "City not found"
	MsgForecastNotFound      = "Forecast not found"
	MsgServiceUnreachable    = "Unable to reach the weather service"
	MsgGeolocationDenied     = "Geolocation access denied"
	MsgGeolocationMissing    = "Geolocation is not supported"
	MsgCurrentLocationFailed = "Unable to fetch weather for current location"
)

// State is the workflow state shown by the loading indicator
type State int

const (
	Idle State = iota
	Loading
)

func (s State) String() string {
	if s == Loading {
		return "loading"
	}
	return "idle"
}

// Display is the surface cards are appended to
type Display interface {
	AppendCard(card render.Card)
	SetLoading(loading bool)
}

// Notifier shows a blocking message to the user
type Notifier interface {
	Notify(message string)
}

// NotifierFunc adapts a function to Notifier
type NotifierFunc func(message string)

func (f NotifierFunc) Notify(message string) { f(message) }

// Failure is returned when an add fails. Message is what the user was shown.
type Failure struct {
	Message string
	Err     error
}

func (f *Failure) Error() string {
	return fmt.Sprintf("%s: %v", f.Message, f.Err)
}

func (f *Failure) Unwrap() error {
	return f.Err
}

// Controller owns one session and runs the add workflows against it
type Controller struct {
	provider datasource.WeatherProvider
	session  *Session
	display  Display
	notifier Notifier
	units    render.Units

	mutex   sync.Mutex
	loading int
}

// NewController creates a controller with a fresh session
func NewController(provider datasource.WeatherProvider, display Display, notifier Notifier, units render.Units) *Controller {
	return &Controller{
		provider: provider,
		session:  NewSession(),
		display:  display,
		notifier: notifier,
		units:    units,
	}
}

// Session returns the controller's session state
func (c *Controller) Session() *Session {
	return c.session
}

// State reports Loading while any add is running
func (c *Controller) State() State {
	c.mutex.Lock()
	defer c.mutex.Unlock()
	if c.loading > 0 {
		return Loading
	}
	return Idle
}

// Add looks up a typed city name and appends its card. Empty input and
// names already in the session are ignored without any network call; in
// that case both return values are nil.
func (c *Controller) Add(ctx context.Context, name string) (*render.Card, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, nil
	}
	key := Key(name)
	if !c.session.Begin(key) {
		return nil, nil
	}
	defer c.session.Release(key)

	c.startLoading()
	defer c.stopLoading()

	current, err := c.provider.FetchCurrent(ctx, models.ByName(name))
	if err != nil {
		return nil, c.fail(lookupMessage(err, MsgCityNotFound), err)
	}
	forecast, err := c.provider.FetchForecast(ctx, models.ByName(name))
	if err != nil {
		return nil, c.fail(lookupMessage(err, MsgForecastNotFound), err)
	}

	return c.commit(key, name, current, forecast), nil
}

// AddCurrentLocation resolves the device position and appends a card for
// the place the provider names there. The resolved name is used for the
// forecast lookup and the duplicate check.
func (c *Controller) AddCurrentLocation(ctx context.Context, locator geo.Locator) (*render.Card, error) {
	coords, err := locator.Locate(ctx)
	if err != nil {
		if errors.Is(err, geo.ErrPermissionDenied) {
			return nil, c.fail(MsgGeolocationDenied, err)
		}
		return nil, c.fail(MsgGeolocationMissing, err)
	}

	c.startLoading()
	defer c.stopLoading()

	current, err := c.provider.FetchCurrent(ctx, models.ByCoordinates(coords))
	if err != nil {
		return nil, c.fail(MsgCurrentLocationFailed, err)
	}

	name := current.Location
	key := Key(name)
	if key == "" {
		return nil, c.fail(MsgCurrentLocationFailed, errors.New("provider returned no location name"))
	}
	if !c.session.Begin(key) {
		return nil, nil
	}
	defer c.session.Release(key)

	forecast, err := c.provider.FetchForecast(ctx, models.ByName(name))
	if err != nil {
		return nil, c.fail(MsgCurrentLocationFailed, err)
	}

	return c.commit(key, name, current, forecast), nil
}

func (c *Controller) commit(key, title string, current models.CurrentConditions, forecast []models.ForecastSample) *render.Card {
	c.session.Commit(key)
	card := render.NewCard(title, current, forecast, c.units)
	if c.display != nil {
		c.display.AppendCard(card)
	}
	log.Printf("Added %s (%d forecast days)", title, len(forecast))
	return &card
}

func (c *Controller) fail(message string, err error) error {
	if c.notifier != nil {
		c.notifier.Notify(message)
	}
	return &Failure{Message: message, Err: err}
}

func (c *Controller) startLoading() {
	c.mutex.Lock()
	c.loading++
	first := c.loading == 1
	c.mutex.Unlock()
	if first && c.display != nil {
		c.display.SetLoading(true)
	}
}

func (c *Controller) stopLoading() {
	c.mutex.Lock()
	c.loading--
	last := c.loading == 0
	c.mutex.Unlock()
	if last && c.display != nil {
		c.display.SetLoading(false)
	}
}

// lookupMessage picks the not-found text for the failing endpoint
func lookupMessage(err error, notFound string) string {
	if errors.Is(err, datasource.ErrNotFound) {
		return notFound
	}
	return MsgServiceUnreachable
}
