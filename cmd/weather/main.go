package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"strings"

	"weather-widget/app"
	"weather-widget/datasource"
	"weather-widget/geo"
	"weather-widget/render"
	"weather-widget/widget"

	"github.com/joho/godotenv"
)

// terminal prints cards to out and loading state and notifications to errOut
type terminal struct {
	out    io.Writer
	errOut io.Writer
}

func (t terminal) AppendCard(card render.Card) {
	if err := render.Text(t.out, card); err != nil {
		log.Printf("Error printing card: %v", err)
	}
	fmt.Fprintln(t.out)
}

func (t terminal) SetLoading(loading bool) {
	if loading {
		fmt.Fprintln(t.errOut, "Loading...")
	}
}

func (t terminal) Notify(message string) {
	fmt.Fprintf(t.errOut, "! %s\n", message)
}

// run reads one command per line until :quit or end of input
func run(ctx context.Context, in io.Reader, out io.Writer, controller *widget.Controller, locator geo.Locator) {
	fmt.Fprintln(out, "Enter a city name, :here for your current location, :list or :quit.")

	scanner := bufio.NewScanner(in)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		switch line {
		case "":
			continue
		case ":quit", ":q":
			return
		case ":list":
			for _, key := range controller.Session().Keys() {
				fmt.Fprintln(out, key)
			}
		case ":here":
			// failures were already shown by the notifier
			_, _ = controller.AddCurrentLocation(ctx, locator)
		default:
			_, _ = controller.Add(ctx, line)
		}
	}
}

func main() {
	// Load environment variables from .env file
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Printf("Warning: Error loading .env file: %v", err)
	}

	configFile := flag.String("config", "config.json", "Path to configuration file (.json, .yaml)")
	units := flag.String("units", "", "Unit system: metric or imperial (overrides config)")
	debug := flag.Bool("debug", false, "Log provider activity to stderr")
	flag.Parse()

	if !*debug {
		log.SetOutput(io.Discard)
	}

	config, err := datasource.LoadConfig(*configFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if *units != "" {
		config.OpenWeatherMap.Units = *units
		if err := config.Validate(); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	}

	provider, err := app.NewProvider(config)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		fmt.Fprintln(os.Stderr, "Please set the OpenWeatherMap API key, either via OPENWEATHERMAP_API_KEY or the config file")
		os.Exit(1)
	}

	term := terminal{out: os.Stdout, errOut: os.Stderr}
	controller := widget.NewController(provider, term, term, render.UnitsFor(config.OpenWeatherMap.Units))

	// Extra arguments are added before reading stdin
	ctx := context.Background()
	for _, city := range flag.Args() {
		_, _ = controller.Add(ctx, city)
	}

	run(ctx, os.Stdin, os.Stdout, controller, app.NewLocator(config))
}
