package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"weather-widget/api"
	"weather-widget/app"
	"weather-widget/datasource"
	"weather-widget/render"

	"github.com/joho/godotenv"
)

func main() {
	// Load environment variables from .env file
	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: Error loading .env file: %v", err)
	}

	port := flag.Int("port", 0, "Port to run the server on (overrides config)")
	configFile := flag.String("config", "config.json", "Path to configuration file (.json, .yaml)")
	enableRateLimiting := flag.Bool("rate-limit", false, "Enable API rate limiting")
	flag.Parse()

	config, err := datasource.LoadConfig(*configFile)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	if *port != 0 {
		config.Server.Port = *port
	}
	if *enableRateLimiting {
		config.RateLimit.Enabled = true
	}

	provider, err := app.NewProvider(config)
	if err != nil {
		log.Fatalf("Failed to create provider: %v", err)
	}

	sessions := api.NewSessionStore(provider, render.UnitsFor(config.OpenWeatherMap.Units))
	server := api.NewServer(sessions, config.Server.Port)

	shutdownChan := make(chan os.Signal, 1)
	signal.Notify(shutdownChan, syscall.SIGINT, syscall.SIGTERM)
	pruneDone := make(chan struct{})

	// Drop sessions whose page was closed
	idle := time.Duration(config.Server.SessionIdleMinutes) * time.Minute
	go func() {
		ticker := time.NewTicker(idle / 2)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				if n := sessions.PruneIdle(idle); n > 0 {
					log.Printf("Pruned %d idle sessions", n)
				}
			case <-pruneDone:
				return
			}
		}
	}()

	go func() {
		if err := server.Start(); err != nil {
			log.Printf("Server stopped: %v", err)
		}
	}()

	sig := <-shutdownChan
	log.Printf("Shutting down due to %s signal", sig)
	close(pruneDone)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		log.Printf("Error during shutdown: %v", err)
	}

	log.Println("Shutdown complete")
}
