// Package config loads runtime configuration from environment
// variables. A .env file is honored when present (godotenv), which is
// how local development supplies the Booking API address without
// exporting anything.
package config

import (
	"log"
	"os"

	"github.com/joho/godotenv"
)

// Config holds every runtime value the kiosk needs. Strings only: the
// kiosk has no tunable numeric knobs, and optional integrations are
// signalled by leaving their variables empty.
type Config struct {
	Env           string // application environment (e.g. "dev", "prod")
	Port          string // HTTP port to listen on
	BookingAPIURL string // base URL of the external Booking API, e.g. "http://127.0.0.1:8080/api"
	JWTSecret     string // HMAC secret of the external Auth service, used only to read tokens
	RabbitURL     string // AMQP URL for confirmation events; empty disables publishing
}

// Load reads the .env file if one exists, then resolves all variables.
// Required variables are enforced by must(): a missing value aborts
// startup with a fatal log message rather than limping along
// misconfigured.
func Load() Config {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Printf("config: .env not loaded: %v", err)
	}
	return Config{
		Env:           must("APP_ENV"),
		Port:          must("APP_PORT"),
		BookingAPIURL: must("BOOKING_API_URL"),
		JWTSecret:     must("JWT_SECRET"),
		RabbitURL:     os.Getenv("RABBITMQ_URL"), // optional
	}
}

// must retrieves a required environment variable. If the variable is
// unset or empty the application logs a fatal error and exits.
func must(key string) string {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		log.Fatalf("missing required env var: %s", key)
	}
	return v
}
