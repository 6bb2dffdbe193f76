package main // Entry point for the booking kiosk facade

import (
	"context"
	"log"

	"github.com/labstack/echo/v4"

	"github.com/Dinhan123456/cinemahub-booking/internal/client"
	"github.com/Dinhan123456/cinemahub-booking/internal/config"
	"github.com/Dinhan123456/cinemahub-booking/internal/handler"
	"github.com/Dinhan123456/cinemahub-booking/internal/ledger"
	"github.com/Dinhan123456/cinemahub-booking/internal/queue"
	"github.com/Dinhan123456/cinemahub-booking/internal/router"
)

func main() {
	cfg := config.Load()

	// Ledger store: Redis when reachable, otherwise an in-memory map so
	// the kiosk still works in development without a server.
	var store ledger.Store
	if rdb := config.NewRedisClient(); rdb != nil {
		store = ledger.NewRedisStore(rdb)
		log.Printf("ledger: using redis store")
	} else {
		store = ledger.NewMemoryStore()
		log.Printf("ledger: redis unreachable, using in-memory store")
	}
	led := ledger.NewLedger(store)

	api := client.New(cfg.BookingAPIURL, nil)

	// Confirmation events are optional; without a broker URL the
	// publisher stays nil and bookings simply do not emit events.
	var publish func(ctx context.Context, ev queue.BookingConfirmedEvent) error
	if cfg.RabbitURL != "" {
		url := cfg.RabbitURL
		publish = func(ctx context.Context, ev queue.BookingConfirmedEvent) error {
			return queue.PublishBookingConfirmed(ctx, url, ev)
		}
		go func() {
			if err := queue.StartBookingConsumer(url); err != nil {
				log.Printf("booking-consumer stopped: %v", err)
			}
		}()
	}

	e := echo.New()
	router.RegisterRoutes(e,
		handler.NewCatalogHandler(api),
		handler.NewBookingHandler(api, led, publish),
		handler.NewHistoryHandler(led),
		cfg.JWTSecret,
	)

	addr := ":" + cfg.Port
	log.Printf("listening on %s (env=%s, api=%s)", addr, cfg.Env, cfg.BookingAPIURL)
	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}
