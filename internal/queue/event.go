// Package queue defines message payloads exchanged over the message broker.
package queue

import (
	"time"

	"github.com/Dinhan123456/cinemahub-booking/internal/model"
)

// BookingConfirmedEvent is published after a booking is confirmed and
// recorded in the ledger. It carries enough for downstream consumers
// to notify or log without reading the ledger themselves.
type BookingConfirmedEvent struct {
	BookingID     string   `json:"booking_id"`
	BookingCode   string   `json:"booking_code"`
	Username      string   `json:"username"`
	MovieTitle    string   `json:"movie_title"`
	Showtime      string   `json:"showtime"`
	Seats         []string `json:"seats"`
	TotalPrice    int64    `json:"total_price"`
	CustomerEmail string   `json:"customer_email"`
	ConfirmedAt   string   `json:"confirmed_at"`
}

// EventFromRecord builds the publishable event for a fresh record.
func EventFromRecord(username string, rec model.BookingRecord) BookingConfirmedEvent {
	return BookingConfirmedEvent{
		BookingID:     rec.ID,
		BookingCode:   rec.BookingCode,
		Username:      username,
		MovieTitle:    rec.Movie.Title,
		Showtime:      rec.Showtime,
		Seats:         rec.Seats,
		TotalPrice:    rec.TotalPrice,
		CustomerEmail: rec.CustomerEmail,
		ConfirmedAt:   rec.BookingDate.UTC().Format(time.RFC3339),
	}
}
