package booking

import (
	"context"
	"errors"
	"log"

	"github.com/Dinhan123456/cinemahub-booking/internal/client"
	"github.com/Dinhan123456/cinemahub-booking/internal/model"
	"github.com/Dinhan123456/cinemahub-booking/internal/validate"
)

// ErrConfirmInFlight is returned when Confirm is called while a prior
// attempt is still outstanding. The duplicate call is dropped; it is
// never forwarded to the backend.
var ErrConfirmInFlight = errors.New("booking confirmation already in flight")

// Confirm runs the full submission path for the current state:
//
//  1. validate everything and abort with the aggregated FieldErrors;
//  2. compose the request and submit it to the backend;
//  3. build a CONFIRMED BookingRecord around the server-issued code;
//  4. append the record to the ledger under this session's user;
//  5. hand the record back to the caller for display or navigation.
//
// Backend field rejections come back as validate.FieldErrors just like
// local ones; transport failures come back as *client.RequestError and
// leave the ledger untouched. A failed ledger write is logged but does
// not fail the confirmation, since the backend has already committed
// the booking.
func (s *Session) Confirm(ctx context.Context) (model.BookingRecord, error) {
	s.mu.Lock()
	if s.confirming {
		s.mu.Unlock()
		return model.BookingRecord{}, ErrConfirmInFlight
	}
	if errs := s.validateLocked(); len(errs) > 0 {
		s.mu.Unlock()
		return model.BookingRecord{}, errs
	}
	s.confirming = true
	showtime := *s.current
	seats := make([]string, len(s.selected))
	copy(seats, s.selected)
	customer := s.customer
	total := s.totalLocked()
	movie := s.movie
	s.mu.Unlock()

	defer func() {
		s.mu.Lock()
		s.confirming = false
		s.mu.Unlock()
	}()

	code, err := s.api.SubmitBooking(ctx, client.BookingRequest{
		MovieID:    movie.ID,
		ShowtimeID: showtime.ID,
		Showtime:   showtime.Display(),
		Seats:      seats,
		Name:       customer.Name,
		Email:      customer.Email,
		Phone:      customer.Phone,
	})
	if err != nil {
		var verr *client.ValidationError
		if errors.As(err, &verr) {
			errs := validate.FieldErrors{}
			errs.Merge(verr.Fields)
			return model.BookingRecord{}, errs
		}
		return model.BookingRecord{}, err
	}

	record := model.BookingRecord{
		ID:            s.NewID(),
		BookingCode:   code,
		Movie:         movie,
		Showtime:      showtime.Display(),
		ShowtimeStart: showtime.StartTime,
		Seats:         seats,
		TotalPrice:    total,
		CustomerName:  customer.Name,
		CustomerEmail: customer.Email,
		CustomerPhone: customer.Phone,
		BookingDate:   s.Now(),
		Status:        model.StatusConfirmed,
	}
	if err := s.ledger.Append(ctx, s.username, record); err != nil {
		log.Printf("booking: ledger append for %s failed: %v", s.username, err)
	}
	return record, nil
}
