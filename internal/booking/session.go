// Package booking implements the seat-selection and confirmation core
// of the storefront. A Session models one booking attempt: the chosen
// showtime, the seats the user has toggled on, the sold seats mirrored
// from the backend, and the customer's contact details. The session is
// discarded when the flow exits; switching showtime resets it to a
// fresh seat selection.
package booking

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/Dinhan123456/cinemahub-booking/internal/client"
	"github.com/Dinhan123456/cinemahub-booking/internal/ledger"
	"github.com/Dinhan123456/cinemahub-booking/internal/model"
	"github.com/Dinhan123456/cinemahub-booking/internal/validate"
)

// API is the slice of the Booking API client the session needs. The
// concrete *client.Client satisfies it; tests substitute fakes.
type API interface {
	FetchSeatStates(ctx context.Context, showtimeID int64) ([]model.SeatState, error)
	SubmitBooking(ctx context.Context, req client.BookingRequest) (string, error)
}

// State names the phase a session is in. There is no terminal state:
// the machine falls back to ShowtimeSelected whenever the seat
// selection empties or the showtime changes.
type State int

const (
	NoShowtime State = iota
	ShowtimeSelected
	SeatsChosen
)

var (
	// ErrSeatSold is returned by ToggleSeat for a seat the backend has
	// already sold. The selection is left unchanged.
	ErrSeatSold = errors.New("seat already sold")
	// ErrUnknownSeat is returned for codes outside the fixed A1–E8 space.
	ErrUnknownSeat = errors.New("unknown seat code")
)

// Session is one booking attempt. All methods are safe for concurrent
// use: UI callbacks and seat-fetch completions may interleave.
type Session struct {
	api      API
	ledger   *ledger.Ledger
	username string

	// NewID generates local record ids; Now supplies the confirmation
	// wall-clock instant. Both exist so tests can pin them.
	NewID func() string
	Now   func() time.Time

	mu         sync.Mutex
	movie      model.Movie
	showtimes  []model.Showtime
	current    *model.Showtime
	selected   []string            // selection order preserved
	selectedIx map[string]struct{} // membership index over selected
	sold       map[string]struct{}
	customer   validate.CustomerInfo
	confirming bool
}

// NewSession starts a booking attempt for one movie. The showtimes
// list comes from a prior FetchShowtimes call; username keys the
// ledger and is "guest" for unauthenticated users.
func NewSession(api API, led *ledger.Ledger, username string, movie model.Movie, showtimes []model.Showtime) *Session {
	if api == nil || led == nil {
		panic("nil dependency passed to NewSession")
	}
	return &Session{
		api:        api,
		ledger:     led,
		username:   username,
		NewID:      uuid.NewString,
		Now:        time.Now,
		movie:      movie,
		showtimes:  showtimes,
		selectedIx: make(map[string]struct{}),
		sold:       make(map[string]struct{}),
	}
}

// SelectShowtime makes st the current showtime and unconditionally
// clears both the local selection and the mirrored sold set, so a
// selection can never carry across showtimes with different sold-seat
// sets. The sold set repopulates when RefreshSeats completes; callers
// typically run that asynchronously and the UI stays responsive in
// the meantime.
func (s *Session) SelectShowtime(st model.Showtime) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.current = &st
	s.selected = nil
	s.selectedIx = make(map[string]struct{})
	s.sold = make(map[string]struct{})
}

// RefreshSeats fetches the sold-seat state for the current showtime
// and applies it. The fetch is tagged with the showtime id it was
// issued for; if the user switches showtime while the request is in
// flight, the stale response is discarded by ApplySeatStates.
func (s *Session) RefreshSeats(ctx context.Context) error {
	s.mu.Lock()
	if s.current == nil {
		s.mu.Unlock()
		return nil
	}
	showtimeID := s.current.ID
	s.mu.Unlock()

	states, err := s.api.FetchSeatStates(ctx, showtimeID)
	if err != nil {
		return err
	}
	s.ApplySeatStates(showtimeID, states)
	return nil
}

// ApplySeatStates installs a fetched sold-seat set, but only when
// showtimeID still matches the current showtime; responses for a
// showtime the user has already left are ignored.
func (s *Session) ApplySeatStates(showtimeID int64, states []model.SeatState) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.current == nil || s.current.ID != showtimeID {
		return
	}
	s.sold = model.SoldSeats(states)
}

// ToggleSeat flips membership of code in the selection. Sold seats
// are rejected outright rather than filtered later, which keeps
// selected and sold disjoint at all times. Toggling is idempotent
// under double invocation: on, off, on equals a single on.
func (s *Session) ToggleSeat(code string) error {
	if !model.ValidSeatCode(code) {
		return ErrUnknownSeat
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, soldOut := s.sold[code]; soldOut {
		return ErrSeatSold
	}
	if _, on := s.selectedIx[code]; on {
		delete(s.selectedIx, code)
		for i, c := range s.selected {
			if c == code {
				s.selected = append(s.selected[:i], s.selected[i+1:]...)
				break
			}
		}
		return nil
	}
	s.selectedIx[code] = struct{}{}
	s.selected = append(s.selected, code)
	return nil
}

// SetCustomerField updates one contact field and returns its
// incremental validation message, empty when the value is valid.
// Phone values are normalized to digits first.
func (s *Session) SetCustomerField(field, value string) string {
	s.mu.Lock()
	switch field {
	case validate.FieldName:
		s.customer.Name = value
	case validate.FieldEmail:
		s.customer.Email = value
	case validate.FieldPhone:
		value = validate.NormalizePhone(value)
		s.customer.Phone = value
	}
	s.mu.Unlock()
	return validate.Field(field, value)
}

// SetCustomer replaces the whole contact block, normalizing the phone.
func (s *Session) SetCustomer(info validate.CustomerInfo) {
	s.mu.Lock()
	defer s.mu.Unlock()
	info.Phone = validate.NormalizePhone(info.Phone)
	s.customer = info
}

// State reports the current phase of the machine.
func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	switch {
	case s.current == nil:
		return NoShowtime
	case len(s.selected) > 0:
		return SeatsChosen
	default:
		return ShowtimeSelected
	}
}

// CurrentShowtime returns the chosen showtime, or nil before one is
// selected.
func (s *Session) CurrentShowtime() *model.Showtime {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.current == nil {
		return nil
	}
	st := *s.current
	return &st
}

// Showtimes returns the showtimes available for this movie.
func (s *Session) Showtimes() []model.Showtime {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]model.Showtime, len(s.showtimes))
	copy(out, s.showtimes)
	return out
}

// SelectedSeats returns the selection in the order seats were chosen.
func (s *Session) SelectedSeats() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]string, len(s.selected))
	copy(out, s.selected)
	return out
}

// SoldSeats returns a copy of the mirrored sold set.
func (s *Session) SoldSeats() map[string]struct{} {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make(map[string]struct{}, len(s.sold))
	for c := range s.sold {
		out[c] = struct{}{}
	}
	return out
}

// Total is the running price summary: seat count times the current
// showtime's price. Pricing is per showtime, not per movie, so two
// slots of the same film may charge differently.
func (s *Session) Total() int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.totalLocked()
}

func (s *Session) totalLocked() int64 {
	if s.current == nil {
		return 0
	}
	return int64(len(s.selected)) * s.current.Price
}

// validateLocked aggregates every violation at once: contact rules
// plus the two selection rules. Callers hold s.mu.
func (s *Session) validateLocked() validate.FieldErrors {
	errs := validate.Customer(s.customer)
	if s.current == nil {
		errs[validate.FieldShowtime] = validate.MsgNoShowtime
	}
	if len(s.selected) == 0 {
		errs[validate.FieldSeats] = validate.MsgNoSeats
	}
	return errs
}
