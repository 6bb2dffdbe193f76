package booking

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/Dinhan123456/cinemahub-booking/internal/client"
	"github.com/Dinhan123456/cinemahub-booking/internal/ledger"
	"github.com/Dinhan123456/cinemahub-booking/internal/model"
)

// fakeAPI implements the API interface with scriptable responses.
type fakeAPI struct {
	mu         sync.Mutex
	seatStates map[int64][]model.SeatState
	submitted  []client.BookingRequest
	submitErr  error
	code       string
	entered    chan struct{} // when non-nil, signalled as SubmitBooking starts
	block      chan struct{} // when non-nil, SubmitBooking waits on it
}

func (f *fakeAPI) FetchSeatStates(_ context.Context, showtimeID int64) ([]model.SeatState, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.seatStates[showtimeID], nil
}

func (f *fakeAPI) SubmitBooking(_ context.Context, req client.BookingRequest) (string, error) {
	if f.entered != nil {
		f.entered <- struct{}{}
	}
	if f.block != nil {
		<-f.block
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.submitErr != nil {
		return "", f.submitErr
	}
	f.submitted = append(f.submitted, req)
	return f.code, nil
}

var (
	testMovie = model.Movie{ID: 7, Title: "Godzilla Minus One", Price: 90000}
	st1       = model.Showtime{ID: 1, StartTime: time.Date(2026, 9, 1, 19, 30, 0, 0, time.UTC), Price: 100000, Auditorium: "Room A"}
	st2       = model.Showtime{ID: 2, StartTime: time.Date(2026, 9, 1, 21, 30, 0, 0, time.UTC), Price: 120000, Auditorium: "Room B"}
)

func newTestSession(api *fakeAPI) *Session {
	return NewSession(api, ledger.NewLedger(ledger.NewMemoryStore()), "alice", testMovie, []model.Showtime{st1, st2})
}

func TestToggleSeatIdempotentUnderDoubleInvocation(t *testing.T) {
	s := newTestSession(&fakeAPI{})
	s.SelectShowtime(st1)

	assert.NoError(t, s.ToggleSeat("A1")) // on
	assert.NoError(t, s.ToggleSeat("A1")) // off
	assert.NoError(t, s.ToggleSeat("A1")) // on again
	assert.Equal(t, []string{"A1"}, s.SelectedSeats())
	assert.Equal(t, SeatsChosen, s.State())

	assert.NoError(t, s.ToggleSeat("A1"))
	assert.Empty(t, s.SelectedSeats())
	assert.Equal(t, ShowtimeSelected, s.State())
}

func TestToggleSeatKeepsSelectionOrder(t *testing.T) {
	s := newTestSession(&fakeAPI{})
	s.SelectShowtime(st1)

	for _, code := range []string{"B3", "A1", "C8"} {
		assert.NoError(t, s.ToggleSeat(code))
	}
	assert.NoError(t, s.ToggleSeat("A1")) // remove the middle one
	assert.Equal(t, []string{"B3", "C8"}, s.SelectedSeats())
}

func TestToggleSeatRejectsSoldAndUnknown(t *testing.T) {
	api := &fakeAPI{seatStates: map[int64][]model.SeatState{
		1: {{SeatCode: "A1", Sold: true}, {SeatCode: "A2", Sold: false}},
	}}
	s := newTestSession(api)
	s.SelectShowtime(st1)
	assert.NoError(t, s.RefreshSeats(context.Background()))

	assert.ErrorIs(t, s.ToggleSeat("A1"), ErrSeatSold)
	assert.Empty(t, s.SelectedSeats(), "sold seat toggle leaves selection empty")

	assert.ErrorIs(t, s.ToggleSeat("F1"), ErrUnknownSeat)
	assert.ErrorIs(t, s.ToggleSeat("A9"), ErrUnknownSeat)
	assert.ErrorIs(t, s.ToggleSeat("A10"), ErrUnknownSeat)
}

func TestSelectedNeverIntersectsSold(t *testing.T) {
	api := &fakeAPI{seatStates: map[int64][]model.SeatState{
		1: {{SeatCode: "A1", Sold: true}},
		2: {{SeatCode: "B1", Sold: true}, {SeatCode: "B2", Sold: true}},
	}}
	s := newTestSession(api)

	s.SelectShowtime(st1)
	assert.NoError(t, s.RefreshSeats(context.Background()))
	_ = s.ToggleSeat("A1")
	_ = s.ToggleSeat("A2")
	s.SelectShowtime(st2)
	assert.NoError(t, s.RefreshSeats(context.Background()))
	_ = s.ToggleSeat("B1")
	_ = s.ToggleSeat("B3")

	sold := s.SoldSeats()
	for _, code := range s.SelectedSeats() {
		_, clash := sold[code]
		assert.False(t, clash, "selected seat %s is also sold", code)
	}
	assert.Equal(t, []string{"B3"}, s.SelectedSeats())
}

func TestSwitchingShowtimeClearsSelection(t *testing.T) {
	s := newTestSession(&fakeAPI{})
	s.SelectShowtime(st1)
	_ = s.ToggleSeat("A1")
	_ = s.ToggleSeat("A2")
	_ = s.ToggleSeat("A3")

	s.SelectShowtime(st2)
	assert.Empty(t, s.SelectedSeats())
	assert.Empty(t, s.SoldSeats(), "sold set clears before the new fetch completes")
	assert.Equal(t, ShowtimeSelected, s.State())
}

func TestStaleSeatFetchIsDiscarded(t *testing.T) {
	s := newTestSession(&fakeAPI{})

	// Switch to st1, then to st2 before st1's fetch resolves. When the
	// st1 response finally arrives it must be ignored.
	s.SelectShowtime(st1)
	s.SelectShowtime(st2)
	s.ApplySeatStates(st1.ID, []model.SeatState{{SeatCode: "A1", Sold: true}})
	assert.Empty(t, s.SoldSeats(), "stale response must not repopulate the sold set")

	s.ApplySeatStates(st2.ID, []model.SeatState{{SeatCode: "B1", Sold: true}})
	assert.Contains(t, s.SoldSeats(), "B1")
}

func TestTotalUsesShowtimePrice(t *testing.T) {
	s := newTestSession(&fakeAPI{})
	assert.Zero(t, s.Total(), "no showtime, no total")

	s.SelectShowtime(st1)
	assert.Zero(t, s.Total())
	_ = s.ToggleSeat("A1")
	_ = s.ToggleSeat("A2")
	assert.Equal(t, int64(200000), s.Total(), "showtime price, not the movie price")

	s.SelectShowtime(st2)
	_ = s.ToggleSeat("A1")
	assert.Equal(t, int64(120000), s.Total())
}

func TestTotalForAllSelectionSizes(t *testing.T) {
	s := newTestSession(&fakeAPI{})
	s.SelectShowtime(st1)

	n := int64(0)
	for _, row := range model.SeatLayout() {
		for _, code := range row {
			assert.NoError(t, s.ToggleSeat(code))
			n++
			assert.Equal(t, n*st1.Price, s.Total())
		}
	}
	assert.Equal(t, int64(model.TotalSeats), n)
}

func TestSetCustomerFieldValidatesIncrementally(t *testing.T) {
	s := newTestSession(&fakeAPI{})
	assert.NotEmpty(t, s.SetCustomerField("name", "  "))
	assert.Empty(t, s.SetCustomerField("name", "Nguyen Van A"))
	assert.NotEmpty(t, s.SetCustomerField("email", "a@b"))
	assert.Empty(t, s.SetCustomerField("email", "a@b.com"))
	assert.Empty(t, s.SetCustomerField("phone", "012-345 6789"), "input layer strips non-digits")
}
