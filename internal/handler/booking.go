package handler

import (
	"context"
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/Dinhan123456/cinemahub-booking/internal/booking"
	"github.com/Dinhan123456/cinemahub-booking/internal/client"
	"github.com/Dinhan123456/cinemahub-booking/internal/ledger"
	mw "github.com/Dinhan123456/cinemahub-booking/internal/middleware"
	"github.com/Dinhan123456/cinemahub-booking/internal/model"
	"github.com/Dinhan123456/cinemahub-booking/internal/queue"
	"github.com/Dinhan123456/cinemahub-booking/internal/validate"
)

// BookingHandler drives the booking core end to end for POST
// /v1/bookings. Publish may be nil when no broker is configured.
type BookingHandler struct {
	API     *client.Client
	Ledger  *ledger.Ledger
	Publish func(ctx context.Context, ev queue.BookingConfirmedEvent) error
}

// NewBookingHandler constructs a BookingHandler. API and Ledger must
// be non-nil; publish may be nil to disable confirmation events.
func NewBookingHandler(api *client.Client, led *ledger.Ledger, publish func(ctx context.Context, ev queue.BookingConfirmedEvent) error) *BookingHandler {
	if api == nil || led == nil {
		panic("nil dependency passed to NewBookingHandler")
	}
	return &BookingHandler{API: api, Ledger: led, Publish: publish}
}

type createBookingRequest struct {
	MovieID    int64    `json:"movieId"`
	ShowtimeID int64    `json:"showtimeId"`
	Seats      []string `json:"seats"`
	Name       string   `json:"name"`
	Email      string   `json:"email"`
	Phone      string   `json:"phone"`
}

// CreateBooking handles POST /v1/bookings. It replays the storefront
// flow through a fresh session: pick the showtime, refresh sold seats
// from the backend, toggle the requested seats, validate the contact
// block, then confirm. The sold-seat refresh runs to completion before
// any toggle so the submission is fully trusted. A requested seat that
// is already sold surfaces as a "seats" field error rather than a
// silent drop.
func (h *BookingHandler) CreateBooking(c echo.Context) error {
	var req createBookingRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}

	ctx := upstreamCtx(c)
	movie, err := h.API.FetchMovie(ctx, req.MovieID)
	if err != nil {
		return upstreamError(c, err)
	}
	showtimes, err := h.API.FetchShowtimes(ctx, req.MovieID)
	if err != nil {
		return upstreamError(c, err)
	}

	username := mw.Username(c)
	session := booking.NewSession(h.API, h.Ledger, username, movie, showtimes)

	fieldErrs := validate.FieldErrors{}
	if st, ok := findShowtime(showtimes, req.ShowtimeID); ok {
		session.SelectShowtime(st)
		if err := session.RefreshSeats(ctx); err != nil {
			return upstreamError(c, err)
		}
	} else {
		fieldErrs[validate.FieldShowtime] = validate.MsgNoShowtime
	}
	for _, code := range req.Seats {
		if err := session.ToggleSeat(code); err != nil {
			fieldErrs[validate.FieldSeats] = err.Error()
		}
	}
	session.SetCustomer(validate.CustomerInfo{
		Name:  req.Name,
		Email: req.Email,
		Phone: req.Phone, // SetCustomer normalizes to digits
	})
	if len(fieldErrs) > 0 {
		return validationResponse(c, fieldErrs)
	}

	record, err := session.Confirm(ctx)
	if err != nil {
		var ferrs validate.FieldErrors
		if errors.As(err, &ferrs) {
			return validationResponse(c, ferrs)
		}
		return upstreamError(c, err)
	}

	h.publishConfirmed(username, record)
	return c.JSON(http.StatusCreated, record)
}

// publishConfirmed emits the confirmation event fire-and-forget. The
// record is already persisted; a broker failure only costs the event.
func (h *BookingHandler) publishConfirmed(username string, record model.BookingRecord) {
	if h.Publish == nil {
		return
	}
	ev := queue.EventFromRecord(username, record)
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := h.Publish(ctx, ev); err != nil {
			log.Printf("booking: confirmation event for %s not published: %v", record.BookingCode, err)
		}
	}()
}

func findShowtime(showtimes []model.Showtime, id int64) (model.Showtime, bool) {
	for _, st := range showtimes {
		if st.ID == id {
			return st, true
		}
	}
	return model.Showtime{}, false
}

func validationResponse(c echo.Context, errs validate.FieldErrors) error {
	return c.JSON(http.StatusUnprocessableEntity, echo.Map{
		"status": "VALIDATION_ERROR",
		"errors": errs,
	})
}
