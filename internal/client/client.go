package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/Dinhan123456/cinemahub-booking/internal/model"
)

// Client calls the external Booking API. All methods are safe for
// concurrent use; the zero value is not usable, construct with New.
type Client struct {
	baseURL string
	http    *http.Client
}

// New returns a Client bound to the given base URL, e.g.
// "http://127.0.0.1:8080/api". A nil httpClient falls back to a
// default with a 10 second timeout.
func New(baseURL string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 10 * time.Second}
	}
	return &Client{baseURL: baseURL, http: httpClient}
}

type bearerKey struct{}

// WithBearer returns a context that makes the client forward the given
// token as an Authorization header on every request issued with it.
// Tokens come from the external Auth service; the client never mints
// its own.
func WithBearer(ctx context.Context, token string) context.Context {
	if token == "" {
		return ctx
	}
	return context.WithValue(ctx, bearerKey{}, token)
}

// BookingRequest is the body of POST /bookings. Seats keep the order
// in which the user selected them.
type BookingRequest struct {
	MovieID    int64    `json:"movieId"`
	ShowtimeID int64    `json:"showtimeId"`
	Showtime   string   `json:"showtime"`
	Seats      []string `json:"seats"`
	Name       string   `json:"name"`
	Email      string   `json:"email"`
	Phone      string   `json:"phone"`
}

// FetchMovie retrieves one movie by id. Returns *NotFoundError when
// the backend answers 404.
func (c *Client) FetchMovie(ctx context.Context, movieID int64) (model.Movie, error) {
	var m model.Movie
	err := c.getJSON(ctx, fmt.Sprintf("/movies/%d", movieID), &m, &NotFoundError{Resource: "movie", ID: movieID})
	return m, err
}

// FetchShowtimes lists the scheduled showtimes of a movie. An empty
// list is a valid answer for a movie with nothing scheduled.
func (c *Client) FetchShowtimes(ctx context.Context, movieID int64) ([]model.Showtime, error) {
	var sts []model.Showtime
	err := c.getJSON(ctx, fmt.Sprintf("/movies/%d/showtimes", movieID), &sts, &NotFoundError{Resource: "movie", ID: movieID})
	return sts, err
}

// FetchSeatStates retrieves the per-seat sold flags for a showtime.
func (c *Client) FetchSeatStates(ctx context.Context, showtimeID int64) ([]model.SeatState, error) {
	var states []model.SeatState
	err := c.getJSON(ctx, fmt.Sprintf("/showtimes/%d/seats", showtimeID), &states, &NotFoundError{Resource: "showtime", ID: showtimeID})
	return states, err
}

// FetchSeatSummary retrieves the advisory occupancy counters for a
// showtime.
func (c *Client) FetchSeatSummary(ctx context.Context, showtimeID int64) (model.SeatSummary, error) {
	var sum model.SeatSummary
	err := c.getJSON(ctx, fmt.Sprintf("/showtimes/%d/seat-summary", showtimeID), &sum, &NotFoundError{Resource: "showtime", ID: showtimeID})
	return sum, err
}

// SubmitBooking posts a composed booking and returns the server-issued
// booking code. Business-rule rejections come back as
// *ValidationError; transport and 5xx failures as *RequestError.
func (c *Client) SubmitBooking(ctx context.Context, req BookingRequest) (string, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return "", &RequestError{Err: err}
	}
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/bookings", bytes.NewReader(body))
	if err != nil {
		return "", &RequestError{Err: err}
	}
	httpReq.Header.Set("Content-Type", "application/json")
	c.authorize(ctx, httpReq)

	resp, err := c.http.Do(httpReq)
	if err != nil {
		return "", &RequestError{Err: err}
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", &RequestError{Status: resp.StatusCode, Err: err}
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		if verr := parseValidationBody(data); verr != nil {
			return "", verr
		}
		return "", &RequestError{Status: resp.StatusCode}
	}
	var out struct {
		BookingCode string `json:"bookingCode"`
	}
	if err := json.Unmarshal(data, &out); err != nil {
		return "", &RequestError{Status: resp.StatusCode, Err: err}
	}
	return out.BookingCode, nil
}

// getJSON performs a GET and decodes the response into out. notFound
// is returned verbatim on a 404 so each call site can name the missing
// resource.
func (c *Client) getJSON(ctx context.Context, path string, out any, notFound error) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return &RequestError{Err: err}
	}
	c.authorize(ctx, req)

	resp, err := c.http.Do(req)
	if err != nil {
		return &RequestError{Err: err}
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return notFound
	case resp.StatusCode < 200 || resp.StatusCode > 299:
		return &RequestError{Status: resp.StatusCode}
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return &RequestError{Status: resp.StatusCode, Err: err}
	}
	return nil
}

func (c *Client) authorize(ctx context.Context, req *http.Request) {
	if token, ok := ctx.Value(bearerKey{}).(string); ok && token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
}

// parseValidationBody maps a {"status":"VALIDATION_ERROR","errors":{..}}
// body into a *ValidationError, or returns nil when the body has a
// different shape.
func parseValidationBody(data []byte) error {
	var body struct {
		Status string            `json:"status"`
		Errors map[string]string `json:"errors"`
	}
	if err := json.Unmarshal(data, &body); err != nil {
		return nil
	}
	if body.Status != "VALIDATION_ERROR" {
		return nil
	}
	if body.Errors == nil {
		body.Errors = map[string]string{}
	}
	return &ValidationError{Fields: body.Errors}
}
