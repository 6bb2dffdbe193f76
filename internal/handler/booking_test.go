package handler_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/tidwall/gjson"

	"github.com/Dinhan123456/cinemahub-booking/internal/client"
	"github.com/Dinhan123456/cinemahub-booking/internal/handler"
	"github.com/Dinhan123456/cinemahub-booking/internal/ledger"
	"github.com/Dinhan123456/cinemahub-booking/internal/router"
)

const testSecret = "test-secret"

// newUpstream fakes the external Booking API with one movie, two
// showtimes and a configurable sold-seat set for showtime 1.
func newUpstream(t *testing.T, sold []string) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/api/movies/7", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"id":7,"title":"Godzilla Minus One","price":90000}`))
	})
	mux.HandleFunc("/api/movies/7/showtimes", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`[
			{"id":1,"startTime":"2026-09-01T19:30:00Z","price":100000,"auditorium":"Room A"},
			{"id":2,"startTime":"2026-09-01T21:30:00Z","price":120000,"auditorium":"Room B"}
		]`))
	})
	mux.HandleFunc("/api/showtimes/1/seats", func(w http.ResponseWriter, r *http.Request) {
		type seat struct {
			SeatCode string `json:"seatCode"`
			Sold     bool   `json:"sold"`
		}
		states := make([]seat, 0, len(sold))
		for _, code := range sold {
			states = append(states, seat{SeatCode: code, Sold: true})
		}
		_ = json.NewEncoder(w).Encode(states)
	})
	mux.HandleFunc("/api/showtimes/2/seats", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`[]`))
	})
	mux.HandleFunc("/api/showtimes/1/seat-summary", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"total":40,"sold":2,"available":38}`))
	})
	mux.HandleFunc("/api/bookings", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"bookingCode":"BK900"}`))
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func newFacade(t *testing.T, upstream *httptest.Server) (*echo.Echo, *ledger.Ledger) {
	t.Helper()
	api := client.New(upstream.URL+"/api", upstream.Client())
	led := ledger.NewLedger(ledger.NewMemoryStore())
	e := echo.New()
	router.RegisterRoutes(e,
		handler.NewCatalogHandler(api),
		handler.NewBookingHandler(api, led, nil),
		handler.NewHistoryHandler(led),
		testSecret,
	)
	return e, led
}

func bearerFor(t *testing.T, username string) string {
	t.Helper()
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"username": username,
		"exp":      time.Now().Add(time.Hour).Unix(),
	})
	signed, err := tok.SignedString([]byte(testSecret))
	assert.NoError(t, err)
	return "Bearer " + signed
}

func doJSON(e *echo.Echo, method, path, token, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	if token != "" {
		req.Header.Set(echo.HeaderAuthorization, token)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestCreateBookingHappyPath(t *testing.T) {
	upstream := newUpstream(t, nil)
	e, led := newFacade(t, upstream)
	token := bearerFor(t, "alice")

	rec := doJSON(e, http.MethodPost, "/v1/bookings", token,
		`{"movieId":7,"showtimeId":1,"seats":["A1","A2"],"name":"Nguyen Van A","email":"a@b.com","phone":"0123456789"}`)

	assert.Equal(t, http.StatusCreated, rec.Code)
	body := rec.Body.String()
	assert.Equal(t, "BK900", gjson.Get(body, "bookingCode").String())
	assert.Equal(t, "CONFIRMED", gjson.Get(body, "status").String())
	assert.EqualValues(t, 200000, gjson.Get(body, "totalPrice").Int(), "two seats at the showtime price")
	assert.Equal(t, `["A1","A2"]`, gjson.Get(body, "seats").Raw)

	records := led.List(context.Background(), "alice")
	if assert.Len(t, records, 1) {
		assert.Equal(t, "BK900", records[0].BookingCode)
	}
}

func TestCreateBookingSoldSeatRejected(t *testing.T) {
	upstream := newUpstream(t, []string{"A1"})
	e, _ := newFacade(t, upstream)

	rec := doJSON(e, http.MethodPost, "/v1/bookings", "",
		`{"movieId":7,"showtimeId":1,"seats":["A1"],"name":"Nguyen Van A","email":"a@b.com","phone":"0123456789"}`)

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	body := rec.Body.String()
	assert.Equal(t, "VALIDATION_ERROR", gjson.Get(body, "status").String())
	assert.NotEmpty(t, gjson.Get(body, "errors.seats").String())
}

func TestCreateBookingLocalValidation(t *testing.T) {
	upstream := newUpstream(t, nil)
	e, _ := newFacade(t, upstream)

	rec := doJSON(e, http.MethodPost, "/v1/bookings", "",
		`{"movieId":7,"showtimeId":1,"seats":["A1"],"name":"","email":"a@b","phone":"012345678"}`)

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	body := rec.Body.String()
	assert.Equal(t, "VALIDATION_ERROR", gjson.Get(body, "status").String())
	for _, field := range []string{"name", "email", "phone"} {
		assert.NotEmpty(t, gjson.Get(body, "errors."+field).String(), "missing error for %s", field)
	}
}

func TestCreateBookingUnknownShowtime(t *testing.T) {
	upstream := newUpstream(t, nil)
	e, _ := newFacade(t, upstream)

	rec := doJSON(e, http.MethodPost, "/v1/bookings", "",
		`{"movieId":7,"showtimeId":99,"seats":["A1"],"name":"Nguyen Van A","email":"a@b.com","phone":"0123456789"}`)

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.NotEmpty(t, gjson.Get(rec.Body.String(), "errors.showtime").String())
}

func TestHistoryIsPerUserAndFiltered(t *testing.T) {
	upstream := newUpstream(t, nil)
	e, _ := newFacade(t, upstream)
	alice := bearerFor(t, "alice")

	for _, seats := range []string{`["A1"]`, `["B2"]`} {
		rec := doJSON(e, http.MethodPost, "/v1/bookings", alice,
			`{"movieId":7,"showtimeId":1,"seats":`+seats+`,"name":"Nguyen Van A","email":"a@b.com","phone":"0123456789"}`)
		assert.Equal(t, http.StatusCreated, rec.Code)
	}

	rec := doJSON(e, http.MethodGet, "/v1/bookings/history", alice, "")
	assert.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Equal(t, "alice", gjson.Get(body, "username").String())
	assert.EqualValues(t, 2, gjson.Get(body, "count").Int())

	// Search matches the movie title case-insensitively.
	rec = doJSON(e, http.MethodGet, "/v1/bookings/history?search=god", alice, "")
	assert.EqualValues(t, 2, gjson.Get(rec.Body.String(), "count").Int())

	// Status filter excludes CONFIRMED records.
	rec = doJSON(e, http.MethodGet, "/v1/bookings/history?status=CANCELLED", alice, "")
	assert.EqualValues(t, 0, gjson.Get(rec.Body.String(), "count").Int())

	// A different user sees an empty ledger.
	rec = doJSON(e, http.MethodGet, "/v1/bookings/history", bearerFor(t, "bob"), "")
	assert.EqualValues(t, 0, gjson.Get(rec.Body.String(), "count").Int())

	// No token at all reads the guest ledger.
	rec = doJSON(e, http.MethodGet, "/v1/bookings/history", "", "")
	assert.Equal(t, "guest", gjson.Get(rec.Body.String(), "username").String())
}

func TestCatalogProxyAndSummary(t *testing.T) {
	upstream := newUpstream(t, []string{"A1", "B5"})
	e, _ := newFacade(t, upstream)

	rec := doJSON(e, http.MethodGet, "/v1/movies/7", "", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Godzilla Minus One", gjson.Get(rec.Body.String(), "title").String())

	rec = doJSON(e, http.MethodGet, "/v1/showtimes/1/seat-summary", "", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.EqualValues(t, 38, gjson.Get(rec.Body.String(), "available").Int())

	rec = doJSON(e, http.MethodGet, "/v1/movies/404", "", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
