// Package handler implements the kiosk HTTP facade. The facade is a
// thin caller of the booking core: it maps requests onto core
// operations and core errors onto status codes, and adds no business
// logic of its own.
package handler

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/Dinhan123456/cinemahub-booking/internal/client"
	mw "github.com/Dinhan123456/cinemahub-booking/internal/middleware"
)

// CatalogHandler proxies catalog reads to the Booking API. Nothing is
// cached: seat state in particular must stay advisory-fresh, so every
// request re-reads upstream.
type CatalogHandler struct {
	API *client.Client
}

// NewCatalogHandler constructs a CatalogHandler. The API client must
// be non-nil.
func NewCatalogHandler(api *client.Client) *CatalogHandler {
	if api == nil {
		panic("nil client passed to NewCatalogHandler")
	}
	return &CatalogHandler{API: api}
}

// GetMovie handles GET /v1/movies/:id.
func (h *CatalogHandler) GetMovie(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid movie id"})
	}
	movie, err := h.API.FetchMovie(upstreamCtx(c), id)
	if err != nil {
		return upstreamError(c, err)
	}
	return c.JSON(http.StatusOK, movie)
}

// GetShowtimes handles GET /v1/movies/:id/showtimes. An empty list is
// a normal answer for a movie with nothing scheduled.
func (h *CatalogHandler) GetShowtimes(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid movie id"})
	}
	showtimes, err := h.API.FetchShowtimes(upstreamCtx(c), id)
	if err != nil {
		return upstreamError(c, err)
	}
	return c.JSON(http.StatusOK, showtimes)
}

// GetSeatStates handles GET /v1/showtimes/:id/seats.
func (h *CatalogHandler) GetSeatStates(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid showtime id"})
	}
	states, err := h.API.FetchSeatStates(upstreamCtx(c), id)
	if err != nil {
		return upstreamError(c, err)
	}
	return c.JSON(http.StatusOK, states)
}

// GetSeatSummary handles GET /v1/showtimes/:id/seat-summary.
func (h *CatalogHandler) GetSeatSummary(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid showtime id"})
	}
	summary, err := h.API.FetchSeatSummary(upstreamCtx(c), id)
	if err != nil {
		return upstreamError(c, err)
	}
	return c.JSON(http.StatusOK, summary)
}

// pathID parses the :id path parameter common to all catalog routes.
func pathID(c echo.Context) (int64, error) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, errors.New("invalid id")
	}
	return id, nil
}

// upstreamCtx attaches the caller's bearer token, if any, so the
// Booking API sees the same identity the kiosk saw.
func upstreamCtx(c echo.Context) context.Context {
	return client.WithBearer(c.Request().Context(), mw.BearerToken(c))
}

// upstreamError maps client error kinds onto facade responses: absent
// resources are 404, business rejections 422, everything else 502.
func upstreamError(c echo.Context, err error) error {
	var nf *client.NotFoundError
	if errors.As(err, &nf) {
		return c.JSON(http.StatusNotFound, echo.Map{"error": nf.Error()})
	}
	var verr *client.ValidationError
	if errors.As(err, &verr) {
		return c.JSON(http.StatusUnprocessableEntity, echo.Map{
			"status": "VALIDATION_ERROR",
			"errors": verr.Fields,
		})
	}
	return c.JSON(http.StatusBadGateway, echo.Map{"error": "booking service unavailable"})
}
