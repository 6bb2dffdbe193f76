package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Dinhan123456/cinemahub-booking/internal/ledger"
	mw "github.com/Dinhan123456/cinemahub-booking/internal/middleware"
)

// HistoryHandler serves the booking-history view from the per-user
// ledger.
type HistoryHandler struct {
	Ledger *ledger.Ledger
}

// NewHistoryHandler constructs a HistoryHandler. The ledger must be
// non-nil.
func NewHistoryHandler(led *ledger.Ledger) *HistoryHandler {
	if led == nil {
		panic("nil ledger passed to NewHistoryHandler")
	}
	return &HistoryHandler{Ledger: led}
}

// GetHistory handles GET /v1/bookings/history?search=&status=. The
// ledger is re-read on every request; other writers (another kiosk,
// another tab) may have appended since the last view, so nothing is
// cached. search matches movie title or booking code case-
// insensitively; status is exact, with "all" or empty as wildcard.
func (h *HistoryHandler) GetHistory(c echo.Context) error {
	username := mw.Username(c)
	records := h.Ledger.List(c.Request().Context(), username)
	filtered := ledger.Filter(records, c.QueryParam("search"), c.QueryParam("status"))
	return c.JSON(http.StatusOK, echo.Map{
		"username": username,
		"count":    len(filtered),
		"bookings": filtered,
	})
}
