package model

import "strconv"

// The auditorium layout is fixed: 5 rows (A–E) of 8 seats each, 40
// addressable seats in total. Seat codes are row letter + column
// number ("A1".."E8"); anything outside this space is never offered
// for selection.

const (
	SeatRows    = "ABCDE"
	SeatColumns = 8
	TotalSeats  = len(SeatRows) * SeatColumns
)

// SeatState reports whether a single seat has been sold for a given
// showtime, as returned by GET /showtimes/{id}/seats.
type SeatState struct {
	SeatCode string `json:"seatCode"`
	Sold     bool   `json:"sold"`
}

// SeatSummary is the advisory per-showtime occupancy snapshot from
// GET /showtimes/{id}/seat-summary. Display only; never used to gate
// a booking.
type SeatSummary struct {
	Total     int `json:"total"`
	Sold      int `json:"sold"`
	Available int `json:"available"`
}

// SeatLayout returns the seat codes row by row, in render order.
func SeatLayout() [][]string {
	rows := make([][]string, 0, len(SeatRows))
	for _, r := range SeatRows {
		row := make([]string, 0, SeatColumns)
		for c := 1; c <= SeatColumns; c++ {
			row = append(row, string(r)+strconv.Itoa(c))
		}
		rows = append(rows, row)
	}
	return rows
}

// ValidSeatCode reports whether code addresses one of the 40 fixed seats.
func ValidSeatCode(code string) bool {
	if len(code) != 2 {
		return false
	}
	row, col := code[0], code[1]
	if row < 'A' || row > 'E' {
		return false
	}
	return col >= '1' && col <= '8'
}

// SoldSeats derives the set of sold seat codes from a seat-state list.
func SoldSeats(states []SeatState) map[string]struct{} {
	sold := make(map[string]struct{})
	for _, s := range states {
		if s.Sold {
			sold[s.SeatCode] = struct{}{}
		}
	}
	return sold
}
