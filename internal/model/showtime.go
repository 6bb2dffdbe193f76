package model

import "time"

// Showtime is a scheduled screening of a movie. Each showtime belongs
// to exactly one movie; the backend returns them grouped under
// GET /movies/{id}/showtimes, so MovieID may be zero when the parent
// is implied by the fetch.
//
// Fields:
//  ID         – showtime identifier.
//  MovieID    – owning movie, when the backend includes it.
//  StartTime  – screening start instant.
//  Price      – per-seat price in VND for this slot.
//  Auditorium – display label of the room, e.g. "Room A".
type Showtime struct {
	ID         int64     `json:"id"`
	MovieID    int64     `json:"movieId,omitempty"`
	StartTime  time.Time `json:"startTime"`
	Price      int64     `json:"price"`
	Auditorium string    `json:"auditorium"`
}

// Display renders the showtime the way booking confirmations show it.
func (s Showtime) Display() string {
	return s.StartTime.Format("02/01/2006 15:04")
}
