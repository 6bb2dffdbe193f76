package model

// Movie describes a film in the backend catalog. It is immutable from
// the booking core's point of view: the core only reads it to build
// booking snapshots and never writes it back.
//
// Fields:
//  ID            – catalog identifier.
//  Title         – localized display title.
//  OriginalTitle – original release title.
//  Year          – release year.
//  Genre         – ordered genre tags.
//  Rating        – aggregate rating.
//  Duration      – display string, e.g. "132 phút".
//  Image         – poster URL.
//  Description   – synopsis.
//  Price         – unit ticket price in VND.
type Movie struct {
	ID            int64    `json:"id"`
	Title         string   `json:"title"`
	OriginalTitle string   `json:"originalTitle"`
	Year          int      `json:"year"`
	Genre         []string `json:"genre"`
	Rating        float64  `json:"rating"`
	Duration      string   `json:"duration"`
	Image         string   `json:"image"`
	Description   string   `json:"description"`
	Price         int64    `json:"price"`
}
