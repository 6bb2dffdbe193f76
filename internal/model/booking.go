package model

import "time"

// BookingStatus enumerates the lifecycle states of a persisted booking
// record. The booking flow only ever produces CONFIRMED; PENDING and
// CANCELLED are reserved for backend-driven state changes.
type BookingStatus string

const (
	StatusConfirmed BookingStatus = "CONFIRMED"
	StatusPending   BookingStatus = "PENDING"
	StatusCancelled BookingStatus = "CANCELLED"
)

// BookingRecord is the locally persisted receipt of one confirmed
// booking. It snapshots everything needed to render the receipt later
// without calling the backend again. Records are created once per
// successful submission and never mutated afterwards.
//
// Fields:
//  ID            – locally generated unique id for this record.
//  BookingCode   – server-issued booking code; never client-generated.
//  Movie         – movie snapshot at booking time.
//  Showtime      – showtime display string shown on the receipt.
//  ShowtimeStart – raw start instant of the booked showtime.
//  Seats         – seat codes in selection order.
//  TotalPrice    – total in VND.
//  CustomerName  – contact name supplied at booking.
//  CustomerEmail – contact email.
//  CustomerPhone – contact phone (10 digits).
//  BookingDate   – instant of local confirmation.
//  Status        – always CONFIRMED when produced by this flow.
type BookingRecord struct {
	ID            string        `json:"id"`
	BookingCode   string        `json:"bookingCode"`
	Movie         Movie         `json:"movie"`
	Showtime      string        `json:"showtime"`
	ShowtimeStart time.Time     `json:"showtimeStart"`
	Seats         []string      `json:"seats"`
	TotalPrice    int64         `json:"totalPrice"`
	CustomerName  string        `json:"customerName"`
	CustomerEmail string        `json:"customerEmail"`
	CustomerPhone string        `json:"customerPhone"`
	BookingDate   time.Time     `json:"bookingDate"`
	Status        BookingStatus `json:"status"`
}
