package domain

import "time"

// BookingStatusPending is stamped on every new booking.
const BookingStatusPending = "pending"

// Booking records a buyer's purchase against a listing. Listing fields are
// snapshotted at booking time so later edits do not rewrite history.
type Booking struct {
	ID           string
	ListingID    string
	BuyerEmail   string
	VendorEmail  string
	Type         string
	FromLocation string
	ToLocation   string
	Price        float64
	Status       string
	TrackID      string
	CreatedAt    time.Time
}
