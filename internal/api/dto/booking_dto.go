package dto

import (
	"time"

	"github.com/spec-kit/ticket-marketplace/internal/domain"
)

// BookingCreateRequest payload for booking a listing.
type BookingCreateRequest struct {
	ListingID string `json:"listing_id"`
}

// BookingStatusRequest payload for booking status updates.
type BookingStatusRequest struct {
	Status string `json:"status"`
}

// BookingResponse is the wire representation of a booking.
type BookingResponse struct {
	ID           string    `json:"id"`
	ListingID    string    `json:"listing_id"`
	BuyerEmail   string    `json:"buyer_email"`
	VendorEmail  string    `json:"vendor_email"`
	Type         string    `json:"type"`
	FromLocation string    `json:"from"`
	ToLocation   string    `json:"to"`
	Price        float64   `json:"price"`
	Status       string    `json:"status"`
	TrackID      string    `json:"track_id"`
	CreatedAt    time.Time `json:"created_at"`
}

// NewBookingResponse maps a domain booking.
func NewBookingResponse(booking *domain.Booking) BookingResponse {
	return BookingResponse{
		ID:           booking.ID,
		ListingID:    booking.ListingID,
		BuyerEmail:   booking.BuyerEmail,
		VendorEmail:  booking.VendorEmail,
		Type:         booking.Type,
		FromLocation: booking.FromLocation,
		ToLocation:   booking.ToLocation,
		Price:        booking.Price,
		Status:       booking.Status,
		TrackID:      booking.TrackID,
		CreatedAt:    booking.CreatedAt,
	}
}

// NewBookingResponses maps a slice of domain bookings.
func NewBookingResponses(bookings []domain.Booking) []BookingResponse {
	result := make([]BookingResponse, 0, len(bookings))
	for i := range bookings {
		result = append(result, NewBookingResponse(&bookings[i]))
	}
	return result
}
