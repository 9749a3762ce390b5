package dto

import (
	"time"

	"github.com/spec-kit/ticket-marketplace/internal/domain"
)

// ListingCreateRequest payload for new listings.
type ListingCreateRequest struct {
	Type         string  `json:"type"`
	FromLocation string  `json:"from"`
	ToLocation   string  `json:"to"`
	Price        float64 `json:"price"`
	Quantity     int     `json:"quantity"`
}

// ListingEditRequest payload for partial content edits.
type ListingEditRequest struct {
	Type         *string  `json:"type"`
	FromLocation *string  `json:"from"`
	ToLocation   *string  `json:"to"`
	Price        *float64 `json:"price"`
	Quantity     *int     `json:"quantity"`
}

// ListingStatusRequest payload for admin moderation.
type ListingStatusRequest struct {
	Status string `json:"status"`
}

// ListingAdvertiseRequest payload for promotional placement.
type ListingAdvertiseRequest struct {
	Advertise bool `json:"advertise"`
}

// ListingResponse is the wire representation of a listing.
type ListingResponse struct {
	ID           string               `json:"id"`
	VendorEmail  string               `json:"vendor_email"`
	Type         string               `json:"type"`
	FromLocation string               `json:"from"`
	ToLocation   string               `json:"to"`
	Price        float64              `json:"price"`
	Quantity     int                  `json:"quantity"`
	Status       domain.ListingStatus `json:"status"`
	Advertise    bool                 `json:"advertise"`
	CreatedAt    time.Time            `json:"created_at"`
	UpdatedAt    time.Time            `json:"updated_at"`
}

// NewListingResponse maps a domain listing.
func NewListingResponse(listing *domain.Listing) ListingResponse {
	return ListingResponse{
		ID:           listing.ID,
		VendorEmail:  listing.VendorEmail,
		Type:         listing.Type,
		FromLocation: listing.FromLocation,
		ToLocation:   listing.ToLocation,
		Price:        listing.Price,
		Quantity:     listing.Quantity,
		Status:       listing.Status,
		Advertise:    listing.Advertise,
		CreatedAt:    listing.CreatedAt,
		UpdatedAt:    listing.UpdatedAt,
	}
}

// NewListingResponses maps a slice of domain listings.
func NewListingResponses(listings []domain.Listing) []ListingResponse {
	result := make([]ListingResponse, 0, len(listings))
	for i := range listings {
		result = append(result, NewListingResponse(&listings[i]))
	}
	return result
}
