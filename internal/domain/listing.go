package domain

import (
	"strings"
	"time"
)

// ListingStatus enumerates moderation states for vendor listings.
type ListingStatus string

const (
	ListingStatusPending ListingStatus = "pending"
	ListingStatusApprove ListingStatus = "approve"
	ListingStatusReject  ListingStatus = "reject"
)

// Valid reports whether the status is one of the closed set.
func (s ListingStatus) Valid() bool {
	switch s {
	case ListingStatusPending, ListingStatusApprove, ListingStatusReject:
		return true
	}
	return false
}

// Rejected matches reject/rejected in any case. Content edits are locked
// once a listing reaches this state.
func (s ListingStatus) Rejected() bool {
	lower := strings.ToLower(string(s))
	return lower == "reject" || lower == "rejected"
}

// AdvertiseCapacity caps the set of listings with the advertise flag.
const AdvertiseCapacity = 6

// Listing is a vendor-submitted, admin-moderated ticket offering.
type Listing struct {
	ID           string
	VendorEmail  string
	Type         string
	FromLocation string
	ToLocation   string
	Price        float64
	Quantity     int
	Status       ListingStatus
	Advertise    bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
