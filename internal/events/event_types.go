package events

import (
	"time"

	"github.com/spec-kit/ticket-marketplace/internal/domain"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventUserRegistered          EventType = "user_registered"
	EventUserPatched             EventType = "user_patched"
	EventListingCreated          EventType = "listing_created"
	EventListingStatusChanged    EventType = "listing_status_changed"
	EventListingAdvertiseChanged EventType = "listing_advertise_changed"
	EventBookingCreated          EventType = "booking_created"
	EventBookingStatusChanged    EventType = "booking_status_changed"
)

// Event represents a domain event emitted by services.
type Event struct {
	ID         string      `json:"id"`
	Type       EventType   `json:"type"`
	EntityID   string      `json:"entity_id"`
	ActorEmail string      `json:"actor_email"`
	Timestamp  time.Time   `json:"timestamp"`
	Payload    interface{} `json:"payload"`
}

// UserRegisteredPayload payload.
type UserRegisteredPayload struct {
	Email string      `json:"email"`
	Role  domain.Role `json:"role"`
}

// ListingCreatedPayload payload.
type ListingCreatedPayload struct {
	VendorEmail  string `json:"vendor_email"`
	Type         string `json:"type"`
	FromLocation string `json:"from"`
	ToLocation   string `json:"to"`
}

// ListingStatusChangedPayload payload.
type ListingStatusChangedPayload struct {
	OldStatus domain.ListingStatus `json:"old_status"`
	NewStatus domain.ListingStatus `json:"new_status"`
}

// ListingAdvertiseChangedPayload payload.
type ListingAdvertiseChangedPayload struct {
	Advertise bool `json:"advertise"`
}

// BookingCreatedPayload payload.
type BookingCreatedPayload struct {
	ListingID   string `json:"listing_id"`
	BuyerEmail  string `json:"buyer_email"`
	VendorEmail string `json:"vendor_email"`
	TrackID     string `json:"track_id"`
}

// BookingStatusChangedPayload payload.
type BookingStatusChangedPayload struct {
	OldStatus string `json:"old_status"`
	NewStatus string `json:"new_status"`
}
