package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/ticket-marketplace/internal/domain"
	"github.com/spec-kit/ticket-marketplace/internal/events"
	"github.com/spec-kit/ticket-marketplace/internal/repository"
	"github.com/spec-kit/ticket-marketplace/pkg/util"
)

// BookingService records purchases against listings.
type BookingService struct {
	bookings   repository.BookingRepository
	listings   repository.ListingRepository
	dispatcher events.Dispatcher
}

// BookingDependencies bundles requirements for the booking service.
type BookingDependencies struct {
	BookingRepo repository.BookingRepository
	ListingRepo repository.ListingRepository
	Dispatcher  events.Dispatcher
}

// NewBookingService constructs the service.
func NewBookingService(deps BookingDependencies) *BookingService {
	return &BookingService{
		bookings:   deps.BookingRepo,
		listings:   deps.ListingRepo,
		dispatcher: deps.Dispatcher,
	}
}

// Book creates a booking for the buyer against a listing, snapshotting the
// listing fields and stamping a fresh tracking id.
func (s *BookingService) Book(ctx context.Context, buyerEmail, listingID string) (*domain.Booking, error) {
	if strings.TrimSpace(listingID) == "" {
		return nil, util.NewValidationError("listing_id required", nil)
	}

	listing, err := s.listings.GetByID(ctx, listingID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, util.NewNotFound("listing", map[string]any{"id": listingID})
		}
		return nil, util.MapError(err)
	}

	trackID, err := util.GenerateTrackID()
	if err != nil {
		return nil, util.NewInternalError(err)
	}

	booking := &domain.Booking{
		ListingID:    listing.ID,
		BuyerEmail:   buyerEmail,
		VendorEmail:  listing.VendorEmail,
		Type:         listing.Type,
		FromLocation: listing.FromLocation,
		ToLocation:   listing.ToLocation,
		Price:        listing.Price,
		Status:       domain.BookingStatusPending,
		TrackID:      trackID,
	}
	if err := s.bookings.Create(ctx, booking); err != nil {
		return nil, util.MapError(err)
	}

	s.publish(ctx, events.Event{
		Type:       events.EventBookingCreated,
		EntityID:   booking.ID,
		ActorEmail: buyerEmail,
		Payload: events.BookingCreatedPayload{
			ListingID:   booking.ListingID,
			BuyerEmail:  booking.BuyerEmail,
			VendorEmail: booking.VendorEmail,
			TrackID:     booking.TrackID,
		},
	})
	return booking, nil
}

// VendorBookings returns bookings against a vendor's listings, optionally
// filtered by status.
func (s *BookingService) VendorBookings(ctx context.Context, vendorEmail string, status *string) ([]domain.Booking, error) {
	filter := repository.BookingFilter{VendorEmail: &vendorEmail, Status: status}
	bookings, err := s.bookings.List(ctx, filter)
	if err != nil {
		return nil, util.MapError(err)
	}
	return bookings, nil
}

// BuyerBookings returns a buyer's own bookings.
func (s *BookingService) BuyerBookings(ctx context.Context, buyerEmail string) ([]domain.Booking, error) {
	filter := repository.BookingFilter{BuyerEmail: &buyerEmail}
	bookings, err := s.bookings.List(ctx, filter)
	if err != nil {
		return nil, util.MapError(err)
	}
	return bookings, nil
}

// UpdateStatus sets a booking's status. Only the booking's vendor or an
// admin may mutate it.
func (s *BookingService) UpdateStatus(ctx context.Context, callerEmail string, callerRole domain.Role, id, status string) (*domain.Booking, error) {
	status = strings.TrimSpace(status)
	if status == "" {
		return nil, util.NewValidationError("status required", nil)
	}

	booking, err := s.bookings.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, util.NewNotFound("booking", map[string]any{"id": id})
		}
		return nil, util.MapError(err)
	}
	if callerRole != domain.RoleAdmin && booking.VendorEmail != callerEmail {
		return nil, util.NewForbidden("booking belongs to another vendor")
	}

	oldStatus := booking.Status
	if err := s.bookings.UpdateStatus(ctx, id, status); err != nil {
		return nil, util.MapError(err)
	}
	booking.Status = status

	s.publish(ctx, events.Event{
		Type:       events.EventBookingStatusChanged,
		EntityID:   id,
		ActorEmail: callerEmail,
		Payload: events.BookingStatusChangedPayload{
			OldStatus: oldStatus,
			NewStatus: status,
		},
	})
	return booking, nil
}

func (s *BookingService) publish(ctx context.Context, event events.Event) {
	if s.dispatcher == nil {
		return
	}
	event.ID = uuid.NewString()
	event.Timestamp = time.Now()
	_ = s.dispatcher.Publish(ctx, event)
}
