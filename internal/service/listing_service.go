package service

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/ticket-marketplace/internal/domain"
	"github.com/spec-kit/ticket-marketplace/internal/events"
	"github.com/spec-kit/ticket-marketplace/internal/repository"
	apperrors "github.com/spec-kit/ticket-marketplace/pkg/util"
)

// ListingService owns the listing state machine and the advertisement
// slot capacity.
type ListingService struct {
	listings   repository.ListingRepository
	dispatcher events.Dispatcher

	// adMu serializes advertise mutations: the count-then-set sequence
	// must behave as a single operation so the slot cap cannot be
	// overshot by concurrent admin requests.
	adMu sync.Mutex
}

// ListingDependencies bundles requirements for the listing service.
type ListingDependencies struct {
	ListingRepo repository.ListingRepository
	Dispatcher  events.Dispatcher
}

// NewListingService constructs the service.
func NewListingService(deps ListingDependencies) *ListingService {
	return &ListingService{
		listings:   deps.ListingRepo,
		dispatcher: deps.Dispatcher,
	}
}

// ListingCreateInput describes listing creation payload.
type ListingCreateInput struct {
	Type         string
	FromLocation string
	ToLocation   string
	Price        float64
	Quantity     int
}

// ListingEditInput describes a partial content edit. Nil fields are left
// untouched.
type ListingEditInput struct {
	Type         *string
	FromLocation *string
	ToLocation   *string
	Price        *float64
	Quantity     *int
}

// Create registers a new vendor listing in pending state.
func (s *ListingService) Create(ctx context.Context, vendorEmail string, input ListingCreateInput) (*domain.Listing, error) {
	details := map[string]any{}
	if strings.TrimSpace(input.Type) == "" {
		details["type"] = "required"
	}
	if strings.TrimSpace(input.FromLocation) == "" {
		details["from"] = "required"
	}
	if strings.TrimSpace(input.ToLocation) == "" {
		details["to"] = "required"
	}
	if input.Price <= 0 {
		details["price"] = "must be a positive number"
	}
	if input.Quantity <= 0 {
		details["quantity"] = "must be a positive integer"
	}
	if len(details) > 0 {
		return nil, apperrors.NewValidationError("invalid listing fields", details)
	}

	listing := &domain.Listing{
		VendorEmail:  vendorEmail,
		Type:         strings.TrimSpace(input.Type),
		FromLocation: strings.TrimSpace(input.FromLocation),
		ToLocation:   strings.TrimSpace(input.ToLocation),
		Price:        input.Price,
		Quantity:     input.Quantity,
		Status:       domain.ListingStatusPending,
		Advertise:    false,
	}

	if err := s.listings.Create(ctx, listing); err != nil {
		return nil, apperrors.MapError(err)
	}
	s.publish(ctx, events.Event{
		Type:       events.EventListingCreated,
		EntityID:   listing.ID,
		ActorEmail: vendorEmail,
		Payload: events.ListingCreatedPayload{
			VendorEmail:  listing.VendorEmail,
			Type:         listing.Type,
			FromLocation: listing.FromLocation,
			ToLocation:   listing.ToLocation,
		},
	})
	return listing, nil
}

// List returns the raw operational listing view, optionally filtered by
// status and vendor email.
func (s *ListingService) List(ctx context.Context, filter repository.ListingFilter) ([]domain.Listing, error) {
	listings, err := s.listings.List(ctx, filter)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return listings, nil
}

// Get fetches a single listing.
func (s *ListingService) Get(ctx context.Context, id string) (*domain.Listing, error) {
	listing, err := s.listings.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("listing", map[string]any{"id": id})
		}
		return nil, apperrors.MapError(err)
	}
	return listing, nil
}

// Transition moves a listing to approve or reject. Re-transitioning an
// already-moderated listing is allowed so admins can reverse decisions.
func (s *ListingService) Transition(ctx context.Context, actorEmail, id string, status domain.ListingStatus) (*domain.Listing, error) {
	if status != domain.ListingStatusApprove && status != domain.ListingStatusReject {
		return nil, apperrors.NewValidationError("status must be approve or reject", map[string]any{"status": status})
	}

	listing, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	oldStatus := listing.Status

	if err := s.listings.SetStatus(ctx, id, status); err != nil {
		return nil, apperrors.MapError(err)
	}
	listing.Status = status

	s.publish(ctx, events.Event{
		Type:       events.EventListingStatusChanged,
		EntityID:   id,
		ActorEmail: actorEmail,
		Payload: events.ListingStatusChangedPayload{
			OldStatus: oldStatus,
			NewStatus: status,
		},
	})
	return listing, nil
}

// EditContent applies a partial content edit. Edits require ownership and
// are refused once the listing has been rejected.
func (s *ListingService) EditContent(ctx context.Context, vendorEmail, id string, input ListingEditInput) (*domain.Listing, error) {
	listing, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if listing.VendorEmail != vendorEmail {
		return nil, apperrors.NewForbidden("listing belongs to another vendor")
	}
	if listing.Status.Rejected() {
		return nil, apperrors.NewInvalidState("rejected listing is locked for content edits", map[string]any{"id": id})
	}

	details := map[string]any{}
	if input.Type != nil {
		if strings.TrimSpace(*input.Type) == "" {
			details["type"] = "must not be empty"
		} else {
			listing.Type = strings.TrimSpace(*input.Type)
		}
	}
	if input.FromLocation != nil {
		if strings.TrimSpace(*input.FromLocation) == "" {
			details["from"] = "must not be empty"
		} else {
			listing.FromLocation = strings.TrimSpace(*input.FromLocation)
		}
	}
	if input.ToLocation != nil {
		if strings.TrimSpace(*input.ToLocation) == "" {
			details["to"] = "must not be empty"
		} else {
			listing.ToLocation = strings.TrimSpace(*input.ToLocation)
		}
	}
	if input.Price != nil {
		if *input.Price <= 0 {
			details["price"] = "must be a positive number"
		} else {
			listing.Price = *input.Price
		}
	}
	if input.Quantity != nil {
		if *input.Quantity <= 0 {
			details["quantity"] = "must be a positive integer"
		} else {
			listing.Quantity = *input.Quantity
		}
	}
	if len(details) > 0 {
		return nil, apperrors.NewValidationError("invalid listing fields", details)
	}

	if err := s.listings.UpdateContent(ctx, listing); err != nil {
		return nil, apperrors.MapError(err)
	}
	return listing, nil
}

// Delete removes a vendor's own listing. Deletion carries no status
// restriction.
func (s *ListingService) Delete(ctx context.Context, vendorEmail, id string) error {
	listing, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	if listing.VendorEmail != vendorEmail {
		return apperrors.NewForbidden("listing belongs to another vendor")
	}
	if err := s.listings.Delete(ctx, id); err != nil {
		return apperrors.MapError(err)
	}
	return nil
}

// SetAdvertise toggles promotional placement. Enabling is capped at
// domain.AdvertiseCapacity concurrently advertised listings.
func (s *ListingService) SetAdvertise(ctx context.Context, actorEmail, id string, desired bool) (*domain.Listing, error) {
	s.adMu.Lock()
	defer s.adMu.Unlock()

	listing, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if desired && !listing.Advertise {
		count, err := s.listings.CountAdvertised(ctx)
		if err != nil {
			return nil, apperrors.MapError(err)
		}
		if count >= domain.AdvertiseCapacity {
			return nil, apperrors.NewCapacityExceeded("advertisement slots are full", map[string]any{
				"capacity": domain.AdvertiseCapacity,
			})
		}
	}

	applied, err := s.listings.SetAdvertise(ctx, id, desired)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	if desired && !applied {
		return nil, apperrors.NewCapacityExceeded("advertisement slots are full", map[string]any{
			"capacity": domain.AdvertiseCapacity,
		})
	}
	listing.Advertise = desired

	s.publish(ctx, events.Event{
		Type:       events.EventListingAdvertiseChanged,
		EntityID:   id,
		ActorEmail: actorEmail,
		Payload:    events.ListingAdvertiseChangedPayload{Advertise: desired},
	})
	return listing, nil
}

func (s *ListingService) publish(ctx context.Context, event events.Event) {
	if s.dispatcher == nil {
		return
	}
	event.ID = uuid.NewString()
	event.Timestamp = time.Now()
	_ = s.dispatcher.Publish(ctx, event)
}
