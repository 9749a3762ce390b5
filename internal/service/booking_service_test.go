package service

import (
	"context"
	"regexp"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/spec-kit/ticket-marketplace/internal/domain"
)

func newBookingService(bookings *mockBookingRepository, listings *mockListingRepository) *BookingService {
	return NewBookingService(BookingDependencies{BookingRepo: bookings, ListingRepo: listings})
}

func TestBookSnapshotsListingAndStampsTrackID(t *testing.T) {
	listings := new(mockListingRepository)
	listings.On("GetByID", mock.Anything, "l1").Return(&domain.Listing{
		ID: "l1", VendorEmail: "vendor@example.com", Type: "train",
		FromLocation: "Dhaka", ToLocation: "Sylhet", Price: 320,
	}, nil)

	bookings := new(mockBookingRepository)
	bookings.On("Create", mock.Anything, mock.Anything).Return(nil)

	svc := newBookingService(bookings, listings)
	booking, err := svc.Book(context.Background(), "buyer@example.com", "l1")

	assert.NoError(t, err)
	assert.Equal(t, "vendor@example.com", booking.VendorEmail)
	assert.Equal(t, "train", booking.Type)
	assert.Equal(t, 320.0, booking.Price)
	assert.Equal(t, domain.BookingStatusPending, booking.Status)
	assert.Regexp(t, regexp.MustCompile(`^PRCL-\d{8}-[0-9A-F]{6}$`), booking.TrackID)
}

func TestBookUnknownListingIsNotFound(t *testing.T) {
	listings := new(mockListingRepository)
	listings.On("GetByID", mock.Anything, "missing").Return(nil, pgx.ErrNoRows)

	svc := newBookingService(new(mockBookingRepository), listings)
	_, err := svc.Book(context.Background(), "buyer@example.com", "missing")

	assert.Equal(t, "NOT_FOUND", domainCode(t, err))
}

func TestUpdateStatusRequiresVendorOwnershipOrAdmin(t *testing.T) {
	booking := &domain.Booking{ID: "b1", VendorEmail: "vendor@example.com", Status: "pending"}

	bookings := new(mockBookingRepository)
	bookings.On("GetByID", mock.Anything, "b1").Return(booking, nil)

	svc := newBookingService(bookings, new(mockListingRepository))
	_, err := svc.UpdateStatus(context.Background(), "stranger@example.com", domain.RoleVendor, "b1", "confirmed")

	assert.Equal(t, "FORBIDDEN", domainCode(t, err))
	bookings.AssertNotCalled(t, "UpdateStatus", mock.Anything, mock.Anything, mock.Anything)
}

func TestUpdateStatusAllowsOwningVendor(t *testing.T) {
	booking := &domain.Booking{ID: "b1", VendorEmail: "vendor@example.com", Status: "pending"}

	bookings := new(mockBookingRepository)
	bookings.On("GetByID", mock.Anything, "b1").Return(booking, nil)
	bookings.On("UpdateStatus", mock.Anything, "b1", "confirmed").Return(nil)

	svc := newBookingService(bookings, new(mockListingRepository))
	updated, err := svc.UpdateStatus(context.Background(), "vendor@example.com", domain.RoleVendor, "b1", "confirmed")

	assert.NoError(t, err)
	assert.Equal(t, "confirmed", updated.Status)
}

func TestUpdateStatusAllowsAdminOverride(t *testing.T) {
	booking := &domain.Booking{ID: "b1", VendorEmail: "vendor@example.com", Status: "pending"}

	bookings := new(mockBookingRepository)
	bookings.On("GetByID", mock.Anything, "b1").Return(booking, nil)
	bookings.On("UpdateStatus", mock.Anything, "b1", "cancelled").Return(nil)

	svc := newBookingService(bookings, new(mockListingRepository))
	updated, err := svc.UpdateStatus(context.Background(), "admin@example.com", domain.RoleAdmin, "b1", "cancelled")

	assert.NoError(t, err)
	assert.Equal(t, "cancelled", updated.Status)
}
