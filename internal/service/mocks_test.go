package service

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/spec-kit/ticket-marketplace/internal/domain"
	"github.com/spec-kit/ticket-marketplace/internal/events"
	"github.com/spec-kit/ticket-marketplace/internal/repository"
)

type mockUserRepository struct {
	mock.Mock
}

func (m *mockUserRepository) Create(ctx context.Context, user *domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *mockUserRepository) GetByID(ctx context.Context, id string) (*domain.User, error) {
	args := m.Called(ctx, id)
	if user := args.Get(0); user != nil {
		return user.(*domain.User), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockUserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	args := m.Called(ctx, email)
	if user := args.Get(0); user != nil {
		return user.(*domain.User), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockUserRepository) List(ctx context.Context) ([]domain.User, error) {
	args := m.Called(ctx)
	if users := args.Get(0); users != nil {
		return users.([]domain.User), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockUserRepository) ListFraudVendorEmails(ctx context.Context) ([]string, error) {
	args := m.Called(ctx)
	if emails := args.Get(0); emails != nil {
		return emails.([]string), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockUserRepository) Patch(ctx context.Context, id string, patch repository.UserPatch) error {
	args := m.Called(ctx, id, patch)
	return args.Error(0)
}

type mockListingRepository struct {
	mock.Mock
}

func (m *mockListingRepository) Create(ctx context.Context, listing *domain.Listing) error {
	args := m.Called(ctx, listing)
	return args.Error(0)
}

func (m *mockListingRepository) GetByID(ctx context.Context, id string) (*domain.Listing, error) {
	args := m.Called(ctx, id)
	if listing := args.Get(0); listing != nil {
		return listing.(*domain.Listing), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockListingRepository) List(ctx context.Context, filter repository.ListingFilter) ([]domain.Listing, error) {
	args := m.Called(ctx, filter)
	if listings := args.Get(0); listings != nil {
		return listings.([]domain.Listing), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockListingRepository) ListMarketplace(ctx context.Context, filter repository.MarketplaceFilter) ([]domain.Listing, error) {
	args := m.Called(ctx, filter)
	if listings := args.Get(0); listings != nil {
		return listings.([]domain.Listing), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockListingRepository) ListLatest(ctx context.Context, limit int) ([]domain.Listing, error) {
	args := m.Called(ctx, limit)
	if listings := args.Get(0); listings != nil {
		return listings.([]domain.Listing), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockListingRepository) ListAdvertised(ctx context.Context) ([]domain.Listing, error) {
	args := m.Called(ctx)
	if listings := args.Get(0); listings != nil {
		return listings.([]domain.Listing), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockListingRepository) UpdateContent(ctx context.Context, listing *domain.Listing) error {
	args := m.Called(ctx, listing)
	return args.Error(0)
}

func (m *mockListingRepository) SetStatus(ctx context.Context, id string, status domain.ListingStatus) error {
	args := m.Called(ctx, id, status)
	return args.Error(0)
}

func (m *mockListingRepository) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *mockListingRepository) CountAdvertised(ctx context.Context) (int, error) {
	args := m.Called(ctx)
	return args.Int(0), args.Error(1)
}

func (m *mockListingRepository) SetAdvertise(ctx context.Context, id string, desired bool) (bool, error) {
	args := m.Called(ctx, id, desired)
	return args.Bool(0), args.Error(1)
}

type mockBookingRepository struct {
	mock.Mock
}

func (m *mockBookingRepository) Create(ctx context.Context, booking *domain.Booking) error {
	args := m.Called(ctx, booking)
	return args.Error(0)
}

func (m *mockBookingRepository) GetByID(ctx context.Context, id string) (*domain.Booking, error) {
	args := m.Called(ctx, id)
	if booking := args.Get(0); booking != nil {
		return booking.(*domain.Booking), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockBookingRepository) List(ctx context.Context, filter repository.BookingFilter) ([]domain.Booking, error) {
	args := m.Called(ctx, filter)
	if bookings := args.Get(0); bookings != nil {
		return bookings.([]domain.Booking), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockBookingRepository) UpdateStatus(ctx context.Context, id, status string) error {
	args := m.Called(ctx, id, status)
	return args.Error(0)
}

type mockInvalidator struct {
	mock.Mock
}

func (m *mockInvalidator) Invalidate(ctx context.Context, email string) {
	m.Called(ctx, email)
}

type recordingDispatcher struct {
	published []events.Event
}

func (d *recordingDispatcher) Publish(ctx context.Context, event events.Event) error {
	d.published = append(d.published, event)
	return nil
}

func (d *recordingDispatcher) Subscribe(eventType events.EventType, handler events.EventHandler) {}
