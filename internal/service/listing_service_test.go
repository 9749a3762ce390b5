package service

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/ticket-marketplace/internal/domain"
	"github.com/spec-kit/ticket-marketplace/internal/repository"
	apperrors "github.com/spec-kit/ticket-marketplace/pkg/util"
)

func newListingService(repo repository.ListingRepository) *ListingService {
	return NewListingService(ListingDependencies{ListingRepo: repo})
}

func domainCode(t *testing.T, err error) string {
	t.Helper()
	var domainErr *apperrors.DomainError
	require.ErrorAs(t, err, &domainErr)
	return domainErr.Code
}

func TestListingCreateStampsPendingState(t *testing.T) {
	repo := new(mockListingRepository)
	repo.On("Create", mock.Anything, mock.MatchedBy(func(l *domain.Listing) bool {
		return l.Status == domain.ListingStatusPending && !l.Advertise
	})).Return(nil)

	svc := newListingService(repo)
	listing, err := svc.Create(context.Background(), "vendor@example.com", ListingCreateInput{
		Type:         "bus",
		FromLocation: "Dhaka",
		ToLocation:   "Chittagong",
		Price:        450,
		Quantity:     30,
	})

	assert.NoError(t, err)
	assert.Equal(t, domain.ListingStatusPending, listing.Status)
	assert.False(t, listing.Advertise)
	repo.AssertExpectations(t)
}

func TestListingCreateRejectsNonPositiveNumbers(t *testing.T) {
	svc := newListingService(new(mockListingRepository))

	cases := []ListingCreateInput{
		{Type: "bus", FromLocation: "Dhaka", ToLocation: "Sylhet", Price: 0, Quantity: 10},
		{Type: "bus", FromLocation: "Dhaka", ToLocation: "Sylhet", Price: -5, Quantity: 10},
		{Type: "bus", FromLocation: "Dhaka", ToLocation: "Sylhet", Price: 100, Quantity: 0},
		{Type: "bus", FromLocation: "Dhaka", ToLocation: "Sylhet", Price: 100, Quantity: -1},
	}
	for _, input := range cases {
		_, err := svc.Create(context.Background(), "vendor@example.com", input)
		assert.Equal(t, "VALIDATION_FAILED", domainCode(t, err))
	}
}

func TestListingTransitionAcceptsOnlyModerationStates(t *testing.T) {
	svc := newListingService(new(mockListingRepository))

	_, err := svc.Transition(context.Background(), "admin@example.com", "l1", domain.ListingStatusPending)
	assert.Equal(t, "VALIDATION_FAILED", domainCode(t, err))

	_, err = svc.Transition(context.Background(), "admin@example.com", "l1", domain.ListingStatus("published"))
	assert.Equal(t, "VALIDATION_FAILED", domainCode(t, err))
}

func TestListingTransitionAllowsReModeration(t *testing.T) {
	repo := new(mockListingRepository)
	repo.On("GetByID", mock.Anything, "l1").Return(&domain.Listing{
		ID: "l1", VendorEmail: "vendor@example.com", Status: domain.ListingStatusApprove,
	}, nil)
	repo.On("SetStatus", mock.Anything, "l1", domain.ListingStatusReject).Return(nil)

	svc := newListingService(repo)
	listing, err := svc.Transition(context.Background(), "admin@example.com", "l1", domain.ListingStatusReject)

	assert.NoError(t, err)
	assert.Equal(t, domain.ListingStatusReject, listing.Status)
	repo.AssertExpectations(t)
}

func TestListingEditRequiresOwnership(t *testing.T) {
	repo := new(mockListingRepository)
	repo.On("GetByID", mock.Anything, "l1").Return(&domain.Listing{
		ID: "l1", VendorEmail: "owner@example.com", Status: domain.ListingStatusPending,
	}, nil)

	svc := newListingService(repo)
	newType := "train"
	_, err := svc.EditContent(context.Background(), "other@example.com", "l1", ListingEditInput{Type: &newType})

	assert.Equal(t, "FORBIDDEN", domainCode(t, err))
}

func TestListingEditLockedAfterRejection(t *testing.T) {
	for _, status := range []domain.ListingStatus{"reject", "Reject", "REJECTED", "rejected"} {
		repo := new(mockListingRepository)
		repo.On("GetByID", mock.Anything, "l1").Return(&domain.Listing{
			ID: "l1", VendorEmail: "owner@example.com", Status: status,
		}, nil)

		svc := newListingService(repo)
		price := 500.0
		_, err := svc.EditContent(context.Background(), "owner@example.com", "l1", ListingEditInput{Price: &price})

		assert.Equal(t, "INVALID_STATE", domainCode(t, err))
		repo.AssertNotCalled(t, "UpdateContent", mock.Anything, mock.Anything)
	}
}

func TestListingEditAppliesPartialFields(t *testing.T) {
	repo := new(mockListingRepository)
	repo.On("GetByID", mock.Anything, "l1").Return(&domain.Listing{
		ID: "l1", VendorEmail: "owner@example.com", Status: domain.ListingStatusApprove,
		Type: "bus", Price: 450, Quantity: 30,
	}, nil)
	repo.On("UpdateContent", mock.Anything, mock.Anything).Return(nil)

	svc := newListingService(repo)
	price := 600.0
	listing, err := svc.EditContent(context.Background(), "owner@example.com", "l1", ListingEditInput{Price: &price})

	assert.NoError(t, err)
	assert.Equal(t, 600.0, listing.Price)
	assert.Equal(t, "bus", listing.Type)
	assert.Equal(t, 30, listing.Quantity)
}

func TestListingEditRejectsNonPositivePatch(t *testing.T) {
	repo := new(mockListingRepository)
	repo.On("GetByID", mock.Anything, "l1").Return(&domain.Listing{
		ID: "l1", VendorEmail: "owner@example.com", Status: domain.ListingStatusPending,
	}, nil)

	svc := newListingService(repo)
	price := -10.0
	_, err := svc.EditContent(context.Background(), "owner@example.com", "l1", ListingEditInput{Price: &price})

	assert.Equal(t, "VALIDATION_FAILED", domainCode(t, err))
	repo.AssertNotCalled(t, "UpdateContent", mock.Anything, mock.Anything)
}

func TestListingDeleteRequiresOwnership(t *testing.T) {
	repo := new(mockListingRepository)
	repo.On("GetByID", mock.Anything, "l1").Return(&domain.Listing{
		ID: "l1", VendorEmail: "owner@example.com",
	}, nil)

	svc := newListingService(repo)
	err := svc.Delete(context.Background(), "other@example.com", "l1")

	assert.Equal(t, "FORBIDDEN", domainCode(t, err))
	repo.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
}

func TestSetAdvertiseRefusedAtCapacity(t *testing.T) {
	repo := new(mockListingRepository)
	repo.On("GetByID", mock.Anything, "l1").Return(&domain.Listing{ID: "l1"}, nil)
	repo.On("CountAdvertised", mock.Anything).Return(domain.AdvertiseCapacity, nil)

	svc := newListingService(repo)
	_, err := svc.SetAdvertise(context.Background(), "admin@example.com", "l1", true)

	assert.Equal(t, "CAPACITY_EXCEEDED", domainCode(t, err))
	repo.AssertNotCalled(t, "SetAdvertise", mock.Anything, mock.Anything, mock.Anything)
}

func TestSetAdvertiseDisableAlwaysAllowed(t *testing.T) {
	repo := new(mockListingRepository)
	repo.On("GetByID", mock.Anything, "l1").Return(&domain.Listing{ID: "l1", Advertise: true}, nil)
	repo.On("SetAdvertise", mock.Anything, "l1", false).Return(true, nil)

	svc := newListingService(repo)
	listing, err := svc.SetAdvertise(context.Background(), "admin@example.com", "l1", false)

	assert.NoError(t, err)
	assert.False(t, listing.Advertise)
	repo.AssertNotCalled(t, "CountAdvertised", mock.Anything)
}

// advertiseStateRepo is an in-memory listing store used to exercise the
// advertise capacity under concurrent admins.
type advertiseStateRepo struct {
	mockListingRepository

	mu       sync.Mutex
	listings map[string]*domain.Listing
}

func newAdvertiseStateRepo(listings ...*domain.Listing) *advertiseStateRepo {
	repo := &advertiseStateRepo{listings: map[string]*domain.Listing{}}
	for _, listing := range listings {
		repo.listings[listing.ID] = listing
	}
	return repo
}

func (r *advertiseStateRepo) GetByID(ctx context.Context, id string) (*domain.Listing, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	copied := *r.listings[id]
	return &copied, nil
}

func (r *advertiseStateRepo) CountAdvertised(ctx context.Context) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	count := 0
	for _, listing := range r.listings {
		if listing.Advertise {
			count++
		}
	}
	return count, nil
}

func (r *advertiseStateRepo) SetAdvertise(ctx context.Context, id string, desired bool) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if desired {
		others := 0
		for _, listing := range r.listings {
			if listing.Advertise && listing.ID != id {
				others++
			}
		}
		if others >= domain.AdvertiseCapacity {
			return false, nil
		}
	}
	r.listings[id].Advertise = desired
	return true, nil
}

func TestSetAdvertiseConcurrentFillsExactlyOneSlot(t *testing.T) {
	seed := make([]*domain.Listing, 0, domain.AdvertiseCapacity+9)
	for i := 0; i < domain.AdvertiseCapacity-1; i++ {
		seed = append(seed, &domain.Listing{ID: string(rune('a' + i)), Advertise: true})
	}
	candidates := make([]string, 0, 10)
	for i := 0; i < 10; i++ {
		id := "candidate-" + string(rune('0'+i))
		candidates = append(candidates, id)
		seed = append(seed, &domain.Listing{ID: id})
	}

	repo := newAdvertiseStateRepo(seed...)
	svc := newListingService(repo)

	var wg sync.WaitGroup
	var succeeded, capacityHits int32
	var countMu sync.Mutex

	for _, id := range candidates {
		wg.Add(1)
		go func(listingID string) {
			defer wg.Done()
			_, err := svc.SetAdvertise(context.Background(), "admin@example.com", listingID, true)
			countMu.Lock()
			defer countMu.Unlock()
			if err == nil {
				succeeded++
				return
			}
			if domainErr := apperrors.ToDomainError(err); domainErr.Code == "CAPACITY_EXCEEDED" {
				capacityHits++
			}
		}(id)
	}
	wg.Wait()

	assert.Equal(t, int32(1), succeeded)
	assert.Equal(t, int32(9), capacityHits)

	total, err := repo.CountAdvertised(context.Background())
	assert.NoError(t, err)
	assert.Equal(t, domain.AdvertiseCapacity, total)
}
