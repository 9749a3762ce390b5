package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/spec-kit/ticket-marketplace/internal/domain"
	"github.com/spec-kit/ticket-marketplace/internal/repository"
)

func newMarketplaceService(listings *mockListingRepository, fraudEmails []string) *MarketplaceService {
	users := new(mockUserRepository)
	users.On("ListFraudVendorEmails", mock.Anything).Return(fraudEmails, nil)
	return NewMarketplaceService(listings, users)
}

func TestBrowseBuildsFilterFromQuery(t *testing.T) {
	repo := new(mockListingRepository)
	repo.On("ListMarketplace", mock.Anything, mock.MatchedBy(func(f repository.MarketplaceFilter) bool {
		return f.FromPrefix != nil && *f.FromPrefix == "dha" &&
			f.ToPrefix == nil &&
			f.Transport != nil && *f.Transport == "bus" &&
			f.Sort == repository.PriceSortLow
	})).Return([]domain.Listing{}, nil)

	svc := newMarketplaceService(repo, nil)
	_, err := svc.Browse(context.Background(), MarketplaceQuery{From: " dha ", Transport: "bus", Sort: "low"})

	assert.NoError(t, err)
	repo.AssertExpectations(t)
}

func TestBrowseDefaultsToUnsorted(t *testing.T) {
	repo := new(mockListingRepository)
	repo.On("ListMarketplace", mock.Anything, mock.MatchedBy(func(f repository.MarketplaceFilter) bool {
		return f.Sort == repository.PriceSortNone && f.FromPrefix == nil && f.ToPrefix == nil && f.Transport == nil
	})).Return([]domain.Listing{}, nil)

	svc := newMarketplaceService(repo, nil)
	_, err := svc.Browse(context.Background(), MarketplaceQuery{})

	assert.NoError(t, err)
}

func TestBrowseRejectsUnknownSort(t *testing.T) {
	svc := newMarketplaceService(new(mockListingRepository), nil)

	_, err := svc.Browse(context.Background(), MarketplaceQuery{Sort: "cheapest"})

	assert.Equal(t, "VALIDATION_FAILED", domainCode(t, err))
}

func TestBrowseExcludesFraudVendors(t *testing.T) {
	repo := new(mockListingRepository)
	repo.On("ListMarketplace", mock.Anything, mock.Anything).Return([]domain.Listing{
		{ID: "l1", VendorEmail: "clean@example.com", Status: domain.ListingStatusApprove},
		{ID: "l2", VendorEmail: "fraud@example.com", Status: domain.ListingStatusApprove},
		{ID: "l3", VendorEmail: "clean@example.com", Status: domain.ListingStatusApprove},
	}, nil)

	svc := newMarketplaceService(repo, []string{"fraud@example.com"})
	listings, err := svc.Browse(context.Background(), MarketplaceQuery{})

	assert.NoError(t, err)
	assert.Len(t, listings, 2)
	for _, listing := range listings {
		assert.Equal(t, "clean@example.com", listing.VendorEmail)
	}
}

func TestLatestExcludesFraudAndTrimsToSix(t *testing.T) {
	newest := make([]domain.Listing, 0, 9)
	for i := 0; i < 9; i++ {
		vendor := "clean@example.com"
		if i == 0 || i == 4 {
			vendor = "fraud@example.com"
		}
		newest = append(newest, domain.Listing{
			ID:          string(rune('a' + i)),
			VendorEmail: vendor,
			Status:      domain.ListingStatusApprove,
		})
	}

	repo := new(mockListingRepository)
	repo.On("ListLatest", mock.Anything, 0).Return(newest, nil)

	svc := newMarketplaceService(repo, []string{"fraud@example.com"})
	listings, err := svc.Latest(context.Background())

	assert.NoError(t, err)
	assert.Len(t, listings, 6)
	// Order is preserved; the two fraud entries are skipped, the trailing
	// clean one falls off the six-item window.
	assert.Equal(t, "b", listings[0].ID)
	assert.Equal(t, "h", listings[5].ID)
	for _, listing := range listings {
		assert.NotEqual(t, "fraud@example.com", listing.VendorEmail)
	}
}

func TestHomePageAdvertisedSkipsFraudExclusion(t *testing.T) {
	repo := new(mockListingRepository)
	repo.On("ListAdvertised", mock.Anything).Return([]domain.Listing{
		{ID: "l1", VendorEmail: "fraud@example.com", Advertise: true},
	}, nil)

	svc := newMarketplaceService(repo, []string{"fraud@example.com"})
	listings, err := svc.HomePageAdvertised(context.Background())

	assert.NoError(t, err)
	assert.Len(t, listings, 1)
}
