package service

import (
	"context"
	"strings"

	"github.com/spec-kit/ticket-marketplace/internal/domain"
	"github.com/spec-kit/ticket-marketplace/internal/repository"
	apperrors "github.com/spec-kit/ticket-marketplace/pkg/util"
)

// latestListingCount bounds the "latest tickets" home view.
const latestListingCount = 6

// MarketplaceQuery carries the public browse refinements.
type MarketplaceQuery struct {
	From      string
	To        string
	Transport string
	Sort      string
}

// MarketplaceService computes the publicly visible ticket set: approved
// listings excluding fraud-flagged vendors. The store narrows to approved
// listings; the fraud exclusion is applied here against the role store.
type MarketplaceService struct {
	listings repository.ListingRepository
	users    repository.UserRepository
}

// NewMarketplaceService constructs the service.
func NewMarketplaceService(listings repository.ListingRepository, users repository.UserRepository) *MarketplaceService {
	return &MarketplaceService{listings: listings, users: users}
}

// Browse returns the purchasable ticket set. From/to are matched as
// case-insensitive prefixes, transport as exact type equality. Without a
// sort parameter results are ordered by creation time ascending so the
// view is deterministic.
func (s *MarketplaceService) Browse(ctx context.Context, query MarketplaceQuery) ([]domain.Listing, error) {
	filter := repository.MarketplaceFilter{}

	if from := strings.TrimSpace(query.From); from != "" {
		filter.FromPrefix = &from
	}
	if to := strings.TrimSpace(query.To); to != "" {
		filter.ToPrefix = &to
	}
	if transport := strings.TrimSpace(query.Transport); transport != "" {
		filter.Transport = &transport
	}

	switch strings.ToLower(strings.TrimSpace(query.Sort)) {
	case "":
		filter.Sort = repository.PriceSortNone
	case "low":
		filter.Sort = repository.PriceSortLow
	case "high":
		filter.Sort = repository.PriceSortHigh
	default:
		return nil, apperrors.NewValidationError("sort must be low or high", map[string]any{"sort": query.Sort})
	}

	banned, err := s.fraudVendors(ctx)
	if err != nil {
		return nil, err
	}
	listings, err := s.listings.ListMarketplace(ctx, filter)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return dropFraudVendors(listings, banned), nil
}

// Latest returns the six newest purchasable listings, newest first.
func (s *MarketplaceService) Latest(ctx context.Context) ([]domain.Listing, error) {
	banned, err := s.fraudVendors(ctx)
	if err != nil {
		return nil, err
	}
	listings, err := s.listings.ListLatest(ctx, 0)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	visible := dropFraudVendors(listings, banned)
	if len(visible) > latestListingCount {
		visible = visible[:latestListingCount]
	}
	return visible, nil
}

// HomePageAdvertised returns advertised listings newest first. Placement
// is curated by admins, so this view intentionally skips the status and
// fraud predicates of the standard filter.
func (s *MarketplaceService) HomePageAdvertised(ctx context.Context) ([]domain.Listing, error) {
	listings, err := s.listings.ListAdvertised(ctx)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return listings, nil
}

func (s *MarketplaceService) fraudVendors(ctx context.Context) (map[string]struct{}, error) {
	emails, err := s.users.ListFraudVendorEmails(ctx)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	banned := make(map[string]struct{}, len(emails))
	for _, email := range emails {
		banned[email] = struct{}{}
	}
	return banned, nil
}

func dropFraudVendors(listings []domain.Listing, banned map[string]struct{}) []domain.Listing {
	if len(banned) == 0 {
		return listings
	}
	visible := make([]domain.Listing, 0, len(listings))
	for _, listing := range listings {
		if _, ok := banned[listing.VendorEmail]; !ok {
			visible = append(visible, listing)
		}
	}
	return visible
}
