package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/ticket-marketplace/internal/api/dto"
	"github.com/spec-kit/ticket-marketplace/internal/service"
)

// MarketplaceHandler exposes the public marketplace views.
type MarketplaceHandler struct {
	marketplace *service.MarketplaceService
	listings    *service.ListingService
}

// NewMarketplaceHandler constructs handler.
func NewMarketplaceHandler(marketplace *service.MarketplaceService, listings *service.ListingService) *MarketplaceHandler {
	return &MarketplaceHandler{marketplace: marketplace, listings: listings}
}

// Browse handles GET /all-tickets with from/to/transport/sort filters.
func (h *MarketplaceHandler) Browse(c *fiber.Ctx) error {
	listings, err := h.marketplace.Browse(c.UserContext(), service.MarketplaceQuery{
		From:      c.Query("from"),
		To:        c.Query("to"),
		Transport: c.Query("transport"),
		Sort:      c.Query("sort"),
	})
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewListingResponses(listings)})
}

// Latest handles GET /all-tickets/latest-tickets.
func (h *MarketplaceHandler) Latest(c *fiber.Ctx) error {
	listings, err := h.marketplace.Latest(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewListingResponses(listings)})
}

// HomePageAdvertised handles GET /all-tickets/advertise-tickets/home-page.
func (h *MarketplaceHandler) HomePageAdvertised(c *fiber.Ctx) error {
	listings, err := h.marketplace.HomePageAdvertised(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewListingResponses(listings)})
}

// Detail handles GET /tickets-details-card/:id.
func (h *MarketplaceHandler) Detail(c *fiber.Ctx) error {
	listing, err := h.listings.Get(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewListingResponse(listing)})
}
