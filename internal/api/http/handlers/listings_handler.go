package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/ticket-marketplace/internal/api/dto"
	"github.com/spec-kit/ticket-marketplace/internal/auth"
	"github.com/spec-kit/ticket-marketplace/internal/domain"
	"github.com/spec-kit/ticket-marketplace/internal/repository"
	"github.com/spec-kit/ticket-marketplace/internal/service"
	apperrors "github.com/spec-kit/ticket-marketplace/pkg/util"
)

// ListingsHandler exposes the vendor and admin listing endpoints.
type ListingsHandler struct {
	listings *service.ListingService
}

// NewListingsHandler constructs handler.
func NewListingsHandler(listings *service.ListingService) *ListingsHandler {
	return &ListingsHandler{listings: listings}
}

// Create handles POST /tickets.
func (h *ListingsHandler) Create(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}

	var req dto.ListingCreateRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	listing, err := h.listings.Create(c.UserContext(), principal.Email, service.ListingCreateInput{
		Type:         req.Type,
		FromLocation: req.FromLocation,
		ToLocation:   req.ToLocation,
		Price:        req.Price,
		Quantity:     req.Quantity,
	})
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": dto.NewListingResponse(listing)})
}

// List handles GET /tickets, the raw operational view filtered by status
// and vendorEmail.
func (h *ListingsHandler) List(c *fiber.Ctx) error {
	filter := repository.ListingFilter{}
	if status := c.Query("status"); status != "" {
		listingStatus := domain.ListingStatus(status)
		filter.Status = &listingStatus
	}
	if vendor := c.Query("vendorEmail"); vendor != "" {
		filter.VendorEmail = &vendor
	}

	listings, err := h.listings.List(c.UserContext(), filter)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewListingResponses(listings)})
}

// ListAll handles GET /all-tickets/advertise-tickets. Despite the legacy
// path it returns the full listing set for admin review.
func (h *ListingsHandler) ListAll(c *fiber.Ctx) error {
	listings, err := h.listings.List(c.UserContext(), repository.ListingFilter{})
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewListingResponses(listings)})
}

// Transition handles PATCH /tickets/:id/role, the admin status
// transition.
func (h *ListingsHandler) Transition(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}

	var req dto.ListingStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	listing, err := h.listings.Transition(c.UserContext(), principal.Email, c.Params("id"), domain.ListingStatus(req.Status))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewListingResponse(listing)})
}

// Edit handles PATCH /tickets/:id, the reject-locked vendor content edit.
func (h *ListingsHandler) Edit(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}

	var req dto.ListingEditRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	listing, err := h.listings.EditContent(c.UserContext(), principal.Email, c.Params("id"), service.ListingEditInput{
		Type:         req.Type,
		FromLocation: req.FromLocation,
		ToLocation:   req.ToLocation,
		Price:        req.Price,
		Quantity:     req.Quantity,
	})
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewListingResponse(listing)})
}

// Delete handles DELETE /tickets/:id.
func (h *ListingsHandler) Delete(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}

	if err := h.listings.Delete(c.UserContext(), principal.Email, c.Params("id")); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": fiber.Map{"deleted": true}})
}

// SetAdvertise handles PATCH /tickets/:id/advertise, capacity-checked.
func (h *ListingsHandler) SetAdvertise(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}

	var req dto.ListingAdvertiseRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	listing, err := h.listings.SetAdvertise(c.UserContext(), principal.Email, c.Params("id"), req.Advertise)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewListingResponse(listing)})
}
