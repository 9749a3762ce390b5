package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/ticket-marketplace/internal/api/dto"
	"github.com/spec-kit/ticket-marketplace/internal/auth"
	"github.com/spec-kit/ticket-marketplace/internal/service"
	apperrors "github.com/spec-kit/ticket-marketplace/pkg/util"
)

// BookingsHandler exposes booking endpoints.
type BookingsHandler struct {
	bookings *service.BookingService
}

// NewBookingsHandler constructs handler.
func NewBookingsHandler(bookings *service.BookingService) *BookingsHandler {
	return &BookingsHandler{bookings: bookings}
}

// Book handles POST /book-ticket.
func (h *BookingsHandler) Book(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}

	var req dto.BookingCreateRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	booking, err := h.bookings.Book(c.UserContext(), principal.Email, req.ListingID)
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": dto.NewBookingResponse(booking)})
}

// VendorBookings handles GET /book-ticket. The view is scoped to the
// calling vendor's own listings, optionally narrowed by status.
func (h *BookingsHandler) VendorBookings(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}

	var status *string
	if s := c.Query("status"); s != "" {
		status = &s
	}

	bookings, err := h.bookings.VendorBookings(c.UserContext(), principal.Email, status)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewBookingResponses(bookings)})
}

// BuyerBookings handles GET /user-bookings, scoped to the caller.
func (h *BookingsHandler) BuyerBookings(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}

	bookings, err := h.bookings.BuyerBookings(c.UserContext(), principal.Email)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewBookingResponses(bookings)})
}

// UpdateStatus handles PATCH /update-booking/:id. Only the booking's
// vendor or an admin may mutate it.
func (h *BookingsHandler) UpdateStatus(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}

	var req dto.BookingStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	booking, err := h.bookings.UpdateStatus(c.UserContext(), principal.Email, principal.Role, c.Params("id"), req.Status)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewBookingResponse(booking)})
}
