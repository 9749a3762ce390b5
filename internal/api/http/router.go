package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/ticket-marketplace/internal/api/http/handlers"
	"github.com/spec-kit/ticket-marketplace/internal/auth"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health         *handlers.HealthHandler
	Users          *handlers.UsersHandler
	Listings       *handlers.ListingsHandler
	Marketplace    *handlers.MarketplaceHandler
	Bookings       *handlers.BookingsHandler
	AuthMiddleware *auth.Middleware
}

// RegisterRoutes wires HTTP routes. Path shapes are kept stable for
// existing clients; access control is enforced per route.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	authn := cfg.AuthMiddleware.Handle

	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)

	// Users.
	app.Post("/users", cfg.Users.Register)
	app.Get("/users/:email/role", authn, auth.RequireAuthenticated(), cfg.Users.GetRole)
	app.Get("/users", authn, auth.RequireAdmin(), cfg.Users.List)
	app.Patch("/user/:id", authn, auth.RequireAdmin(), cfg.Users.Patch)

	// Marketplace views. Fixed segments must be registered ahead of the
	// parameterised ticket routes below.
	app.Get("/all-tickets/latest-tickets", cfg.Marketplace.Latest)
	app.Get("/all-tickets/advertise-tickets/home-page", cfg.Marketplace.HomePageAdvertised)
	app.Get("/all-tickets/advertise-tickets", authn, auth.RequireAdmin(), cfg.Listings.ListAll)
	app.Get("/all-tickets", authn, auth.RequireAuthenticated(), cfg.Marketplace.Browse)
	app.Get("/tickets-details-card/:id", cfg.Marketplace.Detail)

	// Listings.
	app.Post("/tickets", authn, auth.RequireVendor(), cfg.Listings.Create)
	app.Get("/tickets", cfg.Listings.List)
	app.Patch("/tickets/:id/role", authn, auth.RequireAdmin(), cfg.Listings.Transition)
	app.Patch("/tickets/:id/advertise", authn, auth.RequireAdmin(), cfg.Listings.SetAdvertise)
	app.Patch("/tickets/:id", authn, auth.RequireVendor(), cfg.Listings.Edit)
	app.Delete("/tickets/:id", authn, auth.RequireVendor(), cfg.Listings.Delete)

	// Bookings.
	app.Post("/book-ticket", authn, auth.RequireAuthenticated(), cfg.Bookings.Book)
	app.Get("/book-ticket", authn, auth.RequireVendor(), cfg.Bookings.VendorBookings)
	app.Get("/user-bookings", authn, auth.RequireAuthenticated(), cfg.Bookings.BuyerBookings)
	app.Patch("/update-booking/:id", authn, auth.RequireAuthenticated(), cfg.Bookings.UpdateStatus)
}
