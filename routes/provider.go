package routes

import (
	"github.com/gofiber/fiber/v2"
	"github.com/meinhoongagan/booking-marketplace/controllers"
	"github.com/meinhoongagan/booking-marketplace/controllers/service"
	"github.com/meinhoongagan/booking-marketplace/middleware"
	"github.com/meinhoongagan/booking-marketplace/services"
)

// SetupProviderRoutes configures the public provider listing and the provider's own profile
func SetupProviderRoutes(app *fiber.App, d Deps, protected fiber.Handler) {
	catalog := controllers.NewCatalogController(d.Catalog, d.Schedule, d.Feedback, d.Log)
	h := service.NewController(d.Catalog, d.Accounts, d.Log)
	providerOnly := middleware.RequireRole(services.RoleProvider)

	app.Get("/providers", catalog.ListProviders)

	provider := app.Group("/provider")
	provider.Get("/profile", protected, providerOnly, h.GetProfile)
	provider.Put("/profile", protected, providerOnly, h.UpdateProfile)
	provider.Post("/profile/picture", protected, providerOnly, h.UpdateProfilePicture)
	provider.Get("/:id/schedule", catalog.ProviderSchedule)
}
