package routes

import (
	"github.com/gofiber/fiber/v2"
	"github.com/meinhoongagan/booking-marketplace/controllers"
	"github.com/meinhoongagan/booking-marketplace/controllers/service"
	"github.com/meinhoongagan/booking-marketplace/middleware"
	"github.com/meinhoongagan/booking-marketplace/services"
)

// SetupServiceRoutes configures the provider catalog routes
func SetupServiceRoutes(app *fiber.App, d Deps, protected fiber.Handler) {
	h := service.NewController(d.Catalog, d.Accounts, d.Log)
	catalog := controllers.NewCatalogController(d.Catalog, d.Schedule, d.Feedback, d.Log)
	providerOnly := middleware.RequireRole(services.RoleProvider)

	svc := app.Group("/services")
	svc.Get("/", protected, providerOnly, h.GetServices)
	svc.Post("/", protected, providerOnly, h.CreateService)
	svc.Put("/", protected, providerOnly, h.UpdateService)
	svc.Get("/:id", catalog.GetService)
	svc.Delete("/:id", protected, providerOnly, h.DeleteService)
}
