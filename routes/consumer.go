package routes

import (
	"github.com/gofiber/fiber/v2"
	"github.com/meinhoongagan/booking-marketplace/controllers/consumer"
	"github.com/meinhoongagan/booking-marketplace/middleware"
	"github.com/meinhoongagan/booking-marketplace/services"
)

// SetupConsumerRoutes configures all consumer related routes
func SetupConsumerRoutes(app *fiber.App, d Deps, protected fiber.Handler) {
	h := consumer.NewController(d.Bookings, d.Feedback, d.Accounts, d.Log)
	consumerGroup := app.Group("/consumer", protected, middleware.RequireRole(services.RoleConsumer))
	consumerGroup.Get("/profile", h.GetProfile)
	consumerGroup.Put("/profile", h.UpdateProfile)
	consumerGroup.Delete("/profile", h.DeleteProfile)
}
