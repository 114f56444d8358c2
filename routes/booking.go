package routes

import (
	"github.com/gofiber/fiber/v2"
	"github.com/meinhoongagan/booking-marketplace/controllers"
	"github.com/meinhoongagan/booking-marketplace/controllers/consumer"
	"github.com/meinhoongagan/booking-marketplace/middleware"
	"github.com/meinhoongagan/booking-marketplace/services"
)

// SetupBookingRoutes configures booking and feedback routes
func SetupBookingRoutes(app *fiber.App, d Deps, protected fiber.Handler) {
	h := controllers.NewBookingController(d.Bookings, d.Log)
	catalog := controllers.NewCatalogController(d.Catalog, d.Schedule, d.Feedback, d.Log)
	c := consumer.NewController(d.Bookings, d.Feedback, d.Accounts, d.Log)
	consumerOnly := middleware.RequireRole(services.RoleConsumer)

	booking := app.Group("/bookings")
	booking.Post("/", protected, consumerOnly, c.CreateBooking)
	booking.Get("/", protected, h.ListBookings)
	booking.Patch("/:id/status", protected, h.UpdateStatus)

	feedback := app.Group("/feedback")
	feedback.Post("/", protected, consumerOnly, c.SubmitFeedback)
	feedback.Get("/", catalog.ListFeedback)
}
