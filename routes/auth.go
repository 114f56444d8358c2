package routes

import (
	"github.com/gofiber/fiber/v2"
	"github.com/meinhoongagan/booking-marketplace/controllers"
	"github.com/meinhoongagan/booking-marketplace/middleware"
)

// SetupAuthRoutes configures all authentication related routes
func SetupAuthRoutes(app *fiber.App, d Deps, protected fiber.Handler) {
	h := controllers.NewAuthController(d.Auth, d.Accounts, d.Log)
	auth := app.Group("/auth")

	// Public routes
	auth.Post("/consumer/register", h.RegisterConsumer)
	auth.Post("/service-provider/register", h.RegisterProvider)
	auth.Post("/login", middleware.RateLimit(d.Config.Auth.LoginRateLimit), h.Login)
	auth.Post("/refresh", h.Refresh)

	// Protected routes
	auth.Post("/logout", protected, h.Logout)
	auth.Get("/me", protected, h.Me)
}
