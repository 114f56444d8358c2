package routes

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/meinhoongagan/booking-marketplace/config"
	"github.com/meinhoongagan/booking-marketplace/controllers"
	"github.com/meinhoongagan/booking-marketplace/metrics"
	"github.com/meinhoongagan/booking-marketplace/middleware"
	"github.com/meinhoongagan/booking-marketplace/services"
	"github.com/meinhoongagan/booking-marketplace/utils"
	"github.com/rs/zerolog"
)

// Deps is everything the HTTP layer needs.
type Deps struct {
	Config   *config.Config
	Log      *zerolog.Logger
	Tokens   *services.TokenService
	Auth     *services.AuthService
	Accounts *services.AccountService
	Catalog  *services.CatalogService
	Bookings *services.BookingService
	Feedback *services.FeedbackService
	Schedule *services.ScheduleService
	Ping     controllers.Pinger
}

// New builds the fiber app with every route mounted.
func New(d Deps) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:               d.Config.App.Name,
		BodyLimit:             d.Config.Server.BodyLimit,
		DisableStartupMessage: true,
		ErrorHandler:          errorHandler,
	})

	app.Use(cors.New(cors.Config{
		AllowOrigins: d.Config.Server.AllowOrigins,
	}))
	app.Use(middleware.RequestLogger(d.Log))

	protected := middleware.Protected(d.Tokens.Secret(), d.Auth)

	app.Get("/health", controllers.NewHealthController(d.Ping, d.Log).Health)
	if d.Config.Monitoring.MetricsEnabled {
		metrics.Register()
		app.Get(d.Config.Monitoring.MetricsPath, adaptor.HTTPHandler(metrics.Handler()))
	}

	SetupAuthRoutes(app, d, protected)
	SetupServiceRoutes(app, d, protected)
	SetupProviderRoutes(app, d, protected)
	SetupBookingRoutes(app, d, protected)
	SetupConsumerRoutes(app, d, protected)

	return app
}

// errorHandler renders errors that escape a handler, such as unmatched routes.
func errorHandler(c *fiber.Ctx, err error) error {
	var fe *fiber.Error
	if errors.As(err, &fe) {
		return c.Status(fe.Code).JSON(utils.ErrorResponse{Message: fe.Message, Error: "http_error"})
	}
	status, body := utils.ErrorFor(err)
	return c.Status(status).JSON(body)
}
