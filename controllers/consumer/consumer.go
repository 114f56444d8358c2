package consumer

import (
	"github.com/gofiber/fiber/v2"
	"github.com/meinhoongagan/booking-marketplace/apperr"
	"github.com/meinhoongagan/booking-marketplace/controllers"
	"github.com/meinhoongagan/booking-marketplace/middleware"
	"github.com/meinhoongagan/booking-marketplace/services"
	"github.com/rs/zerolog"
)

// Controller serves the routes a logged-in consumer acts on.
type Controller struct {
	bookings *services.BookingService
	feedback *services.FeedbackService
	accounts *services.AccountService
	log      *zerolog.Logger
}

func NewController(bookings *services.BookingService, feedback *services.FeedbackService, accounts *services.AccountService, log *zerolog.Logger) *Controller {
	return &Controller{bookings: bookings, feedback: feedback, accounts: accounts, log: log}
}

// actingConsumer resolves the consumer id for a request body. A body naming a
// different consumer than the token is refused.
func actingConsumer(c *fiber.Ctx, claimed uint) (uint, error) {
	sub, err := middleware.CurrentSubject(c)
	if err != nil {
		return 0, err
	}
	if claimed != 0 && claimed != sub.ID {
		return 0, apperr.Denied("cannot act on behalf of consumer %d", claimed)
	}
	return sub.ID, nil
}

// fail keeps handler bodies short.
func (h *Controller) fail(c *fiber.Ctx, err error) error {
	return controllers.Fail(c, h.log, err)
}
