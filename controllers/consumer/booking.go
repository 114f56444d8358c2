package consumer

import (
	"github.com/gofiber/fiber/v2"
	"github.com/meinhoongagan/booking-marketplace/controllers"
	"github.com/meinhoongagan/booking-marketplace/services"
)

// CreateBooking books a service slot for the logged-in consumer
func (h *Controller) CreateBooking(c *fiber.Ctx) error {
	var input services.CreateBookingInput
	if err := controllers.ParseBody(c, &input); err != nil {
		return h.fail(c, err)
	}

	consumerID, err := actingConsumer(c, input.ConsumerID)
	if err != nil {
		return h.fail(c, err)
	}
	input.ConsumerID = consumerID

	booking, err := h.bookings.CreateBooking(c.UserContext(), input)
	if err != nil {
		return h.fail(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(booking)
}
