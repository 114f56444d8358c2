package consumer

import (
	"github.com/gofiber/fiber/v2"
	"github.com/meinhoongagan/booking-marketplace/controllers"
	"github.com/meinhoongagan/booking-marketplace/services"
)

// SubmitFeedback records a review of one of the consumer's bookings
func (h *Controller) SubmitFeedback(c *fiber.Ctx) error {
	var input services.SubmitFeedbackInput
	if err := controllers.ParseBody(c, &input); err != nil {
		return h.fail(c, err)
	}

	consumerID, err := actingConsumer(c, input.ConsumerID)
	if err != nil {
		return h.fail(c, err)
	}
	input.ConsumerID = consumerID

	view, err := h.feedback.SubmitFeedback(c.UserContext(), input)
	if err != nil {
		return h.fail(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(view)
}
