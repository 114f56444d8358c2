package consumer

import (
	"github.com/gofiber/fiber/v2"
	"github.com/meinhoongagan/booking-marketplace/controllers"
	"github.com/meinhoongagan/booking-marketplace/middleware"
	"github.com/meinhoongagan/booking-marketplace/services"
)

// GetProfile returns the profile of the logged-in consumer
func (h *Controller) GetProfile(c *fiber.Ctx) error {
	sub, err := middleware.CurrentSubject(c)
	if err != nil {
		return h.fail(c, err)
	}

	consumer, err := h.accounts.GetConsumer(c.UserContext(), sub.ID)
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(consumer)
}

// UpdateProfile changes the fields present in the body
func (h *Controller) UpdateProfile(c *fiber.Ctx) error {
	sub, err := middleware.CurrentSubject(c)
	if err != nil {
		return h.fail(c, err)
	}

	var input services.ConsumerUpdate
	if err := controllers.ParseBody(c, &input); err != nil {
		return h.fail(c, err)
	}

	consumer, err := h.accounts.UpdateConsumer(c.UserContext(), sub.ID, input)
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(consumer)
}

// DeleteProfile removes the consumer along with its bookings and feedback
func (h *Controller) DeleteProfile(c *fiber.Ctx) error {
	sub, err := middleware.CurrentSubject(c)
	if err != nil {
		return h.fail(c, err)
	}

	if err := h.accounts.DeleteConsumer(c.UserContext(), sub.ID); err != nil {
		return h.fail(c, err)
	}
	return c.JSON(fiber.Map{"message": "Profile deleted successfully"})
}
