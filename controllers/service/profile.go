package service

import (
	"github.com/gofiber/fiber/v2"
	"github.com/meinhoongagan/booking-marketplace/apperr"
	"github.com/meinhoongagan/booking-marketplace/controllers"
	"github.com/meinhoongagan/booking-marketplace/middleware"
	"github.com/meinhoongagan/booking-marketplace/services"
)

// GetProfile returns the logged-in provider's profile
func (h *Controller) GetProfile(c *fiber.Ctx) error {
	sub, err := middleware.CurrentSubject(c)
	if err != nil {
		return controllers.Fail(c, h.log, err)
	}

	provider, err := h.accounts.GetProviderProfile(c.UserContext(), sub.ID)
	if err != nil {
		return controllers.Fail(c, h.log, err)
	}
	return c.JSON(provider)
}

func (h *Controller) UpdateProfile(c *fiber.Ctx) error {
	sub, err := middleware.CurrentSubject(c)
	if err != nil {
		return controllers.Fail(c, h.log, err)
	}

	var input services.ProviderUpdate
	if err := controllers.ParseBody(c, &input); err != nil {
		return controllers.Fail(c, h.log, err)
	}

	provider, err := h.accounts.UpdateProviderProfile(c.UserContext(), sub.ID, input)
	if err != nil {
		return controllers.Fail(c, h.log, err)
	}
	return c.JSON(provider)
}

// UpdateProfilePicture uploads the multipart "picture" field and stores its URL
func (h *Controller) UpdateProfilePicture(c *fiber.Ctx) error {
	sub, err := middleware.CurrentSubject(c)
	if err != nil {
		return controllers.Fail(c, h.log, err)
	}

	file, err := c.FormFile("picture")
	if err != nil {
		return controllers.Fail(c, h.log, apperr.Invalid("picture file is required"))
	}

	f, err := file.Open()
	if err != nil {
		return controllers.Fail(c, h.log, err)
	}
	defer f.Close()

	provider, err := h.accounts.SetProviderPicture(c.UserContext(), sub.ID, f)
	if err != nil {
		return controllers.Fail(c, h.log, err)
	}
	return c.JSON(provider)
}
