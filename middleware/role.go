package middleware

import (
	"github.com/gofiber/fiber/v2"
	"github.com/meinhoongagan/booking-marketplace/apperr"
	"github.com/meinhoongagan/booking-marketplace/services"
	"github.com/meinhoongagan/booking-marketplace/utils"
)

// RequireRole checks that the authenticated subject has one of the given roles.
// It must run after Protected.
func RequireRole(roles ...services.Role) fiber.Handler {
	return func(c *fiber.Ctx) error {
		sub, err := CurrentSubject(c)
		if err != nil {
			return unauthorized(c, err)
		}

		for _, r := range roles {
			if sub.Role == r {
				return c.Next()
			}
		}

		status, body := utils.ErrorFor(apperr.Denied("this action requires the %s role", roles[0]))
		return c.Status(status).JSON(body)
	}
}
