package middleware

import (
	"github.com/gofiber/fiber/v2"
	jwtware "github.com/gofiber/jwt/v3"
	"github.com/golang-jwt/jwt/v4"
	"github.com/meinhoongagan/booking-marketplace/apperr"
	"github.com/meinhoongagan/booking-marketplace/services"
	"github.com/meinhoongagan/booking-marketplace/utils"
)

const (
	localToken  = "user"
	localUserID = "userID"
	localRole   = "role"
)

// Protected verifies the bearer token signature with jwtware and then asks the resolver for
// the acting subject, which also rejects revoked and refresh tokens.
func Protected(secret []byte, resolver services.IdentityResolver) fiber.Handler {
	return jwtware.New(jwtware.Config{
		SigningKey:    secret,
		SigningMethod: jwtware.HS256,
		ContextKey:    localToken,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			return unauthorized(c, apperr.Unauthenticated("missing or malformed token"))
		},
		SuccessHandler: func(c *fiber.Ctx) error {
			raw, ok := RawToken(c)
			if !ok {
				return unauthorized(c, apperr.Unauthenticated("no authentication token"))
			}

			sub, err := resolver.ResolveSubject(c.UserContext(), raw)
			if err != nil {
				return unauthorized(c, err)
			}

			c.Locals(localUserID, sub.ID)
			c.Locals(localRole, string(sub.Role))
			return c.Next()
		},
	})
}

// RawToken returns the bearer token validated by Protected.
func RawToken(c *fiber.Ctx) (string, bool) {
	token, ok := c.Locals(localToken).(*jwt.Token)
	if !ok || token == nil {
		return "", false
	}
	return token.Raw, true
}

// CurrentSubject returns the subject stored by Protected.
func CurrentSubject(c *fiber.Ctx) (services.Subject, error) {
	id, ok := c.Locals(localUserID).(uint)
	if !ok || id == 0 {
		return services.Subject{}, apperr.Unauthenticated("no authenticated subject")
	}
	role, _ := c.Locals(localRole).(string)
	return services.Subject{ID: id, Role: services.Role(role)}, nil
}

func unauthorized(c *fiber.Ctx, err error) error {
	_, body := utils.ErrorFor(err)
	return c.Status(fiber.StatusUnauthorized).JSON(body)
}
