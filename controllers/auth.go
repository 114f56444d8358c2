package controllers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/meinhoongagan/booking-marketplace/apperr"
	"github.com/meinhoongagan/booking-marketplace/middleware"
	"github.com/meinhoongagan/booking-marketplace/services"
	"github.com/rs/zerolog"
)

type AuthController struct {
	auth     *services.AuthService
	accounts *services.AccountService
	log      *zerolog.Logger
}

func NewAuthController(auth *services.AuthService, accounts *services.AccountService, log *zerolog.Logger) *AuthController {
	return &AuthController{auth: auth, accounts: accounts, log: log}
}

// RegisterConsumer handles consumer registration
func (h *AuthController) RegisterConsumer(c *fiber.Ctx) error {
	var input services.RegisterConsumerInput
	if err := ParseBody(c, &input); err != nil {
		return Fail(c, h.log, err)
	}

	consumer, err := h.auth.RegisterConsumer(c.UserContext(), input)
	if err != nil {
		return Fail(c, h.log, err)
	}
	return c.Status(fiber.StatusCreated).JSON(consumer)
}

// RegisterProvider handles service provider registration
func (h *AuthController) RegisterProvider(c *fiber.Ctx) error {
	var input services.RegisterProviderInput
	if err := ParseBody(c, &input); err != nil {
		return Fail(c, h.log, err)
	}

	provider, err := h.auth.RegisterProvider(c.UserContext(), input)
	if err != nil {
		return Fail(c, h.log, err)
	}
	return c.Status(fiber.StatusCreated).JSON(provider)
}

// Login handles authentication for both account kinds
func (h *AuthController) Login(c *fiber.Ctx) error {
	type LoginInput struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}

	var input LoginInput
	if err := ParseBody(c, &input); err != nil {
		return Fail(c, h.log, err)
	}

	pair, err := h.auth.Authenticate(c.UserContext(), input.Email, input.Password)
	if err != nil {
		return Fail(c, h.log, err)
	}
	return c.JSON(pair)
}

func (h *AuthController) Refresh(c *fiber.Ctx) error {
	var input struct {
		RefreshToken string `json:"refreshToken"`
	}
	if err := ParseBody(c, &input); err != nil {
		return Fail(c, h.log, err)
	}
	if input.RefreshToken == "" {
		return Fail(c, h.log, apperr.Unauthenticated("refreshToken is required"))
	}

	pair, err := h.auth.Refresh(c.UserContext(), input.RefreshToken)
	if err != nil {
		return Fail(c, h.log, err)
	}
	return c.JSON(pair)
}

// Logout revokes the presented access token
func (h *AuthController) Logout(c *fiber.Ctx) error {
	raw, ok := middleware.RawToken(c)
	if !ok {
		return Fail(c, h.log, apperr.Unauthenticated("no authentication token"))
	}
	if err := h.auth.Revoke(c.UserContext(), raw); err != nil {
		return Fail(c, h.log, err)
	}
	return c.JSON(fiber.Map{"message": "Successfully logged out"})
}

// Me returns the account behind the current token
func (h *AuthController) Me(c *fiber.Ctx) error {
	sub, err := middleware.CurrentSubject(c)
	if err != nil {
		return Fail(c, h.log, err)
	}

	switch sub.Role {
	case services.RoleProvider:
		p, err := h.accounts.GetProviderProfile(c.UserContext(), sub.ID)
		if err != nil {
			return Fail(c, h.log, err)
		}
		return c.JSON(fiber.Map{"role": sub.Role, "provider": p})
	default:
		consumer, err := h.accounts.GetConsumer(c.UserContext(), sub.ID)
		if err != nil {
			return Fail(c, h.log, err)
		}
		return c.JSON(fiber.Map{"role": sub.Role, "consumer": consumer})
	}
}
