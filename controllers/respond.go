package controllers

import (
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/meinhoongagan/booking-marketplace/apperr"
	"github.com/meinhoongagan/booking-marketplace/utils"
	"github.com/rs/zerolog"
)

// Fail writes err as a JSON error response. Unexpected errors are logged and masked.
func Fail(c *fiber.Ctx, log *zerolog.Logger, err error) error {
	status, body := utils.ErrorFor(err)
	if status == fiber.StatusInternalServerError {
		log.Error().Err(err).
			Str("method", c.Method()).
			Str("path", c.Path()).
			Interface("request_id", c.Locals("requestID")).
			Msg("request failed")
	}
	return c.Status(status).JSON(body)
}

// ParseBody decodes the JSON body. Malformed availability payloads keep their DataFormat kind.
func ParseBody(c *fiber.Ctx, out interface{}) error {
	if err := c.BodyParser(out); err != nil {
		if errors.Is(err, apperr.ErrDataFormat) {
			return err
		}
		return apperr.Invalid("cannot parse request body: %v", err)
	}
	return nil
}

// ParamID reads a positive numeric route parameter.
func ParamID(c *fiber.Ctx, name string) (uint, error) {
	id, err := strconv.ParseUint(c.Params(name), 10, 64)
	if err != nil || id == 0 {
		return 0, apperr.Invalid("%s must be a positive integer", name)
	}
	return uint(id), nil
}

// QueryID reads an optional positive numeric query parameter.
func QueryID(c *fiber.Ctx, name string) (uint, bool, error) {
	raw := c.Query(name)
	if raw == "" {
		return 0, false, nil
	}
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || id == 0 {
		return 0, false, apperr.Invalid("%s must be a positive integer", name)
	}
	return uint(id), true, nil
}
