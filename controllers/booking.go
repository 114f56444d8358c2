package controllers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/meinhoongagan/booking-marketplace/middleware"
	"github.com/meinhoongagan/booking-marketplace/models"
	"github.com/meinhoongagan/booking-marketplace/services"
	"github.com/rs/zerolog"
)

// BookingController serves the booking routes shared by consumers and providers.
type BookingController struct {
	bookings *services.BookingService
	log      *zerolog.Logger
}

func NewBookingController(bookings *services.BookingService, log *zerolog.Logger) *BookingController {
	return &BookingController{bookings: bookings, log: log}
}

// ListBookings returns the caller's own bookings
func (h *BookingController) ListBookings(c *fiber.Ctx) error {
	sub, err := middleware.CurrentSubject(c)
	if err != nil {
		return Fail(c, h.log, err)
	}
	bookings, err := h.bookings.ListBookings(c.UserContext(), sub)
	if err != nil {
		return Fail(c, h.log, err)
	}
	return c.JSON(bookings)
}

// UpdateStatus moves a booking to the requested status
func (h *BookingController) UpdateStatus(c *fiber.Ctx) error {
	sub, err := middleware.CurrentSubject(c)
	if err != nil {
		return Fail(c, h.log, err)
	}
	id, err := ParamID(c, "id")
	if err != nil {
		return Fail(c, h.log, err)
	}

	var input struct {
		Status models.BookingStatus `json:"status"`
	}
	if err := ParseBody(c, &input); err != nil {
		return Fail(c, h.log, err)
	}

	booking, err := h.bookings.TransitionBooking(c.UserContext(), sub, id, input.Status)
	if err != nil {
		return Fail(c, h.log, err)
	}
	return c.JSON(booking)
}
