package controllers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/meinhoongagan/booking-marketplace/models"
	"github.com/meinhoongagan/booking-marketplace/services"
	"github.com/rs/zerolog"
)

// CatalogController serves the public read paths.
type CatalogController struct {
	catalog  *services.CatalogService
	schedule *services.ScheduleService
	feedback *services.FeedbackService
	log      *zerolog.Logger
}

func NewCatalogController(catalog *services.CatalogService, schedule *services.ScheduleService, feedback *services.FeedbackService, log *zerolog.Logger) *CatalogController {
	return &CatalogController{catalog: catalog, schedule: schedule, feedback: feedback, log: log}
}

func (h *CatalogController) ListProviders(c *fiber.Ctx) error {
	providers, err := h.schedule.ListProvidersWithServices(c.UserContext())
	if err != nil {
		return Fail(c, h.log, err)
	}
	return c.JSON(providers)
}

// ProviderSchedule lists bookable slots; ?from=YYYY-MM-DD&days=N
func (h *CatalogController) ProviderSchedule(c *fiber.Ctx) error {
	providerID, err := ParamID(c, "id")
	if err != nil {
		return Fail(c, h.log, err)
	}
	from, err := h.schedule.ParseScheduleDate(c.Query("from"))
	if err != nil {
		return Fail(c, h.log, err)
	}

	slots, err := h.schedule.ListSchedulesForProvider(c.UserContext(), providerID, from, c.QueryInt("days", 0))
	if err != nil {
		return Fail(c, h.log, err)
	}
	return c.JSON(slots)
}

func (h *CatalogController) GetService(c *fiber.Ctx) error {
	id, err := ParamID(c, "id")
	if err != nil {
		return Fail(c, h.log, err)
	}
	svc, err := h.catalog.GetService(c.UserContext(), id)
	if err != nil {
		return Fail(c, h.log, err)
	}
	return c.JSON(models.NewServiceView(svc))
}

// ListFeedback returns every feedback entry, or one consumer's with ?consumerId=
func (h *CatalogController) ListFeedback(c *fiber.Ctx) error {
	consumerID, filtered, err := QueryID(c, "consumerId")
	if err != nil {
		return Fail(c, h.log, err)
	}

	var out []models.FeedbackView
	if filtered {
		out, err = h.feedback.ListFeedbackForConsumer(c.UserContext(), consumerID)
	} else {
		out, err = h.feedback.ListFeedback(c.UserContext())
	}
	if err != nil {
		return Fail(c, h.log, err)
	}
	return c.JSON(out)
}
