package service

import (
	"github.com/gofiber/fiber/v2"
	"github.com/meinhoongagan/booking-marketplace/controllers"
	"github.com/meinhoongagan/booking-marketplace/middleware"
	"github.com/meinhoongagan/booking-marketplace/models"
	"github.com/meinhoongagan/booking-marketplace/services"
	"github.com/rs/zerolog"
)

// Controller serves the routes a logged-in provider acts on.
type Controller struct {
	catalog  *services.CatalogService
	accounts *services.AccountService
	log      *zerolog.Logger
}

func NewController(catalog *services.CatalogService, accounts *services.AccountService, log *zerolog.Logger) *Controller {
	return &Controller{catalog: catalog, accounts: accounts, log: log}
}

// GetServices lists the provider's own services
func (h *Controller) GetServices(c *fiber.Ctx) error {
	sub, err := middleware.CurrentSubject(c)
	if err != nil {
		return controllers.Fail(c, h.log, err)
	}

	list, err := h.catalog.ListServices(c.UserContext(), sub.ID)
	if err != nil {
		return controllers.Fail(c, h.log, err)
	}

	views := make([]models.ServiceView, 0, len(list))
	for i := range list {
		views = append(views, models.NewServiceView(&list[i]))
	}
	return c.JSON(views)
}

// CreateService adds a service together with its availability
func (h *Controller) CreateService(c *fiber.Ctx) error {
	sub, err := middleware.CurrentSubject(c)
	if err != nil {
		return controllers.Fail(c, h.log, err)
	}

	var spec services.ServiceSpec
	if err := controllers.ParseBody(c, &spec); err != nil {
		return controllers.Fail(c, h.log, err)
	}

	svc, err := h.catalog.CreateService(c.UserContext(), sub.ID, spec)
	if err != nil {
		return controllers.Fail(c, h.log, err)
	}
	return c.Status(fiber.StatusCreated).JSON(models.NewServiceView(svc))
}

// UpdateService overwrites a service; serviceId may be omitted when the provider has at most one
func (h *Controller) UpdateService(c *fiber.Ctx) error {
	sub, err := middleware.CurrentSubject(c)
	if err != nil {
		return controllers.Fail(c, h.log, err)
	}

	var spec services.ServiceSpec
	if err := controllers.ParseBody(c, &spec); err != nil {
		return controllers.Fail(c, h.log, err)
	}

	svc, err := h.catalog.UpdateService(c.UserContext(), sub.ID, spec)
	if err != nil {
		return controllers.Fail(c, h.log, err)
	}
	return c.JSON(models.NewServiceView(svc))
}

func (h *Controller) DeleteService(c *fiber.Ctx) error {
	sub, err := middleware.CurrentSubject(c)
	if err != nil {
		return controllers.Fail(c, h.log, err)
	}
	id, err := controllers.ParamID(c, "id")
	if err != nil {
		return controllers.Fail(c, h.log, err)
	}

	if err := h.catalog.DeleteService(c.UserContext(), sub.ID, id); err != nil {
		return controllers.Fail(c, h.log, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
