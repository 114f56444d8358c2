package services

import (
	"context"
	"encoding/json"
	"errors"
	"math"
	"strconv"
	"strings"

	"github.com/meinhoongagan/booking-marketplace/apperr"
	"github.com/meinhoongagan/booking-marketplace/models"
	"github.com/meinhoongagan/booking-marketplace/repository"
	"github.com/rs/zerolog"
)

// ServiceSpec is the provider-supplied description of a service and its availability.
// Price may arrive as a JSON number or a numeric string.
type ServiceSpec struct {
	ServiceID      uint                     `json:"serviceId"`
	Name           string                   `json:"name"`
	Specialization string                   `json:"specialization"`
	Price          interface{}              `json:"price"`
	Duration       int                      `json:"duration"`
	Description    string                   `json:"description"`
	Category       string                   `json:"category"`
	Availability   *models.AvailabilityView `json:"availability"`
}

// ParsePrice accepts a non-negative finite number given as a number or a string.
func ParsePrice(v interface{}) (float64, error) {
	var price float64
	switch p := v.(type) {
	case nil:
		return 0, apperr.Invalid("price is required")
	case float64:
		price = p
	case float32:
		price = float64(p)
	case int:
		price = float64(p)
	case int64:
		price = float64(p)
	case json.Number:
		f, err := p.Float64()
		if err != nil {
			return 0, apperr.Invalid("price %q is not a number", p.String())
		}
		price = f
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil {
			return 0, apperr.Invalid("price %q is not a number", p)
		}
		price = f
	default:
		return 0, apperr.Invalid("price has unsupported type %T", v)
	}

	if math.IsNaN(price) || math.IsInf(price, 0) || price < 0 {
		return 0, apperr.Invalid("price must be a non-negative number")
	}
	return price, nil
}

// CatalogService manages the services a provider offers.
type CatalogService struct {
	repo repository.Repository
	log  *zerolog.Logger
}

func NewCatalogService(repo repository.Repository, log *zerolog.Logger) *CatalogService {
	return &CatalogService{repo: repo, log: nopLogger(log)}
}

// CreateService stores the service and its availability in one transaction.
func (s *CatalogService) CreateService(ctx context.Context, providerID uint, spec ServiceSpec) (*models.Service, error) {
	if _, err := s.repo.GetProvider(ctx, providerID); err != nil {
		return nil, err
	}
	if spec.Availability == nil {
		return nil, apperr.Invalid("availability is required")
	}

	svc := &models.Service{ProviderID: providerID}
	if err := applySpec(svc, spec); err != nil {
		return nil, err
	}
	availability, err := buildAvailability(spec.Availability)
	if err != nil {
		return nil, err
	}

	err = s.repo.Transaction(ctx, func(tx repository.Repository) error {
		if err := tx.CreateService(ctx, svc); err != nil {
			return err
		}
		availability.ServiceID = svc.ID
		return tx.SaveAvailability(ctx, availability)
	})
	if err != nil {
		return nil, err
	}

	svc.Availability = availability
	s.log.Info().Uint("provider_id", providerID).Uint("service_id", svc.ID).Msg("service created")
	return svc, nil
}

// UpdateService overwrites the addressed service in place. Without a service id the provider's
// only service is used, and a provider with none gets a new one.
func (s *CatalogService) UpdateService(ctx context.Context, providerID uint, spec ServiceSpec) (*models.Service, error) {
	svc, err := s.resolveForUpdate(ctx, providerID, spec.ServiceID)
	if err != nil {
		return nil, err
	}
	if svc == nil {
		return s.CreateService(ctx, providerID, spec)
	}

	if err := applySpec(svc, spec); err != nil {
		return nil, err
	}
	var incoming *models.Availability
	if spec.Availability != nil {
		if incoming, err = buildAvailability(spec.Availability); err != nil {
			return nil, err
		}
	}

	err = s.repo.Transaction(ctx, func(tx repository.Repository) error {
		if err := tx.SaveService(ctx, svc); err != nil {
			return err
		}

		existing, err := tx.GetAvailabilityByService(ctx, svc.ID)
		switch {
		case err == nil && incoming == nil:
			svc.Availability = existing
			return nil
		case err == nil:
			incoming.ID = existing.ID
			incoming.CreatedAt = existing.CreatedAt
		case !errors.Is(err, apperr.ErrNotFound):
			return err
		case incoming == nil:
			return apperr.Invalid("availability is required")
		}

		incoming.ServiceID = svc.ID
		if err := tx.SaveAvailability(ctx, incoming); err != nil {
			return err
		}
		svc.Availability = incoming
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.log.Info().Uint("provider_id", providerID).Uint("service_id", svc.ID).Msg("service updated")
	return svc, nil
}

// resolveForUpdate returns nil without error when the provider has no service yet.
func (s *CatalogService) resolveForUpdate(ctx context.Context, providerID, serviceID uint) (*models.Service, error) {
	if serviceID != 0 {
		svc, err := s.repo.GetService(ctx, serviceID)
		if err != nil {
			return nil, err
		}
		if svc.ProviderID != providerID {
			return nil, apperr.Denied("service %d belongs to another provider", serviceID)
		}
		return svc, nil
	}

	if _, err := s.repo.GetProvider(ctx, providerID); err != nil {
		return nil, err
	}
	existing, err := s.repo.ListServicesByProvider(ctx, providerID)
	if err != nil {
		return nil, err
	}
	switch len(existing) {
	case 0:
		return nil, nil
	case 1:
		return &existing[0], nil
	}
	return nil, apperr.Invalid("serviceId is required when the provider offers more than one service")
}

func (s *CatalogService) ListServices(ctx context.Context, providerID uint) ([]models.Service, error) {
	return s.repo.ListServicesByProvider(ctx, providerID)
}

func (s *CatalogService) GetService(ctx context.Context, serviceID uint) (*models.Service, error) {
	return s.repo.GetService(ctx, serviceID)
}

// DeleteService refuses while any booking still references the service.
func (s *CatalogService) DeleteService(ctx context.Context, providerID, serviceID uint) error {
	return s.repo.Transaction(ctx, func(tx repository.Repository) error {
		svc, err := tx.GetService(ctx, serviceID)
		if err != nil {
			return err
		}
		if svc.ProviderID != providerID {
			return apperr.Denied("service %d belongs to another provider", serviceID)
		}

		n, err := tx.CountBookingsForService(ctx, serviceID)
		if err != nil {
			return err
		}
		if n > 0 {
			return apperr.Conflict("service %d still has %d bookings", serviceID, n)
		}
		return tx.DeleteService(ctx, serviceID)
	})
}

func applySpec(svc *models.Service, spec ServiceSpec) error {
	name := strings.TrimSpace(spec.Name)
	if name == "" {
		return apperr.Invalid("service name is required")
	}
	price, err := ParsePrice(spec.Price)
	if err != nil {
		return err
	}
	if spec.Duration < 0 {
		return apperr.Invalid("duration cannot be negative")
	}

	svc.Name = name
	svc.Specialization = spec.Specialization
	svc.Price = price
	svc.Duration = spec.Duration
	svc.Description = spec.Description
	svc.Category = spec.Category
	return nil
}

func buildAvailability(v *models.AvailabilityView) (*models.Availability, error) {
	a := &models.Availability{
		WorkHoursStart: strings.TrimSpace(v.WorkHoursStart),
		WorkHoursEnd:   strings.TrimSpace(v.WorkHoursEnd),
		WorkingDays:    v.WorkingDays,
		TimePackages:   v.TimePackages,
	}
	if err := a.Validate(); err != nil {
		return nil, err
	}
	start, end, _ := a.Window()
	a.WorkHoursStart, a.WorkHoursEnd = models.FormatClock(start), models.FormatClock(end)
	return a, nil
}
