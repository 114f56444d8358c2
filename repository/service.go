package repository

import (
	"context"

	"github.com/meinhoongagan/booking-marketplace/apperr"
	"github.com/meinhoongagan/booking-marketplace/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

func (s *Store) CreateService(ctx context.Context, svc *models.Service) error {
	return translate(s.conn(ctx).Omit(clause.Associations).Create(svc).Error, "service", svc.Name)
}

func (s *Store) SaveService(ctx context.Context, svc *models.Service) error {
	return translate(s.conn(ctx).Omit(clause.Associations).Save(svc).Error, "service", svc.ID)
}

func (s *Store) GetService(ctx context.Context, id uint) (*models.Service, error) {
	var svc models.Service
	if err := s.conn(ctx).Preload("Availability").First(&svc, id).Error; err != nil {
		return nil, translate(err, "service", id)
	}
	return &svc, nil
}

// ListServicesByProvider returns the provider's services in insertion order.
func (s *Store) ListServicesByProvider(ctx context.Context, providerID uint) ([]models.Service, error) {
	var services []models.Service
	err := s.conn(ctx).Preload("Availability").
		Where("provider_id = ?", providerID).
		Order("id").
		Find(&services).Error
	if err != nil {
		return nil, translate(err, "services", providerID)
	}
	return services, nil
}

// DeleteService removes the service and its availability.
func (s *Store) DeleteService(ctx context.Context, id uint) error {
	return s.conn(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("service_id = ?", id).Delete(&models.Availability{}).Error; err != nil {
			return translate(err, "availability", id)
		}
		res := tx.Delete(&models.Service{}, id)
		if res.Error != nil {
			return translate(res.Error, "service", id)
		}
		if res.RowsAffected == 0 {
			return apperr.NotFound("service %d", id)
		}
		return nil
	})
}

func (s *Store) GetAvailabilityByService(ctx context.Context, serviceID uint) (*models.Availability, error) {
	var a models.Availability
	if err := s.conn(ctx).Where("service_id = ?", serviceID).First(&a).Error; err != nil {
		return nil, translate(err, "availability for service", serviceID)
	}
	return &a, nil
}

// SaveAvailability inserts a new record when ID is zero and overwrites it otherwise.
func (s *Store) SaveAvailability(ctx context.Context, a *models.Availability) error {
	return translate(s.conn(ctx).Save(a).Error, "availability", a.ServiceID)
}
