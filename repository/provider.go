package repository

import (
	"context"

	"github.com/meinhoongagan/booking-marketplace/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

func (s *Store) CreateProvider(ctx context.Context, p *models.ServiceProvider) error {
	return translate(s.conn(ctx).Omit(clause.Associations).Create(p).Error, "service provider", p.Email)
}

func (s *Store) GetProvider(ctx context.Context, id uint) (*models.ServiceProvider, error) {
	var p models.ServiceProvider
	if err := s.conn(ctx).First(&p, id).Error; err != nil {
		return nil, translate(err, "service provider", id)
	}
	return &p, nil
}

func (s *Store) GetProviderByEmail(ctx context.Context, email string) (*models.ServiceProvider, error) {
	var p models.ServiceProvider
	if err := s.conn(ctx).Where("email = ?", email).First(&p).Error; err != nil {
		return nil, translate(err, "service provider", email)
	}
	return &p, nil
}

func (s *Store) UpdateProvider(ctx context.Context, p *models.ServiceProvider) error {
	return translate(s.conn(ctx).Omit(clause.Associations).Save(p).Error, "service provider", p.ID)
}

// ListProvidersWithServices loads every provider with its services and their availability.
func (s *Store) ListProvidersWithServices(ctx context.Context) ([]models.ServiceProvider, error) {
	var providers []models.ServiceProvider
	err := s.conn(ctx).
		Preload("Services", func(db *gorm.DB) *gorm.DB { return db.Order("services.id") }).
		Preload("Services.Availability").
		Order("id").
		Find(&providers).Error
	if err != nil {
		return nil, translate(err, "service providers", "list")
	}
	return providers, nil
}
