package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/meinhoongagan/booking-marketplace/apperr"
	"github.com/meinhoongagan/booking-marketplace/models"
	"gorm.io/gorm"
)

// Repository is the persistence boundary used by the services package.
type Repository interface {
	// Transaction runs fn against a repository bound to one database transaction.
	Transaction(ctx context.Context, fn func(Repository) error) error

	CreateConsumer(ctx context.Context, c *models.Consumer) error
	GetConsumer(ctx context.Context, id uint) (*models.Consumer, error)
	GetConsumerByEmail(ctx context.Context, email string) (*models.Consumer, error)
	UpdateConsumer(ctx context.Context, c *models.Consumer) error
	DeleteConsumer(ctx context.Context, id uint) error

	CreateProvider(ctx context.Context, p *models.ServiceProvider) error
	GetProvider(ctx context.Context, id uint) (*models.ServiceProvider, error)
	GetProviderByEmail(ctx context.Context, email string) (*models.ServiceProvider, error)
	UpdateProvider(ctx context.Context, p *models.ServiceProvider) error
	ListProvidersWithServices(ctx context.Context) ([]models.ServiceProvider, error)

	CreateService(ctx context.Context, s *models.Service) error
	SaveService(ctx context.Context, s *models.Service) error
	GetService(ctx context.Context, id uint) (*models.Service, error)
	ListServicesByProvider(ctx context.Context, providerID uint) ([]models.Service, error)
	DeleteService(ctx context.Context, id uint) error
	GetAvailabilityByService(ctx context.Context, serviceID uint) (*models.Availability, error)
	SaveAvailability(ctx context.Context, a *models.Availability) error

	CreateBooking(ctx context.Context, b *models.Booking) error
	GetBooking(ctx context.Context, id uint) (*models.Booking, error)
	// UpdateBookingStatus moves the booking from one status to another. It fails with Conflict
	// when the stored status is no longer from.
	UpdateBookingStatus(ctx context.Context, id uint, from, to models.BookingStatus) error
	ExistsBookingForConsumer(ctx context.Context, bookingID, consumerID uint) (bool, error)
	CountBookingsForService(ctx context.Context, serviceID uint) (int64, error)
	CountActiveBookingsAt(ctx context.Context, serviceID uint, at time.Time) (int64, error)
	ListBookingsByConsumer(ctx context.Context, consumerID uint) ([]models.Booking, error)
	ListBookingsByProvider(ctx context.Context, providerID uint) ([]models.Booking, error)
	ListActiveBookingsForServices(ctx context.Context, serviceIDs []uint, from, to time.Time) ([]models.Booking, error)
	ListConfirmedBookingsBetween(ctx context.Context, from, to time.Time) ([]models.Booking, error)

	CreateFeedback(ctx context.Context, f *models.Feedback) error
	ExistsFeedback(ctx context.Context, consumerID, bookingID uint) (bool, error)
	ListFeedback(ctx context.Context) ([]models.Feedback, error)
	ListFeedbackByConsumer(ctx context.Context, consumerID uint) ([]models.Feedback, error)
}

// Store implements Repository on top of gorm.
type Store struct {
	db *gorm.DB
}

var _ Repository = (*Store)(nil)

func New(db *gorm.DB) *Store {
	return &Store{db: db}
}

func (s *Store) Transaction(ctx context.Context, fn func(Repository) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&Store{db: tx})
	})
}

func (s *Store) conn(ctx context.Context) *gorm.DB {
	return s.db.WithContext(ctx)
}

// translate maps gorm errors onto the apperr taxonomy. The database must be opened with TranslateError.
func translate(err error, entity string, key any) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return apperr.NotFound("%s %v", entity, key)
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return apperr.Conflict("%s already exists", entity)
	case errors.Is(err, gorm.ErrForeignKeyViolated):
		return apperr.Invalid("%s references a missing record", entity)
	}
	return fmt.Errorf("%s: %w", entity, err)
}
