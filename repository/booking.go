package repository

import (
	"context"
	"time"

	"github.com/meinhoongagan/booking-marketplace/apperr"
	"github.com/meinhoongagan/booking-marketplace/models"
	"gorm.io/gorm/clause"
)

func (s *Store) CreateBooking(ctx context.Context, b *models.Booking) error {
	return translate(s.conn(ctx).Omit(clause.Associations).Create(b).Error, "booking", b.DateTime)
}

func (s *Store) GetBooking(ctx context.Context, id uint) (*models.Booking, error) {
	var b models.Booking
	err := s.conn(ctx).
		Preload("Consumer").Preload("Provider").Preload("Service").
		First(&b, id).Error
	if err != nil {
		return nil, translate(err, "booking", id)
	}
	return &b, nil
}

func (s *Store) UpdateBookingStatus(ctx context.Context, id uint, from, to models.BookingStatus) error {
	res := s.conn(ctx).Model(&models.Booking{}).
		Where("id = ? AND status = ?", id, from).
		Update("status", to)
	if res.Error != nil {
		return translate(res.Error, "booking", id)
	}
	if res.RowsAffected > 0 {
		return nil
	}

	var current models.Booking
	if err := s.conn(ctx).Select("id", "status").First(&current, id).Error; err != nil {
		return translate(err, "booking", id)
	}
	return apperr.Conflict("booking %d is %s, not %s", id, current.Status, from)
}

func (s *Store) ExistsBookingForConsumer(ctx context.Context, bookingID, consumerID uint) (bool, error) {
	var n int64
	err := s.conn(ctx).Model(&models.Booking{}).
		Where("id = ? AND consumer_id = ?", bookingID, consumerID).
		Count(&n).Error
	if err != nil {
		return false, translate(err, "booking", bookingID)
	}
	return n > 0, nil
}

func (s *Store) CountBookingsForService(ctx context.Context, serviceID uint) (int64, error) {
	var n int64
	err := s.conn(ctx).Model(&models.Booking{}).Where("service_id = ?", serviceID).Count(&n).Error
	return n, translate(err, "bookings for service", serviceID)
}

// CountActiveBookingsAt counts non-cancelled bookings of the service starting exactly at.
func (s *Store) CountActiveBookingsAt(ctx context.Context, serviceID uint, at time.Time) (int64, error) {
	var n int64
	err := s.conn(ctx).Model(&models.Booking{}).
		Where("service_id = ? AND date_time = ? AND status <> ?", serviceID, at.UTC(), models.StatusCancelled).
		Count(&n).Error
	return n, translate(err, "bookings for service", serviceID)
}

func (s *Store) ListBookingsByConsumer(ctx context.Context, consumerID uint) ([]models.Booking, error) {
	var bookings []models.Booking
	err := s.conn(ctx).Preload("Service").Preload("Provider").
		Where("consumer_id = ?", consumerID).
		Order("id").
		Find(&bookings).Error
	if err != nil {
		return nil, translate(err, "bookings", consumerID)
	}
	return bookings, nil
}

func (s *Store) ListBookingsByProvider(ctx context.Context, providerID uint) ([]models.Booking, error) {
	var bookings []models.Booking
	err := s.conn(ctx).Preload("Service").Preload("Consumer").
		Where("provider_id = ?", providerID).
		Order("id").
		Find(&bookings).Error
	if err != nil {
		return nil, translate(err, "bookings", providerID)
	}
	return bookings, nil
}

// ListActiveBookingsForServices returns non-cancelled bookings of the given services in [from, to).
func (s *Store) ListActiveBookingsForServices(ctx context.Context, serviceIDs []uint, from, to time.Time) ([]models.Booking, error) {
	var bookings []models.Booking
	if len(serviceIDs) == 0 {
		return bookings, nil
	}
	err := s.conn(ctx).
		Where("service_id IN ? AND status <> ?", serviceIDs, models.StatusCancelled).
		Where("date_time >= ? AND date_time < ?", from.UTC(), to.UTC()).
		Order("date_time").
		Find(&bookings).Error
	if err != nil {
		return nil, translate(err, "bookings", serviceIDs)
	}
	return bookings, nil
}

// ListConfirmedBookingsBetween feeds the reminder job; consumer, provider and service are preloaded.
func (s *Store) ListConfirmedBookingsBetween(ctx context.Context, from, to time.Time) ([]models.Booking, error) {
	var bookings []models.Booking
	err := s.conn(ctx).
		Preload("Consumer").Preload("Provider").Preload("Service").
		Where("status = ? AND date_time BETWEEN ? AND ?", models.StatusConfirmed, from.UTC(), to.UTC()).
		Order("date_time").
		Find(&bookings).Error
	if err != nil {
		return nil, translate(err, "bookings", "reminder window")
	}
	return bookings, nil
}
