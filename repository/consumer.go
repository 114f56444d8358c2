package repository

import (
	"context"

	"github.com/meinhoongagan/booking-marketplace/apperr"
	"github.com/meinhoongagan/booking-marketplace/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

func (s *Store) CreateConsumer(ctx context.Context, c *models.Consumer) error {
	return translate(s.conn(ctx).Omit(clause.Associations).Create(c).Error, "consumer", c.Email)
}

func (s *Store) GetConsumer(ctx context.Context, id uint) (*models.Consumer, error) {
	var c models.Consumer
	if err := s.conn(ctx).First(&c, id).Error; err != nil {
		return nil, translate(err, "consumer", id)
	}
	return &c, nil
}

func (s *Store) GetConsumerByEmail(ctx context.Context, email string) (*models.Consumer, error) {
	var c models.Consumer
	if err := s.conn(ctx).Where("email = ?", email).First(&c).Error; err != nil {
		return nil, translate(err, "consumer", email)
	}
	return &c, nil
}

func (s *Store) UpdateConsumer(ctx context.Context, c *models.Consumer) error {
	return translate(s.conn(ctx).Omit(clause.Associations).Save(c).Error, "consumer", c.ID)
}

// DeleteConsumer removes the consumer together with its bookings and every feedback
// attached to them, in one transaction.
func (s *Store) DeleteConsumer(ctx context.Context, id uint) error {
	return s.conn(ctx).Transaction(func(tx *gorm.DB) error {
		bookings := tx.Model(&models.Booking{}).Select("id").Where("consumer_id = ?", id)
		if err := tx.Where("consumer_id = ? OR booking_id IN (?)", id, bookings).
			Delete(&models.Feedback{}).Error; err != nil {
			return translate(err, "feedback", id)
		}
		if err := tx.Where("consumer_id = ?", id).Delete(&models.Booking{}).Error; err != nil {
			return translate(err, "booking", id)
		}

		res := tx.Delete(&models.Consumer{}, id)
		if res.Error != nil {
			return translate(res.Error, "consumer", id)
		}
		if res.RowsAffected == 0 {
			return apperr.NotFound("consumer %d", id)
		}
		return nil
	})
}
