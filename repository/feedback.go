package repository

import (
	"context"

	"github.com/meinhoongagan/booking-marketplace/models"
	"gorm.io/gorm/clause"
)

func (s *Store) CreateFeedback(ctx context.Context, f *models.Feedback) error {
	return translate(s.conn(ctx).Omit(clause.Associations).Create(f).Error, "feedback", f.BookingID)
}

func (s *Store) ExistsFeedback(ctx context.Context, consumerID, bookingID uint) (bool, error) {
	var n int64
	err := s.conn(ctx).Model(&models.Feedback{}).
		Where("consumer_id = ? AND booking_id = ?", consumerID, bookingID).
		Count(&n).Error
	if err != nil {
		return false, translate(err, "feedback", bookingID)
	}
	return n > 0, nil
}

func (s *Store) ListFeedback(ctx context.Context) ([]models.Feedback, error) {
	var feedback []models.Feedback
	if err := s.conn(ctx).Preload("Consumer").Order("id").Find(&feedback).Error; err != nil {
		return nil, translate(err, "feedback", "list")
	}
	return feedback, nil
}

func (s *Store) ListFeedbackByConsumer(ctx context.Context, consumerID uint) ([]models.Feedback, error) {
	var feedback []models.Feedback
	err := s.conn(ctx).Preload("Consumer").
		Where("consumer_id = ?", consumerID).
		Order("id").
		Find(&feedback).Error
	if err != nil {
		return nil, translate(err, "feedback", consumerID)
	}
	return feedback, nil
}
