package services

import (
	"context"
	"strings"

	"github.com/meinhoongagan/booking-marketplace/apperr"
	"github.com/meinhoongagan/booking-marketplace/metrics"
	"github.com/meinhoongagan/booking-marketplace/models"
	"github.com/meinhoongagan/booking-marketplace/repository"
	"github.com/rs/zerolog"
)

type SubmitFeedbackInput struct {
	ConsumerID uint   `json:"consumerId"`
	BookingID  uint   `json:"bookingId"`
	Comments   string `json:"comments"`
	Rating     int    `json:"rating"`
}

// FeedbackService records consumer reviews of their bookings.
type FeedbackService struct {
	repo             repository.Repository
	log              *zerolog.Logger
	requireCompleted bool
}

func NewFeedbackService(repo repository.Repository, log *zerolog.Logger, requireCompleted bool) *FeedbackService {
	return &FeedbackService{repo: repo, log: nopLogger(log), requireCompleted: requireCompleted}
}

// SubmitFeedback stores a review for a booking held by the submitting consumer.
func (s *FeedbackService) SubmitFeedback(ctx context.Context, in SubmitFeedbackInput) (*models.FeedbackView, error) {
	if in.ConsumerID == 0 || in.BookingID == 0 {
		return nil, apperr.Invalid("consumerId and bookingId are required")
	}
	if in.Rating < models.MinRating || in.Rating > models.MaxRating {
		return nil, apperr.Invalid("rating must be between %d and %d", models.MinRating, models.MaxRating)
	}

	consumer, err := s.repo.GetConsumer(ctx, in.ConsumerID)
	if err != nil {
		return nil, err
	}

	owned, err := s.repo.ExistsBookingForConsumer(ctx, in.BookingID, in.ConsumerID)
	if err != nil {
		return nil, err
	}
	if !owned {
		return nil, apperr.Denied("feedback requires an existing booking for this consumer")
	}

	booking, err := s.repo.GetBooking(ctx, in.BookingID)
	if err != nil {
		return nil, err
	}
	if s.requireCompleted && booking.Status != models.StatusCompleted {
		return nil, apperr.Invalid("feedback is only accepted for completed bookings")
	}

	exists, err := s.repo.ExistsFeedback(ctx, consumer.ID, booking.ID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, apperr.Conflict("feedback for booking %d was already submitted", booking.ID)
	}

	feedback := &models.Feedback{
		ConsumerID: consumer.ID,
		BookingID:  booking.ID,
		Comments:   strings.TrimSpace(in.Comments),
		Rating:     in.Rating,
	}
	if err := s.repo.CreateFeedback(ctx, feedback); err != nil {
		return nil, err
	}
	feedback.Consumer = consumer

	metrics.IncFeedback()
	s.log.Info().Uint("feedback_id", feedback.ID).Uint("booking_id", booking.ID).Int("rating", feedback.Rating).Msg("feedback submitted")

	view := models.NewFeedbackView(feedback)
	return &view, nil
}

func (s *FeedbackService) ListFeedback(ctx context.Context) ([]models.FeedbackView, error) {
	feedback, err := s.repo.ListFeedback(ctx)
	if err != nil {
		return nil, err
	}
	return views(feedback), nil
}

func (s *FeedbackService) ListFeedbackForConsumer(ctx context.Context, consumerID uint) ([]models.FeedbackView, error) {
	feedback, err := s.repo.ListFeedbackByConsumer(ctx, consumerID)
	if err != nil {
		return nil, err
	}
	return views(feedback), nil
}

func views(feedback []models.Feedback) []models.FeedbackView {
	out := make([]models.FeedbackView, 0, len(feedback))
	for i := range feedback {
		out = append(out, models.NewFeedbackView(&feedback[i]))
	}
	return out
}
