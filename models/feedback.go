package models

import (
	"time"

	"gorm.io/gorm"
)

// Feedback is a consumer's review of one of its bookings.
type Feedback struct {
	ID           uint      `json:"id" gorm:"primaryKey"`
	ConsumerID   uint      `json:"consumer_id" gorm:"not null;uniqueIndex:idx_feedback_consumer_booking"`
	Consumer     *Consumer `json:"consumer,omitempty" gorm:"foreignKey:ConsumerID"`
	BookingID    uint      `json:"booking_id" gorm:"not null;uniqueIndex:idx_feedback_consumer_booking;index"`
	Booking      *Booking  `json:"booking,omitempty" gorm:"foreignKey:BookingID;constraint:OnDelete:CASCADE"`
	Comments     string    `json:"comments" gorm:"type:text"`
	Rating       int       `json:"rating" gorm:"not null"`
	ResponseDate time.Time `json:"response_date"`
	CreatedAt    time.Time `json:"created_at"`
}

// BeforeCreate hook to default the response date
func (f *Feedback) BeforeCreate(tx *gorm.DB) error {
	if f.ResponseDate.IsZero() {
		f.ResponseDate = tx.NowFunc()
	}
	return nil
}

const (
	MinRating = 1
	MaxRating = 5
)
