package models

import (
	"time"
)

// Consumer is an end user who books services and leaves feedback.
// Deleting a consumer removes its bookings and feedback.
type Consumer struct {
	ID        uint       `json:"id" gorm:"primaryKey"`
	Username  string     `json:"username" gorm:"size:50;uniqueIndex;not null"`
	Email     string     `json:"email" gorm:"size:100;uniqueIndex;not null"`
	Password  string     `json:"-" gorm:"size:72;not null"`
	Phone     string     `json:"phone"`
	Address   string     `json:"address"`
	Status    string     `json:"status" gorm:"default:active"`
	Notes     string     `json:"notes" gorm:"type:text"`
	Bookings  []Booking  `json:"bookings,omitempty" gorm:"foreignKey:ConsumerID;constraint:OnDelete:CASCADE"`
	Feedback  []Feedback `json:"feedback,omitempty" gorm:"foreignKey:ConsumerID;constraint:OnDelete:CASCADE"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

const (
	ConsumerActive   = "active"
	ConsumerInactive = "inactive"
)
