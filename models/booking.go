package models

import (
	"time"

	"github.com/meinhoongagan/booking-marketplace/apperr"
	"gorm.io/gorm"
)

type BookingStatus string

const (
	StatusRequested BookingStatus = "requested"
	StatusConfirmed BookingStatus = "confirmed"
	StatusCompleted BookingStatus = "completed"
	StatusCancelled BookingStatus = "cancelled"
)

// ParseBookingStatus accepts the lower-case status names.
func ParseBookingStatus(s string) (BookingStatus, bool) {
	switch st := BookingStatus(s); st {
	case StatusRequested, StatusConfirmed, StatusCompleted, StatusCancelled:
		return st, true
	}
	return "", false
}

// Booking is a consumer's reservation of a provider's service at a point in time.
// Only Status and SpecialRequests change after creation.
type Booking struct {
	ID              uint             `json:"id" gorm:"primaryKey"`
	ConsumerID      uint             `json:"consumer_id" gorm:"not null;index"`
	Consumer        *Consumer        `json:"consumer,omitempty" gorm:"foreignKey:ConsumerID"`
	ProviderID      uint             `json:"provider_id" gorm:"not null;index"`
	Provider        *ServiceProvider `json:"provider,omitempty" gorm:"foreignKey:ProviderID"`
	ServiceID       uint             `json:"service_id" gorm:"not null;index"`
	Service         *Service         `json:"service,omitempty" gorm:"foreignKey:ServiceID"`
	DateTime        time.Time        `json:"date_time" gorm:"not null;index"`
	Status          BookingStatus    `json:"status" gorm:"size:16;not null;index"`
	SpecialRequests string           `json:"special_requests" gorm:"type:text"`
	CreatedAt       time.Time        `json:"created_at"`
	UpdatedAt       time.Time        `json:"updated_at"`
}

func (b *Booking) BeforeCreate(tx *gorm.DB) error {
	if b.Status == "" {
		b.Status = StatusRequested
	}
	return nil
}

// CanTransition reports whether the lifecycle allows moving from -> to.
// REQUESTED -> CONFIRMED -> COMPLETED, and CANCELLED from REQUESTED or CONFIRMED.
func CanTransition(from, to BookingStatus) bool {
	switch from {
	case StatusRequested:
		return to == StatusConfirmed || to == StatusCancelled
	case StatusConfirmed:
		return to == StatusCompleted || to == StatusCancelled
	}
	return false
}

// Transition moves the booking to newStatus or returns an invalid-argument error.
func (b *Booking) Transition(newStatus BookingStatus) error {
	switch b.Status {
	case StatusCompleted, StatusCancelled:
		return apperr.Invalid("no transitions allowed from %s", b.Status)
	}
	if !CanTransition(b.Status, newStatus) {
		return apperr.Invalid("invalid transition from %s to %s", b.Status, newStatus)
	}
	b.Status = newStatus
	return nil
}

// Active reports whether the booking still occupies its slot.
func (b *Booking) Active() bool {
	return b.Status != StatusCancelled
}
