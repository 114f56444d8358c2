package models

import (
	"time"
)

// Service is an offering by a provider. Each service owns exactly one Availability.
type Service struct {
	ID             uint             `json:"id" gorm:"primaryKey"`
	ProviderID     uint             `json:"provider_id" gorm:"not null;index"`
	Provider       *ServiceProvider `json:"-" gorm:"foreignKey:ProviderID"`
	Name           string           `json:"name" gorm:"not null"`
	Specialization string           `json:"specialization"`
	Price          float64          `json:"price" gorm:"not null;default:0"`
	Duration       int              `json:"duration"` // minutes
	Description    string           `json:"description" gorm:"type:text"`
	Category       string           `json:"category" gorm:"index"`
	Availability   *Availability    `json:"availability,omitempty" gorm:"foreignKey:ServiceID;constraint:OnDelete:CASCADE"`
	CreatedAt      time.Time        `json:"created_at"`
	UpdatedAt      time.Time        `json:"updated_at"`
}
