package models

import (
	"time"
)

// ServiceProvider is a vendor offering one or more bookable services.
type ServiceProvider struct {
	ID             uint      `json:"id" gorm:"primaryKey"`
	Username       string    `json:"username" gorm:"size:50;uniqueIndex;not null"`
	Email          string    `json:"email" gorm:"size:100;uniqueIndex;not null"`
	Password       string    `json:"-" gorm:"size:72;not null"`
	Address        string    `json:"address"`
	Contact        string    `json:"contact"`
	Experience     int       `json:"experience"`
	IsActive       bool      `json:"is_active" gorm:"default:true"`
	ProfilePicture string    `json:"profile_picture"`
	Services       []Service `json:"services,omitempty" gorm:"foreignKey:ProviderID"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}
