package db

import (
	"fmt"

	"github.com/meinhoongagan/booking-marketplace/models"
	"gorm.io/gorm"
)

// slotIndex keeps one live booking per (service, instant). Cancelled bookings free the slot.
const slotIndex = `CREATE UNIQUE INDEX IF NOT EXISTS idx_bookings_service_slot
	ON bookings (service_id, date_time) WHERE status <> 'cancelled'`

// Migrate creates or updates the schema. uniqueSlots adds the booking slot index.
func Migrate(db *gorm.DB, uniqueSlots bool) error {
	err := db.AutoMigrate(
		&models.Consumer{},
		&models.ServiceProvider{},
		&models.Service{},
		&models.Availability{},
		&models.Booking{},
		&models.Feedback{},
	)
	if err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}

	if uniqueSlots {
		if err := db.Exec(slotIndex).Error; err != nil {
			return fmt.Errorf("create booking slot index: %w", err)
		}
	} else if db.Migrator().HasIndex(&models.Booking{}, "idx_bookings_service_slot") {
		if err := db.Migrator().DropIndex(&models.Booking{}, "idx_bookings_service_slot"); err != nil {
			return fmt.Errorf("drop booking slot index: %w", err)
		}
	}
	return nil
}
