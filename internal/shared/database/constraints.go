package database

import (
	"gorm.io/gorm"
)

// MigrateConstraints adds indexes the week-count aggregation depends on.
func MigrateConstraints(db *gorm.DB) error {
	// Week-count scans bookings by start instant.
	err := db.Exec(`
		CREATE INDEX IF NOT EXISTS idx_bookings_starts_at
		ON bookings (starts_at);
	`).Error
	if err != nil {
		return err
	}

	// Daily per-user cap lookup.
	err = db.Exec(`
		CREATE INDEX IF NOT EXISTS idx_bookings_user_starts_at
		ON bookings (user_id, starts_at);
	`).Error
	if err != nil {
		return err
	}

	return nil
}
