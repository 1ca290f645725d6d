package database

import (
	"github.com/brianstm/kevii-gym-booking-app/internal/bookings"
	"github.com/brianstm/kevii-gym-booking-app/internal/users"

	"gorm.io/gorm"
)

func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&users.User{},
		&bookings.Booking{},
	)
}
