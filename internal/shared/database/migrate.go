package database

import (
	"reserva/internal/events"
	"reserva/internal/payments"
	"reserva/internal/requesters"
	"reserva/internal/reservations"
	"reserva/internal/venues"

	"gorm.io/gorm"
)

func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&venues.Venue{},
		&events.Event{},
		&requesters.Requester{},
		&reservations.Reservation{},
		&payments.Settlement{},
	)
}
