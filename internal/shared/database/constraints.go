package database

import (
	"gorm.io/gorm"
)

// MigrateConstraints adds the constraints and indexes the reservation
// protocol depends on. AutoMigrate covers columns and unique keys; the
// capacity invariant additionally needs non-negative seat counts and a
// positive total per reservation enforced at the store.
func MigrateConstraints(db *gorm.DB) error {
	// Seat counts are non-negative and at least one tier is booked
	err := db.Exec(`
		DO $$ BEGIN
			ALTER TABLE reservations
			ADD CONSTRAINT reservations_seat_counts_check
			CHECK (
				premium_seats >= 0 AND near_stage_seats >= 0 AND general_seats >= 0
				AND (premium_seats + near_stage_seats + general_seats) > 0
			);
		EXCEPTION WHEN duplicate_object THEN NULL;
		END $$;
	`).Error
	if err != nil {
		return err
	}

	// Venue capacities are non-negative
	err = db.Exec(`
		DO $$ BEGIN
			ALTER TABLE venues
			ADD CONSTRAINT venues_capacity_check
			CHECK (premium_seats >= 0 AND near_stage_seats >= 0 AND general_seats >= 0);
		EXCEPTION WHEN duplicate_object THEN NULL;
		END $$;
	`).Error
	if err != nil {
		return err
	}

	// Sweep scans pending reservations by age
	err = db.Exec(`
		CREATE INDEX IF NOT EXISTS idx_reservations_status_created_at
		ON reservations (status, created_at);
	`).Error
	if err != nil {
		return err
	}

	// Capacity recount aggregates by event over non-failed reservations
	err = db.Exec(`
		CREATE INDEX IF NOT EXISTS idx_reservations_event_status
		ON reservations (event_id, status);
	`).Error
	if err != nil {
		return err
	}

	// Keyset pagination for upcoming event listings
	err = db.Exec(`
		CREATE INDEX IF NOT EXISTS idx_events_datetime_external_id
		ON events (event_datetime, external_id);
	`).Error
	if err != nil {
		return err
	}

	return nil
}
