package main

import (
	"fmt"
	"log"
	"time"

	"reserva/internal/events"
	"reserva/internal/shared/config"
	"reserva/internal/shared/database"
	"reserva/internal/venues"

	"github.com/google/uuid"
)

type Seeder struct {
	db *database.DB
}

func main() {
	fmt.Println("Starting Reserva Database Seeder...")

	cfg := config.Load()

	db, err := database.InitDB(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.Close()

	seeder := &Seeder{db: db}

	fmt.Println("\nCleaning database...")
	if err := seeder.CleanDatabase(); err != nil {
		log.Fatalf("Failed to clean database: %v", err)
	}
	fmt.Println("Database cleaned successfully")

	fmt.Println("\nSeeding database...")
	if err := seeder.SeedAll(); err != nil {
		log.Fatalf("Failed to seed database: %v", err)
	}
	fmt.Println("Database seeded successfully")

	fmt.Println("\nSeeding completed! Database is ready for testing.")
}

// CleanDatabase truncates all tables in reverse dependency order
func (s *Seeder) CleanDatabase() error {
	tables := []string{
		"settlements",
		"reservations",
		"requesters",
		"events",
		"venues",
	}

	tx := s.db.PostgreSQL.Begin()
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
		}
	}()

	for _, table := range tables {
		fmt.Printf("  Truncating table: %s\n", table)
		if err := tx.Exec(fmt.Sprintf("TRUNCATE TABLE %s RESTART IDENTITY CASCADE", table)).Error; err != nil {
			tx.Rollback()
			return fmt.Errorf("failed to truncate table %s: %w", table, err)
		}
	}

	return tx.Commit().Error
}

// SeedAll seeds venues and a schedule of events across them
func (s *Seeder) SeedAll() error {
	venueIDs, err := s.SeedVenues()
	if err != nil {
		return fmt.Errorf("failed to seed venues: %w", err)
	}

	if err := s.SeedEvents(venueIDs); err != nil {
		return fmt.Errorf("failed to seed events: %w", err)
	}

	return nil
}

// deterministicUUID produces stable external ids so load tests can
// target known entities across reseeds.
func deterministicUUID(n int) uuid.UUID {
	return uuid.MustParse(fmt.Sprintf("00000000-0000-4000-8000-%012x", n))
}

// SeedVenues creates ten venues with graduated tier capacities
func (s *Seeder) SeedVenues() ([]uint64, error) {
	venueIDs := make([]uint64, 0, 10)

	for i := 0; i < 10; i++ {
		venue := venues.Venue{
			ExternalID:     deterministicUUID(i + 1),
			Name:           fmt.Sprintf("Venue %d", i+1),
			PremiumSeats:   200 + i*20,
			NearStageSeats: 350 + i*30,
			GeneralSeats:   7000 + i*500,
		}

		if err := s.db.PostgreSQL.Create(&venue).Error; err != nil {
			return nil, fmt.Errorf("failed to create venue %d: %w", i+1, err)
		}

		venueIDs = append(venueIDs, venue.ID)
		fmt.Printf("  Created venue: %s (premium=%d near_stage=%d general=%d)\n",
			venue.Name, venue.PremiumSeats, venue.NearStageSeats, venue.GeneralSeats)
	}

	return venueIDs, nil
}

// SeedEvents creates 200 events round-robined across the venues, one
// every six hours starting from a fixed schedule origin.
func (s *Seeder) SeedEvents(venueIDs []uint64) error {
	base := time.Date(2026, time.June, 1, 0, 0, 0, 0, time.UTC)

	for i := 0; i < 200; i++ {
		event := events.Event{
			ExternalID:     deterministicUUID(1000 + i),
			VenueID:        venueIDs[i%len(venueIDs)],
			Name:           fmt.Sprintf("Event %d", i+1),
			PremiumPrice:   100,
			NearStagePrice: 50,
			GeneralPrice:   10,
			EventDatetime:  base.Add(time.Duration(i) * 6 * time.Hour),
		}

		if err := s.db.PostgreSQL.Create(&event).Error; err != nil {
			return fmt.Errorf("failed to create event %d: %w", i+1, err)
		}
	}
	fmt.Printf("  Created 200 events across %d venues\n", len(venueIDs))

	// One oversized venue and headline event for contention testing
	arena := venues.Venue{
		ExternalID:     deterministicUUID(99),
		Name:           "Grand Arena",
		PremiumSeats:   2000,
		NearStageSeats: 5000,
		GeneralSeats:   50000,
	}
	if err := s.db.PostgreSQL.Create(&arena).Error; err != nil {
		return fmt.Errorf("failed to create arena venue: %w", err)
	}

	headline := events.Event{
		ExternalID:     deterministicUUID(9999),
		VenueID:        arena.ID,
		Name:           "Headline Show",
		PremiumPrice:   250,
		NearStagePrice: 120,
		GeneralPrice:   25,
		EventDatetime:  base.AddDate(0, 2, 0),
	}
	if err := s.db.PostgreSQL.Create(&headline).Error; err != nil {
		return fmt.Errorf("failed to create headline event: %w", err)
	}
	fmt.Println("  Created Grand Arena and Headline Show")

	return nil
}
