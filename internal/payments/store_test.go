package payments_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"reserva/internal/events"
	"reserva/internal/payments"
	"reserva/internal/reservations"
	"reserva/internal/shared/testutil"
	"reserva/internal/venues"
)

// seedPendingReservation creates a venue, an event, and one admitted
// pending reservation, returning the reservation's external id.
func seedPendingReservation(t *testing.T, db *gorm.DB) uuid.UUID {
	t.Helper()

	venue := venues.Venue{
		ExternalID:     uuid.New(),
		Name:           "Settlement Test Hall",
		PremiumSeats:   10,
		NearStageSeats: 0,
		GeneralSeats:   0,
	}
	if err := db.Create(&venue).Error; err != nil {
		t.Fatalf("failed to seed venue: %v", err)
	}

	event := events.Event{
		ExternalID:     uuid.New(),
		VenueID:        venue.ID,
		Name:           "Settlement Test Show",
		PremiumPrice:   100,
		NearStagePrice: 50,
		GeneralPrice:   10,
		EventDatetime:  time.Now().UTC().Add(24 * time.Hour),
	}
	if err := db.Create(&event).Error; err != nil {
		t.Fatalf("failed to seed event: %v", err)
	}

	reservationID := uuid.New()
	row, err := reservations.NewRepository(db).InsertPendingReservation(context.Background(), reservations.InsertReservationInput{
		ReservationExternalID: reservationID,
		EventExternalID:       event.ExternalID,
		RequesterExternalID:   uuid.New(),
		PremiumSeats:          1,
	})
	if err != nil {
		t.Fatalf("failed to seed reservation: %v", err)
	}
	if row.ExternalID == nil {
		t.Fatal("seed reservation was not admitted")
	}

	return reservationID
}

func TestConcurrentSettlesRecordAtMostOnce(t *testing.T) {
	db := testutil.OpenDB(t)
	repo := payments.NewRepository(db)
	reservationID := seedPendingReservation(t, db)

	const attempts = 8
	var wg sync.WaitGroup
	start := make(chan struct{})
	wins := make(chan string, attempts)
	errs := make(chan error, attempts)

	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			<-start
			row, err := repo.SettlePending(context.Background(), reservationID, payments.StatusSuccess)
			if err != nil {
				errs <- err
				return
			}
			if row != nil {
				wins <- row.SettlementStatus
			}
		}()
	}
	close(start)
	wg.Wait()
	close(errs)
	close(wins)

	for err := range errs {
		t.Errorf("settle attempt failed: %v", err)
	}
	if got := len(wins); got != 1 {
		t.Errorf("%d settle attempts matched the pending pair, want 1", got)
	}

	final, err := repo.FindByReservationExternalID(context.Background(), reservationID)
	if err != nil {
		t.Fatalf("failed to load settlement: %v", err)
	}
	if final.SettlementStatus != "success" || final.ReservationStatus != "success" {
		t.Errorf("final state = settlement %s / reservation %s, want success on both",
			final.SettlementStatus, final.ReservationStatus)
	}
}

func TestSettleAndSweepConvergeOnOneWinner(t *testing.T) {
	db := testutil.OpenDB(t)
	payRepo := payments.NewRepository(db)
	resRepo := reservations.NewRepository(db)
	reservationID := seedPendingReservation(t, db)

	// Backdate the reservation so the sweep sees it as overdue.
	err := db.Exec(`UPDATE reservations SET created_at = now() - interval '1 hour' WHERE external_id = ?`, reservationID).Error
	if err != nil {
		t.Fatalf("failed to backdate reservation: %v", err)
	}

	var wg sync.WaitGroup
	start := make(chan struct{})
	var settleWon bool
	var settleErr error
	var expired int64
	var sweepErr error

	wg.Add(2)
	go func() {
		defer wg.Done()
		<-start
		row, err := payRepo.SettlePending(context.Background(), reservationID, payments.StatusSuccess)
		settleWon, settleErr = row != nil, err
	}()
	go func() {
		defer wg.Done()
		<-start
		expired, sweepErr = resRepo.FailExpiredPending(context.Background(), time.Minute)
	}()
	close(start)
	wg.Wait()

	if settleErr != nil {
		t.Errorf("settle failed: %v", settleErr)
	}
	if sweepErr != nil {
		t.Errorf("sweep failed: %v", sweepErr)
	}
	if settleWon == (expired == 1) {
		t.Errorf("settleWon = %v, expired = %d, want exactly one winner", settleWon, expired)
	}

	final, err := payRepo.FindByReservationExternalID(context.Background(), reservationID)
	if err != nil {
		t.Fatalf("failed to load settlement: %v", err)
	}
	if final.SettlementStatus != final.ReservationStatus {
		t.Errorf("settlement %s and reservation %s moved out of lock-step",
			final.SettlementStatus, final.ReservationStatus)
	}
	want := "failure"
	if settleWon {
		want = "success"
	}
	if final.SettlementStatus != want {
		t.Errorf("final status = %s, want %s", final.SettlementStatus, want)
	}
}
