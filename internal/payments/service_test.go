package payments

import (
	"context"
	"errors"
	"testing"
	"time"

	"reserva/internal/shared/apperrors"

	"github.com/google/uuid"
)

type fakeRepository struct {
	settled   *settlementRow
	settleErr error
	existing  *settlementRow
	findErr   error

	lastOutcome Status
	settleCalls int
}

func (f *fakeRepository) SettlePending(ctx context.Context, reservationExternalID uuid.UUID, outcome Status) (*settlementRow, error) {
	f.settleCalls++
	f.lastOutcome = outcome
	return f.settled, f.settleErr
}

func (f *fakeRepository) FindByReservationExternalID(ctx context.Context, reservationExternalID uuid.UUID) (*settlementRow, error) {
	return f.existing, f.findErr
}

type fakeNotifier struct {
	recorded []string
	err      error
}

func (f *fakeNotifier) PublishSettlementRecorded(ctx context.Context, reservationID, outcome string) error {
	f.recorded = append(f.recorded, reservationID+":"+outcome)
	return f.err
}

func TestSettleValidation(t *testing.T) {
	tests := []struct {
		name string
		req  SettleRequest
	}{
		{"malformed reservation id", SettleRequest{ReservationID: "nope", Outcome: "success"}},
		{"pending is not an outcome", SettleRequest{ReservationID: uuid.New().String(), Outcome: "pending"}},
		{"unknown outcome", SettleRequest{ReservationID: uuid.New().String(), Outcome: "paid"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := &fakeRepository{}
			svc := NewService(repo, nil, nil)

			_, err := svc.Settle(context.Background(), tt.req)
			if !errors.Is(err, apperrors.ErrInvalidInput) {
				t.Fatalf("expected ErrInvalidInput, got %v", err)
			}
			if repo.settleCalls != 0 {
				t.Fatalf("validation failure must not reach the repository, got %d calls", repo.settleCalls)
			}
		})
	}
}

func TestSettleRecordsOutcome(t *testing.T) {
	reservationID := uuid.New()
	repo := &fakeRepository{
		settled: &settlementRow{
			ReservationExternalID: reservationID.String(),
			SettlementStatus:      "success",
			ReservationStatus:     "success",
			UpdatedAt:             time.Now().UTC(),
		},
	}
	notifier := &fakeNotifier{}
	svc := NewService(repo, notifier, nil)

	resp, err := svc.Settle(context.Background(), SettleRequest{
		ReservationID: reservationID.String(),
		Outcome:       "success",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if resp.Status != "success" || resp.ReservationStatus != "success" {
		t.Errorf("settlement and reservation must move together, got %+v", resp)
	}
	if repo.lastOutcome != StatusSuccess {
		t.Errorf("repository received outcome %s, want success", repo.lastOutcome)
	}
	if len(notifier.recorded) != 1 {
		t.Errorf("expected one settlement notification, got %v", notifier.recorded)
	}
}

func TestSettleFailureReleasesReservation(t *testing.T) {
	reservationID := uuid.New()
	repo := &fakeRepository{
		settled: &settlementRow{
			ReservationExternalID: reservationID.String(),
			SettlementStatus:      "failure",
			ReservationStatus:     "failure",
			UpdatedAt:             time.Now().UTC(),
		},
	}
	svc := NewService(repo, nil, nil)

	resp, err := svc.Settle(context.Background(), SettleRequest{
		ReservationID: reservationID.String(),
		Outcome:       "failure",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.Status != "failure" || resp.ReservationStatus != "failure" {
		t.Errorf("expected both sides in failure, got %+v", resp)
	}
}

func TestSettleUnknownReservation(t *testing.T) {
	repo := &fakeRepository{} // zero rows updated, no settlement found
	svc := NewService(repo, nil, nil)

	_, err := svc.Settle(context.Background(), SettleRequest{
		ReservationID: uuid.New().String(),
		Outcome:       "success",
	})
	if !errors.Is(err, apperrors.ErrReservationNotFound) {
		t.Fatalf("expected ErrReservationNotFound, got %v", err)
	}
}

func TestSettleAlreadySettled(t *testing.T) {
	reservationID := uuid.New()

	// The conditional update matched nothing, but the settlement exists
	// in a terminal state: conflict, with the final state attached.
	repo := &fakeRepository{
		existing: &settlementRow{
			ReservationExternalID: reservationID.String(),
			SettlementStatus:      "failure",
			ReservationStatus:     "failure",
			UpdatedAt:             time.Now().UTC(),
		},
	}
	notifier := &fakeNotifier{}
	svc := NewService(repo, notifier, nil)

	resp, err := svc.Settle(context.Background(), SettleRequest{
		ReservationID: reservationID.String(),
		Outcome:       "success",
	})
	if !errors.Is(err, apperrors.ErrAlreadySettled) {
		t.Fatalf("expected ErrAlreadySettled, got %v", err)
	}
	if resp == nil || resp.Status != "failure" {
		t.Fatalf("conflict must carry the recorded state, got %+v", resp)
	}
	if len(notifier.recorded) != 0 {
		t.Errorf("conflict must not publish a notification, got %v", notifier.recorded)
	}
}

func TestGetSettlement(t *testing.T) {
	reservationID := uuid.New()

	t.Run("found", func(t *testing.T) {
		repo := &fakeRepository{
			existing: &settlementRow{
				ReservationExternalID: reservationID.String(),
				SettlementStatus:      "pending",
				ReservationStatus:     "pending",
			},
		}
		svc := NewService(repo, nil, nil)

		resp, err := svc.GetSettlement(context.Background(), reservationID)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if resp.Status != "pending" {
			t.Errorf("status = %s, want pending", resp.Status)
		}
	})

	t.Run("missing", func(t *testing.T) {
		repo := &fakeRepository{}
		svc := NewService(repo, nil, nil)

		_, err := svc.GetSettlement(context.Background(), reservationID)
		if !errors.Is(err, apperrors.ErrReservationNotFound) {
			t.Fatalf("expected ErrReservationNotFound, got %v", err)
		}
	})
}
