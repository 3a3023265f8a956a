package payments

import (
	"context"
	"fmt"

	"reserva/internal/shared/apperrors"
	"reserva/pkg/logger"

	"github.com/google/uuid"
)

// Notifier publishes settlement outcomes to the message bus
type Notifier interface {
	PublishSettlementRecorded(ctx context.Context, reservationID, outcome string) error
}

// Service interface defines the contract for the settlement state machine
type Service interface {
	// Settle records a terminal outcome at most once. On conflict the
	// returned response carries the settlement's current (final) state
	// alongside ErrAlreadySettled.
	Settle(ctx context.Context, req SettleRequest) (*SettlementResponse, error)
	GetSettlement(ctx context.Context, reservationExternalID uuid.UUID) (*SettlementResponse, error)
}

type service struct {
	repo     Repository
	notifier Notifier // may be nil
	log      *logger.Logger
}

// NewService creates a new settlement service instance
func NewService(repo Repository, notifier Notifier, log *logger.Logger) Service {
	if log == nil {
		log = logger.GetDefault()
	}
	return &service{repo: repo, notifier: notifier, log: log}
}

func (s *service) Settle(ctx context.Context, req SettleRequest) (*SettlementResponse, error) {
	reservationID, err := uuid.Parse(req.ReservationID)
	if err != nil {
		return nil, fmt.Errorf("%w: reservation_id must be a UUID", apperrors.ErrInvalidInput)
	}
	outcome := Status(req.Outcome)
	if !outcome.IsOutcome() {
		return nil, fmt.Errorf("%w: outcome must be one of: success, failure", apperrors.ErrInvalidInput)
	}

	row, err := s.repo.SettlePending(ctx, reservationID, outcome)
	if err != nil {
		return nil, err
	}

	if row == nil {
		// Zero rows matched. A follow-up read tells "nothing to settle"
		// apart from "already settled"; the sweeper may have won the
		// race an instant ago.
		existing, err := s.repo.FindByReservationExternalID(ctx, reservationID)
		if err != nil {
			return nil, err
		}
		if existing == nil {
			return nil, apperrors.ErrReservationNotFound
		}
		resp := toSettlementResponse(existing)
		return resp, apperrors.ErrAlreadySettled
	}

	s.log.LogSettlementRecorded(ctx, row.ReservationExternalID, row.SettlementStatus)
	if s.notifier != nil {
		if err := s.notifier.PublishSettlementRecorded(ctx, row.ReservationExternalID, row.SettlementStatus); err != nil {
			s.log.ErrorWithContext(ctx, "Failed to publish settlement notification", err, map[string]interface{}{
				"reservation_id": row.ReservationExternalID,
			})
		}
	}

	return toSettlementResponse(row), nil
}

func (s *service) GetSettlement(ctx context.Context, reservationExternalID uuid.UUID) (*SettlementResponse, error) {
	row, err := s.repo.FindByReservationExternalID(ctx, reservationExternalID)
	if err != nil {
		return nil, err
	}
	if row == nil {
		return nil, apperrors.ErrReservationNotFound
	}
	return toSettlementResponse(row), nil
}

func toSettlementResponse(row *settlementRow) *SettlementResponse {
	return &SettlementResponse{
		ReservationID:     row.ReservationExternalID,
		Status:            row.SettlementStatus,
		ReservationStatus: row.ReservationStatus,
		UpdatedAt:         row.UpdatedAt,
	}
}
