package payments

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Repository interface {
	// SettlePending records the outcome on the reservation and propagates
	// it to the settlement in one atomic statement, guarded on both
	// sides still being pending. Returns (nil, nil) when the conditional
	// update matched zero rows.
	SettlePending(ctx context.Context, reservationExternalID uuid.UUID, outcome Status) (*settlementRow, error)

	FindByReservationExternalID(ctx context.Context, reservationExternalID uuid.UUID) (*settlementRow, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

// The double pending guard is the only conflict-resolution rule between
// this path and the expiry sweeper: whichever takes the reservation row
// lock first wins, the loser matches zero rows. The reservation is
// updated first and the settlement second, the same lock order the
// sweeper uses, so the two paths never wait on each other's locks in
// opposite order. Propagation happens inside the one statement, never
// as a separate write that readers could observe out of step.
func (r *repository) SettlePending(ctx context.Context, reservationExternalID uuid.UUID, outcome Status) (*settlementRow, error) {
	var rows []settlementRow
	err := r.db.WithContext(ctx).Raw(`
		WITH settled AS (
			UPDATE reservations r
			SET status = @outcome, updated_at = now()
			FROM settlements s
			WHERE s.reservation_id = r.id
				AND r.external_id = @reservation_id
				AND r.status = 'pending'
				AND s.status = 'pending'
			RETURNING r.id AS reservation_id, r.external_id, r.status AS reservation_status
		)
		UPDATE settlements s
		SET status = @outcome, updated_at = now()
		FROM settled
		WHERE s.reservation_id = settled.reservation_id
		RETURNING
			settled.external_id AS reservation_external_id,
			s.status AS settlement_status,
			settled.reservation_status AS reservation_status,
			s.updated_at;
	`, map[string]interface{}{
		"outcome":        outcome.String(),
		"reservation_id": reservationExternalID,
	}).Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, nil
	}
	return &rows[0], nil
}

func (r *repository) FindByReservationExternalID(ctx context.Context, reservationExternalID uuid.UUID) (*settlementRow, error) {
	var rows []settlementRow
	err := r.db.WithContext(ctx).Raw(`
		SELECT
			r.external_id AS reservation_external_id,
			s.status AS settlement_status,
			r.status AS reservation_status,
			s.updated_at
		FROM settlements s
		INNER JOIN reservations r ON r.id = s.reservation_id
		WHERE r.external_id = @reservation_id
		LIMIT 1;
	`, map[string]interface{}{
		"reservation_id": reservationExternalID,
	}).Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, nil
	}
	return &rows[0], nil
}
