package reservations

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Repository interface {
	// InsertPendingReservation runs the whole reserve protocol as one
	// atomic statement: lock the event's capacity row, upsert the
	// requester, recount reserved seats, guard each tier, and insert the
	// reservation plus its settlement. It always returns exactly one row;
	// the flags on it disambiguate why no insert happened.
	InsertPendingReservation(ctx context.Context, input InsertReservationInput) (*insertAttemptRow, error)

	FindByExternalID(ctx context.Context, externalID uuid.UUID) (*Reservation, error)

	// ListByRequester returns up to limit+1 history rows after the keyset
	// cursor, newest first.
	ListByRequester(ctx context.Context, requesterExternalID uuid.UUID, after *HistoryCursor, limit int) ([]historyRow, error)

	// FailExpiredPending transitions every reservation pending longer
	// than the payment window, and its settlement, to failure in one bulk
	// statement. Returns the number of reservations transitioned.
	FailExpiredPending(ctx context.Context, paymentWindow time.Duration) (int64, error)
}

type InsertReservationInput struct {
	ReservationExternalID uuid.UUID
	EventExternalID       uuid.UUID
	RequesterExternalID   uuid.UUID
	PremiumSeats          int
	NearStageSeats        int
	GeneralSeats          int
}

// HistoryCursor is the keyset position (created_at, id) of the last
// history row the client has seen.
type HistoryCursor struct {
	CreatedAt time.Time
	ID        uint64
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

// The FOR UPDATE lock on the event row is the sole serialization point:
// attempts against the same event queue behind it, attempts against
// other events do not contend. The lock is acquired in its own
// statement before the recount runs: at READ COMMITTED a statement's
// snapshot is taken before its lock wait, so a recount in the same
// statement as the lock could miss an admit that committed while we
// were queued. With the lock already held, the recount statement's
// snapshot includes every committed reservation, and the guarded
// insert in the same statement cannot go stale against it. ON CONFLICT
// DO NOTHING on the external id absorbs concurrent identical retries
// without double-counting.
func (r *repository) InsertPendingReservation(ctx context.Context, input InsertReservationInput) (*insertAttemptRow, error) {
	var rows []insertAttemptRow
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var locked []struct {
			ID uint64
		}
		if err := tx.Raw(`
			SELECT id FROM events WHERE external_id = ? FOR UPDATE;
		`, input.EventExternalID).Scan(&locked).Error; err != nil {
			return err
		}

		return tx.Raw(`
		WITH event_lock AS (
			SELECT
				e.id,
				v.premium_seats AS venue_premium_seats,
				v.near_stage_seats AS venue_near_stage_seats,
				v.general_seats AS venue_general_seats
			FROM events e
			INNER JOIN venues v ON v.id = e.venue_id
			WHERE e.external_id = @event_id
			FOR UPDATE
		),
		inserted_requester AS (
			INSERT INTO requesters (external_id, created_at, updated_at)
			VALUES (@requester_id, now(), now())
			ON CONFLICT (external_id) DO NOTHING
			RETURNING id
		),
		requester_row AS (
			SELECT id FROM inserted_requester
			UNION ALL
			SELECT q.id
			FROM requesters q
			WHERE q.external_id = @requester_id
			LIMIT 1
		),
		current_reserved AS (
			SELECT
				COALESCE(SUM(r.premium_seats), 0)::int AS premium_reserved,
				COALESCE(SUM(r.near_stage_seats), 0)::int AS near_stage_reserved,
				COALESCE(SUM(r.general_seats), 0)::int AS general_reserved
			FROM reservations r
			INNER JOIN event_lock el ON el.id = r.event_id
			WHERE r.status IN ('pending', 'success')
		),
		can_reserve AS (
			SELECT 1
			FROM event_lock el
			CROSS JOIN current_reserved cr
			WHERE (@premium_seats + cr.premium_reserved) <= el.venue_premium_seats
				AND (@near_stage_seats + cr.near_stage_reserved) <= el.venue_near_stage_seats
				AND (@general_seats + cr.general_reserved) <= el.venue_general_seats
		),
		inserted_reservation AS (
			INSERT INTO reservations (
				external_id,
				event_id,
				requester_id,
				premium_seats,
				near_stage_seats,
				general_seats,
				status,
				created_at,
				updated_at
			)
			SELECT
				@reservation_id,
				el.id,
				rq.id,
				@premium_seats,
				@near_stage_seats,
				@general_seats,
				'pending',
				now(),
				now()
			FROM can_reserve
			CROSS JOIN event_lock el
			CROSS JOIN requester_row rq
			ON CONFLICT (external_id) DO NOTHING
			RETURNING
				id,
				external_id,
				status,
				premium_seats,
				near_stage_seats,
				general_seats,
				created_at,
				updated_at
		),
		inserted_settlement AS (
			INSERT INTO settlements (reservation_id, status, created_at, updated_at)
			SELECT id, 'pending', now(), now()
			FROM inserted_reservation
		)
		SELECT
			(SELECT EXISTS(SELECT 1 FROM event_lock)) AS event_exists,
			(SELECT EXISTS(SELECT 1 FROM requester_row)) AS requester_exists,
			ir.external_id,
			ir.status,
			ir.premium_seats,
			ir.near_stage_seats,
			ir.general_seats,
			ir.created_at,
			ir.updated_at
		FROM inserted_reservation ir
		UNION ALL
		SELECT
			(SELECT EXISTS(SELECT 1 FROM event_lock)) AS event_exists,
			(SELECT EXISTS(SELECT 1 FROM requester_row)) AS requester_exists,
			NULL AS external_id,
			NULL AS status,
			NULL AS premium_seats,
			NULL AS near_stage_seats,
			NULL AS general_seats,
			NULL AS created_at,
			NULL AS updated_at
		WHERE NOT EXISTS (SELECT 1 FROM inserted_reservation)
		LIMIT 1;
		`, map[string]interface{}{
			"reservation_id":   input.ReservationExternalID,
			"event_id":         input.EventExternalID,
			"requester_id":     input.RequesterExternalID,
			"premium_seats":    input.PremiumSeats,
			"near_stage_seats": input.NearStageSeats,
			"general_seats":    input.GeneralSeats,
		}).Scan(&rows).Error
	})
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, gorm.ErrRecordNotFound
	}
	return &rows[0], nil
}

func (r *repository) FindByExternalID(ctx context.Context, externalID uuid.UUID) (*Reservation, error) {
	var reservation Reservation
	err := r.db.WithContext(ctx).Where("external_id = ?", externalID).First(&reservation).Error
	if err != nil {
		return nil, err
	}
	return &reservation, nil
}

func (r *repository) ListByRequester(ctx context.Context, requesterExternalID uuid.UUID, after *HistoryCursor, limit int) ([]historyRow, error) {
	query := r.db.WithContext(ctx).
		Table("reservations r").
		Select(`r.id, r.external_id,
			e.external_id AS event_external_id,
			e.name AS event_name,
			e.event_datetime,
			v.name AS venue_name,
			r.status,
			r.premium_seats, r.near_stage_seats, r.general_seats,
			(
				(r.premium_seats * e.premium_price)
				+ (r.near_stage_seats * e.near_stage_price)
				+ (r.general_seats * e.general_price)
			) AS total_cost,
			r.created_at, r.updated_at`).
		Joins("INNER JOIN requesters q ON q.id = r.requester_id").
		Joins("INNER JOIN events e ON e.id = r.event_id").
		Joins("INNER JOIN venues v ON v.id = e.venue_id").
		Where("q.external_id = ?", requesterExternalID)

	if after != nil {
		query = query.Where("(r.created_at, r.id) < (?, ?)", after.CreatedAt, after.ID)
	}

	var rows []historyRow
	err := query.
		Order("r.created_at DESC, r.id DESC").
		Limit(limit + 1).
		Scan(&rows).Error
	return rows, err
}

// One bulk statement touches both tables; the settlement branch gates on
// the reservation ids just moved, so a settlement racing in through the
// payment path keeps its terminal state.
func (r *repository) FailExpiredPending(ctx context.Context, paymentWindow time.Duration) (int64, error) {
	var row struct {
		ExpiredCount int64 `gorm:"column:expired_count"`
	}
	err := r.db.WithContext(ctx).Raw(`
		WITH expired AS (
			UPDATE reservations
			SET status = 'failure', updated_at = now()
			WHERE status = 'pending'
				AND created_at <= now() - make_interval(secs => @payment_window_seconds)
			RETURNING id
		),
		failed_settlements AS (
			UPDATE settlements s
			SET status = 'failure', updated_at = now()
			FROM expired e
			WHERE s.reservation_id = e.id
				AND s.status = 'pending'
		)
		SELECT COUNT(*) AS expired_count FROM expired;
	`, map[string]interface{}{
		"payment_window_seconds": paymentWindow.Seconds(),
	}).Scan(&row).Error
	if err != nil {
		return 0, err
	}
	return row.ExpiredCount, nil
}
