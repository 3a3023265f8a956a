package events

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Repository interface {
	Create(ctx context.Context, event *Event) error
	FindByExternalID(ctx context.Context, externalID uuid.UUID) (*Event, error)

	// List returns up to limit+1 upcoming events after the keyset cursor;
	// the extra row tells the service whether more pages exist.
	List(ctx context.Context, after *ListCursor, limit int) ([]eventListRow, error)

	// Availability aggregates reserved seats over non-failed reservations
	// in one query; returns (nil, nil) when the event does not exist.
	Availability(ctx context.Context, externalID uuid.UUID) (*availabilityRow, error)
}

// ListCursor is the keyset position (event_datetime, external_id) of the
// last row the client has seen.
type ListCursor struct {
	EventDatetime time.Time
	ExternalID    uuid.UUID
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, event *Event) error {
	return r.db.WithContext(ctx).Create(event).Error
}

func (r *repository) FindByExternalID(ctx context.Context, externalID uuid.UUID) (*Event, error) {
	var event Event
	err := r.db.WithContext(ctx).
		Preload("Venue").
		Where("external_id = ?", externalID).
		First(&event).Error
	if err != nil {
		return nil, err
	}
	return &event, nil
}

func (r *repository) List(ctx context.Context, after *ListCursor, limit int) ([]eventListRow, error) {
	query := r.db.WithContext(ctx).
		Table("events e").
		Select(`e.external_id, e.name, v.name AS venue_name, e.event_datetime,
			e.premium_price, e.near_stage_price, e.general_price,
			e.created_at, e.updated_at`).
		Joins("INNER JOIN venues v ON v.id = e.venue_id")

	if after != nil {
		// Row-value comparison keeps the keyset stable under inserts
		query = query.Where("(e.event_datetime, e.external_id) > (?, ?)",
			after.EventDatetime, after.ExternalID)
	}

	var rows []eventListRow
	err := query.
		Order("e.event_datetime ASC, e.external_id ASC").
		Limit(limit + 1).
		Scan(&rows).Error
	return rows, err
}

func (r *repository) Availability(ctx context.Context, externalID uuid.UUID) (*availabilityRow, error) {
	var rows []availabilityRow
	err := r.db.WithContext(ctx).Raw(`
		SELECT
			v.premium_seats AS premium_capacity,
			v.near_stage_seats AS near_stage_capacity,
			v.general_seats AS general_capacity,
			COALESCE(SUM(r.premium_seats), 0)::int AS premium_reserved,
			COALESCE(SUM(r.near_stage_seats), 0)::int AS near_stage_reserved,
			COALESCE(SUM(r.general_seats), 0)::int AS general_reserved
		FROM events e
		INNER JOIN venues v ON v.id = e.venue_id
		LEFT JOIN reservations r
			ON r.event_id = e.id
			AND r.status IN ('pending', 'success')
		WHERE e.external_id = ?
		GROUP BY v.premium_seats, v.near_stage_seats, v.general_seats;
	`, externalID).Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, nil
	}
	return &rows[0], nil
}
