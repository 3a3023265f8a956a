package requesters

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Repository interface {
	// Upsert resolves the internal id for an external identity, creating
	// the row if it does not exist. Idempotent under concurrent calls.
	Upsert(ctx context.Context, externalID uuid.UUID) (uint64, error)
	FindByExternalID(ctx context.Context, externalID uuid.UUID) (*Requester, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Upsert(ctx context.Context, externalID uuid.UUID) (uint64, error) {
	// ON CONFLICT DO NOTHING returns no row for the existing case, so a
	// second select resolves the id either way.
	var row struct {
		ID uint64
	}
	err := r.db.WithContext(ctx).Raw(`
		WITH inserted AS (
			INSERT INTO requesters (external_id, created_at, updated_at)
			VALUES (?, now(), now())
			ON CONFLICT (external_id) DO NOTHING
			RETURNING id
		)
		SELECT id FROM inserted
		UNION ALL
		SELECT id FROM requesters WHERE external_id = ?
		LIMIT 1;
	`, externalID, externalID).Scan(&row).Error
	if err != nil {
		return 0, err
	}
	if row.ID == 0 {
		return 0, errors.New("requester upsert returned no row")
	}
	return row.ID, nil
}

func (r *repository) FindByExternalID(ctx context.Context, externalID uuid.UUID) (*Requester, error) {
	var requester Requester
	err := r.db.WithContext(ctx).Where("external_id = ?", externalID).First(&requester).Error
	if err != nil {
		return nil, err
	}
	return &requester, nil
}
