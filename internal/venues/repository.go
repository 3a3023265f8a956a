package venues

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Repository interface {
	Create(ctx context.Context, venue *Venue) error
	FindByExternalID(ctx context.Context, externalID uuid.UUID) (*Venue, error)
	List(ctx context.Context) ([]Venue, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, venue *Venue) error {
	return r.db.WithContext(ctx).Create(venue).Error
}

func (r *repository) FindByExternalID(ctx context.Context, externalID uuid.UUID) (*Venue, error) {
	var venue Venue
	err := r.db.WithContext(ctx).Where("external_id = ?", externalID).First(&venue).Error
	if err != nil {
		return nil, err
	}
	return &venue, nil
}

func (r *repository) List(ctx context.Context) ([]Venue, error) {
	var list []Venue
	err := r.db.WithContext(ctx).Order("name ASC").Find(&list).Error
	return list, err
}
