package venues

import (
	"context"
	"errors"
	"testing"

	"reserva/internal/shared/apperrors"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type fakeRepository struct {
	created *Venue
	venue   *Venue
	findErr error
	list    []Venue
}

func (f *fakeRepository) Create(ctx context.Context, venue *Venue) error {
	f.created = venue
	return nil
}

func (f *fakeRepository) FindByExternalID(ctx context.Context, externalID uuid.UUID) (*Venue, error) {
	if f.findErr != nil {
		return nil, f.findErr
	}
	return f.venue, nil
}

func (f *fakeRepository) List(ctx context.Context) ([]Venue, error) {
	return f.list, nil
}

func TestCreateVenue(t *testing.T) {
	t.Run("sums tiers in response", func(t *testing.T) {
		repo := &fakeRepository{}
		svc := NewService(repo)

		resp, err := svc.CreateVenue(context.Background(), CreateVenueRequest{
			Name:           "Hall",
			PremiumSeats:   200,
			NearStageSeats: 350,
			GeneralSeats:   7000,
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if resp.TotalSeats != 7550 {
			t.Errorf("total seats = %d, want 7550", resp.TotalSeats)
		}
		if repo.created == nil || repo.created.Name != "Hall" {
			t.Errorf("venue not persisted, got %+v", repo.created)
		}
	})

	t.Run("rejects zero capacity", func(t *testing.T) {
		svc := NewService(&fakeRepository{})

		_, err := svc.CreateVenue(context.Background(), CreateVenueRequest{Name: "Empty"})
		if !errors.Is(err, apperrors.ErrInvalidInput) {
			t.Fatalf("expected ErrInvalidInput, got %v", err)
		}
	})
}

func TestGetVenue(t *testing.T) {
	t.Run("missing venue", func(t *testing.T) {
		svc := NewService(&fakeRepository{findErr: gorm.ErrRecordNotFound})

		_, err := svc.GetVenue(context.Background(), uuid.New())
		if !errors.Is(err, apperrors.ErrVenueNotFound) {
			t.Fatalf("expected ErrVenueNotFound, got %v", err)
		}
	})

	t.Run("found", func(t *testing.T) {
		id := uuid.New()
		svc := NewService(&fakeRepository{venue: &Venue{ExternalID: id, Name: "Hall", GeneralSeats: 10}})

		resp, err := svc.GetVenue(context.Background(), id)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if resp.ID != id.String() {
			t.Errorf("id = %s, want %s", resp.ID, id)
		}
	})
}
