package events

import (
	"context"
	"errors"
	"testing"
	"time"

	"reserva/internal/shared/apperrors"
	"reserva/internal/venues"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type fakeRepository struct {
	created      *Event
	event        *Event
	findErr      error
	listRows     []eventListRow
	listErr      error
	availability *availabilityRow
	availErr     error

	lastCursor *ListCursor
	lastLimit  int
}

func (f *fakeRepository) Create(ctx context.Context, event *Event) error {
	f.created = event
	return nil
}

func (f *fakeRepository) FindByExternalID(ctx context.Context, externalID uuid.UUID) (*Event, error) {
	if f.findErr != nil {
		return nil, f.findErr
	}
	return f.event, nil
}

func (f *fakeRepository) List(ctx context.Context, after *ListCursor, limit int) ([]eventListRow, error) {
	f.lastCursor = after
	f.lastLimit = limit
	if f.listErr != nil {
		return nil, f.listErr
	}
	rows := f.listRows
	if len(rows) > limit+1 {
		rows = rows[:limit+1]
	}
	return rows, nil
}

func (f *fakeRepository) Availability(ctx context.Context, externalID uuid.UUID) (*availabilityRow, error) {
	return f.availability, f.availErr
}

type fakeVenueRepository struct {
	venue *venues.Venue
	err   error
}

func (f *fakeVenueRepository) Create(ctx context.Context, venue *venues.Venue) error {
	return errors.New("not implemented")
}

func (f *fakeVenueRepository) FindByExternalID(ctx context.Context, externalID uuid.UUID) (*venues.Venue, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.venue, nil
}

func (f *fakeVenueRepository) List(ctx context.Context) ([]venues.Venue, error) {
	return nil, errors.New("not implemented")
}

func TestCreateEvent(t *testing.T) {
	venue := &venues.Venue{ID: 3, ExternalID: uuid.New(), Name: "Hall"}

	t.Run("creates against existing venue", func(t *testing.T) {
		repo := &fakeRepository{}
		svc := NewService(repo, &fakeVenueRepository{venue: venue})

		resp, err := svc.CreateEvent(context.Background(), CreateEventRequest{
			Name:           "Opening Night",
			VenueID:        venue.ExternalID.String(),
			PremiumPrice:   100,
			NearStagePrice: 50,
			GeneralPrice:   10,
			EventDatetime:  time.Date(2026, time.July, 1, 19, 0, 0, 0, time.UTC),
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if repo.created == nil || repo.created.VenueID != 3 {
			t.Fatalf("event not persisted against internal venue id, got %+v", repo.created)
		}
		if resp.VenueName != "Hall" {
			t.Errorf("venue name = %s, want Hall", resp.VenueName)
		}
	})

	t.Run("unknown venue", func(t *testing.T) {
		repo := &fakeRepository{}
		svc := NewService(repo, &fakeVenueRepository{err: gorm.ErrRecordNotFound})

		_, err := svc.CreateEvent(context.Background(), CreateEventRequest{
			Name:          "Orphan",
			VenueID:       uuid.New().String(),
			EventDatetime: time.Now(),
		})
		if !errors.Is(err, apperrors.ErrVenueNotFound) {
			t.Fatalf("expected ErrVenueNotFound, got %v", err)
		}
	})

	t.Run("malformed venue id", func(t *testing.T) {
		svc := NewService(&fakeRepository{}, &fakeVenueRepository{})

		_, err := svc.CreateEvent(context.Background(), CreateEventRequest{VenueID: "nope"})
		if !errors.Is(err, apperrors.ErrInvalidInput) {
			t.Fatalf("expected ErrInvalidInput, got %v", err)
		}
	})
}

func TestListEventsPaging(t *testing.T) {
	base := time.Date(2026, time.June, 1, 0, 0, 0, 0, time.UTC)
	rows := make([]eventListRow, 4)
	for i := range rows {
		rows[i] = eventListRow{
			ExternalID:    uuid.New(),
			Name:          "Event",
			VenueName:     "Hall",
			EventDatetime: base.Add(time.Duration(i) * 6 * time.Hour),
			GeneralPrice:  10,
		}
	}

	t.Run("full page sets cursor", func(t *testing.T) {
		repo := &fakeRepository{listRows: rows}
		svc := NewService(repo, &fakeVenueRepository{})

		resp, err := svc.ListEvents(context.Background(), EventListQuery{Limit: 3})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if resp.Found != 3 || !resp.HasMore || resp.NextCursor == "" {
			t.Fatalf("found=%d hasMore=%v cursor=%q, want 3/true/nonempty", resp.Found, resp.HasMore, resp.NextCursor)
		}

		cursor, err := decodeCursor(resp.NextCursor)
		if err != nil {
			t.Fatalf("cursor round trip failed: %v", err)
		}
		last := rows[2]
		if cursor.ExternalID != last.ExternalID || !cursor.EventDatetime.Equal(last.EventDatetime) {
			t.Errorf("cursor = %+v, want (%v, %s)", cursor, last.EventDatetime, last.ExternalID)
		}
	})

	t.Run("cursor forwarded to repository", func(t *testing.T) {
		repo := &fakeRepository{listRows: rows[:1]}
		svc := NewService(repo, &fakeVenueRepository{})

		token := encodeCursor(rows[1].EventDatetime, rows[1].ExternalID)
		_, err := svc.ListEvents(context.Background(), EventListQuery{Limit: 2, Cursor: token})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if repo.lastCursor == nil || repo.lastCursor.ExternalID != rows[1].ExternalID {
			t.Errorf("repository cursor = %+v, want id %s", repo.lastCursor, rows[1].ExternalID)
		}
	})

	t.Run("malformed cursor rejected", func(t *testing.T) {
		svc := NewService(&fakeRepository{}, &fakeVenueRepository{})

		_, err := svc.ListEvents(context.Background(), EventListQuery{Cursor: "!!"})
		if !errors.Is(err, apperrors.ErrInvalidInput) {
			t.Fatalf("expected ErrInvalidInput, got %v", err)
		}
	})

	t.Run("default limit applied", func(t *testing.T) {
		repo := &fakeRepository{}
		svc := NewService(repo, &fakeVenueRepository{})

		if _, err := svc.ListEvents(context.Background(), EventListQuery{}); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if repo.lastLimit != defaultListLimit {
			t.Errorf("limit = %d, want %d", repo.lastLimit, defaultListLimit)
		}
	})
}

func TestGetAvailability(t *testing.T) {
	eventID := uuid.New()

	t.Run("computes per-tier remainder", func(t *testing.T) {
		repo := &fakeRepository{availability: &availabilityRow{
			PremiumCapacity: 200, PremiumReserved: 50,
			NearStageCapacity: 350, NearStageReserved: 350,
			GeneralCapacity: 7000, GeneralReserved: 123,
		}}
		svc := NewService(repo, &fakeVenueRepository{})

		resp, err := svc.GetAvailability(context.Background(), eventID)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if resp.Premium.Available != 150 {
			t.Errorf("premium available = %d, want 150", resp.Premium.Available)
		}
		if resp.NearStage.Available != 0 {
			t.Errorf("near_stage available = %d, want 0", resp.NearStage.Available)
		}
		if resp.General.Available != 6877 {
			t.Errorf("general available = %d, want 6877", resp.General.Available)
		}
	})

	t.Run("clamps negative remainder at zero", func(t *testing.T) {
		// Reserved exceeding capacity is an upstream anomaly; availability
		// must never read negative.
		repo := &fakeRepository{availability: &availabilityRow{
			PremiumCapacity: 10, PremiumReserved: 15,
		}}
		svc := NewService(repo, &fakeVenueRepository{})

		resp, err := svc.GetAvailability(context.Background(), eventID)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if resp.Premium.Available != 0 {
			t.Errorf("premium available = %d, want 0", resp.Premium.Available)
		}
	})

	t.Run("unknown event", func(t *testing.T) {
		repo := &fakeRepository{}
		svc := NewService(repo, &fakeVenueRepository{})

		_, err := svc.GetAvailability(context.Background(), eventID)
		if !errors.Is(err, apperrors.ErrEventNotFound) {
			t.Fatalf("expected ErrEventNotFound, got %v", err)
		}
	})
}
