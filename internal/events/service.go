package events

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"
	"time"

	"reserva/internal/shared/apperrors"
	"reserva/internal/shared/constants"
	"reserva/internal/venues"
	"reserva/pkg/cache"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const defaultListLimit = 20

type Service interface {
	CreateEvent(ctx context.Context, req CreateEventRequest) (*EventResponse, error)
	GetEvent(ctx context.Context, externalID uuid.UUID) (*EventResponse, error)
	ListEvents(ctx context.Context, query EventListQuery) (*PaginatedEvents, error)
	GetAvailability(ctx context.Context, externalID uuid.UUID) (*EventAvailabilityResponse, error)
}

type service struct {
	repo      Repository
	venueRepo venues.Repository

	// Optional short-TTL read cache at the presentation boundary. The
	// reservation path never reads through it.
	cache           cache.Service
	availabilityTTL time.Duration
	listTTL         time.Duration
}

func NewService(repo Repository, venueRepo venues.Repository) *service {
	return &service{repo: repo, venueRepo: venueRepo}
}

// SetCache wires the optional presentation cache
func (s *service) SetCache(c cache.Service, availabilityTTL, listTTL time.Duration) {
	s.cache = c
	s.availabilityTTL = availabilityTTL
	s.listTTL = listTTL
}

func (s *service) CreateEvent(ctx context.Context, req CreateEventRequest) (*EventResponse, error) {
	venueID, err := uuid.Parse(req.VenueID)
	if err != nil {
		return nil, apperrors.ErrInvalidInput
	}

	venue, err := s.venueRepo.FindByExternalID(ctx, venueID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrVenueNotFound
		}
		return nil, err
	}

	event := &Event{
		ExternalID:     uuid.New(),
		VenueID:        venue.ID,
		Name:           req.Name,
		PremiumPrice:   req.PremiumPrice,
		NearStagePrice: req.NearStagePrice,
		GeneralPrice:   req.GeneralPrice,
		EventDatetime:  req.EventDatetime.UTC(),
	}
	if err := s.repo.Create(ctx, event); err != nil {
		return nil, err
	}
	event.Venue = venue

	if s.cache != nil {
		_ = s.cache.DeletePattern(ctx, constants.CacheKeyEventList+":*")
	}

	resp := toEventResponse(event)
	return &resp, nil
}

func (s *service) GetEvent(ctx context.Context, externalID uuid.UUID) (*EventResponse, error) {
	event, err := s.repo.FindByExternalID(ctx, externalID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrEventNotFound
		}
		return nil, err
	}

	resp := toEventResponse(event)
	return &resp, nil
}

func (s *service) ListEvents(ctx context.Context, query EventListQuery) (*PaginatedEvents, error) {
	limit := query.Limit
	if limit <= 0 {
		limit = defaultListLimit
	}

	var after *ListCursor
	if query.Cursor != "" {
		cursor, err := decodeCursor(query.Cursor)
		if err != nil {
			return nil, apperrors.ErrInvalidInput
		}
		after = cursor
	}

	cacheKey := fmt.Sprintf("%s:%d:%s", constants.CacheKeyEventList, limit, query.Cursor)
	if s.cache != nil {
		var cached PaginatedEvents
		if err := s.cache.Get(ctx, cacheKey, &cached); err == nil {
			return &cached, nil
		}
	}

	rows, err := s.repo.List(ctx, after, limit)
	if err != nil {
		return nil, err
	}

	hasMore := len(rows) > limit
	if hasMore {
		rows = rows[:limit]
	}

	result := &PaginatedEvents{
		Events:  make([]EventResponse, 0, len(rows)),
		HasMore: hasMore,
	}
	for i := range rows {
		result.Events = append(result.Events, rows[i].toResponse())
	}
	result.Found = len(result.Events)
	if hasMore && len(rows) > 0 {
		last := rows[len(rows)-1]
		result.NextCursor = encodeCursor(last.EventDatetime, last.ExternalID)
	}

	if s.cache != nil {
		_ = s.cache.Set(ctx, cacheKey, result, s.listTTL)
	}
	return result, nil
}

func (s *service) GetAvailability(ctx context.Context, externalID uuid.UUID) (*EventAvailabilityResponse, error) {
	cacheKey := fmt.Sprintf("%s:%s", constants.CacheKeyAvailability, externalID)
	if s.cache != nil {
		var cached EventAvailabilityResponse
		if err := s.cache.Get(ctx, cacheKey, &cached); err == nil {
			return &cached, nil
		}
	}

	row, err := s.repo.Availability(ctx, externalID)
	if err != nil {
		return nil, err
	}
	if row == nil {
		return nil, apperrors.ErrEventNotFound
	}

	resp := &EventAvailabilityResponse{
		EventID:   externalID.String(),
		Premium:   tierAvailability(row.PremiumCapacity, row.PremiumReserved),
		NearStage: tierAvailability(row.NearStageCapacity, row.NearStageReserved),
		General:   tierAvailability(row.GeneralCapacity, row.GeneralReserved),
	}

	if s.cache != nil {
		_ = s.cache.Set(ctx, cacheKey, resp, s.availabilityTTL)
	}
	return resp, nil
}

// tierAvailability clamps at zero so accounting anomalies upstream never
// surface as negative availability
func tierAvailability(capacity, reserved int) TierAvailability {
	available := capacity - reserved
	if available < 0 {
		available = 0
	}
	return TierAvailability{
		Capacity:  capacity,
		Reserved:  reserved,
		Available: available,
	}
}

func toEventResponse(e *Event) EventResponse {
	venueName := ""
	if e.Venue != nil {
		venueName = e.Venue.Name
	}
	return EventResponse{
		ID:            e.ExternalID.String(),
		Name:          e.Name,
		VenueName:     venueName,
		EventDatetime: e.EventDatetime,
		Prices: TierPrices{
			Premium:   e.PremiumPrice,
			NearStage: e.NearStagePrice,
			General:   e.GeneralPrice,
		},
		CreatedAt: e.CreatedAt,
		UpdatedAt: e.UpdatedAt,
	}
}

// encodeCursor packs the keyset position into an opaque token
func encodeCursor(eventDatetime time.Time, externalID uuid.UUID) string {
	raw := fmt.Sprintf("%d|%s", eventDatetime.UTC().UnixNano(), externalID)
	return base64.RawURLEncoding.EncodeToString([]byte(raw))
}

func decodeCursor(token string) (*ListCursor, error) {
	raw, err := base64.RawURLEncoding.DecodeString(token)
	if err != nil {
		return nil, err
	}

	parts := strings.SplitN(string(raw), "|", 2)
	if len(parts) != 2 {
		return nil, errors.New("malformed cursor")
	}

	var nanos int64
	if _, err := fmt.Sscanf(parts[0], "%d", &nanos); err != nil {
		return nil, err
	}
	id, err := uuid.Parse(parts[1])
	if err != nil {
		return nil, err
	}

	return &ListCursor{
		EventDatetime: time.Unix(0, nanos).UTC(),
		ExternalID:    id,
	}, nil
}
