package reservations

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"
	"time"

	"reserva/internal/shared/apperrors"
	"reserva/pkg/logger"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const defaultHistoryLimit = 20

// Notifier publishes reservation lifecycle events to the message bus
// (to avoid a hard dependency on the notifications package)
type Notifier interface {
	PublishReservationCreated(ctx context.Context, reservationID, eventID, requesterID string) error
	PublishReservationsExpired(ctx context.Context, count int64) error
}

// Service interface defines the contract for the reservation engine
type Service interface {
	Reserve(ctx context.Context, req CreateReservationRequest) (*ReservationResponse, error)
	GetReservation(ctx context.Context, externalID uuid.UUID) (*ReservationResponse, error)
	History(ctx context.Context, requesterExternalID uuid.UUID, query HistoryQuery) (*HistoryResponse, error)

	// FailExpiredPending is the sweep body: one bulk transition of every
	// reservation pending past the payment window.
	FailExpiredPending(ctx context.Context) (int64, error)
}

type service struct {
	repo          Repository
	notifier      Notifier // may be nil
	log           *logger.Logger
	paymentWindow time.Duration
}

// NewService creates a new reservation service instance
func NewService(repo Repository, notifier Notifier, log *logger.Logger, paymentWindow time.Duration) Service {
	if log == nil {
		log = logger.GetDefault()
	}
	return &service{
		repo:          repo,
		notifier:      notifier,
		log:           log,
		paymentWindow: paymentWindow,
	}
}

// Reserve admits or rejects a reservation attempt. All validation runs
// before the atomic step; afterwards every signal (event missing,
// requester fault, capacity, idempotent replay) is read off the single
// statement's result so no check-then-act gap exists.
func (s *service) Reserve(ctx context.Context, req CreateReservationRequest) (*ReservationResponse, error) {
	reservationID, err := uuid.Parse(req.ReservationID)
	if err != nil {
		return nil, fmt.Errorf("%w: reservation_id must be a UUID", apperrors.ErrInvalidInput)
	}
	eventID, err := uuid.Parse(req.EventID)
	if err != nil {
		return nil, fmt.Errorf("%w: event_id must be a UUID", apperrors.ErrInvalidInput)
	}
	requesterID, err := uuid.Parse(req.RequesterID)
	if err != nil {
		return nil, fmt.Errorf("%w: requester_id must be a UUID", apperrors.ErrInvalidInput)
	}
	if req.Seats.Premium < 0 || req.Seats.NearStage < 0 || req.Seats.General < 0 {
		return nil, fmt.Errorf("%w: seat counts must be non-negative", apperrors.ErrInvalidInput)
	}
	if req.Seats.Total() <= 0 {
		return nil, fmt.Errorf("%w: at least one seat must be reserved across tiers", apperrors.ErrInvalidInput)
	}

	row, err := s.repo.InsertPendingReservation(ctx, InsertReservationInput{
		ReservationExternalID: reservationID,
		EventExternalID:       eventID,
		RequesterExternalID:   requesterID,
		PremiumSeats:          req.Seats.Premium,
		NearStageSeats:        req.Seats.NearStage,
		GeneralSeats:          req.Seats.General,
	})
	if err != nil {
		return nil, err
	}

	if !row.EventExists {
		return nil, apperrors.ErrEventNotFound
	}
	if !row.RequesterExists {
		// The upsert-or-select union yielded nothing; store anomaly, not
		// a client error.
		return nil, apperrors.ErrRequesterResolution
	}

	if row.ExternalID != nil {
		s.log.LogReservationCreated(ctx, row.ExternalID.String(), req.EventID, req.RequesterID)
		if s.notifier != nil {
			if err := s.notifier.PublishReservationCreated(ctx, row.ExternalID.String(), req.EventID, req.RequesterID); err != nil {
				s.log.ErrorWithContext(ctx, "Failed to publish reservation notification", err, map[string]interface{}{
					"reservation_id": row.ExternalID.String(),
				})
			}
		}
		return &ReservationResponse{
			ID:     row.ExternalID.String(),
			Status: *row.Status,
			Seats: BookedSeats{
				Premium:   *row.PremiumSeats,
				NearStage: *row.NearStageSeats,
				General:   *row.GeneralSeats,
				Total:     *row.PremiumSeats + *row.NearStageSeats + *row.GeneralSeats,
			},
			CreatedAt: *row.CreatedAt,
			UpdatedAt: *row.UpdatedAt,
		}, nil
	}

	// Nothing inserted: either the idempotency key already exists
	// (replay; return its current state, which payment or expiry may
	// already have moved) or capacity validation failed.
	existing, err := s.repo.FindByExternalID(ctx, reservationID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrCapacityExceeded
		}
		return nil, err
	}

	s.log.LogReservationReplayed(ctx, existing.ExternalID.String(), existing.Status.String())
	resp := toReservationResponse(existing)
	return &resp, nil
}

func (s *service) GetReservation(ctx context.Context, externalID uuid.UUID) (*ReservationResponse, error) {
	reservation, err := s.repo.FindByExternalID(ctx, externalID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrReservationNotFound
		}
		return nil, err
	}

	resp := toReservationResponse(reservation)
	return &resp, nil
}

func (s *service) History(ctx context.Context, requesterExternalID uuid.UUID, query HistoryQuery) (*HistoryResponse, error) {
	limit := query.Limit
	if limit <= 0 {
		limit = defaultHistoryLimit
	}

	var after *HistoryCursor
	if query.Cursor != "" {
		cursor, err := decodeHistoryCursor(query.Cursor)
		if err != nil {
			return nil, fmt.Errorf("%w: malformed cursor", apperrors.ErrInvalidInput)
		}
		after = cursor
	}

	rows, err := s.repo.ListByRequester(ctx, requesterExternalID, after, limit)
	if err != nil {
		return nil, err
	}

	hasMore := len(rows) > limit
	if hasMore {
		rows = rows[:limit]
	}

	result := &HistoryResponse{
		Reservations: make([]HistoryItem, 0, len(rows)),
		HasMore:      hasMore,
	}
	for i := range rows {
		result.Reservations = append(result.Reservations, toHistoryItem(&rows[i]))
	}
	result.Found = len(result.Reservations)
	if hasMore && len(rows) > 0 {
		last := rows[len(rows)-1]
		result.NextCursor = encodeHistoryCursor(last.CreatedAt, last.ID)
	}

	return result, nil
}

func (s *service) FailExpiredPending(ctx context.Context) (int64, error) {
	count, err := s.repo.FailExpiredPending(ctx, s.paymentWindow)
	if err != nil {
		return 0, err
	}

	if count > 0 && s.notifier != nil {
		if err := s.notifier.PublishReservationsExpired(ctx, count); err != nil {
			s.log.ErrorWithContext(ctx, "Failed to publish expiry notification", err, map[string]interface{}{
				"expired": count,
			})
		}
	}
	return count, nil
}

func toReservationResponse(r *Reservation) ReservationResponse {
	return ReservationResponse{
		ID:     r.ExternalID.String(),
		Status: r.Status.String(),
		Seats: BookedSeats{
			Premium:   r.PremiumSeats,
			NearStage: r.NearStageSeats,
			General:   r.GeneralSeats,
			Total:     r.TotalSeats(),
		},
		CreatedAt: r.CreatedAt,
		UpdatedAt: r.UpdatedAt,
	}
}

func toHistoryItem(row *historyRow) HistoryItem {
	return HistoryItem{
		ID: row.ExternalID.String(),
		Event: HistoryEventInfo{
			ID:            row.EventExternalID.String(),
			Name:          row.EventName,
			EventDatetime: row.EventDatetime,
			VenueName:     row.VenueName,
		},
		Status: row.Status,
		Seats: BookedSeats{
			Premium:   row.PremiumSeats,
			NearStage: row.NearStageSeats,
			General:   row.GeneralSeats,
			Total:     row.PremiumSeats + row.NearStageSeats + row.GeneralSeats,
		},
		TotalCost: row.TotalCost,
		CreatedAt: row.CreatedAt,
		UpdatedAt: row.UpdatedAt,
	}
}

// encodeHistoryCursor packs the keyset position into an opaque token
func encodeHistoryCursor(createdAt time.Time, id uint64) string {
	raw := fmt.Sprintf("%d|%d", createdAt.UTC().UnixNano(), id)
	return base64.RawURLEncoding.EncodeToString([]byte(raw))
}

func decodeHistoryCursor(token string) (*HistoryCursor, error) {
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
	var id uint64
	if _, err := fmt.Sscanf(parts[1], "%d", &id); err != nil {
		return nil, err
	}

	return &HistoryCursor{
		CreatedAt: time.Unix(0, nanos).UTC(),
		ID:        id,
	}, nil
}
