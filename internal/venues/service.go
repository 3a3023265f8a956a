package venues

import (
	"context"
	"errors"

	"reserva/internal/shared/apperrors"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Service interface {
	CreateVenue(ctx context.Context, req CreateVenueRequest) (*VenueResponse, error)
	GetVenue(ctx context.Context, externalID uuid.UUID) (*VenueResponse, error)
	ListVenues(ctx context.Context) ([]VenueResponse, error)
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) CreateVenue(ctx context.Context, req CreateVenueRequest) (*VenueResponse, error) {
	if req.PremiumSeats+req.NearStageSeats+req.GeneralSeats <= 0 {
		return nil, apperrors.ErrInvalidInput
	}

	venue := &Venue{
		ExternalID:     uuid.New(),
		Name:           req.Name,
		PremiumSeats:   req.PremiumSeats,
		NearStageSeats: req.NearStageSeats,
		GeneralSeats:   req.GeneralSeats,
	}
	if err := s.repo.Create(ctx, venue); err != nil {
		return nil, err
	}

	resp := venue.ToResponse()
	return &resp, nil
}

func (s *service) GetVenue(ctx context.Context, externalID uuid.UUID) (*VenueResponse, error) {
	venue, err := s.repo.FindByExternalID(ctx, externalID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrVenueNotFound
		}
		return nil, err
	}

	resp := venue.ToResponse()
	return &resp, nil
}

func (s *service) ListVenues(ctx context.Context) ([]VenueResponse, error) {
	list, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}

	responses := make([]VenueResponse, 0, len(list))
	for i := range list {
		responses = append(responses, list[i].ToResponse())
	}
	return responses, nil
}
