package identity

import (
	"context"
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"reserva/internal/requesters"
	"reserva/internal/shared/config"
)

var (
	ErrInvalidToken     = errors.New("invalid token")
	ErrUnknownRequester = errors.New("unknown requester")
)

// Service issues anonymous guest identities. There is no password flow:
// a guest token is minted on demand and names a requester that the
// reservation endpoints accept.
type Service interface {
	IssueGuestToken(ctx context.Context) (*GuestTokenResponse, error)
	ValidateToken(tokenString string) (*Claims, error)
	Introspect(ctx context.Context, tokenString string) (*IdentityResponse, error)
}

type service struct {
	requesterRepo requesters.Repository
	config        config.IdentityConfig
}

func NewService(requesterRepo requesters.Repository, cfg config.IdentityConfig) Service {
	return &service{
		requesterRepo: requesterRepo,
		config:        cfg,
	}
}

func (s *service) IssueGuestToken(ctx context.Context) (*GuestTokenResponse, error) {
	requesterID := uuid.New()

	// Persist the requester up front so history reads work before the
	// first reservation.
	if _, err := s.requesterRepo.Upsert(ctx, requesterID); err != nil {
		return nil, err
	}

	now := time.Now()
	claims := Claims{
		RequesterID: requesterID.String(),
		Type:        "guest",
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.config.TokenTTL)),
			Issuer:    s.config.IssuerURL,
			Subject:   requesterID.String(),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString([]byte(s.config.Secret))
	if err != nil {
		return nil, err
	}

	return &GuestTokenResponse{
		RequesterID: requesterID.String(),
		Token:       tokenString,
		ExpiresIn:   int64(s.config.TokenTTL.Seconds()),
	}, nil
}

func (s *service) ValidateToken(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return []byte(s.config.Secret), nil
	})
	if err != nil {
		return nil, ErrInvalidToken
	}

	if claims, ok := token.Claims.(*Claims); ok && token.Valid {
		return claims, nil
	}

	return nil, ErrInvalidToken
}

// Introspect validates a presented token and confirms the requester it
// names still exists in the store.
func (s *service) Introspect(ctx context.Context, tokenString string) (*IdentityResponse, error) {
	claims, err := s.ValidateToken(tokenString)
	if err != nil {
		return nil, err
	}

	requesterID, err := uuid.Parse(claims.RequesterID)
	if err != nil {
		return nil, ErrInvalidToken
	}

	if _, err := s.requesterRepo.FindByExternalID(ctx, requesterID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUnknownRequester
		}
		return nil, err
	}

	return &IdentityResponse{
		RequesterID: claims.RequesterID,
		IssuedAt:    claims.IssuedAt.Time,
		ExpiresAt:   claims.ExpiresAt.Time,
	}, nil
}
