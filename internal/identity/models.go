package identity

import (
	"time"

	"github.com/golang-jwt/jwt/v4"
)

// Claims carries the requester identity inside a guest token
type Claims struct {
	RequesterID string `json:"requester_id"`
	Type        string `json:"type"`
	jwt.RegisteredClaims
}

// GuestTokenResponse is returned when a guest identity is issued
type GuestTokenResponse struct {
	RequesterID string `json:"requester_id"`
	Token       string `json:"token"`
	ExpiresIn   int64  `json:"expires_in"`
}

// IdentityResponse describes the requester behind a presented token
type IdentityResponse struct {
	RequesterID string    `json:"requester_id"`
	IssuedAt    time.Time `json:"issued_at"`
	ExpiresAt   time.Time `json:"expires_at"`
}
