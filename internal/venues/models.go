package venues

import (
	"time"

	"github.com/google/uuid"
)

// Venue holds the per-tier seat capacities. Capacities are immutable
// once events are sold against them; availability is always derived
// from reservations, never stored here.
type Venue struct {
	ID             uint64    `json:"-" gorm:"primaryKey;autoIncrement"`
	ExternalID     uuid.UUID `json:"id" gorm:"type:uuid;default:gen_random_uuid();index;not null"`
	Name           string    `json:"name" gorm:"size:255;not null"`
	PremiumSeats   int       `json:"premium_seats" gorm:"not null"`
	NearStageSeats int       `json:"near_stage_seats" gorm:"not null"`
	GeneralSeats   int       `json:"general_seats" gorm:"not null"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// TableName sets the table name for Venue
func (Venue) TableName() string {
	return "venues"
}

type VenueResponse struct {
	ID             string    `json:"id"`
	Name           string    `json:"name"`
	PremiumSeats   int       `json:"premium_seats"`
	NearStageSeats int       `json:"near_stage_seats"`
	GeneralSeats   int       `json:"general_seats"`
	TotalSeats     int       `json:"total_seats"`
	CreatedAt      time.Time `json:"created_at"`
}

func (v *Venue) ToResponse() VenueResponse {
	return VenueResponse{
		ID:             v.ExternalID.String(),
		Name:           v.Name,
		PremiumSeats:   v.PremiumSeats,
		NearStageSeats: v.NearStageSeats,
		GeneralSeats:   v.GeneralSeats,
		TotalSeats:     v.PremiumSeats + v.NearStageSeats + v.GeneralSeats,
		CreatedAt:      v.CreatedAt,
	}
}
