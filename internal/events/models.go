package events

import (
	"time"

	"reserva/internal/venues"

	"github.com/google/uuid"
)

type Event struct {
	ID             uint64    `json:"-" gorm:"primaryKey;autoIncrement"`
	ExternalID     uuid.UUID `json:"id" gorm:"type:uuid;default:gen_random_uuid();index;not null"`
	VenueID        uint64    `json:"-" gorm:"not null;index"`
	Name           string    `json:"name" gorm:"size:255;not null"`
	PremiumPrice   float64   `json:"premium_price" gorm:"not null"`
	NearStagePrice float64   `json:"near_stage_price" gorm:"not null"`
	GeneralPrice   float64   `json:"general_price" gorm:"not null"`
	EventDatetime  time.Time `json:"event_datetime" gorm:"not null"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`

	// Relationships
	Venue *venues.Venue `json:"venue,omitempty" gorm:"foreignKey:VenueID;constraint:OnDelete:RESTRICT;"`
}

// TableName specifies the table name for GORM
func (Event) TableName() string {
	return "events"
}

type CreateEventRequest struct {
	VenueID        string    `json:"venue_id" binding:"required,uuid"`
	Name           string    `json:"name" binding:"required,min=3,max=255"`
	PremiumPrice   float64   `json:"premium_price" binding:"min=0"`
	NearStagePrice float64   `json:"near_stage_price" binding:"min=0"`
	GeneralPrice   float64   `json:"general_price" binding:"min=0"`
	EventDatetime  time.Time `json:"event_datetime" binding:"required"`
}

type EventListQuery struct {
	Limit  int    `form:"limit" binding:"omitempty,min=1,max=100"`
	Cursor string `form:"cursor"`
}

type TierPrices struct {
	Premium   float64 `json:"premium"`
	NearStage float64 `json:"near_stage"`
	General   float64 `json:"general"`
}

type TierAvailability struct {
	Capacity  int `json:"capacity"`
	Reserved  int `json:"reserved"`
	Available int `json:"available"`
}

type EventResponse struct {
	ID            string     `json:"id"`
	Name          string     `json:"name"`
	VenueName     string     `json:"venue_name"`
	EventDatetime time.Time  `json:"event_datetime"`
	Prices        TierPrices `json:"prices"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
}

type EventAvailabilityResponse struct {
	EventID   string           `json:"event_id"`
	Premium   TierAvailability `json:"premium"`
	NearStage TierAvailability `json:"near_stage"`
	General   TierAvailability `json:"general"`
}

type PaginatedEvents struct {
	Events     []EventResponse `json:"events"`
	Found      int             `json:"found"`
	NextCursor string          `json:"next_cursor,omitempty"`
	HasMore    bool            `json:"has_more"`
}

// eventListRow is the joined shape the listing query scans into
type eventListRow struct {
	ExternalID     uuid.UUID `gorm:"column:external_id"`
	Name           string    `gorm:"column:name"`
	VenueName      string    `gorm:"column:venue_name"`
	EventDatetime  time.Time `gorm:"column:event_datetime"`
	PremiumPrice   float64   `gorm:"column:premium_price"`
	NearStagePrice float64   `gorm:"column:near_stage_price"`
	GeneralPrice   float64   `gorm:"column:general_price"`
	CreatedAt      time.Time `gorm:"column:created_at"`
	UpdatedAt      time.Time `gorm:"column:updated_at"`
}

// availabilityRow is the aggregate shape the availability query scans into
type availabilityRow struct {
	PremiumCapacity   int `gorm:"column:premium_capacity"`
	NearStageCapacity int `gorm:"column:near_stage_capacity"`
	GeneralCapacity   int `gorm:"column:general_capacity"`
	PremiumReserved   int `gorm:"column:premium_reserved"`
	NearStageReserved int `gorm:"column:near_stage_reserved"`
	GeneralReserved   int `gorm:"column:general_reserved"`
}

func (row *eventListRow) toResponse() EventResponse {
	return EventResponse{
		ID:            row.ExternalID.String(),
		Name:          row.Name,
		VenueName:     row.VenueName,
		EventDatetime: row.EventDatetime,
		Prices: TierPrices{
			Premium:   row.PremiumPrice,
			NearStage: row.NearStagePrice,
			General:   row.GeneralPrice,
		},
		CreatedAt: row.CreatedAt,
		UpdatedAt: row.UpdatedAt,
	}
}
