package reservations

import (
	"time"

	"github.com/google/uuid"
)

// Reservation holds tier-level seat counts against one event. ExternalID
// is supplied by the client and doubles as the idempotency key: the
// unique index is what makes retries safe.
type Reservation struct {
	ID             uint64    `json:"-" gorm:"primaryKey;autoIncrement"`
	ExternalID     uuid.UUID `json:"id" gorm:"type:uuid;uniqueIndex;not null"`
	EventID        uint64    `json:"-" gorm:"not null;index"`
	RequesterID    uint64    `json:"-" gorm:"not null;index"`
	PremiumSeats   int       `json:"premium_seats" gorm:"not null"`
	NearStageSeats int       `json:"near_stage_seats" gorm:"not null"`
	GeneralSeats   int       `json:"general_seats" gorm:"not null"`
	Status         Status    `json:"status" gorm:"type:varchar(20);check:status IN ('pending', 'success', 'failure');not null"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// TableName sets the table name for Reservation
func (Reservation) TableName() string {
	return "reservations"
}

// TotalSeats returns the seat count summed across tiers
func (r *Reservation) TotalSeats() int {
	return r.PremiumSeats + r.NearStageSeats + r.GeneralSeats
}

// insertAttemptRow is the single row the atomic reserve statement always
// returns. The two flags separate "event missing" and "requester upsert
// failed" from "capacity exceeded" without a check-then-act gap; the
// remaining columns are null unless a row was inserted.
type insertAttemptRow struct {
	EventExists     bool       `gorm:"column:event_exists"`
	RequesterExists bool       `gorm:"column:requester_exists"`
	ExternalID      *uuid.UUID `gorm:"column:external_id"`
	Status          *string    `gorm:"column:status"`
	PremiumSeats    *int       `gorm:"column:premium_seats"`
	NearStageSeats  *int       `gorm:"column:near_stage_seats"`
	GeneralSeats    *int       `gorm:"column:general_seats"`
	CreatedAt       *time.Time `gorm:"column:created_at"`
	UpdatedAt       *time.Time `gorm:"column:updated_at"`
}

// historyRow is the joined shape the requester history query scans into
type historyRow struct {
	ID              uint64    `gorm:"column:id"`
	ExternalID      uuid.UUID `gorm:"column:external_id"`
	EventExternalID uuid.UUID `gorm:"column:event_external_id"`
	EventName       string    `gorm:"column:event_name"`
	EventDatetime   time.Time `gorm:"column:event_datetime"`
	VenueName       string    `gorm:"column:venue_name"`
	Status          string    `gorm:"column:status"`
	PremiumSeats    int       `gorm:"column:premium_seats"`
	NearStageSeats  int       `gorm:"column:near_stage_seats"`
	GeneralSeats    int       `gorm:"column:general_seats"`
	TotalCost       float64   `gorm:"column:total_cost"`
	CreatedAt       time.Time `gorm:"column:created_at"`
	UpdatedAt       time.Time `gorm:"column:updated_at"`
}
