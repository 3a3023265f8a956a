package payments

import (
	"time"
)

type Status string

const (
	StatusPending Status = "pending"
	StatusSuccess Status = "success"
	StatusFailure Status = "failure"
)

func (s Status) String() string {
	return string(s)
}

// IsOutcome reports whether the status is a terminal outcome a caller
// may report. Payment success or failure is decided by a trusted
// caller, never computed here.
func (s Status) IsOutcome() bool {
	return s == StatusSuccess || s == StatusFailure
}

// Settlement is the payment-outcome record paired 1:1 with a
// reservation; the reservation's internal id is its primary key. Once
// the status leaves pending it is immutable, and the paired reservation
// is moved in the same statement.
type Settlement struct {
	ReservationID uint64    `json:"-" gorm:"primaryKey"`
	Status        Status    `json:"status" gorm:"type:varchar(20);check:status IN ('pending', 'success', 'failure');default:'pending';not null"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// TableName sets the table name for Settlement
func (Settlement) TableName() string {
	return "settlements"
}

// settlementRow is the joined shape settlement queries scan into; the
// reservation status rides along so callers can observe the lock-step.
type settlementRow struct {
	ReservationExternalID string    `gorm:"column:reservation_external_id"`
	SettlementStatus      string    `gorm:"column:settlement_status"`
	ReservationStatus     string    `gorm:"column:reservation_status"`
	UpdatedAt             time.Time `gorm:"column:updated_at"`
}
