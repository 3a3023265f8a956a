package requesters

import (
	"time"

	"github.com/google/uuid"
)

// Requester is the app-side identity a reservation belongs to. Rows are
// created lazily on the first reservation attempt, keyed by the external
// identity the caller supplies.
type Requester struct {
	ID         uint64    `json:"-" gorm:"primaryKey;autoIncrement"`
	ExternalID uuid.UUID `json:"id" gorm:"type:uuid;uniqueIndex;not null"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// TableName sets the table name for Requester
func (Requester) TableName() string {
	return "requesters"
}
