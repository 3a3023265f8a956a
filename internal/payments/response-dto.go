package payments

import "time"

type SettlementResponse struct {
	ReservationID     string    `json:"reservation_id"`
	Status            string    `json:"status"`
	ReservationStatus string    `json:"reservation_status"`
	UpdatedAt         time.Time `json:"updated_at"`
}
