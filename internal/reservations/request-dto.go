package reservations

type SeatCounts struct {
	Premium   int `json:"premium" binding:"min=0"`
	NearStage int `json:"near_stage" binding:"min=0"`
	General   int `json:"general" binding:"min=0"`
}

// Total returns the requested seat count summed across tiers
func (s SeatCounts) Total() int {
	return s.Premium + s.NearStage + s.General
}

// CreateReservationRequest carries the client-generated reservation id,
// which is the idempotency key for the attempt.
type CreateReservationRequest struct {
	ReservationID string     `json:"reservation_id" binding:"required,uuid"`
	EventID       string     `json:"event_id" binding:"required,uuid"`
	RequesterID   string     `json:"requester_id" binding:"required,uuid"`
	Seats         SeatCounts `json:"seats" binding:"required"`
}

type HistoryQuery struct {
	Limit  int    `form:"limit" binding:"omitempty,min=1,max=100"`
	Cursor string `form:"cursor"`
}
