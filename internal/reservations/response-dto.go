package reservations

import "time"

type BookedSeats struct {
	Premium   int `json:"premium"`
	NearStage int `json:"near_stage"`
	General   int `json:"general"`
	Total     int `json:"total"`
}

type ReservationResponse struct {
	ID        string      `json:"id"`
	Status    string      `json:"status"`
	Seats     BookedSeats `json:"seats"`
	CreatedAt time.Time   `json:"created_at"`
	UpdatedAt time.Time   `json:"updated_at"`
}

type HistoryEventInfo struct {
	ID            string    `json:"id"`
	Name          string    `json:"name"`
	EventDatetime time.Time `json:"event_datetime"`
	VenueName     string    `json:"venue_name"`
}

type HistoryItem struct {
	ID        string           `json:"id"`
	Event     HistoryEventInfo `json:"event"`
	Status    string           `json:"status"`
	Seats     BookedSeats      `json:"seats"`
	TotalCost float64          `json:"total_cost"`
	CreatedAt time.Time        `json:"created_at"`
	UpdatedAt time.Time        `json:"updated_at"`
}

type HistoryResponse struct {
	Reservations []HistoryItem `json:"reservations"`
	Found        int           `json:"found"`
	NextCursor   string        `json:"next_cursor,omitempty"`
	HasMore      bool          `json:"has_more"`
}
