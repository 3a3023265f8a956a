package payments

// SettleRequest reports a payment outcome for a reservation. The
// outcome is decided by a trusted caller; this service only records it.
type SettleRequest struct {
	ReservationID string `json:"reservation_id" binding:"required,uuid"`
	Outcome       string `json:"outcome" binding:"required,oneof=success failure"`
}
