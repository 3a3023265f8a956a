package venues

type CreateVenueRequest struct {
	Name           string `json:"name" binding:"required,min=3,max=255"`
	PremiumSeats   int    `json:"premium_seats" binding:"min=0"`
	NearStageSeats int    `json:"near_stage_seats" binding:"min=0"`
	GeneralSeats   int    `json:"general_seats" binding:"min=0"`
}
