package models

const (
	TravelActive   = "ACTIVE"
	TravelInactive = "INACTIVE"
)

type Travel struct {
	ID          int64   `json:"id"`
	Title       string  `json:"title"`
	Destination string  `json:"destination"`
	Description string  `json:"description,omitempty"`
	Price       float64 `json:"price"`
	StartDate   string  `json:"startDate,omitempty"`
	EndDate     string  `json:"endDate,omitempty"`
	Capacity    int     `json:"capacity"`
	Status      string  `json:"status"`
}
