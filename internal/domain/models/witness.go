package models

type Witness struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	Phone    string `json:"phone,omitempty"`
	Address  string `json:"address,omitempty"`
	TravelID *int64 `json:"travelId,omitempty"`
	Notes    string `json:"notes,omitempty"`
}
