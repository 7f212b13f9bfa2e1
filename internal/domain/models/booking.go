package models

// Booking status values are derived from the payment row; bookings carry no
// status column of their own.
const (
	BookingStatusNone = "none"
)

type Booking struct {
	ID           int64         `json:"id"`
	UserID       int64         `json:"userId"`
	TravelID     int64         `json:"travelId"`
	Status       string        `json:"status"`
	Travel       Travel        `json:"travel"`
	Participants []Participant `json:"participants"`
	Payment      *Payment      `json:"payment"`
	Tickets      []Ticket      `json:"tickets"`
	CreatedAt    string        `json:"createdAt,omitempty"`
}

// Participant is one traveler on a booking, in submission order.
type Participant struct {
	Name     string `json:"name"`
	AgeGroup string `json:"ageGroup,omitempty"`
	Gender   string `json:"gender,omitempty"`
}

// DeriveStatus maps the nested payment onto the booking-level status the
// clients render: none / PENDING / APPROVED / REJECTED.
func DeriveStatus(p *Payment) string {
	if p == nil {
		return BookingStatusNone
	}
	return p.Status
}
