package services

import (
	"fmt"

	"travelapi/internal/domain"
	"travelapi/internal/domain/models"
	"travelapi/internal/repositories"
)

type BookingService struct {
	BookingRepo repositories.BookingRepository
	PaymentRepo repositories.PaymentRepository
	TicketRepo  repositories.TicketRepository
	TravelRepo  repositories.TravelRepository
	BaseURL     string
	RequestID   string
}

// ParticipantCount prices a booking with an empty participant list as a
// single traveler.
func ParticipantCount(participants []models.Participant) int {
	if len(participants) == 0 {
		return 1
	}
	return len(participants)
}

// BaseAmount is unit price times participant count.
func BaseAmount(unitPrice float64, count int) float64 {
	if count < 1 {
		count = 1
	}
	return unitPrice * float64(count)
}

// CanSubmitPayment is the submission gate: a booking accepts a payment only
// when it has none yet, or the previous one was rejected.
func CanSubmitPayment(p *models.Payment) bool {
	return p == nil || p.Status == models.PaymentRejected
}

// Get assembles the nested booking the apps render: travel summary,
// participants, payment (nullable), derived status, and tickets.
func (s BookingService) Get(id int64) (models.Booking, error) {
	row, err := s.BookingRepo.GetByID(id)
	if err != nil {
		return models.Booking{}, err
	}
	return s.assemble(row)
}

// GetForUser is Get plus an ownership check for traveler-facing routes.
func (s BookingService) GetForUser(id, userID int64, role string) (models.Booking, error) {
	b, err := s.Get(id)
	if err != nil {
		return models.Booking{}, err
	}
	if b.UserID != userID && !models.IsStaff(role) {
		return models.Booking{}, domain.ForbiddenError{Msg: "booking belongs to another traveler"}
	}
	return b, nil
}

func (s BookingService) ListForUser(userID int64) ([]models.Booking, error) {
	rows, err := s.BookingRepo.ListByUser(userID)
	if err != nil {
		return nil, err
	}
	return s.assembleAll(rows)
}

func (s BookingService) List(f repositories.ListFilter) ([]models.Booking, error) {
	rows, err := s.BookingRepo.List(f)
	if err != nil {
		return nil, err
	}
	return s.assembleAll(rows)
}

func (s BookingService) Create(userID, travelID int64, participants []models.Participant) (models.Booking, error) {
	travel, err := s.TravelRepo.GetByID(travelID)
	if err != nil {
		return models.Booking{}, err
	}
	if travel.Status != models.TravelActive {
		return models.Booking{}, domain.ValidationError{Field: "travel_id", Msg: "travel is not open for booking"}
	}

	clean := make([]models.Participant, 0, len(participants))
	for _, p := range participants {
		if p.Name == "" {
			continue
		}
		clean = append(clean, p)
	}

	id, err := s.BookingRepo.Create(userID, travelID, clean)
	if err != nil {
		return models.Booking{}, err
	}
	return s.Get(id)
}

// Delete refuses to remove bookings whose payment was approved; tickets may
// already be in the field.
func (s BookingService) Delete(id int64) error {
	payment, err := s.PaymentRepo.GetByBookingID(id)
	if err != nil {
		return err
	}
	if payment != nil && payment.Status == models.PaymentApproved {
		return domain.ConflictError{Resource: "booking", Msg: "payment already approved"}
	}
	return s.BookingRepo.Delete(id)
}

func (s BookingService) assembleAll(rows []repositories.BookingRow) ([]models.Booking, error) {
	out := make([]models.Booking, 0, len(rows))
	for _, row := range rows {
		b, err := s.assemble(row)
		if err != nil {
			return nil, err
		}
		out = append(out, b)
	}
	return out, nil
}

func (s BookingService) assemble(row repositories.BookingRow) (models.Booking, error) {
	participants, err := s.BookingRepo.ListParticipants(row.ID)
	if err != nil {
		return models.Booking{}, err
	}
	payment, err := s.PaymentRepo.GetByBookingID(row.ID)
	if err != nil {
		return models.Booking{}, err
	}

	tickets := []models.Ticket{}
	if payment != nil && payment.Status == models.PaymentApproved {
		tickets, err = s.TicketRepo.ListByBookingID(row.ID)
		if err != nil {
			return models.Booking{}, err
		}
		for i := range tickets {
			tickets[i].QRCodeURL = TicketQRURL(s.BaseURL, tickets[i].ID)
		}
	}

	return models.Booking{
		ID:       row.ID,
		UserID:   row.UserID,
		TravelID: row.TravelID,
		Status:   models.DeriveStatus(payment),
		Travel: models.Travel{
			ID:          row.TravelID,
			Title:       row.TravelTitle,
			Destination: row.TravelDestination,
			Price:       row.TravelPrice,
			Status:      row.TravelStatus,
		},
		Participants: participants,
		Payment:      payment,
		Tickets:      tickets,
		CreatedAt:    row.CreatedAt,
	}, nil
}

// TicketQRURL is where the ticket's QR PNG is served.
func TicketQRURL(baseURL string, ticketID int64) string {
	return fmt.Sprintf("%s/api/tickets/%d/qr", baseURL, ticketID)
}
