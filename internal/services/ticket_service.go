package services

import (
	"fmt"
	"strings"

	"travelapi/internal/domain"
	"travelapi/internal/domain/models"
	"travelapi/internal/repositories"
	"travelapi/internal/utils"

	"github.com/google/uuid"
)

type TicketService struct {
	TicketRepo  repositories.TicketRepository
	BookingRepo repositories.BookingRepository
	BaseURL     string
	RequestID   string
	// NewToken is swappable in tests; defaults to uuid.
	NewToken func() string
}

func (s TicketService) newToken() string {
	if s.NewToken != nil {
		return s.NewToken()
	}
	return uuid.NewString()
}

// IssueForBooking creates one ticket per participant (or one for the whole
// booking when no participants were recorded). Idempotent: a booking that
// already has tickets keeps them, so a retried approval cannot double-issue.
// Returns whether tickets were newly created.
func (s TicketService) IssueForBooking(bookingID int64) (bool, error) {
	existing, err := s.TicketRepo.ListByBookingID(bookingID)
	if err != nil {
		return false, err
	}
	if len(existing) > 0 {
		return false, nil
	}

	participants, err := s.BookingRepo.ListParticipants(bookingID)
	if err != nil {
		return false, err
	}

	names := make([]string, 0, len(participants))
	for _, p := range participants {
		names = append(names, p.Name)
	}
	if len(names) == 0 {
		names = append(names, fmt.Sprintf("Booking #%d", bookingID))
	}

	for i, name := range names {
		_, err := s.TicketRepo.Insert(models.Ticket{
			BookingID:   bookingID,
			Name:        name,
			BadgeNumber: fmt.Sprintf("TB-%d-%d", bookingID, i+1),
			QRToken:     s.newToken(),
		})
		if err != nil {
			return false, err
		}
	}

	utils.LogEvent(s.RequestID, "ticket", "issue",
		fmt.Sprintf("booking_id=%d count=%d", bookingID, len(names)))
	return true, nil
}

// Scan verifies a QR payload. The first scan of a token checks the ticket
// in; every later scan of the same token (including one racing the first)
// reports already_scanned with the original check-in time, so repeated
// frames of one code cannot check a ticket in twice.
func (s TicketService) Scan(code, scannerName string) (models.ScanResult, error) {
	code = strings.TrimSpace(code)
	if code == "" {
		return models.ScanResult{}, domain.ValidationError{Field: "code", Msg: "scan payload is empty"}
	}

	claimed, err := s.TicketRepo.CheckInFirst(code, scannerName)
	if err != nil {
		return models.ScanResult{}, err
	}

	ticket, err := s.TicketRepo.GetByToken(code)
	if err != nil {
		return models.ScanResult{}, err
	}
	ticket.QRCodeURL = TicketQRURL(s.BaseURL, ticket.ID)

	result := models.ScanAlreadyScanned
	if claimed {
		result = models.ScanCheckedIn
	}
	utils.LogEvent(s.RequestID, "ticket", "scan",
		fmt.Sprintf("ticket_id=%d result=%s", ticket.ID, result))

	return models.ScanResult{Result: result, Ticket: ticket}, nil
}
