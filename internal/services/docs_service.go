package services

import (
	"bytes"
	"fmt"
	"strings"

	"travelapi/internal/repositories"
	"travelapi/internal/utils"

	"github.com/phpdave11/gofpdf"
	qrcode "github.com/skip2/go-qrcode"
)

// DocsService renders the per-participant e-ticket PDF.
type DocsService struct {
	TicketRepo  repositories.TicketRepository
	BookingRepo repositories.BookingRepository
	RequestID   string
	Loader      func(int64) (ticketDocData, error)
}

type ticketDocData struct {
	TicketID    int64
	BookingID   int64
	Name        string
	BadgeNumber string
	QRToken     string
	TravelTitle string
	Destination string
	CheckedInAt string
}

func (s DocsService) GenerateETicket(ticketID int64) ([]byte, string, error) {
	data, err := s.loadTicketDocData(ticketID)
	if err != nil {
		return nil, "", err
	}
	utils.LogEvent(s.RequestID, "docs", "generate_eticket", fmt.Sprintf("ticket_id=%d", ticketID))
	return buildETicketPDF(data)
}

func (s DocsService) loadTicketDocData(ticketID int64) (ticketDocData, error) {
	if s.Loader != nil {
		return s.Loader(ticketID)
	}

	ticket, err := s.TicketRepo.GetByID(ticketID)
	if err != nil {
		return ticketDocData{}, err
	}

	out := ticketDocData{
		TicketID:    ticket.ID,
		BookingID:   ticket.BookingID,
		Name:        ticket.Name,
		BadgeNumber: ticket.BadgeNumber,
		QRToken:     ticket.QRToken,
		CheckedInAt: ticket.CheckedInAt,
	}

	if booking, err := s.BookingRepo.GetByID(ticket.BookingID); err == nil {
		out.TravelTitle = booking.TravelTitle
		out.Destination = booking.TravelDestination
	}

	return out, nil
}

func buildETicketPDF(d ticketDocData) ([]byte, string, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle("E-Ticket", false)
	pdf.AddPage()
	pdf.SetFont("Helvetica", "B", 18)
	pdf.Cell(0, 10, "E-TICKET")
	pdf.Ln(12)

	pdf.SetFont("Helvetica", "", 12)
	lines := []string{
		fmt.Sprintf("Participant : %s", safe(d.Name, "-")),
		fmt.Sprintf("Badge       : %s", safe(d.BadgeNumber, "-")),
		fmt.Sprintf("Travel      : %s", safe(d.TravelTitle, "-")),
		fmt.Sprintf("Destination : %s", safe(d.Destination, "-")),
		fmt.Sprintf("Booking     : #%d", d.BookingID),
	}
	for _, s := range lines {
		pdf.Cell(0, 7, s)
		pdf.Ln(7)
	}

	if d.QRToken != "" {
		png, err := qrcode.Encode(d.QRToken, qrcode.Medium, 256)
		if err != nil {
			return nil, "", err
		}
		opts := gofpdf.ImageOptions{ImageType: "PNG"}
		pdf.RegisterImageOptionsReader("ticket-qr", opts, bytes.NewReader(png))
		pdf.Ln(4)
		pdf.ImageOptions("ticket-qr", pdf.GetX(), pdf.GetY(), 45, 45, false, opts, 0, "")
		pdf.Ln(50)
	}

	pdf.SetFont("Helvetica", "I", 10)
	pdf.MultiCell(0, 6, "This e-ticket admits one participant. Present the QR code at check-in.", "", "", false)

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, "", err
	}

	filename := fmt.Sprintf("ETICKET_%d_%s.pdf", d.BookingID, safeFilenamePart(d.Name+"_"+d.BadgeNumber))
	return buf.Bytes(), filename, nil
}

func safe(v, fallback string) string {
	v = strings.TrimSpace(v)
	if v == "" {
		return fallback
	}
	return v
}

func safeFilenamePart(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return "NA"
	}
	replacer := strings.NewReplacer(" ", "_", "/", "_", "\\", "_", ":", "_", "*", "_", "?", "_", "\"", "_", "<", "_", ">", "_", "|", "_")
	s = replacer.Replace(s)
	if len(s) > 40 {
		s = s[:40]
	}
	return s
}
