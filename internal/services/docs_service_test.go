package services

import (
	"bytes"
	"strings"
	"testing"
)

func TestGenerateETicketProducesPDF(t *testing.T) {
	svc := DocsService{
		Loader: func(id int64) (ticketDocData, error) {
			return ticketDocData{
				TicketID:    21,
				BookingID:   5,
				Name:        "Ana",
				BadgeNumber: "TB-5-1",
				QRToken:     "tok-1",
				TravelTitle: "Bali Escape",
				Destination: "Bali",
			}, nil
		},
	}

	pdf, filename, err := svc.GenerateETicket(21)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !bytes.HasPrefix(pdf, []byte("%PDF")) {
		t.Fatalf("output is not a PDF")
	}
	if !strings.HasSuffix(filename, ".pdf") {
		t.Fatalf("unexpected filename %q", filename)
	}
	if !strings.Contains(filename, "TB-5-1") {
		t.Fatalf("filename should carry the badge number, got %q", filename)
	}
}

func TestSafeFilenamePart(t *testing.T) {
	if got := safeFilenamePart(`TB/5:1 "x"`); strings.ContainsAny(got, `/:" `) {
		t.Fatalf("unsafe characters left in %q", got)
	}
}
