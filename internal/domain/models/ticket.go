package models

// Ticket is a per-participant admission artifact issued after payment
// approval. QRToken is the opaque value encoded in the QR image; it never
// appears in list responses meant for other travelers.
type Ticket struct {
	ID          int64  `json:"id"`
	BookingID   int64  `json:"bookingId"`
	Name        string `json:"name"`
	BadgeNumber string `json:"badgeNumber"`
	QRToken     string `json:"-"`
	QRCodeURL   string `json:"qrCodeUrl"`
	CheckedInAt string `json:"checkedInAt,omitempty"`
	CheckedInBy string `json:"checkedInBy,omitempty"`
}

const (
	ScanCheckedIn      = "checked_in"
	ScanAlreadyScanned = "already_scanned"
)

// ScanResult is the verification outcome returned to the scanner app.
type ScanResult struct {
	Result string `json:"result"`
	Ticket Ticket `json:"ticket"`
}
