package models

const (
	PaymentPending  = "PENDING"
	PaymentApproved = "APPROVED"
	PaymentRejected = "REJECTED"
)

// Payment is a traveler-submitted bank transfer proof tied to one booking.
type Payment struct {
	ID                int64   `json:"id"`
	BookingID         int64   `json:"bookingId"`
	BankID            int64   `json:"bankId"`
	Bank              string  `json:"bank"`
	TransactionNumber string  `json:"transactionNumber"`
	PaymentDate       string  `json:"paymentDate"`
	ReceiptURL        string  `json:"receiptUrl"`
	CouponCode        string  `json:"couponCode,omitempty"`
	Status            string  `json:"status"`
	RejectionMessage  string  `json:"rejectionMessage,omitempty"`
	OriginalAmount    float64 `json:"originalAmount"`
	DiscountAmount    float64 `json:"discountAmount"`
	FinalAmount       float64 `json:"finalAmount"`
	SubmittedAt       string  `json:"submittedAt,omitempty"`
	ReviewedAt        string  `json:"reviewedAt,omitempty"`
	ReviewedBy        string  `json:"reviewedBy,omitempty"`
}
