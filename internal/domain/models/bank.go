package models

const (
	BankActive   = "ACTIVE"
	BankInactive = "INACTIVE"
)

// Bank is one transfer destination shown on the payment form.
type Bank struct {
	ID            int64  `json:"id"`
	Name          string `json:"name"`
	LogoURL       string `json:"logoUrl,omitempty"`
	AccountName   string `json:"accountName"`
	AccountNumber string `json:"accountNumber"`
	Status        string `json:"status"`
}
