package models

const (
	CouponActive   = "ACTIVE"
	CouponInactive = "INACTIVE"

	DiscountPercent = "PERCENT"
	DiscountFixed   = "FIXED"
)

type Coupon struct {
	ID            int64   `json:"id"`
	Code          string  `json:"code"`
	Description   string  `json:"description,omitempty"`
	DiscountType  string  `json:"discountType"`
	DiscountValue float64 `json:"discountValue"`
	MinAmount     float64 `json:"minAmount"`
	MaxUses       int     `json:"maxUses"`
	UsedCount     int     `json:"usedCount"`
	ValidFrom     string  `json:"validFrom,omitempty"`
	ValidUntil    string  `json:"validUntil,omitempty"`
	Status        string  `json:"status"`
}

// CouponQuote is the transient result of validating a code against an
// amount; it is never persisted.
type CouponQuote struct {
	Code           string  `json:"code"`
	DiscountAmount float64 `json:"discountAmount"`
	FinalAmount    float64 `json:"finalAmount"`
}
