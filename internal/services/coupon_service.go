package services

import (
	"time"

	"travelapi/internal/domain"
	"travelapi/internal/domain/models"
	"travelapi/internal/repositories"
	"travelapi/internal/utils"
)

type CouponService struct {
	CouponRepo repositories.CouponRepository
	RequestID  string
	Now        func() time.Time
}

func (s CouponService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

// Validate checks a code against unit price × participants and returns the
// quote. Any failure returns an error and no partial amounts, so callers can
// always fall back to the base amount.
func (s CouponService) Validate(code string, unitPrice float64, participants int) (models.CouponQuote, error) {
	code = utils.NormalizeCode(code)
	if code == "" {
		return models.CouponQuote{}, domain.ValidationError{Field: "code", Msg: "coupon code is required"}
	}
	if unitPrice < 0 {
		return models.CouponQuote{}, domain.ValidationError{Field: "amount", Msg: "amount must not be negative"}
	}

	coupon, err := s.CouponRepo.GetByCode(code)
	if err != nil {
		if domain.IsNotFound(err) {
			return models.CouponQuote{}, domain.ValidationError{Field: "code", Msg: "unknown coupon code"}
		}
		return models.CouponQuote{}, err
	}

	base := utils.RoundMoney(BaseAmount(unitPrice, participants))
	if err := s.checkUsable(coupon, base); err != nil {
		return models.CouponQuote{}, err
	}

	discount := couponDiscount(coupon, base)
	return models.CouponQuote{
		Code:           coupon.Code,
		DiscountAmount: discount,
		FinalAmount:    utils.RoundMoney(base - discount),
	}, nil
}

func (s CouponService) checkUsable(c models.Coupon, base float64) error {
	if c.Status != models.CouponActive {
		return domain.ValidationError{Field: "code", Msg: "coupon is inactive"}
	}

	today := s.now()
	if c.ValidFrom != "" {
		if from, err := utils.ParseDate(c.ValidFrom); err == nil && today.Before(from) {
			return domain.ValidationError{Field: "code", Msg: "coupon is not valid yet"}
		}
	}
	if c.ValidUntil != "" {
		if until, err := utils.ParseDate(c.ValidUntil); err == nil && today.After(until.Add(24*time.Hour-time.Second)) {
			return domain.ValidationError{Field: "code", Msg: "coupon has expired"}
		}
	}

	if c.MinAmount > 0 && base < c.MinAmount {
		return domain.ValidationError{Field: "amount", Msg: "amount below coupon minimum"}
	}
	if c.MaxUses > 0 && c.UsedCount >= c.MaxUses {
		return domain.ValidationError{Field: "code", Msg: "coupon has been fully redeemed"}
	}
	return nil
}

// couponDiscount never exceeds the base amount.
func couponDiscount(c models.Coupon, base float64) float64 {
	var discount float64
	switch c.DiscountType {
	case models.DiscountPercent:
		discount = base * c.DiscountValue / 100
	case models.DiscountFixed:
		discount = c.DiscountValue
	default:
		discount = 0
	}
	if discount > base {
		discount = base
	}
	if discount < 0 {
		discount = 0
	}
	return utils.RoundMoney(discount)
}
