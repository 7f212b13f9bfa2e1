package repositories

import (
	"database/sql"
	"errors"

	intconfig "travelapi/internal/config"
	"travelapi/internal/domain"
	"travelapi/internal/domain/models"
)

type CouponRepository struct {
	DB *sql.DB
}

func (r CouponRepository) db() *sql.DB {
	if r.DB != nil {
		return r.DB
	}
	return intconfig.DB
}

const couponSelect = `
	SELECT id,
	       COALESCE(code, ''),
	       COALESCE(description, ''),
	       COALESCE(discount_type, ''),
	       COALESCE(discount_value, 0),
	       COALESCE(min_amount, 0),
	       COALESCE(max_uses, 0),
	       COALESCE(used_count, 0),
	       COALESCE(DATE_FORMAT(valid_from, '%Y-%m-%d'), ''),
	       COALESCE(DATE_FORMAT(valid_until, '%Y-%m-%d'), ''),
	       COALESCE(status, '')
	FROM coupons
`

func scanCoupon(s interface{ Scan(...any) error }) (models.Coupon, error) {
	var c models.Coupon
	err := s.Scan(
		&c.ID,
		&c.Code,
		&c.Description,
		&c.DiscountType,
		&c.DiscountValue,
		&c.MinAmount,
		&c.MaxUses,
		&c.UsedCount,
		&c.ValidFrom,
		&c.ValidUntil,
		&c.Status,
	)
	return c, err
}

func (r CouponRepository) GetByCode(code string) (models.Coupon, error) {
	c, err := scanCoupon(r.db().QueryRow(couponSelect+` WHERE code=? LIMIT 1`, code))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Coupon{}, domain.NotFoundError{Resource: "coupon"}
		}
		return models.Coupon{}, domain.InternalError{Err: err}
	}
	return c, nil
}

// IncrementUsage bumps used_count once per approved payment.
func (r CouponRepository) IncrementUsage(code string) error {
	_, err := r.db().Exec(`UPDATE coupons SET used_count = used_count + 1 WHERE code=?`, code)
	if err != nil {
		return domain.InternalError{Err: err}
	}
	return nil
}
