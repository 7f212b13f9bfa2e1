package services

import (
	"testing"
	"time"

	"travelapi/internal/domain"
	"travelapi/internal/domain/models"
	"travelapi/internal/repositories"

	"github.com/DATA-DOG/go-sqlmock"
)

func couponColumns() []string {
	return []string{
		"id", "code", "description", "discount_type", "discount_value",
		"min_amount", "max_uses", "used_count", "valid_from", "valid_until", "status",
	}
}

func fixedClock() time.Time {
	return time.Date(2026, 5, 10, 12, 0, 0, 0, time.UTC)
}

func TestCouponValidatePercentDiscount(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery("FROM coupons").WithArgs("SAVE20").
		WillReturnRows(sqlmock.NewRows(couponColumns()).
			AddRow(1, "SAVE20", "", models.DiscountPercent, 20.0, 0.0, 0, 0, "2026-01-01", "2026-12-31", models.CouponActive))

	svc := CouponService{CouponRepo: repositories.CouponRepository{DB: db}, Now: fixedClock}

	quote, err := svc.Validate("save20", 150, 2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if quote.DiscountAmount != 60 {
		t.Fatalf("expected discount 60, got %v", quote.DiscountAmount)
	}
	if quote.FinalAmount != 240 {
		t.Fatalf("expected final 240, got %v", quote.FinalAmount)
	}
	if quote.Code != "SAVE20" {
		t.Fatalf("code should be normalized, got %q", quote.Code)
	}
}

func TestCouponValidateUnknownCode(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery("FROM coupons").WithArgs("NOPE").
		WillReturnRows(sqlmock.NewRows(couponColumns()))

	svc := CouponService{CouponRepo: repositories.CouponRepository{DB: db}, Now: fixedClock}

	if _, err := svc.Validate("NOPE", 100, 1); !domain.IsValidation(err) {
		t.Fatalf("unknown code must be a validation error, got %v", err)
	}
}

func TestCouponValidateExpired(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery("FROM coupons").WithArgs("OLD").
		WillReturnRows(sqlmock.NewRows(couponColumns()).
			AddRow(2, "OLD", "", models.DiscountFixed, 10.0, 0.0, 0, 0, "2025-01-01", "2025-12-31", models.CouponActive))

	svc := CouponService{CouponRepo: repositories.CouponRepository{DB: db}, Now: fixedClock}

	if _, err := svc.Validate("OLD", 100, 1); !domain.IsValidation(err) {
		t.Fatalf("expired coupon must fail validation, got %v", err)
	}
}

func TestCouponValidUntilCoversWholeDay(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	// valid_until equals the scan day; a noon clock must still accept it
	mock.ExpectQuery("FROM coupons").WithArgs("TODAY").
		WillReturnRows(sqlmock.NewRows(couponColumns()).
			AddRow(3, "TODAY", "", models.DiscountFixed, 5.0, 0.0, 0, 0, "", "2026-05-10", models.CouponActive))

	svc := CouponService{CouponRepo: repositories.CouponRepository{DB: db}, Now: fixedClock}

	if _, err := svc.Validate("TODAY", 100, 1); err != nil {
		t.Fatalf("coupon valid through today must pass, got %v", err)
	}
}

func TestCouponValidateBelowMinimum(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery("FROM coupons").WithArgs("BIG").
		WillReturnRows(sqlmock.NewRows(couponColumns()).
			AddRow(4, "BIG", "", models.DiscountPercent, 10.0, 500.0, 0, 0, "", "", models.CouponActive))

	svc := CouponService{CouponRepo: repositories.CouponRepository{DB: db}, Now: fixedClock}

	if _, err := svc.Validate("BIG", 100, 2); !domain.IsValidation(err) {
		t.Fatalf("base below minimum must fail, got %v", err)
	}
}

func TestCouponValidateFullyRedeemed(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery("FROM coupons").WithArgs("GONE").
		WillReturnRows(sqlmock.NewRows(couponColumns()).
			AddRow(5, "GONE", "", models.DiscountPercent, 10.0, 0.0, 50, 50, "", "", models.CouponActive))

	svc := CouponService{CouponRepo: repositories.CouponRepository{DB: db}, Now: fixedClock}

	if _, err := svc.Validate("GONE", 100, 1); !domain.IsValidation(err) {
		t.Fatalf("fully redeemed coupon must fail, got %v", err)
	}
}

func TestCouponDiscountClampedToBase(t *testing.T) {
	c := models.Coupon{DiscountType: models.DiscountFixed, DiscountValue: 500}
	if got := couponDiscount(c, 300); got != 300 {
		t.Fatalf("fixed discount must clamp to the base amount, got %v", got)
	}
	c = models.Coupon{DiscountType: models.DiscountPercent, DiscountValue: 33}
	if got := couponDiscount(c, 100); got != 33 {
		t.Fatalf("expected 33, got %v", got)
	}
}
