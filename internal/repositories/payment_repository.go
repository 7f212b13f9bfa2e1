package repositories

import (
	"database/sql"
	"errors"
	"strings"

	intconfig "travelapi/internal/config"
	"travelapi/internal/domain"
	"travelapi/internal/domain/models"
)

type PaymentRepository struct {
	DB *sql.DB
}

func (r PaymentRepository) db() *sql.DB {
	if r.DB != nil {
		return r.DB
	}
	return intconfig.DB
}

const paymentSelect = `
	SELECT id,
	       booking_id,
	       bank_id,
	       COALESCE(bank_name, ''),
	       COALESCE(transaction_number, ''),
	       COALESCE(payment_date, ''),
	       COALESCE(receipt, ''),
	       COALESCE(coupon_code, ''),
	       COALESCE(status, ''),
	       COALESCE(rejection_message, ''),
	       COALESCE(original_amount, 0),
	       COALESCE(discount_amount, 0),
	       COALESCE(final_amount, 0),
	       COALESCE(DATE_FORMAT(submitted_at, '%Y-%m-%d %H:%i:%s'), ''),
	       COALESCE(DATE_FORMAT(reviewed_at, '%Y-%m-%d %H:%i:%s'), ''),
	       COALESCE(reviewed_by, '')
	FROM payments
`

func scanPayment(s interface{ Scan(...any) error }) (models.Payment, error) {
	var p models.Payment
	err := s.Scan(
		&p.ID,
		&p.BookingID,
		&p.BankID,
		&p.Bank,
		&p.TransactionNumber,
		&p.PaymentDate,
		&p.ReceiptURL,
		&p.CouponCode,
		&p.Status,
		&p.RejectionMessage,
		&p.OriginalAmount,
		&p.DiscountAmount,
		&p.FinalAmount,
		&p.SubmittedAt,
		&p.ReviewedAt,
		&p.ReviewedBy,
	)
	return p, err
}

func (r PaymentRepository) GetByID(id int64) (models.Payment, error) {
	if id <= 0 {
		return models.Payment{}, domain.ValidationError{Field: "id", Msg: "invalid id"}
	}
	p, err := scanPayment(r.db().QueryRow(paymentSelect+` WHERE id=? LIMIT 1`, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Payment{}, domain.NotFoundError{Resource: "payment"}
		}
		return models.Payment{}, domain.InternalError{Err: err}
	}
	return p, nil
}

// GetByBookingID returns nil (not an error) when the booking has no payment.
func (r PaymentRepository) GetByBookingID(bookingID int64) (*models.Payment, error) {
	p, err := scanPayment(r.db().QueryRow(paymentSelect+` WHERE booking_id=? LIMIT 1`, bookingID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, domain.InternalError{Err: err}
	}
	return &p, nil
}

func (r PaymentRepository) Create(p models.Payment) (int64, error) {
	res, err := r.db().Exec(`
		INSERT INTO payments
			(booking_id, bank_id, bank_name, transaction_number, payment_date, receipt,
			 coupon_code, status, original_amount, discount_amount, final_amount)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		p.BookingID, p.BankID, p.Bank, p.TransactionNumber, p.PaymentDate, p.ReceiptURL,
		nullIfEmptyStr(p.CouponCode), p.Status, p.OriginalAmount, p.DiscountAmount, p.FinalAmount,
	)
	if err != nil {
		return 0, domain.InternalError{Err: err}
	}
	id, _ := res.LastInsertId()
	return id, nil
}

// Resubmit overwrites a rejected payment in place and resets it to PENDING,
// clearing the prior review fields.
func (r PaymentRepository) Resubmit(id int64, p models.Payment) error {
	res, err := r.db().Exec(`
		UPDATE payments
		SET bank_id=?, bank_name=?, transaction_number=?, payment_date=?, receipt=?,
		    coupon_code=?, status=?, rejection_message=NULL,
		    original_amount=?, discount_amount=?, final_amount=?,
		    submitted_at=NOW(), reviewed_at=NULL, reviewed_by=NULL
		WHERE id=?`,
		p.BankID, p.Bank, p.TransactionNumber, p.PaymentDate, p.ReceiptURL,
		nullIfEmptyStr(p.CouponCode), models.PaymentPending,
		p.OriginalAmount, p.DiscountAmount, p.FinalAmount,
		id,
	)
	if err != nil {
		return domain.InternalError{Err: err}
	}
	if affected, _ := res.RowsAffected(); affected == 0 {
		return domain.NotFoundError{Resource: "payment"}
	}
	return nil
}

// SetStatus transitions a PENDING payment; the WHERE guard keeps concurrent
// reviews from double-applying.
func (r PaymentRepository) SetStatus(id int64, status, message, reviewer string) (bool, error) {
	res, err := r.db().Exec(`
		UPDATE payments
		SET status=?, rejection_message=?, reviewed_at=NOW(), reviewed_by=?
		WHERE id=? AND status=?`,
		status, nullIfEmptyStr(message), reviewer, id, models.PaymentPending,
	)
	if err != nil {
		return false, domain.InternalError{Err: err}
	}
	affected, _ := res.RowsAffected()
	return affected > 0, nil
}

// AdminPaymentRow carries the extra columns the payments dashboard shows.
type AdminPaymentRow struct {
	models.Payment
	TravelerName string `json:"travelerName"`
	TravelTitle  string `json:"travelTitle"`
}

func (r PaymentRepository) ListAdmin(status string, page, limit int) ([]AdminPaymentRow, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 50
	}
	if limit > 200 {
		limit = 200
	}

	query := `
		SELECT p.id, p.booking_id, p.bank_id,
		       COALESCE(p.bank_name,''), COALESCE(p.transaction_number,''),
		       COALESCE(p.payment_date,''), COALESCE(p.coupon_code,''),
		       COALESCE(p.status,''), COALESCE(p.rejection_message,''),
		       COALESCE(p.original_amount,0), COALESCE(p.discount_amount,0), COALESCE(p.final_amount,0),
		       COALESCE(DATE_FORMAT(p.submitted_at, '%Y-%m-%d %H:%i:%s'), ''),
		       COALESCE(u.name,''),
		       COALESCE(t.title,'')
		FROM payments p
		LEFT JOIN bookings b ON b.id = p.booking_id
		LEFT JOIN users u ON u.id = b.user_id
		LEFT JOIN travels t ON t.id = b.travel_id
	`
	args := []any{}
	if s := strings.TrimSpace(status); s != "" {
		query += " WHERE p.status = ? "
		args = append(args, s)
	}
	query += " ORDER BY p.id DESC LIMIT ? OFFSET ?"
	args = append(args, limit, (page-1)*limit)

	rows, err := r.db().Query(query, args...)
	if err != nil {
		return nil, domain.InternalError{Err: err}
	}
	defer rows.Close()

	out := []AdminPaymentRow{}
	for rows.Next() {
		var row AdminPaymentRow
		if err := rows.Scan(
			&row.ID, &row.BookingID, &row.BankID,
			&row.Bank, &row.TransactionNumber,
			&row.PaymentDate, &row.CouponCode,
			&row.Status, &row.RejectionMessage,
			&row.OriginalAmount, &row.DiscountAmount, &row.FinalAmount,
			&row.SubmittedAt,
			&row.TravelerName,
			&row.TravelTitle,
		); err != nil {
			return nil, domain.InternalError{Err: err}
		}
		out = append(out, row)
	}
	return out, rows.Err()
}

func nullIfEmptyStr(s string) any {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	return s
}
