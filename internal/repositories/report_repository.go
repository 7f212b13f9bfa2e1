package repositories

import (
	"database/sql"
	"strings"

	intconfig "travelapi/internal/config"
	"travelapi/internal/domain"
)

type ReportRepository struct {
	DB *sql.DB
}

func (r ReportRepository) db() *sql.DB {
	if r.DB != nil {
		return r.DB
	}
	return intconfig.DB
}

// Summary aggregates the dashboard headline numbers.
type Summary struct {
	TotalBookings    int     `json:"totalBookings"`
	PendingPayments  int     `json:"pendingPayments"`
	ApprovedPayments int     `json:"approvedPayments"`
	RejectedPayments int     `json:"rejectedPayments"`
	Revenue          float64 `json:"revenue"`
	RevenueDisplay   string  `json:"revenueDisplay"`
	CheckedIn        int     `json:"checkedIn"`
	TicketsIssued    int     `json:"ticketsIssued"`
	ActiveTravels    int     `json:"activeTravels"`
}

func (r ReportRepository) Summary() (Summary, error) {
	db := r.db()
	var s Summary

	steps := []struct {
		query string
		dest  []any
	}{
		{`SELECT COUNT(*) FROM bookings`, []any{&s.TotalBookings}},
		{`SELECT
			COALESCE(SUM(status='PENDING'),0),
			COALESCE(SUM(status='APPROVED'),0),
			COALESCE(SUM(status='REJECTED'),0),
			COALESCE(SUM(CASE WHEN status='APPROVED' THEN final_amount ELSE 0 END),0)
		  FROM payments`, []any{&s.PendingPayments, &s.ApprovedPayments, &s.RejectedPayments, &s.Revenue}},
		{`SELECT COUNT(*), COALESCE(SUM(checked_in_at IS NOT NULL),0) FROM tickets`, []any{&s.TicketsIssued, &s.CheckedIn}},
		{`SELECT COUNT(*) FROM travels WHERE status='ACTIVE'`, []any{&s.ActiveTravels}},
	}
	for _, step := range steps {
		if err := db.QueryRow(step.query).Scan(step.dest...); err != nil {
			return Summary{}, domain.InternalError{Err: err}
		}
	}
	return s, nil
}

// PaymentReportRow is one line of the payments report and its CSV export.
type PaymentReportRow struct {
	ID             int64   `json:"id"`
	BookingID      int64   `json:"bookingId"`
	TravelerName   string  `json:"travelerName"`
	TravelTitle    string  `json:"travelTitle"`
	Bank           string  `json:"bank"`
	Status         string  `json:"status"`
	CouponCode     string  `json:"couponCode"`
	OriginalAmount float64 `json:"originalAmount"`
	DiscountAmount float64 `json:"discountAmount"`
	FinalAmount    float64 `json:"finalAmount"`
	SubmittedAt    string  `json:"submittedAt"`
}

type PaymentReportFilter struct {
	Status    string
	StartDate string
	EndDate   string
}

func (r ReportRepository) PaymentRows(f PaymentReportFilter) ([]PaymentReportRow, error) {
	query := `
		SELECT p.id, p.booking_id,
		       COALESCE(u.name,''), COALESCE(t.title,''),
		       COALESCE(p.bank_name,''), COALESCE(p.status,''), COALESCE(p.coupon_code,''),
		       COALESCE(p.original_amount,0), COALESCE(p.discount_amount,0), COALESCE(p.final_amount,0),
		       COALESCE(DATE_FORMAT(p.submitted_at, '%Y-%m-%d %H:%i:%s'), '')
		FROM payments p
		LEFT JOIN bookings b ON b.id = p.booking_id
		LEFT JOIN users u ON u.id = b.user_id
		LEFT JOIN travels t ON t.id = b.travel_id
	`
	where := []string{}
	args := []any{}
	if s := strings.TrimSpace(f.Status); s != "" {
		where = append(where, `p.status=?`)
		args = append(args, s)
	}
	if s := strings.TrimSpace(f.StartDate); s != "" {
		where = append(where, `DATE(p.submitted_at) >= ?`)
		args = append(args, s)
	}
	if s := strings.TrimSpace(f.EndDate); s != "" {
		where = append(where, `DATE(p.submitted_at) <= ?`)
		args = append(args, s)
	}
	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}
	query += " ORDER BY p.id DESC"

	rows, err := r.db().Query(query, args...)
	if err != nil {
		return nil, domain.InternalError{Err: err}
	}
	defer rows.Close()

	out := []PaymentReportRow{}
	for rows.Next() {
		var row PaymentReportRow
		if err := rows.Scan(
			&row.ID, &row.BookingID,
			&row.TravelerName, &row.TravelTitle,
			&row.Bank, &row.Status, &row.CouponCode,
			&row.OriginalAmount, &row.DiscountAmount, &row.FinalAmount,
			&row.SubmittedAt,
		); err != nil {
			return nil, domain.InternalError{Err: err}
		}
		out = append(out, row)
	}
	return out, rows.Err()
}

// CheckinRow is per-travel check-in progress.
type CheckinRow struct {
	TravelID    int64  `json:"travelId"`
	TravelTitle string `json:"travelTitle"`
	Issued      int    `json:"issued"`
	CheckedIn   int    `json:"checkedIn"`
}

func (r ReportRepository) CheckinRows() ([]CheckinRow, error) {
	rows, err := r.db().Query(`
		SELECT t.id, COALESCE(t.title,''),
		       COUNT(tk.id),
		       COALESCE(SUM(tk.checked_in_at IS NOT NULL),0)
		FROM travels t
		LEFT JOIN bookings b ON b.travel_id = t.id
		LEFT JOIN tickets tk ON tk.booking_id = b.id
		GROUP BY t.id, t.title
		ORDER BY t.id`)
	if err != nil {
		return nil, domain.InternalError{Err: err}
	}
	defer rows.Close()

	out := []CheckinRow{}
	for rows.Next() {
		var row CheckinRow
		if err := rows.Scan(&row.TravelID, &row.TravelTitle, &row.Issued, &row.CheckedIn); err != nil {
			return nil, domain.InternalError{Err: err}
		}
		out = append(out, row)
	}
	return out, rows.Err()
}

// CouponUsageRow is per-coupon redemption volume on approved payments.
type CouponUsageRow struct {
	Code          string  `json:"code"`
	UsedCount     int     `json:"usedCount"`
	TotalDiscount float64 `json:"totalDiscount"`
}

func (r ReportRepository) CouponUsage() ([]CouponUsageRow, error) {
	rows, err := r.db().Query(`
		SELECT c.code,
		       COALESCE(c.used_count,0),
		       COALESCE(SUM(CASE WHEN p.status='APPROVED' THEN p.discount_amount ELSE 0 END),0)
		FROM coupons c
		LEFT JOIN payments p ON p.coupon_code = c.code
		GROUP BY c.code, c.used_count
		ORDER BY c.code`)
	if err != nil {
		return nil, domain.InternalError{Err: err}
	}
	defer rows.Close()

	out := []CouponUsageRow{}
	for rows.Next() {
		var row CouponUsageRow
		if err := rows.Scan(&row.Code, &row.UsedCount, &row.TotalDiscount); err != nil {
			return nil, domain.InternalError{Err: err}
		}
		out = append(out, row)
	}
	return out, rows.Err()
}

// TravelCompareRow puts travels side by side for the comparison chart.
type TravelCompareRow struct {
	TravelID     int64   `json:"travelId"`
	Title        string  `json:"title"`
	Bookings     int     `json:"bookings"`
	Participants int     `json:"participants"`
	Revenue      float64 `json:"revenue"`
}

func (r ReportRepository) TravelCompare() ([]TravelCompareRow, error) {
	// payments join is 1:1 per booking; participants come from a correlated
	// subquery so they do not fan out the revenue sum.
	rows, err := r.db().Query(`
		SELECT t.id, COALESCE(t.title,''),
		       COUNT(DISTINCT b.id),
		       COALESCE((SELECT COUNT(*)
		                 FROM booking_participants bp
		                 JOIN bookings b2 ON b2.id = bp.booking_id
		                 WHERE b2.travel_id = t.id), 0),
		       COALESCE(SUM(CASE WHEN p.status='APPROVED' THEN p.final_amount ELSE 0 END),0)
		FROM travels t
		LEFT JOIN bookings b ON b.travel_id = t.id
		LEFT JOIN payments p ON p.booking_id = b.id
		GROUP BY t.id, t.title
		ORDER BY t.id`)
	if err != nil {
		return nil, domain.InternalError{Err: err}
	}
	defer rows.Close()

	out := []TravelCompareRow{}
	for rows.Next() {
		var row TravelCompareRow
		if err := rows.Scan(&row.TravelID, &row.Title, &row.Bookings, &row.Participants, &row.Revenue); err != nil {
			return nil, domain.InternalError{Err: err}
		}
		out = append(out, row)
	}
	return out, rows.Err()
}
