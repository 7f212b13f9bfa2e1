package services

import (
	"strconv"

	"travelapi/internal/repositories"
	"travelapi/internal/utils"
)

type ReportsService struct {
	ReportRepo repositories.ReportRepository
}

func (s ReportsService) Summary() (repositories.Summary, error) {
	sum, err := s.ReportRepo.Summary()
	if err != nil {
		return repositories.Summary{}, err
	}
	sum.RevenueDisplay = utils.FormatUSD(sum.Revenue)
	return sum, nil
}

func (s ReportsService) PaymentRows(f repositories.PaymentReportFilter) ([]repositories.PaymentReportRow, error) {
	return s.ReportRepo.PaymentRows(f)
}

func (s ReportsService) Checkins() ([]repositories.CheckinRow, error) {
	return s.ReportRepo.CheckinRows()
}

func (s ReportsService) CouponUsage() ([]repositories.CouponUsageRow, error) {
	return s.ReportRepo.CouponUsage()
}

func (s ReportsService) TravelCompare() ([]repositories.TravelCompareRow, error) {
	return s.ReportRepo.TravelCompare()
}

var paymentsCSVHeader = []string{
	"id", "booking_id", "traveler", "travel", "bank", "status",
	"coupon", "original_amount", "discount_amount", "final_amount", "submitted_at",
}

// PaymentsCSV renders the payment report as the dashboards' export format:
// header plus one line per row, every field quoted.
func PaymentsCSV(rows []repositories.PaymentReportRow) []byte {
	records := make([][]string, 0, len(rows))
	for _, r := range rows {
		records = append(records, []string{
			strconv.FormatInt(r.ID, 10),
			strconv.FormatInt(r.BookingID, 10),
			r.TravelerName,
			r.TravelTitle,
			r.Bank,
			r.Status,
			r.CouponCode,
			utils.FormatMoney(r.OriginalAmount),
			utils.FormatMoney(r.DiscountAmount),
			utils.FormatMoney(r.FinalAmount),
			r.SubmittedAt,
		})
	}
	return utils.BuildCSV(paymentsCSVHeader, records)
}
