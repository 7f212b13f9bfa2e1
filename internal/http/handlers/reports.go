package handlers

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"travelapi/internal/repositories"
	"travelapi/internal/services"
	"travelapi/internal/utils"

	"github.com/gin-gonic/gin"
)

func reportsService() services.ReportsService {
	return services.ReportsService{ReportRepo: repositories.ReportRepository{}}
}

// GET /api/reports/summary (staff)
func GetReportSummary(c *gin.Context) {
	s, err := reportsService().Summary()
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, s)
}

func paymentReportFilter(c *gin.Context) repositories.PaymentReportFilter {
	return repositories.PaymentReportFilter{
		Status:    strings.ToUpper(strings.TrimSpace(c.Query("status"))),
		StartDate: strings.TrimSpace(c.Query("startDate")),
		EndDate:   strings.TrimSpace(c.Query("endDate")),
	}
}

// GET /api/reports/payments?status=&startDate=&endDate= (staff)
func GetPaymentReport(c *gin.Context) {
	rows, err := reportsService().PaymentRows(paymentReportFilter(c))
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, rows)
}

// GET /api/reports/payments/export (staff)
// Same filter as the JSON report, rendered as a CSV attachment.
func ExportPaymentReport(c *gin.Context) {
	rows, err := reportsService().PaymentRows(paymentReportFilter(c))
	if err != nil {
		RespondDomainError(c, err)
		return
	}

	csv := services.PaymentsCSV(rows)
	filename := fmt.Sprintf("payments-%s.csv", utils.FormatDate(time.Now()))
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(http.StatusOK, "text/csv; charset=utf-8", csv)
}

// GET /api/reports/checkins (staff)
func GetCheckinReport(c *gin.Context) {
	rows, err := reportsService().Checkins()
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, rows)
}

// GET /api/reports/coupons (staff)
func GetCouponReport(c *gin.Context) {
	rows, err := reportsService().CouponUsage()
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, rows)
}

// GET /api/reports/travels/compare (staff)
func GetTravelCompareReport(c *gin.Context) {
	rows, err := reportsService().TravelCompare()
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, rows)
}
