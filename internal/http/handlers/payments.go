package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"travelapi/internal/domain/models"
	"travelapi/internal/http/middleware"
	"travelapi/internal/repositories"
	"travelapi/internal/services"

	"github.com/gin-gonic/gin"
)

func paymentService(c *gin.Context) services.PaymentService {
	reqID := middleware.GetRequestID(c)
	return services.PaymentService{
		PaymentRepo: repositories.PaymentRepository{},
		BookingRepo: repositories.BookingRepository{},
		BankRepo:    repositories.BankRepository{},
		CouponSvc: services.CouponService{
			CouponRepo: repositories.CouponRepository{},
			RequestID:  reqID,
		},
		TicketSvc: services.TicketService{
			TicketRepo:  repositories.TicketRepository{},
			BookingRepo: repositories.BookingRepository{},
			BaseURL:     BaseURL(),
			RequestID:   reqID,
		},
		RequestID: reqID,
	}
}

// POST /api/payments
func SubmitPayment(c *gin.Context) {
	userID := middleware.GetUserID(c)
	if userID <= 0 {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "login required"})
		return
	}

	var in services.SubmitPaymentInput
	if !BindJSONOrError(c, &in) {
		return
	}

	p, err := paymentService(c).Submit(userID, in)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusCreated, p)
}

// GET /api/payments?status=&page=&limit= (staff)
func GetPayments(c *gin.Context) {
	status := strings.ToUpper(strings.TrimSpace(c.Query("status")))
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))

	repo := repositories.PaymentRepository{}
	list, err := repo.ListAdmin(status, page, limit)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

type reviewPaymentRequest struct {
	Status  string `json:"status" binding:"required"`
	Message string `json:"message"`
}

// PATCH /api/payments/:id/status (staff)
// Approval issues tickets before the status flips; rejection requires a
// message the traveler sees on the payment screen.
func ReviewPayment(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payment id"})
		return
	}

	var req reviewPaymentRequest
	if !BindJSONOrError(c, &req) {
		return
	}

	status := strings.ToUpper(strings.TrimSpace(req.Status))
	p, err := paymentService(c).Review(id, status, strings.TrimSpace(req.Message), middleware.GetUserName(c))
	if err != nil {
		RespondDomainError(c, err)
		return
	}

	msg := "payment rejected"
	if p.Status == models.PaymentApproved {
		msg = "payment approved, tickets issued"
	}
	c.JSON(http.StatusOK, gin.H{"message": msg, "payment": p})
}
