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
	qrcode "github.com/skip2/go-qrcode"
)

func ticketService(c *gin.Context) services.TicketService {
	return services.TicketService{
		TicketRepo:  repositories.TicketRepository{},
		BookingRepo: repositories.BookingRepository{},
		BaseURL:     BaseURL(),
		RequestID:   middleware.GetRequestID(c),
	}
}

type scanRequest struct {
	Code string `json:"code" binding:"required"`
}

// POST /api/tickets/scan (staff)
// The first scan checks the ticket in; every later scan of the same code
// reports already_scanned with the original check-in details.
func ScanTicket(c *gin.Context) {
	var req scanRequest
	if !BindJSONOrError(c, &req) {
		return
	}

	res, err := ticketService(c).Scan(strings.TrimSpace(req.Code), middleware.GetUserName(c))
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

// ticketForViewer loads a ticket and enforces that the caller owns the
// booking or is staff.
func ticketForViewer(c *gin.Context) (models.Ticket, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid ticket id"})
		return models.Ticket{}, false
	}

	ticketRepo := repositories.TicketRepository{}
	t, err := ticketRepo.GetByID(id)
	if err != nil {
		RespondDomainError(c, err)
		return models.Ticket{}, false
	}

	if !models.IsStaff(middleware.GetUserRole(c)) {
		bookingRepo := repositories.BookingRepository{}
		row, err := bookingRepo.GetByID(t.BookingID)
		if err != nil {
			RespondDomainError(c, err)
			return models.Ticket{}, false
		}
		if row.UserID != middleware.GetUserID(c) {
			c.JSON(http.StatusForbidden, gin.H{"error": "ticket belongs to another traveler"})
			return models.Ticket{}, false
		}
	}
	return t, true
}

// GET /api/tickets/:id/qr renders the ticket's QR token as a PNG image.
func GetTicketQR(c *gin.Context) {
	t, ok := ticketForViewer(c)
	if !ok {
		return
	}

	png, err := qrcode.Encode(t.QRToken, qrcode.Medium, 256)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "qr generation failed"})
		return
	}
	c.Data(http.StatusOK, "image/png", png)
}

// GET /api/tickets/:id/e-ticket returns a printable PDF with the embedded QR.
func GetETicket(c *gin.Context) {
	t, ok := ticketForViewer(c)
	if !ok {
		return
	}

	svc := services.DocsService{
		TicketRepo:  repositories.TicketRepository{},
		BookingRepo: repositories.BookingRepository{},
		RequestID:   middleware.GetRequestID(c),
	}
	pdf, filename, err := svc.GenerateETicket(t.ID)
	if err != nil {
		RespondDomainError(c, err)
		return
	}

	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(http.StatusOK, "application/pdf", pdf)
}
