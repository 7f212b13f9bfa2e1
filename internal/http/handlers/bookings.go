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

func bookingService(c *gin.Context) services.BookingService {
	return services.BookingService{
		BookingRepo: repositories.BookingRepository{},
		PaymentRepo: repositories.PaymentRepository{},
		TicketRepo:  repositories.TicketRepository{},
		TravelRepo:  repositories.TravelRepository{},
		BaseURL:     BaseURL(),
		RequestID:   middleware.GetRequestID(c),
	}
}

// GET /api/bookings/my
func GetMyBookings(c *gin.Context) {
	userID := middleware.GetUserID(c)
	if userID <= 0 {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "login required"})
		return
	}

	list, err := bookingService(c).ListForUser(userID)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

// GET /api/bookings?q=&status=&page=&limit= (staff)
func GetBookings(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	f := repositories.ListFilter{
		Q:      strings.TrimSpace(c.Query("q")),
		Status: strings.TrimSpace(c.Query("status")),
		Page:   page,
		Limit:  limit,
	}

	list, err := bookingService(c).List(f)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

// GET /api/bookings/:id
func GetBookingByID(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid booking id"})
		return
	}

	b, err := bookingService(c).GetForUser(id, middleware.GetUserID(c), middleware.GetUserRole(c))
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, b)
}

type createBookingRequest struct {
	TravelID     int64                `json:"travelId" binding:"required"`
	Participants []models.Participant `json:"participants"`
}

// POST /api/bookings
func CreateBooking(c *gin.Context) {
	userID := middleware.GetUserID(c)
	if userID <= 0 {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "login required"})
		return
	}

	var req createBookingRequest
	if !BindJSONOrError(c, &req) {
		return
	}

	b, err := bookingService(c).Create(userID, req.TravelID, req.Participants)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusCreated, b)
}

// DELETE /api/bookings/:id (supervisor)
func DeleteBooking(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid booking id"})
		return
	}

	if err := bookingService(c).Delete(id); err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "booking deleted"})
}

// GET /api/bookings/:id/tickets
func GetBookingTickets(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid booking id"})
		return
	}

	b, err := bookingService(c).GetForUser(id, middleware.GetUserID(c), middleware.GetUserRole(c))
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	if b.Status != models.PaymentApproved {
		c.JSON(http.StatusConflict, gin.H{"error": "tickets are issued after payment approval"})
		return
	}
	c.JSON(http.StatusOK, b.Tickets)
}
