package api

import (
	"log"
	stdhttp "net/http"

	intconfig "travelapi/internal/config"
	"travelapi/internal/domain/models"
	h "travelapi/internal/http/handlers"
	"travelapi/internal/http/middleware"

	"github.com/gin-gonic/gin"
)

func NewRouter(env intconfig.Env) *gin.Engine {
	r := gin.New()
	r.Use(middleware.RequestID(), middleware.Logger(), gin.Recovery(), middleware.CORS(env.CORSOrigins))

	if err := r.SetTrustedProxies(nil); err != nil {
		log.Printf("warning: failed to set trusted proxies: %v", err)
	}

	r.OPTIONS("/*path", func(c *gin.Context) { c.AbortWithStatus(stdhttp.StatusNoContent) })

	r.NoRoute(func(c *gin.Context) {
		c.JSON(stdhttp.StatusNotFound, gin.H{
			"error":  "route not found",
			"path":   c.Request.URL.Path,
			"method": c.Request.Method,
		})
	})

	staff := middleware.RequireRoles(models.RoleManager, models.RoleSupervisor)

	api := r.Group("/api")
	{
		api.GET("/health", h.Health)
		api.GET("/db-check", h.DBCheck)

		// Auth
		auth := api.Group("/auth")
		auth.POST("/login", h.Login)
		auth.POST("/register", h.Register)

		// Travels: catalog is public, management is staff-only
		travels := api.Group("/travels")
		travels.GET("", h.GetTravels)
		travels.GET("/popular", h.GetPopularDestinations)
		travels.GET("/:id", h.GetTravelByID)
		travels.POST("", middleware.Auth(), staff, h.CreateTravel)
		travels.PUT("/:id", middleware.Auth(), staff, h.UpdateTravel)
		travels.DELETE("/:id", middleware.Auth(), staff, h.DeleteTravel)

		// Banks: the payment form needs the active list, so reads stay
		// behind login only
		banks := api.Group("/banks", middleware.Auth())
		banks.GET("", h.GetBanks)
		banks.POST("", staff, h.CreateBank)
		banks.PATCH("/:id", staff, h.UpdateBank)
		banks.PATCH("/:id/toggle", staff, h.ToggleBank)
		banks.DELETE("/:id", staff, h.DeleteBank)

		// Coupons
		coupons := api.Group("/coupons", middleware.Auth())
		coupons.POST("/validate", h.ValidateCoupon)
		coupons.GET("", staff, h.GetCoupons)
		coupons.POST("", staff, h.CreateCoupon)
		coupons.PATCH("/:id", staff, h.UpdateCoupon)
		coupons.PATCH("/:id/toggle", staff, h.ToggleCoupon)
		coupons.DELETE("/:id", staff, h.DeleteCoupon)

		// Bookings
		bookings := api.Group("/bookings", middleware.Auth())
		bookings.GET("/my-bookings", h.GetMyBookings)
		bookings.GET("", staff, h.GetBookings)
		bookings.GET("/:id", h.GetBookingByID)
		bookings.GET("/:id/tickets", h.GetBookingTickets)
		bookings.POST("", h.CreateBooking)
		bookings.DELETE("/:id", middleware.RequireRoles(models.RoleSupervisor), h.DeleteBooking)

		// Payments
		payments := api.Group("/payments", middleware.Auth())
		payments.POST("", h.SubmitPayment)
		payments.GET("", staff, h.GetPayments)
		payments.PATCH("/:id/status", staff, h.ReviewPayment)

		// Tickets
		tickets := api.Group("/tickets", middleware.Auth())
		tickets.POST("/scan", staff, h.ScanTicket)
		tickets.GET("/:id/qr", h.GetTicketQR)
		tickets.GET("/:id/e-ticket", h.GetETicket)

		// Witnesses
		witnesses := api.Group("/witnesses", middleware.Auth(), staff)
		witnesses.GET("", h.GetWitnesses)
		witnesses.POST("", h.CreateWitness)
		witnesses.PUT("/:id", h.UpdateWitness)
		witnesses.PATCH("/:id", h.UpdateWitness)
		witnesses.DELETE("/:id", h.DeleteWitness)

		// Users
		users := api.Group("/users", middleware.Auth(), staff)
		users.GET("", h.GetUsers)
		users.POST("", h.CreateUser)

		// Reports
		reports := api.Group("/reports", middleware.Auth(), staff)
		reports.GET("/summary", h.GetReportSummary)
		reports.GET("/payments", h.GetPaymentReport)
		reports.GET("/payments/export", h.ExportPaymentReport)
		reports.GET("/checkins", h.GetCheckinReport)
		reports.GET("/coupons", h.GetCouponReport)
		reports.GET("/travels/compare", h.GetTravelCompareReport)
	}

	return r
}
