package handlers

import (
	"net/http"
	"strconv"
	"strings"

	intconfig "travelapi/internal/config"
	"travelapi/internal/domain/models"
	"travelapi/internal/http/middleware"
	"travelapi/internal/repositories"

	"github.com/gin-gonic/gin"
)

// GET /api/banks?all=1
// Travelers only see ACTIVE banks; all=1 returns the full list for staff
// and is ignored for everyone else.
func GetBanks(c *gin.Context) {
	includeInactive := c.Query("all") == "1" && models.IsStaff(middleware.GetUserRole(c))

	repo := repositories.BankRepository{}
	list, err := repo.List(includeInactive)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

type bankRequest struct {
	Name          string `json:"name" binding:"required"`
	LogoURL       string `json:"logoUrl"`
	AccountName   string `json:"accountName" binding:"required"`
	AccountNumber string `json:"accountNumber" binding:"required"`
	Status        string `json:"status"`
}

func (r *bankRequest) status() (string, bool) {
	s := strings.ToUpper(strings.TrimSpace(r.Status))
	if s == "" {
		return models.BankActive, true
	}
	if s != models.BankActive && s != models.BankInactive {
		return "", false
	}
	return s, true
}

// POST /api/banks
func CreateBank(c *gin.Context) {
	var req bankRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload", "detail": err.Error()})
		return
	}
	status, ok := req.status()
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": errBadStatus.Error()})
		return
	}

	res, err := intconfig.DB.Exec(`
		INSERT INTO banks (name, logo_url, account_name, account_number, status)
		VALUES (?, ?, ?, ?, ?)
	`, strings.TrimSpace(req.Name), req.LogoURL, strings.TrimSpace(req.AccountName), strings.TrimSpace(req.AccountNumber), status)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "bank insert failed: " + err.Error()})
		return
	}

	id, _ := res.LastInsertId()
	c.JSON(http.StatusCreated, gin.H{"message": "bank created", "id": id})
}

// PATCH /api/banks/:id
func UpdateBank(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid bank id"})
		return
	}

	var req bankRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload", "detail": err.Error()})
		return
	}
	status, ok := req.status()
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": errBadStatus.Error()})
		return
	}

	res, err := intconfig.DB.Exec(`
		UPDATE banks SET name=?, logo_url=?, account_name=?, account_number=?, status=? WHERE id=?
	`, strings.TrimSpace(req.Name), req.LogoURL, strings.TrimSpace(req.AccountName), strings.TrimSpace(req.AccountNumber), status, id)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "bank update failed: " + err.Error()})
		return
	}
	if n, _ := res.RowsAffected(); n == 0 {
		var exists int
		if err := intconfig.DB.QueryRow(`SELECT COUNT(*) FROM banks WHERE id=?`, id).Scan(&exists); err == nil && exists == 0 {
			c.JSON(http.StatusNotFound, gin.H{"error": "bank not found"})
			return
		}
	}

	c.JSON(http.StatusOK, gin.H{"message": "bank updated"})
}

// PATCH /api/banks/:id/toggle
func ToggleBank(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid bank id"})
		return
	}

	repo := repositories.BankRepository{}
	status, err := repo.Toggle(id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "bank status updated", "status": status})
}

// DELETE /api/banks/:id is refused while an approved payment references it.
func DeleteBank(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid bank id"})
		return
	}

	var inUse int
	if err := intconfig.DB.QueryRow(`
		SELECT COUNT(*) FROM payments WHERE bank_id=? AND status='APPROVED'
	`, id).Scan(&inUse); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "bank delete check failed: " + err.Error()})
		return
	}
	if inUse > 0 {
		c.JSON(http.StatusConflict, gin.H{"error": "bank has approved payments, set it INACTIVE instead"})
		return
	}

	res, err := intconfig.DB.Exec(`DELETE FROM banks WHERE id=?`, id)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "bank delete failed: " + err.Error()})
		return
	}
	if n, _ := res.RowsAffected(); n == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "bank not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "bank deleted"})
}
