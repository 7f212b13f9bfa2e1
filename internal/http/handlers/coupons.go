package handlers

import (
	"database/sql"
	"errors"
	"net/http"
	"strconv"
	"strings"

	intconfig "travelapi/internal/config"
	"travelapi/internal/domain/models"
	"travelapi/internal/http/middleware"
	"travelapi/internal/repositories"
	"travelapi/internal/services"
	"travelapi/internal/utils"

	"github.com/gin-gonic/gin"
	"github.com/go-sql-driver/mysql"
)

// Amount is the per-participant price; the base charged amount is
// amount times participants.
type validateCouponRequest struct {
	Code         string  `json:"code" binding:"required"`
	Amount       float64 `json:"amount" binding:"required"`
	Participants int     `json:"participants"`
}

// POST /api/coupons/validate
// A failed validation returns an error and no quote; the caller falls back
// to the undiscounted amount.
func ValidateCoupon(c *gin.Context) {
	var req validateCouponRequest
	if !BindJSONOrError(c, &req) {
		return
	}

	svc := services.CouponService{
		CouponRepo: repositories.CouponRepository{},
		RequestID:  middleware.GetRequestID(c),
	}
	quote, err := svc.Validate(req.Code, req.Amount, req.Participants)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, quote)
}

const couponListSelect = `
	SELECT id,
	       COALESCE(code, ''),
	       COALESCE(description, ''),
	       COALESCE(discount_type, 'PERCENT'),
	       COALESCE(discount_value, 0),
	       COALESCE(min_amount, 0),
	       COALESCE(max_uses, 0),
	       COALESCE(used_count, 0),
	       COALESCE(DATE_FORMAT(valid_from, '%Y-%m-%d'), ''),
	       COALESCE(DATE_FORMAT(valid_until, '%Y-%m-%d'), ''),
	       COALESCE(status, '')
	FROM coupons
`

// GET /api/coupons
func GetCoupons(c *gin.Context) {
	rows, err := intconfig.DB.Query(couponListSelect + " ORDER BY id DESC")
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "coupon list failed: " + err.Error()})
		return
	}
	defer rows.Close()

	list := []models.Coupon{}
	for rows.Next() {
		var cp models.Coupon
		if err := rows.Scan(&cp.ID, &cp.Code, &cp.Description, &cp.DiscountType, &cp.DiscountValue,
			&cp.MinAmount, &cp.MaxUses, &cp.UsedCount, &cp.ValidFrom, &cp.ValidUntil, &cp.Status); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "coupon scan failed: " + err.Error()})
			return
		}
		list = append(list, cp)
	}
	if err := rows.Err(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "row iteration error: " + err.Error()})
		return
	}

	c.JSON(http.StatusOK, list)
}

type couponRequest struct {
	Code          string  `json:"code" binding:"required"`
	Description   string  `json:"description"`
	DiscountType  string  `json:"discountType" binding:"required"`
	DiscountValue float64 `json:"discountValue" binding:"required"`
	MinAmount     float64 `json:"minAmount"`
	MaxUses       int     `json:"maxUses"`
	ValidFrom     string  `json:"validFrom"`
	ValidUntil    string  `json:"validUntil"`
	Status        string  `json:"status"`
}

func (r *couponRequest) normalize() (code, dtype, status string, err error) {
	code = utils.NormalizeCode(r.Code)
	if code == "" {
		return "", "", "", errEmptyCouponCode
	}
	dtype = strings.ToUpper(strings.TrimSpace(r.DiscountType))
	if dtype != models.DiscountPercent && dtype != models.DiscountFixed {
		return "", "", "", errBadDiscountType
	}
	if r.DiscountValue <= 0 {
		return "", "", "", errBadDiscountValue
	}
	if dtype == models.DiscountPercent && r.DiscountValue > 100 {
		return "", "", "", errBadDiscountValue
	}
	for _, d := range []string{r.ValidFrom, r.ValidUntil} {
		if d == "" {
			continue
		}
		if _, perr := utils.ParseDate(d); perr != nil {
			return "", "", "", perr
		}
	}
	status = strings.ToUpper(strings.TrimSpace(r.Status))
	if status == "" {
		status = models.CouponActive
	}
	if status != models.CouponActive && status != models.CouponInactive {
		return "", "", "", errBadStatus
	}
	return code, dtype, status, nil
}

// POST /api/coupons
func CreateCoupon(c *gin.Context) {
	var req couponRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload", "detail": err.Error()})
		return
	}
	code, dtype, status, err := req.normalize()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	res, err := intconfig.DB.Exec(`
		INSERT INTO coupons (code, description, discount_type, discount_value, min_amount, max_uses, valid_from, valid_until, status)
		VALUES (?, ?, ?, ?, ?, ?, NULLIF(?, ''), NULLIF(?, ''), ?)
	`, code, req.Description, dtype, req.DiscountValue, req.MinAmount, req.MaxUses, req.ValidFrom, req.ValidUntil, status)
	if err != nil {
		if me, ok := err.(*mysql.MySQLError); ok && me.Number == 1062 {
			c.JSON(http.StatusConflict, gin.H{"error": "coupon code already exists"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "coupon insert failed: " + err.Error()})
		return
	}

	id, _ := res.LastInsertId()
	c.JSON(http.StatusCreated, gin.H{"message": "coupon created", "id": id})
}

// PUT /api/coupons/:id
func UpdateCoupon(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid coupon id"})
		return
	}

	var req couponRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload", "detail": err.Error()})
		return
	}
	code, dtype, status, err := req.normalize()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var exists int
	if err := intconfig.DB.QueryRow(`SELECT COUNT(*) FROM coupons WHERE id=?`, id).Scan(&exists); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "coupon lookup failed: " + err.Error()})
		return
	}
	if exists == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "coupon not found"})
		return
	}

	_, err = intconfig.DB.Exec(`
		UPDATE coupons
		SET code=?, description=?, discount_type=?, discount_value=?, min_amount=?, max_uses=?,
		    valid_from=NULLIF(?, ''), valid_until=NULLIF(?, ''), status=?
		WHERE id=?
	`, code, req.Description, dtype, req.DiscountValue, req.MinAmount, req.MaxUses, req.ValidFrom, req.ValidUntil, status, id)
	if err != nil {
		if me, ok := err.(*mysql.MySQLError); ok && me.Number == 1062 {
			c.JSON(http.StatusConflict, gin.H{"error": "coupon code already exists"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "coupon update failed: " + err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "coupon updated"})
}

// PATCH /api/coupons/:id/toggle
func ToggleCoupon(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid coupon id"})
		return
	}

	res, err := intconfig.DB.Exec(`
		UPDATE coupons SET status = IF(status='ACTIVE', 'INACTIVE', 'ACTIVE') WHERE id=?
	`, id)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "coupon toggle failed: " + err.Error()})
		return
	}
	if n, _ := res.RowsAffected(); n == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "coupon not found"})
		return
	}

	var status string
	if err := intconfig.DB.QueryRow(`SELECT status FROM coupons WHERE id=?`, id).Scan(&status); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "coupon status read failed: " + err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "coupon status updated", "status": status})
}

// DELETE /api/coupons/:id refuses while an approved payment redeemed the
// code, so the coupon-usage report keeps its rows.
func DeleteCoupon(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid coupon id"})
		return
	}

	var code string
	if err := intconfig.DB.QueryRow(`SELECT code FROM coupons WHERE id=?`, id).Scan(&code); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			c.JSON(http.StatusNotFound, gin.H{"error": "coupon not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "coupon lookup failed: " + err.Error()})
		return
	}

	var inUse int
	if err := intconfig.DB.QueryRow(`
		SELECT COUNT(*) FROM payments WHERE coupon_code=? AND status='APPROVED'
	`, code).Scan(&inUse); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "coupon delete check failed: " + err.Error()})
		return
	}
	if inUse > 0 {
		c.JSON(http.StatusConflict, gin.H{"error": "coupon has approved payments, set it INACTIVE instead"})
		return
	}

	res, err := intconfig.DB.Exec(`DELETE FROM coupons WHERE id=?`, id)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "coupon delete failed: " + err.Error()})
		return
	}
	if n, _ := res.RowsAffected(); n == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "coupon not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "coupon deleted"})
}
