package handlers

import (
	"errors"
	"net/http"
	"strings"
	"sync"

	"travelapi/internal/http/middleware"

	"github.com/gin-gonic/gin"
)

var (
	baseURLMu sync.RWMutex
	baseURL   = "http://localhost:8080"
)

var (
	errBadPrice         = errors.New("price must be greater than zero")
	errBadStatus        = errors.New("status must be ACTIVE or INACTIVE")
	errEmptyCouponCode  = errors.New("coupon code is required")
	errBadDiscountType  = errors.New("discount type must be PERCENT or FIXED")
	errBadDiscountValue = errors.New("discount value must be positive, and at most 100 for PERCENT")
)

// SetBaseURL stores the public base URL used to build ticket QR links.
func SetBaseURL(u string) {
	u = strings.TrimRight(strings.TrimSpace(u), "/")
	if u == "" {
		return
	}
	baseURLMu.Lock()
	baseURL = u
	baseURLMu.Unlock()
}

func BaseURL() string {
	baseURLMu.RLock()
	defer baseURLMu.RUnlock()
	return baseURL
}

// RespondError sends standard error payload with request_id included.
// Keeps backward compatibility by always providing "message".
func RespondError(c *gin.Context, status int, message string, err error) {
	reqID := middleware.GetRequestID(c)
	payload := gin.H{
		"message":    message,
		"request_id": reqID,
	}
	if err != nil {
		payload["error"] = err.Error()
	}
	c.JSON(status, payload)
}

// BindJSONOrError ensures body is present and parsable.
func BindJSONOrError[T any](c *gin.Context, dst *T) bool {
	if c.Request.Body == nil {
		RespondError(c, http.StatusBadRequest, "empty body", nil)
		return false
	}
	if err := c.ShouldBindJSON(dst); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid payload", err)
		return false
	}
	return true
}
