package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"

	intconfig "travelapi/internal/config"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gin-gonic/gin"
)

// testContext swaps the shared DB handle for a sqlmock connection and
// hands back a recording gin context.
func testContext(t *testing.T) (*gin.Context, *httptest.ResponseRecorder, sqlmock.Sqlmock) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	prev := intconfig.DB
	intconfig.DB = db
	t.Cleanup(func() {
		intconfig.DB = prev
		db.Close()
	})

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	return c, w, mock
}

func TestDeleteCouponRefusedWhileRedeemed(t *testing.T) {
	c, w, mock := testContext(t)

	mock.ExpectQuery("SELECT code FROM coupons").WithArgs(int64(3)).
		WillReturnRows(sqlmock.NewRows([]string{"code"}).AddRow("SAVE20"))
	mock.ExpectQuery("FROM payments").WithArgs("SAVE20").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(2))

	c.Params = gin.Params{{Key: "id", Value: "3"}}
	c.Request = httptest.NewRequest(http.MethodDelete, "/api/coupons/3", nil)

	DeleteCoupon(c)

	if w.Code != http.StatusConflict {
		t.Fatalf("expected 409, got %d (%s)", w.Code, w.Body.String())
	}
	// no DELETE was expected, so a stray one would fail here
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestDeleteCouponUnusedCodeSucceeds(t *testing.T) {
	c, w, mock := testContext(t)

	mock.ExpectQuery("SELECT code FROM coupons").WithArgs(int64(3)).
		WillReturnRows(sqlmock.NewRows([]string{"code"}).AddRow("NEVERUSED"))
	mock.ExpectQuery("FROM payments").WithArgs("NEVERUSED").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
	mock.ExpectExec("DELETE FROM coupons").WithArgs(int64(3)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	c.Params = gin.Params{{Key: "id", Value: "3"}}
	c.Request = httptest.NewRequest(http.MethodDelete, "/api/coupons/3", nil)

	DeleteCoupon(c)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d (%s)", w.Code, w.Body.String())
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestDeleteCouponUnknownID(t *testing.T) {
	c, w, mock := testContext(t)

	mock.ExpectQuery("SELECT code FROM coupons").WithArgs(int64(99)).
		WillReturnRows(sqlmock.NewRows([]string{"code"}))

	c.Params = gin.Params{{Key: "id", Value: "99"}}
	c.Request = httptest.NewRequest(http.MethodDelete, "/api/coupons/99", nil)

	DeleteCoupon(c)

	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d (%s)", w.Code, w.Body.String())
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}
