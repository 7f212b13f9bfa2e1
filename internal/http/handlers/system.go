package handlers

import (
	"net/http"

	intconfig "travelapi/internal/config"
	intdb "travelapi/internal/db"

	"github.com/gin-gonic/gin"
)

func Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok", "message": "travel backend running"})
}

// coreTables are the tables the API cannot serve without.
var coreTables = []string{"users", "travels", "bookings", "payments", "tickets"}

func DBCheck(c *gin.Context) {
	if intconfig.DB == nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "database not connected"})
		return
	}

	missing := []string{}
	for _, table := range coreTables {
		if !intdb.HasTable(intconfig.DB, table) {
			missing = append(missing, table)
		}
	}
	if len(missing) > 0 {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":          "schema incomplete",
			"missing_tables": missing,
		})
		return
	}

	var count int
	if err := intconfig.DB.QueryRow("SELECT COUNT(*) FROM users").Scan(&count); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "database query failed: " + err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "database connection OK", "users_in_db": count})
}
