package handlers

import (
	"net/http"
	"strconv"
	"strings"

	intconfig "travelapi/internal/config"
	intdb "travelapi/internal/db"
	"travelapi/internal/domain/models"
	"travelapi/internal/utils"

	"github.com/gin-gonic/gin"
)

const witnessSelect = `
	SELECT id,
	       COALESCE(name, ''),
	       COALESCE(phone, ''),
	       COALESCE(address, ''),
	       travel_id,
	       COALESCE(notes, '')
	FROM witnesses
`

// GET /api/witnesses?travelId=
func GetWitnesses(c *gin.Context) {
	query := witnessSelect
	args := []any{}
	if tid := strings.TrimSpace(c.Query("travelId")); tid != "" {
		id, err := strconv.ParseInt(tid, 10, 64)
		if err != nil || id <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid travelId"})
			return
		}
		query += " WHERE travel_id = ?"
		args = append(args, id)
	}
	query += " ORDER BY id DESC"

	rows, err := intconfig.DB.Query(query, args...)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "witness list failed: " + err.Error()})
		return
	}
	defer rows.Close()

	list := []models.Witness{}
	for rows.Next() {
		var w models.Witness
		if err := rows.Scan(&w.ID, &w.Name, &w.Phone, &w.Address, &w.TravelID, &w.Notes); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "witness scan failed: " + err.Error()})
			return
		}
		list = append(list, w)
	}
	if err := rows.Err(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "row iteration error: " + err.Error()})
		return
	}

	c.JSON(http.StatusOK, list)
}

type witnessRequest struct {
	Name     string `json:"name" binding:"required"`
	Phone    string `json:"phone"`
	Address  string `json:"address"`
	TravelID *int64 `json:"travelId"`
	Notes    string `json:"notes"`
}

// POST /api/witnesses
func CreateWitness(c *gin.Context) {
	var req witnessRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload", "detail": err.Error()})
		return
	}

	res, err := intconfig.DB.Exec(`
		INSERT INTO witnesses (name, phone, address, travel_id, notes)
		VALUES (?, ?, ?, ?, ?)
	`, utils.NormalizeSpace(req.Name), req.Phone, req.Address, req.TravelID, intdb.NullIfEmpty(req.Notes))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "witness insert failed: " + err.Error()})
		return
	}

	id, _ := res.LastInsertId()
	c.JSON(http.StatusCreated, gin.H{"message": "witness created", "id": id})
}

// PATCH /api/witnesses/:id applies a partial update: only supplied fields change.
func UpdateWitness(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid witness id"})
		return
	}

	var req struct {
		Name     *string `json:"name"`
		Phone    *string `json:"phone"`
		Address  *string `json:"address"`
		TravelID *int64  `json:"travelId"`
		Notes    *string `json:"notes"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload", "detail": err.Error()})
		return
	}

	sets := []string{}
	args := []any{}
	if req.Name != nil {
		if strings.TrimSpace(*req.Name) == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "name cannot be blank"})
			return
		}
		sets = append(sets, "name=?")
		args = append(args, strings.TrimSpace(*req.Name))
	}
	if req.Phone != nil {
		sets = append(sets, "phone=?")
		args = append(args, *req.Phone)
	}
	if req.Address != nil {
		sets = append(sets, "address=?")
		args = append(args, *req.Address)
	}
	if req.TravelID != nil {
		sets = append(sets, "travel_id=?")
		args = append(args, *req.TravelID)
	}
	if req.Notes != nil {
		sets = append(sets, "notes=?")
		args = append(args, *req.Notes)
	}
	if len(sets) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "no fields to update"})
		return
	}

	args = append(args, id)
	_, err = intconfig.DB.Exec(`UPDATE witnesses SET `+strings.Join(sets, ", ")+` WHERE id=?`, args...)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "witness update failed: " + err.Error()})
		return
	}

	var w models.Witness
	err = intconfig.DB.QueryRow(witnessSelect+` WHERE id=?`, id).
		Scan(&w.ID, &w.Name, &w.Phone, &w.Address, &w.TravelID, &w.Notes)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "witness not found"})
		return
	}
	c.JSON(http.StatusOK, w)
}

// DELETE /api/witnesses/:id
func DeleteWitness(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid witness id"})
		return
	}

	res, err := intconfig.DB.Exec(`DELETE FROM witnesses WHERE id=?`, id)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "witness delete failed: " + err.Error()})
		return
	}
	if n, _ := res.RowsAffected(); n == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "witness not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "witness deleted"})
}
