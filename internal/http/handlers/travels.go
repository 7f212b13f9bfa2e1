package handlers

import (
	"net/http"
	"strconv"
	"strings"

	intconfig "travelapi/internal/config"
	"travelapi/internal/domain/models"
	"travelapi/internal/repositories"
	"travelapi/internal/utils"

	"github.com/gin-gonic/gin"
)

const travelSelect = `
	SELECT id,
	       COALESCE(title, ''),
	       COALESCE(destination, ''),
	       COALESCE(description, ''),
	       COALESCE(price, 0),
	       COALESCE(DATE_FORMAT(start_date, '%Y-%m-%d'), ''),
	       COALESCE(DATE_FORMAT(end_date, '%Y-%m-%d'), ''),
	       COALESCE(capacity, 0),
	       COALESCE(status, '')
	FROM travels
`

// GET /api/travels?q=&status=&page=&limit=
func GetTravels(c *gin.Context) {
	q := strings.TrimSpace(c.Query("q"))
	status := strings.ToUpper(strings.TrimSpace(c.Query("status")))
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 200 {
		limit = 50
	}

	query := travelSelect
	where := []string{}
	args := []any{}
	if q != "" {
		where = append(where, `(title LIKE ? OR destination LIKE ?)`)
		like := "%" + q + "%"
		args = append(args, like, like)
	}
	if status != "" {
		where = append(where, `status = ?`)
		args = append(args, status)
	}
	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}
	query += " ORDER BY start_date ASC, id DESC LIMIT ? OFFSET ?"
	args = append(args, limit, (page-1)*limit)

	rows, err := intconfig.DB.Query(query, args...)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "travel list failed: " + err.Error()})
		return
	}
	defer rows.Close()

	list := []models.Travel{}
	for rows.Next() {
		var t models.Travel
		if err := rows.Scan(&t.ID, &t.Title, &t.Destination, &t.Description, &t.Price,
			&t.StartDate, &t.EndDate, &t.Capacity, &t.Status); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "travel scan failed: " + err.Error()})
			return
		}
		list = append(list, t)
	}
	if err := rows.Err(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "row iteration error: " + err.Error()})
		return
	}

	c.JSON(http.StatusOK, list)
}

// GET /api/travels/:id
func GetTravelByID(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid travel id"})
		return
	}

	repo := repositories.TravelRepository{}
	t, err := repo.GetByID(id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, t)
}

// GET /api/travels/popular?limit=
func GetPopularDestinations(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "5"))
	if limit < 1 || limit > 50 {
		limit = 5
	}

	repo := repositories.TravelRepository{}
	list, err := repo.PopularDestinations(limit)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

type travelRequest struct {
	Title       string  `json:"title" binding:"required"`
	Destination string  `json:"destination" binding:"required"`
	Description string  `json:"description"`
	Price       float64 `json:"price" binding:"required"`
	StartDate   string  `json:"startDate"`
	EndDate     string  `json:"endDate"`
	Capacity    int     `json:"capacity"`
	Status      string  `json:"status"`
}

func (r *travelRequest) normalize() (string, error) {
	if r.Price <= 0 {
		return "", errBadPrice
	}
	if r.StartDate != "" {
		if _, err := utils.ParseDate(r.StartDate); err != nil {
			return "", err
		}
	}
	if r.EndDate != "" {
		if _, err := utils.ParseDate(r.EndDate); err != nil {
			return "", err
		}
	}
	status := strings.ToUpper(strings.TrimSpace(r.Status))
	if status == "" {
		status = models.TravelActive
	}
	if status != models.TravelActive && status != models.TravelInactive {
		return "", errBadStatus
	}
	return status, nil
}

// POST /api/travels
func CreateTravel(c *gin.Context) {
	var req travelRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload", "detail": err.Error()})
		return
	}
	status, err := req.normalize()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	res, err := intconfig.DB.Exec(`
		INSERT INTO travels (title, destination, description, price, start_date, end_date, capacity, status)
		VALUES (?, ?, ?, ?, NULLIF(?, ''), NULLIF(?, ''), ?, ?)
	`, strings.TrimSpace(req.Title), strings.TrimSpace(req.Destination), req.Description,
		req.Price, req.StartDate, req.EndDate, req.Capacity, status)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "travel insert failed: " + err.Error()})
		return
	}

	id, _ := res.LastInsertId()
	c.JSON(http.StatusCreated, gin.H{"message": "travel created", "id": id})
}

// PUT /api/travels/:id
func UpdateTravel(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid travel id"})
		return
	}

	var req travelRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload", "detail": err.Error()})
		return
	}
	status, err := req.normalize()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var exists int
	if err := intconfig.DB.QueryRow(`SELECT COUNT(*) FROM travels WHERE id=?`, id).Scan(&exists); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "travel lookup failed: " + err.Error()})
		return
	}
	if exists == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "travel not found"})
		return
	}

	_, err = intconfig.DB.Exec(`
		UPDATE travels
		SET title=?, destination=?, description=?, price=?, start_date=NULLIF(?, ''), end_date=NULLIF(?, ''), capacity=?, status=?
		WHERE id=?
	`, strings.TrimSpace(req.Title), strings.TrimSpace(req.Destination), req.Description,
		req.Price, req.StartDate, req.EndDate, req.Capacity, status, id)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "travel update failed: " + err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "travel updated"})
}

// DELETE /api/travels/:id is refused while bookings reference the travel.
func DeleteTravel(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid travel id"})
		return
	}

	var inUse int
	if err := intconfig.DB.QueryRow(`SELECT COUNT(*) FROM bookings WHERE travel_id=?`, id).Scan(&inUse); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "travel delete check failed: " + err.Error()})
		return
	}
	if inUse > 0 {
		c.JSON(http.StatusConflict, gin.H{"error": "travel has bookings, set it INACTIVE instead"})
		return
	}

	res, err := intconfig.DB.Exec(`DELETE FROM travels WHERE id=?`, id)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "travel delete failed: " + err.Error()})
		return
	}
	if n, _ := res.RowsAffected(); n == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "travel not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "travel deleted"})
}
