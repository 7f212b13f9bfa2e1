package handlers

import (
	"net/http"
	"strings"

	intconfig "travelapi/internal/config"
	"travelapi/internal/domain/models"
	"travelapi/internal/utils"

	"github.com/gin-gonic/gin"
	"github.com/go-sql-driver/mysql"
	"golang.org/x/crypto/bcrypt"
)

// GET /api/users?q=&role=
func GetUsers(c *gin.Context) {
	q := strings.TrimSpace(c.Query("q"))
	role := strings.ToUpper(strings.TrimSpace(c.Query("role")))

	query := `
		SELECT id, name, username, email, COALESCE(phone,''), role, status
		FROM users
	`
	where := []string{}
	args := []any{}
	if q != "" {
		where = append(where, `(name LIKE ? OR email LIKE ? OR username LIKE ?)`)
		like := "%" + q + "%"
		args = append(args, like, like, like)
	}
	if role != "" {
		where = append(where, `role = ?`)
		args = append(args, role)
	}
	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}
	query += " ORDER BY id DESC"

	rows, err := intconfig.DB.Query(query, args...)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "user list failed: " + err.Error()})
		return
	}
	defer rows.Close()

	list := []models.User{}
	for rows.Next() {
		var u models.User
		if err := rows.Scan(&u.ID, &u.Name, &u.Username, &u.Email, &u.Phone, &u.Role, &u.Status); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "user scan failed: " + err.Error()})
			return
		}
		list = append(list, u)
	}
	if err := rows.Err(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "row iteration error: " + err.Error()})
		return
	}

	c.JSON(http.StatusOK, list)
}

type createUserRequest struct {
	Name     string `json:"name" binding:"required"`
	Username string `json:"username" binding:"required"`
	Email    string `json:"email" binding:"required"`
	Phone    string `json:"phone"`
	Password string `json:"password" binding:"required"`
	Role     string `json:"role" binding:"required"`
}

// POST /api/users lets admins create staff accounts with an explicit role.
func CreateUser(c *gin.Context) {
	var req createUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload", "detail": err.Error()})
		return
	}

	role := strings.ToUpper(strings.TrimSpace(req.Role))
	switch role {
	case models.RoleTraveler, models.RoleManager, models.RoleSupervisor:
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "role must be TRAVELER, MANAGER or SUPERVISOR"})
		return
	}

	if len(req.Password) < 6 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "password must be at least 6 characters"})
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "password hashing failed"})
		return
	}

	res, err := intconfig.DB.Exec(`
		INSERT INTO users (name, username, email, phone, password_hash, role, status)
		VALUES (?, ?, ?, ?, ?, ?, 'active')
	`, utils.NormalizeSpace(req.Name), strings.TrimSpace(req.Username), strings.TrimSpace(req.Email), strings.TrimSpace(req.Phone), string(hash), role)
	if err != nil {
		if me, ok := err.(*mysql.MySQLError); ok && me.Number == 1062 {
			c.JSON(http.StatusConflict, gin.H{"error": "email or username already registered"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "user insert failed: " + err.Error()})
		return
	}

	id, _ := res.LastInsertId()
	c.JSON(http.StatusCreated, gin.H{"message": "user created", "id": id})
}
