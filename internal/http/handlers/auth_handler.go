package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"

	"cords_connector/internal/auth"
	"cords_connector/internal/models"
)

// RegisterUser creates a platform user.
func RegisterUser(users UserStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		var in struct {
			Email     string `json:"email" binding:"required,email"`
			Password  string `json:"password" binding:"required,min=4"`
			FirstName string `json:"first_name" binding:"required"`
			LastName  string `json:"last_name" binding:"required"`
			Role      string `json:"role" binding:"required"`
		}
		if err := c.ShouldBindJSON(&in); err != nil {
			c.JSON(http.StatusBadRequest, failed("Error Occurred", "Missing data"))
			return
		}
		in.Email = strings.TrimSpace(strings.ToLower(in.Email))

		existing, err := users.ByEmail(in.Email)
		if err != nil {
			c.JSON(http.StatusInternalServerError, failed("Error Occurred", err.Error()))
			return
		}
		if existing != nil {
			c.JSON(http.StatusConflict, failed("Error Occurred", "Email already exists"))
			return
		}

		hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
		if err != nil {
			c.JSON(http.StatusInternalServerError, failed("Error Occurred", "failed to hash password"))
			return
		}

		user := models.User{
			UserID: models.HashedID(map[string]interface{}{
				"email":      in.Email,
				"first_name": in.FirstName,
				"last_name":  in.LastName,
			}),
			Email:        in.Email,
			PasswordHash: string(hash),
			FirstName:    in.FirstName,
			LastName:     in.LastName,
			Role:         in.Role,
			Timestamp:    models.Timestamp(),
		}
		if err := users.Add(&user); err != nil {
			c.JSON(http.StatusInternalServerError, failed("Error Occurred", "Database Insert Failed"))
			return
		}

		c.JSON(http.StatusCreated, user)
	}
}

// Login authenticates the user and returns a JWT.
func Login(users UserStore, jwtSecret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		var in struct {
			Email    string `json:"email" binding:"required,email"`
			Password string `json:"password" binding:"required"`
		}
		if err := c.ShouldBindJSON(&in); err != nil {
			c.JSON(http.StatusBadRequest, failed("Error Occurred", "Missing data"))
			return
		}

		user, err := users.ByEmail(strings.TrimSpace(strings.ToLower(in.Email)))
		if err != nil || user == nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid email or password"})
			return
		}
		if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.Password)); err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid email or password"})
			return
		}

		token, err := auth.IssueToken(user, jwtSecret)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create token"})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"token": token,
			"user": gin.H{
				"email": user.Email,
				"name":  user.FirstName + " " + user.LastName,
				"role":  user.Role,
			},
		})
	}
}
