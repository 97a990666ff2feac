package userControllers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/UchinthaB/SDP-Project-sub000/auth"
	"github.com/UchinthaB/SDP-Project-sub000/middleware"
	"github.com/UchinthaB/SDP-Project-sub000/models"
)

type UpdateProfileInput struct {
	Name     *string `json:"name"`
	Password *string `json:"password"`
}

type CreateEmployeeRequest struct {
	Name       string `json:"name" binding:"required"`
	Email      string `json:"email" binding:"required,email"`
	Password   string `json:"password" binding:"required,min=6"`
	JuiceBarID *uint  `json:"juice_bar_id"`
}

type UpdateEmployeeInput struct {
	Name       *string      `json:"name"`
	Role       *models.Role `json:"role"`
	JuiceBarID *uint        `json:"juice_bar_id"`
}

// GET /user/profile
func GetProfile(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, _, _ := middleware.Identity(c)

		var user models.User
		if err := db.Preload("Cart").First(&user, userID).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"message": "User not found"})
			return
		}
		c.JSON(http.StatusOK, user)
	}
}

// PUT /user/profile
func UpdateProfile(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, _, _ := middleware.Identity(c)

		var user models.User
		if err := db.First(&user, userID).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"message": "User not found"})
			return
		}

		var input UpdateProfileInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid input: " + err.Error()})
			return
		}

		updates := make(map[string]interface{})
		if input.Name != nil {
			updates["name"] = *input.Name
		}
		if input.Password != nil {
			if len(*input.Password) < 6 {
				c.JSON(http.StatusBadRequest, gin.H{"message": "Password must be at least 6 characters"})
				return
			}
			hash, err := auth.HashPassword(*input.Password)
			if err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error"})
				return
			}
			updates["password_hash"] = hash
		}

		if len(updates) > 0 {
			if err := db.Model(&user).Updates(updates).Error; err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to update profile"})
				return
			}
		}
		c.JSON(http.StatusOK, user)
	}
}

// GET /admin/users (owner)
func GetAllUsers(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var users []models.User
		query := db.Order("created_at DESC")
		if role := c.Query("role"); role != "" {
			query = query.Where("role = ?", role)
		}
		if err := query.Find(&users).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to fetch users"})
			return
		}
		c.JSON(http.StatusOK, users)
	}
}

// POST /admin/employees (owner)
func CreateEmployee(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req CreateEmployeeRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid input: " + err.Error()})
			return
		}

		var existing models.User
		if err := db.Where("email = ?", req.Email).First(&existing).Error; err == nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": "Email is already registered"})
			return
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error"})
			return
		}

		hash, err := auth.HashPassword(req.Password)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error"})
			return
		}

		employee := models.User{
			Name:         req.Name,
			Email:        req.Email,
			PasswordHash: hash,
			Role:         models.RoleEmployee,
			JuiceBarID:   req.JuiceBarID,
		}
		if err := db.Create(&employee).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to create employee"})
			return
		}
		c.JSON(http.StatusCreated, employee)
	}
}

// PUT /admin/employees/:id (owner)
func UpdateEmployee(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := strconv.Atoi(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid user id"})
			return
		}

		var employee models.User
		if err := db.First(&employee, id).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"message": "User not found"})
			return
		}

		var input UpdateEmployeeInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid input: " + err.Error()})
			return
		}

		updates := make(map[string]interface{})
		if input.Name != nil {
			updates["name"] = *input.Name
		}
		if input.Role != nil {
			switch *input.Role {
			case models.RoleCustomer, models.RoleEmployee, models.RoleOwner:
				updates["role"] = *input.Role
			default:
				c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid role"})
				return
			}
		}
		if input.JuiceBarID != nil {
			updates["juice_bar_id"] = *input.JuiceBarID
		}

		if len(updates) > 0 {
			if err := db.Model(&employee).Updates(updates).Error; err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to update user"})
				return
			}
		}
		c.JSON(http.StatusOK, employee)
	}
}

// DELETE /admin/employees/:id (owner)
func DeleteEmployee(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := strconv.Atoi(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid user id"})
			return
		}

		var employee models.User
		if err := db.First(&employee, id).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"message": "User not found"})
			return
		}
		if employee.Role != models.RoleEmployee {
			c.JSON(http.StatusBadRequest, gin.H{"message": "Only employee accounts can be deleted here"})
			return
		}

		if err := db.Delete(&employee).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to delete user"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Employee deleted"})
	}
}
