package juicebarControllers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/UchinthaB/SDP-Project-sub000/models"
)

type JuiceBarInput struct {
	Name     string `json:"name" binding:"required"`
	Location string `json:"location"`
	Phone    string `json:"phone"`
}

// GET /juicebars
func GetJuiceBars(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var bars []models.JuiceBar
		if err := db.Order("id ASC").Find(&bars).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to fetch juice bars"})
			return
		}
		c.JSON(http.StatusOK, bars)
	}
}

// GET /juicebars/:id — includes the bar's products for the browse screen.
func GetJuiceBarByID(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := strconv.Atoi(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid juice bar id"})
			return
		}

		var bar models.JuiceBar
		if err := db.Preload("Products").First(&bar, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"message": "Juice bar not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to retrieve juice bar"})
			return
		}
		c.JSON(http.StatusOK, bar)
	}
}

// POST /juicebars (owner)
func CreateJuiceBar(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input JuiceBarInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid input: " + err.Error()})
			return
		}

		bar := models.JuiceBar{Name: input.Name, Location: input.Location, Phone: input.Phone}
		if err := db.Create(&bar).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to create juice bar"})
			return
		}
		c.JSON(http.StatusCreated, bar)
	}
}

// PUT /juicebars/:id (owner)
func UpdateJuiceBar(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := strconv.Atoi(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid juice bar id"})
			return
		}

		var bar models.JuiceBar
		if err := db.First(&bar, id).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"message": "Juice bar not found"})
			return
		}

		var input JuiceBarInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid input: " + err.Error()})
			return
		}

		bar.Name = input.Name
		bar.Location = input.Location
		bar.Phone = input.Phone
		if err := db.Save(&bar).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to update juice bar"})
			return
		}
		c.JSON(http.StatusOK, bar)
	}
}

// DELETE /juicebars/:id (owner)
func DeleteJuiceBar(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := strconv.Atoi(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid juice bar id"})
			return
		}

		result := db.Delete(&models.JuiceBar{}, id)
		if result.Error != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to delete juice bar"})
			return
		}
		if result.RowsAffected == 0 {
			c.JSON(http.StatusNotFound, gin.H{"message": "Juice bar not found"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Juice bar deleted"})
	}
}
