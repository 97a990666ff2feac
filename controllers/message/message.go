package messageControllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/UchinthaB/SDP-Project-sub000/middleware"
	"github.com/UchinthaB/SDP-Project-sub000/models"
)

type MessageInput struct {
	Name    string `json:"name" binding:"required"`
	Email   string `json:"email" binding:"required,email"`
	Subject string `json:"subject"`
	Body    string `json:"body" binding:"required"`
}

// POST /messages — public contact form; the customer id is attached when the
// sender happens to be logged in.
func CreateMessage(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input MessageInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid input: " + err.Error()})
			return
		}

		msg := models.Message{
			Name:    input.Name,
			Email:   input.Email,
			Subject: input.Subject,
			Body:    input.Body,
		}
		if userID, _, ok := middleware.Identity(c); ok {
			msg.CustomerID = &userID
		}

		if err := db.Create(&msg).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to send message"})
			return
		}
		c.JSON(http.StatusCreated, msg)
	}
}

// GET /admin/messages (owner)
func GetMessages(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		query := db.Order("created_at DESC")
		if c.Query("unread") == "true" {
			query = query.Where("read = ?", false)
		}

		var messages []models.Message
		if err := query.Find(&messages).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to fetch messages"})
			return
		}
		c.JSON(http.StatusOK, messages)
	}
}

// PUT /admin/messages/:id/read (owner)
func MarkMessageRead(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := strconv.Atoi(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid message id"})
			return
		}

		result := db.Model(&models.Message{}).Where("id = ?", id).Update("read", true)
		if result.Error != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to update message"})
			return
		}
		if result.RowsAffected == 0 {
			c.JSON(http.StatusNotFound, gin.H{"message": "Message not found"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Message marked as read"})
	}
}

// DELETE /admin/messages/:id (owner)
func DeleteMessage(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := strconv.Atoi(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid message id"})
			return
		}

		result := db.Delete(&models.Message{}, id)
		if result.Error != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to delete message"})
			return
		}
		if result.RowsAffected == 0 {
			c.JSON(http.StatusNotFound, gin.H{"message": "Message not found"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Message deleted"})
	}
}
