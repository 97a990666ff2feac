package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	userControllers "github.com/UchinthaB/SDP-Project-sub000/controllers/user"
	"github.com/UchinthaB/SDP-Project-sub000/middleware"
)

// SetupUserRoutes registers the "/user/*" profile endpoints.
func SetupUserRoutes(r *gin.Engine, db *gorm.DB) {
	userGroup := r.Group("/user")
	userGroup.Use(middleware.ValidateToken)
	{
		userGroup.GET("/profile", userControllers.GetProfile(db))
		userGroup.PUT("/profile", userControllers.UpdateProfile(db))
	}
}
