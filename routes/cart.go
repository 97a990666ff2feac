package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	cartControllers "github.com/UchinthaB/SDP-Project-sub000/controllers/cart"
	"github.com/UchinthaB/SDP-Project-sub000/middleware"
)

func SetupCartRoutes(r *gin.Engine, db *gorm.DB) {
	cart := r.Group("/cart")
	cart.Use(middleware.ValidateToken)
	{
		cart.POST("/add", cartControllers.AddToCart(db))
		cart.GET("/:customer_id", cartControllers.GetCart(db))
		cart.DELETE("/remove/:id", cartControllers.RemoveCartEntry(db))
		cart.DELETE("/clear/:customer_id", cartControllers.ClearCart(db))
	}
}
