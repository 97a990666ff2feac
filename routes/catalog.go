package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	juicebarControllers "github.com/UchinthaB/SDP-Project-sub000/controllers/juicebar"
	messageControllers "github.com/UchinthaB/SDP-Project-sub000/controllers/message"
	productControllers "github.com/UchinthaB/SDP-Project-sub000/controllers/product"
	"github.com/UchinthaB/SDP-Project-sub000/middleware"
)

// SetupCatalogRoutes registers the public browse surface plus the staff-gated
// catalog management endpoints.
func SetupCatalogRoutes(r *gin.Engine, db *gorm.DB) {
	// Public browsing
	r.GET("/juicebars", juicebarControllers.GetJuiceBars(db))
	r.GET("/juicebars/:id", juicebarControllers.GetJuiceBarByID(db))
	r.GET("/products", productControllers.GetProducts(db))
	r.GET("/products/:id", productControllers.GetProductByID(db))

	// Public contact form; identity is attached when the sender is logged in
	r.POST("/messages", middleware.OptionalToken, messageControllers.CreateMessage(db))

	// Product management (staff)
	products := r.Group("/products")
	products.Use(middleware.ValidateToken, middleware.Authorize(middleware.OpProductManage))
	{
		products.POST("", productControllers.CreateProduct(db))
		products.PUT("/:id", productControllers.UpdateProduct(db))
		products.DELETE("/:id", productControllers.DeleteProduct(db))
	}

	// Juice bar management (owner)
	bars := r.Group("/juicebars")
	bars.Use(middleware.ValidateToken, middleware.Authorize(middleware.OpJuiceBarManage))
	{
		bars.POST("", juicebarControllers.CreateJuiceBar(db))
		bars.PUT("/:id", juicebarControllers.UpdateJuiceBar(db))
		bars.DELETE("/:id", juicebarControllers.DeleteJuiceBar(db))
	}
}
