package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	orderControllers "github.com/UchinthaB/SDP-Project-sub000/controllers/order"
	"github.com/UchinthaB/SDP-Project-sub000/middleware"
	"github.com/UchinthaB/SDP-Project-sub000/notify"
)

func SetupOrderRoutes(r *gin.Engine, db *gorm.DB, mailer notify.Mailer) {
	orders := r.Group("/orders")
	orders.Use(middleware.ValidateToken)
	{
		// Checkout
		orders.POST("/create",
			middleware.Authorize(middleware.OpOrderCreate),
			orderControllers.CreateOrder(db))

		// Staff pending queue + live feed
		orders.GET("/pending/list",
			middleware.Authorize(middleware.OpOrderListPending),
			orderControllers.GetPendingOrders(db))
		orders.GET("/ws",
			middleware.Authorize(middleware.OpOrderListPending),
			orderControllers.OrderWebSocketHandler)

		// Lookups (self-or-staff checks live in the handlers)
		orders.GET("/customer/:customer_id", orderControllers.GetCustomerOrders(db))
		orders.GET("/:order_id", orderControllers.GetOrderByID(db))

		// Pipeline transitions
		orders.PUT("/:order_id/status",
			middleware.Authorize(middleware.OpOrderUpdateState),
			orderControllers.UpdateOrderStatus(db, mailer))
		orders.DELETE("/:order_id/cancel", orderControllers.CancelOrder(db, mailer))
		orders.DELETE("/:order_id/delete",
			middleware.Authorize(middleware.OpOrderDelete),
			orderControllers.DeleteOrder(db))
	}
}
