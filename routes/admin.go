package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	messageControllers "github.com/UchinthaB/SDP-Project-sub000/controllers/message"
	reportControllers "github.com/UchinthaB/SDP-Project-sub000/controllers/report"
	userControllers "github.com/UchinthaB/SDP-Project-sub000/controllers/user"
	"github.com/UchinthaB/SDP-Project-sub000/middleware"
)

// SetupAdminRoutes registers the owner/admin surface.
func SetupAdminRoutes(r *gin.Engine, db *gorm.DB) {
	adminGroup := r.Group("/admin")
	adminGroup.Use(middleware.ValidateToken)
	{
		// Employee account management
		staffMgmt := adminGroup.Group("/")
		staffMgmt.Use(middleware.Authorize(middleware.OpEmployeeManage))
		{
			staffMgmt.GET("/users", userControllers.GetAllUsers(db))
			staffMgmt.POST("/employees", userControllers.CreateEmployee(db))
			staffMgmt.PUT("/employees/:id", userControllers.UpdateEmployee(db))
			staffMgmt.DELETE("/employees/:id", userControllers.DeleteEmployee(db))
		}

		// Customer messages
		messageMgmt := adminGroup.Group("/messages")
		messageMgmt.Use(middleware.Authorize(middleware.OpMessageManage))
		{
			messageMgmt.GET("", messageControllers.GetMessages(db))
			messageMgmt.PUT("/:id/read", messageControllers.MarkMessageRead(db))
			messageMgmt.DELETE("/:id", messageControllers.DeleteMessage(db))
		}

		// Sales reports
		reports := adminGroup.Group("/reports")
		reports.Use(middleware.Authorize(middleware.OpReportView))
		{
			reports.GET("/sales", reportControllers.GetSalesReport(db))
			reports.GET("/sales/export", reportControllers.ExportSalesReportToExcel(db))
		}
	}
}
