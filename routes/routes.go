package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/UchinthaB/SDP-Project-sub000/notify"
)

// SetupRoutes is the single entry-point that wires up every route group.
func SetupRoutes(r *gin.Engine, db *gorm.DB, mailer notify.Mailer) {
	// Public auth routes (no middleware)
	SetupAuthRoutes(r, db)

	// Public catalog + contact form
	SetupCatalogRoutes(r, db)

	// Customer-facing routes (JWT-protected)
	SetupUserRoutes(r, db)
	SetupCartRoutes(r, db)

	// Order ledger
	SetupOrderRoutes(r, db, mailer)

	// Owner/admin surface
	SetupAdminRoutes(r, db)
}
