package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/UchinthaB/SDP-Project-sub000/models"
)

// Operation names a role-gated action in the API.
type Operation string

const (
	OpOrderCreate      Operation = "order.create"
	OpOrderUpdateState Operation = "order.update_status"
	OpOrderListPending Operation = "order.list_pending"
	OpOrderDelete      Operation = "order.delete"
	OpProductManage    Operation = "product.manage"
	OpJuiceBarManage   Operation = "juicebar.manage"
	OpEmployeeManage   Operation = "employee.manage"
	OpMessageManage    Operation = "message.manage"
	OpReportView       Operation = "report.view"
)

// policy is the single role × operation table; handlers never hard-code role
// checks for these operations. Ownership ("self") checks still live with the
// data they need, next to the row being guarded.
var policy = map[Operation]map[models.Role]bool{
	OpOrderCreate: {
		models.RoleCustomer: true,
	},
	OpOrderUpdateState: {
		models.RoleEmployee: true,
		models.RoleOwner:    true,
		models.RoleAdmin:    true,
	},
	OpOrderListPending: {
		models.RoleEmployee: true,
		models.RoleOwner:    true,
		models.RoleAdmin:    true,
	},
	OpOrderDelete: {
		models.RoleOwner: true,
		models.RoleAdmin: true,
	},
	OpProductManage: {
		models.RoleEmployee: true,
		models.RoleOwner:    true,
		models.RoleAdmin:    true,
	},
	OpJuiceBarManage: {
		models.RoleOwner: true,
		models.RoleAdmin: true,
	},
	OpEmployeeManage: {
		models.RoleOwner: true,
		models.RoleAdmin: true,
	},
	OpMessageManage: {
		models.RoleOwner: true,
		models.RoleAdmin: true,
	},
	OpReportView: {
		models.RoleOwner: true,
		models.RoleAdmin: true,
	},
}

// Allowed consults the policy table.
func Allowed(op Operation, role models.Role) bool {
	return policy[op][role]
}

// Authorize gates a route group on the policy table. Must run after
// ValidateToken.
func Authorize(op Operation) gin.HandlerFunc {
	return func(c *gin.Context) {
		_, role, ok := Identity(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"message": "Authentication required"})
			c.Abort()
			return
		}
		if !Allowed(op, role) {
			c.JSON(http.StatusForbidden, gin.H{"message": "You are not allowed to perform this action"})
			c.Abort()
			return
		}
		c.Next()
	}
}
