package orderControllers

import (
	"errors"
	"fmt"
	"math"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/UchinthaB/SDP-Project-sub000/apperrors"
	"github.com/UchinthaB/SDP-Project-sub000/middleware"
	"github.com/UchinthaB/SDP-Project-sub000/models"
	"github.com/UchinthaB/SDP-Project-sub000/notify"
)

// -------- Request Structs --------

type OrderItemInput struct {
	ProductID uint    `json:"product_id" binding:"required"`
	Quantity  int     `json:"quantity"` // defaults to 1
	Price     float64 `json:"price"`
}

type CreateOrderRequest struct {
	CustomerID    uint             `json:"customer_id" binding:"required"`
	TotalAmount   *float64         `json:"total_amount" binding:"required"`
	PaymentMethod string           `json:"payment_method" binding:"required"`
	Items         []OrderItemInput `json:"items" binding:"required"`
	JuiceBarID    *uint            `json:"juice_bar_id"`
}

type UpdateOrderStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// -------- Helpers --------

func mapPaymentMethod(method string) (models.PaymentMethod, error) {
	switch models.PaymentMethod(method) {
	case models.PaymentMethodCash:
		return models.PaymentMethodCash, nil
	case models.PaymentMethodOnline:
		return models.PaymentMethodOnline, nil
	default:
		return "", errors.New("invalid payment method")
	}
}

// nextTokenNumber bumps the per-date counter and returns the new value. The
// upsert keeps the counter row locked until the surrounding transaction
// commits, so concurrent checkouts on the same date cannot read the same
// value.
func nextTokenNumber(tx *gorm.DB, date string) (int, error) {
	seq := models.TokenSequence{Date: date, LastToken: 1}
	if err := tx.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "date"}},
		DoUpdates: clause.Assignments(map[string]interface{}{
			"last_token": gorm.Expr("token_sequences.last_token + 1"),
		}),
	}).Create(&seq).Error; err != nil {
		return 0, err
	}
	if err := tx.Where("date = ?", date).First(&seq).Error; err != nil {
		return 0, err
	}
	return seq.LastToken, nil
}

// resolveJuiceBar picks the fulfillment location: the explicit id when it
// names a real juice bar, else the bar owning the first item's product, else
// the first bar on record. Orders are never rejected just for a missing
// location hint.
func resolveJuiceBar(tx *gorm.DB, explicit *uint, firstProductID uint) (uint, error) {
	if explicit != nil {
		var bar models.JuiceBar
		if err := tx.First(&bar, *explicit).Error; err == nil {
			return bar.ID, nil
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, err
		}
	}

	var product models.Product
	if err := tx.First(&product, firstProductID).Error; err == nil {
		return product.JuiceBarID, nil
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return 0, err
	}

	var bar models.JuiceBar
	if err := tx.Order("id ASC").First(&bar).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, apperrors.Validation("no juice bar available to attach the order to")
		}
		return 0, err
	}
	return bar.ID, nil
}

// canSeeOrder reports whether the requester may read the order.
func canSeeOrder(order models.Order, userID uint, role models.Role) bool {
	return order.CustomerID == userID || role.IsStaff()
}

// canCancelOrder: the order's own customer, or admin/owner. Employees go
// through the status pipeline instead.
func canCancelOrder(order models.Order, userID uint, role models.Role) bool {
	return order.CustomerID == userID || role == models.RoleAdmin || role == models.RoleOwner
}

// -------- Handlers --------

// POST /orders/create
func CreateOrder(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, _, ok := middleware.Identity(c)
		if !ok {
			apperrors.Respond(c, apperrors.Authentication("Authentication required"))
			return
		}

		var req CreateOrderRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			apperrors.Respond(c, apperrors.Validation("Invalid input: "+err.Error()))
			return
		}
		if req.CustomerID != userID {
			apperrors.Respond(c, apperrors.Authorization("You cannot place an order for another customer"))
			return
		}
		if len(req.Items) == 0 {
			apperrors.Respond(c, apperrors.Validation("Order must contain at least one item"))
			return
		}

		paymentMethod, err := mapPaymentMethod(req.PaymentMethod)
		if err != nil {
			apperrors.Respond(c, apperrors.Validation(err.Error()))
			return
		}

		var total float64
		var orderItems []models.OrderItem
		for _, item := range req.Items {
			quantity := item.Quantity
			if quantity == 0 {
				quantity = 1
			}
			if quantity < 1 {
				apperrors.Respond(c, apperrors.Validation("Item quantity must be at least 1"))
				return
			}
			if item.Price < 0 {
				apperrors.Respond(c, apperrors.Validation("Item price cannot be negative"))
				return
			}
			subtotal := float64(quantity) * item.Price
			total += subtotal
			orderItems = append(orderItems, models.OrderItem{
				ProductID: item.ProductID,
				Quantity:  quantity,
				UnitPrice: item.Price,
				Subtotal:  subtotal,
			})
		}
		if math.Abs(total-*req.TotalAmount) > 0.009 {
			apperrors.Respond(c, apperrors.Validation("total_amount does not match the item subtotals"))
			return
		}

		var order models.Order
		err = db.Transaction(func(tx *gorm.DB) error {
			juiceBarID, err := resolveJuiceBar(tx, req.JuiceBarID, req.Items[0].ProductID)
			if err != nil {
				return err
			}

			// snapshot the product names; a vanished product leaves the
			// line nameless rather than failing the checkout
			for i := range orderItems {
				var product models.Product
				if err := tx.First(&product, orderItems[i].ProductID).Error; err == nil {
					orderItems[i].ProductName = product.Name
				} else if !errors.Is(err, gorm.ErrRecordNotFound) {
					return err
				}
			}

			token, err := nextTokenNumber(tx, time.Now().Format("2006-01-02"))
			if err != nil {
				return err
			}

			order = models.Order{
				CustomerID:    req.CustomerID,
				JuiceBarID:    juiceBarID,
				TokenNumber:   token,
				PaymentMethod: paymentMethod,
				Status:        models.OrderStatusPending,
				TotalAmount:   total,
				Items:         orderItems,
				CreatedAt:     time.Now(),
			}
			return tx.Create(&order).Error
		})
		if err != nil {
			apperrors.Respond(c, err)
			return
		}

		if err := db.
			Preload("User").
			Preload("Items").
			First(&order, order.OrderID).Error; err != nil {
			apperrors.Respond(c, apperrors.Persistence(err))
			return
		}

		broadcastOrderEvent("order_created", order)
		c.JSON(http.StatusCreated, gin.H{
			"order_id":     order.OrderID,
			"token_number": order.TokenNumber,
			"order":        order,
		})
	}
}

// GET /orders/:order_id
func GetOrderByID(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, role, ok := middleware.Identity(c)
		if !ok {
			apperrors.Respond(c, apperrors.Authentication("Authentication required"))
			return
		}

		orderID, err := strconv.Atoi(c.Param("order_id"))
		if err != nil {
			apperrors.Respond(c, apperrors.Validation("Invalid order id"))
			return
		}

		var order models.Order
		if err := db.
			Preload("User").
			Preload("Items").
			First(&order, orderID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				apperrors.Respond(c, apperrors.NotFound("Order not found"))
				return
			}
			apperrors.Respond(c, apperrors.Persistence(err))
			return
		}

		if !canSeeOrder(order, userID, role) {
			apperrors.Respond(c, apperrors.Authorization("You are not allowed to view this order"))
			return
		}
		c.JSON(http.StatusOK, order)
	}
}

// GET /orders/customer/:customer_id
func GetCustomerOrders(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, role, ok := middleware.Identity(c)
		if !ok {
			apperrors.Respond(c, apperrors.Authentication("Authentication required"))
			return
		}

		customerID, err := strconv.Atoi(c.Param("customer_id"))
		if err != nil {
			apperrors.Respond(c, apperrors.Validation("Invalid customer id"))
			return
		}
		if uint(customerID) != userID && role != models.RoleAdmin && role != models.RoleOwner {
			apperrors.Respond(c, apperrors.Authorization("You are not allowed to view these orders"))
			return
		}

		var orders []models.Order
		if err := db.
			Where("customer_id = ?", customerID).
			Preload("Items").
			Order("created_at DESC").
			Find(&orders).Error; err != nil {
			apperrors.Respond(c, apperrors.Persistence(err))
			return
		}
		c.JSON(http.StatusOK, orders)
	}
}

// GET /orders/pending/list — actionable orders for staff, oldest first within
// each status bucket.
func GetPendingOrders(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var orders []models.Order
		if err := db.
			Where("status IN ?", []models.OrderStatus{
				models.OrderStatusPending,
				models.OrderStatusProcessing,
				models.OrderStatusReady,
			}).
			Preload("User").
			Preload("Items").
			Order("CASE status WHEN 'pending' THEN 0 WHEN 'processing' THEN 1 ELSE 2 END, created_at ASC").
			Find(&orders).Error; err != nil {
			apperrors.Respond(c, apperrors.Persistence(err))
			return
		}
		c.JSON(http.StatusOK, orders)
	}
}

// PUT /orders/:order_id/status
func UpdateOrderStatus(db *gorm.DB, mailer notify.Mailer) gin.HandlerFunc {
	return func(c *gin.Context) {
		orderID, err := strconv.Atoi(c.Param("order_id"))
		if err != nil {
			apperrors.Respond(c, apperrors.Validation("Invalid order id"))
			return
		}

		var req UpdateOrderStatusRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			apperrors.Respond(c, apperrors.Validation("Invalid input: "+err.Error()))
			return
		}
		if !models.ValidStatus(req.Status) {
			apperrors.Respond(c, apperrors.Validation("Invalid order status: "+req.Status))
			return
		}
		newStatus := models.OrderStatus(req.Status)

		var order models.Order
		err = db.Transaction(func(tx *gorm.DB) error {
			if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
				Preload("User").First(&order, orderID).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return apperrors.NotFound("Order not found")
				}
				return err
			}
			if !models.CanTransition(order.Status, newStatus) {
				return apperrors.InvalidState(fmt.Sprintf(
					"cannot move order from %s to %s", order.Status, newStatus))
			}

			updates := map[string]interface{}{"status": newStatus}
			if newStatus == models.OrderStatusCompleted {
				updates["completed_at"] = time.Now()
			}
			return tx.Model(&order).Updates(updates).Error
		})
		if err != nil {
			apperrors.Respond(c, err)
			return
		}

		notify.StatusChanged(mailer, order)
		broadcastOrderEvent("status_changed", order)
		c.JSON(http.StatusOK, gin.H{"message": "Order status updated successfully"})
	}
}

// DELETE /orders/:order_id/cancel
func CancelOrder(db *gorm.DB, mailer notify.Mailer) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, role, ok := middleware.Identity(c)
		if !ok {
			apperrors.Respond(c, apperrors.Authentication("Authentication required"))
			return
		}

		orderID, err := strconv.Atoi(c.Param("order_id"))
		if err != nil {
			apperrors.Respond(c, apperrors.Validation("Invalid order id"))
			return
		}

		var order models.Order
		err = db.Transaction(func(tx *gorm.DB) error {
			if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
				Preload("User").First(&order, orderID).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return apperrors.NotFound("Order not found")
				}
				return err
			}
			if !canCancelOrder(order, userID, role) {
				return apperrors.Authorization("You are not allowed to cancel this order")
			}
			if order.Status != models.OrderStatusPending && order.Status != models.OrderStatusProcessing {
				return apperrors.InvalidState(fmt.Sprintf(
					"order is already %s and can no longer be cancelled", order.Status))
			}
			return tx.Model(&order).Updates(map[string]interface{}{
				"status":       models.OrderStatusCancelled,
				"completed_at": time.Now(),
			}).Error
		})
		if err != nil {
			apperrors.Respond(c, err)
			return
		}

		notify.StatusChanged(mailer, order)
		broadcastOrderEvent("status_changed", order)
		c.JSON(http.StatusOK, gin.H{"message": "Order cancelled successfully"})
	}
}

// DELETE /orders/:order_id/delete — hard delete, cancelled orders only.
func DeleteOrder(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		orderID, err := strconv.Atoi(c.Param("order_id"))
		if err != nil {
			apperrors.Respond(c, apperrors.Validation("Invalid order id"))
			return
		}

		err = db.Transaction(func(tx *gorm.DB) error {
			var order models.Order
			if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
				First(&order, orderID).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return apperrors.NotFound("Order not found")
				}
				return err
			}
			if order.Status != models.OrderStatusCancelled {
				return apperrors.InvalidState("only cancelled orders can be deleted")
			}
			if err := tx.Where("order_id = ?", order.OrderID).
				Delete(&models.OrderItem{}).Error; err != nil {
				return err
			}
			return tx.Delete(&order).Error
		})
		if err != nil {
			apperrors.Respond(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Order deleted successfully"})
	}
}
