package cartControllers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/UchinthaB/SDP-Project-sub000/apperrors"
	"github.com/UchinthaB/SDP-Project-sub000/middleware"
	"github.com/UchinthaB/SDP-Project-sub000/models"
)

type AddToCartRequest struct {
	ProductID  uint `json:"product_id" binding:"required"`
	CustomerID uint `json:"customer_id" binding:"required"`
}

// POST /cart/add — adds one unit. The same product lands on a single counted
// row, so repeated adds bump the quantity instead of inserting duplicates.
func AddToCart(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, _, ok := middleware.Identity(c)
		if !ok {
			apperrors.Respond(c, apperrors.Authentication("Authentication required"))
			return
		}

		var req AddToCartRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			apperrors.Respond(c, apperrors.Validation("Invalid input: "+err.Error()))
			return
		}
		if req.CustomerID != userID {
			apperrors.Respond(c, apperrors.Authorization("You cannot modify another customer's cart"))
			return
		}

		// No availability gate here: out-of-stock products may still be
		// carted, availability is surfaced on the listing only.
		var product models.Product
		if err := db.First(&product, req.ProductID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				apperrors.Respond(c, apperrors.Validation("Product does not exist"))
				return
			}
			apperrors.Respond(c, apperrors.Persistence(err))
			return
		}

		entry := models.CartEntry{
			CustomerID: req.CustomerID,
			ProductID:  req.ProductID,
			Quantity:   1,
			AddedAt:    time.Now(),
		}
		if err := db.Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "customer_id"}, {Name: "product_id"}},
			DoUpdates: clause.Assignments(map[string]interface{}{
				"quantity": gorm.Expr("cart_entries.quantity + 1"),
				"added_at": time.Now(),
			}),
		}).Create(&entry).Error; err != nil {
			apperrors.Respond(c, apperrors.Persistence(err))
			return
		}

		c.JSON(http.StatusOK, gin.H{"message": "Product added to cart"})
	}
}

// GET /cart/:customer_id — consolidated lines with per-line subtotals.
func GetCart(db *gorm.DB) gin.HandlerFunc {
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
			apperrors.Respond(c, apperrors.Authorization("You are not allowed to view this cart"))
			return
		}

		var lines []models.CartLine
		if err := db.Model(&models.CartEntry{}).
			Select(`cart_entries.cart_id, cart_entries.product_id, products.name AS product_name,
				products.price, products.available, cart_entries.quantity,
				products.price * cart_entries.quantity AS subtotal`).
			Joins("JOIN products ON products.id = cart_entries.product_id").
			Where("cart_entries.customer_id = ?", customerID).
			Order("cart_entries.added_at ASC").
			Scan(&lines).Error; err != nil {
			apperrors.Respond(c, apperrors.Persistence(err))
			return
		}
		c.JSON(http.StatusOK, lines)
	}
}

// DELETE /cart/remove/:id — removes one unit from the entry; the row goes
// away when the count reaches zero.
func RemoveCartEntry(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, role, ok := middleware.Identity(c)
		if !ok {
			apperrors.Respond(c, apperrors.Authentication("Authentication required"))
			return
		}

		cartID, err := strconv.Atoi(c.Param("id"))
		if err != nil {
			apperrors.Respond(c, apperrors.Validation("Invalid cart entry id"))
			return
		}

		err = db.Transaction(func(tx *gorm.DB) error {
			var entry models.CartEntry
			if err := tx.First(&entry, cartID).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return apperrors.NotFound("Cart entry not found")
				}
				return err
			}
			if entry.CustomerID != userID && role != models.RoleAdmin && role != models.RoleOwner {
				return apperrors.Authorization("You cannot modify another customer's cart")
			}
			if entry.Quantity > 1 {
				return tx.Model(&entry).
					Update("quantity", gorm.Expr("quantity - 1")).Error
			}
			return tx.Delete(&entry).Error
		})
		if err != nil {
			apperrors.Respond(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Cart entry removed"})
	}
}

// DELETE /cart/clear/:customer_id — empties the cart after checkout.
func ClearCart(db *gorm.DB) gin.HandlerFunc {
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
			apperrors.Respond(c, apperrors.Authorization("You cannot modify another customer's cart"))
			return
		}

		if err := db.Where("customer_id = ?", customerID).
			Delete(&models.CartEntry{}).Error; err != nil {
			apperrors.Respond(c, apperrors.Persistence(err))
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Cart cleared"})
	}
}
