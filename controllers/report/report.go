package reportControllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/UchinthaB/SDP-Project-sub000/models"
)

type DailySales struct {
	Day     string  `json:"day"`
	Orders  int     `json:"orders"`
	Revenue float64 `json:"revenue"`
}

type ProductSales struct {
	ProductID   uint    `json:"product_id"`
	ProductName string  `json:"product_name"`
	Quantity    int     `json:"quantity"`
	Revenue     float64 `json:"revenue"`
}

type SalesReport struct {
	From      string         `json:"from"`
	To        string         `json:"to"`
	Daily     []DailySales   `json:"daily"`
	ByProduct []ProductSales `json:"by_product"`
}

// reportRange parses ?from=&to= (YYYY-MM-DD), defaulting to the last 30 days.
func reportRange(c *gin.Context) (time.Time, time.Time, bool) {
	to := time.Now()
	from := to.AddDate(0, 0, -30)

	if fromParam := c.Query("from"); fromParam != "" {
		parsed, err := time.Parse("2006-01-02", fromParam)
		if err != nil {
			return from, to, false
		}
		from = parsed
	}
	if toParam := c.Query("to"); toParam != "" {
		parsed, err := time.Parse("2006-01-02", toParam)
		if err != nil {
			return from, to, false
		}
		// inclusive end of day
		to = parsed.AddDate(0, 0, 1)
	}
	return from, to, true
}

// BuildSalesReport aggregates completed orders in [from, to).
func BuildSalesReport(db *gorm.DB, from, to time.Time) (SalesReport, error) {
	report := SalesReport{
		From: from.Format("2006-01-02"),
		To:   to.Format("2006-01-02"),
	}

	if err := db.Model(&models.Order{}).
		Select("DATE(created_at) AS day, COUNT(*) AS orders, SUM(total_amount) AS revenue").
		Where("status = ? AND created_at >= ? AND created_at < ?",
			models.OrderStatusCompleted, from, to).
		Group("DATE(created_at)").
		Order("day ASC").
		Scan(&report.Daily).Error; err != nil {
		return report, err
	}

	if err := db.Model(&models.OrderItem{}).
		Select(`order_items.product_id, products.name AS product_name,
			SUM(order_items.quantity) AS quantity, SUM(order_items.subtotal) AS revenue`).
		Joins("JOIN orders ON orders.order_id = order_items.order_id").
		Joins("JOIN products ON products.id = order_items.product_id").
		Where("orders.status = ? AND orders.created_at >= ? AND orders.created_at < ?",
			models.OrderStatusCompleted, from, to).
		Group("order_items.product_id, products.name").
		Order("revenue DESC").
		Scan(&report.ByProduct).Error; err != nil {
		return report, err
	}

	return report, nil
}

// GET /admin/reports/sales (owner)
func GetSalesReport(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		from, to, ok := reportRange(c)
		if !ok {
			c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid date range, expected YYYY-MM-DD"})
			return
		}

		report, err := BuildSalesReport(db, from, to)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to build sales report"})
			return
		}
		c.JSON(http.StatusOK, report)
	}
}
