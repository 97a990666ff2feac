package reportControllers_test

import (
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	reportControllers "github.com/UchinthaB/SDP-Project-sub000/controllers/report"
	"github.com/UchinthaB/SDP-Project-sub000/models"
)

var testDBCounter int64

func setupTest(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:reporttest%d?mode=memory&cache=shared",
		atomic.AddInt64(&testDBCounter, 1))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.JuiceBar{},
		&models.Product{},
		&models.Order{},
		&models.OrderItem{},
	))
	return db
}

func seedCompletedOrder(t *testing.T, db *gorm.DB, customerID, barID uint, status models.OrderStatus, createdAt time.Time, items []models.OrderItem) {
	t.Helper()
	var total float64
	for _, item := range items {
		total += item.Subtotal
	}
	order := models.Order{
		CustomerID:    customerID,
		JuiceBarID:    barID,
		TokenNumber:   1,
		PaymentMethod: models.PaymentMethodCash,
		Status:        status,
		TotalAmount:   total,
		Items:         items,
		CreatedAt:     createdAt,
	}
	require.NoError(t, db.Create(&order).Error)
}

func TestBuildSalesReport(t *testing.T) {
	db := setupTest(t)

	bar := models.JuiceBar{Name: "Downtown"}
	require.NoError(t, db.Create(&bar).Error)
	orange := models.Product{JuiceBarID: bar.ID, Name: "Orange Crush", Price: 150}
	detox := models.Product{JuiceBarID: bar.ID, Name: "Green Detox", Price: 300}
	require.NoError(t, db.Create(&orange).Error)
	require.NoError(t, db.Create(&detox).Error)
	customer := models.User{Name: "Alice", Email: "alice@example.com", PasswordHash: "x", Role: models.RoleCustomer}
	require.NoError(t, db.Create(&customer).Error)

	now := time.Now()
	seedCompletedOrder(t, db, customer.ID, bar.ID, models.OrderStatusCompleted, now, []models.OrderItem{
		{ProductID: orange.ID, Quantity: 2, UnitPrice: 150, Subtotal: 300},
	})
	seedCompletedOrder(t, db, customer.ID, bar.ID, models.OrderStatusCompleted, now, []models.OrderItem{
		{ProductID: orange.ID, Quantity: 1, UnitPrice: 150, Subtotal: 150},
		{ProductID: detox.ID, Quantity: 1, UnitPrice: 300, Subtotal: 300},
	})
	// non-completed orders stay out of the report
	seedCompletedOrder(t, db, customer.ID, bar.ID, models.OrderStatusPending, now, []models.OrderItem{
		{ProductID: detox.ID, Quantity: 5, UnitPrice: 300, Subtotal: 1500},
	})
	// and so do completed orders outside the range
	seedCompletedOrder(t, db, customer.ID, bar.ID, models.OrderStatusCompleted, now.AddDate(0, 0, -60), []models.OrderItem{
		{ProductID: orange.ID, Quantity: 9, UnitPrice: 150, Subtotal: 1350},
	})

	report, err := reportControllers.BuildSalesReport(db, now.AddDate(0, 0, -30), now.Add(time.Hour))
	require.NoError(t, err)

	var totalOrders int
	var totalRevenue float64
	for _, d := range report.Daily {
		totalOrders += d.Orders
		totalRevenue += d.Revenue
	}
	assert.Equal(t, 2, totalOrders)
	assert.Equal(t, 750.0, totalRevenue)

	require.Len(t, report.ByProduct, 2)
	byName := make(map[string]reportControllers.ProductSales)
	for _, p := range report.ByProduct {
		byName[p.ProductName] = p
	}
	assert.Equal(t, 3, byName["Orange Crush"].Quantity)
	assert.Equal(t, 450.0, byName["Orange Crush"].Revenue)
	assert.Equal(t, 1, byName["Green Detox"].Quantity)
	assert.Equal(t, 300.0, byName["Green Detox"].Revenue)
}

func TestBuildSalesReportEmptyRange(t *testing.T) {
	db := setupTest(t)

	report, err := reportControllers.BuildSalesReport(db,
		time.Now().AddDate(0, 0, -7), time.Now())
	require.NoError(t, err)
	assert.Empty(t, report.Daily)
	assert.Empty(t, report.ByProduct)
}
