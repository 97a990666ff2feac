package cartControllers_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/UchinthaB/SDP-Project-sub000/auth"
	"github.com/UchinthaB/SDP-Project-sub000/models"
	"github.com/UchinthaB/SDP-Project-sub000/notify"
	"github.com/UchinthaB/SDP-Project-sub000/routes"
)

var testDBCounter int64

func setupTest(t *testing.T) (*gorm.DB, *gin.Engine) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	t.Setenv("JWT_SECRET", "test-secret")

	dsn := fmt.Sprintf("file:carttest%d?mode=memory&cache=shared&_busy_timeout=5000",
		atomic.AddInt64(&testDBCounter, 1))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.JuiceBar{},
		&models.Product{},
		&models.CartEntry{},
		&models.Order{},
		&models.OrderItem{},
		&models.TokenSequence{},
		&models.Message{},
	))

	r := gin.New()
	routes.SetupRoutes(r, db, notify.FromEnv())
	return db, r
}

func createCustomer(t *testing.T, db *gorm.DB, name string) (models.User, string) {
	t.Helper()
	hash, err := auth.HashPassword("secret123")
	require.NoError(t, err)
	user := models.User{
		Name:         name,
		Email:        name + "@example.com",
		PasswordHash: hash,
		Role:         models.RoleCustomer,
	}
	require.NoError(t, db.Create(&user).Error)
	token, err := auth.IssueToken(user)
	require.NoError(t, err)
	return user, token
}

func createProduct(t *testing.T, db *gorm.DB, name string, price float64) models.Product {
	t.Helper()
	bar := models.JuiceBar{Name: name + " bar"}
	require.NoError(t, db.Create(&bar).Error)
	product := models.Product{JuiceBarID: bar.ID, Name: name, Price: price, Available: true}
	require.NoError(t, db.Create(&product).Error)
	return product
}

func doJSON(r *gin.Engine, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	var reader *bytes.Reader
	if body != nil {
		data, _ := json.Marshal(body)
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func addToCart(t *testing.T, r *gin.Engine, token string, customerID, productID uint, times int) {
	t.Helper()
	for i := 0; i < times; i++ {
		w := doJSON(r, http.MethodPost, "/cart/add", token, gin.H{
			"product_id": productID, "customer_id": customerID,
		})
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	}
}

func getCart(t *testing.T, r *gin.Engine, token string, customerID uint) []models.CartLine {
	t.Helper()
	w := doJSON(r, http.MethodGet, fmt.Sprintf("/cart/%d", customerID), token, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var lines []models.CartLine
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &lines))
	return lines
}

func TestAddConsolidatesIntoOneLine(t *testing.T) {
	db, r := setupTest(t)
	customer, token := createCustomer(t, db, "alice")
	product := createProduct(t, db, "Orange Crush", 150)

	addToCart(t, r, token, customer.ID, product.ID, 3)

	lines := getCart(t, r, token, customer.ID)
	require.Len(t, lines, 1)
	assert.Equal(t, product.ID, lines[0].ProductID)
	assert.Equal(t, 3, lines[0].Quantity)
	assert.Equal(t, 450.0, lines[0].Subtotal)
	assert.Equal(t, "Orange Crush", lines[0].ProductName)

	// only one stored row backs the consolidated line
	var count int64
	require.NoError(t, db.Model(&models.CartEntry{}).
		Where("customer_id = ? AND product_id = ?", customer.ID, product.ID).
		Count(&count).Error)
	assert.EqualValues(t, 1, count)
}

func TestRemoveDecrementsOneUnit(t *testing.T) {
	db, r := setupTest(t)
	customer, token := createCustomer(t, db, "alice")
	product := createProduct(t, db, "Green Detox", 300)

	addToCart(t, r, token, customer.ID, product.ID, 4)
	lines := getCart(t, r, token, customer.ID)
	require.Len(t, lines, 1)
	cartID := lines[0].CartID

	// removing twice takes the quantity from 4 to 2
	for i := 0; i < 2; i++ {
		w := doJSON(r, http.MethodDelete, fmt.Sprintf("/cart/remove/%d", cartID), token, nil)
		require.Equal(t, http.StatusOK, w.Code)
	}
	lines = getCart(t, r, token, customer.ID)
	require.Len(t, lines, 1)
	assert.Equal(t, 2, lines[0].Quantity)
	assert.Equal(t, 600.0, lines[0].Subtotal)

	// draining the rest deletes the row
	for i := 0; i < 2; i++ {
		w := doJSON(r, http.MethodDelete, fmt.Sprintf("/cart/remove/%d", cartID), token, nil)
		require.Equal(t, http.StatusOK, w.Code)
	}
	assert.Empty(t, getCart(t, r, token, customer.ID))

	// the entry is gone now
	w := doJSON(r, http.MethodDelete, fmt.Sprintf("/cart/remove/%d", cartID), token, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestCartKeepsProductsSeparate(t *testing.T) {
	db, r := setupTest(t)
	customer, token := createCustomer(t, db, "alice")
	orange := createProduct(t, db, "Orange Crush", 150)
	detox := createProduct(t, db, "Green Detox", 300)

	addToCart(t, r, token, customer.ID, orange.ID, 2)
	addToCart(t, r, token, customer.ID, detox.ID, 1)

	lines := getCart(t, r, token, customer.ID)
	require.Len(t, lines, 2)

	byProduct := make(map[uint]models.CartLine)
	for _, line := range lines {
		byProduct[line.ProductID] = line
	}
	assert.Equal(t, 2, byProduct[orange.ID].Quantity)
	assert.Equal(t, 300.0, byProduct[orange.ID].Subtotal)
	assert.Equal(t, 1, byProduct[detox.ID].Quantity)
	assert.Equal(t, 300.0, byProduct[detox.ID].Subtotal)
}

func TestClearCart(t *testing.T) {
	db, r := setupTest(t)
	customer, token := createCustomer(t, db, "alice")
	product := createProduct(t, db, "Orange Crush", 150)

	addToCart(t, r, token, customer.ID, product.ID, 5)

	w := doJSON(r, http.MethodDelete, fmt.Sprintf("/cart/clear/%d", customer.ID), token, nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, getCart(t, r, token, customer.ID))
}

func TestCartOwnership(t *testing.T) {
	db, r := setupTest(t)
	customer, _ := createCustomer(t, db, "alice")
	_, strangerToken := createCustomer(t, db, "carol")
	product := createProduct(t, db, "Orange Crush", 150)

	// cannot add into someone else's cart
	w := doJSON(r, http.MethodPost, "/cart/add", strangerToken, gin.H{
		"product_id": product.ID, "customer_id": customer.ID,
	})
	assert.Equal(t, http.StatusForbidden, w.Code)

	// cannot read someone else's cart
	w = doJSON(r, http.MethodGet, fmt.Sprintf("/cart/%d", customer.ID), strangerToken, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestAddUnknownProduct(t *testing.T) {
	db, r := setupTest(t)
	customer, token := createCustomer(t, db, "alice")

	w := doJSON(r, http.MethodPost, "/cart/add", token, gin.H{
		"product_id": 9999, "customer_id": customer.ID,
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestUnavailableProductCanStillBeAdded(t *testing.T) {
	db, r := setupTest(t)
	customer, token := createCustomer(t, db, "alice")
	product := createProduct(t, db, "Seasonal Special", 200)
	require.NoError(t, db.Model(&product).Update("available", false).Error)

	addToCart(t, r, token, customer.ID, product.ID, 1)

	lines := getCart(t, r, token, customer.ID)
	require.Len(t, lines, 1)
	assert.False(t, lines[0].Available)
}
