package messageControllers_test

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

	dsn := fmt.Sprintf("file:messagetest%d?mode=memory&cache=shared&_busy_timeout=5000",
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

func createUser(t *testing.T, db *gorm.DB, name string, role models.Role) (models.User, string) {
	t.Helper()
	hash, err := auth.HashPassword("secret123")
	require.NoError(t, err)
	user := models.User{
		Name:         name,
		Email:        name + "@example.com",
		PasswordHash: hash,
		Role:         role,
	}
	require.NoError(t, db.Create(&user).Error)
	token, err := auth.IssueToken(user)
	require.NoError(t, err)
	return user, token
}

func postMessage(r *gin.Engine, token string, body gin.H) *httptest.ResponseRecorder {
	data, _ := json.Marshal(body)
	req := httptest.NewRequest(http.MethodPost, "/messages", bytes.NewReader(data))
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestCreateMessageAnonymous(t *testing.T) {
	db, r := setupTest(t)

	w := postMessage(r, "", gin.H{
		"name":    "Walk-in Guest",
		"email":   "guest@example.com",
		"subject": "Opening hours",
		"body":    "Are you open on Sundays?",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var msg models.Message
	require.NoError(t, db.First(&msg).Error)
	assert.Nil(t, msg.CustomerID)
	assert.Equal(t, "guest@example.com", msg.Email)
}

func TestCreateMessageAttachesLoggedInCustomer(t *testing.T) {
	db, r := setupTest(t)
	customer, token := createUser(t, db, "alice", models.RoleCustomer)

	w := postMessage(r, token, gin.H{
		"name":  "Alice",
		"email": "alice@example.com",
		"body":  "My order arrived warm",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var msg models.Message
	require.NoError(t, db.First(&msg).Error)
	require.NotNil(t, msg.CustomerID)
	assert.Equal(t, customer.ID, *msg.CustomerID)
}

func TestCreateMessageIgnoresGarbageToken(t *testing.T) {
	db, r := setupTest(t)

	w := postMessage(r, "not-a-jwt", gin.H{
		"name":  "Someone",
		"email": "someone@example.com",
		"body":  "hello",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var msg models.Message
	require.NoError(t, db.First(&msg).Error)
	assert.Nil(t, msg.CustomerID)
}
