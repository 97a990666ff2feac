package auth_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"sync/atomic"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/UchinthaB/SDP-Project-sub000/auth"
	"github.com/UchinthaB/SDP-Project-sub000/models"
)

var testDBCounter int64

func setupTest(t *testing.T) (*gorm.DB, *gin.Engine) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	t.Setenv("JWT_SECRET", "test-secret")

	dsn := fmt.Sprintf("file:authtest%d?mode=memory&cache=shared",
		atomic.AddInt64(&testDBCounter, 1))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.User{}))

	r := gin.New()
	r.POST("/auth/register", auth.RegisterHandler(db))
	r.POST("/auth/login", auth.LoginHandler(db))
	return db, r
}

func postJSON(r *gin.Engine, path string, body interface{}) *httptest.ResponseRecorder {
	data, _ := json.Marshal(body)
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(data))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestRegisterThenLogin(t *testing.T) {
	_, r := setupTest(t)

	w := postJSON(r, "/auth/register", gin.H{
		"name": "Alice", "email": "alice@example.com", "password": "secret123",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	w = postJSON(r, "/auth/login", gin.H{
		"email": "alice@example.com", "password": "secret123",
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp struct {
		Token string      `json:"token"`
		User  models.User `json:"user"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.NotEmpty(t, resp.Token)
	assert.Equal(t, models.RoleCustomer, resp.User.Role)

	// the token carries the identity the middleware expects
	token, err := jwt.Parse(resp.Token, func(*jwt.Token) (interface{}, error) {
		return []byte(os.Getenv("JWT_SECRET")), nil
	})
	require.NoError(t, err)
	claims := token.Claims.(jwt.MapClaims)
	assert.Equal(t, float64(resp.User.ID), claims["user_id"])
	assert.Equal(t, "customer", claims["role"])
	assert.NotEmpty(t, claims["jti"])
}

func TestRegisterDuplicateEmail(t *testing.T) {
	_, r := setupTest(t)

	body := gin.H{"name": "Alice", "email": "alice@example.com", "password": "secret123"}
	require.Equal(t, http.StatusCreated, postJSON(r, "/auth/register", body).Code)
	assert.Equal(t, http.StatusBadRequest, postJSON(r, "/auth/register", body).Code)
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	_, r := setupTest(t)

	require.Equal(t, http.StatusCreated, postJSON(r, "/auth/register", gin.H{
		"name": "Alice", "email": "alice@example.com", "password": "secret123",
	}).Code)

	w := postJSON(r, "/auth/login", gin.H{"email": "alice@example.com", "password": "wrong"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = postJSON(r, "/auth/login", gin.H{"email": "nobody@example.com", "password": "secret123"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestPasswordsAreHashed(t *testing.T) {
	db, r := setupTest(t)

	require.Equal(t, http.StatusCreated, postJSON(r, "/auth/register", gin.H{
		"name": "Alice", "email": "alice@example.com", "password": "secret123",
	}).Code)

	var user models.User
	require.NoError(t, db.Where("email = ?", "alice@example.com").First(&user).Error)
	assert.NotEqual(t, "secret123", user.PasswordHash)
	assert.NotEmpty(t, user.PasswordHash)
}
