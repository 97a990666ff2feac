package middleware

import (
	"errors"
	"net/http"
	"os"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"github.com/UchinthaB/SDP-Project-sub000/models"
)

const (
	ContextUserID = "user_id"
	ContextRole   = "role"
)

func parseIdentity(tokenString string) (uint, models.Role, error) {
	tokenString = strings.TrimPrefix(tokenString, "Bearer ")

	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("invalid token signing method")
		}
		return []byte(os.Getenv("JWT_SECRET")), nil
	})
	if err != nil || !token.Valid {
		return 0, "", errors.New("invalid or expired token")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return 0, "", errors.New("invalid token claims")
	}

	userID, okID := claims["user_id"].(float64)
	role, okRole := claims["role"].(string)
	if !okID || !okRole {
		return 0, "", errors.New("invalid token claims")
	}
	return uint(userID), models.Role(role), nil
}

// ValidateToken authenticates the bearer token and stores the acting party's
// identity and role on the request context.
func ValidateToken(c *gin.Context) {
	tokenString := c.GetHeader("Authorization")
	if tokenString == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Authorization header is missing"})
		c.Abort()
		return
	}

	userID, role, err := parseIdentity(tokenString)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Invalid or expired token"})
		c.Abort()
		return
	}

	c.Set(ContextUserID, userID)
	c.Set(ContextRole, role)
	c.Next()
}

// OptionalToken stores the caller's identity when a valid bearer token is
// present but never rejects the request. Used on public endpoints that
// behave slightly differently for logged-in customers.
func OptionalToken(c *gin.Context) {
	if tokenString := c.GetHeader("Authorization"); tokenString != "" {
		if userID, role, err := parseIdentity(tokenString); err == nil {
			c.Set(ContextUserID, userID)
			c.Set(ContextRole, role)
		}
	}
	c.Next()
}

// Identity returns the authenticated party stored by ValidateToken.
func Identity(c *gin.Context) (uint, models.Role, bool) {
	idVal, okID := c.Get(ContextUserID)
	roleVal, okRole := c.Get(ContextRole)
	if !okID || !okRole {
		return 0, "", false
	}
	return idVal.(uint), roleVal.(models.Role), true
}
