package middleware

import (
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

var JWTSecret = []byte("pushup-club-secret-2026")

// IssueToken signs a convenience token for a logged-in member. Identity stays
// name-based; the token only saves the frontend from resending user_id.
func IssueToken(uid uint, name string) string {
	token, _ := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"uid":  uid,
		"name": name,
		"exp":  time.Now().Add(30 * 24 * time.Hour).Unix(),
	}).SignedString(JWTSecret)
	return token
}

// Identity resolves an optional Bearer token into the request context.
// Endpoints that need an identity fall back to the user_id parameter, so a
// missing or invalid token is not an error here.
func Identity() gin.HandlerFunc {
	return func(c *gin.Context) {
		auth := c.GetHeader("Authorization")
		if strings.HasPrefix(auth, "Bearer ") {
			token, err := jwt.Parse(auth[7:], func(t *jwt.Token) (interface{}, error) {
				return JWTSecret, nil
			})
			if err == nil && token.Valid {
				claims := token.Claims.(jwt.MapClaims)
				if uid, ok := claims["uid"].(float64); ok {
					c.Set("user_id", uint(uid))
				}
				if name, ok := claims["name"].(string); ok {
					c.Set("user_name", name)
				}
			}
		}
		c.Next()
	}
}
