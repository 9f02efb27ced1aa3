package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"yatrasathi/internal/domain"
)

const (
	userIDKey    = "userID"
	userEmailKey = "userEmail"
	userRoleKey  = "userRole"
)

// JWTAuth validates the Bearer token and stores the caller's identity in the
// gin context. Expired or malformed tokens get 401 before any handler runs.
func JWTAuth(secret string) gin.HandlerFunc {
	key := []byte(secret)
	return func(c *gin.Context) {
		auth := c.GetHeader("Authorization")
		if !strings.HasPrefix(auth, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing bearer token"})
			return
		}
		raw := strings.TrimPrefix(auth, "Bearer ")

		tok, err := jwt.Parse(raw, func(t *jwt.Token) (any, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, jwt.ErrSignatureInvalid
			}
			return key, nil
		})
		if err != nil || !tok.Valid {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid or expired token"})
			return
		}
		claims, ok := tok.Claims.(jwt.MapClaims)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid claims"})
			return
		}

		uid, _ := claims["user_id"].(float64)
		email, _ := claims["email"].(string)
		roleStr, _ := claims["role"].(string)
		role, ok := domain.ParseRole(roleStr)
		if uid <= 0 || !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid claims"})
			return
		}

		c.Set(userIDKey, int64(uid))
		c.Set(userEmailKey, email)
		c.Set(userRoleKey, string(role))
		c.Next()
	}
}

// CurrentPrincipal rebuilds the caller's credential from the context set by
// JWTAuth. ok is false on unauthenticated routes.
func CurrentPrincipal(c *gin.Context) (domain.Principal, bool) {
	id := c.GetInt64(userIDKey)
	roleStr := c.GetString(userRoleKey)
	role, okRole := domain.ParseRole(roleStr)
	if id <= 0 || !okRole {
		return domain.Principal{}, false
	}
	return domain.Principal{
		ID:    id,
		Email: c.GetString(userEmailKey),
		Role:  role,
	}, true
}
