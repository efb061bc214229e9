package middleware

import (
	"crypto/subtle"
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/tienda-verde/storefront-api/auth"
)

// ValidateToken accepts any token issued by m, admin or guest. The token is
// read from "Authorization: Bearer <token>" or, for websocket clients, the
// "token" query parameter.
func ValidateToken(m *auth.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, ok := parseRequest(c, m)
		if !ok {
			return
		}
		setClaims(c, claims)
		c.Next()
	}
}

// RequireAdmin admits live admin sessions. A matching X-API-KEY header is
// accepted as well so server-to-server tooling keeps working.
func RequireAdmin(m *auth.Manager, apiKey string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if apiKey != "" && subtle.ConstantTimeCompare([]byte(c.GetHeader("X-API-KEY")), []byte(apiKey)) == 1 {
			c.Set("role", auth.RoleAdmin)
			c.Set("user_id", "api-key")
			c.Next()
			return
		}

		claims, ok := parseRequest(c, m)
		if !ok {
			return
		}
		if claims.Role != auth.RoleAdmin {
			c.JSON(http.StatusForbidden, gin.H{"error": "Admin access required"})
			c.Abort()
			return
		}
		setClaims(c, claims)
		c.Next()
	}
}

func parseRequest(c *gin.Context, m *auth.Manager) (*auth.Claims, bool) {
	tokenString := bearerToken(c)
	if tokenString == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Authorization header is missing"})
		c.Abort()
		return nil, false
	}

	claims, err := m.Parse(tokenString)
	if err != nil {
		msg := "Invalid or expired token"
		if errors.Is(err, auth.ErrSessionRevoked) {
			msg = err.Error()
		}
		c.JSON(http.StatusUnauthorized, gin.H{"error": msg})
		c.Abort()
		return nil, false
	}
	return claims, true
}

func bearerToken(c *gin.Context) string {
	h := c.GetHeader("Authorization")
	if h == "" {
		return c.Query("token")
	}
	if len(h) > 7 && strings.EqualFold(h[:7], "bearer ") {
		return strings.TrimSpace(h[7:])
	}
	return strings.TrimSpace(h)
}

func setClaims(c *gin.Context, claims *auth.Claims) {
	c.Set("user_id", claims.Subject)
	c.Set("role", claims.Role)
	c.Set("session_id", claims.ID)
	c.Set("email", claims.Email)
}
